package router

import (
	"net/http"

	"github.com/wb-go/wbf/ginext"
)

type Handler interface {
	ListEvents(c *ginext.Context)
	GetEvent(c *ginext.Context)
	CreateEvent(c *ginext.Context)
	UpdateEvent(c *ginext.Context)
	DeleteEvent(c *ginext.Context)
	ListRoster(c *ginext.Context)
	MarkAttendance(c *ginext.Context)
	Register(c *ginext.Context)
	CancelRegistration(c *ginext.Context)
	MyRegistrations(c *ginext.Context)
}

// Guards are the per-route middlewares. Authenticated must reject anonymous
// callers, OptionalAuth must let them through. Throttle and Quota may be nil.
type Guards struct {
	Authenticated ginext.HandlerFunc
	OptionalAuth  ginext.HandlerFunc
	Throttle      ginext.HandlerFunc
	Quota         ginext.HandlerFunc
	Metrics       http.Handler
}

func InitRouter(mode string, h Handler, g Guards, mw ...ginext.HandlerFunc) *ginext.Engine {
	router := ginext.New(mode)
	router.Use(mw...)

	auth := g.Authenticated
	write := func(next ginext.HandlerFunc) []ginext.HandlerFunc {
		return chain(auth, g.Throttle, next)
	}

	api := router.Group("/api")
	{
		// Events
		api.GET("/events", h.ListEvents)
		api.GET("/events/:id", chain(g.OptionalAuth, h.GetEvent)...)
		api.POST("/events", write(h.CreateEvent)...)
		api.PUT("/events/:id", write(h.UpdateEvent)...)
		api.DELETE("/events/:id", write(h.DeleteEvent)...)
		api.GET("/events/:id/registrations", auth, h.ListRoster)
		api.POST("/events/:id/attendance/:user_id", write(h.MarkAttendance)...)

		// Registrations
		api.POST("/registrations/events/:id", chain(auth, g.Throttle, g.Quota, h.Register)...)
		api.DELETE("/registrations/events/:id", write(h.CancelRegistration)...)
		api.GET("/registrations/me", auth, h.MyRegistrations)
	}

	router.GET("/health", func(c *ginext.Context) {
		c.JSON(http.StatusOK, ginext.H{"status": "ok"})
	})

	if g.Metrics != nil {
		router.GET("/metrics", func(c *ginext.Context) {
			g.Metrics.ServeHTTP(c.Writer, c.Request)
		})
	}

	return router
}

// chain drops the guards that are switched off.
func chain(hs ...ginext.HandlerFunc) []ginext.HandlerFunc {
	out := make([]ginext.HandlerFunc, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
