package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/logger"
)

func Recovery(log logger.Logger) ginext.HandlerFunc {
	return func(c *ginext.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.LogAttrs(c.Request.Context(), logger.ErrorLevel, "panic recovered",
					logger.Any("error", err),
					logger.String("request_id", RequestIDFrom(c)),
					logger.String("path", c.Request.URL.Path),
					logger.String("stack", string(debug.Stack())),
				)
				abort(c, http.StatusInternalServerError, "internal_error", "internal server error")
			}
		}()

		c.Next()
	}
}

// abort writes the same error body the handlers use.
func abort(c *ginext.Context, status int, code, msg string) {
	c.Set("error", msg)
	c.AbortWithStatusJSON(status, ginext.H{"error": msg, "code": code})
}
