package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/handler/dto"
	"github.com/stpnv0/EventRegistry/internal/middleware"
	"github.com/wb-go/wbf/ginext"
)

// statusClientClosedRequest is the nginx convention for a caller that went
// away before the response was written.
const statusClientClosedRequest = 499

type EventSvc interface {
	CreateEvent(ctx context.Context, actor domain.AuthenticatedUser, input domain.CreateEventInput) (*domain.Event, error)
	UpdateEvent(ctx context.Context, actor domain.AuthenticatedUser, id string, input domain.UpdateEventInput) (*domain.Event, error)
	DeleteEvent(ctx context.Context, actor domain.AuthenticatedUser, id string, cascade bool) (int, error)
	RecordAttendance(ctx context.Context, actor domain.AuthenticatedUser, eventID, userID string) (*domain.Registration, error)
}

type RegistrationSvc interface {
	Register(ctx context.Context, eventID, userID string) (*domain.Registration, error)
	Cancel(ctx context.Context, eventID, userID string) (*domain.Registration, error)
}

type QuerySvc interface {
	ListEvents(ctx context.Context, filter domain.EventFilter) ([]domain.EventSummary, error)
	GetEvent(ctx context.Context, id, userID string) (*domain.EventDetails, error)
	ListRoster(ctx context.Context, actor domain.AuthenticatedUser, eventID string) ([]*domain.Registration, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*domain.Registration, error)
}

type Handler struct {
	eventService        EventSvc
	registrationService RegistrationSvc
	queryService        QuerySvc
	retryAfter          time.Duration
}

func NewHandler(eventService EventSvc, registrationService RegistrationSvc, queryService QuerySvc) *Handler {
	return &Handler{
		eventService:        eventService,
		registrationService: registrationService,
		queryService:        queryService,
		retryAfter:          2 * time.Second,
	}
}

// Events

func (h *Handler) ListEvents(c *ginext.Context) {
	var q dto.ListEventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "invalid query: "+err.Error())
		return
	}

	events, err := h.queryService.ListEvents(c.Request.Context(), domain.EventFilter{
		Search:   q.Search,
		Category: q.Category,
		Upcoming: q.Upcoming,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, dto.ToEventSummaryResponse(e))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetEvent(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	details, err := h.queryService.GetEvent(c.Request.Context(), id, user.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventDetailsResponse(details))
}

func (h *Handler) CreateEvent(c *ginext.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		h.badRequest(c, "invalid event_date format, expected RFC3339")
		return
	}

	user, _ := middleware.CurrentUser(c)
	event, err := h.eventService.CreateEvent(c.Request.Context(), user, domain.CreateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		Category:    req.Category,
		EventDate:   eventDate,
		Capacity:    req.Capacity,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *Handler) UpdateEvent(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var req dto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err.Error())
		return
	}

	input := domain.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		Category:    req.Category,
		Capacity:    req.Capacity,
	}
	if req.EventDate != nil {
		eventDate, err := time.Parse(time.RFC3339, *req.EventDate)
		if err != nil {
			h.badRequest(c, "invalid event_date format, expected RFC3339")
			return
		}
		input.EventDate = &eventDate
	}

	user, _ := middleware.CurrentUser(c)
	event, err := h.eventService.UpdateEvent(c.Request.Context(), user, id, input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *Handler) DeleteEvent(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	var q dto.DeleteEventQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.badRequest(c, "invalid query: "+err.Error())
		return
	}

	user, _ := middleware.CurrentUser(c)
	n, err := h.eventService.DeleteEvent(c.Request.Context(), user, id, q.Cascade)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteEventResponse{CancelledRegistrations: n})
}

func (h *Handler) ListRoster(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	regs, err := h.queryService.ListRoster(c.Request.Context(), user, id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationResponses(regs))
}

func (h *Handler) MarkAttendance(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}
	attendee := c.Param("user_id")
	if attendee == "" {
		h.badRequest(c, "user_id is required")
		return
	}

	user, _ := middleware.CurrentUser(c)
	reg, err := h.eventService.RecordAttendance(c.Request.Context(), user, id, attendee)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}

// Registrations

func (h *Handler) Register(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	reg, err := h.registrationService.Register(c.Request.Context(), id, user.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *Handler) CancelRegistration(c *ginext.Context) {
	id, ok := h.eventID(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	reg, err := h.registrationService.Cancel(c.Request.Context(), id, user.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationResponse(reg))
}

func (h *Handler) MyRegistrations(c *ginext.Context) {
	user, _ := middleware.CurrentUser(c)
	regs, err := h.queryService.ListUserRegistrations(c.Request.Context(), user.ID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRegistrationResponses(regs))
}

func (h *Handler) eventID(c *ginext.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		h.badRequest(c, "invalid event id")
		return "", false
	}
	return id, true
}

func (h *Handler) badRequest(c *ginext.Context, msg string) {
	c.Set("error", msg)
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Code: "validation_error"})
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())
	code := domain.Code(err)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: publicMessage(err), Code: code})

	case errors.Is(err, domain.ErrCapacityExceeded),
		errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: publicMessage(err), Code: code})

	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: publicMessage(err), Code: code})

	case errors.Is(err, domain.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required", Code: code})

	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error(), Code: code})

	case errors.Is(err, domain.ErrStorageUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		c.Header("Retry-After", strconv.Itoa(int(h.retryAfter.Seconds())))
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{
			Error: "service temporarily unavailable, retry later",
			Code:  "storage_unavailable",
		})

	case errors.Is(err, context.Canceled):
		c.JSON(statusClientClosedRequest, dto.ErrorResponse{Error: "request cancelled", Code: "request_cancelled"})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error", Code: "internal_error"})
	}
}

// publicMessage drops the operation prefixes added while the error travelled up.
func publicMessage(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return err.Error()
}
