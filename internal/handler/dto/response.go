package dto

import (
	"time"

	"github.com/stpnv0/EventRegistry/internal/domain"
)

type EventResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Venue           string `json:"venue"`
	Category        string `json:"category"`
	EventDate       string `json:"event_date"`
	Capacity        int    `json:"capacity"`
	RegisteredCount int    `json:"registered_count"`
	SpotsAvailable  int    `json:"spots_available"`
	OwnerID         string `json:"owner_id"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type EventDetailsResponse struct {
	EventResponse
	IsRegistered bool `json:"is_registered"`
}

type RegistrationResponse struct {
	ID          string  `json:"id"`
	EventID     string  `json:"event_id"`
	UserID      string  `json:"user_id"`
	Status      string  `json:"status"`
	Attended    bool    `json:"attended"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	CancelledAt *string `json:"cancelled_at,omitempty"`
	AttendedAt  *string `json:"attended_at,omitempty"`
}

type DeleteEventResponse struct {
	CancelledRegistrations int `json:"cancelled_registrations"`
}

// ErrorResponse.Code is stable across releases; clients branch on it.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Venue:           e.Venue,
		Category:        e.Category,
		EventDate:       e.EventDate.Format(time.RFC3339),
		Capacity:        e.Capacity,
		RegisteredCount: e.RegisteredCount,
		SpotsAvailable:  e.SpotsAvailable(),
		OwnerID:         e.OwnerID,
		CreatedAt:       e.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       e.UpdatedAt.Format(time.RFC3339),
	}
}

func ToEventSummaryResponse(s domain.EventSummary) EventResponse {
	resp := ToEventResponse(&s.Event)
	resp.SpotsAvailable = s.SpotsAvailable
	return resp
}

func ToEventDetailsResponse(d *domain.EventDetails) EventDetailsResponse {
	resp := ToEventResponse(&d.Event)
	resp.SpotsAvailable = d.SpotsAvailable

	return EventDetailsResponse{
		EventResponse: resp,
		IsRegistered:  d.IsRegistered,
	}
}

func ToRegistrationResponse(r *domain.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:          r.ID,
		EventID:     r.EventID,
		UserID:      r.UserID,
		Status:      string(r.Status),
		Attended:    r.Attended,
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
		CancelledAt: formatTime(r.CancelledAt),
		AttendedAt:  formatTime(r.AttendedAt),
	}
}

func ToRegistrationResponses(regs []*domain.Registration) []RegistrationResponse {
	resp := make([]RegistrationResponse, 0, len(regs))
	for _, r := range regs {
		resp = append(resp, ToRegistrationResponse(r))
	}
	return resp
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
