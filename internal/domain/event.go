package domain

import (
	"strings"
	"time"
)

type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Venue           string     `json:"venue"`
	Category        string     `json:"category"`
	EventDate       time.Time  `json:"event_date"`
	Capacity        int        `json:"capacity"`
	RegisteredCount int        `json:"registered_count"`
	OwnerID         string     `json:"owner_id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// SpotsAvailable never goes below zero, even if the counter drifted.
func (e *Event) SpotsAvailable() int {
	if n := e.Capacity - e.RegisteredCount; n > 0 {
		return n
	}
	return 0
}

func (e *Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// HasStarted reports whether the scheduled time is at or before now.
func (e *Event) HasStarted(now time.Time) bool {
	return !e.EventDate.After(now)
}

func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Matches applies a listing filter to the event.
func (e *Event) Matches(f EventFilter, now time.Time) bool {
	if e.IsDeleted() {
		return false
	}
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.Upcoming && e.HasStarted(now) {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := strings.ToLower(f.Search)
	for _, field := range []string{e.Title, e.Description, e.Venue} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

type EventFilter struct {
	Search   string
	Category string
	Upcoming bool
}

// Normalize trims user input so that blank values mean "no filter".
func (f EventFilter) Normalize() EventFilter {
	return EventFilter{
		Search:   strings.TrimSpace(f.Search),
		Category: strings.TrimSpace(f.Category),
		Upcoming: f.Upcoming,
	}
}

type EventSummary struct {
	Event          Event `json:"event"`
	SpotsAvailable int   `json:"spots_available"`
}

type EventDetails struct {
	Event          Event `json:"event"`
	SpotsAvailable int   `json:"spots_available"`
	IsRegistered   bool  `json:"is_registered"`
}

type CreateEventInput struct {
	Title       string
	Description string
	Venue       string
	Category    string
	EventDate   time.Time
	Capacity    int
}

type UpdateEventInput struct {
	Title       *string
	Description *string
	Venue       *string
	Category    *string
	EventDate   *time.Time
	Capacity    *int
}
