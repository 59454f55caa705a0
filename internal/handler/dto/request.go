package dto

type CreateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Category    string `json:"category"`
	EventDate   string `json:"event_date" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required"`
}

// UpdateEventRequest carries only the fields to change.
type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Venue       *string `json:"venue"`
	Category    *string `json:"category"`
	EventDate   *string `json:"event_date"`
	Capacity    *int    `json:"capacity"`
}

type ListEventsQuery struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Upcoming bool   `form:"upcoming"`
}

type DeleteEventQuery struct {
	Cascade bool `form:"cascade"`
}
