package domain

import "time"

type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationCancelled RegistrationStatus = "cancelled"
)

// Registration is the ledger record for one (event, user) pair. It is reused on
// re-registration and never removed.
type Registration struct {
	ID          string             `json:"id"`
	EventID     string             `json:"event_id"`
	UserID      string             `json:"user_id"`
	Status      RegistrationStatus `json:"status"`
	Attended    bool               `json:"attended"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	CancelledAt *time.Time         `json:"cancelled_at,omitempty"`
	AttendedAt  *time.Time         `json:"attended_at,omitempty"`
}

func (r *Registration) IsActive() bool {
	return r.Status == RegistrationActive
}

func (r *Registration) Activate(now time.Time) {
	r.Status = RegistrationActive
	r.CancelledAt = nil
	r.UpdatedAt = now
}

func (r *Registration) Cancel(now time.Time) {
	r.Status = RegistrationCancelled
	r.CancelledAt = &now
	r.UpdatedAt = now
}

func (r *Registration) MarkAttended(now time.Time) {
	r.Attended = true
	r.AttendedAt = &now
	r.UpdatedAt = now
}
