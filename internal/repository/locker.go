package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
	"github.com/wb-go/wbf/dbpg"
)

// EventLocker serializes work on one event with a row lock on its events
// row. Everything runs in one transaction, so a failed or abandoned section
// rolls back completely. Nothing inside the section is retried.
type EventLocker struct {
	db *dbpg.DB
}

func NewEventLocker(db *dbpg.DB) *EventLocker {
	return &EventLocker{db: db}
}

var _ ports.EventLocker = (*EventLocker)(nil)

type sqlTx interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (l *EventLocker) WithEventLock(
	ctx context.Context,
	eventID string,
	fn func(ctx context.Context, tx ports.EventTx) error,
) error {
	if !validID(eventID) {
		return domain.ErrEventNotFound
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", domain.StorageError(err))
	}
	defer tx.Rollback()

	lockQuery := `SELECT ` + eventColumns + `
				  FROM events
				  WHERE id = $1 AND deleted_at IS NULL
				  FOR UPDATE`
	event, err := scanEvent(tx.QueryRowContext(ctx, lockQuery, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("lock event: %w", domain.StorageError(err))
	}

	if err = fn(ctx, &pgEventTx{tx: tx, event: event}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", domain.StorageError(err))
	}

	return nil
}

type pgEventTx struct {
	tx    sqlTx
	event *domain.Event
}

func (t *pgEventTx) Event() *domain.Event {
	e := *t.event
	return &e
}

func (t *pgEventTx) Registration(ctx context.Context, userID string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE event_id = $1 AND user_id = $2`
	reg, err := scanRegistration(t.tx.QueryRowContext(ctx, query, t.event.ID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", domain.StorageError(err))
	}

	return reg, nil
}

func (t *pgEventTx) ActiveRegistrations(ctx context.Context) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE event_id = $1 AND status = $2
			  ORDER BY created_at ASC, user_id ASC`
	rows, err := t.tx.QueryContext(ctx, query, t.event.ID, domain.RegistrationActive)
	if err != nil {
		return nil, fmt.Errorf("list active registrations: %w", domain.StorageError(err))
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func (t *pgEventTx) SaveRegistration(ctx context.Context, r *domain.Registration) error {
	if r.EventID != t.event.ID {
		return fmt.Errorf("registration belongs to event %s, not %s", r.EventID, t.event.ID)
	}

	query := `INSERT INTO registrations (id, event_id, user_id, status, attended,
			  		created_at, updated_at, cancelled_at, attended_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  ON CONFLICT (event_id, user_id) DO UPDATE
			  SET status       = EXCLUDED.status,
			      attended     = EXCLUDED.attended,
			      updated_at   = EXCLUDED.updated_at,
			      cancelled_at = EXCLUDED.cancelled_at,
			      attended_at  = EXCLUDED.attended_at`
	_, err := t.tx.ExecContext(
		ctx, query,
		r.ID, r.EventID, r.UserID, r.Status, r.Attended,
		r.CreatedAt, r.UpdatedAt, r.CancelledAt, r.AttendedAt,
	)
	if err != nil {
		return fmt.Errorf("save registration: %w", wrapWriteErr(err))
	}

	return nil
}

func (t *pgEventTx) SaveEvent(ctx context.Context, e *domain.Event) error {
	if e.ID != t.event.ID {
		return fmt.Errorf("cannot save event %s inside section of %s", e.ID, t.event.ID)
	}

	query := `UPDATE events
			  SET title = $2, description = $3, venue = $4, category = $5, event_date = $6,
			      capacity = $7, registered_count = $8, updated_at = $9, deleted_at = $10
			  WHERE id = $1`
	_, err := t.tx.ExecContext(
		ctx, query,
		e.ID, e.Title, e.Description, e.Venue, e.Category, e.EventDate,
		e.Capacity, e.RegisteredCount, e.UpdatedAt, e.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("save event: %w", wrapWriteErr(err))
	}

	saved := *e
	t.event = &saved

	return nil
}

// wrapWriteErr keeps constraint violations out of the retryable storage class.
func wrapWriteErr(err error) error {
	var pgErr *pq.Error
	if errors.As(err, &pgErr) && (pgErr.Code == checkViolation || pgErr.Code == uniqueViolation) {
		return fmt.Errorf("constraint %s: %w", pgErr.Constraint, err)
	}
	return domain.StorageError(err)
}
