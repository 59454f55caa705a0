package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

const registrationColumns = `id, event_id, user_id, status, attended,
	created_at, updated_at, cancelled_at, attended_at`

type RegistrationRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewRegistrationRepo(db *dbpg.DB) *RegistrationRepository {
	return &RegistrationRepository{
		db:       db,
		strategy: defaultStrategy(),
	}
}

func (r *RegistrationRepository) Get(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if !validID(eventID) {
		return nil, domain.ErrRegistrationNotFound
	}

	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE event_id = $1 AND user_id = $2`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, eventID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", domain.StorageError(err))
	}

	reg, err := scanRegistration(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", domain.StorageError(err))
	}

	return reg, nil
}

func (r *RegistrationRepository) CountActive(ctx context.Context, eventID string) (int, error) {
	if !validID(eventID) {
		return 0, nil
	}

	query := `SELECT COUNT(*) FROM registrations WHERE event_id = $1 AND status = $2`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, eventID, domain.RegistrationActive)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", domain.StorageError(err))
	}

	var n int
	if err = row.Scan(&n); err != nil {
		return 0, fmt.Errorf("scan count: %w", domain.StorageError(err))
	}

	return n, nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if !validID(eventID) {
		return nil, nil
	}

	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE event_id = $1
			  ORDER BY created_at ASC, user_id ASC`
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", domain.StorageError(err))
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + `
			  FROM registrations
			  WHERE user_id = $1
			  ORDER BY created_at DESC, event_id ASC`
	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by user: %w", domain.StorageError(err))
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

func collectRegistrations(rows *sql.Rows) ([]*domain.Registration, error) {
	var res []*domain.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", domain.StorageError(err))
		}
		res = append(res, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", domain.StorageError(err))
	}

	return res, nil
}

func scanRegistration(row rowScanner) (*domain.Registration, error) {
	var reg domain.Registration
	var cancelledAt, attendedAt sql.NullTime
	if err := row.Scan(
		&reg.ID, &reg.EventID, &reg.UserID, &reg.Status, &reg.Attended,
		&reg.CreatedAt, &reg.UpdatedAt, &cancelledAt, &attendedAt,
	); err != nil {
		return nil, err
	}
	if cancelledAt.Valid {
		t := cancelledAt.Time
		reg.CancelledAt = &t
	}
	if attendedAt.Valid {
		t := attendedAt.Time
		reg.AttendedAt = &t
	}

	return &reg, nil
}
