package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/retry"
)

const eventColumns = `id, title, description, venue, category, event_date,
	capacity, registered_count, owner_id, created_at, updated_at, deleted_at`

type EventRepository struct {
	db       *dbpg.DB
	strategy retry.Strategy
}

func NewEventRepo(db *dbpg.DB) *EventRepository {
	return &EventRepository{
		db:       db,
		strategy: defaultStrategy(),
	}
}

func defaultStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: 3,
		Delay:    500 * time.Millisecond,
		Backoff:  2,
	}
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (id, title, description, venue, category, event_date,
			  		capacity, registered_count, owner_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecWithRetry(
		ctx, r.strategy, query,
		e.ID, e.Title, e.Description, e.Venue, e.Category, e.EventDate,
		e.Capacity, e.RegisteredCount, e.OwnerID, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: event %s already exists", domain.ErrConflict, e.ID)
		}
		return fmt.Errorf("insert event: %w", domain.StorageError(err))
	}

	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if !validID(id) {
		return nil, domain.ErrEventNotFound
	}

	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE id = $1 AND deleted_at IS NULL`
	row, err := r.db.QueryRowWithRetry(ctx, r.strategy, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", domain.StorageError(err))
	}

	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("scan event: %w", domain.StorageError(err))
	}

	return e, nil
}

func (r *EventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	where, args := eventWhere(filter.Normalize())
	query := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE ` + where + `
			  ORDER BY event_date ASC, id ASC`

	rows, err := r.db.QueryWithRetry(ctx, r.strategy, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", domain.StorageError(err))
	}
	defer rows.Close()

	var res []*domain.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", domain.StorageError(err))
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("list events: %w", domain.StorageError(err))
	}

	return res, nil
}

func eventWhere(f domain.EventFilter) (string, []any) {
	conds := []string{"deleted_at IS NULL"}
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+escapeLike(f.Search)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR venue ILIKE $%d)", n, n, n))
	}
	if f.Upcoming {
		conds = append(conds, "event_date > now()")
	}

	return strings.Join(conds, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	var e domain.Event
	var deletedAt sql.NullTime
	if err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Venue, &e.Category, &e.EventDate,
		&e.Capacity, &e.RegisteredCount, &e.OwnerID, &e.CreatedAt, &e.UpdatedAt, &deletedAt,
	); err != nil {
		return nil, err
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		e.DeletedAt = &t
	}

	return &e, nil
}

// validID keeps malformed ids away from uuid columns, where Postgres would
// answer with a syntax error instead of "no rows".
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
