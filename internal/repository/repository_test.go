package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "jazz", want: "jazz"},
		{in: "100%", want: `100\%`},
		{in: "a_b", want: `a\_b`},
		{in: `c:\dir`, want: `c:\\dir`},
		{in: `%_\`, want: `\%\_\\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escapeLike(tt.in), tt.in)
	}
}

func TestEventWhere(t *testing.T) {
	tests := []struct {
		name   string
		filter domain.EventFilter
		where  string
		args   []any
	}{
		{
			name:  "empty",
			where: "deleted_at IS NULL",
		},
		{
			name:   "category",
			filter: domain.EventFilter{Category: "music"},
			where:  "deleted_at IS NULL AND category = $1",
			args:   []any{"music"},
		},
		{
			name:   "search escapes wildcards",
			filter: domain.EventFilter{Search: "50%"},
			where:  "deleted_at IS NULL AND (title ILIKE $1 OR description ILIKE $1 OR venue ILIKE $1)",
			args:   []any{`%50\%%`},
		},
		{
			name:   "all",
			filter: domain.EventFilter{Category: "music", Search: "jazz", Upcoming: true},
			where: "deleted_at IS NULL AND category = $1" +
				" AND (title ILIKE $2 OR description ILIKE $2 OR venue ILIKE $2)" +
				" AND event_date > now()",
			args: []any{"music", "%jazz%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := eventWhere(tt.filter)

			assert.Equal(t, tt.where, where)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestWrapWriteErr(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		storage bool
	}{
		{name: "check violation", err: &pq.Error{Code: checkViolation, Constraint: "events_registered_count_check"}},
		{name: "unique violation", err: &pq.Error{Code: uniqueViolation, Constraint: "registrations_event_id_user_id_key"}},
		{name: "wrapped unique violation", err: fmt.Errorf("exec: %w", &pq.Error{Code: uniqueViolation})},
		{name: "serialization failure", err: &pq.Error{Code: "40001"}, storage: true},
		{name: "connection lost", err: errors.New("driver: bad connection"), storage: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := wrapWriteErr(tt.err)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.storage, errors.Is(err, domain.ErrStorageUnavailable))
		})
	}
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *time.Time:
			*p = r.values[i].(time.Time)
		case *sql.NullTime:
			if r.values[i] != nil {
				*p = sql.NullTime{Time: r.values[i].(time.Time), Valid: true}
			}
		}
	}
	return nil
}

func TestScanEvent(t *testing.T) {
	at := time.Date(2030, 5, 1, 18, 0, 0, 0, time.UTC)
	row := func(deleted any) fakeRow {
		return fakeRow{values: []any{
			"0b7b3a7e-4c1e-4f0e-9a6e-2f1f0f4a1b2c", "Jazz night", "desc", "Hall", "music", at,
			50, 12, "owner-1", at, at, deleted,
		}}
	}

	e, err := scanEvent(row(nil))
	require.NoError(t, err)
	assert.Equal(t, "Jazz night", e.Title)
	assert.Equal(t, 50, e.Capacity)
	assert.Equal(t, 12, e.RegisteredCount)
	assert.Nil(t, e.DeletedAt)

	e, err = scanEvent(row(at))
	require.NoError(t, err)
	require.NotNil(t, e.DeletedAt)
	assert.Equal(t, at, *e.DeletedAt)

	_, err = scanEvent(fakeRow{err: sql.ErrNoRows})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

// Malformed ids never reach the database, so a nil pool is enough here.
func TestMalformedIDs(t *testing.T) {
	ctx := context.Background()

	_, err := NewEventRepo(nil).GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	_, err = NewRegistrationRepo(nil).Get(ctx, "not-a-uuid", "u1")
	assert.ErrorIs(t, err, domain.ErrRegistrationNotFound)

	called := false
	err = NewEventLocker(nil).WithEventLock(ctx, "not-a-uuid", func(context.Context, ports.EventTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.False(t, called)
}
