// Package memory is a single-process backend for the event store and the
// registration ledger. Each event owns a lock; writers hold it for the whole
// check-and-update and readers take it shared, so a reader never sees a
// registration without the matching counter change.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
)

type eventEntry struct {
	mu    sync.RWMutex
	event domain.Event
	regs  map[string]*domain.Registration // by user id
}

type Store struct {
	mu     sync.RWMutex
	events map[string]*eventEntry

	idxMu  sync.RWMutex
	byUser map[string]map[string]struct{} // user id -> event ids

	now func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		events: make(map[string]*eventEntry),
		byUser: make(map[string]map[string]struct{}),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	_ ports.EventRepo        = (*Store)(nil)
	_ ports.RegistrationRepo = (*Store)(nil)
	_ ports.EventLocker      = (*Store)(nil)
)

func (s *Store) entry(id string) (*eventEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	return e, ok
}

func (s *Store) entries() []*eventEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]*eventEntry, 0, len(s.events))
	for _, e := range s.events {
		res = append(res, e)
	}
	return res
}

// Events

func (s *Store) Create(ctx context.Context, e *domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkCounter(e); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[e.ID]; ok {
		return fmt.Errorf("%w: event %s already exists", domain.ErrConflict, e.ID)
	}
	s.events[e.ID] = &eventEntry{
		event: *cloneEvent(e),
		regs:  make(map[string]*domain.Registration),
	}

	return nil
}

func (s *Store) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ent, ok := s.entry(id)
	if !ok {
		return nil, domain.ErrEventNotFound
	}

	ent.mu.RLock()
	defer ent.mu.RUnlock()

	if ent.event.IsDeleted() {
		return nil, domain.ErrEventNotFound
	}
	return cloneEvent(&ent.event), nil
}

func (s *Store) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter = filter.Normalize()
	now := s.now()

	var res []*domain.Event
	for _, ent := range s.entries() {
		ent.mu.RLock()
		if ent.event.Matches(filter, now) {
			res = append(res, cloneEvent(&ent.event))
		}
		ent.mu.RUnlock()
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].EventDate.Equal(res[j].EventDate) {
			return res[i].EventDate.Before(res[j].EventDate)
		}
		return res[i].ID < res[j].ID
	})

	return res, nil
}

// Registrations

func (s *Store) Get(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ent, ok := s.entry(eventID)
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}

	ent.mu.RLock()
	defer ent.mu.RUnlock()

	r, ok := ent.regs[userID]
	if !ok {
		return nil, domain.ErrRegistrationNotFound
	}
	return cloneRegistration(r), nil
}

func (s *Store) CountActive(ctx context.Context, eventID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	ent, ok := s.entry(eventID)
	if !ok {
		return 0, nil
	}

	ent.mu.RLock()
	defer ent.mu.RUnlock()

	n := 0
	for _, r := range ent.regs {
		if r.IsActive() {
			n++
		}
	}
	return n, nil
}

func (s *Store) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ent, ok := s.entry(eventID)
	if !ok {
		return nil, nil
	}

	ent.mu.RLock()
	res := make([]*domain.Registration, 0, len(ent.regs))
	for _, r := range ent.regs {
		res = append(res, cloneRegistration(r))
	}
	ent.mu.RUnlock()

	sortOldestFirst(res)
	return res, nil
}

func (s *Store) ListByUser(ctx context.Context, userID string) ([]*domain.Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.idxMu.RLock()
	eventIDs := make([]string, 0, len(s.byUser[userID]))
	for id := range s.byUser[userID] {
		eventIDs = append(eventIDs, id)
	}
	s.idxMu.RUnlock()

	var res []*domain.Registration
	for _, id := range eventIDs {
		ent, ok := s.entry(id)
		if !ok {
			continue
		}
		ent.mu.RLock()
		if r, ok := ent.regs[userID]; ok {
			res = append(res, cloneRegistration(r))
		}
		ent.mu.RUnlock()
	}

	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.After(res[j].CreatedAt)
		}
		return res[i].EventID < res[j].EventID
	})

	return res, nil
}

// Exclusive section

func (s *Store) WithEventLock(
	ctx context.Context,
	eventID string,
	fn func(ctx context.Context, tx ports.EventTx) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ent, ok := s.entry(eventID)
	if !ok {
		return domain.ErrEventNotFound
	}

	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.event.IsDeleted() {
		return domain.ErrEventNotFound
	}

	tx := &eventTx{
		entry:  ent,
		event:  cloneEvent(&ent.event),
		staged: make(map[string]*domain.Registration),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	// The caller may have given up while fn ran; drop the staged writes.
	if err := ctx.Err(); err != nil {
		return err
	}

	s.commit(ent, tx)
	return nil
}

// commit runs with ent.mu held for writing.
func (s *Store) commit(ent *eventEntry, tx *eventTx) {
	if tx.eventDirty {
		ent.event = *tx.event
	}

	var newUsers []string
	for userID, r := range tx.staged {
		if _, ok := ent.regs[userID]; !ok {
			newUsers = append(newUsers, userID)
		}
		ent.regs[userID] = r
	}

	if len(newUsers) == 0 {
		return
	}

	s.idxMu.Lock()
	for _, userID := range newUsers {
		events, ok := s.byUser[userID]
		if !ok {
			events = make(map[string]struct{})
			s.byUser[userID] = events
		}
		events[ent.event.ID] = struct{}{}
	}
	s.idxMu.Unlock()
}

type eventTx struct {
	entry      *eventEntry
	event      *domain.Event
	eventDirty bool
	staged     map[string]*domain.Registration
}

func (t *eventTx) Event() *domain.Event {
	return cloneEvent(t.event)
}

func (t *eventTx) Registration(_ context.Context, userID string) (*domain.Registration, error) {
	if r, ok := t.staged[userID]; ok {
		return cloneRegistration(r), nil
	}
	if r, ok := t.entry.regs[userID]; ok {
		return cloneRegistration(r), nil
	}
	return nil, domain.ErrRegistrationNotFound
}

func (t *eventTx) ActiveRegistrations(_ context.Context) ([]*domain.Registration, error) {
	var res []*domain.Registration
	for userID, r := range t.entry.regs {
		if staged, ok := t.staged[userID]; ok {
			r = staged
		}
		if r.IsActive() {
			res = append(res, cloneRegistration(r))
		}
	}
	for userID, r := range t.staged {
		if _, ok := t.entry.regs[userID]; !ok && r.IsActive() {
			res = append(res, cloneRegistration(r))
		}
	}

	sortOldestFirst(res)
	return res, nil
}

func (t *eventTx) SaveRegistration(_ context.Context, r *domain.Registration) error {
	if r.EventID != t.event.ID {
		return fmt.Errorf("registration belongs to event %s, not %s", r.EventID, t.event.ID)
	}
	t.staged[r.UserID] = cloneRegistration(r)
	return nil
}

func (t *eventTx) SaveEvent(_ context.Context, e *domain.Event) error {
	if e.ID != t.event.ID {
		return fmt.Errorf("cannot save event %s inside section of %s", e.ID, t.event.ID)
	}
	if err := checkCounter(e); err != nil {
		return err
	}
	t.event = cloneEvent(e)
	t.eventDirty = true
	return nil
}

// checkCounter mirrors the events_registered_count_check constraint.
func checkCounter(e *domain.Event) error {
	if e.Capacity < 1 || e.RegisteredCount < 0 || e.RegisteredCount > e.Capacity {
		return fmt.Errorf("event %s: registered count %d outside [0, %d]", e.ID, e.RegisteredCount, e.Capacity)
	}
	return nil
}

func sortOldestFirst(regs []*domain.Registration) {
	sort.Slice(regs, func(i, j int) bool {
		if !regs[i].CreatedAt.Equal(regs[j].CreatedAt) {
			return regs[i].CreatedAt.Before(regs[j].CreatedAt)
		}
		return regs[i].UserID < regs[j].UserID
	})
}

func cloneEvent(e *domain.Event) *domain.Event {
	c := *e
	if e.DeletedAt != nil {
		t := *e.DeletedAt
		c.DeletedAt = &t
	}
	return &c
}

func cloneRegistration(r *domain.Registration) *domain.Registration {
	c := *r
	if r.CancelledAt != nil {
		t := *r.CancelledAt
		c.CancelledAt = &t
	}
	if r.AttendedAt != nil {
		t := *r.AttendedAt
		c.AttendedAt = &t
	}
	return &c
}
