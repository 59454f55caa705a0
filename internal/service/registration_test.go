package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/metrics"
	"github.com/stpnv0/EventRegistry/internal/repository/memory"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
	"github.com/stpnv0/EventRegistry/internal/service/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	if err != nil {
		t.Fatalf("init test logger: %v", err)
	}
	return log
}

type registrationFixture struct {
	store *memory.Store
	svc   *RegistrationService
	now   time.Time
}

func newRegistrationFixture(t *testing.T, policy Policy) *registrationFixture {
	t.Helper()
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time { return now }))
	svc := NewRegistrationService(store, store, metrics.Nop{}, policy, newTestLogger(t))
	svc.now = func() time.Time { return now }

	return &registrationFixture{store: store, svc: svc, now: now}
}

func (f *registrationFixture) addEvent(t *testing.T, capacity int, at time.Time) string {
	t.Helper()
	e := &domain.Event{
		ID:        uuid.New().String(),
		Title:     "Go meetup",
		EventDate: at,
		Capacity:  capacity,
		OwnerID:   "owner",
		CreatedAt: f.now,
		UpdatedAt: f.now,
	}
	require.NoError(t, f.store.Create(context.Background(), e))
	return e.ID
}

func (f *registrationFixture) futureEvent(t *testing.T, capacity int) string {
	return f.addEvent(t, capacity, f.now.Add(48*time.Hour))
}

func (f *registrationFixture) event(t *testing.T, id string) *domain.Event {
	t.Helper()
	e, err := f.store.GetByID(context.Background(), id)
	require.NoError(t, err)
	return e
}

func (f *registrationFixture) activeCount(t *testing.T, id string) int {
	t.Helper()
	n, err := f.store.CountActive(context.Background(), id)
	require.NoError(t, err)
	return n
}

func TestRegistrationService_Register_Success(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 2)

	reg, err := f.svc.Register(context.Background(), eventID, "u1")

	require.NoError(t, err)
	assert.NotEmpty(t, reg.ID)
	assert.Equal(t, eventID, reg.EventID)
	assert.Equal(t, "u1", reg.UserID)
	assert.Equal(t, domain.RegistrationActive, reg.Status)
	assert.False(t, reg.Attended)

	event := f.event(t, eventID)
	assert.Equal(t, 1, event.RegisteredCount)
	assert.Equal(t, 1, event.SpotsAvailable())
}

func TestRegistrationService_Register_EventNotFound(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())

	_, err := f.svc.Register(context.Background(), uuid.New().String(), "u1")

	assert.ErrorIs(t, err, domain.ErrEventNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrationService_Register_EmptyUser(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 1)

	_, err := f.svc.Register(context.Background(), eventID, "")

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, 0, f.event(t, eventID).RegisteredCount)
}

func TestRegistrationService_Register_Twice(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 5)

	_, err := f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), eventID, "u1")

	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	assert.Equal(t, 1, f.event(t, eventID).RegisteredCount)
	assert.Equal(t, 1, f.activeCount(t, eventID))
}

func TestRegistrationService_Register_LastSpot(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 2)

	_, err := f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)
	_, err = f.svc.Register(context.Background(), eventID, "u2")
	require.NoError(t, err)

	event := f.event(t, eventID)
	assert.Equal(t, 2, event.RegisteredCount)
	assert.Equal(t, 0, event.SpotsAvailable())

	_, err = f.svc.Register(context.Background(), eventID, "u3")

	assert.ErrorIs(t, err, domain.ErrEventFull)
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
	assert.Equal(t, 2, f.event(t, eventID).RegisteredCount)
}

func TestRegistrationService_Register_CapacityOne(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 1)

	_, err := f.svc.Register(context.Background(), eventID, "A")
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), eventID, "B")
	assert.ErrorIs(t, err, domain.ErrEventFull)

	_, err = f.svc.Cancel(context.Background(), eventID, "A")
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), eventID, "B")
	require.NoError(t, err)

	assert.Equal(t, 1, f.event(t, eventID).RegisteredCount)
	_, err = f.store.Get(context.Background(), eventID, "B")
	require.NoError(t, err)
}

// An already registered user is told so even when the event is full.
func TestRegistrationService_Register_AlreadyRegisteredOnFullEvent(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 1)

	_, err := f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)

	_, err = f.svc.Register(context.Background(), eventID, "u1")

	assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
}

func TestRegistrationService_Register_ReusesRecord(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 3)

	first, err := f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)
	cancelled, err := f.svc.Cancel(context.Background(), eventID, "u1")
	require.NoError(t, err)
	require.NotNil(t, cancelled.CancelledAt)

	again, err := f.svc.Register(context.Background(), eventID, "u1")

	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, domain.RegistrationActive, again.Status)
	assert.Nil(t, again.CancelledAt)
	assert.Equal(t, 1, f.event(t, eventID).RegisteredCount)

	roster, err := f.store.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}

func TestRegistrationService_Register_PastEvent(t *testing.T) {
	t.Run("blocked by default", func(t *testing.T) {
		f := newRegistrationFixture(t, DefaultPolicy())
		eventID := f.addEvent(t, 5, f.now.Add(-time.Hour))

		_, err := f.svc.Register(context.Background(), eventID, "u1")

		assert.ErrorIs(t, err, domain.ErrRegistrationClosed)
		assert.Equal(t, 0, f.event(t, eventID).RegisteredCount)
	})

	t.Run("allowed when policy is off", func(t *testing.T) {
		f := newRegistrationFixture(t, Policy{AttendanceRequiresActive: true})
		eventID := f.addEvent(t, 5, f.now.Add(-time.Hour))

		_, err := f.svc.Register(context.Background(), eventID, "u1")

		require.NoError(t, err)
		assert.Equal(t, 1, f.event(t, eventID).RegisteredCount)
	})
}

func TestRegistrationService_Register_Concurrent(t *testing.T) {
	const (
		capacity = 10
		users    = 100
	)

	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, capacity)

	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		mu      sync.Mutex
		ok      int
		full    int
		unknown []error
	)
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(userID string) {
			defer wg.Done()
			<-start

			_, err := f.svc.Register(context.Background(), eventID, userID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrEventFull):
				full++
			default:
				unknown = append(unknown, err)
			}
		}(uuid.New().String())
	}
	close(start)
	wg.Wait()

	assert.Empty(t, unknown)
	assert.Equal(t, capacity, ok)
	assert.Equal(t, users-capacity, full)
	assert.Equal(t, capacity, f.event(t, eventID).RegisteredCount)
	assert.Equal(t, capacity, f.activeCount(t, eventID))
}

func TestRegistrationService_Register_ConcurrentSameUser(t *testing.T) {
	const attempts = 20

	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 5)

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
		mu    sync.Mutex
		ok    int
		dup   int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			_, err := f.svc.Register(context.Background(), eventID, "same-user")

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if errors.Is(err, domain.ErrAlreadyRegistered) {
				dup++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, attempts-1, dup)
	assert.Equal(t, 1, f.event(t, eventID).RegisteredCount)
}

// Registrations for one event must not wait on another event's section.
func TestRegistrationService_Register_IndependentEvents(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	busy := f.futureEvent(t, 5)
	other := f.futureEvent(t, 5)

	entered := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- f.store.WithEventLock(context.Background(), busy, func(ctx context.Context, tx ports.EventTx) error {
			close(entered)
			<-release
			return nil
		})
	}()
	<-entered

	_, err := f.svc.Register(context.Background(), other, "u1")

	require.NoError(t, err)
	close(release)
	require.NoError(t, <-done)
}

func TestRegistrationService_Register_CancelledContext(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Register(ctx, eventID, "u1")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, f.event(t, eventID).RegisteredCount)
	assert.Equal(t, 0, f.activeCount(t, eventID))
}

func TestRegistrationService_Cancel(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 3)

	_, err := f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)

	reg, err := f.svc.Cancel(context.Background(), eventID, "u1")

	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationCancelled, reg.Status)
	assert.NotNil(t, reg.CancelledAt)
	assert.Equal(t, 0, f.event(t, eventID).RegisteredCount)
	assert.Equal(t, 0, f.activeCount(t, eventID))
}

func TestRegistrationService_Cancel_NotRegistered(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 3)

	_, err := f.svc.Cancel(context.Background(), eventID, "stranger")
	assert.ErrorIs(t, err, domain.ErrNotRegistered)

	_, err = f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)
	_, err = f.svc.Cancel(context.Background(), eventID, "u1")
	require.NoError(t, err)

	_, err = f.svc.Cancel(context.Background(), eventID, "u1")

	assert.ErrorIs(t, err, domain.ErrNotRegistered)
	assert.Equal(t, 0, f.event(t, eventID).RegisteredCount)
}

func TestRegistrationService_Cancel_EventNotFound(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())

	_, err := f.svc.Cancel(context.Background(), uuid.New().String(), "u1")

	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestRegistrationService_ConcurrentRegisterAndCancel(t *testing.T) {
	const capacity = 5

	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, capacity)

	holders := make([]string, capacity)
	for i := range holders {
		holders[i] = uuid.New().String()
		_, err := f.svc.Register(context.Background(), eventID, holders[i])
		require.NoError(t, err)
	}

	var (
		wg    sync.WaitGroup
		start = make(chan struct{})
	)
	for _, h := range holders {
		wg.Add(2)
		go func(userID string) {
			defer wg.Done()
			<-start
			_, _ = f.svc.Cancel(context.Background(), eventID, userID)
		}(h)
		go func() {
			defer wg.Done()
			<-start
			_, _ = f.svc.Register(context.Background(), eventID, uuid.New().String())
		}()
	}
	close(start)
	wg.Wait()

	event := f.event(t, eventID)
	assert.LessOrEqual(t, event.RegisteredCount, capacity)
	assert.Equal(t, f.activeCount(t, eventID), event.RegisteredCount)
}

func TestRegistrationService_MarkAttended(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 3)

	_, err := f.svc.Register(context.Background(), eventID, "u1")
	require.NoError(t, err)

	_, err = f.svc.MarkAttended(context.Background(), eventID, "u1")
	assert.ErrorIs(t, err, domain.ErrEventNotStarted)

	later := f.now.Add(72 * time.Hour)
	f.svc.now = func() time.Time { return later }

	reg, err := f.svc.MarkAttended(context.Background(), eventID, "u1")

	require.NoError(t, err)
	assert.True(t, reg.Attended)
	require.NotNil(t, reg.AttendedAt)
	assert.Equal(t, later, *reg.AttendedAt)
	assert.Equal(t, 1, f.event(t, eventID).RegisteredCount)

	again, err := f.svc.MarkAttended(context.Background(), eventID, "u1")

	require.NoError(t, err)
	assert.True(t, again.Attended)
	assert.Equal(t, later, *again.AttendedAt)
}

func TestRegistrationService_MarkAttended_Policy(t *testing.T) {
	setup := func(t *testing.T, policy Policy) (*registrationFixture, string) {
		f := newRegistrationFixture(t, policy)
		eventID := f.futureEvent(t, 3)
		_, err := f.svc.Register(context.Background(), eventID, "u1")
		require.NoError(t, err)
		_, err = f.svc.Cancel(context.Background(), eventID, "u1")
		require.NoError(t, err)

		later := f.now.Add(72 * time.Hour)
		f.svc.now = func() time.Time { return later }
		return f, eventID
	}

	t.Run("cancelled rejected by default", func(t *testing.T) {
		f, eventID := setup(t, DefaultPolicy())

		_, err := f.svc.MarkAttended(context.Background(), eventID, "u1")

		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})

	t.Run("cancelled accepted when policy is off", func(t *testing.T) {
		f, eventID := setup(t, Policy{BlockPastEvents: true})

		reg, err := f.svc.MarkAttended(context.Background(), eventID, "u1")

		require.NoError(t, err)
		assert.True(t, reg.Attended)
		assert.Equal(t, domain.RegistrationCancelled, reg.Status)
		assert.Equal(t, 0, f.event(t, eventID).RegisteredCount)
	})

	t.Run("unknown user", func(t *testing.T) {
		f, eventID := setup(t, Policy{})

		_, err := f.svc.MarkAttended(context.Background(), eventID, "stranger")

		assert.ErrorIs(t, err, domain.ErrNotRegistered)
	})
}

func TestRegistrationService_CloseEvent(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 3)

	for _, u := range []string{"u1", "u2"} {
		_, err := f.svc.Register(context.Background(), eventID, u)
		require.NoError(t, err)
	}

	_, err := f.svc.CloseEvent(context.Background(), eventID, false)
	assert.ErrorIs(t, err, domain.ErrEventHasRegistrations)
	assert.Equal(t, 2, f.event(t, eventID).RegisteredCount)

	n, err := f.svc.CloseEvent(context.Background(), eventID, true)

	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = f.store.GetByID(context.Background(), eventID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	roster, err := f.store.ListByEvent(context.Background(), eventID)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	for _, r := range roster {
		assert.Equal(t, domain.RegistrationCancelled, r.Status)
	}

	_, err = f.svc.Register(context.Background(), eventID, "u3")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestRegistrationService_CloseEvent_Empty(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	eventID := f.futureEvent(t, 3)

	n, err := f.svc.CloseEvent(context.Background(), eventID, false)

	require.NoError(t, err)
	assert.Equal(t, 0, n)

	list, err := f.store.List(context.Background(), domain.EventFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRegistrationService_Reconcile(t *testing.T) {
	f := newRegistrationFixture(t, DefaultPolicy())
	drifted := f.futureEvent(t, 5)
	healthy := f.futureEvent(t, 5)

	for _, u := range []string{"u1", "u2", "u3"} {
		_, err := f.svc.Register(context.Background(), drifted, u)
		require.NoError(t, err)
	}
	_, err := f.svc.Register(context.Background(), healthy, "u1")
	require.NoError(t, err)

	err = f.store.WithEventLock(context.Background(), drifted, func(ctx context.Context, tx ports.EventTx) error {
		e := tx.Event()
		e.RegisteredCount = 1
		return tx.SaveEvent(ctx, e)
	})
	require.NoError(t, err)

	repaired, err := f.svc.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.Equal(t, 3, f.event(t, drifted).RegisteredCount)
	assert.Equal(t, 1, f.event(t, healthy).RegisteredCount)

	repaired, err = f.svc.Reconcile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, repaired)
}

func TestRegistrationService_Metrics(t *testing.T) {
	now := time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)
	store := memory.New(memory.WithClock(func() time.Time { return now }))
	m := metrics.New(prometheus.NewRegistry())
	svc := NewRegistrationService(store, store, m, DefaultPolicy(), newTestLogger(t))
	svc.now = func() time.Time { return now }

	event := &domain.Event{
		ID:        uuid.New().String(),
		Title:     "Tiny",
		EventDate: now.Add(time.Hour),
		Capacity:  1,
	}
	require.NoError(t, store.Create(context.Background(), event))

	_, err := svc.Register(context.Background(), event.ID, "u1")
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), event.ID, "u2")
	require.ErrorIs(t, err, domain.ErrEventFull)
	_, err = svc.Register(context.Background(), event.ID, "u1")
	require.ErrorIs(t, err, domain.ErrAlreadyRegistered)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues(opRegister, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues(opRegister, "event_full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues(opRegister, "already_registered")))
}

func TestRegistrationService_Register_StorageUnavailable(t *testing.T) {
	locker := mocks.NewMockEventLocker(t)
	events := mocks.NewMockEventRepo(t)
	m := metrics.New(prometheus.NewRegistry())
	svc := NewRegistrationService(locker, events, m, DefaultPolicy(), newTestLogger(t))

	locker.EXPECT().WithEventLock(mock.Anything, "e1", mock.Anything).
		Return(domain.StorageError(errors.New("connection refused")))

	_, err := svc.Register(context.Background(), "e1", "u1")

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, "storage_unavailable", domain.Code(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Operations().WithLabelValues(opRegister, "storage_unavailable")))
}

func TestRegistrationService_Reconcile_ListFailure(t *testing.T) {
	locker := mocks.NewMockEventLocker(t)
	events := mocks.NewMockEventRepo(t)
	svc := NewRegistrationService(locker, events, metrics.Nop{}, DefaultPolicy(), newTestLogger(t))

	events.EXPECT().List(mock.Anything, domain.EventFilter{}).
		Return(nil, domain.StorageError(errors.New("timeout")))

	n, err := svc.Reconcile(context.Background())

	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
}
