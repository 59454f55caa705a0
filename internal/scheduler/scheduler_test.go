package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stpnv0/EventRegistry/internal/scheduler/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
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

func TestScheduler_Tick_Reconciles(t *testing.T) {
	rec := mocks.NewMockReconciler(t)
	log := newTestLogger(t)

	s := New(rec, 50*time.Millisecond, log)

	rec.EXPECT().Reconcile(mock.Anything).Return(2, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(rec.Calls), 1)
}

func TestScheduler_Tick_HandlesError(t *testing.T) {
	rec := mocks.NewMockReconciler(t)
	log := newTestLogger(t)

	s := New(rec, 50*time.Millisecond, log)

	rec.EXPECT().Reconcile(mock.Anything).Return(0, errors.New("db error"))

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(rec.Calls), 1)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	rec := mocks.NewMockReconciler(t)
	log := newTestLogger(t)

	s := New(rec, time.Second, log) // interval longer than test

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on context cancel")
	}
}

func TestScheduler_MultipleTicks(t *testing.T) {
	rec := mocks.NewMockReconciler(t)
	log := newTestLogger(t)

	s := New(rec, 30*time.Millisecond, log)

	rec.EXPECT().Reconcile(mock.Anything).Return(0, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()

	s.Start(ctx)

	assert.GreaterOrEqual(t, len(rec.Calls), 3)
}
