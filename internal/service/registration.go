package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/stpnv0/EventRegistry/internal/domain"
	"github.com/stpnv0/EventRegistry/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

const (
	opRegister     = "register"
	opCancel       = "cancel"
	opMarkAttended = "mark_attended"
	opCloseEvent   = "close_event"
)

// Policy holds the registration rules that are deployment choices rather
// than invariants.
type Policy struct {
	// BlockPastEvents rejects registration once the event's date is reached.
	BlockPastEvents bool
	// AttendanceRequiresActive limits MarkAttended to active registrations.
	// When false, a cancelled record may be marked too: every record in the
	// ledger was active at some point.
	AttendanceRequiresActive bool
}

func DefaultPolicy() Policy {
	return Policy{
		BlockPastEvents:          true,
		AttendanceRequiresActive: true,
	}
}

// RegistrationService is the only writer of registration status and of the
// event's registered count. Each operation is one exclusive section on the
// event, so the check and the update can't interleave with another request
// for the same event.
type RegistrationService struct {
	locker   ports.EventLocker
	events   ports.EventRepo
	recorder ports.OutcomeRecorder
	policy   Policy
	logger   logger.Logger
	now      func() time.Time
}

func NewRegistrationService(
	locker ports.EventLocker,
	events ports.EventRepo,
	recorder ports.OutcomeRecorder,
	policy Policy,
	logger logger.Logger,
) *RegistrationService {
	return &RegistrationService{
		locker:   locker,
		events:   events,
		recorder: recorder,
		policy:   policy,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *RegistrationService) Register(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	var reg *domain.Registration
	err := s.run(ctx, opRegister, eventID, func(ctx context.Context, tx ports.EventTx) error {
		event := tx.Event()
		now := s.now()

		if s.policy.BlockPastEvents && event.HasStarted(now) {
			return domain.ErrRegistrationClosed
		}

		existing, err := tx.Registration(ctx, userID)
		switch {
		case errors.Is(err, domain.ErrRegistrationNotFound):
			existing = &domain.Registration{
				ID:        uuid.New().String(),
				EventID:   event.ID,
				UserID:    userID,
				CreatedAt: now,
			}
		case err != nil:
			return err
		case existing.IsActive():
			return domain.ErrAlreadyRegistered
		}

		if event.IsFull() {
			return domain.ErrEventFull
		}

		existing.Activate(now)
		if err = tx.SaveRegistration(ctx, existing); err != nil {
			return err
		}

		event.RegisteredCount++
		event.UpdatedAt = now
		if err = tx.SaveEvent(ctx, event); err != nil {
			return err
		}

		reg = existing
		return nil
	})
	if err != nil {
		s.logRejected(opRegister, eventID, userID, err)
		return nil, fmt.Errorf("register: %w", err)
	}

	s.logger.Info("registration created",
		logger.String("registration_id", reg.ID),
		logger.String("event_id", eventID),
		logger.String("user_id", userID),
	)

	return reg, nil
}

func (s *RegistrationService) Cancel(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	var reg *domain.Registration
	err := s.run(ctx, opCancel, eventID, func(ctx context.Context, tx ports.EventTx) error {
		event := tx.Event()
		now := s.now()

		existing, err := tx.Registration(ctx, userID)
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return domain.ErrNotRegistered
		}
		if err != nil {
			return err
		}
		if !existing.IsActive() {
			return domain.ErrNotRegistered
		}

		existing.Cancel(now)
		if err = tx.SaveRegistration(ctx, existing); err != nil {
			return err
		}

		if event.RegisteredCount > 0 {
			event.RegisteredCount--
		} else {
			s.logger.Warn("registered count already zero on cancel",
				logger.String("event_id", event.ID),
			)
		}
		event.UpdatedAt = now
		if err = tx.SaveEvent(ctx, event); err != nil {
			return err
		}

		reg = existing
		return nil
	})
	if err != nil {
		s.logRejected(opCancel, eventID, userID, err)
		return nil, fmt.Errorf("cancel: %w", err)
	}

	s.logger.Info("registration cancelled",
		logger.String("registration_id", reg.ID),
		logger.String("event_id", eventID),
		logger.String("user_id", userID),
	)

	return reg, nil
}

// MarkAttended only touches the registration record; counters are unchanged.
// Marking an already attended registration succeeds without changes.
func (s *RegistrationService) MarkAttended(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrValidation)
	}

	var reg *domain.Registration
	err := s.run(ctx, opMarkAttended, eventID, func(ctx context.Context, tx ports.EventTx) error {
		event := tx.Event()
		now := s.now()

		if !event.HasStarted(now) {
			return domain.ErrEventNotStarted
		}

		existing, err := tx.Registration(ctx, userID)
		if errors.Is(err, domain.ErrRegistrationNotFound) {
			return domain.ErrNotRegistered
		}
		if err != nil {
			return err
		}
		if s.policy.AttendanceRequiresActive && !existing.IsActive() {
			return domain.ErrNotRegistered
		}

		if !existing.Attended {
			existing.MarkAttended(now)
			if err = tx.SaveRegistration(ctx, existing); err != nil {
				return err
			}
		}

		reg = existing
		return nil
	})
	if err != nil {
		s.logRejected(opMarkAttended, eventID, userID, err)
		return nil, fmt.Errorf("mark attended: %w", err)
	}

	s.logger.Info("attendance recorded",
		logger.String("event_id", eventID),
		logger.String("user_id", userID),
	)

	return reg, nil
}

// CloseEvent soft-deletes the event. With cascade, active registrations are
// cancelled in the same step; without it, an event that still has any fails
// with ErrEventHasRegistrations. It returns the number of cancelled
// registrations.
func (s *RegistrationService) CloseEvent(ctx context.Context, eventID string, cascade bool) (int, error) {
	var cancelled int
	err := s.run(ctx, opCloseEvent, eventID, func(ctx context.Context, tx ports.EventTx) error {
		event := tx.Event()
		now := s.now()

		active, err := tx.ActiveRegistrations(ctx)
		if err != nil {
			return err
		}
		if len(active) > 0 && !cascade {
			return domain.ErrEventHasRegistrations
		}

		for _, r := range active {
			r.Cancel(now)
			if err = tx.SaveRegistration(ctx, r); err != nil {
				return err
			}
		}

		event.RegisteredCount = 0
		event.UpdatedAt = now
		event.DeletedAt = &now
		if err = tx.SaveEvent(ctx, event); err != nil {
			return err
		}

		cancelled = len(active)
		return nil
	})
	if err != nil {
		s.logRejected(opCloseEvent, eventID, "", err)
		return 0, fmt.Errorf("close event: %w", err)
	}

	s.logger.Info("event closed",
		logger.String("event_id", eventID),
		logger.Int("cancelled_registrations", cancelled),
	)

	return cancelled, nil
}

// Reconcile compares every live event's registered count with its active
// ledger records and repairs the counter from the ledger. It returns how many
// events were repaired. One event failing does not stop the others.
func (s *RegistrationService) Reconcile(ctx context.Context) (int, error) {
	events, err := s.events.List(ctx, domain.EventFilter{})
	if err != nil {
		return 0, fmt.Errorf("list events: %w", err)
	}

	var (
		repaired int
		errs     []error
	)
	for _, e := range events {
		if err = ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		fixed, err := s.reconcileEvent(ctx, e.ID)
		switch {
		case errors.Is(err, domain.ErrEventNotFound):
			// deleted since the listing
		case err != nil:
			errs = append(errs, fmt.Errorf("event %s: %w", e.ID, err))
		case fixed:
			repaired++
		}
	}

	return repaired, errors.Join(errs...)
}

func (s *RegistrationService) reconcileEvent(ctx context.Context, eventID string) (bool, error) {
	var fixed bool
	err := s.locker.WithEventLock(ctx, eventID, func(ctx context.Context, tx ports.EventTx) error {
		event := tx.Event()

		active, err := tx.ActiveRegistrations(ctx)
		if err != nil {
			return err
		}

		n := len(active)
		if n == event.RegisteredCount {
			return nil
		}
		if n > event.Capacity {
			s.logger.Error("active registrations exceed capacity",
				logger.String("event_id", event.ID),
				logger.Int("active", n),
				logger.Int("capacity", event.Capacity),
			)
			return fmt.Errorf("%d active registrations exceed capacity %d", n, event.Capacity)
		}

		delta := n - event.RegisteredCount
		s.logger.Warn("registered count drift repaired",
			logger.String("event_id", event.ID),
			logger.Int("stored", event.RegisteredCount),
			logger.Int("ledger", n),
		)

		event.RegisteredCount = n
		event.UpdatedAt = s.now()
		if err = tx.SaveEvent(ctx, event); err != nil {
			return err
		}

		s.recorder.ObserveDrift(event.ID, delta)
		fixed = true
		return nil
	})

	return fixed, err
}

func (s *RegistrationService) run(
	ctx context.Context,
	op, eventID string,
	fn func(ctx context.Context, tx ports.EventTx) error,
) error {
	start := time.Now()
	err := s.locker.WithEventLock(ctx, eventID, fn)

	outcome := "ok"
	if err != nil {
		outcome = domain.Code(err)
	}
	s.recorder.ObserveOperation(op, outcome, time.Since(start))

	return err
}

// logRejected keeps expected outcomes (full, duplicate, ...) at debug level
// and reports everything else as an error.
func (s *RegistrationService) logRejected(op, eventID, userID string, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		s.logger.Debug("registration operation rejected",
			logger.String("operation", op),
			logger.String("event_id", eventID),
			logger.String("user_id", userID),
			logger.String("reason", de.Code()),
		)
		return
	}

	s.logger.Error("registration operation failed",
		logger.String("operation", op),
		logger.String("event_id", eventID),
		logger.String("user_id", userID),
		logger.String("error", err.Error()),
	)
}
