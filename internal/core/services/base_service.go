package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/bank_backoffice/internal/apperrors"
	"github.com/SscSPs/bank_backoffice/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_backoffice/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_backoffice/internal/core/ports/services"
	"github.com/SscSPs/bank_backoffice/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Publisher portssvc.EventPublisher
	Clock     func() time.Time
}

// Option configures the shared parts of a service.
type Option func(*BaseService)

// WithPublisher sets where committed ledger events are sent.
func WithPublisher(p portssvc.EventPublisher) Option {
	return func(s *BaseService) {
		s.Publisher = p
	}
}

// WithClock overrides the time source. Tests use it to pin timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func newBaseService(options ...Option) BaseService {
	b := BaseService{Clock: time.Now}
	for _, option := range options {
		option(&b)
	}
	return b
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogFailure logs err unless it is an expected business outcome such as a
// missing entity or a rejected amount, which are logged at debug level.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	switch apperrors.KindOf(err) {
	case apperrors.ErrStoreUnavailable, nil:
		s.LogError(ctx, err, msg, keyvals...)
	default:
		s.LogDebug(ctx, msg, append([]any{slog.String("error", err.Error())}, keyvals...)...)
	}
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current time at the precision the store keeps.
func (s *BaseService) Now() time.Time {
	return s.Clock().UTC().Truncate(time.Microsecond)
}

// RequireStaff fails with ErrForbidden unless the caller is an employee or admin.
func (s *BaseService) RequireStaff(caller domain.Identity) error {
	if !caller.IsStaff() {
		return apperrors.NewAppError(apperrors.ErrForbidden, "operation requires an employee or administrator", nil)
	}
	return nil
}

// RequireAdmin fails with ErrForbidden unless the caller is an admin.
func (s *BaseService) RequireAdmin(caller domain.Identity) error {
	if !caller.IsAdmin() {
		return apperrors.NewAppError(apperrors.ErrForbidden, "operation requires an administrator", nil)
	}
	return nil
}

// AuthorizeCustomer lets staff act for any customer and customers act only for themselves.
func (s *BaseService) AuthorizeCustomer(caller domain.Identity, cif string) error {
	if caller.IsStaff() {
		return nil
	}
	if caller.Role == domain.RoleCustomer && caller.ID != "" && caller.ID == cif {
		return nil
	}
	return apperrors.NewAppError(apperrors.ErrForbidden, "customer may only access their own records", nil)
}

// AuthorizeAccount is AuthorizeCustomer for the owner of acc.
func (s *BaseService) AuthorizeAccount(caller domain.Identity, acc *domain.Account) error {
	return s.AuthorizeCustomer(caller, acc.CIF)
}

// entryTime returns a timestamp no earlier than the newest journal entry of any
// of the accounts, so per-account entry order follows lock order even if the
// wall clock steps back. Callers must hold the account locks.
func (s *BaseService) entryTime(ctx context.Context, journal portsrepo.JournalReader, accnos ...string) (time.Time, error) {
	ts := s.Now()
	for _, accno := range accnos {
		latest, err := journal.LatestEntryTime(ctx, accno)
		if err != nil {
			return time.Time{}, err
		}
		if latest.After(ts) {
			ts = latest
		}
	}
	return ts, nil
}

// publish sends a committed event. Failures are logged and never undo the commit.
func (s *BaseService) publish(ctx context.Context, event domain.LedgerEvent) {
	if s.Publisher == nil {
		return
	}
	if err := s.Publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		s.LogError(ctx, err, "Failed to publish ledger event",
			slog.String("event_type", event.Type),
			slog.String("entity_ref", event.EntityRef))
	}
}
