package repositories

import (
	"context"
)

// TransactionManager runs a unit of work against the backing store.
type TransactionManager interface {
	// WithTransaction runs fn inside a single atomic unit of work. The context
	// passed to fn carries the unit of work; repository calls made with it
	// participate in the same commit. If fn returns an error, or the commit
	// fails, nothing fn wrote is kept. Nested calls join the outer unit.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
