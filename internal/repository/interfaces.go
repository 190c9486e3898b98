package repository

import (
	"context"

	"github.com/askforge/doubtbot/internal/domain/query"
)

// QueryRepository manages query persistence in the "queries" collection.
// Documents are keyed by the id of the discussion thread created for the
// query. Timestamps (created_at, last_activity_at, resolved_at) are
// assigned by the store, never by the caller.
type QueryRepository interface {
	// Create writes a new query. It fails with ErrAlreadyExists when the
	// thread id is already taken.
	Create(ctx context.Context, q *query.Query) error
	// Get returns the query for a thread id, or ErrNotFound.
	Get(ctx context.Context, threadID string) (*query.Query, error)
	// UpdateResolved transitions the query to resolved, stamping
	// resolved_by, resolved_at and last_activity_at. It fails with
	// ErrNotFound when the thread id is untracked.
	UpdateResolved(ctx context.Context, threadID string, by query.UserRef) error
	// ListByStatus returns every query with the given status. An empty
	// result is not an error.
	ListByStatus(ctx context.Context, status query.Status) ([]query.Query, error)
}
