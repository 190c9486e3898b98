package query

import "context"

// Repository provides persistence for queries, keyed by thread id.
type Repository interface {
	Create(ctx context.Context, q *Query) error
	Get(ctx context.Context, threadID string) (*Query, error)
	UpdateResolved(ctx context.Context, threadID string, by UserRef) error
	ListByStatus(ctx context.Context, status Status) ([]Query, error)
}

// Discussions creates discussion threads anchored to a message.
type Discussions interface {
	CreateThread(ctx context.Context, channelID, messageID, name string) (string, error)
}

// Messenger delivers user-facing text to channels and users.
type Messenger interface {
	Send(ctx context.Context, channelID, text string) error
	SendDirect(ctx context.Context, userID, text string) error
}

// Authorizer decides whether an actor may run privileged operations.
type Authorizer interface {
	CanListOpen(ctx context.Context, actorID, channelID string) (bool, error)
}
