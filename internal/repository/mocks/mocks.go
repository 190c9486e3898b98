package mocks

import (
	"context"

	"github.com/askforge/doubtbot/internal/domain/query"
	"github.com/stretchr/testify/mock"
)

// QueryRepository is a mock for repository.QueryRepository.
type QueryRepository struct {
	mock.Mock
}

func (m *QueryRepository) Create(ctx context.Context, q *query.Query) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *QueryRepository) Get(ctx context.Context, threadID string) (*query.Query, error) {
	args := m.Called(ctx, threadID)
	if q, ok := args.Get(0).(*query.Query); ok {
		return q, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *QueryRepository) UpdateResolved(ctx context.Context, threadID string, by query.UserRef) error {
	args := m.Called(ctx, threadID, by)
	return args.Error(0)
}

func (m *QueryRepository) ListByStatus(ctx context.Context, status query.Status) ([]query.Query, error) {
	args := m.Called(ctx, status)
	if list, ok := args.Get(0).([]query.Query); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// Discussions is a mock for query.Discussions.
type Discussions struct {
	mock.Mock
}

func (m *Discussions) CreateThread(ctx context.Context, channelID, messageID, name string) (string, error) {
	args := m.Called(ctx, channelID, messageID, name)
	return args.String(0), args.Error(1)
}

// Messenger is a mock for query.Messenger.
type Messenger struct {
	mock.Mock
}

func (m *Messenger) Send(ctx context.Context, channelID, text string) error {
	args := m.Called(ctx, channelID, text)
	return args.Error(0)
}

func (m *Messenger) SendDirect(ctx context.Context, userID, text string) error {
	args := m.Called(ctx, userID, text)
	return args.Error(0)
}

// Authorizer is a mock for query.Authorizer.
type Authorizer struct {
	mock.Mock
}

func (m *Authorizer) CanListOpen(ctx context.Context, actorID, channelID string) (bool, error) {
	args := m.Called(ctx, actorID, channelID)
	return args.Bool(0), args.Error(1)
}
