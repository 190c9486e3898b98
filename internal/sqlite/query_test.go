package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/askforge/doubtbot/internal/domain/query"
	"github.com/askforge/doubtbot/internal/repository"
)

func newTestQuery(threadID string) *query.Query {
	return &query.Query{
		ThreadID:    threadID,
		MessageID:   uuid.NewString(),
		AuthorID:    "u1",
		AuthorName:  "asha",
		Content:     "doubt <@m1> <@m2> please help with build failure",
		Description: "please help with build failure",
		MentorIDs:   []string{"m1", "m2"},
		ChannelID:   "c1",
		Status:      query.StatusOpen,
	}
}

func TestQueryRepository_CreateGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewQueryRepository(db)

	threadID := uuid.NewString()
	q := newTestQuery(threadID)
	require.NoError(t, repo.Create(ctx, q))

	loaded, err := repo.Get(ctx, threadID)
	require.NoError(t, err)
	require.Equal(t, q.ThreadID, loaded.ThreadID)
	require.Equal(t, q.MessageID, loaded.MessageID)
	require.Equal(t, q.AuthorID, loaded.AuthorID)
	require.Equal(t, q.AuthorName, loaded.AuthorName)
	require.Equal(t, q.Content, loaded.Content)
	require.Equal(t, q.Description, loaded.Description)
	require.Equal(t, []string{"m1", "m2"}, loaded.MentorIDs, "mentor order must survive the round trip")
	require.Equal(t, q.ChannelID, loaded.ChannelID)
	require.Equal(t, query.StatusOpen, loaded.Status)
	require.False(t, loaded.MentorPinged)
	require.False(t, loaded.CreatedAt.IsZero(), "created_at must be store-assigned")
	require.False(t, loaded.LastActivityAt.IsZero())
	require.Empty(t, loaded.ResolvedByID)
	require.Nil(t, loaded.ResolvedAt)
}

func TestQueryRepository_CreateDuplicate(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewQueryRepository(db)

	q := newTestQuery("t1")
	require.NoError(t, repo.Create(ctx, q))

	err := repo.Create(ctx, newTestQuery("t1"))
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
}

func TestQueryRepository_GetMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewQueryRepository(db)

	_, err := repo.Get(context.Background(), "nope")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQueryRepository_Resolve(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewQueryRepository(db)

	require.NoError(t, repo.Create(ctx, newTestQuery("t1")))

	err := repo.UpdateResolved(ctx, "t1", query.UserRef{ID: "mod1", Name: "mod"})
	require.NoError(t, err)

	loaded, err := repo.Get(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, query.StatusResolved, loaded.Status)
	require.Equal(t, "mod1", loaded.ResolvedByID)
	require.Equal(t, "mod", loaded.ResolvedByName)
	require.NotNil(t, loaded.ResolvedAt)
	require.False(t, loaded.LastActivityAt.Before(loaded.CreatedAt))
}

func TestQueryRepository_ResolveMissing(t *testing.T) {
	db := NewTestDB(t)
	repo := NewQueryRepository(db)

	err := repo.UpdateResolved(context.Background(), "nope", query.UserRef{ID: "mod1", Name: "mod"})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestQueryRepository_ListByStatus(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	repo := NewQueryRepository(db)

	for _, id := range []string{"t1", "t2", "t3"} {
		require.NoError(t, repo.Create(ctx, newTestQuery(id)))
	}
	require.NoError(t, repo.UpdateResolved(ctx, "t2", query.UserRef{ID: "mod1", Name: "mod"}))

	open, err := repo.ListByStatus(ctx, query.StatusOpen)
	require.NoError(t, err)
	require.Len(t, open, 2)
	require.Equal(t, "t1", open[0].ThreadID)
	require.Equal(t, "t3", open[1].ThreadID)

	resolved, err := repo.ListByStatus(ctx, query.StatusResolved)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.Equal(t, "t2", resolved[0].ThreadID)
}

func TestQueryRepository_ListByStatusEmpty(t *testing.T) {
	db := NewTestDB(t)
	repo := NewQueryRepository(db)

	open, err := repo.ListByStatus(context.Background(), query.StatusOpen)
	require.NoError(t, err)
	require.Empty(t, open)
}
