package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/askforge/doubtbot/internal/domain/query"
)

func TestParseCommand(t *testing.T) {
	cmd, ok := parseCommand("!resolve", "!")
	require.True(t, ok)
	require.Equal(t, "resolve", cmd)

	cmd, ok = parseCommand("!OpenDoubts now please", "!")
	require.True(t, ok)
	require.Equal(t, "opendoubts", cmd)

	_, ok = parseCommand("doubt <@mA> help", "!")
	require.False(t, ok)

	_, ok = parseCommand("!", "!")
	require.False(t, ok)

	_, ok = parseCommand("?resolve", "!")
	require.False(t, ok)
}

func TestEventContext_FollowsLifecycle(t *testing.T) {
	b := New(nil, nil, nil, Config{}, nil)

	// Before Start the handlers fall back to a background context.
	require.NoError(t, b.eventContext().Err())

	ctx, cancel := context.WithCancel(context.Background())
	b.ctx = ctx
	cancel()
	require.ErrorIs(t, b.eventContext().Err(), context.Canceled,
		"handler contexts must observe shutdown")
}

func TestUserRefs_SkipsBots(t *testing.T) {
	refs := userRefs([]*discordgo.User{
		{ID: "u1", Username: "asha"},
		{ID: "b1", Username: "somebot", Bot: true},
		nil,
		{ID: "u2", Username: "ravi"},
	})
	require.Equal(t, []query.UserRef{
		{ID: "u1", Name: "asha"},
		{ID: "u2", Name: "ravi"},
	}, refs)
}
