// Package discord binds the query lifecycle to the Discord gateway. The
// event loop and REST calls live here; everything the bot says or
// decides comes from the domain and format packages.
package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Gateway exposes the chat operations the query service depends on. It
// implements query.Discussions, query.Messenger and query.Authorizer.
type Gateway struct {
	session *discordgo.Session
}

// NewGateway wraps a Discord session.
func NewGateway(session *discordgo.Session) *Gateway {
	return &Gateway{session: session}
}

// threadAutoArchiveMinutes keeps doubt threads visible for a day of
// inactivity before Discord archives them.
const threadAutoArchiveMinutes = 1440

// CreateThread starts a discussion thread anchored to a message and
// returns the thread id.
func (g *Gateway) CreateThread(ctx context.Context, channelID, messageID, name string) (string, error) {
	thread, err := g.session.MessageThreadStartComplex(channelID, messageID, &discordgo.ThreadStart{
		Name:                name,
		AutoArchiveDuration: threadAutoArchiveMinutes,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("starting thread: %w", err)
	}
	return thread.ID, nil
}

// Send delivers text to a channel or thread.
func (g *Gateway) Send(ctx context.Context, channelID, text string) error {
	if _, err := g.session.ChannelMessageSend(channelID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sending message: %w", err)
	}
	return nil
}

// SendDirect delivers text to a user's DM channel. Recipients who block
// messages from server members make this fail; callers fall back to a
// content-free public notice.
func (g *Gateway) SendDirect(ctx context.Context, userID, text string) error {
	channel, err := g.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("opening direct channel: %w", err)
	}
	if _, err := g.session.ChannelMessageSend(channel.ID, text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("sending direct message: %w", err)
	}
	return nil
}

// CanListOpen grants the open-doubts listing to administrators and
// server managers.
func (g *Gateway) CanListOpen(ctx context.Context, actorID, channelID string) (bool, error) {
	perms, err := g.session.UserChannelPermissions(actorID, channelID)
	if err != nil {
		return false, fmt.Errorf("reading permissions: %w", err)
	}
	return perms&(discordgo.PermissionAdministrator|discordgo.PermissionManageServer) != 0, nil
}
