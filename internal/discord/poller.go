package discord

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	watchInterval     = 5 * time.Minute
	watchHistoryLimit = 10
)

// watchThread periodically logs the recent history of the configured
// thread. Best-effort and read-only; failures never touch query state.
func (b *Bot) watchThread(ctx context.Context) {
	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	b.checkThread(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.checkThread(ctx)
		}
	}
}

func (b *Bot) checkThread(ctx context.Context) {
	msgs, err := b.session.ChannelMessages(b.cfg.WatchThreadID, watchHistoryLimit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		b.logger.Error("periodic thread check failed", "thread", b.cfg.WatchThreadID, "error", err)
		return
	}

	b.logger.Info("checking watched thread", "thread", b.cfg.WatchThreadID, "messages", len(msgs))
	for _, m := range msgs {
		if m.Author == nil {
			continue
		}
		b.logger.Info("watched thread message", "author", m.Author.Username, "content", m.Content)
	}
}
