package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/askforge/doubtbot/internal/config"
	"github.com/askforge/doubtbot/internal/discord"
	"github.com/askforge/doubtbot/internal/domain/query"
	"github.com/askforge/doubtbot/internal/firestore"
	"github.com/askforge/doubtbot/internal/repository"
	"github.com/askforge/doubtbot/internal/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queries, closeStore, err := openStore(ctx, cfg.Store)
	if err != nil {
		logger.Error("failed to open query store", "backend", cfg.Store.Backend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		logger.Error("failed to create discord session", "error", err)
		os.Exit(1)
	}

	policy, err := query.ParseDetectionPolicy(cfg.Classifier.Policy)
	if err != nil {
		logger.Error("invalid classifier policy", "error", err)
		os.Exit(1)
	}
	classifier := query.Classifier{
		Policy:            policy,
		MinDescriptionLen: cfg.Classifier.MinDescriptionLength,
	}

	gateway := discord.NewGateway(session)
	svc := query.NewService(queries, gateway, gateway, gateway, classifier, logger)

	bot := discord.New(session, gateway, svc, discord.Config{
		CommandPrefix:    cfg.Discord.CommandPrefix,
		WelcomeChannelID: cfg.Discord.WelcomeChannelID,
		WatchThreadID:    cfg.Discord.WatchThreadID,
	}, logger)

	if err := bot.Start(ctx); err != nil {
		logger.Error("failed to log in", "error", err)
		os.Exit(1)
	}
	defer bot.Close()

	logger.Info("doubtbot running", "store", cfg.Store.Backend, "policy", string(policy))

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")
}

func openStore(ctx context.Context, cfg config.StoreConfig) (repository.QueryRepository, func(), error) {
	switch cfg.Backend {
	case "firestore":
		client, err := firestore.New(ctx, cfg.ProjectID, cfg.CredentialsPath)
		if err != nil {
			return nil, nil, err
		}
		return firestore.NewQueryRepository(client), func() { client.Close() }, nil
	case "sqlite":
		db, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewQueryRepository(db), func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
