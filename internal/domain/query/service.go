package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/askforge/doubtbot/internal/format"
	"github.com/askforge/doubtbot/internal/repository"
)

// Service orchestrates the query lifecycle: submit, resolve and the
// privileged open-doubts listing. All failures are handled here, at the
// operation boundary; the returned error only reports a failure to
// deliver the user-facing outcome itself.
type Service struct {
	queries    Repository
	threads    Discussions
	messenger  Messenger
	authorizer Authorizer
	classifier Classifier
	logger     *slog.Logger
}

// NewService creates a new query lifecycle service.
func NewService(
	queries Repository,
	threads Discussions,
	messenger Messenger,
	authorizer Authorizer,
	classifier Classifier,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{
		queries:    queries,
		threads:    threads,
		messenger:  messenger,
		authorizer: authorizer,
		classifier: classifier,
		logger:     logger,
	}
}

// Submit classifies an inbound message and, for a well-formed doubt,
// creates the discussion thread, persists the record and confirms to the
// originating channel, strictly in that order. Messages without the
// trigger keyword are ignored.
func (s *Service) Submit(ctx context.Context, msg Message) error {
	parsed, err := s.classifier.Classify(msg.Content, msg.Mentions)
	if err != nil {
		if errors.Is(err, ErrNotADoubt) {
			return nil
		}
		s.logger.Debug("doubt rejected", "author", msg.Author.ID, "reason", err)
		return s.messenger.Send(ctx, msg.ChannelID, s.rejection(msg.Author, err))
	}

	name := format.ThreadName(msg.Author.Name, parsed.Description)
	threadID, err := s.threads.CreateThread(ctx, msg.ChannelID, msg.ID, name)
	if err != nil {
		s.logger.Error("creating discussion thread", "channel", msg.ChannelID, "error", err)
		return s.messenger.Send(ctx, msg.ChannelID, format.ThreadCreateApology(msg.Author.ID))
	}

	mentorIDs := make([]string, 0, len(parsed.Mentions))
	for _, m := range parsed.Mentions {
		mentorIDs = append(mentorIDs, m.ID)
	}

	q := &Query{
		ThreadID:    threadID,
		MessageID:   msg.ID,
		AuthorID:    msg.Author.ID,
		AuthorName:  msg.Author.Name,
		Content:     msg.Content,
		Description: parsed.Description,
		MentorIDs:   mentorIDs,
		ChannelID:   msg.ChannelID,
		Status:      StatusOpen,
	}
	if err := s.queries.Create(ctx, q); err != nil {
		// The thread already exists; the missing record is an accepted
		// gap, surfaced in the logs only.
		s.logger.Error("persisting query record: thread has no backing record",
			"thread", threadID, "error", err)
	}

	return s.messenger.Send(ctx, msg.ChannelID, format.SubmitConfirmation(msg.Author.ID, threadID))
}

func (s *Service) rejection(author UserRef, err error) string {
	switch {
	case errors.Is(err, ErrNoMentorTagged):
		return format.NoMentorTagged(author.ID)
	case errors.Is(err, ErrDescriptionTooShort):
		minLen := s.classifier.MinDescriptionLen
		if minLen == 0 {
			minLen = DefaultMinDescriptionLen
		}
		return format.DescriptionTooShort(author.ID, minLen)
	}
	return format.Apology(author.ID)
}

// Resolve marks the query tracked by threadID as resolved. It must be
// invoked from inside the discussion thread; resolving an already
// resolved query is a no-op reported back to the actor.
func (s *Service) Resolve(ctx context.Context, actor UserRef, threadID string, inThread bool) error {
	if !inThread {
		return s.messenger.Send(ctx, threadID, format.WrongContext())
	}

	q, err := s.queries.Get(ctx, threadID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return s.messenger.Send(ctx, threadID, format.NotTracked())
		}
		s.logger.Error("loading query", "thread", threadID, "error", err)
		return s.messenger.Send(ctx, threadID, format.Apology(actor.ID))
	}

	if q.Status == StatusResolved {
		return s.messenger.Send(ctx, threadID, format.AlreadyResolved(q.ResolvedByName))
	}

	if err := s.queries.UpdateResolved(ctx, threadID, actor); err != nil {
		s.logger.Error("resolving query", "thread", threadID, "error", err)
		return s.messenger.Send(ctx, threadID, format.Apology(actor.ID))
	}

	s.logger.Info("query resolved", "thread", threadID, "by", actor.ID)
	return s.messenger.Send(ctx, threadID, format.ResolveConfirmation(actor.ID))
}

// ListOpen delivers the open-doubts report privately to the actor. The
// report never reaches the invoking channel; when direct delivery is
// rejected the channel only gets a content-free notice.
func (s *Service) ListOpen(ctx context.Context, actor UserRef, channelID string) error {
	allowed, err := s.authorizer.CanListOpen(ctx, actor.ID, channelID)
	if err != nil {
		s.logger.Error("checking list capability", "actor", actor.ID, "error", err)
		return s.messenger.Send(ctx, channelID, format.Apology(actor.ID))
	}
	if !allowed {
		s.logger.Warn("open-doubts listing denied", "actor", actor.ID)
		return s.messenger.Send(ctx, channelID, format.PermissionDenied(actor.ID))
	}

	open, err := s.queries.ListByStatus(ctx, StatusOpen)
	if err != nil {
		s.logger.Error("listing open queries", "error", err)
		return s.messenger.Send(ctx, channelID, format.Apology(actor.ID))
	}

	if len(open) == 0 {
		if err := s.messenger.SendDirect(ctx, actor.ID, format.NoOpenDoubts()); err != nil {
			return s.directFallback(ctx, actor, channelID, err)
		}
		return nil
	}

	items := make([]format.ReportItem, 0, len(open))
	for _, q := range open {
		items = append(items, format.ReportItem{
			AuthorName:  q.AuthorName,
			Description: q.Description,
			ThreadID:    q.ThreadID,
			CreatedAt:   q.CreatedAt,
		})
	}
	for _, chunk := range format.OpenDoubtsReport(items, format.ReportChunkLimit) {
		if err := s.messenger.SendDirect(ctx, actor.ID, chunk); err != nil {
			return s.directFallback(ctx, actor, channelID, err)
		}
	}
	return nil
}

func (s *Service) directFallback(ctx context.Context, actor UserRef, channelID string, cause error) error {
	s.logger.Warn("direct delivery failed", "actor", actor.ID, "error", cause)
	if err := s.messenger.Send(ctx, channelID, format.DMsDisabledNotice(actor.ID)); err != nil {
		return fmt.Errorf("delivering fallback notice: %w", err)
	}
	return nil
}
