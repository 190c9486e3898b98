// Package format produces every user-facing message string. Keeping them
// in one place avoids drift between near-duplicate variants.
package format

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ReportChunkLimit is the maximum characters per delivered report message.
const ReportChunkLimit = 1900

// threadNameLimit caps how much of the description ends up in the thread name.
const threadNameLimit = 25

// MentionUser renders a user mention token.
func MentionUser(id string) string { return "<@" + id + ">" }

// MentionChannel renders a channel or thread reference token.
func MentionChannel(id string) string { return "<#" + id + ">" }

// ThreadName names the discussion thread for a new doubt.
func ThreadName(authorName, description string) string {
	desc := description
	if runes := []rune(desc); len(runes) > threadNameLimit {
		desc = string(runes[:threadNameLimit])
	}
	return fmt.Sprintf("Doubt from %s - %s", authorName, desc)
}

// NoMentorTagged rejects a doubt with no tagged mentor.
func NoMentorTagged(authorID string) string {
	return fmt.Sprintf("%s please tag at least one mentor so your doubt reaches someone who can help.", MentionUser(authorID))
}

// DescriptionTooShort rejects a doubt whose cleaned description is too short.
func DescriptionTooShort(authorID string, minLen int) string {
	return fmt.Sprintf("%s please describe your doubt in a bit more detail (at least %d characters).", MentionUser(authorID), minLen)
}

// ThreadCreateApology reports a failed discussion thread creation.
func ThreadCreateApology(authorID string) string {
	return fmt.Sprintf("Sorry %s, I couldn't open a discussion thread for your doubt. Please try again later.", MentionUser(authorID))
}

// Apology reports an internal failure without detail.
func Apology(userID string) string {
	return fmt.Sprintf("Sorry %s, something went wrong on my side. Please try again later.", MentionUser(userID))
}

// SubmitConfirmation confirms a tracked doubt and names its thread.
func SubmitConfirmation(authorID, threadID string) string {
	return fmt.Sprintf("%s your doubt is being tracked. Head over to %s to discuss it.", MentionUser(authorID), MentionChannel(threadID))
}

// ResolveConfirmation confirms a resolve inside the thread.
func ResolveConfirmation(actorID string) string {
	return fmt.Sprintf("Doubt marked as resolved by %s. Thanks!", MentionUser(actorID))
}

// AlreadyResolved notifies that the doubt was resolved earlier.
func AlreadyResolved(resolvedByName string) string {
	if resolvedByName == "" {
		return "This doubt is already resolved."
	}
	return fmt.Sprintf("This doubt was already resolved by %s.", resolvedByName)
}

// NotTracked notifies that the thread has no tracked doubt.
func NotTracked() string {
	return "I don't have a doubt on record for this thread."
}

// WrongContext notifies that resolve only works inside a doubt thread.
func WrongContext() string {
	return "This command only works inside a doubt thread."
}

// PermissionDenied notifies an actor lacking the required capability.
func PermissionDenied(actorID string) string {
	return fmt.Sprintf("%s you don't have permission to list open doubts.", MentionUser(actorID))
}

// NoOpenDoubts is the private notice for an empty open set.
func NoOpenDoubts() string {
	return "There are no open doubts right now."
}

// DMsDisabledNotice is the public, content-free fallback when direct
// delivery is rejected.
func DMsDisabledNotice(actorID string) string {
	return fmt.Sprintf("%s I couldn't send you a direct message. Please enable messages from server members and try again.", MentionUser(actorID))
}

// Welcome greets a newly joined member.
func Welcome(userID string) string {
	return fmt.Sprintf("Welcome %s! If you're stuck, post a message containing \"doubt\" and tag a mentor.", MentionUser(userID))
}

// HelloReply answers the smoke-test command.
func HelloReply() string { return "Hello world!" }

// ReportItem is one open doubt in the listing report.
type ReportItem struct {
	AuthorName  string
	Description string
	ThreadID    string
	CreatedAt   time.Time
}

// OpenDoubtsReport renders open doubts into chunks no longer than limit
// characters each, preserving record order across chunks.
func OpenDoubtsReport(items []ReportItem, limit int) []string {
	if limit <= 0 {
		limit = ReportChunkLimit
	}

	lines := make([]string, 0, len(items)+1)
	lines = append(lines, fmt.Sprintf("**Open doubts: %d**", len(items)))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s - %s (raised %s, see %s)",
			i+1,
			item.AuthorName,
			item.Description,
			item.CreatedAt.Format("2006-01-02 15:04 MST"),
			MentionChannel(item.ThreadID),
		))
	}

	var chunks []string
	var b strings.Builder
	for _, line := range lines {
		for _, piece := range splitLine(line, limit) {
			// +1 for the joining newline.
			if b.Len() > 0 && b.Len()+len(piece)+1 > limit {
				chunks = append(chunks, b.String())
				b.Reset()
			}
			if b.Len() > 0 {
				b.WriteByte('\n')
			}
			b.WriteString(piece)
		}
	}
	if b.Len() > 0 {
		chunks = append(chunks, b.String())
	}
	return chunks
}

// splitLine breaks a single line on rune boundaries so every piece fits
// the chunk limit. A description can approach the chat client's message
// cap on its own, so one rendered line may already be over the limit.
func splitLine(line string, limit int) []string {
	if len(line) <= limit {
		return []string{line}
	}
	var pieces []string
	var b strings.Builder
	for _, r := range line {
		if b.Len()+utf8.RuneLen(r) > limit {
			pieces = append(pieces, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		pieces = append(pieces, b.String())
	}
	return pieces
}
