package query

import "time"

// Status represents the lifecycle state of a query
type Status string

const (
	StatusOpen     Status = "open"
	StatusResolved Status = "resolved"
)

// UserRef identifies a chat user by id and display name
type UserRef struct {
	ID   string
	Name string
}

// Query represents a tracked doubt, keyed by the discussion thread
// created for it.
type Query struct {
	ThreadID       string     `json:"thread_id"`
	MessageID      string     `json:"message_id"`
	AuthorID       string     `json:"author_id"`
	AuthorName     string     `json:"author_name"`
	Content        string     `json:"query_content"`
	Description    string     `json:"doubt_description"`
	MentorIDs      []string   `json:"mentioned_mentors_ids"`
	ChannelID      string     `json:"channel_id"`
	Status         Status     `json:"status"`
	MentorPinged   bool       `json:"mentor_pinged"`
	CreatedAt      time.Time  `json:"created_at"`
	LastActivityAt time.Time  `json:"last_activity_at"`
	ResolvedByID   string     `json:"resolved_by_id,omitempty"`
	ResolvedByName string     `json:"resolved_by_name,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
}

// Message is an inbound chat message as delivered by the event router,
// with mention syntax already resolved to user references.
type Message struct {
	ID        string
	ChannelID string
	Author    UserRef
	Content   string
	Mentions  []UserRef
}
