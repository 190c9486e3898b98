package firestore

import (
	"context"
	"fmt"
	"time"

	fs "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/askforge/doubtbot/internal/domain/query"
	"github.com/askforge/doubtbot/internal/repository"
)

const collection = "queries"

// QueryRepository implements repository.QueryRepository for Firestore
type QueryRepository struct {
	client *Client
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(client *Client) *QueryRepository {
	return &QueryRepository{client: client}
}

// queryDoc mirrors query.Query with the collection's field names.
// created_at and last_activity_at carry the serverTimestamp option so
// the store assigns them on write.
type queryDoc struct {
	ThreadID       string     `firestore:"thread_id"`
	MessageID      string     `firestore:"message_id"`
	AuthorID       string     `firestore:"author_id"`
	AuthorName     string     `firestore:"author_name"`
	Content        string     `firestore:"query_content"`
	Description    string     `firestore:"doubt_description"`
	MentorIDs      []string   `firestore:"mentioned_mentors_ids"`
	ChannelID      string     `firestore:"channel_id"`
	Status         string     `firestore:"status"`
	MentorPinged   bool       `firestore:"mentor_pinged"`
	CreatedAt      time.Time  `firestore:"created_at,serverTimestamp"`
	LastActivityAt time.Time  `firestore:"last_activity_at,serverTimestamp"`
	ResolvedByID   string     `firestore:"resolved_by_id,omitempty"`
	ResolvedByName string     `firestore:"resolved_by_name,omitempty"`
	ResolvedAt     *time.Time `firestore:"resolved_at,omitempty"`
}

func docFrom(q *query.Query) queryDoc {
	return queryDoc{
		ThreadID:     q.ThreadID,
		MessageID:    q.MessageID,
		AuthorID:     q.AuthorID,
		AuthorName:   q.AuthorName,
		Content:      q.Content,
		Description:  q.Description,
		MentorIDs:    q.MentorIDs,
		ChannelID:    q.ChannelID,
		Status:       string(q.Status),
		MentorPinged: q.MentorPinged,
	}
}

func (d queryDoc) toQuery() query.Query {
	return query.Query{
		ThreadID:       d.ThreadID,
		MessageID:      d.MessageID,
		AuthorID:       d.AuthorID,
		AuthorName:     d.AuthorName,
		Content:        d.Content,
		Description:    d.Description,
		MentorIDs:      d.MentorIDs,
		ChannelID:      d.ChannelID,
		Status:         query.Status(d.Status),
		MentorPinged:   d.MentorPinged,
		CreatedAt:      d.CreatedAt,
		LastActivityAt: d.LastActivityAt,
		ResolvedByID:   d.ResolvedByID,
		ResolvedByName: d.ResolvedByName,
		ResolvedAt:     d.ResolvedAt,
	}
}

// Create writes a new document keyed by thread id. Firestore's Create
// has create-if-absent semantics, so a colliding id is a write error.
func (r *QueryRepository) Create(ctx context.Context, q *query.Query) error {
	_, err := r.client.Collection(collection).Doc(q.ThreadID).Create(ctx, docFrom(q))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create query: %w", err)
	}
	return nil
}

// Get retrieves a query by thread id
func (r *QueryRepository) Get(ctx context.Context, threadID string) (*query.Query, error) {
	snap, err := r.client.Collection(collection).Doc(threadID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get query: %w", err)
	}

	var d queryDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, fmt.Errorf("failed to decode query: %w", err)
	}
	q := d.toQuery()
	return &q, nil
}

// UpdateResolved transitions a query to resolved with server timestamps
func (r *QueryRepository) UpdateResolved(ctx context.Context, threadID string, by query.UserRef) error {
	_, err := r.client.Collection(collection).Doc(threadID).Update(ctx, []fs.Update{
		{Path: "status", Value: string(query.StatusResolved)},
		{Path: "resolved_by_id", Value: by.ID},
		{Path: "resolved_by_name", Value: by.Name},
		{Path: "resolved_at", Value: fs.ServerTimestamp},
		{Path: "last_activity_at", Value: fs.ServerTimestamp},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to resolve query: %w", err)
	}
	return nil
}

// ListByStatus returns every query with the given status, oldest first
func (r *QueryRepository) ListByStatus(ctx context.Context, s query.Status) ([]query.Query, error) {
	iter := r.client.Collection(collection).
		Where("status", "==", string(s)).
		OrderBy("created_at", fs.Asc).
		Documents(ctx)
	defer iter.Stop()

	var result []query.Query
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list queries: %w", err)
		}
		var d queryDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, fmt.Errorf("failed to decode query: %w", err)
		}
		result = append(result, d.toQuery())
	}

	return result, nil
}
