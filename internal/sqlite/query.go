package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/askforge/doubtbot/internal/domain/query"
	"github.com/askforge/doubtbot/internal/repository"
)

// QueryRepository implements repository.QueryRepository for SQLite
type QueryRepository struct {
	db *DB
}

// NewQueryRepository creates a new QueryRepository
func NewQueryRepository(db *DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// Create persists a new query with database-assigned timestamps
func (r *QueryRepository) Create(ctx context.Context, q *query.Query) error {
	mentors, err := json.Marshal(q.MentorIDs)
	if err != nil {
		return fmt.Errorf("failed to encode mentor ids: %w", err)
	}

	stmt := `
		INSERT INTO queries (
			thread_id, message_id, author_id, author_name, query_content,
			doubt_description, mentioned_mentors_ids, channel_id, status,
			mentor_pinged, created_at, last_activity_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'), datetime('now'))
	`

	_, err = r.db.ExecContext(ctx, stmt,
		q.ThreadID,
		q.MessageID,
		q.AuthorID,
		q.AuthorName,
		q.Content,
		q.Description,
		string(mentors),
		q.ChannelID,
		string(q.Status),
		q.MentorPinged,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAlreadyExists
		}
		return fmt.Errorf("failed to create query: %w", err)
	}

	return nil
}

const queryColumns = `
	thread_id, message_id, author_id, author_name, query_content,
	doubt_description, mentioned_mentors_ids, channel_id, status,
	mentor_pinged, created_at, last_activity_at,
	resolved_by_id, resolved_by_name, resolved_at
`

// Get retrieves a query by thread id
func (r *QueryRepository) Get(ctx context.Context, threadID string) (*query.Query, error) {
	stmt := `SELECT ` + queryColumns + ` FROM queries WHERE thread_id = ?`

	row := r.db.QueryRowContext(ctx, stmt, threadID)
	rec, err := scanQuery(row)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get query: %w", err)
	}

	return rec, nil
}

// UpdateResolved transitions a query to resolved
func (r *QueryRepository) UpdateResolved(ctx context.Context, threadID string, by query.UserRef) error {
	stmt := `
		UPDATE queries
		SET status = ?, resolved_by_id = ?, resolved_by_name = ?,
		    resolved_at = datetime('now'), last_activity_at = datetime('now')
		WHERE thread_id = ?
	`

	res, err := r.db.ExecContext(ctx, stmt, string(query.StatusResolved), by.ID, by.Name, threadID)
	if err != nil {
		return fmt.Errorf("failed to resolve query: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to resolve query: %w", err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// ListByStatus returns every query with the given status, oldest first
func (r *QueryRepository) ListByStatus(ctx context.Context, status query.Status) ([]query.Query, error) {
	stmt := `SELECT ` + queryColumns + ` FROM queries WHERE status = ? ORDER BY created_at, thread_id`

	rows, err := r.db.QueryContext(ctx, stmt, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer rows.Close()

	var result []query.Query
	for rows.Next() {
		rec, err := scanQuery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan query: %w", err)
		}
		result = append(result, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuery(row rowScanner) (*query.Query, error) {
	var (
		rec            query.Query
		mentors        string
		status         string
		resolvedByID   sql.NullString
		resolvedByName sql.NullString
		resolvedAt     sql.NullTime
	)

	err := row.Scan(
		&rec.ThreadID,
		&rec.MessageID,
		&rec.AuthorID,
		&rec.AuthorName,
		&rec.Content,
		&rec.Description,
		&mentors,
		&rec.ChannelID,
		&status,
		&rec.MentorPinged,
		&rec.CreatedAt,
		&rec.LastActivityAt,
		&resolvedByID,
		&resolvedByName,
		&resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(mentors), &rec.MentorIDs); err != nil {
		return nil, fmt.Errorf("failed to decode mentor ids: %w", err)
	}
	rec.Status = query.Status(status)
	rec.ResolvedByID = resolvedByID.String
	rec.ResolvedByName = resolvedByName.String
	if resolvedAt.Valid {
		t := resolvedAt.Time
		rec.ResolvedAt = &t
	}

	return &rec, nil
}
