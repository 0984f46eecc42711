package chat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ffridge/internal/database"
)

// Repository is a database-backed store for the chat conversation log.
type Repository struct {
	db  *sql.DB
	hub *database.Hub
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		db:  d,
		hub: database.NewHub(),
	}
}

// GetAll returns the full conversation, oldest first.
func (r *Repository) GetAll(ctx context.Context) ([]Message, error) {
	return r.query(ctx,
		"SELECT id, role, text, timestamp FROM chat_messages ORDER BY timestamp ASC, rowid ASC")
}

// GetRecent returns the newest limit messages, newest first.
func (r *Repository) GetRecent(ctx context.Context, limit int) ([]Message, error) {
	return r.query(ctx,
		"SELECT id, role, text, timestamp FROM chat_messages ORDER BY timestamp DESC, rowid DESC LIMIT ?",
		limit)
}

// Insert appends a message to the conversation log.
func (r *Repository) Insert(ctx context.Context, m Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO chat_messages (id, role, text, timestamp)
		VALUES (?, ?, ?, ?)`,
		m.ID, string(m.Role), m.Text, m.Timestamp.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %w", err)
	}
	r.hub.Notify()
	return nil
}

// DeleteByID removes a single message.
func (r *Repository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM chat_messages WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete chat message: %w", err)
	}
	r.hub.Notify()
	return nil
}

// DeleteAll clears the conversation log.
func (r *Repository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM chat_messages"); err != nil {
		return fmt.Errorf("failed to clear chat messages: %w", err)
	}
	r.hub.Notify()
	return nil
}

// DeleteOldest removes all but the newest keepCount messages.
func (r *Repository) DeleteOldest(ctx context.Context, keepCount int) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM chat_messages
		WHERE id NOT IN (
			SELECT id FROM chat_messages ORDER BY timestamp DESC, rowid DESC LIMIT ?
		)`, keepCount)
	if err != nil {
		return fmt.Errorf("failed to prune chat messages: %w", err)
	}
	r.hub.Notify()
	return nil
}

// Count returns the number of stored messages.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chat_messages").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chat messages: %w", err)
	}
	return count, nil
}

// WatchAll emits the full conversation on subscribe and after every write.
func (r *Repository) WatchAll(ctx context.Context) <-chan []Message {
	return database.Watch(ctx, r.hub, r.GetAll)
}

func (r *Repository) query(ctx context.Context, q string, args ...any) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var (
			m         Message
			role      string
			timestamp int64
		)
		if err := rows.Scan(&m.ID, &role, &m.Text, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		m.Role = ParseRole(role)
		m.Timestamp = time.UnixMilli(timestamp)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat message rows: %w", err)
	}
	return out, nil
}
