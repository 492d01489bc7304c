package chat

import (
	"context"
	"database/sql"
	"errors"

	"chatlink/pkg/apperr"

	"github.com/google/uuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetIDByHandle(ctx context.Context, handle string) (int, error) {
	var id int
	err := r.db.QueryRowContext(ctx, "SELECT id FROM users WHERE handle = $1", handle).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperr.ErrUserNotFound
		}
		return 0, err
	}
	return id, nil
}

// FindOrCreatePrivate returns the one private conversation for the pair,
// creating it if absent. The pair_key upsert keeps this idempotent under
// concurrent invocation.
func (r *Repository) FindOrCreatePrivate(ctx context.Context, aID, bID int) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	pairKey := PairKey(aID, bID)
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (id, kind, pair_key) VALUES ($1, 'private', $2)
         ON CONFLICT (pair_key) DO NOTHING`,
		uuid.New(), pairKey); err != nil {
		return uuid.Nil, err
	}

	var convID uuid.UUID
	if err := tx.QueryRowContext(ctx,
		`SELECT id FROM conversations WHERE pair_key = $1`, pairKey).Scan(&convID); err != nil {
		return uuid.Nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO participants (conversation_id, user_id) VALUES ($1, $2), ($1, $3)
         ON CONFLICT DO NOTHING`,
		convID, aID, bID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return convID, nil
}

// FindPrivateByPair looks up the private conversation for the pair; found is
// false when none exists.
func (r *Repository) FindPrivateByPair(ctx context.Context, aID, bID int) (uuid.UUID, bool, error) {
	var convID uuid.UUID
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM conversations WHERE pair_key = $1`, PairKey(aID, bID)).Scan(&convID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, err
	}
	return convID, true, nil
}

// InsertMessage appends to the conversation's log. The row is immutable; the
// server assigns the timestamp.
func (r *Repository) InsertMessage(ctx context.Context, convID uuid.UUID, sender, recipient, body string, isGroup bool) (*Message, error) {
	msg := &Message{
		ConversationID: convID,
		From:           sender,
		To:             recipient,
		Content:        body,
		IsGroupMsg:     isGroup,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (conversation_id, sender, recipient, body, is_group)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		convID, sender, recipient, body, isGroup).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

// MessagesByConversation returns the log in ascending creation order; the id
// tie-break keeps insertion order for equal timestamps.
func (r *Repository) MessagesByConversation(ctx context.Context, convID uuid.UUID) ([]Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, conversation_id, sender, recipient, body, is_group, created_at
         FROM messages
         WHERE conversation_id = $1
         ORDER BY created_at, id`,
		convID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.From, &m.To, &m.Content, &m.IsGroupMsg, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
