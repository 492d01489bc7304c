package group

import (
	"context"
	"database/sql"
	"errors"

	"chatlink/internal/chat"
	"chatlink/pkg/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

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

// Create provisions the group and its conversation together; the admin is the
// first member.
func (r *Repository) Create(ctx context.Context, name string, adminID int) (*Group, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	convID := uuid.New()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO conversations (id, kind) VALUES ($1, 'group')`, convID); err != nil {
		return nil, err
	}

	g := &Group{Name: name, AdminID: adminID, ConversationID: convID}
	err = tx.QueryRowContext(ctx,
		`INSERT INTO chat_groups (name, admin_id, conversation_id) VALUES ($1, $2, $3)
         RETURNING id, created_at`,
		name, adminID, convID).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.ErrGroupNameTaken
		}
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO participants (conversation_id, user_id) VALUES ($1, $2)`,
		convID, adminID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*Group, error) {
	g := &Group{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, admin_id, conversation_id, created_at FROM chat_groups WHERE name = $1`,
		name).Scan(&g.ID, &g.Name, &g.AdminID, &g.ConversationID, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrGroupNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *Repository) ListByMember(ctx context.Context, userID int) ([]Group, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT g.id, g.name, g.admin_id, g.conversation_id, g.created_at
         FROM chat_groups g
         JOIN participants p ON p.conversation_id = g.conversation_id
         WHERE p.user_id = $1
         ORDER BY g.created_at`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.AdminID, &g.ConversationID, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *Repository) Rename(ctx context.Context, name, newName string) (*Group, error) {
	g := &Group{}
	err := r.db.QueryRowContext(ctx,
		`UPDATE chat_groups SET name = $2 WHERE name = $1
         RETURNING id, name, admin_id, conversation_id, created_at`,
		name, newName).Scan(&g.ID, &g.Name, &g.AdminID, &g.ConversationID, &g.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrGroupNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.ErrGroupNameTaken
		}
		return nil, err
	}
	return g, nil
}

// Delete removes the group and its conversation; participants and messages go
// with the conversation via ON DELETE CASCADE.
func (r *Repository) Delete(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var convID uuid.UUID
	err = tx.QueryRowContext(ctx,
		`DELETE FROM chat_groups WHERE name = $1 RETURNING conversation_id`, name).Scan(&convID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrGroupNotFound
		}
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM conversations WHERE id = $1`, convID); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *Repository) Search(ctx context.Context, query string) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM chat_groups WHERE name ILIKE $1 LIMIT 10`, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Name); err != nil {
			return nil, err
		}
		groups = append(groups, p)
	}
	return groups, rows.Err()
}

func (r *Repository) AddMember(ctx context.Context, convID uuid.UUID, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO participants (conversation_id, user_id) VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		convID, userID)
	return err
}

func (r *Repository) RemoveMember(ctx context.Context, convID uuid.UUID, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM participants WHERE conversation_id = $1 AND user_id = $2`,
		convID, userID)
	return err
}

func (r *Repository) IsMember(ctx context.Context, convID uuid.UUID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM participants WHERE conversation_id = $1 AND user_id = $2)`,
		convID, userID).Scan(&exists)
	return exists, err
}

func (r *Repository) InsertMessage(ctx context.Context, convID uuid.UUID, sender, groupName, body string) (*chat.Message, error) {
	msg := &chat.Message{
		ConversationID: convID,
		From:           sender,
		To:             groupName,
		Content:        body,
		IsGroupMsg:     true,
	}
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (conversation_id, sender, recipient, body, is_group)
         VALUES ($1, $2, $3, $4, true)
         RETURNING id, created_at`,
		convID, sender, groupName, body).Scan(&msg.ID, &msg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *Repository) Messages(ctx context.Context, convID uuid.UUID) ([]chat.Message, error) {
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

	var messages []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.From, &m.To, &m.Content, &m.IsGroupMsg, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
