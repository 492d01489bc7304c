package contact

import (
	"context"
	"database/sql"
	"errors"

	"chatlink/internal/chat"
	"chatlink/internal/user"
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

// AddRequest inserts the requester into the receiver's pending set. Returns
// false when the request was already pending (set semantics, no duplicate).
func (r *Repository) AddRequest(ctx context.Context, receiverID, requesterID int) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO contact_requests (receiver_id, requester_id) VALUES ($1, $2)
         ON CONFLICT DO NOTHING`,
		receiverID, requesterID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Accept performs the whole acceptance in one transaction: drop the pending
// row, write both friendship directions, and find-or-create the private
// conversation. The unique pair_key index makes the conversation step safe
// against a concurrent duplicate acceptance.
func (r *Repository) Accept(ctx context.Context, accepterID, requesterID int) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM contact_requests WHERE receiver_id = $1 AND requester_id = $2`,
		accepterID, requesterID); err != nil {
		return uuid.Nil, err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO friendships (user_id, friend_id) VALUES ($1, $2), ($2, $1)
         ON CONFLICT DO NOTHING`,
		accepterID, requesterID); err != nil {
		return uuid.Nil, err
	}

	pairKey := chat.PairKey(accepterID, requesterID)
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
		convID, accepterID, requesterID); err != nil {
		return uuid.Nil, err
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}
	return convID, nil
}

func (r *Repository) ListPending(ctx context.Context, receiverID int) ([]user.Profile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.handle, u.profile_image
         FROM contact_requests cr
         JOIN users u ON u.id = cr.requester_id
         WHERE cr.receiver_id = $1
         ORDER BY cr.created_at`,
		receiverID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pending []user.Profile
	for rows.Next() {
		var p user.Profile
		if err := rows.Scan(&p.Handle, &p.ProfileImage); err != nil {
			return nil, err
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// ListFriends joins each friendship to its private conversation via the pair
// key. The LEFT JOIN tolerates a missing conversation (null reference).
func (r *Repository) ListFriends(ctx context.Context, userID int) ([]Friend, error) {
	q := `SELECT u.handle, u.profile_image, c.id
         FROM friendships f
         JOIN users u ON u.id = f.friend_id
         LEFT JOIN conversations c ON c.pair_key =
              CASE WHEN f.user_id < f.friend_id
                   THEN f.user_id || ':' || f.friend_id
                   ELSE f.friend_id || ':' || f.user_id END
         WHERE f.user_id = $1
         ORDER BY f.created_at`

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var friends []Friend
	for rows.Next() {
		var f Friend
		if err := rows.Scan(&f.Handle, &f.ProfileImage, &f.ConversationID); err != nil {
			return nil, err
		}
		friends = append(friends, f)
	}
	return friends, rows.Err()
}
