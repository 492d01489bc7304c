package user

import (
	"context"
	"database/sql"
	"errors"

	"chatlink/pkg/apperr"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateUser(ctx context.Context, u *User) (*User, error) {
	var id int
	query := "INSERT INTO users (handle, password, profile_image) VALUES ($1, $2, $3) RETURNING id"

	err := r.db.QueryRowContext(ctx, query, u.Handle, u.Password, u.ProfileImage).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.ErrHandleTaken
		}
		return nil, err
	}

	u.ID = id
	return u, nil
}

func (r *Repository) GetUserByHandle(ctx context.Context, handle string) (*User, error) {
	u := &User{}
	query := "SELECT id, handle, password, profile_image FROM users WHERE handle = $1"

	err := r.db.QueryRowContext(ctx, query, handle).Scan(&u.ID, &u.Handle, &u.Password, &u.ProfileImage)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *Repository) SearchUsers(ctx context.Context, query string) ([]Profile, error) {
	// Bounded to keep it fast; natural store order, no ranking.
	q := `SELECT handle, profile_image FROM users WHERE handle ILIKE $1 LIMIT 10`
	rows, err := r.db.QueryContext(ctx, q, "%"+query+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.Handle, &p.ProfileImage); err != nil {
			return nil, err
		}
		users = append(users, p)
	}
	return users, rows.Err()
}
