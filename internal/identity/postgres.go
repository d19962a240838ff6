package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements UserStore against the auth tables.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a PostgresStore.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// GetByUsername returns the stored user, or nil when the username is unknown.
func (s *PostgresStore) GetByUsername(ctx context.Context, username string) (*User, error) {
	const query = `SELECT username, password_hash, created_at FROM users WHERE username=$1`

	var user User
	err := s.pool.QueryRow(ctx, query, username).Scan(&user.Username, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
