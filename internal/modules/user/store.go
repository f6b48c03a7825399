// README: User store interface and PostgreSQL implementation.
package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"cabway/internal/types"
)

type Store interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id types.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const userSelect = `SELECT id, name, email, password_hash, role FROM users`

func (s *PostgresStore) Create(ctx context.Context, u *User) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		string(u.ID), u.Name, u.Email, u.PasswordHash, string(u.Role),
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *PostgresStore) GetByID(ctx context.Context, id types.ID) (*User, error) {
	return s.get(ctx, userSelect+` WHERE id = $1`, string(id))
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return s.get(ctx, userSelect+` WHERE email = $1`, email)
}

func (s *PostgresStore) List(ctx context.Context) ([]*User, error) {
	rows, err := s.db.Query(ctx, userSelect+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*User
	for rows.Next() {
		var u User
		var id, role string
		if err := rows.Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &role); err != nil {
			return nil, err
		}
		u.ID = types.ID(id)
		u.Role = Role(role)
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (s *PostgresStore) get(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	var id, role string
	err := s.db.QueryRow(ctx, query, arg).Scan(&id, &u.Name, &u.Email, &u.PasswordHash, &role)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.ID = types.ID(id)
	u.Role = Role(role)
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
