package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthUser struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	EmployeeID   string
	Status       string
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	var user AuthUser
	err := s.DB.QueryRow(ctx, `
    SELECT id, email, password_hash, role, COALESCE(employee_id::text, ''), status
    FROM users
    WHERE email = $1 AND status = 'active'
  `, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Role, &user.EmployeeID, &user.Status)
	if err != nil {
		return AuthUser{}, err
	}
	return user, nil
}

func (s *Store) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET last_login_at = $1 WHERE id = $2", at, userID)
	return err
}
