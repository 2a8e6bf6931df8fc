package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/bantay"
)

func (a *Adapter) GetUserByID(ctx context.Context, id string) (*bantay.User, error) {
	q := `SELECT id, name, email, password_hash, role, status, created_at, updated_at
	      FROM public.users WHERE id = $1`

	user := &bantay.User{}
	err := a.pool.QueryRow(ctx, q, id).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bantay.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// GetUserByEmailAndRole resolves the single user registered under an
// email and role. Both zero rows and multiple rows come back as
// ErrUserNotFound; the caller treats them identically.
func (a *Adapter) GetUserByEmailAndRole(ctx context.Context, email string, role bantay.Role) (*bantay.User, error) {
	q := `SELECT id, name, email, password_hash, role, status, created_at, updated_at
	      FROM public.users WHERE lower(email) = lower($1) AND role = $2
	      LIMIT 2`

	rows, err := a.pool.Query(ctx, q, email, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*bantay.User
	for rows.Next() {
		user := &bantay.User{}
		if err := rows.Scan(
			&user.ID, &user.Name, &user.Email, &user.PasswordHash,
			&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(users) != 1 {
		return nil, bantay.ErrUserNotFound
	}
	return users[0], nil
}
