package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/bantay"
)

func (a *Adapter) CreateRememberToken(ctx context.Context, t *bantay.RememberToken) error {
	q := `INSERT INTO public.remember_tokens (token_hash, user_id, expires_at, created_at)
	      VALUES ($1, $2, $3, $4)`

	_, err := a.pool.Exec(ctx, q, t.TokenHash, t.UserID, t.ExpiresAt, t.CreatedAt)
	return err
}

func (a *Adapter) GetRememberTokenUser(ctx context.Context, tokenHash string) (*bantay.RememberToken, *bantay.User, error) {
	q := `SELECT t.token_hash, t.user_id, t.expires_at, t.created_at,
	             u.id, u.name, u.email, u.password_hash, u.role, u.status, u.created_at, u.updated_at
	      FROM public.remember_tokens t
	      JOIN public.users u ON u.id = t.user_id
	      WHERE t.token_hash = $1`

	token := &bantay.RememberToken{}
	user := &bantay.User{}
	err := a.pool.QueryRow(ctx, q, tokenHash).Scan(
		&token.TokenHash, &token.UserID, &token.ExpiresAt, &token.CreatedAt,
		&user.ID, &user.Name, &user.Email, &user.PasswordHash,
		&user.Role, &user.Status, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, bantay.ErrTokenNotFound
		}
		return nil, nil, err
	}
	return token, user, nil
}

func (a *Adapter) DeleteRememberToken(ctx context.Context, tokenHash string) error {
	_, err := a.pool.Exec(ctx, `DELETE FROM public.remember_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (a *Adapter) DeleteUserRememberTokens(ctx context.Context, userID string) (int, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.remember_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (a *Adapter) DeleteExpiredRememberTokens(ctx context.Context) (int, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.remember_tokens WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
