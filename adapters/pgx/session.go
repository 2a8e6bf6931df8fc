package pgx

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/lborres/bantay"
)

func (a *Adapter) SaveSession(ctx context.Context, s *bantay.SessionRecord) error {
	q := `INSERT INTO public.sessions
	          (token_hash, id, user_id, name, email, role, logged_in, regenerated, expires_at, created_at, updated_at)
	      VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11)
	      ON CONFLICT (token_hash) DO UPDATE SET
	          user_id = EXCLUDED.user_id,
	          name = EXCLUDED.name,
	          email = EXCLUDED.email,
	          role = EXCLUDED.role,
	          logged_in = EXCLUDED.logged_in,
	          regenerated = EXCLUDED.regenerated,
	          expires_at = EXCLUDED.expires_at,
	          updated_at = EXCLUDED.updated_at`

	_, err := a.pool.Exec(ctx, q,
		s.TokenHash, s.ID, s.UserID, s.Name, s.Email, s.Role,
		s.LoggedIn, s.Regenerated, s.ExpiresAt, s.CreatedAt, s.UpdatedAt,
	)
	return err
}

func (a *Adapter) GetSessionByHash(ctx context.Context, tokenHash string) (*bantay.SessionRecord, error) {
	q := `SELECT token_hash, id, COALESCE(user_id, ''), name, email, role, logged_in, regenerated,
	             expires_at, created_at, updated_at
	      FROM public.sessions WHERE token_hash = $1`

	s := &bantay.SessionRecord{}
	err := a.pool.QueryRow(ctx, q, tokenHash).Scan(
		&s.TokenHash, &s.ID, &s.UserID, &s.Name, &s.Email, &s.Role,
		&s.LoggedIn, &s.Regenerated, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, bantay.ErrSessionNotFound
		}
		return nil, err
	}
	return s, nil
}

func (a *Adapter) DeleteSessionByHash(ctx context.Context, tokenHash string) error {
	_, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func (a *Adapter) DeleteExpiredSessions(ctx context.Context) (int, error) {
	tag, err := a.pool.Exec(ctx, `DELETE FROM public.sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}
