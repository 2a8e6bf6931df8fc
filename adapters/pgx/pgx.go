// Package pgx provides a PostgreSQL storage adapter backed by pgxpool.
//
// Expected schema:
//
//	CREATE TABLE public.users (
//	    id            TEXT PRIMARY KEY,
//	    name          TEXT NOT NULL,
//	    email         TEXT NOT NULL,
//	    password_hash TEXT NOT NULL,
//	    role          TEXT NOT NULL,
//	    status        TEXT NOT NULL,
//	    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    UNIQUE (lower(email), role)
//	);
//
//	CREATE TABLE public.remember_tokens (
//	    token_hash TEXT PRIMARY KEY,
//	    user_id    TEXT NOT NULL REFERENCES public.users(id) ON DELETE CASCADE,
//	    expires_at TIMESTAMPTZ NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//
//	CREATE TABLE public.sessions (
//	    token_hash  TEXT PRIMARY KEY,
//	    id          TEXT NOT NULL,
//	    user_id     TEXT,
//	    name        TEXT NOT NULL DEFAULT '',
//	    email       TEXT NOT NULL DEFAULT '',
//	    role        TEXT NOT NULL DEFAULT '',
//	    logged_in   BOOLEAN NOT NULL DEFAULT FALSE,
//	    regenerated BOOLEAN NOT NULL DEFAULT FALSE,
//	    expires_at  TIMESTAMPTZ NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL,
//	    updated_at  TIMESTAMPTZ NOT NULL
//	);
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lborres/bantay"
)

type Adapter struct {
	pool *pgxpool.Pool
}

var _ bantay.AuthStorage = (*Adapter)(nil)

func New(pool *pgxpool.Pool) *Adapter {
	return &Adapter{
		pool: pool,
	}
}
