package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/portfolio/internal/types"
)

const createResumesTable = `CREATE TABLE IF NOT EXISTS resumes (
	id         UUID PRIMARY KEY,
	document   JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// querier is the subset of pgxpool.Pool used by Postgres.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Postgres stores resumes as JSONB rows.
type Postgres struct {
	pool *pgxpool.Pool
	q    querier
}

// ConnectPostgres establishes a connection pool and creates the resumes
// table if it does not exist.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createResumesTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create resumes table: %w", err)
	}

	return &Postgres{pool: pool, q: pool}, nil
}

// Get loads a resume by id.
func (p *Postgres) Get(ctx context.Context, id string) (*types.Resume, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}

	var raw []byte
	err := p.q.QueryRow(ctx, `SELECT document FROM resumes WHERE id = $1`, id).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}

	var r types.Resume
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal resume %s: %w", id, err)
	}
	r.ID = id
	return &r, nil
}

// Save inserts or replaces a resume.
func (p *Postgres) Save(ctx context.Context, r *types.Resume) (string, error) {
	data, err := encode(r)
	if err != nil {
		return "", err
	}

	id := r.ID
	if id == "" {
		id = uuid.NewString()
	} else if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("invalid resume id %q: %w", id, err)
	}

	_, err = p.q.Exec(ctx,
		`INSERT INTO resumes (id, document)
		 VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()`,
		id, data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// Close closes the connection pool
func (p *Postgres) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

var _ Store = (*Postgres)(nil)
