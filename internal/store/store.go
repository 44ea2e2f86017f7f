// Package store provides lookups and saves for resume documents.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/schemas"
	"github.com/jonathan/portfolio/internal/types"
)

// ErrNotFound is returned when no resume has the requested id.
var ErrNotFound = errors.New("resume not found")

// Store persists resume documents.
type Store interface {
	Get(ctx context.Context, id string) (*types.Resume, error)
	// Save validates r against the resume schema and stores it, returning its
	// id. A resume without an id gets a new one.
	Save(ctx context.Context, r *types.Resume) (string, error)
	Close() error
}

// Open connects to the database named by databaseURL. postgres:// and
// postgresql:// select Postgres; mongodb:// and mongodb+srv:// select MongoDB.
func Open(ctx context.Context, databaseURL string) (Store, error) {
	scheme, err := config.StoreScheme(databaseURL)
	if err != nil {
		return nil, err
	}
	switch scheme {
	case "postgres":
		return ConnectPostgres(ctx, databaseURL)
	default:
		return ConnectMongo(ctx, databaseURL)
	}
}

// encode validates r and returns its JSON form without the id.
func encode(r *types.Resume) ([]byte, error) {
	if r == nil {
		return nil, errors.New("resume is nil")
	}
	doc := *r
	doc.ID = ""
	doc.Normalize()
	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume: %w", err)
	}
	if err := schemas.ValidateResume(data); err != nil {
		return nil, err
	}
	return data, nil
}
