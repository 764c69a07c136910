// Package db persists contact messages and résumé render records in
// PostgreSQL or SQLite.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/portfolio/internal/types"
)

// ErrNotFound is returned when an update targets a missing row
var ErrNotFound = errors.New("record not found")

// DefaultListLimit caps list queries when the caller passes limit <= 0
const DefaultListLimit = 50

// Store is the persistence surface used by the server and CLI
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveContactMessage(ctx context.Context, msg *types.ContactMessage) error
	UpdateContactStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error
	ListContactMessages(ctx context.Context, limit int) ([]types.ContactMessage, error)
	RecordRender(ctx context.Context, rec *types.RenderRecord) error
	ListRenders(ctx context.Context, limit int) ([]types.RenderRecord, error)
	Close() error
}

// Connect opens the store named by databaseURL and ensures its schema.
// sqlite://path and file:path select SQLite; postgres:// and postgresql:// select PostgreSQL.
func Connect(ctx context.Context, databaseURL string) (Store, error) {
	var (
		store Store
		err   error
	)
	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		store, err = OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "sqlite://"))
	case strings.HasPrefix(databaseURL, "file:"):
		store, err = OpenSQLite(ctx, strings.TrimPrefix(databaseURL, "file:"))
	case strings.HasPrefix(databaseURL, "postgres://"), strings.HasPrefix(databaseURL, "postgresql://"):
		store, err = ConnectPostgres(ctx, databaseURL)
	case databaseURL == "":
		return nil, fmt.Errorf("database URL is empty")
	default:
		return nil, fmt.Errorf("unsupported database URL scheme: %s", Redact(databaseURL))
	}
	if err != nil {
		return nil, err
	}

	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// prepareContact fills the ID and timestamp callers may leave zero
func prepareContact(msg *types.ContactMessage) {
	if msg.ID == uuid.Nil {
		msg.ID = uuid.New()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	if msg.Status == "" {
		msg.Status = types.ContactPending
	}
}

func prepareRender(rec *types.RenderRecord) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// Redact hides everything after the scheme so credentials never reach logs
func Redact(databaseURL string) string {
	if i := strings.Index(databaseURL, "://"); i >= 0 {
		return databaseURL[:i+3] + "…"
	}
	if len(databaseURL) > 8 {
		return databaseURL[:8] + "…"
	}
	return databaseURL
}
