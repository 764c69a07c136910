package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/jonathan/portfolio/internal/types"
)

// fixed width keeps lexical order equal to time order
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_created ON contact_messages(created_at);

CREATE TABLE IF NOT EXISTS render_records (
	id TEXT PRIMARY KEY,
	format TEXT NOT NULL,
	file_name TEXT NOT NULL,
	pages INTEGER NOT NULL,
	size_bytes INTEGER NOT NULL,
	source TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_render_records_created ON render_records(created_at);
`

// SQLiteStore is the single-file store used by default
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens or creates the database file, creating its directory
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file location
func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// EnsureSchema creates the tables if they do not exist
func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) SaveContactMessage(ctx context.Context, msg *types.ContactMessage) error {
	prepareContact(msg)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, status, error, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		msg.ID.String(), msg.Name, msg.Email, msg.Subject, msg.Message, msg.Status, msg.Error,
		msg.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

func (s *SQLiteStore) UpdateContactStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = ?, error = ? WHERE id = ?`,
		status, errMsg, id.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteStore) ListContactMessages(ctx context.Context, limit int) ([]types.ContactMessage, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, subject, message, status, error, created_at
		 FROM contact_messages ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []types.ContactMessage
	for rows.Next() {
		var (
			m       types.ContactMessage
			id      string
			created string
		)
		if err := rows.Scan(&id, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.Error, &created); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		if m.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid contact message id %q: %w", id, err)
		}
		if m.CreatedAt, err = time.Parse(sqliteTimeLayout, created); err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", created, err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) RecordRender(ctx context.Context, rec *types.RenderRecord) error {
	prepareRender(rec)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO render_records (id, format, file_name, pages, size_bytes, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID.String(), rec.Format, rec.FileName, rec.Pages, rec.SizeBytes, rec.Source,
		rec.CreatedAt.UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to record render: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRenders(ctx context.Context, limit int) ([]types.RenderRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, format, file_name, pages, size_bytes, source, created_at
		 FROM render_records ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list renders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []types.RenderRecord
	for rows.Next() {
		var (
			r       types.RenderRecord
			id      string
			created string
		)
		if err := rows.Scan(&id, &r.Format, &r.FileName, &r.Pages, &r.SizeBytes, &r.Source, &created); err != nil {
			return nil, fmt.Errorf("failed to scan render record: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid render id %q: %w", id, err)
		}
		if r.CreatedAt, err = time.Parse(sqliteTimeLayout, created); err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", created, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

var _ Store = (*SQLiteStore)(nil)
