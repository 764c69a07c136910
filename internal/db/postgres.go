package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/portfolio/internal/types"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS contact_messages (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	subject TEXT NOT NULL DEFAULT '',
	message TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_contact_messages_created ON contact_messages(created_at DESC);

CREATE TABLE IF NOT EXISTS render_records (
	id UUID PRIMARY KEY,
	format TEXT NOT NULL,
	file_name TEXT NOT NULL,
	pages INTEGER NOT NULL,
	size_bytes INTEGER NOT NULL,
	source TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_render_records_created ON render_records(created_at DESC);
`

// PostgresStore wraps a PostgreSQL connection pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool to the database
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close closes the connection pool
func (s *PostgresStore) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

// EnsureSchema creates the tables if they do not exist
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveContactMessage inserts a new contact message
func (s *PostgresStore) SaveContactMessage(ctx context.Context, msg *types.ContactMessage) error {
	prepareContact(msg)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO contact_messages (id, name, email, subject, message, status, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.Status, msg.Error, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// UpdateContactStatus records the relay outcome for a message
func (s *PostgresStore) UpdateContactStatus(ctx context.Context, id uuid.UUID, status, errMsg string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contact_messages SET status = $1, error = $2 WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContactMessages returns the newest messages first
func (s *PostgresStore) ListContactMessages(ctx context.Context, limit int) ([]types.ContactMessage, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, email, subject, message, status, error, created_at
		 FROM contact_messages ORDER BY created_at DESC LIMIT $1`,
		limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var out []types.ContactMessage
	for rows.Next() {
		var m types.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status, &m.Error, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// RecordRender stores one generated artifact
func (s *PostgresStore) RecordRender(ctx context.Context, rec *types.RenderRecord) error {
	prepareRender(rec)
	_, err := s.pool.Exec(ctx,
		`INSERT INTO render_records (id, format, file_name, pages, size_bytes, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.ID, rec.Format, rec.FileName, rec.Pages, rec.SizeBytes, rec.Source, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record render: %w", err)
	}
	return nil
}

// ListRenders returns the newest render records first
func (s *PostgresStore) ListRenders(ctx context.Context, limit int) ([]types.RenderRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, format, file_name, pages, size_bytes, source, created_at
		 FROM render_records ORDER BY created_at DESC LIMIT $1`,
		limitOrDefault(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list renders: %w", err)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.RenderRecord, error) {
		var r types.RenderRecord
		err := row.Scan(&r.ID, &r.Format, &r.FileName, &r.Pages, &r.SizeBytes, &r.Source, &r.CreatedAt)
		return r, err
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to scan render record: %w", err)
	}
	return out, nil
}

var _ Store = (*PostgresStore)(nil)
