// Package pgstore provides a PostgreSQL implementation of triage.Store.
package pgstore

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/linnemanlabs/docket/internal/triage"
)

var tracer = otel.Tracer("github.com/linnemanlabs/docket/internal/triage/pgstore")

//go:embed schema.sql
var schema string

// Store persists cases in PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New applies the schema on the given pool and returns a ready Store.
// The pool stays owned by the caller.
func New(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{pool: pool}, nil
}

const caseColumns = `id, fingerprint, complaint, category, priority, unit, created_at`

// Get retrieves a case by ID.
func (s *Store) Get(ctx context.Context, id string) (*triage.Case, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.Get", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + caseColumns + ` FROM cases WHERE id = $1`
	c, err := scanCase(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	if c == nil {
		return nil, false, nil
	}
	return c, true, nil
}

// GetByFingerprint retrieves the most recent case for a complaint fingerprint.
func (s *Store) GetByFingerprint(ctx context.Context, fingerprint string) (*triage.Case, bool, error) {
	ctx, span := tracer.Start(ctx, "pgstore.GetByFingerprint", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + caseColumns + ` FROM cases WHERE fingerprint = $1 ORDER BY created_at DESC LIMIT 1`
	c, err := scanCase(s.pool.QueryRow(ctx, query, fingerprint))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, false, err
	}
	if c == nil {
		return nil, false, nil
	}
	return c, true, nil
}

// Put inserts or updates a case (upsert on ID).
func (s *Store) Put(ctx context.Context, c *triage.Case) error {
	ctx, span := tracer.Start(ctx, "pgstore.Put", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "UPSERT"),
	))
	defer span.End()

	query := `INSERT INTO cases (
		id, fingerprint, complaint, category, priority, priority_rank, unit, created_at
	) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	ON CONFLICT (id) DO UPDATE SET
		fingerprint   = EXCLUDED.fingerprint,
		complaint     = EXCLUDED.complaint,
		category      = EXCLUDED.category,
		priority      = EXCLUDED.priority,
		priority_rank = EXCLUDED.priority_rank,
		unit          = EXCLUDED.unit`

	_, err := s.pool.Exec(ctx, query,
		c.ID, c.Fingerprint, c.Complaint, string(c.Category), string(c.Priority),
		c.Priority.Rank(), string(c.Unit), c.CreatedAt,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("upsert case: %w", err)
	}
	return nil
}

// List returns every case. The index on (priority_rank, id) keeps the
// queue order cheap; the service re-sorts defensively either way.
func (s *Store) List(ctx context.Context) ([]*triage.Case, error) {
	ctx, span := tracer.Start(ctx, "pgstore.List", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "SELECT"),
	))
	defer span.End()

	query := `SELECT ` + caseColumns + ` FROM cases ORDER BY priority_rank, id`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var out []*triage.Case
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("list cases: %w", err)
	}
	return out, nil
}

// Clear removes every case.
func (s *Store) Clear(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "pgstore.Clear", trace.WithAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation.name", "DELETE"),
	))
	defer span.End()

	if _, err := s.pool.Exec(ctx, `DELETE FROM cases`); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("clear cases: %w", err)
	}
	return nil
}

// scanCase scans one case row. Returns (nil, nil) when no row matched.
func scanCase(row pgx.Row) (*triage.Case, error) {
	var c triage.Case
	err := row.Scan(
		&c.ID, &c.Fingerprint, &c.Complaint, &c.Category, &c.Priority, &c.Unit, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan case: %w", err)
	}
	return &c, nil
}
