// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veiltrics/veiltrics/internal/models"
)

// ErrProjectNotFound is returned when no project matches the lookup key.
var ErrProjectNotFound = errors.New("project not found")

// DefaultLookupTimeout bounds a single registry query. Kept low: a
// lookup slower than this fails the request open rather than holding
// the beacon connection.
const DefaultLookupTimeout = 2 * time.Second

// rowQuerier is the slice of pgxpool.Pool the registry needs. Narrowed
// to an interface so tests run against a fake instead of a database.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Registry looks up projects and the current daily salt.
type Registry struct {
	db      rowQuerier
	timeout time.Duration
}

// New creates a registry over a pgx connection pool.
func New(pool *pgxpool.Pool) *Registry {
	return &Registry{db: pool, timeout: DefaultLookupTimeout}
}

// NewWithQuerier creates a registry over any row querier. Used by tests.
func NewWithQuerier(db rowQuerier, timeout time.Duration) *Registry {
	return &Registry{db: db, timeout: timeout}
}

// Connect opens a pgx pool against the control store and verifies it
// with a ping before returning.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping registry: %w", err)
	}
	return pool, nil
}

// LookupProject fetches the project owning a tracking ID.
// Returns ErrProjectNotFound when the ID is unknown.
func (r *Registry) LookupProject(ctx context.Context, trackingID string) (*models.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Project
	err := r.db.QueryRow(ctx,
		`SELECT tracking_id, domain, is_active, public_page
		   FROM projects
		  WHERE tracking_id = $1`,
		trackingID,
	).Scan(&p.TrackingID, &p.Domain, &p.IsActive, &p.PublicPage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup project: %w", err)
	}
	return &p, nil
}

// LookupProjectByDomain resolves the public-page variant of the read
// path: callers are scoped by domain instead of credentials, so only
// projects that opted in are visible here.
func (r *Registry) LookupProjectByDomain(ctx context.Context, domain string) (*models.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var p models.Project
	err := r.db.QueryRow(ctx,
		`SELECT tracking_id, domain, is_active, public_page
		   FROM projects
		  WHERE domain = $1 AND public_page AND is_active`,
		domain,
	).Scan(&p.TrackingID, &p.Domain, &p.IsActive, &p.PublicPage)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup project by domain: %w", err)
	}
	return &p, nil
}
