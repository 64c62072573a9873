// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// fakeRow satisfies pgx.Row with a canned scan outcome.
type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeDB records the last query and serves rows from the scan func.
type fakeDB struct {
	lastSQL  string
	lastArgs []any
	scan     func(dest ...any) error
}

func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	db.lastSQL = sql
	db.lastArgs = args
	return fakeRow{scan: db.scan}
}

func projectScan(trackingID, domain string, active, public bool) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = trackingID
		*(dest[1].(*string)) = domain
		*(dest[2].(*bool)) = active
		*(dest[3].(*bool)) = public
		return nil
	}
}

func TestLookupProject(t *testing.T) {
	db := &fakeDB{scan: projectScan("550e8400-e29b-41d4-a716-446655440000", "blog.example.com", true, false)}
	r := NewWithQuerier(db, time.Second)

	p, err := r.LookupProject(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	if err != nil {
		t.Fatalf("LookupProject error: %v", err)
	}
	if p.Domain != "blog.example.com" || !p.IsActive {
		t.Errorf("project = %+v", p)
	}
	if len(db.lastArgs) != 1 || db.lastArgs[0] != "550e8400-e29b-41d4-a716-446655440000" {
		t.Errorf("query args = %v", db.lastArgs)
	}
}

func TestLookupProjectNotFound(t *testing.T) {
	db := &fakeDB{scan: func(...any) error { return pgx.ErrNoRows }}
	r := NewWithQuerier(db, time.Second)

	_, err := r.LookupProject(context.Background(), "unknown")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("err = %v, want ErrProjectNotFound", err)
	}
}

func TestLookupProjectQueryError(t *testing.T) {
	dbErr := errors.New("connection reset")
	db := &fakeDB{scan: func(...any) error { return dbErr }}
	r := NewWithQuerier(db, time.Second)

	_, err := r.LookupProject(context.Background(), "x")
	if !errors.Is(err, dbErr) {
		t.Errorf("err = %v, want wrapped %v", err, dbErr)
	}
}

func TestDailySalt(t *testing.T) {
	db := &fakeDB{scan: func(dest ...any) error {
		*(dest[0].(*string)) = "f3a9c2e8d1b4a7f6c5e2d9b8a3f1c4e7"
		return nil
	}}
	r := NewWithQuerier(db, time.Second)

	salt, err := r.DailySalt(context.Background())
	if err != nil {
		t.Fatalf("DailySalt error: %v", err)
	}
	if salt != "f3a9c2e8d1b4a7f6c5e2d9b8a3f1c4e7" {
		t.Errorf("salt = %q", salt)
	}
}

func TestDailySaltMissingRow(t *testing.T) {
	db := &fakeDB{scan: func(...any) error { return pgx.ErrNoRows }}
	r := NewWithQuerier(db, time.Second)

	_, err := r.DailySalt(context.Background())
	if !errors.Is(err, ErrNoSalt) {
		t.Errorf("err = %v, want ErrNoSalt", err)
	}
}
