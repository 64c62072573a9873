// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrNoSalt is returned when no salt row exists for the current day.
// Rotation is expected to run ahead of midnight; a missing row means
// the rotation job is broken and ingestion must drop, not guess.
var ErrNoSalt = errors.New("no daily salt for current date")

// DailySalt returns the salt for the current UTC day. It satisfies
// privacy.SaltSource via SaltSourceFunc, so the salt cache calls it at
// most once per TTL window.
func (r *Registry) DailySalt(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var salt string
	err := r.db.QueryRow(ctx,
		`SELECT salt
		   FROM daily_salts
		  WHERE day = (now() AT TIME ZONE 'utc')::date`,
	).Scan(&salt)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNoSalt
	}
	if err != nil {
		return "", fmt.Errorf("load daily salt: %w", err)
	}
	return salt, nil
}
