// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const projectContextKey contextKey = "veiltrics.project"

// dashboardClaims are the claims carried by dashboard tokens. The
// tracking_id claim scopes every query to one project.
type dashboardClaims struct {
	TrackingID string `json:"tracking_id"`
	jwt.RegisteredClaims
}

// projectFromContext returns the tracking ID the request is scoped to.
func projectFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(projectContextKey).(string); ok {
		return id
	}
	return ""
}

func contextWithProject(ctx context.Context, trackingID string) context.Context {
	return context.WithValue(ctx, projectContextKey, trackingID)
}

// authenticate validates the Authorization bearer token (HS256) and
// scopes the request to the token's project.
func (h *Handler) authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Missing bearer token")
			return
		}

		claims := &dashboardClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return h.jwtSecret, nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Invalid or expired token")
			return
		}
		if claims.TrackingID == "" {
			respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "Token has no project scope")
			return
		}

		next(w, r.WithContext(contextWithProject(r.Context(), claims.TrackingID)))
	}
}
