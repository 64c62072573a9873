// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

// Package validation wraps go-playground/validator v10 behind a
// thread-safe singleton with human-readable error messages.
//
// The validator instance caches struct metadata, so the whole process
// shares one instance via GetValidator. ValidateStruct is the main
// entry point; it is used for configuration checking at startup and
// for query-request structs on the read path.
//
//	type QueryRequest struct {
//	    Pipe      string `validate:"required"`
//	    DateStart string `validate:"omitempty,datetime=2006-01-02"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // verr.Error() lists every failed field
//	}
package validation
