// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package beacon

import "fmt"

// Rejection codes. These are stable machine-readable identifiers: they
// appear verbatim in 400 response bodies and in forensic logs.
const (
	CodePayloadTooLarge       = "PAYLOAD_TOO_LARGE"
	CodeMalformedJSON         = "MALFORMED_JSON"
	CodeMissingRequiredFields = "MISSING_REQUIRED_FIELDS"
	CodeMissingTrackingID     = "MISSING_TRACKING_ID"
	CodeInvalidTrackingID     = "INVALID_TRACKING_ID"
)

// Rejection is a typed validation failure. It is the only error class
// the beacon endpoint ever shows a client.
type Rejection struct {
	Code    string
	Message string
}

// Error renders the rejection in the wire format used for 400 bodies.
func (r *Rejection) Error() string {
	return fmt.Sprintf("%s: %s", r.Code, r.Message)
}

func reject(code, message string) *Rejection {
	return &Rejection{Code: code, Message: message}
}
