// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package validation

import (
	"strings"
	"testing"
)

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() returned different instances")
	}
}

type endpointSettings struct {
	BaseURL string `validate:"required,url"`
	Token   string `validate:"required"`
	Port    int    `validate:"min=1,max=65535"`
	Level   string `validate:"oneof=debug info warn error"`
}

func TestValidateStructValid(t *testing.T) {
	s := endpointSettings{
		BaseURL: "https://warehouse.example.com",
		Token:   "p.token",
		Port:    8080,
		Level:   "info",
	}
	if err := ValidateStruct(&s); err != nil {
		t.Fatalf("ValidateStruct() = %v, want nil", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   endpointSettings
		wantMsg string
	}{
		{
			name:    "missing required token",
			input:   endpointSettings{BaseURL: "https://x.example.com", Port: 80, Level: "info"},
			wantMsg: "Token is required",
		},
		{
			name:    "bad url",
			input:   endpointSettings{BaseURL: "not a url", Token: "t", Port: 80, Level: "info"},
			wantMsg: "BaseURL must be a valid URL",
		},
		{
			name:    "port out of range",
			input:   endpointSettings{BaseURL: "https://x.example.com", Token: "t", Port: 70000, Level: "info"},
			wantMsg: "Port must be at most 65535",
		},
		{
			name:    "level not in set",
			input:   endpointSettings{BaseURL: "https://x.example.com", Token: "t", Port: 80, Level: "loud"},
			wantMsg: "Level must be one of: debug info warn error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestValidateStructCollectsAllFields(t *testing.T) {
	err := ValidateStruct(&endpointSettings{Port: 0, Level: "nope"})
	if err == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if got := len(err.Errors()); got != 4 {
		t.Errorf("len(Errors()) = %d, want 4", got)
	}
	first := err.Errors()[0]
	if first.Field() != "BaseURL" || first.Tag() != "required" {
		t.Errorf("first error = %s/%s, want BaseURL/required", first.Field(), first.Tag())
	}
}

func TestValidateStructNestedStrings(t *testing.T) {
	type inner struct {
		Name string `validate:"required,min=3"`
	}
	type outer struct {
		Inner inner
	}

	err := ValidateStruct(&outer{Inner: inner{Name: "ab"}})
	if err == nil {
		t.Fatal("nested struct failure not reported")
	}
	if !strings.Contains(err.Error(), "Name must be at least 3 characters") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
