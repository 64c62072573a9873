// Veiltrics - Privacy-Preserving Web Analytics
// Copyright 2026 Veiltrics Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/veiltrics/veiltrics

package privacy

import "testing"

func TestAnonymizeIPv4(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parts int
		want  string
	}{
		{"default two octets", "192.168.1.100", 2, "192.168.0.0"},
		{"one octet", "192.168.1.100", 1, "192.168.1.0"},
		{"three octets", "10.20.30.40", 3, "10.0.0.0"},
		{"four octets", "10.20.30.40", 4, "0.0.0.0"},
		{"zero octets", "10.20.30.40", 0, "10.20.30.40"},
		{"already anonymized", "192.168.0.0", 2, "192.168.0.0"},
		{"all zero", "0.0.0.0", 2, "0.0.0.0"},
		{"strip beyond length", "1.2.3.4", 9, "0.0.0.0"},
		{"negative clamps to zero", "1.2.3.4", -1, "1.2.3.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnonymizeIPParts(tt.input, tt.parts); got != tt.want {
				t.Errorf("AnonymizeIPParts(%q, %d) = %q, want %q", tt.input, tt.parts, got, tt.want)
			}
		})
	}
}

func TestAnonymizeIPv6(t *testing.T) {
	tests := []struct {
		name  string
		input string
		parts int
		want  string
	}{
		{"full form", "2001:db8:85a3:8d3:1319:8a2e:370:7348", 2, "2001:db8:85a3:8d3:1319:8a2e:0:0"},
		{"compressed middle", "2001:db8::8a2e:370:7334", 2, "2001:db8:0:0:0:8a2e:0:0"},
		{"loopback", "::1", 2, "0:0:0:0:0:0:0:0"},
		{"all zero", "::", 2, "0:0:0:0:0:0:0:0"},
		{"leading compression", "::ffff:1:2", 1, "0:0:0:0:0:ffff:1:0"},
		{"trailing compression", "2001:db8::", 2, "2001:db8:0:0:0:0:0:0"},
		{"strip all groups", "2001:db8::1", 8, "0:0:0:0:0:0:0:0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnonymizeIPParts(tt.input, tt.parts); got != tt.want {
				t.Errorf("AnonymizeIPParts(%q, %d) = %q, want %q", tt.input, tt.parts, got, tt.want)
			}
		})
	}
}

func TestAnonymizeMalformedInputUnchanged(t *testing.T) {
	inputs := []string{
		"192.168.1",          // too few octets
		"192.168.1.1.1",      // too many octets
		"256.1.1.1",          // octet out of range
		"1.2.3.04x",          // non-numeric octet
		"1.2..4",             // empty octet
		" 1.2.3.4",           // leading space
		"not-an-ip",          // garbage
		"2001:db8",           // too few groups
		"1:2:3:4:5:6:7:8:9",  // too many groups
		"2001:db8::1::2",     // double compression
		"2001:dg8::1",        // non-hex group
		"12345::1",           // group too long
		"::ffff:192.0.2.128", // embedded dotted quad not supported
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			if got := AnonymizeIP(input); got != input {
				t.Errorf("AnonymizeIP(%q) = %q, want input unchanged", input, got)
			}
		})
	}
}

func TestAnonymizeEmptyInput(t *testing.T) {
	if got := AnonymizeIP(""); got != "" {
		t.Errorf("AnonymizeIP(\"\") = %q, want empty", got)
	}
}

// Anonymization must be idempotent: running an already-anonymized
// address through again yields the same address.
func TestAnonymizeIdempotent(t *testing.T) {
	inputs := []string{
		"192.168.1.100",
		"10.0.0.1",
		"255.255.255.255",
		"0.0.0.0",
		"2001:db8:85a3:8d3:1319:8a2e:370:7348",
		"::1",
		"fe80::202:b3ff:fe1e:8329",
		"not-an-ip",
		"300.1.2.3",
		"",
	}

	for _, input := range inputs {
		once := AnonymizeIP(input)
		twice := AnonymizeIP(once)
		if once != twice {
			t.Errorf("AnonymizeIP not idempotent for %q: first %q, second %q", input, once, twice)
		}
	}
}
