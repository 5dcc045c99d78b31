/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package code

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trim spaces", "  internal  ", "internal"},
		{"to lower", "NoT_FoUnD", "not_found"},
		{"dash to underscore", "permission-denied", "permission_denied"},
		{"space to underscore", "rate limited", "rate_limited"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	valid := map[string]Code{
		"invalid":                Invalid,
		"  NOT-FOUND ":           NotFound,
		"Unsupported Media-Type": UnsupportedMediaType,
		"abc":                    Code("abc"),
	}
	for in, want := range valid {
		got, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %q, want %q", in, got, want)
		}
	}

	invalid := []string{"", "a", "1abc", "-", "x?z", "not.found"}
	for _, in := range invalid {
		got, err := Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) = %q, want error", in, got)
		}
		if got != Empty {
			t.Fatalf("Parse(%q) on error must return Empty, got %q", in, got)
		}
	}
}

func TestMustParse_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustParse should panic on invalid input")
		}
	}()
	_ = MustParse("??")
}

func TestKnown(t *testing.T) {
	for c := range known {
		if err := Validate(c); err != nil {
			t.Fatalf("declared code %q does not validate: %v", c, err)
		}
		if !c.Known() {
			t.Fatalf("%q.Known() = false", c)
		}
	}
	if Code("custom_thing").Known() {
		t.Fatalf("undeclared code must not be known")
	}
}

func TestCode_TextRoundTrip(t *testing.T) {
	text, err := PermissionDenied.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	var c Code
	if err := c.UnmarshalText(append([]byte("  "), text...)); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	if c != PermissionDenied {
		t.Fatalf("round trip = %q, want %q", c, PermissionDenied)
	}

	if _, err := Empty.MarshalText(); err == nil {
		t.Fatalf("MarshalText() on empty code must return error")
	}
	var bad Code
	if err := bad.UnmarshalText([]byte("!@#")); err == nil {
		t.Fatalf("UnmarshalText() expected error for invalid input")
	}
}

func TestLengthBounds(t *testing.T) {
	long := "a"
	for len(long) < MaxLength {
		long += "b"
	}
	if _, err := Parse(long); err != nil {
		t.Fatalf("expected len=%d code to be valid: %v", len(long), err)
	}
	if _, err := Parse(long + "c"); err == nil {
		t.Fatalf("expected len=%d code to be invalid", len(long)+1)
	}
}
