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

package fault

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"dirpx.dev/denvelope/code"
)

func TestError_Basics(t *testing.T) {
	e := E(code.Invalid, "bad input",
		WithFieldOption("name", "This field is required"),
		WithStatusOption(422),
	)

	if e.Code != code.Invalid {
		t.Fatal("code mismatch")
	}
	if e.Status != 422 {
		t.Fatalf("status = %d, want 422", e.Status)
	}
	if got := e.Fields["name"]; len(got) != 1 || got[0] != "This field is required" {
		t.Fatalf("field errors = %v", e.Fields)
	}
	if e.ErrorCode() != "invalid" {
		t.Fatalf("ErrorCode() = %q", e.ErrorCode())
	}
	for _, sub := range []string{"invalid", "bad input"} {
		if !strings.Contains(e.Error(), sub) {
			t.Fatalf("Error() missing %q in %q", sub, e.Error())
		}
	}
}

func TestError_NilString(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil Error() = %q", e.Error())
	}
}

func TestError_CopyOnWrite(t *testing.T) {
	e1 := Validation(map[string][]string{"a": {"x"}})
	e2 := e1.WithField("a", "y").WithField("b", "z")

	if len(e1.Fields) != 1 || len(e1.Fields["a"]) != 1 {
		t.Fatalf("original mutated: %v", e1.Fields)
	}
	if len(e2.Fields["a"]) != 2 || e2.Fields["b"][0] != "z" {
		t.Fatalf("derived fields = %v", e2.Fields)
	}

	l1 := ValidationList("one")
	l2 := l1.WithItems("two")
	if len(l1.Items) != 1 || len(l2.Items) != 2 {
		t.Fatalf("items: %v / %v", l1.Items, l2.Items)
	}
}

func TestError_WithFields_CopiesInput(t *testing.T) {
	in := map[string][]string{"email": {"Enter a valid email address"}}
	e := Validation(in)
	in["email"][0] = "mutated"
	in["other"] = []string{"added"}

	if e.Fields["email"][0] != "Enter a valid email address" {
		t.Fatalf("caller mutation leaked into fault: %v", e.Fields)
	}
	if _, ok := e.Fields["other"]; ok {
		t.Fatalf("caller map shared with fault")
	}
	if e.WithFields(nil) != e {
		t.Fatalf("empty merge must return receiver")
	}
}

func TestError_WithCause_Unwrap(t *testing.T) {
	root := errors.New("root")
	e := Internal("").WithCause(root)
	if !errors.Is(e, root) {
		t.Fatal("errors.Is failed")
	}
	if errors.Unwrap(e) != root {
		t.Fatal("Unwrap failed")
	}
	if e.WithCause(nil) != e {
		t.Fatal("nil cause must return receiver")
	}

	wrapped := fmt.Errorf("handler: %w", NotFound("gone"))
	var fe *Error
	if !errors.As(wrapped, &fe) || fe.Code != code.NotFound {
		t.Fatalf("errors.As through wrapping failed: %v", wrapped)
	}
}

func TestConstructors_Defaults(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		code code.Code
		msg  string
	}{
		{"not found", NotFound(""), code.NotFound, DefaultNotFoundDetail},
		{"not found custom", NotFound("Resource not found"), code.NotFound, "Resource not found"},
		{"permission", PermissionDenied(""), code.PermissionDenied, DefaultPermissionDeniedDetail},
		{"unauthenticated", Unauthenticated(""), code.Unauthenticated, DefaultUnauthenticatedDetail},
		{"credentials", InvalidCredentials(""), code.InvalidCredentials, DefaultInvalidCredentialsDetail},
		{"malformed", Malformed(""), code.Malformed, DefaultMalformedDetail},
		{"internal", Internal(""), code.Internal, DefaultInternalDetail},
		{"method", MethodNotAllowed("DELETE"), code.MethodNotAllowed, `Method "DELETE" not allowed.`},
		{"throttled", RateLimited("", 0), code.RateLimited, DefaultRateLimitedDetail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code || tt.err.Message != tt.msg {
				t.Fatalf("got (%q, %q), want (%q, %q)", tt.err.Code, tt.err.Message, tt.code, tt.msg)
			}
		})
	}
}

func TestRateLimited_RetryAfter(t *testing.T) {
	e := RateLimited("", 1500*time.Millisecond)
	if e.RetryAfter != 1500*time.Millisecond {
		t.Fatalf("RetryAfter = %v", e.RetryAfter)
	}
	want := "Request was throttled. Expected available in 2 seconds."
	if e.Message != want {
		t.Fatalf("Message = %q, want %q", e.Message, want)
	}
}
