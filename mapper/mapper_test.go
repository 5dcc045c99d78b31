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

package mapper

import (
	"net/http"
	"strings"
	"sync"
	"testing"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"google.golang.org/grpc/codes"
)

func TestDefaults(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	check := func(c code.Code, wantHTTP int, wantGRPC codes.Code) {
		t.Helper()
		st := m.Status(c)
		if st.HTTP != wantHTTP || st.GRPC != wantGRPC {
			t.Fatalf("Status(%q) got HTTP=%d GRPC=%v; want HTTP=%d GRPC=%v",
				c, st.HTTP, st.GRPC, wantHTTP, wantGRPC)
		}
	}
	check(code.Invalid, 400, codes.InvalidArgument)
	check(code.NotFound, 404, codes.NotFound)
	check(code.PermissionDenied, 403, codes.PermissionDenied)
	check(code.Unauthenticated, 401, codes.Unauthenticated)
	check(code.RateLimited, 429, codes.ResourceExhausted)
	check(code.Internal, 500, codes.Internal)
}

func TestEveryKnownCodeHasRules(t *testing.T) {
	for c := range defaultHTTP {
		if !c.Known() {
			t.Fatalf("HTTP table has undeclared code %q", c)
		}
		if _, ok := defaultGRPC[c]; !ok {
			t.Fatalf("code %q has an HTTP rule but no gRPC rule", c)
		}
	}
}

func TestPriority_OverrideOverDefault(t *testing.T) {
	m, err := New(
		WithHTTPDefault(code.Invalid, http.StatusBadRequest),
		WithHTTPOverride(code.Invalid, http.StatusUnprocessableEntity),
		WithGRPCDefault(code.Invalid, codes.InvalidArgument),
		WithGRPCOverride(code.Invalid, codes.FailedPrecondition),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(code.Invalid)
	if st.HTTP != http.StatusUnprocessableEntity {
		t.Fatalf("override must win; got %d", st.HTTP)
	}
	if st.GRPC != codes.FailedPrecondition {
		t.Fatalf("override must win; got %v", st.GRPC)
	}
}

func TestFallback(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	st := m.Status(code.Code("teapot_brewing"))
	if st.HTTP != http.StatusInternalServerError || st.GRPC != codes.Internal {
		t.Fatalf("unknown code should fall back; got %+v", st)
	}

	m2, err := New(WithFallback(http.StatusBadGateway, codes.Unavailable))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if st := m2.Status(code.Empty); st.HTTP != http.StatusBadGateway || st.GRPC != codes.Unavailable {
		t.Fatalf("custom fallback ignored; got %+v", st)
	}
}

func TestNew_RejectsBadRules(t *testing.T) {
	if _, err := New(WithHTTPOverride(code.Code("Bad-Code"), 400)); err == nil {
		t.Fatalf("expected invalid code error")
	}
	if _, err := New(WithHTTPDefault(code.NotFound, 42)); err == nil {
		t.Fatalf("expected out of range status error")
	}
	if _, err := New(WithFallback(0, codes.Internal)); err == nil {
		t.Fatalf("expected out of range fallback error")
	}
}

func TestExplain(t *testing.T) {
	m := MustNew(WithHTTPOverride(code.Timeout, http.StatusRequestTimeout))

	exp := m.Explain(code.NotFound)
	want := "code=\"not_found\"\nhttp: source=default -> 404\ngrpc: source=default -> NOTFOUND(5)"
	if exp != want {
		t.Fatalf("Explain mismatch.\n--- want ---\n%s\n--- got ---\n%s", want, exp)
	}
	if exp := m.Explain(code.Timeout); !strings.Contains(exp, "http: source=override -> 408") {
		t.Fatalf("Explain must report override:\n%s", exp)
	}
	if exp := m.Explain(code.Code("unknown_code")); !strings.Contains(exp, "source=fallback") {
		t.Fatalf("Explain must report fallback:\n%s", exp)
	}
}

func TestImmutability(t *testing.T) {
	m := MustNew()
	defaultHTTP[code.NotFound] = 499
	defer func() { defaultHTTP[code.NotFound] = http.StatusNotFound }()

	if got := m.HTTPStatus(code.NotFound); got != http.StatusNotFound {
		t.Fatalf("mapper observed a mutation of the library table; got %d", got)
	}
}

func TestHTTPFromGRPC(t *testing.T) {
	tests := map[codes.Code]int{
		codes.NotFound:          404,
		codes.PermissionDenied:  403,
		codes.InvalidArgument:   400,
		codes.ResourceExhausted: 429,
		codes.Code(99):          500,
	}
	for c, want := range tests {
		if got := HTTPFromGRPC(c); got != want {
			t.Fatalf("HTTPFromGRPC(%v) = %d, want %d", c, got, want)
		}
	}
}

func TestHas(t *testing.T) {
	m := MustNew(
		WithHTTPDefault(code.MustParse("payment_required"), 402),
		WithHTTPOverride(code.MustParse("gone_forever"), 410),
	)
	for _, c := range []code.Code{code.NotFound, code.Internal, "payment_required", "gone_forever"} {
		if !m.Has(c) {
			t.Fatalf("Has(%q) = false, want true", c)
		}
	}
	for _, c := range []code.Code{code.Empty, "nosuchkey"} {
		if m.Has(c) {
			t.Fatalf("Has(%q) = true, want false", c)
		}
	}
}

func TestGRPCFromHTTP(t *testing.T) {
	tests := map[int]codes.Code{
		200: codes.OK,
		204: codes.OK,
		400: codes.InvalidArgument,
		404: codes.NotFound,
		418: codes.FailedPrecondition,
		429: codes.ResourceExhausted,
		500: codes.Internal,
		502: codes.Unknown,
	}
	for status, want := range tests {
		if got := GRPCFromHTTP(status); got != want {
			t.Fatalf("GRPCFromHTTP(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestConcurrency_MapperStatus(t *testing.T) {
	m := MustNew(WithHTTPOverride(code.Timeout, 408))
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 2000; j++ {
				_ = m.Status(code.Timeout)
				_ = m.Status(code.Invalid)
			}
		}()
	}
	wg.Wait()
}

func BenchmarkMapperStatus_Default(b *testing.B) {
	m := MustNew()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status(code.Invalid)
	}
}

func BenchmarkMapperStatus_Override(b *testing.B) {
	m := MustNew(WithHTTPOverride(code.Invalid, 422))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = m.Status(code.Invalid)
	}
}

func TestMapper_InterfaceSatisfaction(t *testing.T) {
	var _ apis.Mapper = (*mapper)(nil)
}
