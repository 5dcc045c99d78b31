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
	"fmt"
	"maps"
	"strings"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"google.golang.org/grpc/codes"
)

// New constructs an immutable apis.Mapper snapshot.
//
// Build steps:
//
//  1. seed the builder with the library tables;
//  2. apply options;
//  3. validate every code an option mentioned;
//  4. freeze all maps into fresh copies.
//
// The returned Mapper shares nothing with the caller and is safe for
// concurrent use.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()

	maps.Copy(b.httpDefaults, defaultHTTP)
	for k, v := range defaultGRPC {
		b.grpcDefaults[k] = int(v)
	}

	for _, opt := range opts {
		opt(b)
	}

	for _, tbl := range []map[code.Code]int{b.httpDefaults, b.grpcDefaults, b.httpOverride, b.grpcOverride} {
		for c := range tbl {
			if err := code.Validate(c); err != nil {
				return nil, fmt.Errorf("mapper: rule for code %q: %w", c, err)
			}
		}
	}
	for _, tbl := range []map[code.Code]int{b.httpDefaults, b.httpOverride} {
		for c, v := range tbl {
			if v < 100 || v > 599 {
				return nil, fmt.Errorf("mapper: HTTP status %d for code %q out of range", v, c)
			}
		}
	}
	if b.fallbackHTTP < 100 || b.fallbackHTTP > 599 {
		return nil, fmt.Errorf("mapper: fallback HTTP status %d out of range", b.fallbackHTTP)
	}

	return &mapper{
		httpDefault:  freezeHTTP(b.httpDefaults),
		grpcDefault:  freezeGRPC(b.grpcDefaults),
		httpOverride: freezeHTTP(b.httpOverride),
		grpcOverride: freezeGRPC(b.grpcOverride),
		fallbackHTTP: b.fallbackHTTP,
		fallbackGRPC: b.fallbackGRPC,
	}, nil
}

// MustNew is like New but panics on error. Intended for package-level vars.
func MustNew(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// mapper combines per-code overrides, per-code defaults and a global
// fallback. Lookups are map reads; nothing is mutated after New.
type mapper struct {
	httpDefault  map[code.Code]int
	grpcDefault  map[code.Code]codes.Code
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]codes.Code
	fallbackHTTP int
	fallbackGRPC codes.Code
}

// HTTPStatus resolves an HTTP status: override, then default, then fallback.
func (m *mapper) HTTPStatus(c code.Code) int {
	if v, ok := m.httpOverride[c]; ok {
		return v
	}
	if v, ok := m.httpDefault[c]; ok {
		return v
	}
	return m.fallbackHTTP
}

// GRPCStatus resolves a gRPC status with the same precedence as HTTPStatus.
func (m *mapper) GRPCStatus(c code.Code) codes.Code {
	if v, ok := m.grpcOverride[c]; ok {
		return v
	}
	if v, ok := m.grpcDefault[c]; ok {
		return v
	}
	return m.fallbackGRPC
}

// Status resolves both transports for c.
func (m *mapper) Status(c code.Code) apis.Status {
	return apis.Status{
		HTTP: m.HTTPStatus(c),
		GRPC: m.GRPCStatus(c),
	}
}

// Has reports whether an override or default HTTP rule exists for c.
func (m *mapper) Has(c code.Code) bool {
	if _, ok := m.httpOverride[c]; ok {
		return true
	}
	_, ok := m.httpDefault[c]
	return ok
}

// Explain renders which tier resolved each transport, e.g.:
//
//	code="not_found"
//	http: source=default -> 404
//	grpc: source=default -> NOTFOUND(5)
//
// The output is meant for logs and debugging, not for parsing.
func (m *mapper) Explain(c code.Code) string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "code=%q\n", c)
	_, _ = fmt.Fprintln(&b, m.explainHTTP(c))
	_, _ = fmt.Fprint(&b, m.explainGRPC(c))
	return b.String()
}

func (m *mapper) explainHTTP(c code.Code) string {
	if v, ok := m.httpOverride[c]; ok {
		return fmt.Sprintf("http: source=override -> %d", v)
	}
	if v, ok := m.httpDefault[c]; ok {
		return fmt.Sprintf("http: source=default -> %d", v)
	}
	return fmt.Sprintf("http: source=fallback -> %d", m.fallbackHTTP)
}

func (m *mapper) explainGRPC(c code.Code) string {
	src, v := "fallback", m.fallbackGRPC
	if o, ok := m.grpcOverride[c]; ok {
		src, v = "override", o
	} else if d, ok := m.grpcDefault[c]; ok {
		src, v = "default", d
	}
	return fmt.Sprintf("grpc: source=%s -> %s(%d)", src, strings.ToUpper(v.String()), int(v))
}

func freezeHTTP(src map[code.Code]int) map[code.Code]int {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}

func freezeGRPC(src map[code.Code]int) map[code.Code]codes.Code {
	if len(src) == 0 {
		return nil
	}
	dst := make(map[code.Code]codes.Code, len(src))
	for k, v := range src {
		dst[k] = codes.Code(v)
	}
	return dst
}
