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

package config

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/mapper"
)

// StatusesConfig adjusts the code to status tables used by the translator
// and the gRPC interceptor.
//
// Rules add or replace per-code defaults; a code needs an HTTP status here
// before failures carrying it are forwarded to clients. Overrides win over
// any default. Fallback applies to codes without a rule.
type StatusesConfig struct {
	Rules     []StatusRule    `yaml:"rules,omitempty"`
	Overrides []StatusRule    `yaml:"overrides,omitempty"`
	Fallback  *StatusFallback `yaml:"fallback,omitempty"`
}

// StatusRule maps one code. GRPC takes the canonical upper-case name,
// e.g. "NOT_FOUND".
type StatusRule struct {
	Code string `yaml:"code"`
	HTTP int    `yaml:"http,omitempty"`
	GRPC string `yaml:"grpc,omitempty"`
}

// StatusFallback holds the statuses for codes without any rule.
type StatusFallback struct {
	HTTP int    `yaml:"http"`
	GRPC string `yaml:"grpc"`
}

// Mapper builds the status mapper described by s on top of the library
// defaults.
func (s StatusesConfig) Mapper() (apis.Mapper, error) {
	var opts []mapper.Option
	for i, r := range s.Rules {
		if r.HTTP == 0 {
			return nil, fmt.Errorf("statuses.rules[%d]: http is required", i)
		}
		o, err := r.options(mapper.WithHTTPDefault, mapper.WithGRPCDefault)
		if err != nil {
			return nil, fmt.Errorf("statuses.rules[%d]: %w", i, err)
		}
		opts = append(opts, o...)
	}
	for i, r := range s.Overrides {
		if r.HTTP == 0 && r.GRPC == "" {
			return nil, fmt.Errorf("statuses.overrides[%d]: http or grpc is required", i)
		}
		o, err := r.options(mapper.WithHTTPOverride, mapper.WithGRPCOverride)
		if err != nil {
			return nil, fmt.Errorf("statuses.overrides[%d]: %w", i, err)
		}
		opts = append(opts, o...)
	}
	if f := s.Fallback; f != nil {
		g, err := parseGRPCCode(f.GRPC)
		if err != nil {
			return nil, fmt.Errorf("statuses.fallback: %w", err)
		}
		opts = append(opts, mapper.WithFallback(f.HTTP, g))
	}
	return mapper.New(opts...)
}

func (r StatusRule) options(
	withHTTP func(code.Code, int) mapper.Option,
	withGRPC func(code.Code, codes.Code) mapper.Option,
) ([]mapper.Option, error) {
	c, err := code.Parse(r.Code)
	if err != nil {
		return nil, err
	}
	var opts []mapper.Option
	if r.HTTP != 0 {
		opts = append(opts, withHTTP(c, r.HTTP))
	}
	if r.GRPC != "" {
		g, err := parseGRPCCode(r.GRPC)
		if err != nil {
			return nil, err
		}
		opts = append(opts, withGRPC(c, g))
	}
	return opts, nil
}

// parseGRPCCode accepts names such as "NOT_FOUND" or "not_found".
func parseGRPCCode(name string) (codes.Code, error) {
	var c codes.Code
	if err := c.UnmarshalJSON([]byte(strconv.Quote(strings.ToUpper(strings.TrimSpace(name))))); err != nil {
		return 0, fmt.Errorf("grpc code %q: %w", name, err)
	}
	return c, nil
}
