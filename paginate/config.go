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

package paginate

import (
	"errors"
	"fmt"
)

// Defaults applied to zero Config fields.
const (
	DefaultPageSize           = 10
	DefaultPageSizeQueryParam = "page_size"
	DefaultMaxPageSize        = 100
	DefaultPageQueryParam     = "page"
)

// ErrInvalidConfig is returned by New for inconsistent settings.
var ErrInvalidConfig = errors.New("paginate: invalid config")

// Config holds the page-size negotiation settings.
//
// An empty PageSizeQueryParam disables client-chosen page sizes.
// TrustForwardedHeaders lets X-Forwarded-Proto and X-Forwarded-Host shape
// page links; it is off unless a proxy in front overwrites them.
type Config struct {
	PageSize              int    `yaml:"page_size"`
	PageSizeQueryParam    string `yaml:"page_size_query_param"`
	MaxPageSize           int    `yaml:"max_page_size"`
	PageQueryParam        string `yaml:"page_query_param"`
	TrustForwardedHeaders bool   `yaml:"trust_forwarded_headers"`
}

// DefaultConfig returns page size 10, at most 100, driven by the
// "page_size" and "page" query parameters.
func DefaultConfig() Config {
	return Config{
		PageSize:           DefaultPageSize,
		PageSizeQueryParam: DefaultPageSizeQueryParam,
		MaxPageSize:        DefaultMaxPageSize,
		PageQueryParam:     DefaultPageQueryParam,
	}
}

// withDefaults fills zero numeric fields and an empty page param. The
// page-size param is left alone so that it can be switched off.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.PageSize == 0 {
		c.PageSize = d.PageSize
	}
	if c.MaxPageSize == 0 {
		c.MaxPageSize = d.MaxPageSize
	}
	if c.PageQueryParam == "" {
		c.PageQueryParam = d.PageQueryParam
	}
	return c
}

// Validate reports whether c is usable as is.
func (c Config) Validate() error {
	switch {
	case c.PageSize < 1:
		return fmt.Errorf("%w: page size %d must be positive", ErrInvalidConfig, c.PageSize)
	case c.MaxPageSize < c.PageSize:
		return fmt.Errorf("%w: max page size %d is below page size %d", ErrInvalidConfig, c.MaxPageSize, c.PageSize)
	case c.PageQueryParam == "":
		return fmt.Errorf("%w: empty page query param", ErrInvalidConfig)
	case c.PageQueryParam == c.PageSizeQueryParam:
		return fmt.Errorf("%w: page and page size share the query param %q", ErrInvalidConfig, c.PageQueryParam)
	}
	return nil
}
