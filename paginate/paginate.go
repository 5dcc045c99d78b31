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
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/fault"
)

// InvalidPageMessage is the detail of the failure returned for a page
// number that is not a positive integer or lies past the last page.
const InvalidPageMessage = "Invalid page."

// lastPage is accepted as a page number and selects the final page.
const lastPage = "last"

// Paginator slices collections into pages. It is immutable after New and
// safe for concurrent use.
type Paginator struct {
	cfg Config
}

// New validates cfg, after filling its zero fields with defaults.
func New(cfg Config) (*Paginator, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Paginator{cfg: cfg}, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config) *Paginator {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Config returns the effective settings.
func (p *Paginator) Config() Config { return p.cfg }

// ResolvePageSize reads the page size requested in q. Missing, malformed
// or non-positive values yield the default; larger values, including ones
// that overflow an int, are clamped to the maximum.
func (p *Paginator) ResolvePageSize(q url.Values) int {
	if p.cfg.PageSizeQueryParam == "" {
		return p.cfg.PageSize
	}
	raw := strings.TrimSpace(q.Get(p.cfg.PageSizeQueryParam))
	if raw == "" {
		return p.cfg.PageSize
	}
	n, err := strconv.Atoi(raw)
	if errors.Is(err, strconv.ErrRange) && !strings.HasPrefix(raw, "-") {
		return p.cfg.MaxPageSize
	}
	if err != nil || n < 1 {
		return p.cfg.PageSize
	}
	return min(n, p.cfg.MaxPageSize)
}

// RequestURL is AbsoluteURL with forwarded headers trusted as configured.
func (p *Paginator) RequestURL(r *http.Request) *url.URL {
	return AbsoluteURL(r, p.cfg.TrustForwardedHeaders)
}

// Page is one slice of a collection together with its paging state.
type Page[T any] struct {
	Items []T
	State State
}

// Response wraps the page in a paginated success envelope.
func (pg Page[T]) Response() denvelope.Response {
	return BuildPaginatedResponse(pg.Items, pg.State)
}

// Paginate returns the page of items selected by the query of u. Links in
// the returned state point at u with the page parameter replaced.
//
// A page number that is not a positive integer, or lies past the last
// page, yields fault.NotFound with InvalidPageMessage.
func Paginate[T any](p *Paginator, items []T, u *url.URL) (Page[T], error) {
	var q url.Values
	if u != nil {
		q = u.Query()
	}
	size := p.ResolvePageSize(q)
	count := len(items)
	pages := numPages(count, size)

	number, err := p.pageNumber(q, pages)
	if err != nil {
		return Page[T]{}, err
	}

	lo := (number - 1) * size
	hi := min(lo+size, count)
	out := make([]T, 0, hi-lo)
	out = append(out, items[lo:hi]...)

	return Page[T]{
		Items: out,
		State: State{
			Count:    count,
			Number:   number,
			NumPages: pages,
			Size:     size,
			Links:    URLLinks{URL: u, Param: p.cfg.PageQueryParam},
		},
	}, nil
}

func (p *Paginator) pageNumber(q url.Values, pages int) (int, error) {
	raw := strings.TrimSpace(q.Get(p.cfg.PageQueryParam))
	switch raw {
	case "":
		return 1, nil
	case lastPage:
		return pages, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > pages {
		return 0, fault.NotFound(InvalidPageMessage).WithCause(err)
	}
	return n, nil
}

// numPages counts an empty collection as one empty page.
func numPages(count, size int) int {
	if count == 0 {
		return 1
	}
	return (count + size - 1) / size
}
