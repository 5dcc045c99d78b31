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
	"net/http"
	"net/url"
	"strconv"

	"dirpx.dev/denvelope"
)

// MetaKey is the meta entry the pagination block is stored under.
const MetaKey = "pagination"

// LinkBuilder builds the URLs of the pages around the current one. The
// bool result is false when no link can be built; the entry is then null.
type LinkBuilder interface {
	NextLink(number int) (string, bool)
	PreviousLink(number int) (string, bool)
}

// State describes where a page sits in its collection.
type State struct {
	Count    int
	Number   int
	NumPages int
	Size     int
	Links    LinkBuilder
}

// HasNext reports whether a page follows the current one.
func (s State) HasNext() bool { return s.Number < s.NumPages }

// HasPrevious reports whether a page precedes the current one.
func (s State) HasPrevious() bool { return s.Number > 1 }

// Pagination is the block written under meta.pagination. Next and Previous
// are nil at the respective boundary.
type Pagination struct {
	Count       int     `json:"count"`
	CurrentPage int     `json:"current_page"`
	TotalPages  int     `json:"total_pages"`
	PageSize    int     `json:"page_size"`
	Next        *string `json:"next"`
	Previous    *string `json:"previous"`
}

// Metadata computes the pagination block for s. Links are requested only
// away from the boundaries.
func Metadata(s State) Pagination {
	p := Pagination{
		Count:       s.Count,
		CurrentPage: s.Number,
		TotalPages:  s.NumPages,
		PageSize:    s.Size,
	}
	if s.Links == nil {
		return p
	}
	if s.HasNext() {
		if next, ok := s.Links.NextLink(s.Number); ok {
			p.Next = &next
		}
	}
	if s.HasPrevious() {
		if prev, ok := s.Links.PreviousLink(s.Number); ok {
			p.Previous = &prev
		}
	}
	return p
}

// BuildPaginatedResponse wraps items in a success envelope carrying the
// pagination block of s.
func BuildPaginatedResponse(items any, s State) denvelope.Response {
	return denvelope.Success(
		denvelope.WithData(items),
		denvelope.WithMeta(map[string]any{MetaKey: Metadata(s)}),
	)
}

// URLLinks builds page links by rewriting one query parameter of URL.
// The link to page 1 drops the parameter altogether. A nil URL builds no
// links.
type URLLinks struct {
	URL   *url.URL
	Param string
}

// NextLink implements LinkBuilder.
func (l URLLinks) NextLink(number int) (string, bool) { return l.page(number + 1) }

// PreviousLink implements LinkBuilder.
func (l URLLinks) PreviousLink(number int) (string, bool) { return l.page(number - 1) }

func (l URLLinks) page(n int) (string, bool) {
	if l.URL == nil {
		return "", false
	}
	u := *l.URL
	q := u.Query()
	if n <= 1 {
		q.Del(l.Param)
	} else {
		q.Set(l.Param, strconv.Itoa(n))
	}
	u.RawQuery = q.Encode()
	return u.String(), true
}

// AbsoluteURL returns the URL of r including scheme and host, so that
// page links can be followed as they are. X-Forwarded-Proto and
// X-Forwarded-Host are honoured only when trustForwarded is set; enable it
// only behind a proxy that overwrites them.
func AbsoluteURL(r *http.Request, trustForwarded bool) *url.URL {
	u := *r.URL
	u.Scheme = "http"
	if r.TLS != nil {
		u.Scheme = "https"
	}
	u.Host = r.Host
	if !trustForwarded {
		return &u
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		u.Scheme = p
	}
	if h := r.Header.Get("X-Forwarded-Host"); h != "" {
		u.Host = h
	}
	return &u
}
