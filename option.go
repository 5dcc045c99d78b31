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

package denvelope

import (
	"maps"
	"slices"
)

// Option configures Success or Error.
type Option func(*builder)

type builder struct {
	message string
	data    any
	meta    map[string]any
	errors  any
	status  int
}

// WithMessage sets the envelope message.
func WithMessage(msg string) Option {
	return func(b *builder) { b.message = msg }
}

// WithData sets the envelope data. A nil value keeps the {} default.
func WithData(data any) Option {
	return func(b *builder) { b.data = data }
}

// WithStatus sets the HTTP status of the response.
func WithStatus(status int) Option {
	return func(b *builder) { b.status = status }
}

// WithMeta attaches a meta block. Success only; a nil map attaches nothing.
func WithMeta(meta map[string]any) Option {
	return func(b *builder) {
		if meta != nil {
			b.meta = maps.Clone(meta)
		}
	}
}

// WithFieldErrors attaches field -> messages errors. Error only; a nil map
// attaches nothing.
func WithFieldErrors(fields map[string][]string) Option {
	return func(b *builder) {
		if fields != nil {
			b.errors = cloneFields(fields)
		}
	}
}

// WithErrorList attaches list-form errors. Error only; a nil slice attaches
// nothing.
func WithErrorList(msgs []string) Option {
	return func(b *builder) {
		if msgs != nil {
			b.errors = slices.Clone(msgs)
		}
	}
}

// WithErrorMap attaches a free-form errors mapping. Error only; a nil map
// attaches nothing.
func WithErrorMap(m map[string]any) Option {
	return func(b *builder) {
		if m != nil {
			b.errors = maps.Clone(m)
		}
	}
}
