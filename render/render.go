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

package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"dirpx.dev/denvelope"
)

// Renderer turns handler payloads into envelope bytes.
//
// Rendering is idempotent: feeding the output of Render back into Render
// yields the same bytes. A Renderer is immutable after New and safe for
// concurrent use.
type Renderer struct {
	messages denvelope.Messages
	observe  func(Kind)
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithMessages replaces the fallback texts. Empty fields keep the defaults.
func WithMessages(m denvelope.Messages) Option {
	return func(r *Renderer) { r.messages = m.OrDefault() }
}

// WithObserver registers a callback invoked with the kind of every
// classified payload.
func WithObserver(fn func(Kind)) Option {
	return func(r *Renderer) {
		if fn != nil {
			r.observe = fn
		}
	}
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		messages: denvelope.DefaultMessages(),
		observe:  func(Kind) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Messages returns the fallback texts in use.
func (r *Renderer) Messages() denvelope.Messages { return r.messages }

// Normalize classifies payload and returns its envelope form along with
// the shape kind it was classified as.
func (r *Renderer) Normalize(payload any, ctx *Context) (denvelope.Envelope, Kind) {
	shape := Classify(payload, ctx)
	r.observe(shape.Kind())
	return shape.Envelope(r.messages), shape.Kind()
}

// Render encodes payload as an envelope.
//
// Envelope-shaped payloads are written unchanged: encoded input is only
// compacted, mappings are re-encoded as they are.
func (r *Renderer) Render(payload any, ctx *Context) ([]byte, error) {
	shape := Classify(payload, ctx)
	r.observe(shape.Kind())

	if ae, ok := shape.(AlreadyEnveloped); ok && ae.env == nil {
		if ae.Raw != nil {
			var buf bytes.Buffer
			if err := json.Compact(&buf, ae.Raw); err != nil {
				return nil, fmt.Errorf("render: compact envelope: %w", err)
			}
			return buf.Bytes(), nil
		}
		b, err := json.Marshal(ae.Body)
		if err != nil {
			return nil, fmt.Errorf("render: encode envelope: %w", err)
		}
		return b, nil
	}

	b, err := json.Marshal(shape.Envelope(r.messages))
	if err != nil {
		return nil, fmt.Errorf("render: encode envelope: %w", err)
	}
	return b, nil
}

// inspect brings payload into a generic form. Mappings, structs and
// encoded JSON are decoded into map[string]any / []any with numbers kept
// as json.Number; scalars are returned as they are. For encoded input the
// original bytes are returned too.
func inspect(payload any) (any, []byte) {
	switch t := payload.(type) {
	case nil, string, bool, json.Number:
		return t, nil
	case map[string]any, []any:
		return t, nil
	case json.RawMessage:
		return decodeRaw(t)
	case []byte:
		return decodeRaw(t)
	}

	rv := reflect.ValueOf(payload)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array:
		b, err := json.Marshal(payload)
		if err != nil {
			return payload, nil
		}
		v, err := denvelope.DecodeValue(b)
		if err != nil {
			return payload, nil
		}
		return v, nil
	}
	return payload, nil
}

func decodeRaw(b []byte) (any, []byte) {
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	v, err := denvelope.DecodeValue(b)
	if err != nil {
		return string(b), nil
	}
	return v, b
}
