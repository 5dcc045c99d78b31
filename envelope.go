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
	"net/http"
	"slices"
)

// Messages used when a caller does not supply one.
const (
	DefaultSuccessMessage   = "Operation successful"
	DefaultErrorMessage     = "An error occurred"
	ValidationFailedMessage = "Validation failed"
	InternalErrorMessage    = "Internal server error"
)

// Envelope is the canonical response body.
//
// Success, Message and Data are always present on the wire; a nil Data is
// written as {}. Errors and Meta are written only when they are non-nil,
// i.e. when a caller explicitly supplied them.
//
// Errors holds one of:
//   - map[string][]string: field -> messages;
//   - map[string]any: message siblings forwarded verbatim by the renderer;
//   - []string: list-form messages.
//
// An Envelope is a value: constructors copy the maps they are given and
// the WithX helpers return modified copies.
type Envelope struct {
	Success bool
	Message string
	Data    any
	Errors  any
	Meta    map[string]any
}

// Response pairs an envelope with the HTTP status it should be sent with.
// Header carries transport hints such as Retry-After; it may be nil.
type Response struct {
	Status int
	Header http.Header
	Body   Envelope
}

// Messages holds the fallback texts the renderer and the translator use
// when a payload or a failure does not supply its own.
type Messages struct {
	Success    string `yaml:"success"`
	Error      string `yaml:"error"`
	Validation string `yaml:"validation"`
	Internal   string `yaml:"internal"`
}

// DefaultMessages returns the stock fallback texts.
func DefaultMessages() Messages {
	return Messages{
		Success:    DefaultSuccessMessage,
		Error:      DefaultErrorMessage,
		Validation: ValidationFailedMessage,
		Internal:   InternalErrorMessage,
	}
}

// OrDefault fills empty fields with the stock texts.
func (m Messages) OrDefault() Messages {
	d := DefaultMessages()
	if m.Success == "" {
		m.Success = d.Success
	}
	if m.Error == "" {
		m.Error = d.Error
	}
	if m.Validation == "" {
		m.Validation = d.Validation
	}
	if m.Internal == "" {
		m.Internal = d.Internal
	}
	return m
}

// Success builds a success response.
//
// Defaults: data {}, message "Operation successful", no meta, status 200.
// Error-related options are ignored.
func Success(opts ...Option) Response {
	b := builder{message: DefaultSuccessMessage, status: http.StatusOK}
	for _, opt := range opts {
		opt(&b)
	}
	return Response{
		Status: b.status,
		Body: Envelope{
			Success: true,
			Message: b.message,
			Data:    dataOrEmpty(b.data),
			Meta:    b.meta,
		},
	}
}

// Error builds a failure response.
//
// Defaults: message "An error occurred", no errors, data {}, status 400.
// WithMeta is ignored.
func Error(opts ...Option) Response {
	b := builder{message: DefaultErrorMessage, status: http.StatusBadRequest}
	for _, opt := range opts {
		opt(&b)
	}
	return Response{
		Status: b.status,
		Body: Envelope{
			Success: false,
			Message: b.message,
			Data:    dataOrEmpty(b.data),
			Errors:  b.errors,
		},
	}
}

// HasErrors reports whether the errors key is present.
func (e Envelope) HasErrors() bool { return e.Errors != nil }

// HasMeta reports whether the meta key is present.
func (e Envelope) HasMeta() bool { return e.Meta != nil }

// WithMessage returns a copy of e with msg as its message.
func (e Envelope) WithMessage(msg string) Envelope {
	e.Message = msg
	return e
}

// WithMeta returns a copy of e with key set in its meta block. The meta map
// is copied, never shared with e.
func (e Envelope) WithMeta(key string, value any) Envelope {
	m := make(map[string]any, len(e.Meta)+1)
	maps.Copy(m, e.Meta)
	m[key] = value
	e.Meta = m
	return e
}

// Map returns the envelope as a generic mapping with the same keys as the
// wire form.
func (e Envelope) Map() map[string]any {
	m := map[string]any{
		"success": e.Success,
		"message": e.Message,
		"data":    dataOrEmpty(e.Data),
	}
	if e.Errors != nil {
		m["errors"] = e.Errors
	}
	if e.Meta != nil {
		m["meta"] = e.Meta
	}
	return m
}

// IsEnvelope reports whether m already has the envelope shape: it carries
// success, message and data, whatever else it carries.
func IsEnvelope(m map[string]any) bool {
	if m == nil {
		return false
	}
	for _, k := range requiredKeys {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}

var requiredKeys = []string{"success", "message", "data"}

func dataOrEmpty(v any) any {
	if v == nil {
		return map[string]any{}
	}
	return v
}

func cloneFields(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
