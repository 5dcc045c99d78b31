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
	"maps"
	"slices"
	"time"

	"dirpx.dev/denvelope/code"
)

// ErrNotFound is the sentinel for "resource missing" signals raised outside
// of this package. Wrap it to get a 404 whose message is the wrapping text:
//
//	return fmt.Errorf("page %d not found: %w", n, fault.ErrNotFound)
var ErrNotFound = errors.New("not found")

// Error is the canonical failure type understood by the translator.
//
// It carries:
//   - Code: the failure class (required);
//   - Message: the client-facing detail;
//   - Fields: field -> messages for validation failures;
//   - Items: list-form validation messages;
//   - Status: explicit HTTP status, 0 means "resolve via the mapper";
//   - RetryAfter: client back-off hint for rate limited failures;
//   - Cause: wrapped underlying error, never exposed to clients.
//
// All WithX helpers return a shallow copy, so values can be shared between
// goroutines and derived in a functional style.
type Error struct {
	Code       code.Code
	Message    string
	Fields     map[string][]string
	Items      []string
	Status     int
	RetryAfter time.Duration
	Cause      error
}

// E builds a new Error and applies opts in order.
//
//	return fault.E(code.Conflict, "Version mismatch.",
//	    fault.WithStatusOption(http.StatusPreconditionFailed),
//	)
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements the error interface as "<code>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause, enabling errors.Is / errors.As chains.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// FieldErrors implements apis.FieldError.
func (e *Error) FieldErrors() map[string][]string { return e.Fields }

// HTTPStatus implements apis.StatusError.
func (e *Error) HTTPStatus() int { return e.Status }

// WithMessage returns a copy of e with msg as its detail.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithField returns a copy of e with msgs appended to the field's messages.
// The field map and the field's slice are always copied.
func (e *Error) WithField(field string, msgs ...string) *Error {
	cp := *e
	m := make(map[string][]string, len(e.Fields)+1)
	maps.Copy(m, e.Fields)
	m[field] = append(slices.Clone(m[field]), msgs...)
	cp.Fields = m
	return &cp
}

// WithFields returns a copy of e with fields merged into its field errors.
// Keys in fields replace existing ones.
func (e *Error) WithFields(fields map[string][]string) *Error {
	if len(fields) == 0 {
		return e
	}
	cp := *e
	m := make(map[string][]string, len(e.Fields)+len(fields))
	maps.Copy(m, e.Fields)
	for k, v := range fields {
		m[k] = slices.Clone(v)
	}
	cp.Fields = m
	return &cp
}

// WithItems returns a copy of e with msgs appended to its list-form errors.
func (e *Error) WithItems(msgs ...string) *Error {
	cp := *e
	cp.Items = append(slices.Clone(e.Items), msgs...)
	return &cp
}

// WithStatus returns a copy of e that bypasses the mapper and resolves to
// status.
func (e *Error) WithStatus(status int) *Error {
	cp := *e
	cp.Status = status
	return &cp
}

// WithRetryAfter returns a copy of e carrying a back-off hint.
func (e *Error) WithRetryAfter(d time.Duration) *Error {
	cp := *e
	cp.RetryAfter = d
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}
