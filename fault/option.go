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

import "time"

// Option transforms an Error under construction. Intended for E(...).
type Option func(*Error) *Error

// WithFieldOption adds messages for one field.
func WithFieldOption(field string, msgs ...string) Option {
	return func(e *Error) *Error {
		return e.WithField(field, msgs...)
	}
}

// WithFieldsOption merges a field -> messages map.
func WithFieldsOption(fields map[string][]string) Option {
	return func(e *Error) *Error {
		return e.WithFields(fields)
	}
}

// WithItemsOption appends list-form messages.
func WithItemsOption(msgs ...string) Option {
	return func(e *Error) *Error {
		return e.WithItems(msgs...)
	}
}

// WithStatusOption pins the HTTP status.
func WithStatusOption(status int) Option {
	return func(e *Error) *Error {
		return e.WithStatus(status)
	}
}

// WithRetryAfterOption sets the back-off hint.
func WithRetryAfterOption(d time.Duration) Option {
	return func(e *Error) *Error {
		return e.WithRetryAfter(d)
	}
}

// WithCauseOption attaches a cause.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error {
		return e.WithCause(err)
	}
}
