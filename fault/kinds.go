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
	"fmt"
	"time"

	"dirpx.dev/denvelope/code"
)

// Default client-facing details, used when a constructor gets an empty one.
const (
	DefaultInvalidDetail            = "Invalid input."
	DefaultMalformedDetail          = "Malformed request."
	DefaultNotFoundDetail           = "Not found."
	DefaultPermissionDeniedDetail   = "You do not have permission to perform this action."
	DefaultUnauthenticatedDetail    = "Authentication credentials were not provided."
	DefaultInvalidCredentialsDetail = "Incorrect authentication credentials."
	DefaultRateLimitedDetail        = "Request was throttled."
	DefaultInternalDetail           = "A server error occurred."
)

// Validation returns an invalid failure carrying field errors.
func Validation(fields map[string][]string) *Error {
	return E(code.Invalid, DefaultInvalidDetail, WithFieldsOption(fields))
}

// ValidationList returns an invalid failure carrying list-form errors.
func ValidationList(msgs ...string) *Error {
	return E(code.Invalid, DefaultInvalidDetail, WithItemsOption(msgs...))
}

// Malformed returns a failure for an unparsable request body.
func Malformed(detail string) *Error {
	return E(code.Malformed, orDefault(detail, DefaultMalformedDetail))
}

// NotFound returns a not-found failure.
func NotFound(detail string) *Error {
	return E(code.NotFound, orDefault(detail, DefaultNotFoundDetail))
}

// PermissionDenied returns a forbidden failure.
func PermissionDenied(detail string) *Error {
	return E(code.PermissionDenied, orDefault(detail, DefaultPermissionDeniedDetail))
}

// Unauthenticated returns a failure for a request without credentials.
func Unauthenticated(detail string) *Error {
	return E(code.Unauthenticated, orDefault(detail, DefaultUnauthenticatedDetail))
}

// InvalidCredentials returns a failure for rejected credentials.
func InvalidCredentials(detail string) *Error {
	return E(code.InvalidCredentials, orDefault(detail, DefaultInvalidCredentialsDetail))
}

// MethodNotAllowed returns a failure for an unsupported request method.
func MethodNotAllowed(method string) *Error {
	return E(code.MethodNotAllowed, fmt.Sprintf("Method %q not allowed.", method))
}

// RateLimited returns a throttling failure. A positive wait is exposed as
// a Retry-After hint and appended to the detail.
func RateLimited(detail string, wait time.Duration) *Error {
	detail = orDefault(detail, DefaultRateLimitedDetail)
	if wait <= 0 {
		return E(code.RateLimited, detail)
	}
	secs := int64((wait + time.Second - 1) / time.Second)
	return E(code.RateLimited, fmt.Sprintf("%s Expected available in %d seconds.", detail, secs),
		WithRetryAfterOption(wait),
	)
}

// Internal returns a server-side failure whose detail is meant for clients.
// Use it only for details that are safe to show; plain Go errors are
// suppressed by the translator instead.
func Internal(detail string) *Error {
	return E(code.Internal, orDefault(detail, DefaultInternalDetail))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
