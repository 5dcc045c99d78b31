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

package code

// Request / input failures.
const (
	// Invalid marks a validation failure. Failures with this code usually
	// carry field errors (field -> messages) or a list of messages, and are
	// rendered with the "Validation failed" message.
	//
	// Can be mapped to an HTTP 400.
	Invalid Code = "invalid"

	// Malformed marks a request body that could not be parsed at all.
	//
	// Can be mapped to an HTTP 400.
	Malformed Code = "malformed"

	// MethodNotAllowed marks a request using a method the handler does not
	// serve.
	//
	// Can be mapped to an HTTP 405.
	MethodNotAllowed Code = "method_not_allowed"

	// NotAcceptable marks a request whose Accept header cannot be satisfied.
	//
	// Can be mapped to an HTTP 406.
	NotAcceptable Code = "not_acceptable"

	// UnsupportedMediaType marks a request body in a content type the
	// handler cannot parse.
	//
	// Can be mapped to an HTTP 415.
	UnsupportedMediaType Code = "unsupported_media_type"
)

// Resource failures.
const (
	// NotFound marks a missing resource, or one that is not visible to the
	// caller. Platform "missing" signals (sql.ErrNoRows, fs.ErrNotExist) are
	// normalized into this code by the translator.
	//
	// Can be mapped to an HTTP 404.
	NotFound Code = "not_found"

	// AlreadyExists marks a create that clashes with an existing resource.
	//
	// Can be mapped to an HTTP 409.
	AlreadyExists Code = "already_exists"

	// Conflict marks a generic conflicting update.
	//
	// Can be mapped to an HTTP 409.
	Conflict Code = "conflict"
)

// Authentication / authorization failures.
const (
	// Unauthenticated marks a request without credentials.
	//
	// Can be mapped to an HTTP 401.
	Unauthenticated Code = "unauthenticated"

	// InvalidCredentials marks a request with credentials that were
	// rejected.
	//
	// Can be mapped to an HTTP 401.
	InvalidCredentials Code = "invalid_credentials"

	// PermissionDenied marks an authenticated caller that may not perform
	// the action.
	//
	// Can be mapped to an HTTP 403.
	PermissionDenied Code = "permission_denied"
)

// Rate / availability failures.
const (
	// RateLimited marks a caller that exceeded its request rate.
	//
	// Can be mapped to an HTTP 429.
	RateLimited Code = "rate_limited"

	// Unavailable marks a dependency that is temporarily unreachable.
	//
	// Can be mapped to an HTTP 503.
	Unavailable Code = "unavailable"

	// Timeout marks an operation that ran out of its time budget.
	//
	// Can be mapped to an HTTP 504.
	Timeout Code = "timeout"

	// Internal marks a server-side failure whose detail is safe to show.
	// Unclassified Go errors never get this code; they are handled by the
	// translator's terminal handler instead.
	//
	// Can be mapped to an HTTP 500.
	Internal Code = "internal"
)

var known = map[Code]struct{}{
	Invalid:              {},
	Malformed:            {},
	MethodNotAllowed:     {},
	NotAcceptable:        {},
	UnsupportedMediaType: {},
	NotFound:             {},
	AlreadyExists:        {},
	Conflict:             {},
	Unauthenticated:      {},
	InvalidCredentials:   {},
	PermissionDenied:     {},
	RateLimited:          {},
	Unavailable:          {},
	Timeout:              {},
	Internal:             {},
}
