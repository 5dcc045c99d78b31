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

package apis

import (
	"dirpx.dev/denvelope/code"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe view of the status table. It
// resolves a failure code into transport statuses for HTTP and gRPC.
type Mapper interface {
	// HTTPStatus returns the HTTP status for c. Unknown codes resolve to
	// the fallback (500 by default).
	HTTPStatus(c code.Code) int

	// GRPCStatus returns the gRPC status for c.
	GRPCStatus(c code.Code) codes.Code

	// Status resolves both in a single call.
	Status(c code.Code) Status

	// Has reports whether c has a rule of its own, as opposed to resolving
	// through the fallback.
	Has(c code.Code) bool

	// Explain returns a human-readable description of which rule matched.
	Explain(c code.Code) string
}

// Status is a resolved pair of transport statuses for one failure.
type Status struct {
	HTTP int        // net/http compatible status.
	GRPC codes.Code // gRPC status code.
}
