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

// Package mapper provides the immutable failure-code -> transport status
// table consumed by the translator and the gRPC interceptor.
//
// # Resolution model
//
// A Mapper resolves statuses in the following order:
//
//  1. exact override for the code;
//  2. per-code default (library table or adjusted with WithXDefault);
//  3. global fallback (500 / codes.Internal unless WithFallback is used).
//
// # Library defaults
//
// The table follows common REST conventions: invalid -> 400 /
// InvalidArgument, not_found -> 404 / NotFound, permission_denied -> 403 /
// PermissionDenied, rate_limited -> 429 / ResourceExhausted, and so on.
//
// # Building a mapper
//
//	m, err := mapper.New(
//	    mapper.WithHTTPOverride(code.Invalid, http.StatusUnprocessableEntity),
//	)
//	if err != nil {
//	    // invalid code or status in an option
//	}
//	st := m.Status(code.NotFound) // st.HTTP == 404, st.GRPC == codes.NotFound
//
// # Immutability
//
// All inputs are copied during New. A Mapper can be shared across handlers,
// goroutines and requests.
package mapper
