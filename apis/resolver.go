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

import "net/http"

// Resolution is what a Resolver knows about a failure: the HTTP status and
// the body the platform would send for it.
//
// Body has one of the shapes the translator understands:
//   - map[string][]string: field errors;
//   - map[string]any{"detail": ...}: a single descriptive value;
//   - string: a plain detail;
//   - []string: list-form errors.
//
// Header carries optional transport hints (Retry-After and the like).
type Resolution struct {
	Status int
	Header http.Header
	Body   any
}

// Resolver is one link of the translator's fallback chain. It returns nil
// when it does not recognize err, letting the next resolver try.
type Resolver interface {
	Resolve(err error) *Resolution
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(err error) *Resolution

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(err error) *Resolution { return f(err) }
