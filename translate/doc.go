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

// Package translate converts failures into error envelopes.
//
// The Translator is the boundary exception handler: every failure a handler
// raises goes through it before anything reaches a client. Known failures
// keep their detail; anything unrecognized is answered with a fixed
// "Internal server error" and status 500 so internal state never leaks.
package translate
