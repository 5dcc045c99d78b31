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

// Package render wraps handler payloads in the response envelope.
//
// Classify sorts a payload into one of six shapes (see Kind). Renderer
// formats the shape and encodes it. Payloads that already look like an
// envelope are never wrapped twice, which makes rendering idempotent.
package render
