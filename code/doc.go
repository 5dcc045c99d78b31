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

// Package code defines the failure taxonomy used by denvelope.
//
// A code is the machine-readable class of a failure: "invalid",
// "not_found", "permission_denied", "rate_limited" and so on. The mapper
// turns a code into transport statuses, and the translator uses it to pick
// the envelope message. Codes are:
//
//   - lowercase, underscore-separated;
//   - 3..64 characters long;
//   - never empty on a failure.
//
// Codes outside the declared set are allowed (for example codes received
// from another service); they resolve to the mapper's fallback status.
package code
