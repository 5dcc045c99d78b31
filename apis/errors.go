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

// CodedError is an error classified by a machine-readable code, such as
// "invalid" or "not_found". The translator resolves the HTTP status of a
// coded error through the Mapper.
//
// Implementations must return a normalized code (see package code). A code
// the Mapper has no rule for is treated as unrecognized unless the error
// also pins its status (StatusError).
type CodedError interface {
	error

	// ErrorCode returns the failure code.
	ErrorCode() string
}

// FieldError is implemented by validation-style errors that report
// messages per input field. A non-empty result makes the translator render
// "Validation failed" with the map as errors.
type FieldError interface {
	error

	// FieldErrors returns field -> messages. May return nil.
	FieldErrors() map[string][]string
}

// StatusError is implemented by errors that pin their own HTTP status and
// bypass the Mapper.
type StatusError interface {
	error

	// HTTPStatus returns the status, or 0 to defer to the Mapper.
	HTTPStatus() int
}
