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

// Package fault provides the canonical failure type raised by handlers.
//
// Handlers return a *fault.Error (or any error wrapping one) to describe a
// failure the client is allowed to see: validation problems, missing
// resources, permission and authentication problems, throttling. The
// translator turns it into an error envelope and a status code.
//
// Anything that is not a *fault.Error, a coded error, a gRPC status or a
// recognized "missing" signal is treated as unrecognized and reported to the
// client only as a generic internal error.
package fault
