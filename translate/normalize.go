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

package translate

import (
	"database/sql"
	"errors"
	"io/fs"
	"strings"

	"dirpx.dev/denvelope/fault"
)

// NormalizeNotFound folds platform "resource missing" signals into
// fault.NotFound so the resolvers only deal with one not-found type.
//
//   - errors wrapping fault.ErrNotFound keep their own text as the detail,
//     minus the sentinel suffix;
//   - sql.ErrNoRows and fs.ErrNotExist get the generic detail, their text
//     comes from drivers and file systems and is not meant for clients.
//
// Errors that already contain a *fault.Error are left alone.
func NormalizeNotFound(err error) error {
	var fe *fault.Error
	if errors.As(err, &fe) {
		return nil
	}
	switch {
	case errors.Is(err, fault.ErrNotFound):
		msg := strings.TrimSuffix(err.Error(), ": "+fault.ErrNotFound.Error())
		if err == fault.ErrNotFound {
			msg = ""
		}
		return fault.NotFound(msg).WithCause(err)
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, fs.ErrNotExist):
		return fault.NotFound("").WithCause(err)
	}
	return nil
}
