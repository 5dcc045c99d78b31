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

package mapper

import (
	"net/http"

	"dirpx.dev/denvelope/code"
	"google.golang.org/grpc/codes"
)

// defaultHTTP is the library's failure -> HTTP table. It follows the usual
// REST framework conventions; adjust it with options at the boundary.
var defaultHTTP = map[code.Code]int{
	// Request / input.
	code.Invalid:              http.StatusBadRequest,
	code.Malformed:            http.StatusBadRequest,
	code.MethodNotAllowed:     http.StatusMethodNotAllowed,
	code.NotAcceptable:        http.StatusNotAcceptable,
	code.UnsupportedMediaType: http.StatusUnsupportedMediaType,

	// Resources.
	code.NotFound:      http.StatusNotFound,
	code.AlreadyExists: http.StatusConflict,
	code.Conflict:      http.StatusConflict,

	// AuthN / AuthZ.
	code.Unauthenticated:    http.StatusUnauthorized,
	code.InvalidCredentials: http.StatusUnauthorized,
	code.PermissionDenied:   http.StatusForbidden,

	// Rate / availability.
	code.RateLimited: http.StatusTooManyRequests,
	code.Unavailable: http.StatusServiceUnavailable,
	code.Timeout:     http.StatusGatewayTimeout,
	code.Internal:    http.StatusInternalServerError,
}

// defaultGRPC is the library's failure -> gRPC table.
var defaultGRPC = map[code.Code]codes.Code{
	code.Invalid:              codes.InvalidArgument,
	code.Malformed:            codes.InvalidArgument,
	code.MethodNotAllowed:     codes.Unimplemented,
	code.NotAcceptable:        codes.InvalidArgument,
	code.UnsupportedMediaType: codes.InvalidArgument,

	code.NotFound:      codes.NotFound,
	code.AlreadyExists: codes.AlreadyExists,
	code.Conflict:      codes.Aborted, // concurrent modification

	code.Unauthenticated:    codes.Unauthenticated,
	code.InvalidCredentials: codes.Unauthenticated,
	code.PermissionDenied:   codes.PermissionDenied,

	code.RateLimited: codes.ResourceExhausted,
	code.Unavailable: codes.Unavailable,
	code.Timeout:     codes.DeadlineExceeded,
	code.Internal:    codes.Internal,
}

// grpcToHTTP maps gRPC codes received from upstream services back to HTTP.
var grpcToHTTP = map[codes.Code]int{
	codes.OK:                 http.StatusOK,
	codes.Canceled:           499,
	codes.Unknown:            http.StatusInternalServerError,
	codes.InvalidArgument:    http.StatusBadRequest,
	codes.DeadlineExceeded:   http.StatusGatewayTimeout,
	codes.NotFound:           http.StatusNotFound,
	codes.AlreadyExists:      http.StatusConflict,
	codes.PermissionDenied:   http.StatusForbidden,
	codes.Unauthenticated:    http.StatusUnauthorized,
	codes.ResourceExhausted:  http.StatusTooManyRequests,
	codes.FailedPrecondition: http.StatusBadRequest,
	codes.Aborted:            http.StatusConflict,
	codes.OutOfRange:         http.StatusBadRequest,
	codes.Unimplemented:      http.StatusNotImplemented,
	codes.Internal:           http.StatusInternalServerError,
	codes.Unavailable:        http.StatusServiceUnavailable,
	codes.DataLoss:           http.StatusInternalServerError,
}

// HTTPFromGRPC returns the HTTP status conventionally used for a gRPC code.
// Unknown codes map to 500.
func HTTPFromGRPC(c codes.Code) int {
	if v, ok := grpcToHTTP[c]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// httpToGRPC maps the HTTP statuses an envelope can carry onto gRPC codes
// when no failure code is available.
var httpToGRPC = map[int]codes.Code{
	http.StatusOK:                  codes.OK,
	http.StatusBadRequest:          codes.InvalidArgument,
	http.StatusUnauthorized:        codes.Unauthenticated,
	http.StatusForbidden:           codes.PermissionDenied,
	http.StatusNotFound:            codes.NotFound,
	http.StatusMethodNotAllowed:    codes.Unimplemented,
	http.StatusConflict:            codes.AlreadyExists,
	http.StatusPreconditionFailed:  codes.FailedPrecondition,
	http.StatusTooManyRequests:     codes.ResourceExhausted,
	499:                            codes.Canceled,
	http.StatusNotImplemented:      codes.Unimplemented,
	http.StatusServiceUnavailable:  codes.Unavailable,
	http.StatusGatewayTimeout:      codes.DeadlineExceeded,
	http.StatusInternalServerError: codes.Internal,
}

// GRPCFromHTTP returns the gRPC code conventionally used for an HTTP
// status. Other 4xx statuses map to FailedPrecondition, everything else to
// Unknown.
func GRPCFromHTTP(status int) codes.Code {
	if c, ok := httpToGRPC[status]; ok {
		return c
	}
	if status >= 400 && status < 500 {
		return codes.FailedPrecondition
	}
	if status >= 200 && status < 300 {
		return codes.OK
	}
	return codes.Unknown
}
