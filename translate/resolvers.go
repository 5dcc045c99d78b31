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
	"errors"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"time"

	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/fault"
	"dirpx.dev/denvelope/mapper"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
)

// FaultResolver resolves *fault.Error values and any other apis.CodedError.
//
// Only failures m has a rule for, or that pin their own status, are
// resolved. Anything else, including the empty code, is left to the
// terminal handler so its text never reaches the client.
//
// The status comes from the failure itself when it pins one, else from m.
// The body is the field map, the item list, or {"detail": message}. An
// invalid failure without fields or items reports its message as a one
// item list, like any other validation failure.
func FaultResolver(m apis.Mapper) apis.Resolver {
	return apis.ResolverFunc(func(err error) *apis.Resolution {
		var fe *fault.Error
		if errors.As(err, &fe) {
			return resolveFault(m, fe)
		}
		var ce apis.CodedError
		if errors.As(err, &ce) {
			return resolveCoded(m, ce)
		}
		return nil
	})
}

func resolveFault(m apis.Mapper, fe *fault.Error) *apis.Resolution {
	res := &apis.Resolution{Status: fe.Status}
	if res.Status == 0 {
		if !m.Has(fe.Code) {
			return nil
		}
		res.Status = m.HTTPStatus(fe.Code)
	}

	switch {
	case len(fe.Fields) > 0:
		res.Body = maps.Clone(fe.Fields)
	case len(fe.Items) > 0:
		res.Body = slices.Clone(fe.Items)
	case fe.Code == code.Invalid:
		res.Body = []string{fe.Message}
	default:
		res.Body = map[string]any{"detail": fe.Message}
	}

	if fe.RetryAfter > 0 {
		secs := int64((fe.RetryAfter + time.Second - 1) / time.Second)
		res.Header = http.Header{"Retry-After": []string{strconv.FormatInt(secs, 10)}}
	}
	return res
}

func resolveCoded(m apis.Mapper, ce apis.CodedError) *apis.Resolution {
	res := &apis.Resolution{}
	if se, ok := ce.(apis.StatusError); ok {
		res.Status = se.HTTPStatus()
	}
	if res.Status == 0 {
		c := code.Code(code.Normalize(ce.ErrorCode()))
		if !m.Has(c) {
			return nil
		}
		res.Status = m.HTTPStatus(c)
	}
	if fe, ok := ce.(apis.FieldError); ok {
		if fields := fe.FieldErrors(); len(fields) > 0 {
			res.Body = maps.Clone(fields)
			return res
		}
	}
	res.Body = map[string]any{"detail": ce.Error()}
	return res
}

// GRPCStatusResolver resolves errors carrying a gRPC status, typically
// returned by upstream gRPC clients. The HTTP status follows the gRPC code
// and the status message becomes the detail; BadRequest field violations
// become field errors.
//
// Unknown, Internal and DataLoss statuses are not resolved: their messages
// describe server internals, so they fall through to the terminal handler.
func GRPCStatusResolver() apis.Resolver {
	return apis.ResolverFunc(func(err error) *apis.Resolution {
		var carrier interface{ GRPCStatus() *gstatus.Status }
		if !errors.As(err, &carrier) {
			return nil
		}
		st := carrier.GRPCStatus()
		switch st.Code() {
		case gcodes.OK, gcodes.Unknown, gcodes.Internal, gcodes.DataLoss:
			return nil
		}

		res := &apis.Resolution{Status: mapper.HTTPFromGRPC(st.Code())}
		for _, d := range st.Details() {
			br, ok := d.(*errdetails.BadRequest)
			if !ok || len(br.GetFieldViolations()) == 0 {
				continue
			}
			fields := make(map[string][]string, len(br.GetFieldViolations()))
			for _, v := range br.GetFieldViolations() {
				fields[v.GetField()] = append(fields[v.GetField()], v.GetDescription())
			}
			res.Body = fields
			return res
		}
		res.Body = map[string]any{"detail": st.Message()}
		return res
	})
}
