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

package grpcx

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	gcodes "google.golang.org/grpc/codes"
	gstatus "google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/adapter"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/code"
	"dirpx.dev/denvelope/mapper"
	"dirpx.dev/denvelope/translate"
)

// Option configures the interceptor.
type Option func(*interceptor)

// WithMapper sets the table used to pick the gRPC code of failures that
// carry a failure code.
func WithMapper(m apis.Mapper) Option {
	return func(i *interceptor) {
		if m != nil {
			i.mapper = m
		}
	}
}

// WithLogger sets the logger used for unrecognized failures.
func WithLogger(l zerolog.Logger) Option {
	return func(i *interceptor) { i.log = l }
}

type interceptor struct {
	tr     *translate.Translator
	mapper apis.Mapper
	log    zerolog.Logger
}

// UnaryServerInterceptor returns a gRPC UnaryServerInterceptor that turns
// handler failures into gRPC statuses carrying the error envelope as a
// google.protobuf.Struct detail.
//
// The gRPC code follows the failure code when there is one, else the HTTP
// status of the translated envelope. The status message is the envelope
// message, so unrecognized failures never leak their text.
func UnaryServerInterceptor(tr *translate.Translator, opts ...Option) grpc.UnaryServerInterceptor {
	i := &interceptor{tr: tr, mapper: mapper.MustNew(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(i)
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}
		return nil, i.status(info.FullMethod, err).Err()
	}
}

func (i *interceptor) status(method string, err error) *gstatus.Status {
	out, _ := i.tr.Translate(err)
	gc := i.grpcCode(err, out.Status)
	if out.Status >= 500 {
		i.log.Error().Err(err).Str("method", method).Int("status", out.Status).Msg("grpc handler failed")
	}

	base := gstatus.New(gc, out.Body.Message)
	s, cerr := adapter.ToStruct(out.Body)
	if cerr != nil {
		return base
	}
	with, derr := base.WithDetails(s)
	if derr != nil {
		return base
	}
	return with
}

func (i *interceptor) grpcCode(err error, httpStatus int) gcodes.Code {
	var ce apis.CodedError
	if errors.As(err, &ce) {
		c := code.Code(code.Normalize(ce.ErrorCode()))
		if i.mapper.Has(c) {
			return i.mapper.GRPCStatus(c)
		}
	}
	if httpStatus >= 500 {
		return gcodes.Internal
	}
	return mapper.GRPCFromHTTP(httpStatus)
}

// ExtractEnvelope pulls the error envelope out of a gRPC error, if present.
// Useful in tests and client code.
func ExtractEnvelope(err error) (denvelope.Envelope, bool) {
	if err == nil {
		return denvelope.Envelope{}, false
	}
	st, ok := gstatus.FromError(err)
	if !ok {
		return denvelope.Envelope{}, false
	}
	for _, a := range st.Proto().GetDetails() {
		if !a.MessageIs(&structpb.Struct{}) {
			continue
		}
		s := &structpb.Struct{}
		if err := anypb.UnmarshalTo(a, s, proto.UnmarshalOptions{}); err != nil {
			continue
		}
		env, err := adapter.FromStruct(s)
		if err != nil {
			continue
		}
		return env, true
	}
	return denvelope.Envelope{}, false
}
