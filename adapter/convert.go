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

package adapter

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/denvelope"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ToStruct converts an envelope into a google.protobuf.Struct with the
// same keys as the JSON wire form.
//
// The conversion goes through the wire encoding, so presence rules for
// errors and meta are kept. Numbers become doubles, as Struct has no
// integer type.
func ToStruct(env denvelope.Envelope) (*structpb.Struct, error) {
	b, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("adapter: encode envelope: %w", err)
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("adapter: decode struct: %w", err)
	}
	return s, nil
}

// FromStruct converts a Struct produced by ToStruct back into an envelope.
// It fails with denvelope.ErrNotEnvelope when a required key is missing.
func FromStruct(s *structpb.Struct) (denvelope.Envelope, error) {
	if s == nil {
		return denvelope.Envelope{}, fmt.Errorf("adapter: nil struct: %w", denvelope.ErrNotEnvelope)
	}
	b, err := protojson.Marshal(s)
	if err != nil {
		return denvelope.Envelope{}, fmt.Errorf("adapter: encode struct: %w", err)
	}
	var env denvelope.Envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return denvelope.Envelope{}, err
	}
	return env, nil
}

// ToJSON encodes an envelope through its Struct form with protojson. The
// output is what a gRPC-gateway client sees for the same envelope.
func ToJSON(env denvelope.Envelope) ([]byte, error) {
	s, err := ToStruct(env)
	if err != nil {
		return nil, err
	}
	return protojson.MarshalOptions{UseProtoNames: true}.Marshal(s)
}
