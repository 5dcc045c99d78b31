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

package denvelope

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotEnvelope is returned when decoding a body that lacks one of the
// required envelope keys.
var ErrNotEnvelope = errors.New("denvelope: body is not an envelope")

// wire fixes the key order on the wire. Errors and Meta are interfaces so
// that omitempty drops them only when they were never supplied; an
// explicitly empty mapping is still written.
type wire struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  any    `json:"errors,omitempty"`
	Meta    any    `json:"meta,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e Envelope) MarshalJSON() ([]byte, error) {
	w := wire{
		Success: e.Success,
		Message: e.Message,
		Data:    dataOrEmpty(e.Data),
		Errors:  e.Errors,
	}
	if e.Meta != nil {
		w.Meta = e.Meta
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler. Numbers are kept as
// json.Number so a decoded envelope re-encodes byte-for-byte. Errors are
// narrowed to map[string][]string or []string when every value is a list of
// strings or a string.
func (e *Envelope) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("denvelope: decode envelope: %w", err)
	}
	for _, k := range requiredKeys {
		if _, ok := raw[k]; !ok {
			return fmt.Errorf("%w: missing %q", ErrNotEnvelope, k)
		}
	}

	var out Envelope
	if err := json.Unmarshal(raw["success"], &out.Success); err != nil {
		return fmt.Errorf("denvelope: decode success: %w", err)
	}
	if err := json.Unmarshal(raw["message"], &out.Message); err != nil {
		return fmt.Errorf("denvelope: decode message: %w", err)
	}
	data, err := DecodeValue(raw["data"])
	if err != nil {
		return fmt.Errorf("denvelope: decode data: %w", err)
	}
	out.Data = data

	if r, ok := raw["errors"]; ok {
		v, err := DecodeValue(r)
		if err != nil {
			return fmt.Errorf("denvelope: decode errors: %w", err)
		}
		out.Errors = narrowErrors(v)
	}
	if r, ok := raw["meta"]; ok {
		v, err := DecodeValue(r)
		if err != nil {
			return fmt.Errorf("denvelope: decode meta: %w", err)
		}
		m, ok := v.(map[string]any)
		if !ok {
			return fmt.Errorf("denvelope: meta must be an object, got %T", v)
		}
		out.Meta = m
	}

	*e = out
	return nil
}

// DecodeValue decodes arbitrary JSON, keeping numbers as json.Number.
func DecodeValue(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func narrowErrors(v any) any {
	switch t := v.(type) {
	case []any:
		if list, ok := stringList(t); ok {
			return list
		}
	case map[string]any:
		fields := make(map[string][]string, len(t))
		for k, fv := range t {
			arr, ok := fv.([]any)
			if !ok {
				return t
			}
			list, ok := stringList(arr)
			if !ok {
				return t
			}
			fields[k] = list
		}
		return fields
	}
	return v
}

func stringList(in []any) ([]string, bool) {
	out := make([]string, 0, len(in))
	for _, v := range in {
		s, ok := v.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}
