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
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess_Defaults(t *testing.T) {
	r := Success()

	assert.Equal(t, http.StatusOK, r.Status)
	assert.True(t, r.Body.Success)
	assert.Equal(t, DefaultSuccessMessage, r.Body.Message)
	assert.Equal(t, map[string]any{}, r.Body.Data)
	assert.False(t, r.Body.HasMeta())
	assert.False(t, r.Body.HasErrors())
}

func TestSuccess_Options(t *testing.T) {
	meta := map[string]any{"pagination": map[string]any{"total": 10, "page": 1}}
	r := Success(
		WithData(map[string]any{"key": "value"}),
		WithMessage("Custom success message"),
		WithMeta(meta),
		WithStatus(http.StatusCreated),
		WithFieldErrors(map[string][]string{"ignored": {"x"}}),
	)

	assert.Equal(t, http.StatusCreated, r.Status)
	assert.Equal(t, "Custom success message", r.Body.Message)
	assert.Equal(t, map[string]any{"key": "value"}, r.Body.Data)
	assert.Equal(t, meta, r.Body.Meta)
	assert.False(t, r.Body.HasErrors(), "success ignores errors")

	meta["extra"] = true
	assert.NotContains(t, r.Body.Meta, "extra", "meta must be copied")
}

func TestSuccess_DataAndMessageRoundTrip(t *testing.T) {
	for _, d := range []any{"text", 42, []any{1, 2}, map[string]any{"a": "b"}} {
		r := Success(WithData(d), WithMessage("M"))
		assert.Equal(t, d, r.Body.Data)
		assert.Equal(t, "M", r.Body.Message)
		assert.True(t, r.Body.Success)
		assert.Nil(t, r.Body.Meta)
	}
}

func TestError_Defaults(t *testing.T) {
	r := Error()

	assert.Equal(t, http.StatusBadRequest, r.Status)
	assert.False(t, r.Body.Success)
	assert.Equal(t, DefaultErrorMessage, r.Body.Message)
	assert.Equal(t, map[string]any{}, r.Body.Data)
	assert.False(t, r.Body.HasErrors())
}

func TestError_Forms(t *testing.T) {
	fields := map[string][]string{"field": {"This field is required"}}
	r := Error(WithFieldErrors(fields), WithStatus(http.StatusNotFound), WithMeta(map[string]any{"x": 1}))
	assert.Equal(t, http.StatusNotFound, r.Status)
	assert.Equal(t, fields, r.Body.Errors)
	assert.False(t, r.Body.HasMeta(), "error ignores meta")

	fields["field"][0] = "mutated"
	assert.Equal(t, map[string][]string{"field": {"This field is required"}}, r.Body.Errors)

	list := Error(WithErrorList([]string{"Error 1", "Error 2"}))
	assert.Equal(t, []string{"Error 1", "Error 2"}, list.Body.Errors)

	none := Error(WithFieldErrors(nil), WithErrorList(nil), WithErrorMap(nil))
	assert.False(t, none.Body.HasErrors())
}

func TestEnvelope_MarshalPresenceRules(t *testing.T) {
	b, err := json.Marshal(Success().Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Operation successful","data":{}}`, string(b))

	b, err = json.Marshal(Error(WithErrorList([]string{})).Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"An error occurred","data":{},"errors":[]}`, string(b))

	b, err = json.Marshal(Success(WithMeta(map[string]any{})).Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"Operation successful","data":{},"meta":{}}`, string(b))

	b, err = json.Marshal(Envelope{Message: "zero"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"zero","data":{}}`, string(b))
}

func TestEnvelope_KeyOrder(t *testing.T) {
	b, err := json.Marshal(Error(WithErrorList([]string{"e"})).Body)
	require.NoError(t, err)
	assert.Equal(t, `{"success":false,"message":"An error occurred","data":{},"errors":["e"]}`, string(b))
}

func TestEnvelope_Unmarshal(t *testing.T) {
	var e Envelope
	err := json.Unmarshal([]byte(`{"success":false,"message":"Validation failed","data":{},"errors":{"name":["required"]}}`), &e)
	require.NoError(t, err)
	assert.False(t, e.Success)
	assert.Equal(t, map[string][]string{"name": {"required"}}, e.Errors)

	err = json.Unmarshal([]byte(`{"success":false,"message":"m","data":{},"errors":{"message_extra":3}}`), &e)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"message_extra": json.Number("3")}, e.Errors)

	err = json.Unmarshal([]byte(`{"success":true,"message":"m"}`), &e)
	require.ErrorIs(t, err, ErrNotEnvelope)

	err = json.Unmarshal([]byte(`{"success":true,"message":"m","data":{},"meta":[1]}`), &e)
	require.Error(t, err)
}

func TestEnvelope_RoundTripStable(t *testing.T) {
	in := `{"success":true,"message":"ok","data":{"n":1.50,"items":[1,2]},"meta":{"pagination":{"count":2,"next":null}}}`
	var e Envelope
	require.NoError(t, json.Unmarshal([]byte(in), &e))
	out, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestEnvelope_WithHelpersCopy(t *testing.T) {
	base := Success(WithMeta(map[string]any{"a": 1})).Body
	derived := base.WithMeta("b", 2).WithMessage("changed")

	assert.Equal(t, map[string]any{"a": 1}, base.Meta)
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, derived.Meta)
	assert.Equal(t, DefaultSuccessMessage, base.Message)
	assert.Equal(t, "changed", derived.Message)
}

func TestEnvelope_Map(t *testing.T) {
	m := Error(WithErrorList([]string{"x"})).Body.Map()
	assert.True(t, IsEnvelope(m))
	assert.Equal(t, []string{"x"}, m["errors"])
	assert.NotContains(t, m, "meta")
}

func TestIsEnvelope(t *testing.T) {
	assert.True(t, IsEnvelope(map[string]any{"success": true, "message": "m", "data": nil, "extra": 1}))
	assert.False(t, IsEnvelope(map[string]any{"success": true, "message": "m"}))
	assert.False(t, IsEnvelope(nil))
}
