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

package httpx

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/fault"
	"dirpx.dev/denvelope/metrics"
)

func serve(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ContentType, rec.Header().Get("Content-Type"))
	return rec, body
}

func TestHandle_Success(t *testing.T) {
	w := NewWriter(nil, nil, zerolog.Nop(), nil)
	rec, body := serve(t, w.Handle(func(*http.Request) (any, error) {
		return map[string]string{"foo": "bar"}, nil
	}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, map[string]any{"foo": "bar"}, body["data"])
}

func TestHandle_Response(t *testing.T) {
	w := NewWriter(nil, nil, zerolog.Nop(), nil)
	rec, body := serve(t, w.Handle(func(*http.Request) (any, error) {
		return denvelope.Success(denvelope.WithStatus(http.StatusCreated), denvelope.WithMessage("Created")), nil
	}))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Created", body["message"])
}

func TestHandle_Failures(t *testing.T) {
	var logs bytes.Buffer
	m := metrics.New()
	w := NewWriter(nil, nil, zerolog.New(&logs), m)

	rec, body := serve(t, w.Handle(func(*http.Request) (any, error) {
		return nil, fault.RateLimited("", 2*time.Second)
	}))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
	assert.Equal(t, false, body["success"])

	rec, body = serve(t, w.Handle(func(*http.Request) (any, error) {
		return nil, errors.New("disk on fire")
	}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.NotContains(t, rec.Body.String(), "disk on fire")
	assert.Contains(t, logs.String(), "disk on fire")
}

func TestHandle_Panic(t *testing.T) {
	var logs bytes.Buffer
	w := NewWriter(nil, nil, zerolog.New(&logs), nil)
	rec, body := serve(t, w.Handle(func(*http.Request) (any, error) {
		panic("nil map write")
	}))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", body["message"])
	assert.Contains(t, logs.String(), "nil map write")
}

// brokenWriter panics on its first body write, after the bytes went out.
type brokenWriter struct {
	*httptest.ResponseRecorder
	headers int
	writes  int
}

func (b *brokenWriter) WriteHeader(code int) {
	b.headers++
	b.ResponseRecorder.WriteHeader(code)
}

func (b *brokenWriter) Write(p []byte) (int, error) {
	b.writes++
	n, _ := b.ResponseRecorder.Write(p)
	if b.writes == 1 {
		panic("connection reset")
	}
	return n, nil
}

func TestHandle_PanicAfterWrite(t *testing.T) {
	var logs bytes.Buffer
	w := NewWriter(nil, nil, zerolog.New(&logs), nil)
	bw := &brokenWriter{ResponseRecorder: httptest.NewRecorder()}

	w.Handle(func(*http.Request) (any, error) {
		return map[string]string{"foo": "bar"}, nil
	}).ServeHTTP(bw, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, 1, bw.headers)
	assert.Equal(t, 1, bw.writes)
	assert.Equal(t, http.StatusOK, bw.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(bw.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Contains(t, logs.String(), "connection reset")
}

func TestWrite_RawFailurePayload(t *testing.T) {
	w := NewWriter(nil, nil, zerolog.Nop(), nil)
	rec := httptest.NewRecorder()
	w.Write(rec, http.StatusConflict, map[string]any{"message": "Taken", "field": "email"})

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Taken", body["message"])
	assert.Equal(t, map[string]any{"field": "email"}, body["errors"])
}

func TestWrite_Unencodable(t *testing.T) {
	w := NewWriter(nil, nil, zerolog.Nop(), nil)
	rec := httptest.NewRecorder()
	w.Write(rec, http.StatusOK, map[string]any{"f": func() {}})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, string(fallbackBody), rec.Body.String())
}

func TestWriteError_Nil(t *testing.T) {
	w := NewWriter(nil, nil, zerolog.Nop(), nil)
	rec := httptest.NewRecorder()
	w.WriteError(rec, nil, nil)
	assert.Zero(t, rec.Body.Len())
}

func TestNotFoundHandler(t *testing.T) {
	w := NewWriter(nil, nil, zerolog.Nop(), nil)
	rec, body := serve(t, w.NotFoundHandler())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not found.", body["message"])
}
