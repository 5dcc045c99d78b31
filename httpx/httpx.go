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
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/metrics"
	"dirpx.dev/denvelope/render"
	"dirpx.dev/denvelope/translate"
)

// ContentType is the media type of every enveloped body.
const ContentType = "application/json"

// fallbackBody is written when a payload cannot be encoded at all.
var fallbackBody = []byte(`{"success":false,"message":"Internal server error","data":{}}`)

// Writer writes enveloped responses to net/http.
//
// Failures go through the Translator, and every body, translated or not,
// goes through the Renderer. Metrics is optional.
type Writer struct {
	Renderer   *render.Renderer
	Translator *translate.Translator
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics
}

// NewWriter returns a Writer using the given collaborators. Nil ones are
// replaced by defaults.
func NewWriter(r *render.Renderer, t *translate.Translator, log zerolog.Logger, m *metrics.Metrics) Writer {
	if r == nil {
		r = render.New()
	}
	if t == nil {
		t = translate.New(nil)
	}
	return Writer{Renderer: r, Translator: t, Logger: log, Metrics: m}
}

// Write renders payload with status and writes it. A denvelope.Response
// payload supplies its own status and headers; status is ignored then.
func (w Writer) Write(rw http.ResponseWriter, status int, payload any) {
	if resp, ok := payload.(denvelope.Response); ok {
		w.WriteResponse(rw, resp)
		return
	}
	w.write(rw, status, nil, payload)
}

// WriteResponse writes a built response.
func (w Writer) WriteResponse(rw http.ResponseWriter, resp denvelope.Response) {
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.write(rw, status, resp.Header, resp.Body)
}

// WriteError translates err and writes the resulting envelope. A nil err
// writes nothing.
func (w Writer) WriteError(rw http.ResponseWriter, r *http.Request, err error) {
	resp, ok := w.Translator.Translate(err)
	if !ok {
		return
	}
	w.logFailure(r, resp.Status, err)
	if w.Metrics != nil {
		w.Metrics.ObserveTranslation(resp.Status)
	}
	w.WriteResponse(rw, resp)
}

func (w Writer) write(rw http.ResponseWriter, status int, header http.Header, payload any) {
	b, err := w.Renderer.Render(payload, &render.Context{Status: status})
	if err != nil {
		w.Logger.Error().Err(err).Int("status", status).Msg("render envelope")
		status, header, b = http.StatusInternalServerError, nil, fallbackBody
	}

	h := rw.Header()
	for k, vs := range header {
		for _, v := range vs {
			h.Add(k, v)
		}
	}
	h.Set("Content-Type", ContentType)
	rw.WriteHeader(status)
	_, _ = rw.Write(b)
}

func (w Writer) logFailure(r *http.Request, status int, err error) {
	ev := w.Logger.Debug()
	if status >= http.StatusInternalServerError {
		ev = w.Logger.Error()
	}
	if r != nil {
		ev = ev.Str("method", r.Method).Str("path", r.URL.Path)
	}
	ev.Err(err).Int("status", status).Msg("request failed")
}

// HandlerFunc serves a request by returning a payload or a failure. The
// payload is rendered with status 200 unless it is a denvelope.Response.
type HandlerFunc func(r *http.Request) (any, error)

// Handle adapts fn to http.Handler. Panics are recovered and answered
// with the generic 500 envelope, unless the response has already started;
// then they are only logged.
func (w Writer) Handle(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				err := fmt.Errorf("httpx: panic: %v", p)
				if rec.wrote {
					w.logFailure(r, http.StatusInternalServerError, err)
				} else {
					w.WriteError(rec, r, err)
				}
			}
			if w.Metrics != nil {
				w.Metrics.ObserveRequest(r.Method, rec.status, time.Since(start))
			}
		}()

		payload, err := fn(r)
		if err != nil {
			w.WriteError(rec, r, err)
			return
		}
		w.Write(rec, http.StatusOK, payload)
	})
}

// NotFoundHandler answers unknown routes with a not-found envelope.
func (w Writer) NotFoundHandler() http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		w.Write(rw, http.StatusNotFound, map[string]any{"detail": "Not found."})
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	wrote  bool
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.wrote {
		return
	}
	s.wrote = true
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	s.wrote = true
	return s.ResponseWriter.Write(b)
}
