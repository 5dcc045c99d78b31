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

package ginx

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dirpx.dev/denvelope/fault"
	"dirpx.dev/denvelope/httpx"
)

// HandlerFunc serves a request by returning a payload or a failure.
type HandlerFunc func(c *gin.Context) (any, error)

// Wrap adapts fn to gin. The payload is rendered with status 200 unless
// it is a denvelope.Response; failures are translated.
func Wrap(w httpx.Writer, fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		payload, err := fn(c)
		if err != nil {
			w.WriteError(c.Writer, c.Request, err)
			return
		}
		w.Write(c.Writer, http.StatusOK, payload)
	}
}

// Envelope is a middleware that answers failures attached with c.Error,
// and panics, with error envelopes. Nothing is written when the handler
// already produced a response.
func Envelope(w httpx.Writer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if p := recover(); p != nil {
				if p == http.ErrAbortHandler {
					panic(p)
				}
				c.Abort()
				if !c.Writer.Written() {
					w.WriteError(c.Writer, c.Request, fmt.Errorf("ginx: panic: %v", p))
				}
			}
		}()

		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		w.WriteError(c.Writer, c.Request, c.Errors.Last().Err)
	}
}

// Render writes payload as an envelope with status.
func Render(c *gin.Context, w httpx.Writer, status int, payload any) {
	w.Write(c.Writer, status, payload)
}

// NoRoute answers unknown paths with a not-found envelope.
func NoRoute(w httpx.Writer) gin.HandlerFunc {
	return func(c *gin.Context) {
		w.WriteError(c.Writer, c.Request, fault.NotFound(""))
	}
}

// NoMethod answers known paths hit with an unsupported method.
func NoMethod(w httpx.Writer) gin.HandlerFunc {
	return func(c *gin.Context) {
		w.WriteError(c.Writer, c.Request, fault.MethodNotAllowed(c.Request.Method))
	}
}
