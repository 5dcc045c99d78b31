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

package render

import (
	"encoding/json"
	"fmt"
	"maps"

	"dirpx.dev/denvelope"
)

// Kind names a Shape variant. Kinds are stable and used as metric labels.
type Kind string

const (
	KindAlreadyEnveloped     Kind = "already_enveloped"
	KindRawSuccess           Kind = "raw_success"
	KindRawDetailError       Kind = "raw_detail_error"
	KindRawFieldErrors       Kind = "raw_field_errors"
	KindRawMessageWithExtras Kind = "raw_message_with_extras"
	KindRawString            Kind = "raw_string"
)

// Shape is the classified form of a handler payload. Exactly one of the
// variants below implements it; each knows how to format itself.
type Shape interface {
	Kind() Kind
	Envelope(m denvelope.Messages) denvelope.Envelope
}

// AlreadyEnveloped is a payload that already has the envelope shape.
// Body is the decoded mapping; Raw holds the original bytes when the
// payload arrived encoded.
type AlreadyEnveloped struct {
	Body map[string]any
	Raw  []byte

	env *denvelope.Envelope
}

// Kind implements Shape.
func (AlreadyEnveloped) Kind() Kind { return KindAlreadyEnveloped }

// Envelope implements Shape. Keys outside the envelope are dropped.
func (s AlreadyEnveloped) Envelope(denvelope.Messages) denvelope.Envelope {
	if s.env != nil {
		return *s.env
	}
	var env denvelope.Envelope
	env.Success, _ = s.Body["success"].(bool)
	env.Message = text(s.Body["message"])
	env.Data = s.Body["data"]
	if v, ok := s.Body["errors"]; ok && v != nil {
		env.Errors = v
	}
	if v, ok := s.Body["meta"].(map[string]any); ok {
		env.Meta = v
	}
	return env
}

// RawSuccess is a payload rendered under a 2xx status or without context.
type RawSuccess struct {
	Message    string
	HasMessage bool
	Data       any
}

// Kind implements Shape.
func (RawSuccess) Kind() Kind { return KindRawSuccess }

// Envelope implements Shape.
func (s RawSuccess) Envelope(m denvelope.Messages) denvelope.Envelope {
	msg := m.Success
	if s.HasMessage {
		msg = s.Message
	}
	return denvelope.Success(denvelope.WithMessage(msg), denvelope.WithData(s.Data)).Body
}

// RawDetailError is a failure mapping carrying a "detail" key.
type RawDetailError struct {
	Detail string
}

// Kind implements Shape.
func (RawDetailError) Kind() Kind { return KindRawDetailError }

// Envelope implements Shape.
func (s RawDetailError) Envelope(denvelope.Messages) denvelope.Envelope {
	return denvelope.Error(denvelope.WithMessage(s.Detail)).Body
}

// RawFieldErrors is a failure whose whole payload is the error report:
// either a mapping (usually field -> messages) or a list of messages.
type RawFieldErrors struct {
	Fields map[string]any
	List   []string
}

// Kind implements Shape.
func (RawFieldErrors) Kind() Kind { return KindRawFieldErrors }

// Envelope implements Shape.
func (s RawFieldErrors) Envelope(m denvelope.Messages) denvelope.Envelope {
	opts := []denvelope.Option{denvelope.WithMessage(m.Validation)}
	if s.List != nil {
		opts = append(opts, denvelope.WithErrorList(s.List))
	} else {
		opts = append(opts, denvelope.WithErrorMap(s.Fields))
	}
	return denvelope.Error(opts...).Body
}

// RawMessageWithExtras is a failure mapping carrying a "message" key. The
// remaining keys, if any, become the errors block verbatim.
type RawMessageWithExtras struct {
	Message string
	Extras  map[string]any
}

// Kind implements Shape.
func (RawMessageWithExtras) Kind() Kind { return KindRawMessageWithExtras }

// Envelope implements Shape.
func (s RawMessageWithExtras) Envelope(denvelope.Messages) denvelope.Envelope {
	opts := []denvelope.Option{denvelope.WithMessage(s.Message)}
	if len(s.Extras) > 0 {
		opts = append(opts, denvelope.WithErrorMap(s.Extras))
	}
	return denvelope.Error(opts...).Body
}

// RawString is a failure payload that is a bare string or scalar. A nil
// failure payload is a RawString with Empty set.
type RawString struct {
	Text  string
	Empty bool
}

// Kind implements Shape.
func (RawString) Kind() Kind { return KindRawString }

// Envelope implements Shape.
func (s RawString) Envelope(m denvelope.Messages) denvelope.Envelope {
	if s.Empty {
		return denvelope.Error(denvelope.WithMessage(m.Error)).Body
	}
	return denvelope.Error(denvelope.WithMessage(s.Text)).Body
}

// Context carries what the renderer knows about the outgoing response.
// A nil Context, or a zero Status, means the status is unknown.
type Context struct {
	Status int
}

func (c *Context) known() bool { return c != nil && c.Status != 0 }

func (c *Context) success() bool { return c.Status >= 200 && c.Status < 300 }

// Classify sorts payload into one Shape. The first matching rule wins:
// envelope-shaped payloads pass through, unknown or 2xx statuses wrap as
// success, and everything else is a failure.
func Classify(payload any, ctx *Context) Shape {
	switch e := payload.(type) {
	case denvelope.Envelope:
		return AlreadyEnveloped{Body: e.Map(), env: &e}
	case *denvelope.Envelope:
		if e != nil {
			return AlreadyEnveloped{Body: e.Map(), env: e}
		}
		payload = nil
	case denvelope.Response:
		return AlreadyEnveloped{Body: e.Body.Map(), env: &e.Body}
	}

	v, raw := inspect(payload)

	if m, ok := v.(map[string]any); ok && denvelope.IsEnvelope(m) {
		return AlreadyEnveloped{Body: m, Raw: raw}
	}

	if !ctx.known() {
		return RawSuccess{Data: v}
	}
	if ctx.success() {
		m, ok := v.(map[string]any)
		if !ok {
			return RawSuccess{Data: v}
		}
		msg, ok := m["message"]
		if !ok {
			return RawSuccess{Data: m}
		}
		rest := without(m, "message")
		var data any = rest
		if len(rest) == 0 {
			data = nil
		}
		return RawSuccess{Message: text(msg), HasMessage: true, Data: data}
	}
	return classifyFailure(v)
}

func classifyFailure(v any) Shape {
	switch t := v.(type) {
	case nil:
		return RawString{Empty: true}
	case map[string]any:
		if d, ok := t["detail"]; ok {
			return RawDetailError{Detail: text(d)}
		}
		if msg, ok := t["message"]; ok {
			return RawMessageWithExtras{Message: text(msg), Extras: without(t, "message")}
		}
		return RawFieldErrors{Fields: t}
	case []any:
		list := make([]string, 0, len(t))
		for _, e := range t {
			list = append(list, text(e))
		}
		return RawFieldErrors{List: list}
	case string:
		return RawString{Text: t}
	default:
		return RawString{Text: text(t)}
	}
}

func without(m map[string]any, key string) map[string]any {
	out := maps.Clone(m)
	delete(out, key)
	return out
}

// text renders a scalar, or a one-item list, as a message.
func text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case []any:
		if len(t) == 1 {
			return text(t[0])
		}
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}
