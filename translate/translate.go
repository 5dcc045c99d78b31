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
	"fmt"
	"net/http"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/apis"
	"dirpx.dev/denvelope/mapper"
)

// Normalizer rewrites a platform-specific failure into a canonical one. It
// returns nil when it does not apply.
type Normalizer func(err error) error

// Translator converts failures raised by handlers into error envelopes.
//
// Translation is a chain of responsibility:
//
//  1. normalizers rewrite "missing" signals into fault.NotFound (first hit
//     wins);
//  2. resolvers are tried in order, the first non-nil Resolution wins;
//  3. the terminal handler answers everything else with a fixed 500.
//
// A Translator is immutable after New and safe for concurrent use.
type Translator struct {
	normalizers    []Normalizer
	resolvers      []apis.Resolver
	messages       denvelope.Messages
	onUnrecognized func(error)
}

// Option configures a Translator.
type Option func(*Translator)

// WithNormalizer appends a normalizer after the built-in one.
func WithNormalizer(n Normalizer) Option {
	return func(t *Translator) { t.normalizers = append(t.normalizers, n) }
}

// WithResolver appends a resolver after the built-in ones.
func WithResolver(r apis.Resolver) Option {
	return func(t *Translator) { t.resolvers = append(t.resolvers, r) }
}

// WithMessages replaces the fallback texts. Empty fields keep the defaults.
func WithMessages(m denvelope.Messages) Option {
	return func(t *Translator) { t.messages = m.OrDefault() }
}

// WithOnUnrecognized registers a hook called with every failure that falls
// through to the terminal handler, typically to log it server-side.
func WithOnUnrecognized(fn func(error)) Option {
	return func(t *Translator) { t.onUnrecognized = fn }
}

// New builds a Translator resolving statuses through m. A nil m uses the
// library table.
func New(m apis.Mapper, opts ...Option) *Translator {
	if m == nil {
		m = mapper.MustNew()
	}
	t := &Translator{
		normalizers: []Normalizer{NormalizeNotFound},
		resolvers: []apis.Resolver{
			FaultResolver(m),
			GRPCStatusResolver(),
		},
		messages:       denvelope.DefaultMessages(),
		onUnrecognized: func(error) {},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate turns err into an enveloped failure and its status. The bool is
// false only for a nil err, which callers should pass through untouched.
func (t *Translator) Translate(err error) (denvelope.Response, bool) {
	if err == nil {
		return denvelope.Response{}, false
	}

	for _, n := range t.normalizers {
		if canon := n(err); canon != nil {
			err = canon
			break
		}
	}

	for _, r := range t.resolvers {
		if res := r.Resolve(err); res != nil {
			return t.fromResolution(res), true
		}
	}
	return t.terminal(err), true
}

// terminal never returns the original text: the failure is reported only
// through the hook.
func (t *Translator) terminal(err error) denvelope.Response {
	t.onUnrecognized(err)
	return denvelope.Error(
		denvelope.WithMessage(t.messages.Internal),
		denvelope.WithStatus(http.StatusInternalServerError),
	)
}

func (t *Translator) fromResolution(res *apis.Resolution) denvelope.Response {
	opts := []denvelope.Option{denvelope.WithStatus(res.Status)}

	switch body := res.Body.(type) {
	case map[string][]string:
		opts = append(opts,
			denvelope.WithMessage(t.messages.Validation),
			denvelope.WithFieldErrors(body),
		)
	case map[string]any:
		if detail, ok := body["detail"]; ok {
			opts = append(opts, denvelope.WithMessage(Stringify(detail)))
		} else {
			opts = append(opts,
				denvelope.WithMessage(t.messages.Validation),
				denvelope.WithErrorMap(body),
			)
		}
	case []string:
		opts = append(opts,
			denvelope.WithMessage(t.messages.Validation),
			denvelope.WithErrorList(body),
		)
	case string:
		opts = append(opts, denvelope.WithMessage(body))
	case nil:
		opts = append(opts, denvelope.WithMessage(t.messages.Error))
	default:
		opts = append(opts, denvelope.WithMessage(Stringify(body)))
	}

	out := denvelope.Error(opts...)
	out.Header = res.Header
	return out
}

// Stringify renders a detail value as a message.
func Stringify(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case fmt.Stringer:
		return s.String()
	case []string:
		if len(s) == 1 {
			return s[0]
		}
	case []any:
		if len(s) == 1 {
			return Stringify(s[0])
		}
	}
	return fmt.Sprint(v)
}
