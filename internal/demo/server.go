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

package demo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"dirpx.dev/denvelope/config"
	"dirpx.dev/denvelope/fault"
	"dirpx.dev/denvelope/ginx"
	"dirpx.dev/denvelope/httpx"
	"dirpx.dev/denvelope/metrics"
	"dirpx.dev/denvelope/paginate"
	"dirpx.dev/denvelope/render"
	"dirpx.dev/denvelope/translate"
)

const shutdownTimeout = 10 * time.Second

// Server is a small API showing every response shape the envelope
// covers.
type Server struct {
	cfg       config.Config
	log       zerolog.Logger
	metrics   *metrics.Metrics
	writer    httpx.Writer
	paginator *paginate.Paginator
	engine    *gin.Engine
}

// New wires the renderer, translator, metrics and routes described by
// cfg.
func New(cfg config.Config, log zerolog.Logger) (*Server, error) {
	p, err := paginate.New(cfg.Pagination)
	if err != nil {
		return nil, err
	}
	sm, err := cfg.Statuses.Mapper()
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	tr := translate.New(sm,
		translate.WithMessages(cfg.Messages),
		translate.WithOnUnrecognized(func(err error) {
			log.Error().Err(err).Msg("unrecognized failure suppressed")
		}),
	)
	rr := render.New(render.WithMessages(cfg.Messages), render.WithObserver(m.ObserveKind))

	s := &Server{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		writer:    httpx.NewWriter(rr, tr, log, m),
		paginator: p,
	}
	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) routes() error {
	w := s.writer
	r := gin.New()
	if err := r.SetTrustedProxies(s.cfg.Server.TrustedProxies); err != nil {
		return fmt.Errorf("demo: trusted proxies: %w", err)
	}
	r.HandleMethodNotAllowed = true
	r.Use(ginx.RequestID(), ginx.RequestLogger(s.log), ginx.Envelope(w))
	if s.cfg.RateLimit.Enabled {
		rate, err := s.cfg.RateLimit.Parse()
		if err != nil {
			return fmt.Errorf("demo: rate limit: %w", err)
		}
		r.Use(ginx.RateLimit(w, rate))
	}
	r.NoRoute(ginx.NoRoute(w))
	r.NoMethod(ginx.NoMethod(w))

	r.GET(s.cfg.Server.MetricsPath, gin.WrapH(s.metrics.Handler()))

	api := r.Group("/api")
	api.GET("/mock/", ginx.Wrap(w, mock))
	api.GET("/paginated/", ginx.Wrap(w, s.paginated))
	api.GET("/error/", ginx.Wrap(w, failure))
	api.GET("/preformatted/", ginx.Wrap(w, preformatted))

	s.engine = r
	return nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info().Msg("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("demo: shutdown: %w", err)
	}
	return nil
}

func mock(*gin.Context) (any, error) {
	return gin.H{"foo": "bar"}, nil
}

// items is the collection served by /api/paginated/.
var items = func() []int {
	out := make([]int, 100)
	for i := range out {
		out[i] = i
	}
	return out
}()

func (s *Server) paginated(c *gin.Context) (any, error) {
	page, err := paginate.Paginate(s.paginator, items, s.paginator.RequestURL(c.Request))
	if err != nil {
		return nil, err
	}
	return page.Response(), nil
}

func failure(c *gin.Context) (any, error) {
	switch c.DefaultQuery("type", "validation") {
	case "validation":
		return nil, fault.Validation(map[string][]string{
			"field1": {"This field is required"},
			"field2": {"This field must be unique"},
		})
	case "not_found":
		return nil, fault.NotFound("Resource not found")
	case "permission":
		return nil, fault.PermissionDenied("You do not have permission to perform this action")
	default:
		return nil, errors.New("unexpected error")
	}
}

func preformatted(*gin.Context) (any, error) {
	return gin.H{
		"success": true,
		"message": "Pre-formatted response",
		"data":    gin.H{"test": "value"},
	}, nil
}
