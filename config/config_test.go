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

package config

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"

	"dirpx.dev/denvelope/code"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvPath, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 10, cfg.Pagination.PageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, "Operation successful", cfg.Messages.Success)

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "denvelope.yml")
	data := []byte(`
server:
  addr: ":9000"
log:
  level: debug
  format: console
pagination:
  page_size: 25
messages:
  internal: "Something broke"
rate_limit:
  enabled: true
  rate: "10-S"
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, "/metrics", cfg.Server.MetricsPath)
	assert.Equal(t, 25, cfg.Pagination.PageSize)
	assert.Equal(t, 100, cfg.Pagination.MaxPageSize)
	assert.Equal(t, "page", cfg.Pagination.PageQueryParam)
	assert.Equal(t, "Something broke", cfg.Messages.Internal)
	assert.Equal(t, "Validation failed", cfg.Messages.Validation)

	rate, err := cfg.RateLimit.Parse()
	require.NoError(t, err)
	assert.Equal(t, int64(10), rate.Limit)
	assert.Equal(t, time.Second, rate.Period)
}

func TestParse_Invalid(t *testing.T) {
	tests := map[string]string{
		"unknown key":  "serverx: {}",
		"empty addr":   "server: {addr: \"\"}",
		"bad level":    "log: {level: loud}",
		"bad format":   "log: {format: xml}",
		"bad page":     "pagination: {page_size: 500}",
		"bad rate":     "rate_limit: {enabled: true, rate: often}",
		"metrics path": "server: {metrics_path: metrics}",
		"not yaml":     "::: [",
		"bad proxy":    "server: {trusted_proxies: [\"proxy.local\"]}",
		"rule no http": "statuses: {rules: [{code: payment_required, grpc: ABORTED}]}",
		"bad grpc":     "statuses: {overrides: [{code: not_found, grpc: MISSING}]}",
		"bad code":     "statuses: {rules: [{code: \"Not Found!\", http: 404}]}",
		"bad fallback": "statuses: {fallback: {http: 999, grpc: INTERNAL}}",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestParse_TrustedProxies(t *testing.T) {
	cfg, err := Parse([]byte(`server: {trusted_proxies: ["10.0.0.1", "192.168.0.0/16"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.Server.TrustedProxies)
	assert.Empty(t, Default().Server.TrustedProxies)
}

func TestStatuses_Mapper(t *testing.T) {
	cfg, err := Parse([]byte(`
statuses:
  rules:
    - {code: payment_required, http: 402, grpc: failed_precondition}
  overrides:
    - {code: not_found, http: 410}
    - {code: conflict, grpc: ALREADY_EXISTS}
  fallback: {http: 503, grpc: UNAVAILABLE}
`))
	require.NoError(t, err)

	m, err := cfg.Statuses.Mapper()
	require.NoError(t, err)

	assert.True(t, m.Has(code.Code("payment_required")))
	assert.Equal(t, http.StatusPaymentRequired, m.HTTPStatus("payment_required"))
	assert.Equal(t, codes.FailedPrecondition, m.GRPCStatus("payment_required"))
	assert.Equal(t, http.StatusGone, m.HTTPStatus(code.NotFound))
	assert.Equal(t, codes.NotFound, m.GRPCStatus(code.NotFound))
	assert.Equal(t, codes.AlreadyExists, m.GRPCStatus(code.Conflict))
	assert.Equal(t, http.StatusConflict, m.HTTPStatus(code.Conflict))
	assert.False(t, m.Has("nosuchkey"))
	assert.Equal(t, http.StatusServiceUnavailable, m.HTTPStatus("nosuchkey"))
	assert.Equal(t, codes.Unavailable, m.GRPCStatus("nosuchkey"))
}

func TestStatuses_DefaultMapper(t *testing.T) {
	m, err := Default().Statuses.Mapper()
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, m.HTTPStatus(code.NotFound))
	assert.Equal(t, http.StatusInternalServerError, m.HTTPStatus("nosuchkey"))
}

func TestParse_EmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestMarshal_RoundTrip(t *testing.T) {
	b, err := Default().Marshal()
	require.NoError(t, err)
	cfg, err := Parse(b)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	log := LogConfig{Level: "warn", Format: "json"}.Logger(&buf)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
