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
	"errors"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/ulule/limiter/v3"
	"gopkg.in/yaml.v3"

	"dirpx.dev/denvelope"
	"dirpx.dev/denvelope/paginate"
)

// EnvPath names the environment variable consulted when Load is given an
// empty path.
const EnvPath = "DENVELOPE_CONFIG"

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("config: invalid")

// Config is the YAML configuration of the denvelope server.
type Config struct {
	Server     ServerConfig       `yaml:"server"`
	Log        LogConfig          `yaml:"log"`
	Pagination paginate.Config    `yaml:"pagination"`
	Messages   denvelope.Messages `yaml:"messages"`
	RateLimit  RateLimitConfig    `yaml:"rate_limit"`
	Statuses   StatusesConfig     `yaml:"statuses,omitempty"`
}

// ServerConfig holds listen addresses.
//
// TrustedProxies lists the addresses or CIDRs whose X-Forwarded-For is
// believed when resolving the client IP. Empty trusts none, so the rate
// limit keys on the peer address.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	GRPCAddr       string   `yaml:"grpc_addr,omitempty"`
	MetricsPath    string   `yaml:"metrics_path"`
	TrustedProxies []string `yaml:"trusted_proxies,omitempty"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json or console
}

// RateLimitConfig configures the request rate limit. Rate uses the
// "<limit>-<period>" notation, e.g. "100-M" for 100 requests per minute.
type RateLimitConfig struct {
	Enabled bool   `yaml:"enabled"`
	Rate    string `yaml:"rate"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:        ":8080",
			MetricsPath: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Pagination: paginate.DefaultConfig(),
		Messages:   denvelope.DefaultMessages(),
		RateLimit: RateLimitConfig{
			Rate: "100-M",
		},
	}
}

// Load reads the configuration at path, falling back to $DENVELOPE_CONFIG
// when path is empty. Without either, or when the file does not exist,
// the defaults are returned.
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	cfg.Messages = cfg.Messages.OrDefault()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every section is usable.
func (c Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr is required", ErrInvalid)
	}
	if !strings.HasPrefix(c.Server.MetricsPath, "/") {
		return fmt.Errorf("%w: server.metrics_path must start with /", ErrInvalid)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalid, err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q is not json or console", ErrInvalid, c.Log.Format)
	}
	if _, err := paginate.New(c.Pagination); err != nil {
		return fmt.Errorf("%w: pagination: %v", ErrInvalid, err)
	}
	for _, p := range c.Server.TrustedProxies {
		if !validProxy(p) {
			return fmt.Errorf("%w: server.trusted_proxies: %q is not an IP or CIDR", ErrInvalid, p)
		}
	}
	if _, err := c.Statuses.Mapper(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.RateLimit.Enabled {
		if _, err := c.RateLimit.Parse(); err != nil {
			return fmt.Errorf("%w: rate_limit.rate: %v", ErrInvalid, err)
		}
	}
	return nil
}

func validProxy(s string) bool {
	if strings.Contains(s, "/") {
		_, err := netip.ParsePrefix(s)
		return err == nil
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

// Parse converts Rate into a limiter rate.
func (r RateLimitConfig) Parse() (limiter.Rate, error) {
	return limiter.NewRateFromFormatted(r.Rate)
}

// Logger builds the zerolog logger described by c, writing to w.
func (c LogConfig) Logger(w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if c.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
