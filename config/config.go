// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes the environment variables that override
// configuration keys. The key transport.timeout, for example, is read
// from HTTPCALL_TRANSPORT_TIMEOUT.
const EnvPrefix = "HTTPCALL"

// Config is the complete configuration of an httpcall client.
type Config struct {
	Transport    TransportConfig    `mapstructure:"transport"`
	Connectivity ConnectivityConfig `mapstructure:"connectivity"`
	Auth         AuthConfig         `mapstructure:"auth"`
	Logging      LoggingConfig      `mapstructure:"logging"`
}

// TransportConfig selects and configures the transport adapter.
type TransportConfig struct {
	// Kind is one of http, http2 or resty.
	Kind string `mapstructure:"kind" validate:"oneof=http http2 resty"`

	// Timeout bounds each dispatch. Zero disables the timeout.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`

	// Insecure disables server certificate verification.
	Insecure bool `mapstructure:"insecure"`

	// MinTLSVersion is one of 1.0, 1.1, 1.2 or 1.3. Empty means 1.2.
	MinTLSVersion string `mapstructure:"min_tls_version" validate:"omitempty,oneof=1.0 1.1 1.2 1.3"`

	// AllowHTTP enables cleartext HTTP/2 for the http2 kind.
	AllowHTTP bool `mapstructure:"allow_http"`

	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" validate:"gte=0"`
	DialTimeout     time.Duration `mapstructure:"dial_timeout" validate:"gte=0"`

	// RateLimit is the sustained dispatch rate per second for the http
	// and http2 kinds. Zero means unlimited.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`

	// Burst is the limiter bucket size. Zero means 1.
	Burst int `mapstructure:"burst" validate:"gte=0"`
}

// ConnectivityConfig selects and configures the connectivity checker.
type ConnectivityConfig struct {
	// Mode is one of always, interfaces or probe.
	Mode string `mapstructure:"mode" validate:"oneof=always interfaces probe"`

	ProbeNetwork string        `mapstructure:"probe_network" validate:"oneof=tcp tcp4 tcp6"`
	ProbeAddress string        `mapstructure:"probe_address" validate:"required_if=Mode probe,omitempty,hostname_port"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" validate:"gte=0"`

	// CacheTTL caches the checker's answer. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"gte=0"`
}

// AuthConfig selects and configures the authenticator.
type AuthConfig struct {
	// Type is one of none, basic, bearer, header, oauth2 or jwt.
	Type string `mapstructure:"type" validate:"oneof=none basic bearer header oauth2 jwt"`

	Username string `mapstructure:"username" validate:"required_if=Type basic"`
	Password string `mapstructure:"password"`

	Token string `mapstructure:"token" validate:"required_if=Type bearer"`

	HeaderName  string `mapstructure:"header_name" validate:"required_if=Type header"`
	HeaderValue string `mapstructure:"header_value" validate:"required_if=Type header"`

	TokenURL     string   `mapstructure:"token_url" validate:"required_if=Type oauth2,omitempty,url"`
	ClientID     string   `mapstructure:"client_id" validate:"required_if=Type oauth2"`
	ClientSecret string   `mapstructure:"client_secret"`
	Scopes       []string `mapstructure:"scopes"`

	Secret   string        `mapstructure:"secret" validate:"required_if=Type jwt"`
	Subject  string        `mapstructure:"subject"`
	Issuer   string        `mapstructure:"issuer"`
	Audience []string      `mapstructure:"audience"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// LoggingConfig configures the slog logger built by Logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`

	// Format is text or json.
	Format string `mapstructure:"format" validate:"oneof=text json"`
}

var validate = validator.New()

// SetDefaults registers the default value of every configuration key
// with v. Keys without a default are not picked up from the
// environment by viper, so every key has one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("transport.kind", "http")
	v.SetDefault("transport.timeout", 10*time.Second)
	v.SetDefault("transport.insecure", false)
	v.SetDefault("transport.min_tls_version", "")
	v.SetDefault("transport.allow_http", false)
	v.SetDefault("transport.max_idle_conns", 0)
	v.SetDefault("transport.idle_conn_timeout", time.Duration(0))
	v.SetDefault("transport.dial_timeout", time.Duration(0))
	v.SetDefault("transport.rate_limit", 0.0)
	v.SetDefault("transport.burst", 0)

	v.SetDefault("connectivity.mode", "always")
	v.SetDefault("connectivity.probe_network", "tcp")
	v.SetDefault("connectivity.probe_address", "")
	v.SetDefault("connectivity.probe_timeout", 2*time.Second)
	v.SetDefault("connectivity.cache_ttl", time.Duration(0))

	v.SetDefault("auth.type", "none")
	for _, key := range []string{
		"username", "password", "token", "header_name", "header_value",
		"token_url", "client_id", "client_secret", "secret", "subject", "issuer",
	} {
		v.SetDefault("auth."+key, "")
	}
	v.SetDefault("auth.scopes", []string{})
	v.SetDefault("auth.audience", []string{})
	v.SetDefault("auth.ttl", time.Duration(0))

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// New returns a viper instance with defaults set and environment
// overrides enabled.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration. The YAML file at path is optional: if
// path is empty only defaults and environment variables are used.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("httpcall/config: reading %s: %w", path, err)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("httpcall/config: decoding: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field of c.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("httpcall/config: invalid configuration: %s", strings.Join(msgs, "; "))
	} else if err != nil {
		return fmt.Errorf("httpcall/config: %w", err)
	}
	return nil
}
