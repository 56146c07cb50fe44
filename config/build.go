// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gogama/httpcall/auth"
	"github.com/gogama/httpcall/connectivity"
	"github.com/gogama/httpcall/timeout"
	"github.com/gogama/httpcall/transport"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

var tlsVersions = map[string]uint16{
	"1.0": tls.VersionTLS10,
	"1.1": tls.VersionTLS11,
	"1.2": tls.VersionTLS12,
	"1.3": tls.VersionTLS13,
}

func (c TransportConfig) clientConfig() transport.ClientConfig {
	return transport.ClientConfig{
		MaxIdleConns:    c.MaxIdleConns,
		IdleConnTimeout: c.IdleConnTimeout,
		DialTimeout:     c.DialTimeout,
		TLSInsecure:     c.Insecure,
		MinTLSVersion:   tlsVersions[c.MinTLSVersion],
		AllowHTTP:       c.AllowHTTP,
	}
}

func (c TransportConfig) timeoutPolicy() timeout.Policy {
	if c.Timeout <= 0 {
		return timeout.Infinite
	}
	return timeout.Fixed(c.Timeout)
}

func (c TransportConfig) limiter() *rate.Limiter {
	if c.RateLimit <= 0 {
		return nil
	}
	burst := c.Burst
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(c.RateLimit), burst)
}

// BuildTransport creates the transport adapter described by c.
func BuildTransport(c TransportConfig) (transport.Adapter, error) {
	var client *http.Client
	switch c.Kind {
	case "", "http":
		client = transport.NewHTTPClient(c.clientConfig())
	case "http2":
		client = transport.NewHTTP2Client(c.clientConfig())
	case "resty":
		return &transport.Resty{
			Client:        transport.NewRestyClient(c.clientConfig()),
			TimeoutPolicy: c.timeoutPolicy(),
		}, nil
	default:
		return nil, fmt.Errorf("httpcall/config: unknown transport kind %q", c.Kind)
	}

	return &transport.HTTP{
		Doer:          client,
		TimeoutPolicy: c.timeoutPolicy(),
		Limiter:       c.limiter(),
	}, nil
}

// BuildChecker creates the connectivity checker described by c.
func BuildChecker(c ConnectivityConfig) (connectivity.Checker, error) {
	var checker connectivity.Checker
	switch c.Mode {
	case "", "always":
		return connectivity.Always, nil
	case "interfaces":
		checker = connectivity.Interfaces()
	case "probe":
		if c.ProbeAddress == "" {
			return nil, fmt.Errorf("httpcall/config: probe connectivity requires a probe address")
		}
		network := c.ProbeNetwork
		if network == "" {
			network = "tcp"
		}
		checker = connectivity.NewDialProbe(network, c.ProbeAddress, c.ProbeTimeout)
	default:
		return nil, fmt.Errorf("httpcall/config: unknown connectivity mode %q", c.Mode)
	}

	return connectivity.NewCached(checker, c.CacheTTL), nil
}

// BuildAuthenticator creates the authenticator described by c. It
// returns nil for type none. The context is used by token sources which
// fetch tokens over the network.
func BuildAuthenticator(ctx context.Context, c AuthConfig) (auth.Authenticator, error) {
	switch c.Type {
	case "", "none":
		return nil, nil
	case "basic":
		return auth.Basic(c.Username, c.Password), nil
	case "bearer":
		return auth.Bearer(c.Token), nil
	case "header":
		return auth.Header(c.HeaderName, c.HeaderValue), nil
	case "oauth2":
		return auth.NewOAuth2(auth.ClientCredentials(ctx, &clientcredentials.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			TokenURL:     c.TokenURL,
			Scopes:       c.Scopes,
		})), nil
	case "jwt":
		return auth.JWT(auth.JWTConfig{
			Secret:   []byte(c.Secret),
			Subject:  c.Subject,
			Issuer:   c.Issuer,
			Audience: c.Audience,
			TTL:      c.TTL,
		}), nil
	default:
		return nil, fmt.Errorf("httpcall/config: unknown auth type %q", c.Type)
	}
}

// Logger creates a slog logger writing to w in the configured format
// at the configured level.
func (c LoggingConfig) Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.level()}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func (c LoggingConfig) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
