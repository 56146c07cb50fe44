// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/net/http2"
)

// ClientConfig holds the connection settings shared by the client
// factories in this package. Its zero value is a valid configuration.
type ClientConfig struct {
	// MaxIdleConns bounds the idle keep-alive connections kept per
	// host. Zero means the net/http default.
	MaxIdleConns int

	// IdleConnTimeout is how long an idle connection is kept. Zero
	// means 90 seconds.
	IdleConnTimeout time.Duration

	// DialTimeout bounds establishing a TCP connection. Zero means 30
	// seconds.
	DialTimeout time.Duration

	// TLSInsecure disables verification of server certificates. Use it
	// only against test servers.
	TLSInsecure bool

	// MinTLSVersion is the minimum TLS version accepted, for example
	// tls.VersionTLS13. Zero means TLS 1.2.
	MinTLSVersion uint16

	// AllowHTTP makes the HTTP/2 client speak cleartext HTTP/2 (h2c)
	// instead of HTTP/2 over TLS. It has no effect on the HTTP/1.1
	// clients.
	AllowHTTP bool
}

func (cfg ClientConfig) tlsConfig() *tls.Config {
	minVersion := cfg.MinTLSVersion
	if minVersion == 0 {
		minVersion = tls.VersionTLS12
	}
	return &tls.Config{
		MinVersion:         minVersion,
		InsecureSkipVerify: cfg.TLSInsecure,
	}
}

func (cfg ClientConfig) dialer() *net.Dialer {
	t := cfg.DialTimeout
	if t <= 0 {
		t = 30 * time.Second
	}
	return &net.Dialer{
		Timeout:   t,
		KeepAlive: 30 * time.Second,
	}
}

func (cfg ClientConfig) idleConnTimeout() time.Duration {
	if cfg.IdleConnTimeout <= 0 {
		return 90 * time.Second
	}
	return cfg.IdleConnTimeout
}

// NewHTTPClient creates an *http.Client that speaks HTTP/1.1, and
// HTTP/2 when the server negotiates it over TLS.
func NewHTTPClient(cfg ClientConfig) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         cfg.dialer().DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConns,
		IdleConnTimeout:     cfg.idleConnTimeout(),
		TLSClientConfig:     cfg.tlsConfig(),
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{Transport: transport}
}

// NewHTTP2Client creates an *http.Client that speaks only HTTP/2.
//
// By default the client requires TLS. If cfg.AllowHTTP is set, the
// client instead dials plain TCP and speaks cleartext HTTP/2 (h2c) to
// every server, including for https URLs.
func NewHTTP2Client(cfg ClientConfig) *http.Client {
	transport := &http2.Transport{
		TLSClientConfig: cfg.tlsConfig(),
		IdleConnTimeout: cfg.idleConnTimeout(),
	}
	if cfg.AllowHTTP {
		d := cfg.dialer()
		transport.AllowHTTP = true
		transport.DialTLSContext = func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			return d.DialContext(ctx, network, addr)
		}
	}

	return &http.Client{Transport: transport}
}

// NewRestyClient creates a resty client, with retries disabled, on top
// of an *http.Client created by NewHTTPClient.
func NewRestyClient(cfg ClientConfig) *resty.Client {
	return resty.NewWithClient(NewHTTPClient(cfg)).
		SetRetryCount(0)
}
