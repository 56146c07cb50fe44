// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gogama/httpcall/request"
)

// A CompletionFunc receives the result of one dispatch. Exactly one of
// resp and err is non-nil.
type CompletionFunc func(resp *request.Response, err error)

// An Adapter dispatches request descriptors asynchronously.
//
// Dispatch must not block on network I/O. It must arrange for
// onComplete to be called exactly once, from any goroutine, when the
// response has been received in full or the dispatch has failed.
// Implementations must be safe for concurrent use by multiple
// goroutines.
type Adapter interface {
	Dispatch(d *request.Descriptor, onComplete CompletionFunc)
}

// The AdapterFunc type is an adapter to allow the use of ordinary
// functions as transport adapters. If f is a function with the
// appropriate signature, AdapterFunc(f) is an Adapter that calls f.
type AdapterFunc func(d *request.Descriptor, onComplete CompletionFunc)

// Dispatch calls f(d, onComplete).
func (f AdapterFunc) Dispatch(d *request.Descriptor, onComplete CompletionFunc) {
	f(d, onComplete)
}

// A Doer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type Doer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// Doer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

// An IdleCloser implements a CloseIdleConnections method in the same
// manner as the GoLang standard library http.Client from the net/http
// package.
type IdleCloser interface {
	// CloseIdleConnections closes any idle keep-alive connections
	// previously opened but now sitting idle.
	CloseIdleConnections()
}

// Default is the adapter used when a call does not specify one. It is
// a zero-value HTTP, which uses http.DefaultClient and
// timeout.DefaultPolicy.
var Default Adapter = &HTTP{}

var errNilResponse = errors.New("httpcall/transport: nil response without error")

// DefaultContentType is the Content-Type sent with a non-empty body
// whose descriptor names no media type, either in ContentType or in a
// Content-Type header field.
const DefaultContentType = "application/octet-stream"

// withDefaultContentType returns d, or a shallow copy of d carrying
// DefaultContentType if d has a non-empty body of unknown media type.
func withDefaultContentType(d *request.Descriptor) *request.Descriptor {
	if d.ContentType != "" || len(d.Body) == 0 || d.Header.Get("Content-Type") != "" {
		return d
	}
	d2 := *d
	d2.ContentType = DefaultContentType
	return &d2
}

func urlErrorWrap(d *request.Descriptor, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(d.Method),
		URL: d.URL.String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
