// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"errors"
	"net/http"

	"github.com/gogama/httpcall/auth"
	"github.com/gogama/httpcall/parse"
	"github.com/gogama/httpcall/request"
)

// An Endpoint describes one logical API call producing values of type
// T.
//
// RequestURL and HTTPMethod are consulted once per execution, on the
// goroutine that invoked Execute. ParseResponse is called on the
// transport's goroutine with every response received, whatever its
// status code, and must not retain the response after returning.
//
// An Endpoint may additionally implement HeaderSource, BodySource, and
// AuthSource. Their absence means no extra headers, no body, and no
// authentication respectively.
type Endpoint[T any] interface {
	RequestURL() string
	HTTPMethod() string
	ParseResponse(resp *request.Response) (T, error)
}

// A HeaderSource supplies request headers. A nil header means no extra
// headers.
type HeaderSource interface {
	RequestHeader() http.Header
}

// A BodySource supplies the request body. A nil body means no body.
// Returning an error fails the execution with a *RequestBuildError.
type BodySource interface {
	RequestBody() (*request.Body, error)
}

// An AuthSource supplies an authenticator, which runs on the transport
// side immediately before each dispatch. A nil authenticator means none.
type AuthSource interface {
	Authenticator() auth.Authenticator
}

var errNoParser = errors.New("httpcall: no parser")

// EndpointFuncs is an Endpoint assembled from plain values and
// functions. Every field except Method and Parse is optional.
type EndpointFuncs[T any] struct {
	// Method is the HTTP method.
	Method string

	// URL returns the absolute request URL.
	URL func() string

	// Header returns the request headers.
	Header func() http.Header

	// Body returns the request body.
	Body func() (*request.Body, error)

	// Parse parses the response. If nil, every response fails to parse.
	Parse parse.Func[T]

	// Auth attaches credentials before each dispatch.
	Auth auth.Authenticator
}

// RequestURL returns f.URL(), or the empty string if f.URL is nil.
func (f *EndpointFuncs[T]) RequestURL() string {
	if f.URL == nil {
		return ""
	}
	return f.URL()
}

// HTTPMethod returns f.Method.
func (f *EndpointFuncs[T]) HTTPMethod() string {
	return f.Method
}

// RequestHeader returns f.Header(), or nil if f.Header is nil.
func (f *EndpointFuncs[T]) RequestHeader() http.Header {
	if f.Header == nil {
		return nil
	}
	return f.Header()
}

// RequestBody returns f.Body(), or nil if f.Body is nil.
func (f *EndpointFuncs[T]) RequestBody() (*request.Body, error) {
	if f.Body == nil {
		return nil, nil
	}
	return f.Body()
}

// ParseResponse returns f.Parse(resp).
func (f *EndpointFuncs[T]) ParseResponse(resp *request.Response) (T, error) {
	if f.Parse == nil {
		var zero T
		return zero, errNoParser
	}
	return f.Parse(resp)
}

// Authenticator returns f.Auth.
func (f *EndpointFuncs[T]) Authenticator() auth.Authenticator {
	return f.Auth
}

// StaticURL returns a URL function for EndpointFuncs that always
// returns url.
func StaticURL(url string) func() string {
	return func() string {
		return url
	}
}
