// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"net/url"

	"github.com/gogama/httpcall/connectivity"
	"github.com/gogama/httpcall/parse"
	"github.com/gogama/httpcall/request"
)

// An Executor starts asynchronous executions. Every *Call[T] is an
// Executor, which allows heterogeneous calls to be scheduled together.
type Executor interface {
	// Execute starts one execution and returns without waiting for its
	// outcome. It returns ErrInFlight if a previous execution has not
	// finished.
	Execute() error
}

// Get creates a call that issues a GET to the specified URL and parses
// the response with p.
//
// To make a call with custom headers or authentication, build an
// EndpointFuncs and use NewCall.
func Get[T any](checker connectivity.Checker, url string, p parse.Func[T]) (*Call[T], error) {
	return newSimpleCall(checker, "GET", url, nil, p)
}

// Delete creates a call that issues a DELETE to the specified URL and
// parses the response with p.
func Delete[T any](checker connectivity.Checker, url string, p parse.Func[T]) (*Call[T], error) {
	return newSimpleCall(checker, "DELETE", url, nil, p)
}

// Post creates a call that issues a POST of body to the specified URL
// and parses the response with p.
//
// The body may be nil, in which case an empty body is sent.
func Post[T any](checker connectivity.Checker, url string, body *request.Body, p parse.Func[T]) (*Call[T], error) {
	return newSimpleCall(checker, "POST", url, body, p)
}

// Put creates a call that issues a PUT of body to the specified URL and
// parses the response with p.
//
// The body may be nil, in which case an empty body is sent.
func Put[T any](checker connectivity.Checker, url string, body *request.Body, p parse.Func[T]) (*Call[T], error) {
	return newSimpleCall(checker, "PUT", url, body, p)
}

// PostForm creates a call that issues a POST to the specified URL, with
// data's keys and values URL-encoded as the request body.
//
// The content type is set to application/x-www-form-urlencoded.
func PostForm[T any](checker connectivity.Checker, url string, data url.Values, p parse.Func[T]) (*Call[T], error) {
	body := &request.Body{
		Data:        []byte(data.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	}
	return newSimpleCall(checker, "POST", url, body, p)
}

func newSimpleCall[T any](checker connectivity.Checker, method, url string, body *request.Body, p parse.Func[T]) (*Call[T], error) {
	if p == nil {
		panic("httpcall: nil parser")
	}
	ep := &EndpointFuncs[T]{
		Method: method,
		URL:    StaticURL(url),
		Parse:  p,
	}
	if body != nil {
		ep.Body = func() (*request.Body, error) {
			return body, nil
		}
	}
	return NewCall[T](checker, ep)
}
