// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import "github.com/gogama/httpcall/request"

// A SuccessListener is notified when an execution of a call produced a
// parsed value.
type SuccessListener[T any] interface {
	OnSuccess(c *Call[T], value T)
}

// A FailureListener is notified when an execution of a call failed.
//
// The response is the raw response when one was received, which is the
// case for parse failures, and nil otherwise. The error is
// ErrNoConnectivity, a *RequestBuildError, a *TransportError, or a
// *ParseError.
type FailureListener[T any] interface {
	OnFailure(c *Call[T], resp *request.Response, err error)
}

// The SuccessFunc type is an adapter to allow the use of ordinary
// functions as success listeners.
type SuccessFunc[T any] func(c *Call[T], value T)

// OnSuccess calls f(c, value).
func (f SuccessFunc[T]) OnSuccess(c *Call[T], value T) {
	f(c, value)
}

// The FailureFunc type is an adapter to allow the use of ordinary
// functions as failure listeners.
type FailureFunc[T any] func(c *Call[T], resp *request.Response, err error)

// OnFailure calls f(c, resp, err).
func (f FailureFunc[T]) OnFailure(c *Call[T], resp *request.Response, err error) {
	f(c, resp, err)
}
