// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"context"

	"github.com/gogama/httpcall/request"
)

// An Outcome is the terminal result of one call execution: either a
// value (Err is nil) or a failure (Err is non-nil, and Response holds the
// raw response when one was received).
type Outcome[T any] struct {
	Value    T
	Response *request.Response
	Err      error
}

// OK reports whether the outcome is a success.
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Kind classifies the outcome.
func (o Outcome[T]) Kind() Kind {
	return KindOf(o.Err)
}

// Do executes c and waits for its outcome.
//
// Do replaces the call's success and failure listeners with its own for
// the duration of the execution, so it must not be mixed with listeners
// installed by the caller. If c is already in flight, the outcome holds
// ErrInFlight. If ctx is done before the outcome is known, the outcome
// holds the context error; the execution itself is not cancelled and
// runs to completion unobserved.
func Do[T any](ctx context.Context, c *Call[T]) Outcome[T] {
	ch := make(chan Outcome[T], 1)
	c.SetSuccessListener(SuccessFunc[T](func(_ *Call[T], v T) {
		ch <- Outcome[T]{Value: v}
	}))
	c.SetFailureListener(FailureFunc[T](func(_ *Call[T], resp *request.Response, err error) {
		ch <- Outcome[T]{Response: resp, Err: err}
	}))

	if err := c.Execute(); err != nil {
		return Outcome[T]{Err: err}
	}

	select {
	case o := <-ch:
		return o
	case <-ctx.Done():
		return Outcome[T]{Err: ctx.Err()}
	}
}
