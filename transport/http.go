// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/timeout"
	"golang.org/x/time/rate"
)

// HTTP is an Adapter that sends requests using a net/http-style Doer.
// Its zero value is a valid configuration.
//
// The zero value uses http.DefaultClient as the Doer, timeout.DefaultPolicy
// as the timeout policy, and no rate limiter.
//
// Each dispatch runs on its own goroutine. The dispatch converts the
// descriptor to an *http.Request whose context carries the timeout from
// TimeoutPolicy, waits on Limiter if one is set, sends the request, and
// reads the entire response body into memory before closing it. A panic
// inside the Doer is recovered and reported as an error. A non-empty
// body with no known media type is sent as DefaultContentType.
//
// The Doer is responsible for redirects, cookies and connection reuse.
// HTTP never retries.
type HTTP struct {
	// Doer specifies the mechanism by which individual HTTP requests
	// are made. If Doer is nil, http.DefaultClient is used.
	Doer Doer

	// TimeoutPolicy specifies how to set the timeout of each dispatch.
	// The timeout covers waiting on Limiter, sending the request, and
	// reading the response body. If TimeoutPolicy is nil,
	// timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy

	// Limiter optionally paces dispatches. When set, each dispatch
	// waits for a token before sending. A wait that would outlast the
	// dispatch timeout fails the dispatch.
	Limiter *rate.Limiter
}

// Dispatch sends the request described by d on a new goroutine and
// reports the result to onComplete.
func (t *HTTP) Dispatch(d *request.Descriptor, onComplete CompletionFunc) {
	if d == nil {
		panic("httpcall/transport: nil descriptor")
	}
	if onComplete == nil {
		panic("httpcall/transport: nil completion func")
	}
	go func() {
		onComplete(t.roundTrip(d))
	}()
}

// CloseIdleConnections invokes the same method on the underlying Doer.
//
// If the Doer has no CloseIdleConnections method, this method does
// nothing.
func (t *HTTP) CloseIdleConnections() {
	if ic, ok := t.doer().(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (t *HTTP) roundTrip(d *request.Descriptor) (resp *request.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = urlErrorWrap(d, fmt.Errorf("httpcall/transport: panic during dispatch: %v", r))
		}
	}()

	d = withDefaultContentType(d)
	ctx, cancel := withTimeout(t.timeoutPolicy(), d)
	defer cancel()

	if t.Limiter != nil {
		if err = t.Limiter.Wait(ctx); err != nil {
			return nil, urlErrorWrap(d, err)
		}
	}

	r, err := t.doer().Do(d.ToRequest(ctx))
	if err != nil {
		return nil, urlErrorWrap(d, err)
	}
	if r == nil {
		return nil, urlErrorWrap(d, errNilResponse)
	}

	body, err := readBody(r)
	if err != nil {
		return nil, urlErrorWrap(d, err)
	}

	return request.NewResponse(r, body), nil
}

func readBody(r *http.Response) ([]byte, error) {
	if r.Body == nil {
		return []byte{}, nil
	}
	defer func() {
		_ = r.Body.Close()
	}()
	return io.ReadAll(r.Body)
}

func (t *HTTP) doer() Doer {
	if t.Doer == nil {
		return http.DefaultClient
	}

	return t.Doer
}

func (t *HTTP) timeoutPolicy() timeout.Policy {
	if t.TimeoutPolicy == nil {
		return timeout.DefaultPolicy
	}

	return t.TimeoutPolicy
}

func withTimeout(p timeout.Policy, d *request.Descriptor) (context.Context, context.CancelFunc) {
	ctx := context.Background()
	if t := p.Timeout(d); t > 0 {
		return context.WithTimeout(ctx, t)
	}
	return context.WithCancel(ctx)
}
