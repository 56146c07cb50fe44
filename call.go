// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogama/httpcall/auth"
	"github.com/gogama/httpcall/connectivity"
	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/transport"
	"github.com/google/uuid"
)

var emptyHandlers = HandlerGroup{}

var discardLogger = slog.New(slog.DiscardHandler)

var errNilResponse = errors.New("httpcall: transport completed without response or error")

// A Call is one logical, typed HTTP API call which can be executed
// asynchronously, any number of times in sequence.
//
// A Call is created by NewCall from a connectivity checker and an
// Endpoint. Listeners are installed with SetSuccessListener and
// SetFailureListener. Each execution resolves to exactly one terminal
// outcome, which is delivered to exactly one of the two listeners (or
// to nobody, if the relevant listener is not set):
//
// • ErrNoConnectivity if the checker reported the network unreachable;
//
// • a *RequestBuildError if the endpoint's method, URL, header or body
// were invalid;
//
// • a *TransportError if the transport reported an error;
//
// • a *ParseError, along with the raw response, if the endpoint's
// parser rejected the response; or
//
// • the parsed value, delivered to the success listener.
//
// The first two outcomes are delivered synchronously, on the goroutine
// that called Execute, before Execute returns. The others are delivered
// on the transport's goroutine. Listeners are responsible for their own
// synchronization and for moving work to other goroutines if they need
// to.
//
// The exported fields configure the call and must not be changed while
// it is executing. Their zero values are valid: a zero Transport means
// transport.Default, a nil Handlers means no event handlers, and a nil
// Logger discards the call's own diagnostics.
type Call[T any] struct {
	// Transport dispatches the request. If nil, transport.Default is
	// used.
	Transport transport.Adapter

	// Handlers holds lifecycle event handlers. It may be shared between
	// calls.
	Handlers *HandlerGroup

	// Logger receives diagnostics about misbehaving collaborators, such
	// as a transport completing twice, and rejected re-entrant
	// executions. Per-execution logging is done by installing the
	// handler returned by NewLogHandler.
	Logger *slog.Logger

	checker  connectivity.Checker
	endpoint Endpoint[T]

	lock     sync.Mutex
	success  SuccessListener[T]
	failure  FailureListener[T]
	inFlight *execution[T]
}

// NewCall creates a call which executes requests described by endpoint,
// gated on checker. Both are required.
func NewCall[T any](checker connectivity.Checker, endpoint Endpoint[T]) (*Call[T], error) {
	if checker == nil {
		return nil, errors.New("httpcall: nil connectivity checker")
	}
	if endpoint == nil {
		return nil, errors.New("httpcall: nil endpoint")
	}
	return &Call[T]{checker: checker, endpoint: endpoint}, nil
}

// Endpoint returns the endpoint the call was created with.
func (c *Call[T]) Endpoint() Endpoint[T] {
	return c.endpoint
}

// Checker returns the connectivity checker the call was created with.
func (c *Call[T]) Checker() connectivity.Checker {
	return c.checker
}

// SetSuccessListener installs l as the success listener, replacing any
// previous one. A nil l removes the listener.
//
// The listener in effect when Execute is called is the one notified for
// that execution, even if it is replaced before the execution ends.
func (c *Call[T]) SetSuccessListener(l SuccessListener[T]) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.success = l
}

// SetFailureListener installs l as the failure listener, replacing any
// previous one. A nil l removes the listener.
//
// The listener in effect when Execute is called is the one notified for
// that execution, even if it is replaced before the execution ends.
func (c *Call[T]) SetFailureListener(l FailureListener[T]) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.failure = l
}

// Execute starts one execution of the call.
//
// If a previous execution has not yet reached its terminal outcome,
// Execute returns ErrInFlight and nothing else happens. Otherwise it
// returns nil, and the outcome is delivered to a listener as described
// on Call. A listener may call Execute again; the in-flight state is
// cleared before any listener is notified.
//
// Execute does not block on network I/O. It does block on the
// connectivity checker, on the endpoint's URL, header and body
// functions, and on BeforeExecutionStart and BeforeDispatch handlers.
func (c *Call[T]) Execute() error {
	c.lock.Lock()
	if c.inFlight != nil {
		c.lock.Unlock()
		c.logger().Warn("httpcall: execute rejected, call already in flight")
		return ErrInFlight
	}
	x := &execution[T]{
		call:     c,
		success:  c.success,
		failure:  c.failure,
		handlers: c.handlers(),
		e:        &request.Execution{ID: uuid.NewString()},
	}
	c.inFlight = x
	c.lock.Unlock()

	// A panicking handler or listener on this goroutine must not leave
	// the call stuck in flight.
	defer func() {
		if r := recover(); r != nil {
			c.release(x)
			panic(r)
		}
	}()

	x.handlers.run(BeforeExecutionStart, x.e)
	x.e.Start = time.Now()

	if !c.checker.IsReachable() {
		x.resolveSync(ErrNoConnectivity)
		return nil
	}

	d, a, err := c.build()
	if err != nil {
		x.resolveSync(&RequestBuildError{Err: err})
		return nil
	}
	x.e.Descriptor = d

	x.handlers.run(BeforeDispatch, x.e)

	adapter := c.transport()
	if a != nil {
		adapter = auth.Transport(adapter, a)
	}
	x.dispatch(adapter)
	return nil
}

func (c *Call[T]) build() (d *request.Descriptor, a auth.Authenticator, err error) {
	defer func() {
		if r := recover(); r != nil {
			d, a, err = nil, nil, fmt.Errorf("httpcall: panic building request: %v", r)
		}
	}()

	var header http.Header
	if hs, ok := c.endpoint.(HeaderSource); ok {
		header = hs.RequestHeader()
	}
	var body *request.Body
	if bs, ok := c.endpoint.(BodySource); ok {
		body, err = bs.RequestBody()
		if err != nil {
			return nil, nil, err
		}
	}
	if as, ok := c.endpoint.(AuthSource); ok {
		a = as.Authenticator()
	}
	d, err = request.NewDescriptor(c.endpoint.HTTPMethod(), c.endpoint.RequestURL(), header, body)
	if err != nil {
		return nil, nil, err
	}
	return d, a, nil
}

func (c *Call[T]) parse(resp *request.Response) (v T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			v, err = zero, fmt.Errorf("httpcall: panic parsing response: %v", r)
		}
	}()

	return c.endpoint.ParseResponse(resp)
}

// release clears the in-flight state if it still belongs to x.
func (c *Call[T]) release(x *execution[T]) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.inFlight == x {
		c.inFlight = nil
	}
}

func (c *Call[T]) transport() transport.Adapter {
	if c.Transport == nil {
		return transport.Default
	}

	return c.Transport
}

func (c *Call[T]) handlers() *HandlerGroup {
	if c.Handlers == nil {
		return &emptyHandlers
	}

	return c.Handlers
}

func (c *Call[T]) logger() *slog.Logger {
	if c.Logger == nil {
		return discardLogger
	}

	return c.Logger
}

// An execution holds the state of one Execute, including the listeners
// snapshotted when it started.
type execution[T any] struct {
	call     *Call[T]
	success  SuccessListener[T]
	failure  FailureListener[T]
	handlers *HandlerGroup
	e        *request.Execution
	done     int32
}

func (x *execution[T]) claim() bool {
	return atomic.CompareAndSwapInt32(&x.done, 0, 1)
}

func (x *execution[T]) resolveSync(err error) {
	x.claim()
	x.fail(nil, err)
}

func (x *execution[T]) dispatch(a transport.Adapter) {
	defer func() {
		if r := recover(); r != nil {
			if !x.claim() {
				panic(r)
			}
			x.complete(nil, fmt.Errorf("httpcall: panic dispatching request: %v", r))
		}
	}()

	a.Dispatch(x.e.Descriptor, x.onComplete)
}

func (x *execution[T]) onComplete(resp *request.Response, err error) {
	if !x.claim() {
		x.call.logger().Error("httpcall: duplicate transport completion dropped",
			"id", x.e.ID, "method", x.e.Descriptor.Method, "url", x.e.Descriptor.URL.String())
		return
	}
	x.complete(resp, err)
}

func (x *execution[T]) complete(resp *request.Response, err error) {
	if err == nil && resp == nil {
		err = errNilResponse
	}
	x.e.Response = resp
	x.e.Err = err
	x.handlers.run(AfterDispatch, x.e)

	if err != nil {
		x.fail(resp, &TransportError{Err: err})
		return
	}

	v, err := x.call.parse(resp)
	if err != nil {
		x.fail(resp, &ParseError{Response: resp, Err: err})
		return
	}
	x.succeed(v)
}

func (x *execution[T]) end(err error) {
	x.e.Err = err
	x.e.End = time.Now()
	x.handlers.run(AfterExecutionEnd, x.e)
	x.call.release(x)
}

func (x *execution[T]) fail(resp *request.Response, err error) {
	x.end(err)
	if x.failure != nil {
		x.failure.OnFailure(x.call, resp, err)
	}
}

func (x *execution[T]) succeed(v T) {
	x.end(nil)
	if x.success != nil {
		x.success.OnSuccess(x.call, v)
	}
}
