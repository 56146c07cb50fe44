// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpcall provides typed, asynchronous HTTP API calls with a
connectivity gate and exactly-once outcome delivery.

A Call[T] couples an Endpoint[T], which knows how to describe a request
and parse its response into a T, with a connectivity.Checker. Executing
the call checks connectivity, builds an immutable request.Descriptor,
and hands it to a transport.Adapter, which reports back on its own
goroutine. The result is then delivered to exactly one of the call's
two listeners:

	c, err := httpcall.Get(connectivity.Interfaces(), "https://api.example.com/widgets/1",
		parse.Status(parse.JSON[Widget]()))
	if err != nil {
		return err
	}
	c.SetSuccessListener(httpcall.SuccessFunc[Widget](func(_ *httpcall.Call[Widget], w Widget) {
		fmt.Println("got", w.Name)
	}))
	c.SetFailureListener(httpcall.FailureFunc[Widget](func(_ *httpcall.Call[Widget], _ *request.Response, err error) {
		fmt.Println("failed:", httpcall.KindOf(err), err)
	}))
	err = c.Execute()

The failure listener receives one of four errors. ErrNoConnectivity and
*RequestBuildError are delivered synchronously, before Execute returns,
and the transport is never contacted. *TransportError and *ParseError
are delivered on the transport's goroutine. A *ParseError carries the
raw response. Use KindOf to classify any of them.

For callers that prefer blocking, Do executes a call and waits for its
Outcome.

Calls are not retried, cached, or cancellable. Those concerns belong to
the transport: see packages transport and timeout.

Lifecycle events

A Call fires four events, in this order, to the handlers installed in
its HandlerGroup: BeforeExecutionStart, BeforeDispatch, AfterDispatch,
and AfterExecutionEnd. Handlers extend calls without changing them.
This package provides NewLogHandler for structured logging and
RequestIDHandler for request tagging; package metrics provides
Prometheus instrumentation.

Authentication

An endpoint that implements AuthSource, or an EndpointFuncs with Auth
set, has its authenticator run on the transport side immediately before
each dispatch. See package auth.
*/
package httpcall
