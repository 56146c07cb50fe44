// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"errors"

	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/transient"
)

// ErrNoConnectivity is delivered to the failure listener when the
// connectivity checker reported the network unreachable. The transport
// is never contacted in this case.
var ErrNoConnectivity = errors.New("httpcall: no network connectivity")

// ErrInFlight is returned by Call.Execute when a previous execution of
// the same call has not yet reached its terminal outcome. No listener is
// notified for the rejected execution.
var ErrInFlight = errors.New("httpcall: call already in flight")

// A RequestBuildError is delivered to the failure listener when the
// request descriptor could not be built: the endpoint supplied an
// invalid method, URL, header or body, or panicked while supplying
// them. The transport is never contacted in this case.
type RequestBuildError struct {
	Err error
}

func (err *RequestBuildError) Error() string {
	return "httpcall: request build failed: " + err.Err.Error()
}

func (err *RequestBuildError) Unwrap() error {
	return err.Err
}

// A TransportError is delivered to the failure listener when the
// transport reported an error instead of a response, including when an
// authenticator failed.
type TransportError struct {
	Err error
}

func (err *TransportError) Error() string {
	return "httpcall: transport failed: " + err.Err.Error()
}

func (err *TransportError) Unwrap() error {
	return err.Err
}

// Category returns the transience category of the underlying transport
// error.
func (err *TransportError) Category() transient.Category {
	return transient.Categorize(err.Err)
}

// A ParseError is delivered to the failure listener when a response was
// received but the endpoint's parser rejected it or panicked.
type ParseError struct {
	// Response is the raw response that failed to parse. It is the same
	// response passed to the failure listener.
	Response *request.Response

	Err error
}

func (err *ParseError) Error() string {
	return "httpcall: response parse failed: " + err.Err.Error()
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

// A Kind classifies the outcome of a call execution.
type Kind int

const (
	// KindSuccess is the kind of a successful outcome (nil error).
	KindSuccess Kind = iota
	// KindNoConnectivity is the kind of ErrNoConnectivity.
	KindNoConnectivity
	// KindRequestBuild is the kind of a *RequestBuildError.
	KindRequestBuild
	// KindTransport is the kind of a *TransportError.
	KindTransport
	// KindParse is the kind of a *ParseError.
	KindParse
	// KindOther is the kind of any error not produced by a Call, such
	// as ErrInFlight or a context error returned by Do.
	KindOther
)

var kindNames = [...]string{
	KindSuccess:        "success",
	KindNoConnectivity: "no_connectivity",
	KindRequestBuild:   "request_build",
	KindTransport:      "transport",
	KindParse:          "parse",
	KindOther:          "other",
}

// String returns a short, lower-case name for the kind suitable for use
// as a log field or metric label.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "other"
	}
	return kindNames[k]
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return KindSuccess
	}
	if errors.Is(err, ErrNoConnectivity) {
		return KindNoConnectivity
	}
	var buildErr *RequestBuildError
	if errors.As(err, &buildErr) {
		return KindRequestBuild
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return KindTransport
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return KindParse
	}
	return KindOther
}
