// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/gogama/httpcall/transient"
)

// An Execution represents the state of a single call execution.
//
// When a call is executed an Execution is created for it. It is updated
// as the execution progresses, first on the goroutine that invoked the
// call and then on the transport's goroutine, and is passed to the
// lifecycle event handlers installed on the call.
//
// Event handlers may store data on an Execution using SetValue and read
// it back using Value. They should treat the exported fields as
// read-only, with one exception: a BeforeDispatch handler may replace
// Descriptor with a modified copy (see Descriptor.WithHeader).
type Execution struct {
	// ID uniquely identifies the execution. It is a random UUID
	// assigned before the first event fires.
	ID string

	// Descriptor is the request being dispatched. It is nil until the
	// descriptor has been built, and remains nil if the execution ended
	// before the build (no connectivity) or because the build failed.
	Descriptor *Descriptor

	// Start is the time the execution started. It is assigned after the
	// BeforeExecutionStart event and remains constant thereafter.
	Start time.Time

	// End is the time the execution ended. It contains the zero value
	// until the terminal outcome is known.
	End time.Time

	// Response is the raw response reported by the transport. It is nil
	// before the transport completes and if it reported an error.
	Response *Response

	// Err is the error that ended the execution. It is nil while the
	// execution is in flight and after a successful execution.
	Err error

	data context.Context
}

// StatusCode returns the response status code, or 0 while there is no
// response.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}
	return e.Response.StatusCode
}

// Header returns the response header fields. It returns nil while there
// is no response, which is safe to call Get on.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		return nil
	}
	return e.Response.Header
}

// Duration returns how long the execution has run: zero before Start is
// set, End minus Start once the execution has ended, and the time
// elapsed since Start in between.
func (e *Execution) Duration() time.Duration {
	switch {
	case !e.Started():
		return 0
	case !e.Ended():
		return time.Since(e.Start)
	default:
		return e.End.Sub(e.Start)
	}
}

// Started reports whether Start has been set.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended reports whether End has been set. An ended execution is never
// modified again.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Timeout reports whether Err is, or wraps, a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// SetValue attaches value to the execution under key, for retrieval by
// a later handler of the same execution. Keys follow the rules of
// context.WithValue and should be of an unexported type owned by the
// handler's package.
func (e *Execution) SetValue(key, value any) {
	parent := e.data
	if parent == nil {
		parent = context.Background()
	}
	e.data = context.WithValue(parent, key, value)
}

// Value returns the value attached under key by SetValue, or nil.
func (e *Execution) Value(key any) any {
	if e.data == nil {
		return nil
	}
	return e.data.Value(key)
}
