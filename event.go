// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Call to extend it with custom
// functionality such as logging, metrics, or request tagging.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// call execution starts.
	//
	// When Call fires BeforeExecutionStart, the execution is non-nil
	// but the only field that has been set is the ID. The handler runs
	// on the goroutine that invoked Execute.
	BeforeExecutionStart Event = iota
	// BeforeDispatch identifies the event that occurs after the
	// connectivity check passed and the request descriptor was built,
	// but before it is handed to the transport.
	//
	// When Call fires BeforeDispatch, the execution's descriptor field
	// is set to the descriptor that WILL BE dispatched after all
	// BeforeDispatch handlers have finished. Handlers may replace the
	// descriptor with a modified copy (see Descriptor.WithHeader), but
	// must never modify the descriptor in place.
	//
	// BeforeDispatch never fires if the execution failed the
	// connectivity check or the request build. The handler runs on the
	// goroutine that invoked Execute.
	BeforeDispatch
	// AfterDispatch identifies the event that occurs when the transport
	// has completed, before the response is parsed.
	//
	// When Call fires AfterDispatch, at least one of the execution's
	// response and error fields is non-nil. The error, if any, is the
	// raw transport error. The handler runs on the transport's
	// goroutine.
	AfterDispatch
	// AfterExecutionEnd identifies the event that occurs after the
	// terminal outcome of the execution is known, immediately before
	// the success or failure listener is notified.
	//
	// When Call fires AfterExecutionEnd, the end time is set and the
	// execution's error field holds the error that will be delivered to
	// the failure listener, or nil on success. It fires for every
	// execution, including those that never reached the transport.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeDispatch",
	"AfterDispatch",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// call execution, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeDispatch,
		AfterDispatch,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
