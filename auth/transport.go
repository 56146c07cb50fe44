// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/transport"
)

// DefaultTimeout bounds each run of an authenticator wrapped by
// Transport.
const DefaultTimeout = 30 * time.Second

// Transport returns an Adapter that authenticates each descriptor with
// a before dispatching it to next.
//
// Dispatch returns immediately. The authenticator runs on a new
// goroutine, bounded by DefaultTimeout, and then the credentialed
// descriptor is dispatched to next from that goroutine. If the
// authenticator fails, next is not called and onComplete receives an
// *Error. A panic inside the authenticator, or inside next.Dispatch
// before it completes, is recovered and reported the same way. A panic
// raised after completion, including one from onComplete itself, is
// re-raised.
func Transport(next transport.Adapter, a Authenticator) transport.Adapter {
	if next == nil {
		panic("httpcall/auth: nil adapter")
	}
	if a == nil {
		return next
	}
	return &authTransport{next: next, auth: a}
}

type authTransport struct {
	next transport.Adapter
	auth Authenticator
}

func (t *authTransport) Dispatch(d *request.Descriptor, onComplete transport.CompletionFunc) {
	go t.dispatch(d, onComplete)
}

func (t *authTransport) dispatch(d *request.Descriptor, onComplete transport.CompletionFunc) {
	var completed int32
	once := func(resp *request.Response, err error) {
		if atomic.CompareAndSwapInt32(&completed, 0, 1) {
			onComplete(resp, err)
		}
	}
	defer func() {
		if r := recover(); r != nil {
			if !atomic.CompareAndSwapInt32(&completed, 0, 1) {
				panic(r)
			}
			onComplete(nil, &Error{Err: fmt.Errorf("panic: %v", r)})
		}
	}()

	d2, err := t.authenticate(d)
	if err != nil {
		once(nil, err)
		return
	}
	t.next.Dispatch(d2, once)
}

func (t *authTransport) authenticate(d *request.Descriptor) (*request.Descriptor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
	defer cancel()
	d2, err := t.auth.Authenticate(ctx, d)
	if err != nil {
		var authErr *Error
		if errors.As(err, &authErr) {
			return nil, err
		}
		return nil, &Error{Err: err}
	}
	if d2 == nil {
		return nil, &Error{Err: errors.New("nil descriptor")}
	}
	return d2, nil
}
