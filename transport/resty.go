// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"fmt"
	"sync"

	"github.com/go-resty/resty/v2"
	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/timeout"
)

// Resty is an Adapter that sends requests using a resty client. Its
// zero value is a valid configuration.
//
// The zero value uses a shared client created by NewRestyClient with a
// zero ClientConfig, and timeout.DefaultPolicy as the timeout policy.
//
// A Client used with Resty must not have retries configured, since an
// Adapter makes exactly one attempt per dispatch. NewRestyClient builds
// a suitable client. Descriptor.Host overrides are not applied, since
// resty always sends the URL host. A zero-length Descriptor.Body is sent
// as an empty body with Content-Length 0 for POST, PUT and PATCH, as
// net/http does for a nil body. A non-empty body with no known media
// type is sent as DefaultContentType rather than a type sniffed by
// resty, so Resty and HTTP send the same Content-Type.
type Resty struct {
	// Client is the resty client used to send requests. If nil, a
	// shared default client is used.
	Client *resty.Client

	// TimeoutPolicy specifies how to set the timeout of each dispatch.
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
}

var (
	defaultRestyOnce   sync.Once
	defaultRestyClient *resty.Client
)

// Dispatch sends the request described by d on a new goroutine and
// reports the result to onComplete.
func (t *Resty) Dispatch(d *request.Descriptor, onComplete CompletionFunc) {
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

// CloseIdleConnections closes idle connections held by the resty
// client's underlying http.Client.
func (t *Resty) CloseIdleConnections() {
	t.client().GetClient().CloseIdleConnections()
}

func (t *Resty) roundTrip(d *request.Descriptor) (resp *request.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			resp = nil
			err = urlErrorWrap(d, fmt.Errorf("httpcall/transport: panic during dispatch: %v", r))
		}
	}()

	d = withDefaultContentType(d)
	p := t.TimeoutPolicy
	if p == nil {
		p = timeout.DefaultPolicy
	}
	ctx, cancel := withTimeout(p, d)
	defer cancel()

	req := t.client().R().
		SetContext(ctx).
		SetHeaderMultiValues(d.Header)
	if d.ContentType != "" {
		req.SetHeader("Content-Type", d.ContentType)
	}
	if len(d.Body) > 0 {
		req.SetBody(d.Body)
	}

	r, err := req.Execute(d.Method, d.URL.String())
	if err != nil {
		return nil, urlErrorWrap(d, err)
	}
	if r == nil || r.RawResponse == nil {
		return nil, urlErrorWrap(d, errNilResponse)
	}

	return request.NewResponse(r.RawResponse, r.Body()), nil
}

func (t *Resty) client() *resty.Client {
	if t.Client != nil {
		return t.Client
	}

	defaultRestyOnce.Do(func() {
		defaultRestyClient = NewRestyClient(ClientConfig{})
	})
	return defaultRestyClient
}
