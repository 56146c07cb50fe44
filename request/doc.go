// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the value types that flow through a call
execution: Descriptor (one fully-specified HTTP request), Body (an
optional request payload with its content type), Response (the raw,
fully-buffered HTTP response handed to parsers and failure listeners),
and Execution (the state of one call execution, visible to lifecycle
event handlers).

A Descriptor is built once per execution and is never modified after
construction. Code that needs a variant, for example to attach an
Authorization header, derives a copy:

	d, err := request.NewDescriptor("POST", "https://example.com/widgets", nil, body)
	...
	d2 := d.WithHeader("Authorization", "Bearer "+token)

If the method requires a body (POST, PUT, PATCH) and none is supplied,
NewDescriptor substitutes an empty, zero-length body so that transports
which reject missing bodies for such methods still accept the request.

Response is an opaque pass-through from the transport. Its Body field
always contains the whole response body, and the underlying
http.Response body has already been closed.
*/
package request
