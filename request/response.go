// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import "net/http"

// A Response is the raw result of one successful HTTP exchange, as
// reported by a transport.
//
// "Successful" means only that an HTTP response was received and its
// body was read completely; the status code may be anything. The call
// orchestrator does not interpret a Response. It passes it to the
// endpoint's parser and, on failure, to the failure listener.
type Response struct {
	// StatusCode is the HTTP status code, e.g. 200.
	StatusCode int

	// Header contains the response header fields.
	Header http.Header

	// Body is the complete response body. It is never nil, but may be
	// empty.
	Body []byte

	// HTTP is the underlying response, if the transport has one. Its
	// Body has already been read to the end and closed.
	HTTP *http.Response
}

// NewResponse builds a Response from an http.Response whose body has
// been read into body. The http.Response must already be closed.
func NewResponse(r *http.Response, body []byte) *Response {
	if body == nil {
		body = []byte{}
	}
	return &Response{
		StatusCode: r.StatusCode,
		Header:     r.Header,
		Body:       body,
		HTTP:       r,
	}
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
