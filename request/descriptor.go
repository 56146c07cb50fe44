// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	urlpkg "net/url"
	"strings"

	"golang.org/x/net/http/httpguts"
)

const (
	emptyMethodMsg = "httpcall/request: empty method"
	nilCtxMsg      = "httpcall/request: nil context"
)

// A Descriptor is the fully-specified, immutable description of one
// HTTP request, ready for dispatch by a transport.
//
// A Descriptor is built once per call execution by NewDescriptor. The
// field structure mirrors the client-side fields of http.Request, but
// the body is a pre-buffered []byte and its content type is carried
// alongside it. Callers must treat every field, including the contents
// of Header and Body, as read-only. Use WithHeader to derive a modified
// copy.
type Descriptor struct {
	// Method specifies the HTTP method (GET, POST, PUT, etc.). It is
	// never empty.
	Method string

	// URL specifies the absolute http or https URL to access.
	URL *urlpkg.URL

	// Header contains the request header fields to be sent. It is never
	// nil but may be empty.
	Header http.Header

	// Body is the request body. A nil Body means no body is sent. A
	// non-nil, zero-length Body means an empty body is sent, which is
	// what NewDescriptor substitutes when the method requires a body
	// and none was supplied.
	Body []byte

	// ContentType is the media type of Body. It is empty when there is
	// no body, and also for a substituted empty body.
	ContentType string

	// Host is the host to send in the Host header. It defaults to
	// URL.Host.
	Host string
}

// NewDescriptor validates its inputs and returns a new Descriptor.
//
// The method must be a non-empty HTTP token. The URL must be absolute
// with an http or https scheme and a non-empty host. Header may be nil;
// otherwise it is deep-copied, and every field name and value must be
// valid per RFC 7230. Field names are stored in canonical form, so
// spellings differing only in case are merged. Body may be nil.
//
// If the method does not permit a body (GET and HEAD) a non-nil body is
// rejected. If the method requires a body (see RequiresBody) and body
// is nil, an empty zero-length body with no content type is used.
func NewDescriptor(method, url string, header http.Header, body *Body) (*Descriptor, error) {
	if method == "" {
		return nil, errors.New(emptyMethodMsg)
	}
	if !validMethod(method) {
		return nil, fmt.Errorf("httpcall/request: invalid method %q", method)
	}
	u, err := parseURL(url)
	if err != nil {
		return nil, err
	}
	h, err := copyHeader(header)
	if err != nil {
		return nil, err
	}
	d := &Descriptor{
		Method: method,
		URL:    u,
		Header: h,
		Host:   u.Host,
	}
	if body != nil {
		if !PermitsBody(method) {
			return nil, fmt.Errorf("httpcall/request: method %s must not have a request body", method)
		}
		d.Body = body.Data
		if d.Body == nil {
			d.Body = []byte{}
		}
		d.ContentType = body.ContentType
	} else if RequiresBody(method) {
		d.Body = []byte{}
	}
	return d, nil
}

// RequiresBody reports whether method semantically requires a request
// body. This is true for POST, PUT, and PATCH, and for the WebDAV
// methods PROPPATCH and REPORT.
func RequiresBody(method string) bool {
	switch method {
	case "POST", "PUT", "PATCH", "PROPPATCH", "REPORT":
		return true
	default:
		return false
	}
}

// PermitsBody reports whether a request body may be sent with method.
// It is false for GET and HEAD and true for every other method.
func PermitsBody(method string) bool {
	return method != "GET" && method != "HEAD"
}

// WithHeader returns a copy of d with the header field key set to
// value, replacing any existing values. The receiver is not modified.
func (d *Descriptor) WithHeader(key, value string) *Descriptor {
	d2 := new(Descriptor)
	*d2 = *d
	d2.Header = d.Header.Clone()
	if d2.Header == nil {
		d2.Header = make(http.Header)
	}
	d2.Header.Set(key, value)
	return d2
}

// ToRequest creates an HTTP request corresponding to the descriptor.
// The context of the new request is set to ctx, which may not be nil.
//
// If ContentType is non-empty it is set as the Content-Type header,
// overriding any Content-Type in Header. The descriptor's own Header is
// never modified.
func (d *Descriptor) ToRequest(ctx context.Context) *http.Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r := (&http.Request{
		Method:     d.Method,
		URL:        d.URL,
		Proto:      "HTTP/1.1",
		ProtoMajor: 1,
		ProtoMinor: 1,
		Header:     d.Header,
		Host:       d.Host,
	}).WithContext(ctx)
	if d.ContentType != "" {
		r.Header = d.Header.Clone()
		if r.Header == nil {
			r.Header = make(http.Header)
		}
		r.Header.Set("Content-Type", d.ContentType)
	}
	if d.Body != nil {
		body := d.Body
		r.ContentLength = int64(len(body))
		if len(body) > 0 {
			r.Body = io.NopCloser(bytes.NewReader(body))
			r.GetBody = func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(body)), nil
			}
		} else {
			r.Body = http.NoBody
			r.GetBody = func() (io.ReadCloser, error) {
				return http.NoBody, nil
			}
		}
	}
	return r
}

func parseURL(url string) (*urlpkg.URL, error) {
	u, err := urlpkg.Parse(url)
	if err != nil {
		return nil, err
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, fmt.Errorf("httpcall/request: unsupported URL scheme %q in %q", u.Scheme, url)
	}
	u.Host = removeEmptyPort(u.Host)
	if u.Host == "" {
		return nil, fmt.Errorf("httpcall/request: missing host in URL %q", url)
	}
	return u, nil
}

func copyHeader(h http.Header) (http.Header, error) {
	c := make(http.Header, len(h))
	for k, vs := range h {
		if !httpguts.ValidHeaderFieldName(k) {
			return nil, fmt.Errorf("httpcall/request: invalid header field name %q", k)
		}
		for _, v := range vs {
			if !httpguts.ValidHeaderFieldValue(v) {
				return nil, fmt.Errorf("httpcall/request: invalid value for header field %q", k)
			}
		}
		ck := textproto.CanonicalMIMEHeaderKey(k)
		c[ck] = append(c[ck], vs...)
	}
	return c, nil
}

func validMethod(method string) bool {
	return strings.IndexFunc(method, isNotToken) == -1
}

func isNotToken(r rune) bool {
	return !httpguts.IsTokenRune(r)
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
