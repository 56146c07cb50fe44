// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"

	"github.com/gogama/httpcall/request"
)

// A StatusError reports a response whose status code was not accepted
// by a Status parser.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (err *StatusError) Error() string {
	return fmt.Sprintf("httpcall/parse: unexpected status code %d", err.StatusCode)
}

// Status returns a parser that first checks the response status code
// and then delegates to p.
//
// If codes is empty, any 2xx status is accepted. Otherwise only the
// listed codes are. A rejected response fails with a *StatusError and p
// is not called.
func Status[T any](p Func[T], codes ...int) Func[T] {
	if p == nil {
		panic("httpcall/parse: nil parser")
	}
	accept := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		accept[c] = struct{}{}
	}
	return func(resp *request.Response) (T, error) {
		ok := resp.OK()
		if len(accept) > 0 {
			_, ok = accept[resp.StatusCode]
		}
		if !ok {
			var zero T
			return zero, &StatusError{StatusCode: resp.StatusCode, Body: resp.Body}
		}
		return p(resp)
	}
}
