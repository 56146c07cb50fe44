// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"encoding/json"
	"fmt"

	"github.com/gogama/httpcall/request"
	"gopkg.in/yaml.v3"
)

// A Func parses a raw response into a value of type T.
type Func[T any] func(resp *request.Response) (T, error)

// JSON returns a parser that unmarshals the response body as JSON into
// a new value of type T.
func JSON[T any]() Func[T] {
	return func(resp *request.Response) (T, error) {
		var v T
		if err := json.Unmarshal(resp.Body, &v); err != nil {
			var zero T
			return zero, fmt.Errorf("httpcall/parse: invalid JSON: %w", err)
		}
		return v, nil
	}
}

// YAML returns a parser that unmarshals the response body as YAML into
// a new value of type T. An empty body yields the zero value.
func YAML[T any]() Func[T] {
	return func(resp *request.Response) (T, error) {
		var v T
		if err := yaml.Unmarshal(resp.Body, &v); err != nil {
			var zero T
			return zero, fmt.Errorf("httpcall/parse: invalid YAML: %w", err)
		}
		return v, nil
	}
}

// Text returns a parser that yields the response body as a string.
func Text() Func[string] {
	return func(resp *request.Response) (string, error) {
		return string(resp.Body), nil
	}
}

// Bytes returns a parser that yields the response body unchanged.
func Bytes() Func[[]byte] {
	return func(resp *request.Response) ([]byte, error) {
		return resp.Body, nil
	}
}

// Discard returns a parser that ignores the response and always
// succeeds. It suits calls whose only interesting result is the fact of
// completion, typically combined with Status.
func Discard() Func[struct{}] {
	return func(_ *request.Response) (struct{}, error) {
		return struct{}{}, nil
	}
}
