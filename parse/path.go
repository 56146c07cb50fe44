// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/gogama/httpcall/request"
	"github.com/tidwall/gjson"
)

var errInvalidJSON = errors.New("httpcall/parse: invalid JSON")

// Path returns a parser that selects one element of a JSON response
// body with a gjson path expression and decodes it into a value of type
// T.
//
// Decoding honors json struct tags and is weakly typed, so that for
// example the JSON string "42" decodes into an int. Strings decode
// into time.Duration using time.ParseDuration and into time.Time using
// RFC 3339. If the path matches nothing, the parser fails.
//
// See https://github.com/tidwall/gjson/blob/master/SYNTAX.md for the
// path syntax.
func Path[T any](path string) Func[T] {
	return func(resp *request.Response) (T, error) {
		var v T
		if !gjson.ValidBytes(resp.Body) {
			return v, errInvalidJSON
		}
		res := gjson.GetBytes(resp.Body, path)
		if !res.Exists() {
			return v, fmt.Errorf("httpcall/parse: no value at path %q", path)
		}
		if err := decode(res.Value(), &v); err != nil {
			var zero T
			return zero, fmt.Errorf("httpcall/parse: cannot decode value at path %q: %w", path, err)
		}
		return v, nil
	}
}

func decode(input, result interface{}) error {
	d, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           result,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		),
	})
	if err != nil {
		return err
	}
	return d.Decode(input)
}
