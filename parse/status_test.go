// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package parse

import (
	"testing"

	"github.com/gogama/httpcall/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	var calls int
	inner := Func[string](func(r *request.Response) (string, error) {
		calls++
		return string(r.Body), nil
	})

	testCases := []struct {
		name   string
		codes  []int
		status int
		ok     bool
	}{
		{"default accepts 200", nil, 200, true},
		{"default accepts 299", nil, 299, true},
		{"default rejects 302", nil, 302, false},
		{"default rejects 404", nil, 404, false},
		{"listed code", []int{200, 404}, 404, true},
		{"unlisted 2xx", []int{201}, 200, false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			calls = 0
			v, err := Status(inner, testCase.codes...)(resp(testCase.status, "body"))
			if testCase.ok {
				require.NoError(t, err)
				assert.Equal(t, "body", v)
				assert.Equal(t, 1, calls)
			} else {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, testCase.status, statusErr.StatusCode)
				assert.Equal(t, []byte("body"), statusErr.Body)
				assert.Empty(t, v)
				assert.Equal(t, 0, calls)
			}
		})
	}
	t.Run("error message", func(t *testing.T) {
		err := &StatusError{StatusCode: 418}
		assert.EqualError(t, err, "httpcall/parse: unexpected status code 418")
	})
	t.Run("nil parser", func(t *testing.T) {
		assert.PanicsWithValue(t, "httpcall/parse: nil parser", func() {
			Status[string](nil)
		})
	})
}
