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

type widget struct {
	ID   int      `json:"id" yaml:"id"`
	Name string   `json:"name" yaml:"name"`
	Tags []string `json:"tags" yaml:"tags"`
}

func resp(status int, body string) *request.Response {
	return &request.Response{StatusCode: status, Body: []byte(body)}
}

func TestJSON(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		w, err := JSON[widget]()(resp(200, `{"id":1,"name":"sprocket","tags":["a","b"]}`))
		require.NoError(t, err)
		assert.Equal(t, widget{ID: 1, Name: "sprocket", Tags: []string{"a", "b"}}, w)
	})
	t.Run("slice", func(t *testing.T) {
		ws, err := JSON[[]widget]()(resp(200, `[{"id":1},{"id":2}]`))
		require.NoError(t, err)
		assert.Len(t, ws, 2)
	})
	t.Run("invalid", func(t *testing.T) {
		w, err := JSON[widget]()(resp(200, `{"id":`))
		assert.Equal(t, widget{}, w)
		assert.ErrorContains(t, err, "httpcall/parse: invalid JSON")
	})
	t.Run("empty body", func(t *testing.T) {
		_, err := JSON[widget]()(resp(204, ``))
		assert.Error(t, err)
	})
	t.Run("type mismatch zeroes result", func(t *testing.T) {
		w, err := JSON[widget]()(resp(200, `{"name":"x","id":"not a number"}`))
		assert.Error(t, err)
		assert.Equal(t, widget{}, w)
	})
}

func TestYAML(t *testing.T) {
	t.Run("struct", func(t *testing.T) {
		w, err := YAML[widget]()(resp(200, "id: 7\nname: gear\ntags: [x]\n"))
		require.NoError(t, err)
		assert.Equal(t, widget{ID: 7, Name: "gear", Tags: []string{"x"}}, w)
	})
	t.Run("empty body", func(t *testing.T) {
		w, err := YAML[widget]()(resp(200, ""))
		require.NoError(t, err)
		assert.Equal(t, widget{}, w)
	})
	t.Run("invalid", func(t *testing.T) {
		_, err := YAML[widget]()(resp(200, "id: [unterminated"))
		assert.ErrorContains(t, err, "httpcall/parse: invalid YAML")
	})
}

func TestText(t *testing.T) {
	s, err := Text()(resp(500, "oops"))
	assert.NoError(t, err)
	assert.Equal(t, "oops", s)
}

func TestBytes(t *testing.T) {
	r := resp(200, "raw")
	b, err := Bytes()(r)
	assert.NoError(t, err)
	assert.Equal(t, r.Body, b)
}

func TestDiscard(t *testing.T) {
	v, err := Discard()(resp(200, "anything"))
	assert.NoError(t, err)
	assert.Equal(t, struct{}{}, v)
}
