// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/gogama/httpcall/request"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cause := errors.New("foo")
	t.Run("with scheme", func(t *testing.T) {
		err := &Error{Scheme: "oauth2", Err: cause}
		assert.EqualError(t, err, "httpcall/auth: oauth2: foo")
		assert.ErrorIs(t, err, cause)
	})
	t.Run("without scheme", func(t *testing.T) {
		err := &Error{Err: cause}
		assert.EqualError(t, err, "httpcall/auth: foo")
		assert.Same(t, cause, errors.Unwrap(err))
	})
}

func TestBasic(t *testing.T) {
	d := newDescriptor(t)
	d2, err := Basic("Aladdin", "open sesame").Authenticate(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Basic QWxhZGRpbjpvcGVuIHNlc2FtZQ==", d2.Header.Get("Authorization"))
	assert.Empty(t, d.Header.Get("Authorization"))
}

func TestBearer(t *testing.T) {
	d := newDescriptor(t)
	t.Run("token", func(t *testing.T) {
		d2, err := Bearer("abc123").Authenticate(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc123", d2.Header.Get("Authorization"))
		assert.Empty(t, d.Header.Get("Authorization"))
	})
	t.Run("empty token", func(t *testing.T) {
		d2, err := Bearer("").Authenticate(context.Background(), d)
		assert.Nil(t, d2)
		var authErr *Error
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, "bearer", authErr.Scheme)
	})
}

func TestHeader(t *testing.T) {
	d := newDescriptor(t)
	t.Run("value", func(t *testing.T) {
		d2, err := Header("X-Api-Key", "k").Authenticate(context.Background(), d)
		require.NoError(t, err)
		assert.Equal(t, "k", d2.Header.Get("X-Api-Key"))
		assert.Empty(t, d.Header.Get("X-Api-Key"))
	})
	t.Run("empty value", func(t *testing.T) {
		_, err := Header("X-Api-Key", "").Authenticate(context.Background(), d)
		assert.EqualError(t, err, "httpcall/auth: header: empty credential")
	})
}

func TestFunc(t *testing.T) {
	d := newDescriptor(t)
	ctx := context.Background()
	f := Func(func(ctx2 context.Context, d2 *request.Descriptor) (*request.Descriptor, error) {
		assert.Equal(t, ctx, ctx2)
		assert.Same(t, d, d2)
		return d2, nil
	})
	d3, err := f.Authenticate(ctx, d)
	assert.NoError(t, err)
	assert.Same(t, d, d3)
}

func newDescriptor(t *testing.T) *request.Descriptor {
	d, err := request.NewDescriptor("GET", "https://api.example.com/widgets", nil, nil)
	require.NoError(t, err)
	return d
}

type mockAuthenticator struct {
	mock.Mock
}

func newMockAuthenticator(t *testing.T) *mockAuthenticator {
	m := &mockAuthenticator{}
	m.Test(t)
	return m
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, d *request.Descriptor) (*request.Descriptor, error) {
	args := m.Called(ctx, d)
	err := args.Error(1)
	if d2, ok := args.Get(0).(*request.Descriptor); ok {
		return d2, err
	}
	return nil, err
}
