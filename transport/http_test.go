// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/timeout"
	"github.com/gogama/httpcall/transient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestHTTP_Dispatch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		d := newDescriptor(t, "POST", "https://foo.com/widgets", &request.Body{Data: []byte("hello"), ContentType: "text/plain"})
		doer := newMockDoer(t)
		policy := newMockTimeoutPolicy(t)
		policy.On("Timeout", d).Return(time.Minute).Once()
		httpResp := &http.Response{
			StatusCode: 201,
			Header:     http.Header{"Location": {"/widgets/1"}},
			Body:       io.NopCloser(strings.NewReader(`{"id":1}`)),
		}
		doer.On("Do", mock.MatchedBy(func(r *http.Request) bool {
			deadline, ok := r.Context().Deadline()
			rc, _ := r.GetBody()
			b, _ := io.ReadAll(rc)
			return ok && time.Until(deadline) > 50*time.Second &&
				r.Method == "POST" &&
				r.URL.String() == "https://foo.com/widgets" &&
				r.Header.Get("Content-Type") == "text/plain" &&
				string(b) == "hello"
		})).Return(httpResp, nil).Once()
		a := &HTTP{Doer: doer, TimeoutPolicy: policy}

		resp, err := dispatchAndWait(t, a, d)

		doer.AssertExpectations(t)
		policy.AssertExpectations(t)
		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 201, resp.StatusCode)
		assert.Equal(t, "/widgets/1", resp.Header.Get("Location"))
		assert.Equal(t, []byte(`{"id":1}`), resp.Body)
		assert.Same(t, httpResp, resp.HTTP)
	})
	t.Run("non-2xx is not an error", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com/widgets", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Return(&http.Response{
			StatusCode: 503,
			Body:       io.NopCloser(strings.NewReader("busy")),
		}, nil).Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer}, d)

		doer.AssertExpectations(t)
		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, []byte("busy"), resp.Body)
	})
	t.Run("nil body", func(t *testing.T) {
		d := newDescriptor(t, "HEAD", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Return(&http.Response{StatusCode: 200}, nil).Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer}, d)

		assert.NoError(t, err)
		require.NotNil(t, resp)
		assert.NotNil(t, resp.Body)
		assert.Len(t, resp.Body, 0)
	})
	t.Run("doer error", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Return(nil, syscall.ECONNREFUSED).Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer}, d)

		doer.AssertExpectations(t)
		assert.Nil(t, resp)
		var urlErr *url.Error
		require.ErrorAs(t, err, &urlErr)
		assert.Equal(t, "Get", urlErr.Op)
		assert.Equal(t, transient.ConnRefused, transient.Categorize(err))
	})
	t.Run("nil response without error", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Return(nil, nil).Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer}, d)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, errNilResponse)
	})
	t.Run("body read error closes body", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		rc := newMockReadCloser(t)
		readErr := errors.New("connection went away")
		rc.On("Read", mock.Anything).Return(0, readErr).Once()
		rc.On("Close").Return(nil).Once()
		doer.On("Do", mock.Anything).Return(&http.Response{StatusCode: 200, Body: rc}, nil).Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer}, d)

		doer.AssertExpectations(t)
		rc.AssertExpectations(t)
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, readErr)
	})
	t.Run("panic in doer", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Panic("oh no").Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer}, d)

		assert.Nil(t, resp)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "panic during dispatch: oh no")
	})
	t.Run("timeout", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Run(func(args mock.Arguments) {
			<-args.Get(0).(*http.Request).Context().Done()
		}).Return(nil, context.DeadlineExceeded).Once()

		resp, err := dispatchAndWait(t, &HTTP{Doer: doer, TimeoutPolicy: timeout.Fixed(10 * time.Millisecond)}, d)

		assert.Nil(t, resp)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, transient.Timeout, transient.Categorize(err))
	})
	t.Run("non-positive timeout means none", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.MatchedBy(func(r *http.Request) bool {
			_, ok := r.Context().Deadline()
			return !ok
		})).Return(&http.Response{StatusCode: 200}, nil).Once()

		_, err := dispatchAndWait(t, &HTTP{Doer: doer, TimeoutPolicy: timeout.Fixed(0)}, d)

		doer.AssertExpectations(t)
		assert.NoError(t, err)
	})
	t.Run("limiter", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		doer.On("Do", mock.Anything).Return(&http.Response{StatusCode: 200}, nil).Once()
		limiter := rate.NewLimiter(rate.Every(time.Hour), 1)
		a := &HTTP{Doer: doer, Limiter: limiter, TimeoutPolicy: timeout.Fixed(50 * time.Millisecond)}

		_, err := dispatchAndWait(t, a, d)
		require.NoError(t, err)
		resp, err := dispatchAndWait(t, a, d)

		doer.AssertExpectations(t)
		assert.Nil(t, resp)
		var urlErr *url.Error
		assert.ErrorAs(t, err, &urlErr)
	})
	t.Run("dispatch does not block", func(t *testing.T) {
		d := newDescriptor(t, "GET", "https://foo.com", nil)
		doer := newMockDoer(t)
		release := make(chan struct{})
		doer.On("Do", mock.Anything).Run(func(_ mock.Arguments) {
			<-release
		}).Return(&http.Response{StatusCode: 200}, nil).Once()
		done := make(chan error, 1)
		start := time.Now()

		(&HTTP{Doer: doer}).Dispatch(d, func(_ *request.Response, err error) {
			done <- err
		})

		assert.Less(t, time.Since(start), time.Second)
		close(release)
		assert.NoError(t, <-done)
	})
	t.Run("nil arguments panic", func(t *testing.T) {
		a := &HTTP{}
		assert.PanicsWithValue(t, "httpcall/transport: nil descriptor", func() {
			a.Dispatch(nil, func(*request.Response, error) {})
		})
		assert.PanicsWithValue(t, "httpcall/transport: nil completion func", func() {
			a.Dispatch(newDescriptor(t, "GET", "http://foo.com", nil), nil)
		})
	})
}

func TestHTTP_CloseIdleConnections(t *testing.T) {
	t.Run("doer without method", func(t *testing.T) {
		doer := newMockDoer(t)
		a := &HTTP{Doer: doer}
		a.CloseIdleConnections()
		doer.AssertExpectations(t)
	})
	t.Run("doer with method", func(t *testing.T) {
		doer := newMockDoerWithCloseIdleConnections(t)
		doer.On("CloseIdleConnections").Once()
		a := &HTTP{Doer: doer}
		a.CloseIdleConnections()
		doer.AssertExpectations(t)
	})
	t.Run("zero value", func(t *testing.T) {
		assert.NotPanics(t, func() { (&HTTP{}).CloseIdleConnections() })
	})
}
