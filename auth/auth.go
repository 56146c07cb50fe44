// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package auth

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/gogama/httpcall/request"
)

// An Authenticator attaches credentials to a request descriptor.
//
// Authenticate must not modify d. It returns a credentialed copy, or d
// itself if no credentials apply. Implementations must be safe for
// concurrent use by multiple goroutines.
type Authenticator interface {
	Authenticate(ctx context.Context, d *request.Descriptor) (*request.Descriptor, error)
}

// The Func type is an adapter to allow the use of ordinary functions as
// authenticators.
type Func func(ctx context.Context, d *request.Descriptor) (*request.Descriptor, error)

// Authenticate calls f(ctx, d).
func (f Func) Authenticate(ctx context.Context, d *request.Descriptor) (*request.Descriptor, error) {
	return f(ctx, d)
}

// An Error reports that an authenticator failed to produce credentials.
type Error struct {
	// Scheme names the kind of authenticator that failed, for example
	// "oauth2". It is empty for custom authenticators.
	Scheme string

	// Err is the underlying cause.
	Err error
}

func (err *Error) Error() string {
	if err.Scheme == "" {
		return "httpcall/auth: " + err.Err.Error()
	}
	return fmt.Sprintf("httpcall/auth: %s: %s", err.Scheme, err.Err.Error())
}

func (err *Error) Unwrap() error {
	return err.Err
}

var errEmptyCredential = errors.New("empty credential")

// Header returns an Authenticator that sets the header field name to a
// fixed value, as used by API key schemes.
func Header(name, value string) Authenticator {
	return Func(func(_ context.Context, d *request.Descriptor) (*request.Descriptor, error) {
		if value == "" {
			return nil, &Error{Scheme: "header", Err: errEmptyCredential}
		}
		return d.WithHeader(name, value), nil
	})
}

// Basic returns an Authenticator that uses HTTP Basic authentication
// with the given username and password.
func Basic(username, password string) Authenticator {
	v := "Basic " + base64.StdEncoding.EncodeToString([]byte(username+":"+password))
	return Func(func(_ context.Context, d *request.Descriptor) (*request.Descriptor, error) {
		return d.WithHeader("Authorization", v), nil
	})
}

// Bearer returns an Authenticator that sends a fixed bearer token.
func Bearer(token string) Authenticator {
	return Func(func(_ context.Context, d *request.Descriptor) (*request.Descriptor, error) {
		if token == "" {
			return nil, &Error{Scheme: "bearer", Err: errEmptyCredential}
		}
		return d.WithHeader("Authorization", "Bearer "+token), nil
	})
}
