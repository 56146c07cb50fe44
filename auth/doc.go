// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package auth attaches credentials to request descriptors.
//
// An Authenticator receives a fully built descriptor and returns a
// credentialed copy, typically with an Authorization header set. The
// descriptor passed in is never modified.
//
// Authenticators may block, for example to fetch an OAuth2 token, so
// they never run on the goroutine that executes a call. Transport wraps
// a transport.Adapter so that the authenticator runs on a new goroutine
// immediately before the dispatch, and reports an authenticator failure
// through the completion function as an *Error.
package auth
