// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package timeout defines policies for setting the timeout of a single
// HTTP dispatch. A generic interface for timeout policies is provided,
// Policy, along with several useful policy generating functions and
// built-in policies.
//
// A timeout bounds the whole dispatch: waiting on any rate limiter,
// connecting, sending the request, and reading the complete response
// body. When it expires the transport reports a timeout error, which
// the call orchestrator delivers as a transport failure.
package timeout
