// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package parse provides ready-made response parsers.

A Func converts a raw response into a typed value. Parsers are pure:
they read only the response and return either a value or an error,
which the call orchestrator delivers as a parse failure. None of the
parsers in this package look at the status code except Status, which
wraps another parser and rejects unexpected status codes first:

	p := parse.Status(parse.JSON[Widget](), 200, 201)
*/
package parse
