// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package transport sends request descriptors over the network and reports
the raw response asynchronously.

An Adapter is the boundary between the call orchestrator and the HTTP
machinery. The contract every Adapter must follow is small:

• Dispatch returns without blocking on network I/O;

• the completion function is invoked exactly once, on any goroutine,
with either a response or an error, never both;

• a response is reported for any status code, because interpreting the
status is the parser's job; and

• exactly one attempt is made: no retries, no caching.

Two adapters are provided. HTTP drives any net/http-style Doer, which
is usually an *http.Client built by NewHTTPClient or NewHTTP2Client.
Resty drives a *resty.Client built by NewRestyClient. Both bound each
dispatch with a timeout.Policy, and HTTP can additionally pace
dispatches with a token-bucket rate limiter.

Errors reported by both adapters are wrapped in *url.Error, in the same
way the standard http.Client reports errors, so that package transient
can categorize them.
*/
package transport
