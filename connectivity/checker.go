// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package connectivity

// A Checker reports whether the network is currently reachable.
//
// Implementations must be safe for concurrent use by multiple
// goroutines, and IsReachable should return quickly since it runs on
// the goroutine executing the call.
type Checker interface {
	IsReachable() bool
}

// The CheckerFunc type is an adapter to allow the use of ordinary
// functions as connectivity checkers. If f is a function with the
// appropriate signature, CheckerFunc(f) is a Checker that calls f.
type CheckerFunc func() bool

// IsReachable calls f().
func (f CheckerFunc) IsReachable() bool {
	return f()
}

// Always is a Checker that always reports the network as reachable.
var Always Checker = CheckerFunc(func() bool { return true })

// Never is a Checker that never reports the network as reachable.
var Never Checker = CheckerFunc(func() bool { return false })
