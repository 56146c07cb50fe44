// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"strings"
	"time"

	"github.com/gogama/httpcall/request"
)

// A Policy defines a timeout policy which may be plugged into a
// transport (transport.HTTP or transport.Resty) to direct how to set
// the timeout of each dispatch.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the dispatch of the request
	// described by d. A value of zero or less means no timeout.
	Timeout(d *request.Descriptor) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 10 seconds on each dispatch.
var DefaultPolicy Policy = Fixed(10 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value to set
// every dispatch timeout. The return value is a timeout policy that
// always returns the value d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

// ByMethod constructs a timeout policy that chooses the timeout based
// on the request method.
//
// Parameter overrides maps HTTP method names to timeouts. Method names
// are matched case-insensitively. Methods that have no entry in
// overrides get the fallback timeout. The overrides map is copied, so
// later changes to it do not affect the policy.
//
// Consider the following timeout policy:
//
// 	p := ByMethod(2*time.Second, map[string]time.Duration{
// 		"POST": 30 * time.Second,
// 	})
//
// The policy p gives uploads 30 seconds and every other request 2
// seconds.
func ByMethod(fallback time.Duration, overrides map[string]time.Duration) Policy {
	m := make(map[string]time.Duration, len(overrides))
	for k, v := range overrides {
		m[strings.ToUpper(k)] = v
	}
	return &byMethod{fallback: fallback, overrides: m}
}

type fixed time.Duration

func (p fixed) Timeout(_ *request.Descriptor) time.Duration {
	return time.Duration(p)
}

type byMethod struct {
	fallback  time.Duration
	overrides map[string]time.Duration
}

func (p *byMethod) Timeout(d *request.Descriptor) time.Duration {
	if d != nil {
		if t, ok := p.overrides[strings.ToUpper(d.Method)]; ok {
			return t
		}
	}

	return p.fallback
}
