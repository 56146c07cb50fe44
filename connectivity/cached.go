// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package connectivity

import (
	"sync"
	"time"
)

// NewCached returns a Checker that remembers the answer of c for ttl.
//
// The first call to IsReachable, and the first call after the cached
// answer has aged past ttl, consults c. Other calls return the cached
// answer. Concurrent callers arriving while c is being consulted wait
// for its answer rather than consulting c again. A ttl of zero or less
// disables caching and returns c itself.
func NewCached(c Checker, ttl time.Duration) Checker {
	if ttl <= 0 {
		return c
	}
	return &cached{checker: c, ttl: ttl, now: time.Now}
}

type cached struct {
	checker Checker
	ttl     time.Duration
	now     func() time.Time

	lock      sync.Mutex
	reachable bool
	expires   time.Time
}

func (c *cached) IsReachable() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	now := c.now()
	if now.Before(c.expires) {
		return c.reachable
	}
	c.reachable = c.checker.IsReachable()
	c.expires = now.Add(c.ttl)
	return c.reachable
}
