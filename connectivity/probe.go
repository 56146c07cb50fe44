// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package connectivity

import (
	"context"
	"net"
	"time"
)

// NewDialProbe returns a Checker that reports the network as reachable
// if a connection to addr over network (for example "tcp" and
// "example.com:443") can be established within timeout. The connection
// is closed immediately.
//
// Unlike the other checkers in this package, a dial probe is not free
// of side effects: every call to IsReachable resolves addr and opens a
// connection. Wrap it with NewCached when calls are frequent.
//
// A timeout of zero or less means the operating system default.
func NewDialProbe(network, addr string, timeout time.Duration) Checker {
	d := &net.Dialer{Timeout: timeout}
	return &dialProbe{
		network: network,
		addr:    addr,
		timeout: timeout,
		dial:    d.DialContext,
	}
}

type dialProbe struct {
	network string
	addr    string
	timeout time.Duration
	dial    func(ctx context.Context, network, addr string) (net.Conn, error)
}

func (p *dialProbe) IsReachable() bool {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	conn, err := p.dial(ctx, p.network, p.addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
