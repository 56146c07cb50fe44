// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package connectivity

import "net"

// Interfaces returns a Checker that reports the network as reachable
// when at least one network interface is up, is not a loopback
// interface, and has at least one unicast address assigned.
//
// The check is passive: it inspects local interface state and sends
// nothing on the network. An error listing interfaces or their
// addresses is treated as unreachable.
func Interfaces() Checker {
	return &interfaces{
		list:  net.Interfaces,
		addrs: func(i *net.Interface) ([]net.Addr, error) { return i.Addrs() },
	}
}

type interfaces struct {
	list  func() ([]net.Interface, error)
	addrs func(*net.Interface) ([]net.Addr, error)
}

func (c *interfaces) IsReachable() bool {
	ifaces, err := c.list()
	if err != nil {
		return false
	}
	for i := range ifaces {
		iface := &ifaces[i]
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := c.addrs(iface)
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if usableAddr(addr) {
				return true
			}
		}
	}
	return false
}

func usableAddr(addr net.Addr) bool {
	var ip net.IP
	switch a := addr.(type) {
	case *net.IPNet:
		ip = a.IP
	case *net.IPAddr:
		ip = a.IP
	default:
		return false
	}
	return ip != nil && !ip.IsLoopback() && !ip.IsUnspecified()
}
