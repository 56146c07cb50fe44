// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package metrics exports Prometheus metrics about httpcall executions.

	reg := prometheus.NewRegistry()
	handlers := &httpcall.HandlerGroup{}
	metrics.New(reg, "myapp").Install(handlers)

	c, _ := httpcall.Get(connectivity.Always, "https://example.com", parse.Text())
	c.Handlers = handlers
*/
package metrics
