// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package connectivity answers one question before a call is
// dispatched: is the network currently reachable?
//
// The call orchestrator consults a Checker synchronously, on the
// goroutine that executes the call, and treats its answer as a gate.
// When the answer is false the call fails immediately with
// httpcall.ErrNoConnectivity and the transport is never touched.
//
// A Checker answers from a snapshot of state it already has; the gate
// is not a guarantee that the subsequent dispatch will succeed. The
// implementations in this package range from the purely passive
// (Interfaces, which inspects local network interfaces) to the active
// (NewDialProbe, which opens a TCP connection). Wrap an expensive
// Checker with NewCached to bound how often it does real work.
package connectivity
