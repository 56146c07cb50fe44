// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies transport errors by cause. The call
// orchestrator never retries, but the category of a transport failure
// is useful for logging, for bucketing error metrics, and for callers
// deciding whether to execute a call again.
//
// Package transient depends only on the standard library packages
// "errors", "net" and "syscall", so it brings no significant
// dependencies when imported as a standalone package.
package transient
