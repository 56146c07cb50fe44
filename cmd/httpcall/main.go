// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command httpcall executes one typed HTTP call from the command line,
// gated on network connectivity, and prints the parsed result.
//
// Usage:
//
//	httpcall call GET https://api.example.com/widgets/1 --path name
//	httpcall call POST https://api.example.com/widgets --data '{"name":"sprocket"}'
//	httpcall check
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "httpcall:", err)
		os.Exit(1)
	}
}
