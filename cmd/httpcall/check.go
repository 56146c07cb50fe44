// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/gogama/httpcall/config"
	"github.com/spf13/cobra"
)

var errUnreachable = errors.New("network unreachable")

func newCheckCmd(o *options) *cobra.Command {
	var address string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report whether the network is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if address != "" {
				o.v.Set("connectivity.mode", "probe")
				o.v.Set("connectivity.probe_address", address)
			}
			cfg, err := o.load()
			if err != nil {
				return err
			}
			checker, err := config.BuildChecker(cfg.Connectivity)
			if err != nil {
				return err
			}
			if !checker.IsReachable() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "unreachable")
				return errUnreachable
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reachable")
			return nil
		},
	}
	cmd.Flags().StringVar(&address, "probe", "", "probe reachability by dialing host:port")
	return cmd
}
