// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"

	"github.com/gogama/httpcall/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// options holds the flags shared by every subcommand.
type options struct {
	v          *viper.Viper
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	o := &options{v: config.New()}
	cmd := &cobra.Command{
		Use:           "httpcall",
		Short:         "Execute connectivity-gated HTTP calls",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", "", "path to a YAML configuration file")
	flags.StringVar(&o.envFile, "env-file", "", "load HTTPCALL_ environment variables from a dotenv file")
	flags.Duration("timeout", o.v.GetDuration("transport.timeout"), "dispatch timeout (0 = none)")
	flags.String("transport", o.v.GetString("transport.kind"), "transport kind: http, http2 or resty")
	flags.Bool("insecure", false, "skip server certificate verification")
	flags.String("connectivity", o.v.GetString("connectivity.mode"), "connectivity mode: always, interfaces or probe")
	flags.String("log-level", o.v.GetString("logging.level"), "log level: debug, info, warn or error")
	flags.String("log-format", o.v.GetString("logging.format"), "log format: text or json")
	_ = o.v.BindPFlag("transport.timeout", flags.Lookup("timeout"))
	_ = o.v.BindPFlag("transport.kind", flags.Lookup("transport"))
	_ = o.v.BindPFlag("transport.insecure", flags.Lookup("insecure"))
	_ = o.v.BindPFlag("connectivity.mode", flags.Lookup("connectivity"))
	_ = o.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = o.v.BindPFlag("logging.format", flags.Lookup("log-format"))

	cmd.AddCommand(newCallCmd(o))
	cmd.AddCommand(newCheckCmd(o))
	return cmd
}

// load reads the env file, then the config file, and returns the
// resulting configuration. Flags take precedence over both.
func (o *options) load() (*config.Config, error) {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", o.envFile, err)
		}
	}
	if o.configPath != "" {
		o.v.SetConfigFile(o.configPath)
		if err := o.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", o.configPath, err)
		}
	}
	return config.FromViper(o.v)
}

func logWriter(cmd *cobra.Command) io.Writer {
	return cmd.ErrOrStderr()
}
