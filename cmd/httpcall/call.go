// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/gogama/httpcall"
	"github.com/gogama/httpcall/config"
	"github.com/gogama/httpcall/metrics"
	"github.com/gogama/httpcall/parse"
	"github.com/gogama/httpcall/request"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

type callFlags struct {
	headers     []string
	data        string
	contentType string
	path        string
	format      string
	metrics     bool
	requestID   string
}

func newCallCmd(o *options) *cobra.Command {
	f := &callFlags{}
	cmd := &cobra.Command{
		Use:   "call METHOD URL",
		Short: "Execute one HTTP call and print the parsed response",
		Long: `Execute one HTTP call and print the parsed response.

Non-2xx responses are reported as parse failures. With --path, the
response must be JSON and only the value at the gjson path is printed.
The command exits non-zero on every failure outcome.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCall(cmd, o, f, strings.ToUpper(args[0]), args[1])
		},
	}
	flags := cmd.Flags()
	flags.StringArrayVarP(&f.headers, "header", "H", nil, "request header as 'Name: value' (repeatable)")
	flags.StringVarP(&f.data, "data", "d", "", "request body; @file reads the body from a file")
	flags.StringVar(&f.contentType, "content-type", "application/json", "content type of --data")
	flags.StringVar(&f.path, "path", "", "gjson path selecting the value to print")
	flags.StringVar(&f.format, "format", "json", "output format: json, yaml or text")
	flags.BoolVar(&f.metrics, "metrics", false, "print Prometheus samples recorded during the call")
	flags.StringVar(&f.requestID, "request-id-header", httpcall.DefaultRequestIDHeader, "header carrying the execution id (empty disables)")
	return cmd
}

func runCall(cmd *cobra.Command, o *options, f *callFlags, method, url string) error {
	if f.format != "json" && f.format != "yaml" && f.format != "text" {
		return fmt.Errorf("unknown format %q", f.format)
	}
	header, err := parseHeaders(f.headers)
	if err != nil {
		return err
	}
	body, err := f.body()
	if err != nil {
		return err
	}

	cfg, err := o.load()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	adapter, err := config.BuildTransport(cfg.Transport)
	if err != nil {
		return err
	}
	checker, err := config.BuildChecker(cfg.Connectivity)
	if err != nil {
		return err
	}
	authenticator, err := config.BuildAuthenticator(ctx, cfg.Auth)
	if err != nil {
		return err
	}

	handlers := &httpcall.HandlerGroup{}
	logger := cfg.Logging.Logger(logWriter(cmd))
	logHandler := httpcall.NewLogHandler(logger)
	for _, evt := range httpcall.Events() {
		handlers.PushBack(evt, logHandler)
	}
	if f.requestID != "" {
		handlers.PushBack(httpcall.BeforeDispatch, httpcall.RequestIDHandler(f.requestID))
	}
	var reg *prometheus.Registry
	if f.metrics {
		reg = prometheus.NewRegistry()
		metrics.New(reg, "httpcall").Install(handlers)
	}

	c, err := httpcall.NewCall[interface{}](checker, &httpcall.EndpointFuncs[interface{}]{
		Method: method,
		URL:    httpcall.StaticURL(url),
		Header: func() http.Header { return header },
		Body: func() (*request.Body, error) {
			return body, nil
		},
		Parse: parse.Status(f.parser()),
		Auth:  authenticator,
	})
	if err != nil {
		return err
	}
	c.Transport = adapter
	c.Handlers = handlers
	c.Logger = logger

	out := httpcall.Do(ctx, c)
	if reg != nil {
		if werr := writeMetrics(cmd.ErrOrStderr(), reg); werr != nil {
			return werr
		}
	}
	if out.Err != nil {
		if out.Response != nil && len(out.Response.Body) > 0 {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", out.Response.Body)
		}
		return fmt.Errorf("%s: %w", out.Kind(), out.Err)
	}
	return writeValue(cmd.OutOrStdout(), f.format, out.Value)
}

func (f *callFlags) body() (*request.Body, error) {
	if f.data == "" {
		return nil, nil
	}
	data := []byte(f.data)
	if strings.HasPrefix(f.data, "@") {
		var err error
		data, err = os.ReadFile(f.data[1:])
		if err != nil {
			return nil, err
		}
	}
	return &request.Body{Data: data, ContentType: f.contentType}, nil
}

func (f *callFlags) parser() parse.Func[interface{}] {
	if f.path != "" {
		return parse.Path[interface{}](f.path)
	}
	if f.format == "text" {
		return func(resp *request.Response) (interface{}, error) {
			return string(resp.Body), nil
		}
	}
	return func(resp *request.Response) (interface{}, error) {
		if len(resp.Body) == 0 {
			return nil, nil
		}
		return parse.JSON[interface{}]()(resp)
	}
}

func parseHeaders(raw []string) (http.Header, error) {
	h := make(http.Header, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, want 'Name: value'", kv)
		}
		h.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}
	return h, nil
}
