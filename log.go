// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gogama/httpcall/request"
)

// NewLogHandler returns a Handler that logs call executions to logger.
// Install it for every event:
//
//	for _, evt := range httpcall.Events() {
//		handlers.PushBack(evt, httpcall.NewLogHandler(logger))
//	}
//
// Dispatch events are logged at debug level. The end of each execution
// is logged at info level on success and warn level on failure, with
// the outcome kind, duration, and status code when a response was
// received.
func NewLogHandler(logger *slog.Logger) Handler {
	if logger == nil {
		panic("httpcall: nil logger")
	}
	return &logHandler{logger: logger}
}

type logHandler struct {
	logger *slog.Logger
}

func (h *logHandler) Handle(evt Event, e *request.Execution) {
	ctx := context.Background()
	switch evt {
	case BeforeExecutionStart:
		h.logger.Log(ctx, slog.LevelDebug, "httpcall: execution starting", "id", e.ID)
	case BeforeDispatch:
		h.logger.Log(ctx, slog.LevelDebug, "httpcall: dispatching request",
			"id", e.ID,
			"method", e.Descriptor.Method,
			"url", e.Descriptor.URL.String())
	case AfterDispatch:
		attrs := []any{"id", e.ID, "status", e.StatusCode()}
		if ct := e.Header().Get("Content-Type"); ct != "" {
			attrs = append(attrs, "content_type", ct)
		}
		if e.Err != nil {
			attrs = append(attrs, "error", e.Err.Error())
		}
		h.logger.Log(ctx, slog.LevelDebug, "httpcall: transport completed", attrs...)
	case AfterExecutionEnd:
		h.logEnd(ctx, e)
	}
}

func (h *logHandler) logEnd(ctx context.Context, e *request.Execution) {
	kind := KindOf(e.Err)
	attrs := []any{
		"id", e.ID,
		"outcome", kind.String(),
		"duration", e.Duration(),
	}
	if e.Descriptor != nil {
		attrs = append(attrs, "method", e.Descriptor.Method, "url", e.Descriptor.URL.String())
	}
	if e.Response != nil {
		attrs = append(attrs, "status", e.Response.StatusCode)
	}
	if e.Err == nil {
		h.logger.Log(ctx, slog.LevelInfo, "httpcall: execution succeeded", attrs...)
		return
	}
	attrs = append(attrs, "error", e.Err.Error())
	var transportErr *TransportError
	if errors.As(e.Err, &transportErr) {
		attrs = append(attrs, "category", transportErr.Category().String(), "timeout", e.Timeout())
	}
	h.logger.Log(ctx, slog.LevelWarn, "httpcall: execution failed", attrs...)
}

// DefaultRequestIDHeader is the header set by RequestIDHandler when no
// header name is given.
const DefaultRequestIDHeader = "X-Request-Id"

// RequestIDHandler returns a Handler that, when installed for the
// BeforeDispatch event, sends the execution ID in the named request
// header. An empty header name means DefaultRequestIDHeader.
//
// The handler ignores every other event.
func RequestIDHandler(header string) Handler {
	if header == "" {
		header = DefaultRequestIDHeader
	}
	return HandlerFunc(func(evt Event, e *request.Execution) {
		if evt == BeforeDispatch && e.Descriptor != nil {
			e.Descriptor = e.Descriptor.WithHeader(header, e.ID)
		}
	})
}
