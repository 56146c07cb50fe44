// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/gogama/httpcall/connectivity"
	"github.com/gogama/httpcall/parse"
	"github.com/gogama/httpcall/request"
	"github.com/gogama/httpcall/timeout"
	"github.com/gogama/httpcall/transient"
	"github.com/gogama/httpcall/transport"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var httpServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var httpsServer = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var http2Server = httptest.NewUnstartedServer(http.HandlerFunc(serverHandler))
var servers = []*httptest.Server{httpServer, httpsServer, http2Server}

func TestMain(m *testing.M) {
	httpServer.Start()
	defer httpServer.Close()
	httpsServer.StartTLS()
	defer httpsServer.Close()
	http2Server.EnableHTTP2 = true
	http2Server.StartTLS()
	defer http2Server.Close()
	waitForServerStart(httpServer)
	waitForServerStart(httpsServer)
	waitForServerStart(http2Server)
	os.Exit(m.Run())
}

func waitForServerStart(server *httptest.Server) {
	c := toCall(&serverInstruction{StatusCode: 200}, server, parse.Bytes(), timeout.Fixed(2*time.Second))
	deadline := time.Now().Add(10 * time.Second)
	for {
		o := Do(context.Background(), c)
		if o.Err == nil {
			return
		}
		if time.Now().After(deadline) || transient.Categorize(o.Err) == transient.Not {
			panic(fmt.Sprintf("Test server startup failed with error %v", o.Err))
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func serverName(server *httptest.Server) string {
	switch server {
	case httpServer:
		return "http"
	case httpsServer:
		return "https"
	case http2Server:
		return "http2"
	default:
		panic("unknown server")
	}
}

func TestCall_EndToEnd(t *testing.T) {
	type widget struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	for _, server := range servers {
		t.Run(serverName(server), func(t *testing.T) {
			t.Run("success", func(t *testing.T) {
				i := &serverInstruction{
					StatusCode: 200,
					Body: []bodyChunk{
						{Data: []byte(`{"id":1,`)},
						{Data: []byte(`"name":"sprocket"}`), Pause: 10 * time.Millisecond},
					},
				}
				c := toCall(i, server, parse.Status(parse.JSON[widget]()), timeout.DefaultPolicy)

				o := Do(context.Background(), c)

				require.NoError(t, o.Err)
				assert.Equal(t, widget{ID: 1, Name: "sprocket"}, o.Value)
			})
			t.Run("parse error carries response", func(t *testing.T) {
				i := &serverInstruction{
					StatusCode: 503,
					Body:       []bodyChunk{{Data: []byte("unavailable")}},
				}
				c := toCall(i, server, parse.Status(parse.JSON[widget]()), timeout.DefaultPolicy)

				o := Do(context.Background(), c)

				assert.Equal(t, KindParse, o.Kind())
				require.NotNil(t, o.Response)
				assert.Equal(t, 503, o.Response.StatusCode)
				assert.Equal(t, []byte("unavailable"), o.Response.Body)
				var statusErr *parse.StatusError
				assert.ErrorAs(t, o.Err, &statusErr)
			})
			t.Run("timeout", func(t *testing.T) {
				i := &serverInstruction{
					StatusCode:  200,
					HeaderPause: 500 * time.Millisecond,
				}
				c := toCall(i, server, parse.Bytes(), timeout.Fixed(50*time.Millisecond))

				o := Do(context.Background(), c)

				assert.Equal(t, KindTransport, o.Kind())
				assert.Nil(t, o.Response)
				var transportErr *TransportError
				require.ErrorAs(t, o.Err, &transportErr)
				assert.Equal(t, transient.Timeout, transportErr.Category())
			})
			t.Run("repeated executions", func(t *testing.T) {
				i := &serverInstruction{
					StatusCode: 201,
					Body:       []bodyChunk{{Data: []byte("created")}},
				}
				c := toCall(i, server, parse.Text(), timeout.DefaultPolicy)
				for n := 0; n < 3; n++ {
					o := Do(context.Background(), c)
					require.NoError(t, o.Err, n)
					assert.Equal(t, "created", o.Value, n)
				}
			})
		})
	}
}

func TestCall_EndToEndResty(t *testing.T) {
	i := &serverInstruction{
		StatusCode: 200,
		Body:       []bodyChunk{{Data: []byte("via resty")}},
	}
	c := toCall(i, httpServer, parse.Text(), timeout.DefaultPolicy)
	c.Transport = &transport.Resty{TimeoutPolicy: timeout.DefaultPolicy}

	o := Do(context.Background(), c)

	require.NoError(t, o.Err)
	assert.Equal(t, "via resty", o.Value)
}

func TestCall_EndToEndConnRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(serverHandler))
	url := server.URL
	server.Close()
	c, err := Get[[]byte](connectivity.Always, url, parse.Bytes())
	require.NoError(t, err)

	o := Do(context.Background(), c)

	assert.Equal(t, KindTransport, o.Kind())
	var transportErr *TransportError
	require.True(t, errors.As(o.Err, &transportErr))
	assert.Equal(t, transient.ConnRefused, transportErr.Category())
}

type bodyChunk struct {
	Pause time.Duration
	Data  []byte
}

type serverInstruction struct {
	HeaderPause time.Duration
	StatusCode  int
	Body        []bodyChunk
}

func (i *serverInstruction) toJSON() []byte {
	b, err := json.Marshal(i)
	if err != nil {
		panic(err)
	}

	return b
}

// toCall returns a call which POSTs the instruction to server and
// parses the response with p.
func toCall[T any](i *serverInstruction, server *httptest.Server, p parse.Func[T], policy timeout.Policy) *Call[T] {
	b := i.toJSON()
	c, err := NewCall[T](connectivity.Always, &EndpointFuncs[T]{
		Method: "POST",
		URL:    StaticURL(server.URL),
		Body: func() (*request.Body, error) {
			return &request.Body{Data: b, ContentType: "application/json"}, nil
		},
		Parse: p,
	})
	if err != nil {
		panic(err)
	}
	c.Transport = &transport.HTTP{
		Doer:          server.Client(),
		TimeoutPolicy: policy,
	}

	return c
}

func (i *serverInstruction) fromJSON(b []byte) error {
	return json.Unmarshal(b, i)
}

func (i *serverInstruction) fromRequest(req *http.Request) error {
	b, err := io.ReadAll(req.Body)
	_ = req.Body.Close()

	if err != nil {
		return err
	}

	return i.fromJSON(b)
}

func serverHandler(w http.ResponseWriter, req *http.Request) {
	// Decode the instructions.
	var i serverInstruction
	err := i.fromRequest(req)
	if err != nil {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("failed to read request: %s", err.Error()))
		return
	}

	// Validate the instruction.
	if i.StatusCode == 0 {
		w.WriteHeader(400)
		_, _ = io.WriteString(w, fmt.Sprintf("bad StatusCode in instruction: %v", i))
		return
	}

	f, ok := w.(http.Flusher)
	if !ok {
		panic("w does not implement Flusher")
	}

	contentLength := 0
	for _, chunk := range i.Body {
		contentLength += len(chunk.Data)
	}

	header := w.Header()
	header.Add("Content-Length", strconv.Itoa(contentLength))

	// Pause before the headers so the client can exercise timeouts.
	time.Sleep(i.HeaderPause)

	w.WriteHeader(i.StatusCode)
	f.Flush()

	// Write the response in chunks, spreading each chunk's pause over
	// its bytes.
	for _, chunk := range i.Body {
		data := chunk.Data
		if len(data) == 0 {
			time.Sleep(chunk.Pause)
			continue
		}
		pause := chunk.Pause
		ppb := chunk.Pause / time.Duration(len(data))
		for j := range data {
			_, err = w.Write(data[j : j+1])
			if err != nil {
				return
			}
			f.Flush()
			time.Sleep(ppb)
			pause -= ppb
		}
		if pause > 0 {
			time.Sleep(pause)
		}
	}
}
