// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpcall_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gogama/httpcall"
	"github.com/gogama/httpcall/connectivity"
	"github.com/gogama/httpcall/parse"
	"github.com/gogama/httpcall/request"
)

type widget struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func ExampleCall_Execute() {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"id":7,"name":"sprocket"}`)
	}))
	defer server.Close()

	c, err := httpcall.Get(connectivity.Always, server.URL, parse.Status(parse.JSON[widget]()))
	if err != nil {
		panic(err)
	}
	done := make(chan struct{})
	c.SetSuccessListener(httpcall.SuccessFunc[widget](func(_ *httpcall.Call[widget], w widget) {
		fmt.Println("got widget", w.ID, w.Name)
		close(done)
	}))
	c.SetFailureListener(httpcall.FailureFunc[widget](func(_ *httpcall.Call[widget], _ *request.Response, err error) {
		fmt.Println("failed:", httpcall.KindOf(err))
		close(done)
	}))
	if err = c.Execute(); err != nil {
		panic(err)
	}
	<-done
	// Output: got widget 7 sprocket
}

func ExampleDo() {
	c, err := httpcall.Get(connectivity.Never, "https://example.com", parse.Text())
	if err != nil {
		panic(err)
	}
	o := httpcall.Do(context.Background(), c)
	fmt.Println(o.Kind(), o.Err)
	// Output: no_connectivity httpcall: no network connectivity
}
