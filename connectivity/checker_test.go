// Copyright 2021 The httpcall Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package connectivity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCheckerFunc(t *testing.T) {
	var n int
	f := CheckerFunc(func() bool {
		n++
		return n%2 == 1
	})
	assert.True(t, f.IsReachable())
	assert.False(t, f.IsReachable())
	assert.Equal(t, 2, n)
}

func TestAlways(t *testing.T) {
	assert.True(t, Always.IsReachable())
}

func TestNever(t *testing.T) {
	assert.False(t, Never.IsReachable())
}

type mockChecker struct {
	mock.Mock
}

func newMockChecker(t *testing.T) *mockChecker {
	m := &mockChecker{}
	m.Test(t)
	return m
}

func (m *mockChecker) IsReachable() bool {
	args := m.Called()
	return args.Bool(0)
}
