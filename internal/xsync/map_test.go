// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package xsync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMap(t *testing.T) {
	sm := NewMap[string, int]()
	sm.Set("one", 1)
	sm.Set("two", 2)

	value, ok := sm.Get("one")
	require.True(t, ok)
	assert.Equal(t, 1, value)
	assert.Equal(t, 2, sm.Len())
	assert.ElementsMatch(t, []string{"one", "two"}, sm.Keys())
	assert.ElementsMatch(t, []int{1, 2}, sm.Values())

	count := 0
	sm.Range(func(string, int) { count++ })
	assert.Equal(t, 2, count)

	sm.Delete("one")
	_, ok = sm.Get("one")
	assert.False(t, ok)

	sm.Reset()
	assert.Zero(t, sm.Len())
}

func TestMapGetOrSet(t *testing.T) {
	defer goleak.VerifyNone(t)

	sm := NewMap[string, int]()
	actual, loaded := sm.GetOrSet("key", 1)
	assert.False(t, loaded)
	assert.Equal(t, 1, actual)

	actual, loaded = sm.GetOrSet("key", 2)
	assert.True(t, loaded)
	assert.Equal(t, 1, actual)

	var wg sync.WaitGroup
	results := make([]int, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = sm.GetOrSet("shared", i)
		}(i)
	}
	wg.Wait()

	winner, ok := sm.Get("shared")
	require.True(t, ok)
	for _, r := range results {
		assert.Equal(t, winner, r)
	}
}
