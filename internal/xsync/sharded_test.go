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
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestShardedMap(t *testing.T) {
	defer goleak.VerifyNone(t)

	sm := NewShardedMap[reflect.Type, string](3, HashType)
	assert.Len(t, sm.shards, 4)

	types := []reflect.Type{
		reflect.TypeFor[int](),
		reflect.TypeFor[string](),
		reflect.TypeFor[[]byte](),
		reflect.TypeFor[map[string]int](),
	}

	var wg sync.WaitGroup
	for _, typ := range types {
		for range 8 {
			wg.Add(1)
			go func(typ reflect.Type) {
				defer wg.Done()
				sm.GetOrSet(typ, typ.String())
			}(typ)
		}
	}
	wg.Wait()

	assert.Equal(t, len(types), sm.Len())
	for _, typ := range types {
		value, ok := sm.Get(typ)
		require.True(t, ok)
		assert.Equal(t, typ.String(), value)
	}

	seen := 0
	sm.Range(func(reflect.Type, string) { seen++ })
	assert.Equal(t, len(types), seen)

	sm.Reset()
	assert.Zero(t, sm.Len())
}

func TestHashes(t *testing.T) {
	a := reflect.TypeFor[int]()
	b := reflect.TypeFor[string]()

	assert.Equal(t, HashType(a), HashType(reflect.TypeOf(1)))
	assert.NotEqual(t, HashTypePair(a, b), HashTypePair(b, a))
	assert.Equal(t, HashString("x"), HashString("x"))
	assert.Zero(t, typePointer(nil))

	sm := NewShardedMap[string, int](0, HashString)
	assert.NotEmpty(t, sm.shards)
}
