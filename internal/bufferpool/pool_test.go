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

package bufferpool

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferPool(t *testing.T) {
	t.Run("Returned buffers are empty", func(t *testing.T) {
		pool := New(0)
		buf := pool.Get()
		buf.WriteString("payload")
		pool.Put(buf)

		assert.Zero(t, pool.Get().Len())
	})
	t.Run("Oversized buffers are dropped", func(t *testing.T) {
		pool := New(16)
		buf := pool.Get()
		buf.Grow(64)
		buf.WriteString("payload")
		pool.Put(buf)

		// a dropped buffer keeps its content
		assert.Equal(t, "payload", buf.String())
	})
	t.Run("Nil buffers are ignored", func(t *testing.T) {
		assert.NotPanics(t, func() { New(16).Put(nil) })
	})
}
