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

// Package bufferpool recycles the buffers used to frame payloads
package bufferpool

import (
	"bytes"
	"sync"
)

// DefaultMaxRetained is the largest buffer capacity returned to Pool
const DefaultMaxRetained = 1 << 20

// Pool is the process-wide buffer pool
var Pool = New(DefaultMaxRetained)

// BufferPool is a sync.Pool of bytes.Buffer that drops buffers grown past a
// capacity limit, so a single large payload does not pin its memory
type BufferPool struct {
	pool        sync.Pool
	maxRetained int
}

// New creates a BufferPool. A non-positive limit retains every buffer.
func New(maxRetained int) *BufferPool {
	return &BufferPool{
		maxRetained: maxRetained,
		pool: sync.Pool{
			New: func() any { return new(bytes.Buffer) },
		},
	}
}

// Get returns an empty buffer
func (p *BufferPool) Get() *bytes.Buffer {
	return p.pool.Get().(*bytes.Buffer)
}

// Put resets the buffer and returns it to the pool unless it is too large
func (p *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || (p.maxRetained > 0 && buf.Cap() > p.maxRetained) {
		return
	}
	buf.Reset()
	p.pool.Put(buf)
}
