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

package cloning

import (
	"reflect"

	"github.com/tochemey/wirecodec/internal/identity"
)

// CopyContext maps the objects of a copy operation to their copies.
// It is not safe for concurrent use.
type CopyContext struct {
	copies map[identity.Key]any
}

// NewCopyContext creates an empty CopyContext
func NewCopyContext() *CopyContext {
	return &CopyContext{copies: make(map[identity.Key]any)}
}

// TryGetCopy returns the copy already made of the given object
func (x *CopyContext) TryGetCopy(original reflect.Value) (any, bool) {
	key, ok := identity.Of(original)
	if !ok {
		return nil, false
	}
	out, ok := x.copies[key]
	return out, ok
}

// RecordCopy records the copy of an object.
// It must be called before the members of the copy are populated.
func (x *CopyContext) RecordCopy(original reflect.Value, copied any) {
	if key, ok := identity.Of(original); ok {
		x.copies[key] = copied
	}
}

// Reset forgets every recorded copy
func (x *CopyContext) Reset() {
	clear(x.copies)
}
