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

package session

import (
	"reflect"

	"github.com/tochemey/wirecodec/internal/identity"
)

// ReferencedObjects is the reference table of one serialize or deserialize
// operation.
//
// Every object header written or read consumes exactly one reference id, so
// the writer and the reader assign the same id to the same object even when
// the reader skips fields it does not understand. Id 0 denotes null.
type ReferencedObjects struct {
	// write side
	ids     map[identity.Key]uint32
	written uint32

	// read side
	slots []slot
}

type slot struct {
	value any
	set   bool
}

func newReferencedObjects() *ReferencedObjects {
	return &ReferencedObjects{}
}

// TryGetReferenceID returns the id already assigned to the given object
func (x *ReferencedObjects) TryGetReferenceID(value reflect.Value) (uint32, bool) {
	key, ok := identity.Of(value)
	if !ok || x.ids == nil {
		return 0, false
	}
	id, ok := x.ids[key]
	return id, ok
}

// RecordWrite assigns to the given object the id consumed by the next object header.
// It returns false when the value has no identity.
func (x *ReferencedObjects) RecordWrite(value reflect.Value) bool {
	key, ok := identity.Of(value)
	if !ok {
		return false
	}
	if x.ids == nil {
		x.ids = make(map[identity.Key]uint32)
	}
	x.ids[key] = x.written + 1
	return true
}

// OnHeaderWritten consumes a reference id on the write side
func (x *ReferencedObjects) OnHeaderWritten() uint32 {
	x.written++
	return x.written
}

// ReserveID consumes a reference id on the read side and reserves its slot
func (x *ReferencedObjects) ReserveID() uint32 {
	x.slots = append(x.slots, slot{})
	return uint32(len(x.slots))
}

// Record stores the object read under the given reserved id
func (x *ReferencedObjects) Record(id uint32, value any) {
	if id == 0 || int(id) > len(x.slots) {
		return
	}
	x.slots[id-1] = slot{value: value, set: true}
}

// Lookup returns the object recorded under the given id
func (x *ReferencedObjects) Lookup(id uint32) (any, bool) {
	if id == 0 || int(id) > len(x.slots) {
		return nil, false
	}
	s := x.slots[id-1]
	return s.value, s.set
}

// Written returns the number of ids consumed on the write side
func (x *ReferencedObjects) Written() uint32 {
	return x.written
}

// Reserved returns the number of ids consumed on the read side
func (x *ReferencedObjects) Reserved() uint32 {
	return uint32(len(x.slots))
}

// Reset clears the table so it can serve another operation
func (x *ReferencedObjects) Reset() {
	clear(x.ids)
	x.written = 0
	clear(x.slots)
	x.slots = x.slots[:0]
}
