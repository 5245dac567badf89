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

	"github.com/tochemey/wirecodec/internal/types"
)

// TypeResolver translates named types to and from their wire names
type TypeResolver interface {
	Name(typ reflect.Type) string
	TypeOf(name string) (reflect.Type, bool)
}

// TypeTable holds the types already encoded during one operation so that
// later occurrences are written as a short id.
type TypeTable struct {
	resolver TypeResolver
	ids      map[reflect.Type]uint32
	list     []reflect.Type
}

func newTypeTable(resolver TypeResolver) *TypeTable {
	if resolver == nil {
		resolver = types.NewRegistry()
	}
	return &TypeTable{resolver: resolver}
}

// Resolver returns the resolver backing the table
func (x *TypeTable) Resolver() TypeResolver {
	return x.resolver
}

// TryGetID returns the id of a type already encoded in this operation
func (x *TypeTable) TryGetID(typ reflect.Type) (uint32, bool) {
	id, ok := x.ids[typ]
	return id, ok
}

// Add assigns the next id to the given type and returns it
func (x *TypeTable) Add(typ reflect.Type) uint32 {
	if x.ids == nil {
		x.ids = make(map[reflect.Type]uint32)
	}
	id := uint32(len(x.list))
	x.list = append(x.list, typ)
	if _, ok := x.ids[typ]; !ok {
		x.ids[typ] = id
	}
	return id
}

// Get returns the type recorded under the given id
func (x *TypeTable) Get(id uint32) (reflect.Type, bool) {
	if int(id) >= len(x.list) {
		return nil, false
	}
	return x.list[id], true
}

// Reset clears the table so it can serve another operation
func (x *TypeTable) Reset() {
	clear(x.ids)
	clear(x.list)
	x.list = x.list[:0]
}
