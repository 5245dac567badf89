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

package types

import (
	"reflect"
	"strings"
	"sync"
)

// Registry maps wire names to runtime types.
// Only named types are kept in the registry. Composite types such as
// pointers, slices, arrays and maps are described structurally on the wire
// and rebuilt from their named components.
type Registry interface {
	// Register records the named components of the given type
	Register(typ reflect.Type)
	// Deregister removes the given named type from the registry
	Deregister(typ reflect.Type)
	// Exists returns true when the given named type is in the registry
	Exists(typ reflect.Type) bool
	// TypesMap returns a snapshot of the registered types keyed by their wire name
	TypesMap() map[string]reflect.Type
	// TypeOf returns the type registered under the given wire name
	TypeOf(name string) (reflect.Type, bool)
	// Name returns the wire name of the given named type
	Name(typ reflect.Type) string
}

type registry struct {
	mu       *sync.RWMutex
	typesMap map[string]reflect.Type
}

var _ Registry = (*registry)(nil)

// NewRegistry creates a new types registry seeded with the well-known types
func NewRegistry() Registry {
	r := &registry{
		mu:       &sync.RWMutex{},
		typesMap: make(map[string]reflect.Type, len(wellKnown)),
	}
	for _, typ := range wellKnown {
		r.Register(typ)
	}
	return r
}

// Register records the named components of the given type.
// Registering the same type twice is a no-op.
func (r *registry) Register(typ reflect.Type) {
	if typ == nil {
		return
	}

	named := make([]reflect.Type, 0, 2)
	collectNamed(typ, &named, 0)
	if len(named) == 0 {
		return
	}

	r.mu.Lock()
	for _, n := range named {
		r.typesMap[Name(n)] = n
	}
	r.mu.Unlock()
}

// Deregister removes the given named type from the registry
func (r *registry) Deregister(typ reflect.Type) {
	if typ == nil {
		return
	}
	r.mu.Lock()
	delete(r.typesMap, Name(typ))
	r.mu.Unlock()
}

// Exists returns true when the given named type is in the registry
func (r *registry) Exists(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	r.mu.RLock()
	_, ok := r.typesMap[Name(typ)]
	r.mu.RUnlock()
	return ok
}

// TypesMap returns a snapshot of the registered types
func (r *registry) TypesMap() map[string]reflect.Type {
	r.mu.RLock()
	out := make(map[string]reflect.Type, len(r.typesMap))
	for k, v := range r.typesMap {
		out[k] = v
	}
	r.mu.RUnlock()
	return out
}

// TypeOf returns the type registered under the given wire name
func (r *registry) TypeOf(name string) (reflect.Type, bool) {
	r.mu.RLock()
	out, ok := r.typesMap[strings.TrimSpace(name)]
	r.mu.RUnlock()
	return out, ok
}

// Name returns the wire name of the given named type
func (r *registry) Name(typ reflect.Type) string {
	return Name(typ)
}

// collectNamed walks the structural part of a type and appends the named
// types it is built from. Struct fields are not walked: they are registered
// when their own codecs are resolved.
func collectNamed(typ reflect.Type, out *[]reflect.Type, depth int) {
	if typ == nil || depth > maxTypeDepth {
		return
	}
	if typ.Name() != "" {
		*out = append(*out, typ)
		return
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array:
		collectNamed(typ.Elem(), out, depth+1)
	case reflect.Map:
		collectNamed(typ.Key(), out, depth+1)
		collectNamed(typ.Elem(), out, depth+1)
	}
}
