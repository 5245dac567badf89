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

// Package identity derives object identity keys from reflected values.
// Two values share a key when reading through one of them observes writes
// made through the other.
package identity

import "reflect"

// Key identifies an object within a single operation
type Key struct {
	ptr uintptr
	typ reflect.Type
	len int
}

// Of returns the identity key of a value.
// The boolean is false for values without identity: value kinds, nil
// references and empty slices.
func Of(value reflect.Value) (Key, bool) {
	if !value.IsValid() {
		return Key{}, false
	}

	switch value.Kind() {
	case reflect.Pointer, reflect.Map:
		if value.IsNil() {
			return Key{}, false
		}
		return Key{ptr: value.Pointer(), typ: value.Type()}, true
	case reflect.Slice:
		if value.IsNil() || value.Len() == 0 {
			return Key{}, false
		}
		return Key{ptr: value.Pointer(), typ: value.Type(), len: value.Len()}, true
	case reflect.Interface:
		if value.IsNil() {
			return Key{}, false
		}
		return Of(value.Elem())
	default:
		return Key{}, false
	}
}

// IsNil returns true when the value is absent or a nil reference
func IsNil(value reflect.Value) bool {
	if !value.IsValid() {
		return true
	}
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface:
		return value.IsNil()
	default:
		return false
	}
}
