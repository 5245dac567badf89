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
	"time"

	"github.com/google/uuid"
)

// wellKnown lists the types that have a fixed id on the wire.
// The position in the slice plus one is the id; ids are part of the wire
// format and entries must only ever be appended.
var wellKnown = []reflect.Type{
	reflect.TypeFor[bool](),
	reflect.TypeFor[int](),
	reflect.TypeFor[int8](),
	reflect.TypeFor[int16](),
	reflect.TypeFor[int32](),
	reflect.TypeFor[int64](),
	reflect.TypeFor[uint](),
	reflect.TypeFor[uint8](),
	reflect.TypeFor[uint16](),
	reflect.TypeFor[uint32](),
	reflect.TypeFor[uint64](),
	reflect.TypeFor[uintptr](),
	reflect.TypeFor[float32](),
	reflect.TypeFor[float64](),
	reflect.TypeFor[complex64](),
	reflect.TypeFor[complex128](),
	reflect.TypeFor[string](),
	reflect.TypeFor[[]byte](),
	reflect.TypeFor[any](),
	reflect.TypeFor[time.Time](),
	reflect.TypeFor[time.Duration](),
	reflect.TypeFor[uuid.UUID](),
	reflect.TypeFor[[]any](),
	reflect.TypeFor[map[string]any](),
	reflect.TypeFor[[]string](),
}

var (
	wellKnownIDs = func() map[reflect.Type]uint32 {
		out := make(map[reflect.Type]uint32, len(wellKnown))
		for i, typ := range wellKnown {
			out[typ] = uint32(i + 1)
		}
		return out
	}()

	basicTypes = map[reflect.Kind]reflect.Type{
		reflect.Bool:       reflect.TypeFor[bool](),
		reflect.Int:        reflect.TypeFor[int](),
		reflect.Int8:       reflect.TypeFor[int8](),
		reflect.Int16:      reflect.TypeFor[int16](),
		reflect.Int32:      reflect.TypeFor[int32](),
		reflect.Int64:      reflect.TypeFor[int64](),
		reflect.Uint:       reflect.TypeFor[uint](),
		reflect.Uint8:      reflect.TypeFor[uint8](),
		reflect.Uint16:     reflect.TypeFor[uint16](),
		reflect.Uint32:     reflect.TypeFor[uint32](),
		reflect.Uint64:     reflect.TypeFor[uint64](),
		reflect.Uintptr:    reflect.TypeFor[uintptr](),
		reflect.Float32:    reflect.TypeFor[float32](),
		reflect.Float64:    reflect.TypeFor[float64](),
		reflect.Complex64:  reflect.TypeFor[complex64](),
		reflect.Complex128: reflect.TypeFor[complex128](),
		reflect.String:     reflect.TypeFor[string](),
	}
)

// WellKnownID returns the fixed wire id of a well-known type
func WellKnownID(typ reflect.Type) (uint32, bool) {
	id, ok := wellKnownIDs[typ]
	return id, ok
}

// WellKnownType returns the type behind a fixed wire id
func WellKnownType(id uint32) (reflect.Type, bool) {
	if id == 0 || int(id) > len(wellKnown) {
		return nil, false
	}
	return wellKnown[id-1], true
}
