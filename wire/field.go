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

package wire

import (
	"fmt"
	"reflect"
)

// Field is a decoded field header
type Field struct {
	// FieldIDDelta is the distance from the previous field id of the enclosing object
	FieldIDDelta uint32
	// WireType describes the payload
	WireType WireType
	// ExtendedWireType is set when WireType is Extended
	ExtendedWireType ExtendedWireType
	// FieldType is the embedded runtime type, nil when the static type applies
	FieldType reflect.Type
	// ReferenceID is the reference id consumed by an object header, zero otherwise
	ReferenceID uint32
}

// HasFieldType returns true when the header embeds a runtime type
func (f Field) HasFieldType() bool {
	return f.FieldType != nil
}

// IsReference returns true for reference fields, including null
func (f Field) IsReference() bool {
	return f.WireType == Reference
}

// IsEndObject returns true for the marker terminating a TagDelimited field
func (f Field) IsEndObject() bool {
	return f.WireType == Extended && f.ExtendedWireType == EndTagDelimited
}

// IsEndBaseFields returns true for the marker closing the members of a declared base
func (f Field) IsEndBaseFields() bool {
	return f.WireType == Extended && f.ExtendedWireType == EndBaseFields
}

// IsEndBaseOrEndObject returns true for either end marker
func (f Field) IsEndBaseOrEndObject() bool {
	return f.WireType == Extended &&
		(f.ExtendedWireType == EndTagDelimited || f.ExtendedWireType == EndBaseFields)
}

// String returns a human-readable description of the header
func (f Field) String() string {
	if f.WireType == Extended {
		return fmt.Sprintf("[%s]", f.ExtendedWireType)
	}
	if f.FieldType != nil {
		return fmt.Sprintf("[FieldIDDelta: %d, WireType: %s, Type: %s]", f.FieldIDDelta, f.WireType, f.FieldType)
	}
	return fmt.Sprintf("[FieldIDDelta: %d, WireType: %s]", f.FieldIDDelta, f.WireType)
}
