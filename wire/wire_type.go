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

// Package wire implements the tagged binary format shared by every codec.
//
// A field starts with a tag byte laid out as follows:
//
//	bits 7-5  wire type
//	bits 4-3  schema type, or the extended wire type when the wire type is Extended
//	bits 2-0  field id delta, 7 meaning that a varint delta follows the tag
//
// When the schema type is not Expected, the runtime type of the value follows
// the field id delta.
package wire

import "fmt"

// WireType describes how the payload of a field is laid out
type WireType byte

const (
	// VarInt fields carry a single varint
	VarInt WireType = 0
	// TagDelimited fields carry nested fields terminated by EndTagDelimited
	TagDelimited WireType = 1
	// LengthPrefixed fields carry a varint length followed by that many bytes
	LengthPrefixed WireType = 2
	// Fixed32 fields carry four little-endian bytes
	Fixed32 WireType = 3
	// Fixed64 fields carry eight little-endian bytes
	Fixed64 WireType = 4
	// Reference fields carry the varint id of an object already encoded, 0 meaning null
	Reference WireType = 6
	// Extended fields are markers described by their ExtendedWireType
	Extended WireType = 7
)

// String returns the wire type name
func (x WireType) String() string {
	switch x {
	case VarInt:
		return "VarInt"
	case TagDelimited:
		return "TagDelimited"
	case LengthPrefixed:
		return "LengthPrefixed"
	case Fixed32:
		return "Fixed32"
	case Fixed64:
		return "Fixed64"
	case Reference:
		return "Reference"
	case Extended:
		return "Extended"
	default:
		return fmt.Sprintf("WireType(%d)", byte(x))
	}
}

// ExtendedWireType names the markers carried by Extended fields
type ExtendedWireType byte

const (
	// EndTagDelimited terminates a TagDelimited field
	EndTagDelimited ExtendedWireType = 0
	// EndBaseFields separates the members of a declared base from the members of the derived level
	EndBaseFields ExtendedWireType = 1
)

// String returns the extended wire type name
func (x ExtendedWireType) String() string {
	switch x {
	case EndTagDelimited:
		return "EndTagDelimited"
	case EndBaseFields:
		return "EndBaseFields"
	default:
		return fmt.Sprintf("ExtendedWireType(%d)", byte(x))
	}
}

// SchemaType describes how the runtime type of a field is conveyed
type SchemaType byte

const (
	// Expected means the runtime type is the statically expected type
	Expected SchemaType = 0
	// WellKnown means a fixed type id follows
	WellKnown SchemaType = 1
	// Encoded means a full type description follows
	Encoded SchemaType = 2
	// Referenced means the id of a type already encoded in this operation follows
	Referenced SchemaType = 3
)

const (
	wireTypeShift   = 5
	schemaTypeShift = 3
	schemaTypeMask  = 0x03
	deltaMask       = 0x07
	extendedDelta   = 7
)

// encoded type descriptions
const (
	specNamed   byte = 0
	specPointer byte = 1
	specSlice   byte = 2
	specArray   byte = 3
	specMap     byte = 4
)

const (
	// maxTypeDepth bounds the nesting of an encoded type description
	maxTypeDepth = 32
	// maxArrayLength bounds the length of an array type rebuilt from the wire
	maxArrayLength = 1 << 24
)
