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
	gerrors "github.com/tochemey/wirecodec/errors"
)

// ConsumeUnknownField skips the payload of a field the caller does not understand.
// Nested headers are still decoded so that reference ids stay aligned with the writer.
func ConsumeUnknownField(r *Reader, field Field) error {
	switch field.WireType {
	case VarInt, Reference:
		_, err := r.ReadVarUint64()
		return err
	case Fixed32:
		return r.Skip(4)
	case Fixed64:
		return r.Skip(8)
	case LengthPrefixed:
		_, err := r.ReadLengthPrefixed()
		return err
	case TagDelimited:
		if err := r.EnterObject(); err != nil {
			return err
		}
		defer r.LeaveObject()
		for {
			header, err := r.ReadFieldHeader()
			if err != nil {
				return err
			}
			if header.IsEndObject() {
				return nil
			}
			if header.IsEndBaseFields() {
				continue
			}
			if err := ConsumeUnknownField(r, header); err != nil {
				return err
			}
		}
	case Extended:
		return nil
	default:
		return gerrors.NewErrUnsupportedWireType(nil, field)
	}
}

// ReadFields reads the fields of the current level until an end marker.
// The callback receives the absolute field id and reports whether it consumed
// the field; unconsumed fields are skipped.
func ReadFields(r *Reader, fn func(id uint32, field Field) (bool, error)) error {
	if err := r.EnterObject(); err != nil {
		return err
	}
	defer r.LeaveObject()

	var id uint32
	for {
		field, err := r.ReadFieldHeader()
		if err != nil {
			return err
		}
		if field.IsEndBaseOrEndObject() {
			return nil
		}

		id += field.FieldIDDelta
		handled, err := fn(id, field)
		if err != nil {
			return err
		}
		if !handled {
			if err := ConsumeUnknownField(r, field); err != nil {
				return err
			}
		}
	}
}

// ReadUntilEndObject reads the fields of the current object across base
// levels until EndTagDelimited.
func ReadUntilEndObject(r *Reader, fn func(id uint32, field Field) (bool, error)) error {
	if err := r.EnterObject(); err != nil {
		return err
	}
	defer r.LeaveObject()

	var id uint32
	for {
		field, err := r.ReadFieldHeader()
		if err != nil {
			return err
		}
		if field.IsEndObject() {
			return nil
		}
		if field.IsEndBaseFields() {
			id = 0
			continue
		}

		id += field.FieldIDDelta
		handled, err := fn(id, field)
		if err != nil {
			return err
		}
		if !handled {
			if err := ConsumeUnknownField(r, field); err != nil {
				return err
			}
		}
	}
}
