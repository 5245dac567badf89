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

package codecs

import (
	"fmt"
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

// SliceCodec encodes slices as an object holding the length as field 0
// followed by the elements as field 1.
type SliceCodec struct {
	typ      reflect.Type
	elem     reflect.Type
	provider Provider
}

var (
	_ FieldCodec   = (*SliceCodec)(nil)
	_ SealedReader = (*SliceCodec)(nil)
)

// NewSliceCodec creates a SliceCodec for the given slice type
func NewSliceCodec(typ reflect.Type, provider Provider) *SliceCodec {
	return &SliceCodec{typ: typ, elem: typ.Elem(), provider: provider}
}

// WriteField writes the slice
func (c *SliceCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if identity.IsNil(rv) {
		w.WriteNullReference(delta)
		return nil
	}
	if rv.Type() != c.typ {
		return writeAsRuntimeType(c.provider, w, delta, expected, value)
	}
	if TryWriteReferenceField(w, delta, rv) {
		return nil
	}

	if err := w.WriteStartObject(delta, expected, c.typ); err != nil {
		return err
	}
	length := rv.Len()
	w.WriteFieldHeaderExpected(0, wire.VarInt)
	w.WriteVarUint64(uint64(length))

	if length > 0 {
		codec, err := c.provider.GetCodec(c.elem)
		if err != nil {
			return err
		}
		next := uint32(1)
		for i := range length {
			if err := codec.WriteField(w, next, c.elem, rv.Index(i).Interface()); err != nil {
				return fmt.Errorf("element %d of %s: %w", i, c.typ, err)
			}
			next = 0
		}
	}

	w.WriteEndObject()
	return nil
}

// ReadValue reads the slice
func (c *SliceCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	return c.ReadValueSealed(r, field)
}

// ReadValueSealed reads the slice without checking the embedded type
func (c *SliceCodec) ReadValueSealed(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}

	var (
		out   reflect.Value
		index int
		codec FieldCodec
	)

	err := wire.ReadUntilEndObject(r, func(id uint32, header wire.Field) (bool, error) {
		switch id {
		case 0:
			if header.WireType != wire.VarInt || out.IsValid() {
				return false, nil
			}
			length, err := r.ReadVarUint64()
			if err != nil {
				return true, err
			}
			if err := r.CheckLength(c.typ, length); err != nil {
				return true, err
			}
			out = reflect.MakeSlice(c.typ, int(length), int(length))
			RecordObject(r, field, out.Interface())
			return true, nil
		case 1:
			if !out.IsValid() {
				return true, gerrors.NewErrMalformedPayload(fmt.Errorf("%s elements precede their length", c.typ))
			}
			if index >= out.Len() {
				return false, nil
			}
			if codec == nil {
				var err error
				if codec, err = c.provider.GetCodec(c.elem); err != nil {
					return true, err
				}
			}
			value, err := codec.ReadValue(r, header)
			if err != nil {
				return true, err
			}
			if err := SetValue(out.Index(index), value); err != nil {
				return true, err
			}
			index++
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}

	if !out.IsValid() {
		out = reflect.MakeSlice(c.typ, 0, 0)
	}
	return out.Interface(), nil
}
