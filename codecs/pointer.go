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
	"reflect"

	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

// PointerCodec encodes a pointer as an object holding the pointee as field 0.
// It serves pointers to types that have no base codec of their own.
type PointerCodec struct {
	typ      reflect.Type
	elem     reflect.Type
	provider Provider
}

var (
	_ FieldCodec   = (*PointerCodec)(nil)
	_ SealedReader = (*PointerCodec)(nil)
)

// NewPointerCodec creates a PointerCodec for the given pointer type
func NewPointerCodec(typ reflect.Type, provider Provider) *PointerCodec {
	return &PointerCodec{typ: typ, elem: typ.Elem(), provider: provider}
}

// WriteField writes the pointer
func (c *PointerCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
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

	codec, err := c.provider.GetCodec(c.elem)
	if err != nil {
		return err
	}
	if err := w.WriteStartObject(delta, expected, c.typ); err != nil {
		return err
	}
	if err := codec.WriteField(w, 0, c.elem, rv.Elem().Interface()); err != nil {
		return err
	}
	w.WriteEndObject()
	return nil
}

// ReadValue reads the pointer
func (c *PointerCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	return c.ReadValueSealed(r, field)
}

// ReadValueSealed reads the pointer without checking the embedded type
func (c *PointerCodec) ReadValueSealed(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}

	out := reflect.New(c.elem)
	RecordObject(r, field, out.Interface())

	err := wire.ReadUntilEndObject(r, func(id uint32, header wire.Field) (bool, error) {
		if id != 0 {
			return false, nil
		}
		codec, err := c.provider.GetCodec(c.elem)
		if err != nil {
			return true, err
		}
		value, err := codec.ReadValue(r, header)
		if err != nil {
			return true, err
		}
		return true, SetValue(out.Elem(), value)
	})
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// PointerCodecs specializes PointerCodec for pointers whose pointee has a codec
type PointerCodecs struct {
	provider Provider
}

var _ SpecializableCodec = (*PointerCodecs)(nil)

// NewPointerCodecs creates the pointer extension. Struct pointees are only
// accepted when the provider resolves a codec for them.
func NewPointerCodecs(provider Provider) *PointerCodecs {
	return &PointerCodecs{provider: provider}
}

// IsSupportedType returns true for pointers to types with a codec
func (x *PointerCodecs) IsSupportedType(typ reflect.Type) bool {
	if typ.Kind() != reflect.Pointer {
		return false
	}
	if typ.Elem().Kind() != reflect.Struct {
		return true
	}
	codec, err := x.provider.TryGetCodec(typ.Elem())
	return err == nil && codec != nil
}

// GetSpecializedCodec returns the PointerCodec of the given pointer type
func (x *PointerCodecs) GetSpecializedCodec(typ reflect.Type, provider Provider) (FieldCodec, error) {
	return NewPointerCodec(typ, provider), nil
}
