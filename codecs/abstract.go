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

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

// AbstractTypeCodec serves interface types. Values are written by the codec of
// their runtime type, which embeds that type in the field header. Reads
// dispatch on the embedded type.
type AbstractTypeCodec struct {
	typ      reflect.Type
	provider Provider
}

var _ FieldCodec = (*AbstractTypeCodec)(nil)

// NewAbstractTypeCodec creates the codec of the given interface type
func NewAbstractTypeCodec(typ reflect.Type, provider Provider) *AbstractTypeCodec {
	return &AbstractTypeCodec{typ: typ, provider: provider}
}

// NewObjectCodec creates the codec of the empty interface
func NewObjectCodec(provider Provider) *AbstractTypeCodec {
	return NewAbstractTypeCodec(reflect.TypeFor[any](), provider)
}

// WriteField writes the value with the codec of its runtime type
func (c *AbstractTypeCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	if identity.IsNil(reflect.ValueOf(value)) {
		w.WriteNullReference(delta)
		return nil
	}
	if expected == nil {
		expected = c.typ
	}
	return writeAsRuntimeType(c.provider, w, delta, expected, value)
}

// ReadValue reads the value with the codec of the embedded type
func (c *AbstractTypeCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if !field.HasFieldType() {
		return nil, gerrors.NewErrFieldTypeMissing(c.typ)
	}
	if !field.FieldType.Implements(c.typ) {
		return nil, gerrors.NewErrUnexpectedValueType(c.typ, reflect.Zero(field.FieldType).Interface())
	}
	return readAsFieldType(c.provider, r, field)
}

// VoidCodec is returned for an absent type. It writes nulls and reads references only.
type VoidCodec struct{}

var _ FieldCodec = VoidCodec{}

// WriteField writes a null reference
func (VoidCodec) WriteField(w *wire.Writer, delta uint32, _ reflect.Type, value any) error {
	if value != nil {
		return gerrors.NewErrUnexpectedValueType(nil, value)
	}
	w.WriteNullReference(delta)
	return nil
}

// ReadValue reads a reference field
func (VoidCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType != wire.Reference {
		return nil, unexpectedWireType(nil, field)
	}
	return ReadReference(r, field)
}
