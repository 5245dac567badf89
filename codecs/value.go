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
	"github.com/tochemey/wirecodec/wire"
)

// ValueTypeCodec serves a struct value with a base codec or a value serializer.
// Struct values have no identity and are never recorded in the reference table.
type ValueTypeCodec struct {
	typ        reflect.Type
	serializer BaseSerializer
	provider   Provider
}

var (
	_ FieldCodec   = (*ValueTypeCodec)(nil)
	_ SealedReader = (*ValueTypeCodec)(nil)
)

// NewValueTypeCodec creates the codec of the given struct type
func NewValueTypeCodec(typ reflect.Type, serializer BaseSerializer, provider Provider) *ValueTypeCodec {
	return &ValueTypeCodec{typ: typ, serializer: serializer, provider: provider}
}

// WriteField writes the struct
func (c *ValueTypeCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return gerrors.NewErrUnexpectedValueType(c.typ, value)
	}
	if rv.Type() != c.typ {
		return writeAsRuntimeType(c.provider, w, delta, expected, value)
	}
	if err := w.WriteStartObject(delta, expected, c.typ); err != nil {
		return err
	}
	if err := c.serializer.SerializeFields(w, rv); err != nil {
		return err
	}
	w.WriteEndObject()
	return nil
}

// ReadValue reads the struct, delegating to the codec of the embedded type when it differs
func (c *ValueTypeCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	return c.ReadValueSealed(r, field)
}

// ReadValueSealed reads the struct without checking the embedded type
func (c *ValueTypeCodec) ReadValueSealed(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}
	out := reflect.New(c.typ).Elem()
	if err := c.serializer.DeserializeFields(r, out); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
