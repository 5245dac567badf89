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

// EnumCodec encodes a named type built on a basic kind with the codec of
// the underlying kind
type EnumCodec struct {
	typ   reflect.Type
	inner PrimitiveCodec
}

var _ FieldCodec = (*EnumCodec)(nil)

// NewEnumCodec creates an EnumCodec from the codec of the underlying basic type
func NewEnumCodec(typ reflect.Type, underlying FieldCodec) (*EnumCodec, error) {
	inner, ok := Unwrap(underlying).(PrimitiveCodec)
	if !ok {
		return nil, gerrors.NewErrUnsupportedType(typ, "built on a type without a primitive codec")
	}
	return &EnumCodec{typ: typ, inner: inner}, nil
}

// WriteField writes the value with the codec of the underlying kind
func (c *EnumCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Type() != c.typ {
		return gerrors.NewErrUnexpectedValueType(c.typ, value)
	}
	return c.inner.WritePrimitive(w, delta, expected, c.typ, rv)
}

// ReadValue reads the value with the codec of the underlying kind
func (c *EnumCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	out := reflect.New(c.typ).Elem()
	if err := c.inner.ReadPrimitive(r, field, out); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
