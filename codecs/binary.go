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
	"encoding"
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

var (
	binaryMarshalerType   = reflect.TypeFor[encoding.BinaryMarshaler]()
	binaryUnmarshalerType = reflect.TypeFor[encoding.BinaryUnmarshaler]()
)

// BinaryMarshalerCodec encodes types implementing encoding.BinaryMarshaler,
// whose pointer implements encoding.BinaryUnmarshaler, as LengthPrefixed fields.
// Pointers take part in reference tracking, values do not.
type BinaryMarshalerCodec struct{}

var _ GeneralizedCodec = BinaryMarshalerCodec{}

// IsSupportedType returns true for marshalable value types and pointers to them
func (BinaryMarshalerCodec) IsSupportedType(typ reflect.Type) bool {
	if typ.Kind() == reflect.Pointer {
		elem := typ.Elem()
		return elem.Kind() != reflect.Pointer && typ.Implements(binaryMarshalerType) && typ.Implements(binaryUnmarshalerType)
	}
	return typ.Kind() != reflect.Interface &&
		typ.Implements(binaryMarshalerType) &&
		reflect.PointerTo(typ).Implements(binaryUnmarshalerType)
}

// WriteField writes the binary form of the value
func (c BinaryMarshalerCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && identity.IsNil(rv)) {
		w.WriteNullReference(delta)
		return nil
	}
	marshaler, ok := value.(encoding.BinaryMarshaler)
	if !ok {
		return gerrors.NewErrUnexpectedValueType(binaryMarshalerType, value)
	}
	if rv.Kind() == reflect.Pointer && TryWriteReferenceField(w, delta, rv) {
		return nil
	}

	raw, err := marshaler.MarshalBinary()
	if err != nil {
		return err
	}
	if err := w.WriteFieldHeader(delta, expected, rv.Type(), wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteLengthPrefixed(raw)
	return nil
}

// ReadValue reads a value of the embedded type
func (c BinaryMarshalerCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.LengthPrefixed {
		return nil, unexpectedWireType(field.FieldType, field)
	}
	if !field.HasFieldType() {
		return nil, gerrors.NewErrFieldTypeMissing(binaryMarshalerType)
	}
	typ := field.FieldType
	if !c.IsSupportedType(typ) {
		return nil, gerrors.NewErrUnsupportedWireType(typ, field)
	}

	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return nil, err
	}

	if typ.Kind() == reflect.Pointer {
		out := reflect.New(typ.Elem())
		if err := out.Interface().(encoding.BinaryUnmarshaler).UnmarshalBinary(raw); err != nil {
			return nil, gerrors.NewErrMalformedPayload(err)
		}
		RecordObject(r, field, out.Interface())
		return out.Interface(), nil
	}

	out := reflect.New(typ)
	if err := out.Interface().(encoding.BinaryUnmarshaler).UnmarshalBinary(raw); err != nil {
		return nil, gerrors.NewErrMalformedPayload(err)
	}
	return out.Elem().Interface(), nil
}
