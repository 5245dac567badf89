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

// TryWriteReferenceField writes a null field for nil references and a
// Reference field for objects already written in this operation. It returns
// false when the caller must write the object itself, in which case the object
// is recorded against the id its header will consume.
func TryWriteReferenceField(w *wire.Writer, delta uint32, value reflect.Value) bool {
	if identity.IsNil(value) {
		w.WriteNullReference(delta)
		return true
	}

	refs := w.Session().References()
	if id, ok := refs.TryGetReferenceID(value); ok {
		w.WriteReference(delta, id)
		return true
	}

	refs.RecordWrite(value)
	return false
}

// ReadReference resolves a Reference field to the object recorded under its id.
// A zero id yields nil.
func ReadReference(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType != wire.Reference {
		return nil, gerrors.NewErrUnsupportedWireType(field.FieldType, field)
	}
	id, err := r.ReadVarUint32()
	if err != nil {
		return nil, err
	}
	if id == 0 {
		return nil, nil
	}
	value, ok := r.Session().References().Lookup(id)
	if !ok {
		return nil, gerrors.NewErrReferenceNotFound(id)
	}
	return value, nil
}

// RecordObject records the object being read under the id reserved by its header.
// It must be called before the members of the object are read.
func RecordObject(r *wire.Reader, field wire.Field, value any) {
	r.Session().References().Record(field.ReferenceID, value)
}

// SetValue assigns a decoded value to a destination, nil meaning the zero value
func SetValue(dst reflect.Value, value any) error {
	if value == nil {
		dst.SetZero()
		return nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(dst.Type()) {
		return gerrors.NewErrUnexpectedValueType(dst.Type(), value)
	}
	dst.Set(rv)
	return nil
}

// ValueOf converts a decoded value to a reflect.Value of the given type
func ValueOf(typ reflect.Type, value any) (reflect.Value, error) {
	out := reflect.New(typ).Elem()
	if err := SetValue(out, value); err != nil {
		return reflect.Value{}, err
	}
	return out, nil
}

// unexpectedWireType builds the error returned when a codec cannot read a field
func unexpectedWireType(typ reflect.Type, field wire.Field) error {
	return gerrors.NewErrUnsupportedWireType(typ, field)
}

// writeAsRuntimeType hands a value whose type differs from the codec type to
// the codec of its runtime type
func writeAsRuntimeType(provider Provider, w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	codec, err := provider.GetCodec(reflect.TypeOf(value))
	if err != nil {
		return err
	}
	return codec.WriteField(w, delta, expected, value)
}

// readAsFieldType hands a field whose embedded type differs from the codec
// type to the codec of the embedded type. Writers only embed runtime types,
// so an interface there can only come from a corrupt payload.
func readAsFieldType(provider Provider, r *wire.Reader, field wire.Field) (any, error) {
	if field.FieldType.Kind() == reflect.Interface {
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("embedded type %s is an interface", field.FieldType))
	}
	codec, err := provider.GetCodec(field.FieldType)
	if err != nil {
		return nil, err
	}
	return codec.ReadValue(r, field)
}

// differs reports whether the embedded type of a field names another type than the codec's
func differs(field wire.Field, typ reflect.Type) bool {
	return field.FieldType != nil && field.FieldType != typ
}
