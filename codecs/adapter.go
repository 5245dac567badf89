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

// Untyped erases the type of a codec
func Untyped[T any](codec Codec[T]) FieldCodec {
	if fc, ok := any(codec).(FieldCodec); ok {
		return fc
	}
	return &untypedCodec[T]{inner: codec, typ: reflect.TypeFor[T]()}
}

type untypedCodec[T any] struct {
	inner Codec[T]
	typ   reflect.Type
}

var _ Wrapped = (*untypedCodec[int])(nil)

func (x *untypedCodec[T]) Inner() any {
	return x.inner
}

func (x *untypedCodec[T]) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	if value == nil {
		var zero T
		return x.inner.WriteField(w, delta, expected, zero)
	}
	typed, ok := value.(T)
	if !ok {
		return gerrors.NewErrUnexpectedValueType(x.typ, value)
	}
	return x.inner.WriteField(w, delta, expected, typed)
}

func (x *untypedCodec[T]) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	return x.inner.ReadValue(r, field)
}

// Typed restores the type of a type-erased codec
func Typed[T any](codec FieldCodec) Codec[T] {
	return &typedCodec[T]{inner: codec, typ: reflect.TypeFor[T]()}
}

type typedCodec[T any] struct {
	inner FieldCodec
	typ   reflect.Type
}

var _ Wrapped = (*typedCodec[int])(nil)

func (x *typedCodec[T]) Inner() any {
	return x.inner
}

func (x *typedCodec[T]) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value T) error {
	return x.inner.WriteField(w, delta, expected, value)
}

func (x *typedCodec[T]) ReadValue(r *wire.Reader, field wire.Field) (T, error) {
	var zero T
	value, err := x.inner.ReadValue(r, field)
	if err != nil || value == nil {
		return zero, err
	}
	typed, ok := value.(T)
	if !ok {
		return zero, gerrors.NewErrUnexpectedValueType(x.typ, value)
	}
	return typed, nil
}

// Adapt returns the codec as a Codec[T]: directly when it already is one,
// through its wrapped codec when that one is, otherwise through Typed.
func Adapt[T any](raw FieldCodec) Codec[T] {
	if codec, ok := any(raw).(Codec[T]); ok {
		return codec
	}
	if wrapped, ok := raw.(Wrapped); ok {
		if codec, ok := wrapped.Inner().(Codec[T]); ok {
			return codec
		}
	}
	return Typed[T](raw)
}

// Unwrap returns the innermost codec behind type-erasing adapters
func Unwrap(codec any) any {
	for {
		wrapped, ok := codec.(Wrapped)
		if !ok {
			return codec
		}
		codec = wrapped.Inner()
	}
}

// UntypedBase erases the type of a base codec
func UntypedBase[T any](codec BaseCodec[T]) BaseSerializer {
	return &untypedBase[T]{inner: codec, typ: reflect.TypeFor[T]()}
}

type untypedBase[T any] struct {
	inner BaseCodec[T]
	typ   reflect.Type
}

func (x *untypedBase[T]) Inner() any {
	return x.inner
}

func (x *untypedBase[T]) SerializeFields(w *wire.Writer, value reflect.Value) error {
	ptr, err := x.pointer(value)
	if err != nil {
		return err
	}
	return x.inner.Serialize(w, ptr)
}

func (x *untypedBase[T]) DeserializeFields(r *wire.Reader, value reflect.Value) error {
	if !value.CanAddr() {
		return gerrors.NewErrUnexpectedValueType(x.typ, value.Interface())
	}
	ptr, err := x.pointer(value)
	if err != nil {
		return err
	}
	return x.inner.Deserialize(r, ptr)
}

func (x *untypedBase[T]) pointer(value reflect.Value) (*T, error) {
	if value.Type() != x.typ {
		return nil, gerrors.NewErrUnexpectedValueType(x.typ, value.Interface())
	}
	if value.CanAddr() {
		return value.Addr().Interface().(*T), nil
	}
	out := new(T)
	reflect.ValueOf(out).Elem().Set(value)
	return out, nil
}

// BindGeneralized binds a generalized codec to one of the types it supports so
// that reads of fields without an embedded type know what to produce
func BindGeneralized(codec GeneralizedCodec, typ reflect.Type) FieldCodec {
	return &boundCodec{inner: codec, typ: typ}
}

type boundCodec struct {
	inner GeneralizedCodec
	typ   reflect.Type
}

func (x *boundCodec) Inner() any {
	return x.inner
}

func (x *boundCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	return x.inner.WriteField(w, delta, expected, value)
}

func (x *boundCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if !field.HasFieldType() {
		field.FieldType = x.typ
	}
	return x.inner.ReadValue(r, field)
}
