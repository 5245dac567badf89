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

// Converter translates a type that cannot be serialized directly to and from
// a serializable surrogate
type Converter[T, S any] interface {
	ToSurrogate(value T) (S, error)
	FromSurrogate(surrogate S) (T, error)
}

// Populator is implemented by converters able to update an existing instance
// from a surrogate. It is required when the converter serves a declared base.
type Populator[T, S any] interface {
	Populate(surrogate S, value *T) error
}

// SurrogateBinding is the type-erased form of a Converter
type SurrogateBinding interface {
	// TargetType returns the converted type
	TargetType() reflect.Type
	// SurrogateType returns the type of the surrogate
	SurrogateType() reflect.Type
	// ToSurrogate converts a target value to its surrogate
	ToSurrogate(value reflect.Value) (reflect.Value, error)
	// FromSurrogate converts a surrogate to a target value
	FromSurrogate(surrogate reflect.Value) (reflect.Value, error)
	// CanPopulate reports whether Populate is supported
	CanPopulate() bool
	// Populate updates an addressable target value from a surrogate
	Populate(surrogate reflect.Value, target reflect.Value) error
}

// Bind erases the types of a Converter
func Bind[T, S any](converter Converter[T, S]) SurrogateBinding {
	return &typedBinding[T, S]{
		converter: converter,
		target:    reflect.TypeFor[T](),
		surrogate: reflect.TypeFor[S](),
	}
}

type typedBinding[T, S any] struct {
	converter Converter[T, S]
	target    reflect.Type
	surrogate reflect.Type
}

func (x *typedBinding[T, S]) TargetType() reflect.Type {
	return x.target
}

func (x *typedBinding[T, S]) SurrogateType() reflect.Type {
	return x.surrogate
}

func (x *typedBinding[T, S]) ToSurrogate(value reflect.Value) (reflect.Value, error) {
	target, err := as[T](x.target, value)
	if err != nil {
		return reflect.Value{}, err
	}
	surrogate, err := x.converter.ToSurrogate(target)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&surrogate).Elem(), nil
}

func (x *typedBinding[T, S]) FromSurrogate(surrogate reflect.Value) (reflect.Value, error) {
	s, err := as[S](x.surrogate, surrogate)
	if err != nil {
		return reflect.Value{}, err
	}
	target, err := x.converter.FromSurrogate(s)
	if err != nil {
		return reflect.Value{}, err
	}
	return reflect.ValueOf(&target).Elem(), nil
}

func (x *typedBinding[T, S]) CanPopulate() bool {
	_, ok := x.converter.(Populator[T, S])
	return ok
}

func (x *typedBinding[T, S]) Populate(surrogate reflect.Value, target reflect.Value) error {
	populator, ok := x.converter.(Populator[T, S])
	if !ok {
		return gerrors.NewErrMissingPopulateCapability(x.target)
	}
	s, err := as[S](x.surrogate, surrogate)
	if err != nil {
		return err
	}
	if !target.CanAddr() || target.Type() != x.target {
		return gerrors.NewErrUnexpectedValueType(x.target, target.Interface())
	}
	return populator.Populate(s, target.Addr().Interface().(*T))
}

// SurrogateFuncs builds a SurrogateBinding out of reflective functions.
// It serves generic families, whose converters must work on any instantiation.
type SurrogateFuncs struct {
	Target    reflect.Type
	Surrogate reflect.Type
	To        func(value reflect.Value) (reflect.Value, error)
	From      func(surrogate reflect.Value) (reflect.Value, error)
	// Fill is optional and enables the base codec role
	Fill func(surrogate reflect.Value, target reflect.Value) error
}

var _ SurrogateBinding = (*SurrogateFuncs)(nil)

// TargetType returns the converted type
func (x *SurrogateFuncs) TargetType() reflect.Type { return x.Target }

// SurrogateType returns the type of the surrogate
func (x *SurrogateFuncs) SurrogateType() reflect.Type { return x.Surrogate }

// ToSurrogate converts a target value to its surrogate
func (x *SurrogateFuncs) ToSurrogate(value reflect.Value) (reflect.Value, error) {
	return x.To(value)
}

// FromSurrogate converts a surrogate to a target value
func (x *SurrogateFuncs) FromSurrogate(surrogate reflect.Value) (reflect.Value, error) {
	return x.From(surrogate)
}

// CanPopulate reports whether Fill is set
func (x *SurrogateFuncs) CanPopulate() bool { return x.Fill != nil }

// Populate updates an addressable target value from a surrogate
func (x *SurrogateFuncs) Populate(surrogate reflect.Value, target reflect.Value) error {
	if x.Fill == nil {
		return gerrors.NewErrMissingPopulateCapability(x.Target)
	}
	return x.Fill(surrogate, target)
}

// SurrogateCodec serves a reference type through its surrogate. The object
// frame carries the surrogate as field 0 and takes part in reference tracking.
// When the codec type is a pointer to the converted type, the pointee is converted.
type SurrogateCodec struct {
	typ      reflect.Type
	binding  SurrogateBinding
	provider Provider
	indirect bool
}

var _ FieldCodec = (*SurrogateCodec)(nil)

// NewSurrogateCodec creates the codec of the given reference type
func NewSurrogateCodec(typ reflect.Type, binding SurrogateBinding, provider Provider) *SurrogateCodec {
	return &SurrogateCodec{
		typ:      typ,
		binding:  binding,
		provider: provider,
		indirect: typ != binding.TargetType(),
	}
}

// WriteField writes the surrogate of the value, or a reference when the value was already written
func (c *SurrogateCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
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

	target := rv
	if c.indirect {
		target = rv.Elem()
	}
	return writeSurrogateObject(c.provider, c.binding, w, delta, expected, c.typ, target)
}

// ReadValue reads the surrogate and converts it back
func (c *SurrogateCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}

	target, err := readSurrogateObject(c.provider, c.binding, r)
	if err != nil {
		return nil, err
	}
	if c.indirect {
		ptr := reflect.New(c.binding.TargetType())
		ptr.Elem().Set(target)
		target = ptr
	}

	out := target.Interface()
	RecordObject(r, field, out)
	return out, nil
}

// ValueTypeSurrogateCodec serves a value type through its surrogate, without reference tracking
type ValueTypeSurrogateCodec struct {
	typ      reflect.Type
	binding  SurrogateBinding
	provider Provider
}

var _ FieldCodec = (*ValueTypeSurrogateCodec)(nil)

// NewValueTypeSurrogateCodec creates the codec of the given value type
func NewValueTypeSurrogateCodec(typ reflect.Type, binding SurrogateBinding, provider Provider) *ValueTypeSurrogateCodec {
	return &ValueTypeSurrogateCodec{typ: typ, binding: binding, provider: provider}
}

// WriteField writes the surrogate of the value
func (c *ValueTypeSurrogateCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return gerrors.NewErrUnexpectedValueType(c.typ, value)
	}
	if rv.Type() != c.typ {
		return writeAsRuntimeType(c.provider, w, delta, expected, value)
	}
	return writeSurrogateObject(c.provider, c.binding, w, delta, expected, c.typ, rv)
}

// ReadValue reads the surrogate and converts it back
func (c *ValueTypeSurrogateCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}
	target, err := readSurrogateObject(c.provider, c.binding, r)
	if err != nil {
		return nil, err
	}
	return target.Interface(), nil
}

// SurrogateBaseCodec lets a converter serve a declared base. Serialization
// works with any converter; deserialization populates the existing instance
// and fails when the converter cannot populate.
type SurrogateBaseCodec struct {
	binding  SurrogateBinding
	provider Provider
}

var _ BaseSerializer = (*SurrogateBaseCodec)(nil)

// NewSurrogateBaseCodec creates the base codec of the converted type
func NewSurrogateBaseCodec(binding SurrogateBinding, provider Provider) *SurrogateBaseCodec {
	return &SurrogateBaseCodec{binding: binding, provider: provider}
}

// SerializeFields writes the surrogate of the value as field 0
func (c *SurrogateBaseCodec) SerializeFields(w *wire.Writer, value reflect.Value) error {
	return writeSurrogate(c.provider, c.binding, w, value)
}

// DeserializeFields populates the value from its surrogate
func (c *SurrogateBaseCodec) DeserializeFields(r *wire.Reader, value reflect.Value) error {
	if !c.binding.CanPopulate() {
		return gerrors.NewErrMissingPopulateCapability(c.binding.TargetType())
	}
	surrogate, err := readSurrogate(c.provider, c.binding, r, wire.ReadFields)
	if err != nil {
		return err
	}
	return c.binding.Populate(surrogate, value)
}

func writeSurrogateObject(provider Provider, binding SurrogateBinding, w *wire.Writer, delta uint32, expected, actual reflect.Type, target reflect.Value) error {
	if err := w.WriteStartObject(delta, expected, actual); err != nil {
		return err
	}
	if err := writeSurrogate(provider, binding, w, target); err != nil {
		return err
	}
	w.WriteEndObject()
	return nil
}

func writeSurrogate(provider Provider, binding SurrogateBinding, w *wire.Writer, target reflect.Value) error {
	surrogate, err := binding.ToSurrogate(target)
	if err != nil {
		return err
	}
	codec, err := provider.GetCodec(binding.SurrogateType())
	if err != nil {
		return err
	}
	return codec.WriteField(w, 0, binding.SurrogateType(), surrogate.Interface())
}

func readSurrogateObject(provider Provider, binding SurrogateBinding, r *wire.Reader) (reflect.Value, error) {
	surrogate, err := readSurrogate(provider, binding, r, wire.ReadUntilEndObject)
	if err != nil {
		return reflect.Value{}, err
	}
	return binding.FromSurrogate(surrogate)
}

type fieldLoop func(r *wire.Reader, fn func(id uint32, field wire.Field) (bool, error)) error

func readSurrogate(provider Provider, binding SurrogateBinding, r *wire.Reader, loop fieldLoop) (reflect.Value, error) {
	surrogateType := binding.SurrogateType()
	surrogate := reflect.New(surrogateType).Elem()

	err := loop(r, func(id uint32, header wire.Field) (bool, error) {
		if id != 0 {
			return false, nil
		}
		codec, err := provider.GetCodec(surrogateType)
		if err != nil {
			return true, err
		}
		value, err := codec.ReadValue(r, header)
		if err != nil {
			return true, err
		}
		return true, SetValue(surrogate, value)
	})
	return surrogate, err
}

// as converts a reflected value to T, absent values meaning the zero value
func as[T any](typ reflect.Type, value reflect.Value) (T, error) {
	var zero T
	if !value.IsValid() {
		return zero, nil
	}
	if value.Type() != typ {
		if !value.Type().AssignableTo(typ) {
			return zero, gerrors.NewErrUnexpectedValueType(typ, value.Interface())
		}
		converted := reflect.New(typ).Elem()
		converted.Set(value)
		value = converted
	}
	out, ok := value.Interface().(T)
	if !ok {
		// interface typed T holding nil
		return zero, nil
	}
	return out, nil
}
