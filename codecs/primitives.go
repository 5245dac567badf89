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
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/wire"
)

// Signed lists the signed integer kinds
type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned lists the unsigned integer kinds
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// IntCodec encodes signed integers as zigzag varints
type IntCodec[T Signed] struct{}

var (
	_ Codec[int64]   = IntCodec[int64]{}
	_ PrimitiveCodec = IntCodec[int64]{}
)

// WriteField writes the integer as a VarInt field
func (c IntCodec[T]) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value T) error {
	if err := w.WriteFieldHeader(delta, expected, reflect.TypeFor[T](), wire.VarInt); err != nil {
		return err
	}
	w.WriteVarInt64(int64(value))
	return nil
}

// ReadValue reads a VarInt field
func (c IntCodec[T]) ReadValue(r *wire.Reader, field wire.Field) (T, error) {
	typ := reflect.TypeFor[T]()
	v, err := readSigned(r, field, typ)
	if err != nil {
		return 0, err
	}
	out := T(v)
	if int64(out) != v {
		return 0, overflow(v, typ)
	}
	return out, nil
}

// WritePrimitive writes an integer of a named type built on T
func (c IntCodec[T]) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.VarInt); err != nil {
		return err
	}
	w.WriteVarInt64(value.Int())
	return nil
}

// ReadPrimitive reads an integer into a value of a named type built on T
func (c IntCodec[T]) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	v, err := readSigned(r, field, into.Type())
	if err != nil {
		return err
	}
	if into.OverflowInt(v) {
		return overflow(v, into.Type())
	}
	into.SetInt(v)
	return nil
}

// UintCodec encodes unsigned integers as varints
type UintCodec[T Unsigned] struct{}

var (
	_ Codec[uint64]  = UintCodec[uint64]{}
	_ PrimitiveCodec = UintCodec[uint64]{}
)

// WriteField writes the integer as a VarInt field
func (c UintCodec[T]) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value T) error {
	if err := w.WriteFieldHeader(delta, expected, reflect.TypeFor[T](), wire.VarInt); err != nil {
		return err
	}
	w.WriteVarUint64(uint64(value))
	return nil
}

// ReadValue reads a VarInt field
func (c UintCodec[T]) ReadValue(r *wire.Reader, field wire.Field) (T, error) {
	typ := reflect.TypeFor[T]()
	v, err := readUnsigned(r, field, typ)
	if err != nil {
		return 0, err
	}
	out := T(v)
	if uint64(out) != v {
		return 0, overflow(v, typ)
	}
	return out, nil
}

// WritePrimitive writes an integer of a named type built on T
func (c UintCodec[T]) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.VarInt); err != nil {
		return err
	}
	w.WriteVarUint64(value.Uint())
	return nil
}

// ReadPrimitive reads an integer into a value of a named type built on T
func (c UintCodec[T]) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	v, err := readUnsigned(r, field, into.Type())
	if err != nil {
		return err
	}
	if into.OverflowUint(v) {
		return overflow(v, into.Type())
	}
	into.SetUint(v)
	return nil
}

// BoolCodec encodes booleans as a VarInt of 0 or 1
type BoolCodec struct{}

var (
	_ Codec[bool]    = BoolCodec{}
	_ PrimitiveCodec = BoolCodec{}
)

// WriteField writes the boolean
func (c BoolCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value bool) error {
	return c.WritePrimitive(w, delta, expected, boolType, reflect.ValueOf(value))
}

// ReadValue reads the boolean
func (c BoolCodec) ReadValue(r *wire.Reader, field wire.Field) (bool, error) {
	v, err := readUnsigned(r, field, boolType)
	return v != 0, err
}

// WritePrimitive writes a boolean of a named type
func (c BoolCodec) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.VarInt); err != nil {
		return err
	}
	if value.Bool() {
		w.WriteVarUint32(1)
	} else {
		w.WriteVarUint32(0)
	}
	return nil
}

// ReadPrimitive reads a boolean into a value of a named type
func (c BoolCodec) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	v, err := readUnsigned(r, field, into.Type())
	if err != nil {
		return err
	}
	into.SetBool(v != 0)
	return nil
}

// Float32Codec encodes float32 values as Fixed32 fields
type Float32Codec struct{}

var (
	_ Codec[float32] = Float32Codec{}
	_ PrimitiveCodec = Float32Codec{}
)

// WriteField writes the float
func (c Float32Codec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value float32) error {
	return c.WritePrimitive(w, delta, expected, float32Type, reflect.ValueOf(value))
}

// ReadValue reads the float
func (c Float32Codec) ReadValue(r *wire.Reader, field wire.Field) (float32, error) {
	out := reflect.New(float32Type).Elem()
	if err := c.ReadPrimitive(r, field, out); err != nil {
		return 0, err
	}
	return float32(out.Float()), nil
}

// WritePrimitive writes a float of a named type
func (c Float32Codec) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.Fixed32); err != nil {
		return err
	}
	w.WriteFixed32(math.Float32bits(float32(value.Float())))
	return nil
}

// ReadPrimitive reads a float into a value of a named type
func (c Float32Codec) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	if field.WireType != wire.Fixed32 {
		return unexpectedWireType(into.Type(), field)
	}
	bits, err := r.ReadFixed32()
	if err != nil {
		return err
	}
	into.SetFloat(float64(math.Float32frombits(bits)))
	return nil
}

// Float64Codec encodes float64 values as Fixed64 fields
type Float64Codec struct{}

var (
	_ Codec[float64] = Float64Codec{}
	_ PrimitiveCodec = Float64Codec{}
)

// WriteField writes the float
func (c Float64Codec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value float64) error {
	return c.WritePrimitive(w, delta, expected, float64Type, reflect.ValueOf(value))
}

// ReadValue reads the float
func (c Float64Codec) ReadValue(r *wire.Reader, field wire.Field) (float64, error) {
	out := reflect.New(float64Type).Elem()
	if err := c.ReadPrimitive(r, field, out); err != nil {
		return 0, err
	}
	return out.Float(), nil
}

// WritePrimitive writes a float of a named type
func (c Float64Codec) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.Fixed64); err != nil {
		return err
	}
	w.WriteFixed64(math.Float64bits(value.Float()))
	return nil
}

// ReadPrimitive reads a float into a value of a named type.
// Fixed32 payloads are widened.
func (c Float64Codec) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	switch field.WireType {
	case wire.Fixed64:
		bits, err := r.ReadFixed64()
		if err != nil {
			return err
		}
		into.SetFloat(math.Float64frombits(bits))
	case wire.Fixed32:
		bits, err := r.ReadFixed32()
		if err != nil {
			return err
		}
		into.SetFloat(float64(math.Float32frombits(bits)))
	default:
		return unexpectedWireType(into.Type(), field)
	}
	return nil
}

// Complex64Codec encodes complex64 values as Fixed64 fields holding both parts
type Complex64Codec struct{}

var (
	_ Codec[complex64] = Complex64Codec{}
	_ PrimitiveCodec   = Complex64Codec{}
)

// WriteField writes the complex number
func (c Complex64Codec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value complex64) error {
	return c.WritePrimitive(w, delta, expected, complex64Type, reflect.ValueOf(value))
}

// ReadValue reads the complex number
func (c Complex64Codec) ReadValue(r *wire.Reader, field wire.Field) (complex64, error) {
	out := reflect.New(complex64Type).Elem()
	if err := c.ReadPrimitive(r, field, out); err != nil {
		return 0, err
	}
	return complex64(out.Complex()), nil
}

// WritePrimitive writes a complex number of a named type
func (c Complex64Codec) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.Fixed64); err != nil {
		return err
	}
	v := value.Complex()
	w.WriteFixed64(uint64(math.Float32bits(float32(real(v)))) | uint64(math.Float32bits(float32(imag(v))))<<32)
	return nil
}

// ReadPrimitive reads a complex number into a value of a named type
func (c Complex64Codec) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	if field.WireType != wire.Fixed64 {
		return unexpectedWireType(into.Type(), field)
	}
	bits, err := r.ReadFixed64()
	if err != nil {
		return err
	}
	re := math.Float32frombits(uint32(bits))
	im := math.Float32frombits(uint32(bits >> 32))
	into.SetComplex(complex(float64(re), float64(im)))
	return nil
}

// Complex128Codec encodes complex128 values as 16 length-prefixed bytes
type Complex128Codec struct{}

var (
	_ Codec[complex128] = Complex128Codec{}
	_ PrimitiveCodec    = Complex128Codec{}
)

// WriteField writes the complex number
func (c Complex128Codec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value complex128) error {
	return c.WritePrimitive(w, delta, expected, complex128Type, reflect.ValueOf(value))
}

// ReadValue reads the complex number
func (c Complex128Codec) ReadValue(r *wire.Reader, field wire.Field) (complex128, error) {
	out := reflect.New(complex128Type).Elem()
	if err := c.ReadPrimitive(r, field, out); err != nil {
		return 0, err
	}
	return out.Complex(), nil
}

// WritePrimitive writes a complex number of a named type
func (c Complex128Codec) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.LengthPrefixed); err != nil {
		return err
	}
	v := value.Complex()
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], math.Float64bits(real(v)))
	binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(imag(v)))
	w.WriteLengthPrefixed(buf[:])
	return nil
}

// ReadPrimitive reads a complex number into a value of a named type
func (c Complex128Codec) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	if field.WireType != wire.LengthPrefixed {
		return unexpectedWireType(into.Type(), field)
	}
	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return err
	}
	if len(raw) != 16 {
		return gerrors.NewErrInvalidLength(into.Type(), uint64(len(raw)))
	}
	re := math.Float64frombits(binary.LittleEndian.Uint64(raw[:8]))
	im := math.Float64frombits(binary.LittleEndian.Uint64(raw[8:]))
	into.SetComplex(complex(re, im))
	return nil
}

// StringCodec encodes strings as LengthPrefixed fields
type StringCodec struct{}

var (
	_ Codec[string]  = StringCodec{}
	_ PrimitiveCodec = StringCodec{}
)

// WriteField writes the string
func (c StringCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value string) error {
	if err := w.WriteFieldHeader(delta, expected, stringType, wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteString(value)
	return nil
}

// ReadValue reads the string
func (c StringCodec) ReadValue(r *wire.Reader, field wire.Field) (string, error) {
	if field.WireType != wire.LengthPrefixed {
		return "", unexpectedWireType(stringType, field)
	}
	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// WritePrimitive writes a string of a named type
func (c StringCodec) WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error {
	if err := w.WriteFieldHeader(delta, expected, actual, wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteString(value.String())
	return nil
}

// ReadPrimitive reads a string into a value of a named type
func (c StringCodec) ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error {
	v, err := c.ReadValue(r, field)
	if err != nil {
		return err
	}
	into.SetString(v)
	return nil
}

var (
	boolType       = reflect.TypeFor[bool]()
	float32Type    = reflect.TypeFor[float32]()
	float64Type    = reflect.TypeFor[float64]()
	complex64Type  = reflect.TypeFor[complex64]()
	complex128Type = reflect.TypeFor[complex128]()
	stringType     = reflect.TypeFor[string]()
)

func readSigned(r *wire.Reader, field wire.Field, typ reflect.Type) (int64, error) {
	if field.WireType != wire.VarInt {
		return 0, unexpectedWireType(typ, field)
	}
	return r.ReadVarInt64()
}

func readUnsigned(r *wire.Reader, field wire.Field, typ reflect.Type) (uint64, error) {
	if field.WireType != wire.VarInt {
		return 0, unexpectedWireType(typ, field)
	}
	return r.ReadVarUint64()
}

func overflow[V int64 | uint64](v V, typ reflect.Type) error {
	return gerrors.NewErrMalformedPayload(fmt.Errorf("value %d overflows %s", v, typ))
}
