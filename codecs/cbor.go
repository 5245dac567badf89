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

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/fxamacker/cbor/v2"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

var (
	cborEncOpts = cbor.EncOptions{
		Sort:        cbor.SortNone,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeUnixDynamic,
	}
	cborDecOpts = cbor.DecOptions{
		MaxNestedLevels: 64,
		IndefLength:     cbor.IndefLengthForbidden,
		UTF8:            cbor.UTF8DecodeInvalid,
	}
)

// CBORCodecs specializes CBORCodec for opted-in types and pointers to them.
// It serves opaque types whose members cannot be described field by field.
type CBORCodecs struct {
	types   mapset.Set[reflect.Type]
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ SpecializableCodec = (*CBORCodecs)(nil)

// NewCBORCodecs creates the extension for the given value types
func NewCBORCodecs(types ...reflect.Type) (*CBORCodecs, error) {
	encMode, err := cborEncOpts.EncMode()
	if err != nil {
		return nil, err
	}
	decMode, err := cborDecOpts.DecMode()
	if err != nil {
		return nil, err
	}
	return &CBORCodecs{
		types:   mapset.NewSet(types...),
		encMode: encMode,
		decMode: decMode,
	}, nil
}

// Add opts a type in
func (x *CBORCodecs) Add(typ reflect.Type) {
	x.types.Add(typ)
}

// IsSupportedType returns true for opted-in types and pointers to them
func (x *CBORCodecs) IsSupportedType(typ reflect.Type) bool {
	if x.types.Contains(typ) {
		return typ.Kind() != reflect.Pointer
	}
	return typ.Kind() == reflect.Pointer && x.types.Contains(typ.Elem())
}

// GetSpecializedCodec returns the CBORCodec of the given type
func (x *CBORCodecs) GetSpecializedCodec(typ reflect.Type, _ Provider) (FieldCodec, error) {
	if !x.IsSupportedType(typ) {
		return nil, gerrors.NewErrCodecNotFound(typ)
	}
	return &CBORCodec{typ: typ, encMode: x.encMode, decMode: x.decMode}, nil
}

// CBORCodec encodes a value as a LengthPrefixed field holding its CBOR form.
// Pointer types take part in reference tracking.
type CBORCodec struct {
	typ     reflect.Type
	encMode cbor.EncMode
	decMode cbor.DecMode
}

var _ FieldCodec = (*CBORCodec)(nil)

// WriteField writes the CBOR form of the value
func (c *CBORCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if c.typ.Kind() == reflect.Pointer && identity.IsNil(rv) {
		w.WriteNullReference(delta)
		return nil
	}
	if !rv.IsValid() || rv.Type() != c.typ {
		return gerrors.NewErrUnexpectedValueType(c.typ, value)
	}
	if c.typ.Kind() == reflect.Pointer && TryWriteReferenceField(w, delta, rv) {
		return nil
	}

	raw, err := c.encMode.Marshal(value)
	if err != nil {
		return err
	}
	if err := w.WriteFieldHeader(delta, expected, c.typ, wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteLengthPrefixed(raw)
	return nil
}

// ReadValue reads the CBOR form of the value
func (c *CBORCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.LengthPrefixed {
		return nil, unexpectedWireType(c.typ, field)
	}
	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return nil, err
	}

	if c.typ.Kind() == reflect.Pointer {
		out := reflect.New(c.typ.Elem())
		if err := c.decMode.Unmarshal(raw, out.Interface()); err != nil {
			return nil, gerrors.NewErrMalformedPayload(err)
		}
		RecordObject(r, field, out.Interface())
		return out.Interface(), nil
	}

	out := reflect.New(c.typ)
	if err := c.decMode.Unmarshal(raw, out.Interface()); err != nil {
		return nil, gerrors.NewErrMalformedPayload(err)
	}
	return out.Elem().Interface(), nil
}

// Clone returns a deep copy of a value of a supported type through its CBOR form
func (x *CBORCodecs) Clone(value any) (any, error) {
	rv := reflect.ValueOf(value)
	if identity.IsNil(rv) {
		return value, nil
	}
	raw, err := x.encMode.Marshal(value)
	if err != nil {
		return nil, err
	}
	typ := rv.Type()
	if typ.Kind() == reflect.Pointer {
		out := reflect.New(typ.Elem())
		if err := x.decMode.Unmarshal(raw, out.Interface()); err != nil {
			return nil, gerrors.NewErrMalformedPayload(err)
		}
		return out.Interface(), nil
	}
	out := reflect.New(typ)
	if err := x.decMode.Unmarshal(raw, out.Interface()); err != nil {
		return nil, gerrors.NewErrMalformedPayload(err)
	}
	return out.Elem().Interface(), nil
}
