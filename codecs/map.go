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

// MapCodec encodes maps as an object holding the entry count as field 0
// followed by keys and values alternating as field 1.
type MapCodec struct {
	typ      reflect.Type
	key      reflect.Type
	elem     reflect.Type
	provider Provider
}

var (
	_ FieldCodec   = (*MapCodec)(nil)
	_ SealedReader = (*MapCodec)(nil)
)

// NewMapCodec creates a MapCodec for the given map type
func NewMapCodec(typ reflect.Type, provider Provider) *MapCodec {
	return &MapCodec{typ: typ, key: typ.Key(), elem: typ.Elem(), provider: provider}
}

// WriteField writes the map
func (c *MapCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
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

	if err := w.WriteStartObject(delta, expected, c.typ); err != nil {
		return err
	}
	w.WriteFieldHeaderExpected(0, wire.VarInt)
	w.WriteVarUint64(uint64(rv.Len()))

	if rv.Len() > 0 {
		keyCodec, err := c.provider.GetCodec(c.key)
		if err != nil {
			return err
		}
		elemCodec, err := c.provider.GetCodec(c.elem)
		if err != nil {
			return err
		}

		next := uint32(1)
		iter := rv.MapRange()
		for iter.Next() {
			if err := keyCodec.WriteField(w, next, c.key, iter.Key().Interface()); err != nil {
				return fmt.Errorf("key of %s: %w", c.typ, err)
			}
			next = 0
			if err := elemCodec.WriteField(w, 0, c.elem, iter.Value().Interface()); err != nil {
				return fmt.Errorf("value of %s: %w", c.typ, err)
			}
		}
	}

	w.WriteEndObject()
	return nil
}

// ReadValue reads the map
func (c *MapCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	return c.ReadValueSealed(r, field)
}

// ReadValueSealed reads the map without checking the embedded type
func (c *MapCodec) ReadValueSealed(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}

	var (
		out       reflect.Value
		key       reflect.Value
		hasKey    bool
		keyCodec  FieldCodec
		elemCodec FieldCodec
	)

	err := wire.ReadUntilEndObject(r, func(id uint32, header wire.Field) (bool, error) {
		switch id {
		case 0:
			if header.WireType != wire.VarInt || out.IsValid() {
				return false, nil
			}
			count, err := r.ReadVarUint64()
			if err != nil {
				return true, err
			}
			if err := r.CheckLength(c.typ, count); err != nil {
				return true, err
			}
			out = reflect.MakeMapWithSize(c.typ, int(count))
			RecordObject(r, field, out.Interface())
			return true, nil
		case 1:
			if !out.IsValid() {
				return true, gerrors.NewErrMalformedPayload(fmt.Errorf("%s entries precede their count", c.typ))
			}
			if keyCodec == nil {
				var err error
				if keyCodec, err = c.provider.GetCodec(c.key); err != nil {
					return true, err
				}
				if elemCodec, err = c.provider.GetCodec(c.elem); err != nil {
					return true, err
				}
			}

			if !hasKey {
				value, err := keyCodec.ReadValue(r, header)
				if err != nil {
					return true, err
				}
				if key, err = ValueOf(c.key, value); err != nil {
					return true, err
				}
				hasKey = true
				return true, nil
			}

			value, err := elemCodec.ReadValue(r, header)
			if err != nil {
				return true, err
			}
			elem, err := ValueOf(c.elem, value)
			if err != nil {
				return true, err
			}
			out.SetMapIndex(key, elem)
			hasKey = false
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}
	if hasKey {
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("%s entry without a value", c.typ))
	}

	if !out.IsValid() {
		out = reflect.MakeMap(c.typ)
	}
	return out.Interface(), nil
}

// MapCodecs specializes MapCodec for every map type
type MapCodecs struct{}

var _ SpecializableCodec = MapCodecs{}

// IsSupportedType returns true for map types
func (MapCodecs) IsSupportedType(typ reflect.Type) bool {
	return typ.Kind() == reflect.Map
}

// GetSpecializedCodec returns the MapCodec of the given map type
func (MapCodecs) GetSpecializedCodec(typ reflect.Type, provider Provider) (FieldCodec, error) {
	return NewMapCodec(typ, provider), nil
}
