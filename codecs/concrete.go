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

	"github.com/tochemey/wirecodec/activators"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

// ConcreteTypeCodec serves a pointer to a struct with a base codec.
// Instances are created by an activator and recorded in the reference table
// before their members are read, so that self and mutual references resolve.
type ConcreteTypeCodec struct {
	typ       reflect.Type
	activator activators.Untyped
	base      BaseSerializer
	provider  Provider
}

var (
	_ FieldCodec   = (*ConcreteTypeCodec)(nil)
	_ SealedReader = (*ConcreteTypeCodec)(nil)
)

// NewConcreteTypeCodec creates the codec of the given pointer type
func NewConcreteTypeCodec(typ reflect.Type, activator activators.Untyped, base BaseSerializer, provider Provider) *ConcreteTypeCodec {
	return &ConcreteTypeCodec{
		typ:       typ,
		activator: activator,
		base:      base,
		provider:  provider,
	}
}

// WriteField writes the object, or a reference when it was already written
func (c *ConcreteTypeCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
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
	if err := c.base.SerializeFields(w, rv.Elem()); err != nil {
		return err
	}
	w.WriteEndObject()
	return nil
}

// ReadValue reads the object, delegating to the codec of the embedded type when it differs
func (c *ConcreteTypeCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	return c.ReadValueSealed(r, field)
}

// ReadValueSealed reads the object without checking the embedded type
func (c *ConcreteTypeCodec) ReadValueSealed(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}

	out, err := c.activator.CreateValue()
	if err != nil {
		return nil, err
	}
	instance := out.Interface()
	RecordObject(r, field, instance)

	if err := c.base.DeserializeFields(r, out.Elem()); err != nil {
		return nil, err
	}
	return instance, nil
}
