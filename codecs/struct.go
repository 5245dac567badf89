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
	"sort"
	"strconv"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/types"
	"github.com/tochemey/wirecodec/wire"
)

// FieldTag is the struct tag holding the wire id of a field.
// A dash excludes the field.
const FieldTag = "wire"

// StructBaseCodec is a BaseSerializer built by reflection over the exported
// fields of a struct. Fields are written in id order; ids come from the wire
// tag or follow the previous field. A declared base is written first by its
// own base codec and closed with EndBaseFields.
type StructBaseCodec struct {
	typ      reflect.Type
	base     reflect.Type
	fields   []structField
	byID     map[uint32]int
	provider Provider
}

type structField struct {
	id    uint32
	index int
	name  string
	typ   reflect.Type
}

var _ BaseSerializer = (*StructBaseCodec)(nil)

// NewStructBaseCodec creates the base codec of the given struct type
func NewStructBaseCodec(typ reflect.Type, provider Provider) (*StructBaseCodec, error) {
	if typ.Kind() != reflect.Struct {
		return nil, gerrors.NewErrInvalidRegistration(typ, "not a struct")
	}

	c := &StructBaseCodec{typ: typ, provider: provider, byID: make(map[uint32]int)}
	start := 0
	if base, ok := types.DeclaredBase(typ); ok {
		c.base = base
		start = 1
	}

	var next uint32
	for i := start; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}

		id := next
		switch tag := field.Tag.Get(FieldTag); tag {
		case "-":
			continue
		case "":
		default:
			parsed, err := strconv.ParseUint(tag, 10, 32)
			if err != nil {
				return nil, gerrors.NewErrInvalidRegistration(typ, fmt.Sprintf("field %s has an invalid wire id %q", field.Name, tag))
			}
			id = uint32(parsed)
		}

		if _, dup := c.byID[id]; dup {
			return nil, gerrors.NewErrInvalidRegistration(typ, fmt.Sprintf("field %s reuses wire id %d", field.Name, id))
		}
		c.byID[id] = len(c.fields)
		c.fields = append(c.fields, structField{id: id, index: i, name: field.Name, typ: field.Type})
		next = id + 1
	}

	sort.Slice(c.fields, func(i, j int) bool { return c.fields[i].id < c.fields[j].id })
	for i, f := range c.fields {
		c.byID[f.id] = i
	}
	return c, nil
}

// Type returns the struct type served by the codec
func (c *StructBaseCodec) Type() reflect.Type {
	return c.typ
}

// SerializeFields writes the members of the struct
func (c *StructBaseCodec) SerializeFields(w *wire.Writer, value reflect.Value) error {
	if c.base != nil {
		base, err := c.provider.GetBaseCodec(c.base)
		if err != nil {
			return err
		}
		if err := base.SerializeFields(w, value.Field(0)); err != nil {
			return err
		}
		w.WriteEndBase()
	}

	var previous uint32
	for _, f := range c.fields {
		codec, err := c.provider.GetCodec(f.typ)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", c.typ, f.name, err)
		}
		if err := codec.WriteField(w, f.id-previous, f.typ, value.Field(f.index).Interface()); err != nil {
			return fmt.Errorf("field %s.%s: %w", c.typ, f.name, err)
		}
		previous = f.id
	}
	return nil
}

// DeserializeFields populates the members of an addressable struct value.
// Unknown field ids are skipped.
func (c *StructBaseCodec) DeserializeFields(r *wire.Reader, value reflect.Value) error {
	if c.base != nil {
		base, err := c.provider.GetBaseCodec(c.base)
		if err != nil {
			return err
		}
		if err := base.DeserializeFields(r, value.Field(0)); err != nil {
			return err
		}
	}

	return wire.ReadFields(r, func(id uint32, header wire.Field) (bool, error) {
		idx, ok := c.byID[id]
		if !ok {
			return false, nil
		}
		f := c.fields[idx]
		codec, err := c.provider.GetCodec(f.typ)
		if err != nil {
			return true, fmt.Errorf("field %s.%s: %w", c.typ, f.name, err)
		}

		var decoded any
		if sealed, ok := codec.(SealedReader); ok && !header.HasFieldType() {
			decoded, err = sealed.ReadValueSealed(r, header)
		} else {
			decoded, err = codec.ReadValue(r, header)
		}
		if err != nil {
			return true, fmt.Errorf("field %s.%s: %w", c.typ, f.name, err)
		}
		return true, SetValue(value.Field(f.index), decoded)
	})
}
