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
	"github.com/tochemey/wirecodec/wire"
)

// ArrayCodec encodes fixed-size arrays. Nested arrays are treated as a single
// multi-dimensional array: every dimension length is written as field 0 and
// the elements follow in row-major order as field 1.
type ArrayCodec struct {
	typ      reflect.Type
	elem     reflect.Type
	dims     []int
	strides  []int
	total    int
	provider Provider
}

var _ FieldCodec = (*ArrayCodec)(nil)

// NewArrayCodec creates an ArrayCodec for the given array type
func NewArrayCodec(typ reflect.Type, provider Provider) *ArrayCodec {
	c := &ArrayCodec{typ: typ, provider: provider, total: 1}
	elem := typ
	for elem.Kind() == reflect.Array {
		c.dims = append(c.dims, elem.Len())
		c.total *= elem.Len()
		elem = elem.Elem()
	}
	c.elem = elem

	c.strides = make([]int, len(c.dims))
	stride := 1
	for i := len(c.dims) - 1; i >= 0; i-- {
		c.strides[i] = stride
		stride *= c.dims[i]
	}
	return c
}

// Rank returns the number of dimensions of the array
func (c *ArrayCodec) Rank() int {
	return len(c.dims)
}

// WriteField writes the array
func (c *ArrayCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return gerrors.NewErrUnexpectedValueType(c.typ, value)
	}
	if rv.Type() != c.typ {
		return writeAsRuntimeType(c.provider, w, delta, expected, value)
	}

	if err := w.WriteStartObject(delta, expected, c.typ); err != nil {
		return err
	}
	for _, dim := range c.dims {
		w.WriteFieldHeaderExpected(0, wire.VarInt)
		w.WriteVarUint64(uint64(dim))
	}

	if c.total > 0 {
		codec, err := c.provider.GetCodec(c.elem)
		if err != nil {
			return err
		}
		next := uint32(1)
		for i := range c.total {
			if err := codec.WriteField(w, next, c.elem, c.at(rv, i).Interface()); err != nil {
				return fmt.Errorf("element %d of %s: %w", i, c.typ, err)
			}
			next = 0
		}
	}

	w.WriteEndObject()
	return nil
}

// ReadValue reads the array
func (c *ArrayCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if differs(field, c.typ) {
		return readAsFieldType(c.provider, r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(c.typ, field)
	}

	var (
		out   = reflect.New(c.typ).Elem()
		dims  []int
		index int
		codec FieldCodec
	)

	err := wire.ReadUntilEndObject(r, func(id uint32, header wire.Field) (bool, error) {
		switch id {
		case 0:
			if header.WireType != wire.VarInt {
				return false, nil
			}
			dim, err := r.ReadVarUint64()
			if err != nil {
				return true, err
			}
			dims = append(dims, int(dim))
			return true, nil
		case 1:
			if index == 0 && codec == nil {
				if err := c.checkDims(dims); err != nil {
					return true, err
				}
				var err error
				if codec, err = c.provider.GetCodec(c.elem); err != nil {
					return true, err
				}
			}
			if index >= c.total {
				return false, nil
			}
			value, err := codec.ReadValue(r, header)
			if err != nil {
				return true, err
			}
			if err := SetValue(c.at(out, index), value); err != nil {
				return true, err
			}
			index++
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}
	if codec == nil {
		if err := c.checkDims(dims); err != nil {
			return nil, err
		}
	}
	return out.Interface(), nil
}

// at returns the element at the given row-major position
func (c *ArrayCodec) at(array reflect.Value, flat int) reflect.Value {
	v := array
	for i, dim := range c.dims {
		v = v.Index((flat / c.strides[i]) % dim)
	}
	return v
}

func (c *ArrayCodec) checkDims(dims []int) error {
	if len(dims) != len(c.dims) {
		return gerrors.NewErrInvalidLength(c.typ, uint64(len(dims)))
	}
	for i, dim := range dims {
		if dim != c.dims[i] {
			return gerrors.NewErrInvalidLength(c.typ, uint64(dim))
		}
	}
	return nil
}
