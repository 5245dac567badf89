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

package cloning

import (
	"reflect"

	"github.com/tochemey/wirecodec/internal/identity"
)

// SliceCopier copies a slice and its elements. Elements of immutable types
// are copied in bulk.
type SliceCopier struct {
	typ      reflect.Type
	provider Provider
}

var _ Copier = (*SliceCopier)(nil)

// NewSliceCopier creates the copier of the given slice type
func NewSliceCopier(typ reflect.Type, provider Provider) *SliceCopier {
	return &SliceCopier{typ: typ, provider: provider}
}

// DeepCopy copies the slice
func (c *SliceCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if identity.IsNil(rv) {
		return input, nil
	}
	if rv.Type() != c.typ {
		return nil, unexpected(c.typ, input)
	}
	if out, ok := ctx.TryGetCopy(rv); ok {
		return out, nil
	}

	out := reflect.MakeSlice(c.typ, rv.Len(), rv.Len())
	ctx.RecordCopy(rv, out.Interface())
	if err := copyElements(c.provider, c.typ.Elem(), rv, out, ctx); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// ArrayCopier copies a fixed array element by element
type ArrayCopier struct {
	typ      reflect.Type
	provider Provider
}

var _ Copier = (*ArrayCopier)(nil)

// NewArrayCopier creates the copier of the given array type
func NewArrayCopier(typ reflect.Type, provider Provider) *ArrayCopier {
	return &ArrayCopier{typ: typ, provider: provider}
}

// DeepCopy copies the array
func (c *ArrayCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if !rv.IsValid() || rv.Type() != c.typ {
		return nil, unexpected(c.typ, input)
	}
	out := reflect.New(c.typ).Elem()
	if err := copyElements(c.provider, c.typ.Elem(), rv, out, ctx); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

func copyElements(provider Provider, elem reflect.Type, src, dst reflect.Value, ctx *CopyContext) error {
	copier, err := provider.GetCopier(elem)
	if err != nil {
		return err
	}
	if _, ok := copier.(ShallowCopier); ok {
		reflect.Copy(dst, src)
		return nil
	}
	for i := range src.Len() {
		out, err := copier.DeepCopy(src.Index(i).Interface(), ctx)
		if err != nil {
			return err
		}
		if err := setValue(dst.Index(i), out); err != nil {
			return err
		}
	}
	return nil
}

// MapCopier copies a map with its keys and values
type MapCopier struct {
	typ      reflect.Type
	provider Provider
}

var _ Copier = (*MapCopier)(nil)

// NewMapCopier creates the copier of the given map type
func NewMapCopier(typ reflect.Type, provider Provider) *MapCopier {
	return &MapCopier{typ: typ, provider: provider}
}

// DeepCopy copies the map
func (c *MapCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if identity.IsNil(rv) {
		return input, nil
	}
	if rv.Type() != c.typ {
		return nil, unexpected(c.typ, input)
	}
	if out, ok := ctx.TryGetCopy(rv); ok {
		return out, nil
	}

	keyCopier, err := c.provider.GetCopier(c.typ.Key())
	if err != nil {
		return nil, err
	}
	valueCopier, err := c.provider.GetCopier(c.typ.Elem())
	if err != nil {
		return nil, err
	}

	out := reflect.MakeMapWithSize(c.typ, rv.Len())
	ctx.RecordCopy(rv, out.Interface())

	key := reflect.New(c.typ.Key()).Elem()
	value := reflect.New(c.typ.Elem()).Elem()
	iter := rv.MapRange()
	for iter.Next() {
		k, err := keyCopier.DeepCopy(iter.Key().Interface(), ctx)
		if err != nil {
			return nil, err
		}
		v, err := valueCopier.DeepCopy(iter.Value().Interface(), ctx)
		if err != nil {
			return nil, err
		}
		if err := setValue(key, k); err != nil {
			return nil, err
		}
		if err := setValue(value, v); err != nil {
			return nil, err
		}
		out.SetMapIndex(key, value)
	}
	return out.Interface(), nil
}

// MapCopiers specializes MapCopier for every map type
type MapCopiers struct{}

var _ SpecializableCopier = MapCopiers{}

// IsSupportedType returns true for map types
func (MapCopiers) IsSupportedType(typ reflect.Type) bool {
	return typ.Kind() == reflect.Map
}

// GetSpecializedCopier returns the MapCopier of the given type
func (MapCopiers) GetSpecializedCopier(typ reflect.Type, provider Provider) (Copier, error) {
	return NewMapCopier(typ, provider), nil
}
