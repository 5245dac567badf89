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

// PointerCopier copies a pointer and its pointee
type PointerCopier struct {
	typ      reflect.Type
	provider Provider
}

var _ Copier = (*PointerCopier)(nil)

// NewPointerCopier creates the copier of the given pointer type
func NewPointerCopier(typ reflect.Type, provider Provider) *PointerCopier {
	return &PointerCopier{typ: typ, provider: provider}
}

// DeepCopy copies the pointee into a new pointer
func (c *PointerCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
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

	out := reflect.New(c.typ.Elem())
	ctx.RecordCopy(rv, out.Interface())
	if err := copyInto(c.provider, c.typ.Elem(), rv.Elem(), out.Elem(), ctx); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// PointerCopiers specializes PointerCopier for pointers whose pointee has a copier
type PointerCopiers struct {
	provider Provider
}

var _ SpecializableCopier = (*PointerCopiers)(nil)

// NewPointerCopiers creates the pointer extension. Struct pointees are only
// accepted when the provider resolves a copier for them.
func NewPointerCopiers(provider Provider) *PointerCopiers {
	return &PointerCopiers{provider: provider}
}

// IsSupportedType returns true for pointers to types with a copier
func (x *PointerCopiers) IsSupportedType(typ reflect.Type) bool {
	if typ.Kind() != reflect.Pointer {
		return false
	}
	if typ.Elem().Kind() != reflect.Struct {
		return true
	}
	copier, err := x.provider.GetCopier(typ.Elem())
	return err == nil && copier != nil
}

// GetSpecializedCopier returns the PointerCopier of the given type
func (x *PointerCopiers) GetSpecializedCopier(typ reflect.Type, provider Provider) (Copier, error) {
	return NewPointerCopier(typ, provider), nil
}
