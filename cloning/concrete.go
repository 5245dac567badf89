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

	"github.com/tochemey/wirecodec/activators"
	"github.com/tochemey/wirecodec/internal/identity"
)

// ConcreteTypeCopier copies a pointer to a struct with a base copier.
// The copy is recorded before its members are copied so that cycles are preserved.
type ConcreteTypeCopier struct {
	typ       reflect.Type
	activator activators.Untyped
	base      BaseCopier
	provider  Provider
}

var _ Copier = (*ConcreteTypeCopier)(nil)

// NewConcreteTypeCopier creates the copier of the given pointer type
func NewConcreteTypeCopier(typ reflect.Type, activator activators.Untyped, base BaseCopier, provider Provider) *ConcreteTypeCopier {
	return &ConcreteTypeCopier{typ: typ, activator: activator, base: base, provider: provider}
}

// DeepCopy copies the object
func (c *ConcreteTypeCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if identity.IsNil(rv) {
		return input, nil
	}
	if rv.Type() != c.typ {
		copier, err := c.provider.GetCopier(rv.Type())
		if err != nil {
			return nil, err
		}
		return copier.DeepCopy(input, ctx)
	}
	if out, ok := ctx.TryGetCopy(rv); ok {
		return out, nil
	}

	out, err := c.activator.CreateValue()
	if err != nil {
		return nil, err
	}
	ctx.RecordCopy(rv, out.Interface())
	out.Elem().Set(rv.Elem())
	if err := c.base.DeepCopyFields(rv.Elem(), out.Elem(), ctx); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// ValueTypeCopier copies a struct value with a base copier
type ValueTypeCopier struct {
	typ  reflect.Type
	base BaseCopier
}

var _ Copier = (*ValueTypeCopier)(nil)

// NewValueTypeCopier creates the copier of the given struct type
func NewValueTypeCopier(typ reflect.Type, base BaseCopier) *ValueTypeCopier {
	return &ValueTypeCopier{typ: typ, base: base}
}

// DeepCopy copies the value
func (c *ValueTypeCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if !rv.IsValid() || rv.Type() != c.typ {
		return nil, unexpected(c.typ, input)
	}
	out := reflect.New(c.typ).Elem()
	out.Set(rv)
	if err := c.base.DeepCopyFields(rv, out, ctx); err != nil {
		return nil, err
	}
	return out.Interface(), nil
}
