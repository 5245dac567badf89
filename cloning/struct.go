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

	"github.com/tochemey/wirecodec/codecs"
	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/types"
)

// StructBaseCopier is a BaseCopier built by reflection over the exported
// fields of a struct. The declared base is copied by its own base copier.
// Unexported fields keep the shallow copy made by the caller.
type StructBaseCopier struct {
	typ      reflect.Type
	base     reflect.Type
	fields   []int
	provider Provider
}

var _ BaseCopier = (*StructBaseCopier)(nil)

// NewStructBaseCopier creates the base copier of the given struct type
func NewStructBaseCopier(typ reflect.Type, provider Provider) (*StructBaseCopier, error) {
	if typ.Kind() != reflect.Struct {
		return nil, gerrors.NewErrInvalidRegistration(typ, "not a struct")
	}
	c := &StructBaseCopier{typ: typ, provider: provider}
	start := 0
	if base, ok := types.DeclaredBase(typ); ok {
		c.base = base
		start = 1
	}
	for i := start; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.IsExported() || field.Tag.Get(codecs.FieldTag) == "-" {
			continue
		}
		c.fields = append(c.fields, i)
	}
	return c, nil
}

// DeepCopyFields copies the declared base then the exported fields
func (c *StructBaseCopier) DeepCopyFields(input, output reflect.Value, ctx *CopyContext) error {
	if c.base != nil {
		base, err := c.provider.GetBaseCopier(c.base)
		if err != nil {
			return err
		}
		if err := base.DeepCopyFields(input.Field(0), output.Field(0), ctx); err != nil {
			return err
		}
	}

	for _, index := range c.fields {
		field := c.typ.Field(index)
		if err := copyInto(c.provider, field.Type, input.Field(index), output.Field(index), ctx); err != nil {
			return err
		}
	}
	return nil
}
