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
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/internal/types"
)

// SurrogateCopier copies a value through its surrogate: the value is
// converted, the surrogate deep copied and converted back.
// When the copier type is a pointer to the converted type, the pointee is converted.
type SurrogateCopier struct {
	typ      reflect.Type
	binding  codecs.SurrogateBinding
	provider Provider
	indirect bool
}

var _ Copier = (*SurrogateCopier)(nil)

// NewSurrogateCopier creates the copier of the given type
func NewSurrogateCopier(typ reflect.Type, binding codecs.SurrogateBinding, provider Provider) *SurrogateCopier {
	return &SurrogateCopier{
		typ:      typ,
		binding:  binding,
		provider: provider,
		indirect: typ != binding.TargetType(),
	}
}

// DeepCopy copies the value
func (c *SurrogateCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if !rv.IsValid() {
		return input, nil
	}
	if rv.Type() != c.typ {
		return nil, unexpected(c.typ, input)
	}
	reference := c.indirect || types.IsReference(c.typ)
	if reference {
		if identity.IsNil(rv) {
			return input, nil
		}
		if out, ok := ctx.TryGetCopy(rv); ok {
			return out, nil
		}
	}

	target := rv
	if c.indirect {
		target = rv.Elem()
	}
	surrogate, err := c.binding.ToSurrogate(target)
	if err != nil {
		return nil, err
	}
	copier, err := c.provider.GetCopier(c.binding.SurrogateType())
	if err != nil {
		return nil, err
	}
	copied, err := copier.DeepCopy(surrogate.Interface(), ctx)
	if err != nil {
		return nil, err
	}
	copiedSurrogate := reflect.New(c.binding.SurrogateType()).Elem()
	if err := setValue(copiedSurrogate, copied); err != nil {
		return nil, err
	}
	out, err := c.binding.FromSurrogate(copiedSurrogate)
	if err != nil {
		return nil, err
	}
	if c.indirect {
		ptr := reflect.New(c.binding.TargetType())
		ptr.Elem().Set(out)
		out = ptr
	}
	if reference {
		ctx.RecordCopy(rv, out.Interface())
	}
	return out.Interface(), nil
}

// SurrogateBaseCopier copies a declared base served by a converter: the base
// is converted, the surrogate deep copied and the copy populated from it
type SurrogateBaseCopier struct {
	binding  codecs.SurrogateBinding
	provider Provider
}

var _ BaseCopier = (*SurrogateBaseCopier)(nil)

// NewSurrogateBaseCopier creates the base copier of the converted type
func NewSurrogateBaseCopier(binding codecs.SurrogateBinding, provider Provider) *SurrogateBaseCopier {
	return &SurrogateBaseCopier{binding: binding, provider: provider}
}

// DeepCopyFields populates the output from a deep copy of the input surrogate
func (c *SurrogateBaseCopier) DeepCopyFields(input, output reflect.Value, ctx *CopyContext) error {
	if !c.binding.CanPopulate() {
		return gerrors.NewErrMissingPopulateCapability(c.binding.TargetType())
	}
	surrogate, err := c.binding.ToSurrogate(input)
	if err != nil {
		return err
	}
	copiedSurrogate := reflect.New(c.binding.SurrogateType()).Elem()
	if err := copyInto(c.provider, c.binding.SurrogateType(), surrogate, copiedSurrogate, ctx); err != nil {
		return err
	}
	return c.binding.Populate(copiedSurrogate, output)
}
