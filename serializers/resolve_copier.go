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

package serializers

import (
	"reflect"

	"github.com/tochemey/wirecodec/cloning"
	"github.com/tochemey/wirecodec/codecs"
	gerrors "github.com/tochemey/wirecodec/errors"
	imetric "github.com/tochemey/wirecodec/internal/metric"
	"github.com/tochemey/wirecodec/internal/types"
)

// GetCopier returns the deep copier of the given type or ErrCopierNotFound
func (p *CodecProvider) GetCopier(typ reflect.Type) (cloning.Copier, error) {
	if typ == nil {
		return cloning.ShallowCopier{}, nil
	}
	if copier, ok := p.copiers.Get(typ); ok {
		p.record(imetric.KindCopier, imetric.OutcomeHit)
		return copier, nil
	}
	if err := p.ensureInitialized(); err != nil {
		return nil, err
	}
	if reason, unsupported := types.Unsupported(typ); unsupported {
		p.record(imetric.KindCopier, imetric.OutcomeRejected)
		return nil, gerrors.NewErrUnsupportedType(typ, reason)
	}

	copier, source, err := p.resolveCopier(typ)
	if err != nil {
		return nil, err
	}
	if copier == nil {
		p.record(imetric.KindCopier, imetric.OutcomeNotFound)
		p.logger.Warnf("no copier resolves for type=(%s)", typ)
		return nil, gerrors.NewErrCopierNotFound(typ)
	}

	copier, loaded := p.copiers.GetOrSet(typ, copier)
	if !loaded {
		p.record(imetric.KindCopier, imetric.OutcomeResolved)
		p.logger.Debugf("resolved copier of type=(%s) from %s", typ, source)
	}
	return copier, nil
}

// IsShallowCopyable returns true when copies of the type may share the original
func (p *CodecProvider) IsShallowCopyable(typ reflect.Type) bool {
	if err := p.ensureInitialized(); err != nil {
		return false
	}
	return p.isImmutable(typ)
}

func (p *CodecProvider) isImmutable(typ reflect.Type) bool {
	return types.IsBasicKind(typ.Kind()) || p.immutables.Contains(typ)
}

func (p *CodecProvider) resolveCopier(typ reflect.Type) (cloning.Copier, string, error) {
	if factory, ok := p.manifest.copiers.lookup(typ); ok {
		copier, err := factory(typ, p)
		return copier, "registered copier", err
	}

	if p.isImmutable(typ) {
		return cloning.ShallowCopier{}, "immutable type", nil
	}

	if copier, err := p.resolveCopierFromBase(typ); err != nil || copier != nil {
		return copier, "base copier", err
	}

	switch typ.Kind() {
	case reflect.Slice:
		return cloning.NewSliceCopier(typ, p), "slice copier", nil
	case reflect.Array:
		return cloning.NewArrayCopier(typ, p), "array copier", nil
	}

	binding, err := p.surrogateOf(typ)
	if err != nil {
		return nil, "", err
	}
	if binding != nil {
		return cloning.NewSurrogateCopier(typ, binding, p), "converter", nil
	}

	if base, ok := types.DeclaredBase(typ); ok {
		if inner, err := p.GetCopier(base); err == nil {
			if derived, ok := codecs.Unwrap(inner).(cloning.DerivedTypeCopier); ok {
				return derived, "declared base copier", nil
			}
		}
	}

	for _, extension := range p.specializableCopiers {
		if extension.IsSupportedType(typ) {
			copier, err := extension.GetSpecializedCopier(typ, p)
			return copier, "specializable extension", err
		}
	}

	for _, extension := range p.generalizedCopiers {
		if extension.IsSupportedType(typ) {
			return extension, "generalized extension", nil
		}
	}

	if typ.Kind() == reflect.Interface {
		return cloning.NewObjectCopier(p), "interface copier", nil
	}
	return nil, "", nil
}

// resolveCopierFromBase builds the copier of a struct value, or of a pointer
// to a struct, from the base copier of the struct
func (p *CodecProvider) resolveCopierFromBase(typ reflect.Type) (cloning.Copier, error) {
	structType := typ
	if typ.Kind() == reflect.Pointer {
		structType = typ.Elem()
	}
	if structType.Kind() != reflect.Struct || !p.hasBaseCopier(structType) {
		return nil, nil
	}

	base, err := p.GetBaseCopier(structType)
	if err != nil {
		return nil, err
	}
	if typ.Kind() == reflect.Struct {
		return cloning.NewValueTypeCopier(typ, base), nil
	}
	activator, err := p.GetActivator(typ)
	if err != nil {
		return nil, err
	}
	return cloning.NewConcreteTypeCopier(typ, activator, base, p), nil
}

// hasBaseCopier returns true when a base copier is registered for the struct,
// or can be derived from a registered base codec
func (p *CodecProvider) hasBaseCopier(typ reflect.Type) bool {
	if _, ok := p.manifest.baseCopiers.lookup(typ); ok {
		return true
	}
	_, ok := p.manifest.baseCodecs.lookup(typ)
	return ok
}

// GetBaseCopier returns the base copier of the given struct type. Structs
// with a registered base codec but no base copier get a reflective one,
// converted structs a surrogate base copier.
func (p *CodecProvider) GetBaseCopier(typ reflect.Type) (cloning.BaseCopier, error) {
	if base, ok := p.baseCopiers.Get(typ); ok {
		return base, nil
	}
	if err := p.ensureInitialized(); err != nil {
		return nil, err
	}

	var (
		base cloning.BaseCopier
		err  error
	)
	switch factory, ok := p.manifest.baseCopiers.lookup(typ); {
	case ok:
		base, err = factory(typ, p)
	case typ != nil && typ.Kind() == reflect.Struct && p.hasBaseCopier(typ):
		base, err = cloning.NewStructBaseCopier(typ, p)
	default:
		var binding codecs.SurrogateBinding
		if binding, err = p.surrogateOf(typ); binding != nil && binding.TargetType() == typ {
			base = cloning.NewSurrogateBaseCopier(binding, p)
		}
	}
	if err != nil {
		return nil, err
	}
	if base == nil {
		p.record(imetric.KindBaseCopier, imetric.OutcomeNotFound)
		return nil, gerrors.NewErrBaseCopierNotFound(typ)
	}

	base, loaded := p.baseCopiers.GetOrSet(typ, base)
	if !loaded {
		p.record(imetric.KindBaseCopier, imetric.OutcomeResolved)
		p.logger.Debugf("resolved base copier of type=(%s)", typ)
	}
	return base, nil
}
