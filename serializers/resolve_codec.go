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

	"github.com/tochemey/wirecodec/codecs"
	gerrors "github.com/tochemey/wirecodec/errors"
	imetric "github.com/tochemey/wirecodec/internal/metric"
	"github.com/tochemey/wirecodec/internal/types"
)

// GetCodec returns the codec of the given type or ErrCodecNotFound.
// A nil type yields the void codec, which only handles nulls and references.
func (p *CodecProvider) GetCodec(typ reflect.Type) (codecs.FieldCodec, error) {
	codec, err := p.TryGetCodec(typ)
	if err != nil {
		return nil, err
	}
	if codec == nil {
		return nil, notFound(typ)
	}
	return codec, nil
}

// TryGetCodec returns the codec of the given type or nil when none resolves.
// Unsupported types fail with ErrUnsupportedType.
func (p *CodecProvider) TryGetCodec(typ reflect.Type) (codecs.FieldCodec, error) {
	if typ == nil {
		return codecs.VoidCodec{}, nil
	}
	if codec, ok := p.codecs.Get(typ); ok {
		p.record(imetric.KindCodec, imetric.OutcomeHit)
		return codec, nil
	}
	if err := p.ensureInitialized(); err != nil {
		return nil, err
	}
	if reason, unsupported := types.Unsupported(typ); unsupported {
		p.record(imetric.KindCodec, imetric.OutcomeRejected)
		return nil, gerrors.NewErrUnsupportedType(typ, reason)
	}

	codec, source, err := p.resolveCodec(typ)
	if err != nil {
		return nil, err
	}
	if codec == nil {
		p.record(imetric.KindCodec, imetric.OutcomeNotFound)
		p.logger.Warnf("no codec resolves for type=(%s)", typ)
		return nil, nil
	}

	codec, loaded := p.codecs.GetOrSet(typ, codec)
	if !loaded {
		p.registry.Register(typ)
		p.record(imetric.KindCodec, imetric.OutcomeResolved)
		p.logger.Debugf("resolved codec of type=(%s) from %s", typ, source)
	}
	return codec, nil
}

// resolveCodec runs the resolution strategies in order. It returns a nil
// codec when none applies and names the strategy that produced the codec.
func (p *CodecProvider) resolveCodec(typ reflect.Type) (codecs.FieldCodec, string, error) {
	if factory, ok := p.manifest.codecs.lookup(typ); ok {
		codec, err := factory(typ, p)
		return codec, "registered codec", err
	}
	if codec, ok := p.builtins[typ]; ok {
		return codec, "well-known codec", nil
	}

	if codec, err := p.resolveFromBase(typ); err != nil || codec != nil {
		return codec, "base codec", err
	}

	if typ.Kind() != reflect.Pointer {
		serializer, err := p.GetValueSerializer(typ)
		if err != nil {
			return nil, "", err
		}
		if serializer != nil {
			return codecs.NewValueTypeCodec(typ, serializer, p), "value serializer", nil
		}
	}

	switch typ.Kind() {
	case reflect.Slice:
		return codecs.NewSliceCodec(typ, p), "slice codec", nil
	case reflect.Array:
		return codecs.NewArrayCodec(typ, p), "array codec", nil
	}

	if types.IsEnum(typ) {
		underlying, _ := types.Underlying(typ.Kind())
		inner, err := p.GetCodec(underlying)
		if err != nil {
			return nil, "", err
		}
		codec, err := codecs.NewEnumCodec(typ, inner)
		return codec, "enum codec", err
	}

	if codec, err := p.resolveFromSurrogate(typ); err != nil || codec != nil {
		return codec, "converter", err
	}

	if base, ok := types.DeclaredBase(typ); ok {
		inner, err := p.TryGetCodec(base)
		if err != nil {
			return nil, "", err
		}
		if derived, ok := codecs.Unwrap(inner).(codecs.DerivedTypeCodec); ok {
			return derived, "declared base codec", nil
		}
	}

	for _, extension := range p.specializableCodecs {
		if extension.IsSupportedType(typ) {
			codec, err := extension.GetSpecializedCodec(typ, p)
			return codec, "specializable extension", err
		}
	}

	for _, extension := range p.generalizedCodecs {
		if extension.IsSupportedType(typ) {
			return codecs.BindGeneralized(extension, typ), "generalized extension", nil
		}
	}

	if typ.Kind() == reflect.Interface {
		return codecs.NewAbstractTypeCodec(typ, p), "interface codec", nil
	}
	return nil, "", nil
}

// resolveFromBase builds the codec of a struct value, or of a pointer to a
// struct, from the base codec of the struct
func (p *CodecProvider) resolveFromBase(typ reflect.Type) (codecs.FieldCodec, error) {
	structType := typ
	if typ.Kind() == reflect.Pointer {
		structType = typ.Elem()
	}
	if structType.Kind() != reflect.Struct {
		return nil, nil
	}

	if _, ok := p.manifest.baseCodecs.lookup(structType); !ok {
		return nil, nil
	}
	base, err := p.GetBaseCodec(structType)
	if err != nil {
		return nil, err
	}

	if typ.Kind() == reflect.Struct {
		return codecs.NewValueTypeCodec(typ, base, p), nil
	}
	activator, err := p.GetActivator(typ)
	if err != nil {
		return nil, err
	}
	return codecs.NewConcreteTypeCodec(typ, activator, base, p), nil
}

// resolveFromSurrogate builds a surrogate codec from the converter of the
// type, or of its pointee when the type is a pointer
func (p *CodecProvider) resolveFromSurrogate(typ reflect.Type) (codecs.FieldCodec, error) {
	binding, err := p.surrogateOf(typ)
	if err != nil || binding == nil {
		return nil, err
	}
	if types.IsReference(typ) {
		return codecs.NewSurrogateCodec(typ, binding, p), nil
	}
	return codecs.NewValueTypeSurrogateCodec(typ, binding, p), nil
}

// surrogateOf returns the binding of the type or of its pointee
func (p *CodecProvider) surrogateOf(typ reflect.Type) (codecs.SurrogateBinding, error) {
	if typ == nil {
		return nil, nil
	}
	lookup := func(t reflect.Type) (codecs.SurrogateBinding, error) {
		factory, ok := p.manifest.converters.lookup(t)
		if !ok {
			return nil, nil
		}
		binding, err := factory(t)
		if err != nil {
			return nil, err
		}
		if binding == nil || binding.TargetType() != t {
			return nil, gerrors.NewErrInvalidRegistration(t, "converter does not target the type")
		}
		return binding, nil
	}

	binding, err := lookup(typ)
	if err != nil || binding != nil {
		return binding, err
	}
	if typ.Kind() == reflect.Pointer {
		return lookup(typ.Elem())
	}
	return nil, nil
}

// GetBaseCodec returns the base codec of the given struct type: the registered
// one, a surrogate base codec built on its converter, or one produced by an extension
func (p *CodecProvider) GetBaseCodec(typ reflect.Type) (codecs.BaseSerializer, error) {
	if base, ok := p.baseCodecs.Get(typ); ok {
		return base, nil
	}
	if err := p.ensureInitialized(); err != nil {
		return nil, err
	}

	base, err := p.resolveBaseCodec(typ)
	if err != nil {
		return nil, err
	}
	if base == nil {
		p.record(imetric.KindBaseCodec, imetric.OutcomeNotFound)
		return nil, gerrors.NewErrBaseCodecNotFound(typ)
	}

	base, loaded := p.baseCodecs.GetOrSet(typ, base)
	if !loaded {
		p.record(imetric.KindBaseCodec, imetric.OutcomeResolved)
		p.logger.Debugf("resolved base codec of type=(%s)", typ)
	}
	return base, nil
}

func (p *CodecProvider) resolveBaseCodec(typ reflect.Type) (codecs.BaseSerializer, error) {
	if typ == nil {
		return nil, nil
	}
	if factory, ok := p.manifest.baseCodecs.lookup(typ); ok {
		return factory(typ, p)
	}

	binding, err := p.surrogateOf(typ)
	if err != nil {
		return nil, err
	}
	if binding != nil && binding.TargetType() == typ {
		return codecs.NewSurrogateBaseCodec(binding, p), nil
	}

	for _, extension := range p.specializableBaseCodecs {
		if extension.IsSupportedType(typ) {
			return extension.GetSpecializedBaseCodec(typ, p)
		}
	}
	for _, extension := range p.generalizedBaseCodecs {
		if extension.IsSupportedType(typ) {
			return extension, nil
		}
	}
	return nil, nil
}

func notFound(typ reflect.Type) error {
	return gerrors.NewErrCodecNotFound(typ)
}
