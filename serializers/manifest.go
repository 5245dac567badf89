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

	"go.uber.org/multierr"

	"github.com/tochemey/wirecodec/activators"
	"github.com/tochemey/wirecodec/cloning"
	"github.com/tochemey/wirecodec/codecs"
	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/types"
)

// CodecFactory builds the codec of a concrete type
type CodecFactory func(typ reflect.Type, provider codecs.Provider) (codecs.FieldCodec, error)

// BaseCodecFactory builds the base codec of a concrete type
type BaseCodecFactory func(typ reflect.Type, provider codecs.Provider) (codecs.BaseSerializer, error)

// ConverterFactory builds the surrogate binding of a concrete type
type ConverterFactory func(typ reflect.Type) (codecs.SurrogateBinding, error)

// CopierFactory builds the copier of a concrete type
type CopierFactory func(typ reflect.Type, provider cloning.Provider) (cloning.Copier, error)

// BaseCopierFactory builds the base copier of a concrete type
type BaseCopierFactory func(typ reflect.Type, provider cloning.Provider) (cloning.BaseCopier, error)

// registrations maps concrete types and generic families to factories
type registrations[F any] struct {
	types    map[reflect.Type]F
	families map[string]F
}

func newRegistrations[F any]() registrations[F] {
	return registrations[F]{
		types:    make(map[reflect.Type]F),
		families: make(map[string]F),
	}
}

// lookup returns the factory registered for the type, then for its family
func (x registrations[F]) lookup(typ reflect.Type) (F, bool) {
	if factory, ok := x.types[typ]; ok {
		return factory, true
	}
	if family, ok := types.Family(typ); ok {
		factory, ok := x.families[family]
		return factory, ok
	}
	var zero F
	return zero, false
}

// Manifest is the metadata table consumed by the CodecProvider: codecs,
// base codecs, activators, converters, copiers and the extension sources.
// A Manifest is filled before the provider is created and not modified afterwards.
type Manifest struct {
	codecs           registrations[CodecFactory]
	baseCodecs       registrations[BaseCodecFactory]
	valueSerializers registrations[BaseCodecFactory]
	activators       map[reflect.Type]activators.Untyped
	converters       registrations[ConverterFactory]
	copiers          registrations[CopierFactory]
	baseCopiers      registrations[BaseCopierFactory]
	immutables       []reflect.Type
	cborTypes        []reflect.Type
	knownTypes       []reflect.Type

	specializableCodecs     []codecs.SpecializableCodec
	generalizedCodecs       []codecs.GeneralizedCodec
	specializableBaseCodecs []codecs.SpecializableBaseCodec
	generalizedBaseCodecs   []codecs.GeneralizedBaseCodec
	specializableCopiers    []cloning.SpecializableCopier
	generalizedCopiers      []cloning.GeneralizedCopier

	err error
}

// NewManifest creates an empty Manifest
func NewManifest() *Manifest {
	return &Manifest{
		codecs:           newRegistrations[CodecFactory](),
		baseCodecs:       newRegistrations[BaseCodecFactory](),
		valueSerializers: newRegistrations[BaseCodecFactory](),
		activators:       make(map[reflect.Type]activators.Untyped),
		converters:       newRegistrations[ConverterFactory](),
		copiers:          newRegistrations[CopierFactory](),
		baseCopiers:      newRegistrations[BaseCopierFactory](),
	}
}

// Validate returns the registration errors collected so far
func (m *Manifest) Validate() error {
	return m.err
}

// AddCodec registers the codec of T
func AddCodec[T any](m *Manifest, codec codecs.Codec[T]) *Manifest {
	return m.AddFieldCodec(reflect.TypeFor[T](), codecs.Untyped(codec))
}

// AddFieldCodec registers the codec of the given type
func (m *Manifest) AddFieldCodec(typ reflect.Type, codec codecs.FieldCodec) *Manifest {
	if !m.check(typ, codec != nil, "registered with a nil codec") {
		return m
	}
	m.codecs.types[typ] = func(reflect.Type, codecs.Provider) (codecs.FieldCodec, error) {
		return codec, nil
	}
	return m.known(typ)
}

// AddCodecFamily registers a factory serving every instantiation of the
// generic type the exemplar instantiates
func (m *Manifest) AddCodecFamily(exemplar reflect.Type, factory CodecFactory) *Manifest {
	if family, ok := m.family(exemplar, factory != nil); ok {
		m.codecs.families[family] = factory
	}
	return m
}

// AddBaseCodec registers the base codec of the struct T
func AddBaseCodec[T any](m *Manifest, codec codecs.BaseCodec[T]) *Manifest {
	return m.AddBaseSerializer(reflect.TypeFor[T](), codecs.UntypedBase(codec))
}

// AddBaseSerializer registers the base codec of the given struct type
func (m *Manifest) AddBaseSerializer(typ reflect.Type, serializer codecs.BaseSerializer) *Manifest {
	if !m.check(typ, serializer != nil, "registered with a nil base codec") ||
		!m.check(typ, typ.Kind() == reflect.Struct, "not a struct") {
		return m
	}
	m.baseCodecs.types[typ] = func(reflect.Type, codecs.Provider) (codecs.BaseSerializer, error) {
		return serializer, nil
	}
	return m.known(typ)
}

// AddBaseCodecFamily registers a base codec factory serving every
// instantiation of the generic struct the exemplar instantiates
func (m *Manifest) AddBaseCodecFamily(exemplar reflect.Type, factory BaseCodecFactory) *Manifest {
	if family, ok := m.family(exemplar, factory != nil); ok {
		m.baseCodecs.families[family] = factory
	}
	return m
}

// AddValueSerializer registers a base codec serving the value type T on its own
func AddValueSerializer[T any](m *Manifest, codec codecs.BaseCodec[T]) *Manifest {
	return m.AddValueSerializerFor(reflect.TypeFor[T](), codecs.UntypedBase(codec))
}

// AddValueSerializerFor registers a base codec serving the given value type on its own
func (m *Manifest) AddValueSerializerFor(typ reflect.Type, serializer codecs.BaseSerializer) *Manifest {
	if !m.check(typ, serializer != nil, "registered with a nil value serializer") ||
		!m.check(typ, !types.IsReference(typ) && typ.Kind() != reflect.Interface, "not a value type") {
		return m
	}
	m.valueSerializers.types[typ] = func(reflect.Type, codecs.Provider) (codecs.BaseSerializer, error) {
		return serializer, nil
	}
	return m.known(typ)
}

// AddValueSerializerFamily registers a value serializer factory serving every
// instantiation of the generic value type the exemplar instantiates
func (m *Manifest) AddValueSerializerFamily(exemplar reflect.Type, factory BaseCodecFactory) *Manifest {
	if !m.check(exemplar, exemplar == nil || (!types.IsReference(exemplar) && exemplar.Kind() != reflect.Interface), "not a value type") {
		return m
	}
	if family, ok := m.family(exemplar, factory != nil); ok {
		m.valueSerializers.families[family] = factory
	}
	return m
}

// AddActivator registers the activator of T
func AddActivator[T any](m *Manifest, activator activators.Activator[T]) *Manifest {
	if !m.check(reflect.TypeFor[T](), activator != nil, "registered with a nil activator") {
		return m
	}
	return m.AddUntypedActivator(activators.Wrap(activator))
}

// AddUntypedActivator registers an activator for the type it creates
func (m *Manifest) AddUntypedActivator(activator activators.Untyped) *Manifest {
	if activator == nil {
		m.err = multierr.Append(m.err, gerrors.NewErrInvalidRegistration(nil, "registered with a nil activator"))
		return m
	}
	m.activators[activator.Type()] = activator
	return m.known(activator.Type())
}

// AddConverter registers the surrogate converter of T
func AddConverter[T, S any](m *Manifest, converter codecs.Converter[T, S]) *Manifest {
	if !m.check(reflect.TypeFor[T](), converter != nil, "registered with a nil converter") {
		return m
	}
	return m.AddSurrogate(codecs.Bind(converter))
}

// AddSurrogate registers a surrogate binding for its target type
func (m *Manifest) AddSurrogate(binding codecs.SurrogateBinding) *Manifest {
	if binding == nil {
		m.err = multierr.Append(m.err, gerrors.NewErrInvalidRegistration(nil, "registered with a nil converter"))
		return m
	}
	typ := binding.TargetType()
	m.converters.types[typ] = func(reflect.Type) (codecs.SurrogateBinding, error) {
		return binding, nil
	}
	m.known(binding.SurrogateType())
	return m.known(typ)
}

// AddConverterFamily registers a converter factory serving every
// instantiation of the generic type the exemplar instantiates
func (m *Manifest) AddConverterFamily(exemplar reflect.Type, factory ConverterFactory) *Manifest {
	if family, ok := m.family(exemplar, factory != nil); ok {
		m.converters.families[family] = factory
	}
	return m
}

// AddCopier registers the copier of T
func AddCopier[T any](m *Manifest, copier cloning.DeepCopier[T]) *Manifest {
	typ := reflect.TypeFor[T]()
	if !m.check(typ, copier != nil, "registered with a nil copier") {
		return m
	}
	return m.AddFieldCopier(typ, cloning.Untyped(copier))
}

// AddFieldCopier registers the copier of the given type
func (m *Manifest) AddFieldCopier(typ reflect.Type, copier cloning.Copier) *Manifest {
	if !m.check(typ, copier != nil, "registered with a nil copier") {
		return m
	}
	m.copiers.types[typ] = func(reflect.Type, cloning.Provider) (cloning.Copier, error) {
		return copier, nil
	}
	return m
}

// AddCopierFamily registers a copier factory serving every instantiation of
// the generic type the exemplar instantiates
func (m *Manifest) AddCopierFamily(exemplar reflect.Type, factory CopierFactory) *Manifest {
	if family, ok := m.family(exemplar, factory != nil); ok {
		m.copiers.families[family] = factory
	}
	return m
}

// AddBaseCopier registers the base copier of the given struct type
func (m *Manifest) AddBaseCopier(typ reflect.Type, copier cloning.BaseCopier) *Manifest {
	if !m.check(typ, copier != nil, "registered with a nil base copier") ||
		!m.check(typ, typ.Kind() == reflect.Struct, "not a struct") {
		return m
	}
	m.baseCopiers.types[typ] = func(reflect.Type, cloning.Provider) (cloning.BaseCopier, error) {
		return copier, nil
	}
	return m
}

// AddBaseCopierFamily registers a base copier factory serving every
// instantiation of the generic struct the exemplar instantiates
func (m *Manifest) AddBaseCopierFamily(exemplar reflect.Type, factory BaseCopierFactory) *Manifest {
	if family, ok := m.family(exemplar, factory != nil); ok {
		m.baseCopiers.families[family] = factory
	}
	return m
}

// AddImmutable declares T immutable: copies of T share the original
func AddImmutable[T any](m *Manifest) *Manifest {
	return m.AddImmutableType(reflect.TypeFor[T]())
}

// AddImmutableType declares the given type immutable
func (m *Manifest) AddImmutableType(typ reflect.Type) *Manifest {
	if !m.check(typ, true, "") {
		return m
	}
	m.immutables = append(m.immutables, typ)
	return m
}

// AddCBORType opts T in to CBOR encoding. T and *T are then encoded as opaque payloads.
func AddCBORType[T any](m *Manifest) *Manifest {
	typ := reflect.TypeFor[T]()
	if !m.check(typ, typ.Kind() != reflect.Pointer && typ.Kind() != reflect.Interface, "not a value type") {
		return m
	}
	m.cborTypes = append(m.cborTypes, typ)
	return m.known(typ)
}

// AddKnownTypes makes the given types resolvable by name before any codec
// resolution. Generic instantiations received from peers must be known.
func (m *Manifest) AddKnownTypes(typs ...reflect.Type) *Manifest {
	for _, typ := range typs {
		if m.check(typ, true, "") {
			m.known(typ)
		}
	}
	return m
}

// AddSpecializableCodec adds a specializable extension. Extensions are
// consulted in registration order, before the built-in ones.
func (m *Manifest) AddSpecializableCodec(extension codecs.SpecializableCodec) *Manifest {
	if extension != nil {
		m.specializableCodecs = append(m.specializableCodecs, extension)
	}
	return m
}

// AddGeneralizedCodec adds a generalized extension
func (m *Manifest) AddGeneralizedCodec(extension codecs.GeneralizedCodec) *Manifest {
	if extension != nil {
		m.generalizedCodecs = append(m.generalizedCodecs, extension)
	}
	return m
}

// AddSpecializableBaseCodec adds a specializable base codec extension
func (m *Manifest) AddSpecializableBaseCodec(extension codecs.SpecializableBaseCodec) *Manifest {
	if extension != nil {
		m.specializableBaseCodecs = append(m.specializableBaseCodecs, extension)
	}
	return m
}

// AddGeneralizedBaseCodec adds a generalized base codec extension
func (m *Manifest) AddGeneralizedBaseCodec(extension codecs.GeneralizedBaseCodec) *Manifest {
	if extension != nil {
		m.generalizedBaseCodecs = append(m.generalizedBaseCodecs, extension)
	}
	return m
}

// AddSpecializableCopier adds a specializable copier extension
func (m *Manifest) AddSpecializableCopier(extension cloning.SpecializableCopier) *Manifest {
	if extension != nil {
		m.specializableCopiers = append(m.specializableCopiers, extension)
	}
	return m
}

// AddGeneralizedCopier adds a generalized copier extension
func (m *Manifest) AddGeneralizedCopier(extension cloning.GeneralizedCopier) *Manifest {
	if extension != nil {
		m.generalizedCopiers = append(m.generalizedCopiers, extension)
	}
	return m
}

// RegisterType registers the reflective base codec and base copier of the struct T.
// Both T and *T then resolve.
func RegisterType[T any](m *Manifest) *Manifest {
	typ := reflect.TypeFor[T]()
	if !m.check(typ, typ.Kind() == reflect.Struct, "not a struct") {
		return m
	}
	m.baseCodecs.types[typ] = structBaseCodec
	m.baseCopiers.types[typ] = structBaseCopier
	return m.known(typ)
}

// RegisterGenericType registers the reflective base codec and base copier
// of every instantiation of the generic struct the exemplar instantiates
func (m *Manifest) RegisterGenericType(exemplar reflect.Type) *Manifest {
	if !m.check(exemplar, exemplar != nil && exemplar.Kind() == reflect.Struct, "not a struct") {
		return m
	}
	if family, ok := m.family(exemplar, true); ok {
		m.baseCodecs.families[family] = structBaseCodec
		m.baseCopiers.families[family] = structBaseCopier
	}
	return m
}

func structBaseCodec(typ reflect.Type, provider codecs.Provider) (codecs.BaseSerializer, error) {
	return codecs.NewStructBaseCodec(typ, provider)
}

func structBaseCopier(typ reflect.Type, provider cloning.Provider) (cloning.BaseCopier, error) {
	return cloning.NewStructBaseCopier(typ, provider)
}

// check records a registration error unless the type is present, supported and ok holds
func (m *Manifest) check(typ reflect.Type, ok bool, reason string) bool {
	if typ == nil {
		m.err = multierr.Append(m.err, gerrors.NewErrInvalidRegistration(nil, "no type given"))
		return false
	}
	if why, unsupported := types.Unsupported(typ); unsupported {
		m.err = multierr.Append(m.err, gerrors.NewErrUnsupportedType(typ, why))
		return false
	}
	if !ok {
		m.err = multierr.Append(m.err, gerrors.NewErrInvalidRegistration(typ, reason))
		return false
	}
	return true
}

// family returns the generic family of an exemplar, recording an error when it has none
func (m *Manifest) family(exemplar reflect.Type, ok bool) (string, bool) {
	if !m.check(exemplar, ok, "registered with a nil factory") {
		return "", false
	}
	family, generic := types.Family(exemplar)
	if !generic {
		m.err = multierr.Append(m.err, gerrors.NewErrInvalidRegistration(exemplar, "not a generic instantiation"))
		return "", false
	}
	return family, true
}

func (m *Manifest) known(typ reflect.Type) *Manifest {
	m.knownTypes = append(m.knownTypes, typ)
	return m
}
