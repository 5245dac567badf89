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

// Package serializers resolves the codecs, base codecs, activators and
// copiers of runtime types. Resolution happens at first use, follows a fixed
// order of strategies and is cached for the lifetime of the provider.
package serializers

import (
	"context"
	"reflect"
	"sync"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/atomic"

	"github.com/tochemey/wirecodec/activators"
	"github.com/tochemey/wirecodec/cloning"
	"github.com/tochemey/wirecodec/codecs"
	imetric "github.com/tochemey/wirecodec/internal/metric"
	"github.com/tochemey/wirecodec/internal/types"
	"github.com/tochemey/wirecodec/internal/xsync"
	"github.com/tochemey/wirecodec/log"
)

// typePair keys the adapted codecs: the field type and the requested type
type typePair struct {
	field     reflect.Type
	requested reflect.Type
}

func hashTypePair(k typePair) uint64 {
	return xsync.HashTypePair(k.field, k.requested)
}

// CodecProvider is the registry and resolver of codecs and copiers.
// It is safe for concurrent use.
type CodecProvider struct {
	manifest      *Manifest
	registry      types.Registry
	logger        log.Logger
	meterProvider metric.MeterProvider
	metric        *imetric.ResolutionMetric
	shards        int

	initialized *atomic.Bool
	mu          sync.Mutex

	codecs      *xsync.ShardedMap[reflect.Type, codecs.FieldCodec]
	adapted     *xsync.ShardedMap[typePair, any]
	baseCodecs  *xsync.ShardedMap[reflect.Type, codecs.BaseSerializer]
	activators  *xsync.ShardedMap[reflect.Type, activators.Untyped]
	copiers     *xsync.ShardedMap[reflect.Type, cloning.Copier]
	baseCopiers *xsync.ShardedMap[reflect.Type, cloning.BaseCopier]

	builtins   map[reflect.Type]codecs.FieldCodec
	immutables mapset.Set[reflect.Type]
	cbor       *codecs.CBORCodecs

	specializableCodecs     []codecs.SpecializableCodec
	generalizedCodecs       []codecs.GeneralizedCodec
	specializableBaseCodecs []codecs.SpecializableBaseCodec
	generalizedBaseCodecs   []codecs.GeneralizedBaseCodec
	specializableCopiers    []cloning.SpecializableCopier
	generalizedCopiers      []cloning.GeneralizedCopier
}

var (
	_ codecs.Provider  = (*CodecProvider)(nil)
	_ cloning.Provider = (*CodecProvider)(nil)
)

// New creates a CodecProvider over the given manifest.
// It fails when the manifest holds registration errors.
func New(manifest *Manifest, opts ...Option) (*CodecProvider, error) {
	if manifest == nil {
		manifest = NewManifest()
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}

	p := &CodecProvider{
		manifest:    manifest,
		registry:    types.NewRegistry(),
		logger:      log.DiscardLogger,
		initialized: atomic.NewBool(false),
	}
	for _, opt := range opts {
		opt.Apply(p)
	}

	resolutionMetric, err := imetric.NewResolutionMetric(imetric.New(imetric.WithMeterProvider(p.meterProvider)).Meter())
	if err != nil {
		return nil, err
	}
	p.metric = resolutionMetric

	p.codecs = xsync.NewShardedMap[reflect.Type, codecs.FieldCodec](p.shards, xsync.HashType)
	p.adapted = xsync.NewShardedMap[typePair, any](p.shards, hashTypePair)
	p.baseCodecs = xsync.NewShardedMap[reflect.Type, codecs.BaseSerializer](p.shards, xsync.HashType)
	p.activators = xsync.NewShardedMap[reflect.Type, activators.Untyped](p.shards, xsync.HashType)
	p.copiers = xsync.NewShardedMap[reflect.Type, cloning.Copier](p.shards, xsync.HashType)
	p.baseCopiers = xsync.NewShardedMap[reflect.Type, cloning.BaseCopier](p.shards, xsync.HashType)

	p.registry.Register(codecs.WireErrorType())
	for _, typ := range manifest.knownTypes {
		p.registry.Register(typ)
	}
	return p, nil
}

// Registry returns the name registry used to embed and resolve runtime types on the wire
func (p *CodecProvider) Registry() types.Registry {
	return p.registry
}

// Logger returns the provider logger
func (p *CodecProvider) Logger() log.Logger {
	return p.logger
}

// Initialize collects the extension sources. It runs once; later calls are no-ops.
// Every resolution initializes the provider when needed.
func (p *CodecProvider) Initialize() error {
	if p.initialized.Load() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.initialized.Load() {
		return nil
	}

	cbor, err := codecs.NewCBORCodecs(p.manifest.cborTypes...)
	if err != nil {
		return err
	}
	p.cbor = cbor
	p.builtins = builtinCodecs(p)
	p.immutables = mapset.NewSet(
		reflect.TypeFor[time.Time](),
		reflect.TypeFor[time.Duration](),
		reflect.TypeFor[uuid.UUID](),
	)
	p.immutables.Append(p.manifest.immutables...)

	p.specializableCodecs = append(append(p.specializableCodecs, p.manifest.specializableCodecs...),
		codecs.MapCodecs{},
		codecs.NewPointerCodecs(p),
		p.cbor,
	)
	p.generalizedCodecs = append(append(p.generalizedCodecs, p.manifest.generalizedCodecs...),
		codecs.ProtoMessageCodec{},
		codecs.BinaryMarshalerCodec{},
		codecs.ErrorCodec{},
	)
	p.specializableBaseCodecs = append(p.specializableBaseCodecs, p.manifest.specializableBaseCodecs...)
	p.generalizedBaseCodecs = append(p.generalizedBaseCodecs, p.manifest.generalizedBaseCodecs...)
	p.specializableCopiers = append(append(p.specializableCopiers, p.manifest.specializableCopiers...),
		cloning.MapCopiers{},
		cloning.NewPointerCopiers(p),
		cloning.NewCBORCopiers(p.cbor),
	)
	p.generalizedCopiers = append(append(p.generalizedCopiers, p.manifest.generalizedCopiers...),
		cloning.ProtoMessageCopier{},
		cloning.BinaryMarshalerCopier{},
		cloning.ErrorCopier{},
	)

	p.initialized.Store(true)
	p.logger.Debugf("codec provider initialized with %d specializable and %d generalized codec extensions",
		len(p.specializableCodecs), len(p.generalizedCodecs))
	return nil
}

// builtinCodecs returns the codecs of the well-known types
func builtinCodecs(p *CodecProvider) map[reflect.Type]codecs.FieldCodec {
	return map[reflect.Type]codecs.FieldCodec{
		reflect.TypeFor[bool]():          codecs.Untyped[bool](codecs.BoolCodec{}),
		reflect.TypeFor[int]():           codecs.Untyped[int](codecs.IntCodec[int]{}),
		reflect.TypeFor[int8]():          codecs.Untyped[int8](codecs.IntCodec[int8]{}),
		reflect.TypeFor[int16]():         codecs.Untyped[int16](codecs.IntCodec[int16]{}),
		reflect.TypeFor[int32]():         codecs.Untyped[int32](codecs.IntCodec[int32]{}),
		reflect.TypeFor[int64]():         codecs.Untyped[int64](codecs.IntCodec[int64]{}),
		reflect.TypeFor[uint]():          codecs.Untyped[uint](codecs.UintCodec[uint]{}),
		reflect.TypeFor[uint8]():         codecs.Untyped[uint8](codecs.UintCodec[uint8]{}),
		reflect.TypeFor[uint16]():        codecs.Untyped[uint16](codecs.UintCodec[uint16]{}),
		reflect.TypeFor[uint32]():        codecs.Untyped[uint32](codecs.UintCodec[uint32]{}),
		reflect.TypeFor[uint64]():        codecs.Untyped[uint64](codecs.UintCodec[uint64]{}),
		reflect.TypeFor[uintptr]():       codecs.Untyped[uintptr](codecs.UintCodec[uintptr]{}),
		reflect.TypeFor[float32]():       codecs.Untyped[float32](codecs.Float32Codec{}),
		reflect.TypeFor[float64]():       codecs.Untyped[float64](codecs.Float64Codec{}),
		reflect.TypeFor[complex64]():     codecs.Untyped[complex64](codecs.Complex64Codec{}),
		reflect.TypeFor[complex128]():    codecs.Untyped[complex128](codecs.Complex128Codec{}),
		reflect.TypeFor[string]():        codecs.Untyped[string](codecs.StringCodec{}),
		reflect.TypeFor[[]byte]():        codecs.Untyped[[]byte](codecs.BytesCodec{}),
		reflect.TypeFor[time.Time]():     codecs.Untyped[time.Time](codecs.TimeCodec{}),
		reflect.TypeFor[time.Duration](): codecs.Untyped[time.Duration](codecs.IntCodec[time.Duration]{}),
		reflect.TypeFor[uuid.UUID]():     codecs.Untyped[uuid.UUID](codecs.UUIDCodec{}),
		reflect.TypeFor[any]():           codecs.NewObjectCodec(p),
	}
}

func (p *CodecProvider) ensureInitialized() error {
	if p.initialized.Load() {
		return nil
	}
	return p.Initialize()
}

func (p *CodecProvider) record(kind, outcome string) {
	p.metric.Record(context.Background(), kind, outcome)
}

// GetActivator returns the registered activator of the type, or the default one
func (p *CodecProvider) GetActivator(typ reflect.Type) (activators.Untyped, error) {
	if activator, ok := p.activators.Get(typ); ok {
		return activator, nil
	}
	activator, ok := p.manifest.activators[typ]
	if !ok {
		activator = activators.Default(typ)
	}
	activator, _ = p.activators.GetOrSet(typ, activator)
	return activator, nil
}

// GetValueSerializer returns the value serializer registered for the type or
// its generic family, or nil when there is none
func (p *CodecProvider) GetValueSerializer(typ reflect.Type) (codecs.BaseSerializer, error) {
	factory, ok := p.manifest.valueSerializers.lookup(typ)
	if !ok {
		return nil, nil
	}
	return factory(typ, p)
}

// GetCodec returns the codec of T
func GetCodec[T any](p *CodecProvider) (codecs.Codec[T], error) {
	return GetCodecFor[T](p, reflect.TypeFor[T]())
}

// GetCodecFor returns the codec of the given field type seen as a Codec[T]
func GetCodecFor[T any](p *CodecProvider, fieldType reflect.Type) (codecs.Codec[T], error) {
	codec, err := TryGetCodecFor[T](p, fieldType)
	if err != nil {
		return nil, err
	}
	if codec == nil {
		return nil, notFound(fieldType)
	}
	return codec, nil
}

// TryGetCodec returns the codec of T or nil when none resolves
func TryGetCodec[T any](p *CodecProvider) (codecs.Codec[T], error) {
	return TryGetCodecFor[T](p, reflect.TypeFor[T]())
}

// TryGetCodecFor returns the codec of the given field type seen as a Codec[T],
// or nil when none resolves
func TryGetCodecFor[T any](p *CodecProvider, fieldType reflect.Type) (codecs.Codec[T], error) {
	key := typePair{field: fieldType, requested: reflect.TypeFor[T]()}
	if cached, ok := p.adapted.Get(key); ok {
		return cached.(codecs.Codec[T]), nil
	}

	raw, err := p.TryGetCodec(fieldType)
	if err != nil || raw == nil {
		return nil, err
	}
	cached, _ := p.adapted.GetOrSet(key, codecs.Adapt[T](raw))
	return cached.(codecs.Codec[T]), nil
}

// GetCopier returns the copier of T
func GetCopier[T any](p *CodecProvider) (cloning.DeepCopier[T], error) {
	copier, err := p.GetCopier(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return cloning.Typed[T](copier), nil
}
