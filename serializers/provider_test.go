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
	"bytes"
	"reflect"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/atomic"
	"go.uber.org/goleak"

	"github.com/tochemey/wirecodec/activators"
	"github.com/tochemey/wirecodec/cloning"
	"github.com/tochemey/wirecodec/codecs"
	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/log"
)

func newProvider(t *testing.T, manifest *Manifest, opts ...Option) *CodecProvider {
	t.Helper()
	provider, err := New(manifest, opts...)
	require.NoError(t, err)
	return provider
}

func baseManifest() *Manifest {
	m := NewManifest()
	RegisterType[Node](m)
	RegisterType[Square](m)
	RegisterType[MoneyProxy](m)
	RegisterType[EntityProxy](m)
	AddConverter[Money, MoneyProxy](m, moneyConverter{})
	return m
}

func TestNew(t *testing.T) {
	t.Run("With a nil manifest", func(t *testing.T) {
		provider, err := New(nil)
		require.NoError(t, err)
		require.NotNil(t, provider)
		assert.NoError(t, provider.Initialize())
		assert.NoError(t, provider.Initialize())
	})
	t.Run("With options", func(t *testing.T) {
		logger := log.NewZap(log.DebugLevel, new(bytes.Buffer))
		provider := newProvider(t, nil,
			WithLogger(logger),
			WithMeterProvider(noop.NewMeterProvider()),
			WithShards(4),
		)
		assert.Same(t, logger, provider.Logger())
	})
	t.Run("With registration errors", func(t *testing.T) {
		m := NewManifest()
		RegisterType[int](m)
		m.AddFieldCodec(reflect.TypeFor[chan int](), derivedCodec{})
		m.AddCodecFamily(reflect.TypeFor[Node](), func(reflect.Type, codecs.Provider) (codecs.FieldCodec, error) {
			return nil, nil
		})
		m.AddFieldCodec(nil, derivedCodec{})

		_, err := New(m)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrInvalidRegistration)
		assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)
	})
}

func TestGetCodec(t *testing.T) {
	provider := newProvider(t, baseManifest())

	testCases := []struct {
		name     string
		typ      reflect.Type
		expected any
	}{
		{name: "pointer to registered struct", typ: reflect.TypeFor[*Node](), expected: &codecs.ConcreteTypeCodec{}},
		{name: "registered struct value", typ: reflect.TypeFor[Node](), expected: &codecs.ValueTypeCodec{}},
		{name: "slice", typ: reflect.TypeFor[[]*Node](), expected: &codecs.SliceCodec{}},
		{name: "array", typ: reflect.TypeFor[[2][3]int](), expected: &codecs.ArrayCodec{}},
		{name: "map", typ: reflect.TypeFor[map[string]*Node](), expected: &codecs.MapCodec{}},
		{name: "enum", typ: reflect.TypeFor[Level](), expected: &codecs.EnumCodec{}},
		{name: "converted value", typ: reflect.TypeFor[Money](), expected: &codecs.ValueTypeSurrogateCodec{}},
		{name: "pointer to converted value", typ: reflect.TypeFor[*Money](), expected: &codecs.SurrogateCodec{}},
		{name: "pointer to basic type", typ: reflect.TypeFor[*int](), expected: &codecs.PointerCodec{}},
		{name: "interface", typ: reflect.TypeFor[Shape](), expected: &codecs.AbstractTypeCodec{}},
		{name: "empty interface", typ: reflect.TypeFor[any](), expected: &codecs.AbstractTypeCodec{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			codec, err := provider.GetCodec(tc.typ)
			require.NoError(t, err)
			assert.IsType(t, tc.expected, codecs.Unwrap(codec))

			again, err := provider.GetCodec(tc.typ)
			require.NoError(t, err)
			assert.Same(t, codecs.Unwrap(codec), codecs.Unwrap(again))
		})
	}

	t.Run("With well-known types", func(t *testing.T) {
		for _, typ := range []reflect.Type{
			reflect.TypeFor[int](),
			reflect.TypeFor[string](),
			reflect.TypeFor[[]byte](),
			reflect.TypeFor[time.Time](),
			reflect.TypeFor[time.Duration](),
			reflect.TypeFor[uuid.UUID](),
		} {
			codec, err := provider.GetCodec(typ)
			require.NoError(t, err)
			assert.NotNil(t, codec)
		}
	})
	t.Run("With a nil type", func(t *testing.T) {
		codec, err := provider.GetCodec(nil)
		require.NoError(t, err)
		assert.Equal(t, codecs.VoidCodec{}, codec)
	})
	t.Run("With unsupported types", func(t *testing.T) {
		for _, typ := range []reflect.Type{
			reflect.TypeFor[chan int](),
			reflect.TypeFor[func()](),
			reflect.TypeFor[unsafe.Pointer](),
			reflect.TypeFor[**int](),
		} {
			_, err := provider.GetCodec(typ)
			assert.ErrorIs(t, err, gerrors.ErrUnsupportedType, typ.String())
		}
	})
	t.Run("With a type nothing resolves", func(t *testing.T) {
		_, err := provider.GetCodec(reflect.TypeFor[Opaque]())
		assert.ErrorIs(t, err, gerrors.ErrCodecNotFound)

		codec, err := provider.TryGetCodec(reflect.TypeFor[*Opaque]())
		require.NoError(t, err)
		assert.Nil(t, codec)
	})
	t.Run("With resolved types registered by name", func(t *testing.T) {
		_, err := provider.GetCodec(reflect.TypeFor[*Node]())
		require.NoError(t, err)
		typ, ok := provider.Registry().TypeOf(provider.Registry().Name(reflect.TypeFor[Node]()))
		require.True(t, ok)
		assert.Equal(t, reflect.TypeFor[Node](), typ)
	})
}

func TestGetCodecPrecedence(t *testing.T) {
	t.Run("With a registered codec overriding a well-known one", func(t *testing.T) {
		m := NewManifest()
		AddCodec[int](m, fixedCodec{})
		provider := newProvider(t, m)

		codec, err := GetCodec[int](provider)
		require.NoError(t, err)
		assert.IsType(t, fixedCodec{}, codecs.Unwrap(codec))
	})
	t.Run("With a codec family invoked once per instantiation", func(t *testing.T) {
		calls := atomic.NewInt32(0)
		m := NewManifest()
		m.AddCodecFamily(reflect.TypeFor[Pair[int, int]](), func(typ reflect.Type, provider codecs.Provider) (codecs.FieldCodec, error) {
			calls.Inc()
			base, err := codecs.NewStructBaseCodec(typ, provider)
			if err != nil {
				return nil, err
			}
			return codecs.NewValueTypeCodec(typ, base, provider), nil
		})
		provider := newProvider(t, m)

		for range 3 {
			_, err := provider.GetCodec(reflect.TypeFor[Pair[string, bool]]())
			require.NoError(t, err)
		}
		_, err := provider.GetCodec(reflect.TypeFor[Pair[int, Level]]())
		require.NoError(t, err)
		assert.EqualValues(t, 2, calls.Load())
	})
	t.Run("With a codec covering derived types", func(t *testing.T) {
		m := NewManifest()
		m.AddFieldCodec(reflect.TypeFor[Base](), derivedCodec{})
		provider := newProvider(t, m)

		codec, err := provider.GetCodec(reflect.TypeFor[Derived]())
		require.NoError(t, err)
		assert.IsType(t, derivedCodec{}, codecs.Unwrap(codec))
	})
	t.Run("With a value serializer family", func(t *testing.T) {
		calls := atomic.NewInt32(0)
		m := NewManifest()
		m.AddValueSerializerFamily(reflect.TypeFor[Pair[int, int]](), func(typ reflect.Type, provider codecs.Provider) (codecs.BaseSerializer, error) {
			calls.Inc()
			return codecs.NewStructBaseCodec(typ, provider)
		})
		provider := newProvider(t, m)

		serializer, err := provider.GetValueSerializer(reflect.TypeFor[Pair[string, int]]())
		require.NoError(t, err)
		assert.IsType(t, &codecs.StructBaseCodec{}, serializer)

		codec, err := provider.GetCodec(reflect.TypeFor[Pair[string, int]]())
		require.NoError(t, err)
		assert.IsType(t, &codecs.ValueTypeCodec{}, codecs.Unwrap(codec))
		assert.EqualValues(t, 2, calls.Load())

		serializer, err = provider.GetValueSerializer(reflect.TypeFor[Node]())
		require.NoError(t, err)
		assert.Nil(t, serializer)
	})
	t.Run("With a base codec preferred over a converter", func(t *testing.T) {
		m := NewManifest()
		m.RegisterGenericType(reflect.TypeFor[Pair[int, int]]())
		m.AddConverterFamily(reflect.TypeFor[Pair[int, int]](), pairConverters)
		provider := newProvider(t, m)

		codec, err := provider.GetCodec(reflect.TypeFor[Pair[int, string]]())
		require.NoError(t, err)
		assert.IsType(t, &codecs.ValueTypeCodec{}, codecs.Unwrap(codec))
	})
	t.Run("With extensions ahead of the built-in ones", func(t *testing.T) {
		m := NewManifest()
		m.AddGeneralizedCodec(opaqueCodec{})
		m.AddSpecializableCodec(opaqueCodecs{})
		provider := newProvider(t, m)

		codec, err := provider.GetCodec(reflect.TypeFor[Opaque]())
		require.NoError(t, err)
		assert.IsType(t, opaqueCodec{}, codecs.Unwrap(codec))

		codec, err = provider.GetCodec(reflect.TypeFor[map[Opaque]int]())
		require.NoError(t, err)
		assert.IsType(t, derivedCodec{}, codecs.Unwrap(codec))
	})
}

func TestListOfGenericPairs(t *testing.T) {
	pairs := []Pair[int, string]{{First: 1, Second: "one"}, {First: 2, Second: "two"}}

	run := func(t *testing.T, m *Manifest) {
		provider := newProvider(t, m)
		codec, err := GetCodec[[]Pair[int, string]](provider)
		require.NoError(t, err)

		w, reader := newPipe(provider)
		require.NoError(t, codec.WriteField(w, 0, reflect.TypeFor[[]Pair[int, string]](), pairs))

		r := reader()
		field, err := r.ReadFieldHeader()
		require.NoError(t, err)
		actual, err := codec.ReadValue(r, field)
		require.NoError(t, err)
		assert.Equal(t, pairs, actual)
	}

	t.Run("With a base codec family", func(t *testing.T) {
		m := NewManifest()
		m.RegisterGenericType(reflect.TypeFor[Pair[bool, bool]]())
		run(t, m)
	})
	t.Run("With a converter family", func(t *testing.T) {
		m := NewManifest()
		m.AddConverterFamily(reflect.TypeFor[Pair[bool, bool]](), pairConverters)
		run(t, m)
	})
	t.Run("With a value serializer family", func(t *testing.T) {
		m := NewManifest()
		m.AddValueSerializerFamily(reflect.TypeFor[Pair[bool, bool]](), structBaseCodec)
		run(t, m)
	})
}

func TestGetBaseCodec(t *testing.T) {
	m := baseManifest()
	AddConverter[Entity, EntityProxy](m, populatingEntityConverter{})
	provider := newProvider(t, m)

	base, err := provider.GetBaseCodec(reflect.TypeFor[Node]())
	require.NoError(t, err)
	assert.IsType(t, &codecs.StructBaseCodec{}, base)

	base, err = provider.GetBaseCodec(reflect.TypeFor[Entity]())
	require.NoError(t, err)
	assert.IsType(t, &codecs.SurrogateBaseCodec{}, base)

	_, err = provider.GetBaseCodec(reflect.TypeFor[Opaque]())
	assert.ErrorIs(t, err, gerrors.ErrBaseCodecNotFound)
}

func TestGetCopier(t *testing.T) {
	m := baseManifest()
	AddImmutable[*Opaque](m)
	provider := newProvider(t, m)

	testCases := []struct {
		name     string
		typ      reflect.Type
		expected any
	}{
		{name: "basic type", typ: reflect.TypeFor[string](), expected: cloning.ShallowCopier{}},
		{name: "time", typ: reflect.TypeFor[time.Time](), expected: cloning.ShallowCopier{}},
		{name: "registered immutable", typ: reflect.TypeFor[*Opaque](), expected: cloning.ShallowCopier{}},
		{name: "pointer to registered struct", typ: reflect.TypeFor[*Node](), expected: &cloning.ConcreteTypeCopier{}},
		{name: "registered struct value", typ: reflect.TypeFor[Node](), expected: &cloning.ValueTypeCopier{}},
		{name: "slice", typ: reflect.TypeFor[[]*Node](), expected: &cloning.SliceCopier{}},
		{name: "array", typ: reflect.TypeFor[[4]int](), expected: &cloning.ArrayCopier{}},
		{name: "map", typ: reflect.TypeFor[map[string]int](), expected: &cloning.MapCopier{}},
		{name: "converted value", typ: reflect.TypeFor[Money](), expected: &cloning.SurrogateCopier{}},
		{name: "interface", typ: reflect.TypeFor[Shape](), expected: &cloning.ObjectCopier{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			copier, err := provider.GetCopier(tc.typ)
			require.NoError(t, err)
			assert.IsType(t, tc.expected, codecs.Unwrap(copier))
		})
	}

	t.Run("With a type nothing resolves", func(t *testing.T) {
		_, err := provider.GetCopier(reflect.TypeFor[Opaque]())
		assert.ErrorIs(t, err, gerrors.ErrCopierNotFound)
	})
	t.Run("With an unsupported type", func(t *testing.T) {
		_, err := provider.GetCopier(reflect.TypeFor[chan int]())
		assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)
	})
	t.Run("With shallow copyable types", func(t *testing.T) {
		assert.True(t, provider.IsShallowCopyable(reflect.TypeFor[int]()))
		assert.True(t, provider.IsShallowCopyable(reflect.TypeFor[uuid.UUID]()))
		assert.True(t, provider.IsShallowCopyable(reflect.TypeFor[*Opaque]()))
		assert.False(t, provider.IsShallowCopyable(reflect.TypeFor[*Node]()))
	})
}

func TestGetActivator(t *testing.T) {
	created := &Node{Name: "activated"}
	m := baseManifest()
	AddActivator[*Node](m, activators.Func[*Node](func() (*Node, error) {
		return created, nil
	}))
	provider := newProvider(t, m)

	activator, err := provider.GetActivator(reflect.TypeFor[*Node]())
	require.NoError(t, err)
	value, err := activator.CreateValue()
	require.NoError(t, err)
	assert.Same(t, created, value.Interface())

	activator, err = provider.GetActivator(reflect.TypeFor[*Square]())
	require.NoError(t, err)
	value, err = activator.CreateValue()
	require.NoError(t, err)
	assert.Equal(t, &Square{}, value.Interface())
}

func TestConcurrentResolution(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := newProvider(t, baseManifest())
	typ := reflect.TypeFor[map[string][]*Node]()

	const workers = 32
	resolved := make([]codecs.FieldCodec, workers)
	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codec, err := provider.GetCodec(typ)
			assert.NoError(t, err)
			resolved[i] = codec
		}()
	}
	wg.Wait()

	for _, codec := range resolved[1:] {
		assert.Same(t, resolved[0], codec)
	}
}

func TestResolutionLogging(t *testing.T) {
	buffer := new(bytes.Buffer)
	provider := newProvider(t, baseManifest(), WithLogger(log.NewZap(log.DebugLevel, buffer)))

	_, err := provider.GetCodec(reflect.TypeFor[*Node]())
	require.NoError(t, err)
	_, err = provider.GetCodec(reflect.TypeFor[Opaque]())
	require.Error(t, err)
	require.NoError(t, provider.Logger().Flush())

	assert.Contains(t, buffer.String(), "resolved codec of type=(*serializers.Node)")
	assert.Contains(t, buffer.String(), "no codec resolves for type=(serializers.Opaque)")
}
