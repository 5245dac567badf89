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
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	gerrors "github.com/tochemey/wirecodec/errors"
)

func TestWarmup(t *testing.T) {
	t.Run("With resolvable types", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		provider := newProvider(t, baseManifest())

		typs := []reflect.Type{
			reflect.TypeFor[*Node](),
			reflect.TypeFor[[]Square](),
			reflect.TypeFor[map[string]Money](),
			reflect.TypeFor[Level](),
		}
		require.NoError(t, provider.Warmup(context.Background(), typs...))

		for _, typ := range typs {
			codec, err := provider.TryGetCodec(typ)
			require.NoError(t, err)
			assert.NotNil(t, codec)
		}
		_, ok := provider.Registry().TypeOf(provider.Registry().Name(reflect.TypeFor[Level]()))
		assert.True(t, ok)
	})
	t.Run("With failing types", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		provider := newProvider(t, baseManifest())

		err := provider.Warmup(context.Background(),
			reflect.TypeFor[*Node](),
			reflect.TypeFor[Opaque](),
			reflect.TypeFor[chan int](),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, gerrors.ErrCodecNotFound)
		assert.ErrorIs(t, err, gerrors.ErrUnsupportedType)

		codec, err := provider.TryGetCodec(reflect.TypeFor[*Node]())
		require.NoError(t, err)
		assert.NotNil(t, codec)
	})
	t.Run("With a cancelled context", func(t *testing.T) {
		defer goleak.VerifyNone(t)
		provider := newProvider(t, baseManifest())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := provider.Warmup(ctx, reflect.TypeFor[*Node]())
		assert.ErrorIs(t, err, context.Canceled)
	})
}
