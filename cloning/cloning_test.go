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

package cloning_test

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/tochemey/wirecodec/cloning"
	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/serializers"
)

type Node struct {
	Name string
	Next *Node
	Tags []string
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 { return s.Side * s.Side }

func newProvider(t *testing.T) *serializers.CodecProvider {
	t.Helper()
	m := serializers.NewManifest()
	serializers.RegisterType[Node](m)
	serializers.RegisterType[Square](m)
	provider, err := serializers.New(m)
	require.NoError(t, err)
	return provider
}

func TestCopyContext(t *testing.T) {
	ctx := cloning.NewCopyContext()
	original := &Node{Name: "a"}
	copied := &Node{Name: "a"}

	_, ok := ctx.TryGetCopy(reflect.ValueOf(original))
	assert.False(t, ok)

	ctx.RecordCopy(reflect.ValueOf(original), copied)
	got, ok := ctx.TryGetCopy(reflect.ValueOf(original))
	require.True(t, ok)
	assert.Same(t, copied, got)

	// values without identity are never recorded
	ctx.RecordCopy(reflect.ValueOf(3), 3)
	_, ok = ctx.TryGetCopy(reflect.ValueOf(3))
	assert.False(t, ok)

	ctx.Reset()
	_, ok = ctx.TryGetCopy(reflect.ValueOf(original))
	assert.False(t, ok)
}

func TestShallowCopier(t *testing.T) {
	node := &Node{Name: "a"}
	out, err := cloning.ShallowCopier{}.DeepCopy(node, cloning.NewCopyContext())
	require.NoError(t, err)
	assert.Same(t, node, out)
}

func TestSliceCopier(t *testing.T) {
	provider := newProvider(t)

	t.Run("With immutable elements", func(t *testing.T) {
		copier := cloning.NewSliceCopier(reflect.TypeFor[[]int](), provider)
		input := []int{1, 2, 3}
		out, err := copier.DeepCopy(input, cloning.NewCopyContext())
		require.NoError(t, err)

		copied := out.([]int)
		assert.Equal(t, input, copied)
		copied[0] = 42
		assert.Equal(t, 1, input[0])
	})
	t.Run("With shared elements", func(t *testing.T) {
		copier := cloning.NewSliceCopier(reflect.TypeFor[[]*Node](), provider)
		shared := &Node{Name: "shared", Tags: []string{"x"}}
		out, err := copier.DeepCopy([]*Node{shared, shared}, cloning.NewCopyContext())
		require.NoError(t, err)

		copied := out.([]*Node)
		require.Len(t, copied, 2)
		assert.NotSame(t, shared, copied[0])
		assert.Same(t, copied[0], copied[1])
		assert.Equal(t, shared, copied[0])
	})
	t.Run("With a nil slice", func(t *testing.T) {
		copier := cloning.NewSliceCopier(reflect.TypeFor[[]int](), provider)
		out, err := copier.DeepCopy([]int(nil), cloning.NewCopyContext())
		require.NoError(t, err)
		assert.Nil(t, out)
	})
	t.Run("With a value of another type", func(t *testing.T) {
		copier := cloning.NewSliceCopier(reflect.TypeFor[[]int](), provider)
		_, err := copier.DeepCopy([]string{"a"}, cloning.NewCopyContext())
		require.ErrorIs(t, err, gerrors.ErrUnexpectedValueType)
	})
}

func TestArrayCopier(t *testing.T) {
	provider := newProvider(t)
	copier := cloning.NewArrayCopier(reflect.TypeFor[[2]*Node](), provider)

	input := [2]*Node{{Name: "a"}, nil}
	out, err := copier.DeepCopy(input, cloning.NewCopyContext())
	require.NoError(t, err)

	copied := out.([2]*Node)
	assert.NotSame(t, input[0], copied[0])
	assert.Equal(t, input[0], copied[0])
	assert.Nil(t, copied[1])
}

func TestMapCopier(t *testing.T) {
	provider := newProvider(t)
	assert.True(t, cloning.MapCopiers{}.IsSupportedType(reflect.TypeFor[map[string]int]()))
	assert.False(t, cloning.MapCopiers{}.IsSupportedType(reflect.TypeFor[[]int]()))

	typ := reflect.TypeFor[map[string]*Node]()
	copier, err := cloning.MapCopiers{}.GetSpecializedCopier(typ, provider)
	require.NoError(t, err)

	shared := &Node{Name: "shared"}
	input := map[string]*Node{"a": shared, "b": shared}
	out, err := copier.DeepCopy(input, cloning.NewCopyContext())
	require.NoError(t, err)

	copied := out.(map[string]*Node)
	require.Len(t, copied, 2)
	assert.NotSame(t, shared, copied["a"])
	assert.Same(t, copied["a"], copied["b"])

	copied["c"] = &Node{}
	assert.Len(t, input, 2)
}

func TestObjectCopier(t *testing.T) {
	provider := newProvider(t)
	copier := cloning.NewObjectCopier(provider)

	out, err := copier.DeepCopy(Shape(Square{Side: 2}), cloning.NewCopyContext())
	require.NoError(t, err)
	assert.Equal(t, Square{Side: 2}, out)

	out, err = copier.DeepCopy(nil, cloning.NewCopyContext())
	require.NoError(t, err)
	assert.Nil(t, out)

	_, err = copier.DeepCopy(make(chan int), cloning.NewCopyContext())
	require.ErrorIs(t, err, gerrors.ErrUnsupportedType)
}

func TestProtoMessageCopier(t *testing.T) {
	copier := cloning.ProtoMessageCopier{}
	assert.True(t, copier.IsSupportedType(reflect.TypeFor[*wrapperspb.StringValue]()))
	assert.False(t, copier.IsSupportedType(reflect.TypeFor[wrapperspb.StringValue]()))

	input := wrapperspb.String("hello")
	ctx := cloning.NewCopyContext()
	out, err := copier.DeepCopy(input, ctx)
	require.NoError(t, err)

	copied := out.(*wrapperspb.StringValue)
	assert.NotSame(t, input, copied)
	assert.Equal(t, "hello", copied.GetValue())

	again, err := copier.DeepCopy(input, ctx)
	require.NoError(t, err)
	assert.Same(t, copied, again)
}

func TestErrorCopier(t *testing.T) {
	copier := cloning.ErrorCopier{}
	assert.True(t, copier.IsSupportedType(reflect.TypeOf(errors.New("x"))))
	assert.False(t, copier.IsSupportedType(reflect.TypeFor[error]()))

	errClosed := errors.New("closed")
	input := fmt.Errorf("send: %w", errClosed)
	out, err := copier.DeepCopy(input, cloning.NewCopyContext())
	require.NoError(t, err)
	assert.Same(t, input, out)
	assert.ErrorIs(t, out.(error), errClosed)

	provider := newProvider(t)
	resolved, err := provider.GetCopier(reflect.TypeOf(input))
	require.NoError(t, err)
	assert.IsType(t, cloning.ErrorCopier{}, resolved)
}

func TestAdapters(t *testing.T) {
	provider := newProvider(t)
	raw, err := provider.GetCopier(reflect.TypeFor[*Node]())
	require.NoError(t, err)

	typed := cloning.Typed[*Node](raw)
	input := &Node{Name: "a", Next: &Node{Name: "b"}}
	out, err := typed.DeepCopy(input, cloning.NewCopyContext())
	require.NoError(t, err)
	assert.NotSame(t, input, out)
	assert.NotSame(t, input.Next, out.Next)
	assert.Equal(t, input, out)

	untyped := cloning.Untyped[*Node](typed)
	_, err = untyped.DeepCopy("a", cloning.NewCopyContext())
	require.ErrorIs(t, err, gerrors.ErrUnexpectedValueType)
}
