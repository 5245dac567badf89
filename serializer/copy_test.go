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

package serializer

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/wrapperspb"

	gerrors "github.com/tochemey/wirecodec/errors"
)

func TestDeepCopy(t *testing.T) {
	s := newSerializer(t, newManifest())

	t.Run("With a cyclic graph", func(t *testing.T) {
		a := &Node{Name: "a"}
		b := &Node{Name: "b", Next: a}
		a.Next = b

		copied, err := DeepCopy(s, a)
		require.NoError(t, err)
		assert.NotSame(t, a, copied)
		assert.NotSame(t, b, copied.Next)
		assert.Same(t, copied, copied.Next.Next)
		assert.Equal(t, "b", copied.Next.Name)
	})
	t.Run("With shared references", func(t *testing.T) {
		shared := &Node{Name: "shared"}
		list := []int{1, 2, 3}
		holder := &Holder{
			Nodes:  map[string]*Node{"first": shared, "second": shared},
			Left:   list,
			Right:  list,
			Ignore: "kept",
		}

		copied, err := DeepCopy(s, holder)
		require.NoError(t, err)
		assert.NotSame(t, shared, copied.Nodes["first"])
		assert.Same(t, copied.Nodes["first"], copied.Nodes["second"])
		assert.Equal(t, reflect.ValueOf(copied.Left).Pointer(), reflect.ValueOf(copied.Right).Pointer())
		assert.NotEqual(t, reflect.ValueOf(list).Pointer(), reflect.ValueOf(copied.Left).Pointer())
		assert.Equal(t, "kept", copied.Ignore)

		copied.Left[0] = 100
		assert.Equal(t, 1, list[0])
	})
	t.Run("With an immutable type", func(t *testing.T) {
		token := &Token{Value: "secret"}
		copied, err := DeepCopy(s, token)
		require.NoError(t, err)
		assert.Same(t, token, copied)
	})
	t.Run("With interfaces", func(t *testing.T) {
		drawing := &Drawing{Main: &Circle{Radius: 1}, Shapes: []Shape{Square{Side: 2}, nil}}
		copied, err := s.DeepCopy(drawing)
		require.NoError(t, err)
		assert.Equal(t, drawing, copied)
		assert.NotSame(t, drawing.Main, copied.(*Drawing).Main)
	})
	t.Run("With converted values", func(t *testing.T) {
		wallet := Wallet{Balance: Money{cents: 10, currency: "GBP"}, Pending: &Money{cents: 1, currency: "GBP"}}
		copied, err := DeepCopy(s, wallet)
		require.NoError(t, err)
		assert.Equal(t, wallet, copied)
		assert.NotSame(t, wallet.Pending, copied.Pending)
	})
	t.Run("With a map of slices", func(t *testing.T) {
		value := map[string][]string{"a": {"x", "y"}}
		copied, err := DeepCopy(s, value)
		require.NoError(t, err)
		assert.Equal(t, value, copied)
		copied["a"][0] = "z"
		assert.Equal(t, "x", value["a"][0])
	})
	t.Run("With a proto message", func(t *testing.T) {
		message := wrapperspb.Int64(12)
		copied, err := DeepCopy(s, message)
		require.NoError(t, err)
		assert.NotSame(t, message, copied)
		assert.True(t, proto.Equal(message, copied))
	})
	t.Run("With cbor and binary values", func(t *testing.T) {
		settings := &Settings{Values: map[string]int{"a": 1}, Enabled: true}
		copied, err := DeepCopy(s, settings)
		require.NoError(t, err)
		assert.Equal(t, settings, copied)
		assert.NotSame(t, settings, copied)

		temperature := Temperature{kelvin: 300}
		copiedTemperature, err := DeepCopy(s, temperature)
		require.NoError(t, err)
		assert.Equal(t, temperature, copiedTemperature)
	})
	t.Run("With nil", func(t *testing.T) {
		copied, err := s.DeepCopy(nil)
		require.NoError(t, err)
		assert.Nil(t, copied)

		var node *Node
		copiedNode, err := DeepCopy(s, node)
		require.NoError(t, err)
		assert.Nil(t, copiedNode)
	})
	t.Run("With a type nothing copies", func(t *testing.T) {
		_, err := s.DeepCopy(Opaque{value: 1})
		assert.ErrorIs(t, err, gerrors.ErrCopierNotFound)
	})
}
