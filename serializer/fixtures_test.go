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
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tochemey/wirecodec/serializers"
)

type Node struct {
	Name string
	Next *Node
}

type Holder struct {
	Nodes  map[string]*Node
	Left   []int
	Right  []int
	Ignore string `wire:"-"`
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 { return s.Side * s.Side }

type Circle struct {
	Radius float64
}

func (c *Circle) Area() float64 { return math.Pi * c.Radius * c.Radius }

type Drawing struct {
	Main   Shape
	Shapes []Shape
}

type Level int

const (
	LevelLow Level = iota + 1
	LevelHigh
)

type Money struct {
	cents    int64
	currency string
}

type MoneyProxy struct {
	Cents    int64
	Currency string
}

type moneyConverter struct{}

func (moneyConverter) ToSurrogate(value Money) (MoneyProxy, error) {
	return MoneyProxy{Cents: value.cents, Currency: value.currency}, nil
}

func (moneyConverter) FromSurrogate(surrogate MoneyProxy) (Money, error) {
	return Money{cents: surrogate.Cents, currency: surrogate.Currency}, nil
}

type Wallet struct {
	Balance Money
	Pending *Money
	Level   Level
}

type Entity struct {
	id string
}

type EntityProxy struct {
	ID string
}

type entityConverter struct{}

func (entityConverter) ToSurrogate(value Entity) (EntityProxy, error) {
	return EntityProxy{ID: value.id}, nil
}

func (entityConverter) FromSurrogate(surrogate EntityProxy) (Entity, error) {
	return Entity{id: surrogate.ID}, nil
}

type populatingEntityConverter struct {
	entityConverter
}

func (populatingEntityConverter) Populate(surrogate EntityProxy, value *Entity) error {
	value.id = surrogate.ID
	return nil
}

type Account struct {
	Entity
	Owner string
}

// Temperature is only known through its binary form
type Temperature struct {
	kelvin float64
}

func (t Temperature) MarshalBinary() ([]byte, error) {
	return binary.BigEndian.AppendUint64(nil, math.Float64bits(t.kelvin)), nil
}

func (t *Temperature) UnmarshalBinary(data []byte) error {
	if len(data) != 8 {
		return errors.New("temperature: invalid length")
	}
	t.kelvin = math.Float64frombits(binary.BigEndian.Uint64(data))
	return nil
}

// Settings is encoded as CBOR
type Settings struct {
	Values  map[string]int
	Enabled bool
}

// Opaque has no exported state and nothing registered
type Opaque struct {
	value int
}

// Token is immutable once created
type Token struct {
	Value string
}

type ProfileV1 struct {
	Name string `wire:"0"`
	Age  int    `wire:"1"`
}

type ProfileV2 struct {
	Name    string            `wire:"0"`
	Age     int               `wire:"1"`
	Tags    []string          `wire:"2"`
	Friends []*Node           `wire:"3"`
	Labels  map[string]string `wire:"5"`
}

// Reply carries the outcome of a call
type Reply struct {
	ID    int
	Err   error
	Again error
}

func newManifest() *serializers.Manifest {
	m := serializers.NewManifest()
	serializers.RegisterType[Node](m)
	serializers.RegisterType[Holder](m)
	serializers.RegisterType[Square](m)
	serializers.RegisterType[Circle](m)
	serializers.RegisterType[Drawing](m)
	serializers.RegisterType[MoneyProxy](m)
	serializers.RegisterType[Wallet](m)
	serializers.RegisterType[EntityProxy](m)
	serializers.RegisterType[Account](m)
	serializers.RegisterType[ProfileV1](m)
	serializers.RegisterType[ProfileV2](m)
	serializers.RegisterType[Reply](m)
	serializers.AddConverter[Money, MoneyProxy](m, moneyConverter{})
	serializers.AddCBORType[Settings](m)
	serializers.AddImmutable[*Token](m)
	return m
}

func newSerializer(t *testing.T, manifest *serializers.Manifest, opts ...Option) *Serializer {
	t.Helper()
	provider, err := serializers.New(manifest)
	require.NoError(t, err)
	s, err := New(provider, opts...)
	require.NoError(t, err)
	return s
}
