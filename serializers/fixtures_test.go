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
	"fmt"
	"reflect"

	"github.com/tochemey/wirecodec/codecs"
	"github.com/tochemey/wirecodec/wire"
)

type Node struct {
	Name string
	Next *Node
}

type Pair[A, B any] struct {
	First  A
	Second B
}

type Shape interface {
	Area() float64
}

type Square struct {
	Side float64
}

func (s Square) Area() float64 { return s.Side * s.Side }

type Level int

const (
	LevelLow Level = iota + 1
	LevelHigh
)

// Money keeps its state private and is serialized through MoneyProxy
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

// Entity is a declared base served by a converter
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

// Opaque has no exported state and nothing registered
type Opaque struct {
	value int
}

// Base is covered by a codec registered for every type embedding it
type Base struct {
	ID int
}

type Derived struct {
	Base
	Label string
}

type derivedCodec struct{}

func (derivedCodec) CoversDerivedTypes() {}

func (derivedCodec) WriteField(w *wire.Writer, delta uint32, _ reflect.Type, _ any) error {
	w.WriteNullReference(delta)
	return nil
}

func (derivedCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	return codecs.ReadReference(r, field)
}

// fixedCodec encodes every int as the same value
type fixedCodec struct{}

func (fixedCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, _ int) error {
	if err := w.WriteFieldHeader(delta, expected, reflect.TypeFor[int](), wire.VarInt); err != nil {
		return err
	}
	w.WriteVarInt64(7)
	return nil
}

func (fixedCodec) ReadValue(r *wire.Reader, _ wire.Field) (int, error) {
	v, err := r.ReadVarInt64()
	return int(v), err
}

// pairConverters serves every instantiation of Pair through a two-element surrogate
func pairConverters(typ reflect.Type) (codecs.SurrogateBinding, error) {
	if typ.Kind() != reflect.Struct || typ.NumField() != 2 {
		return nil, fmt.Errorf("%s is not a pair", typ)
	}
	return &codecs.SurrogateFuncs{
		Target:    typ,
		Surrogate: reflect.TypeFor[[]any](),
		To: func(value reflect.Value) (reflect.Value, error) {
			return reflect.ValueOf([]any{value.Field(0).Interface(), value.Field(1).Interface()}), nil
		},
		From: func(surrogate reflect.Value) (reflect.Value, error) {
			values := surrogate.Interface().([]any)
			out := reflect.New(typ).Elem()
			for i, v := range values {
				if i > 1 {
					break
				}
				if err := codecs.SetValue(out.Field(i), v); err != nil {
					return reflect.Value{}, err
				}
			}
			return out, nil
		},
	}, nil
}

// opaqueCodec claims Opaque as a generalized extension
type opaqueCodec struct {
	derivedCodec
}

func (opaqueCodec) IsSupportedType(typ reflect.Type) bool {
	return typ == reflect.TypeFor[Opaque]()
}

// opaqueCodecs claims the maps keyed by Opaque as a specializable extension
type opaqueCodecs struct{}

func (opaqueCodecs) IsSupportedType(typ reflect.Type) bool {
	return typ.Kind() == reflect.Map && typ.Key() == reflect.TypeFor[Opaque]()
}

func (opaqueCodecs) GetSpecializedCodec(reflect.Type, codecs.Provider) (codecs.FieldCodec, error) {
	return derivedCodec{}, nil
}
