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

// Package activators provides the strategies used to create fresh instances
// before a codec or a copier populates them.
package activators

import (
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
)

// Activator creates instances of T
type Activator[T any] interface {
	Create() (T, error)
}

// Untyped is the type-erased form of an Activator stored by the codec provider
type Untyped interface {
	// Type returns the type of the created instances
	Type() reflect.Type
	// CreateValue returns a new instance
	CreateValue() (reflect.Value, error)
}

// Func adapts a function to an Activator
type Func[T any] func() (T, error)

// Create calls the underlying function
func (f Func[T]) Create() (T, error) {
	return f()
}

// Wrap erases the type of an Activator
func Wrap[T any](activator Activator[T]) Untyped {
	return &typed[T]{activator: activator, typ: reflect.TypeFor[T]()}
}

type typed[T any] struct {
	activator Activator[T]
	typ       reflect.Type
}

func (x *typed[T]) Type() reflect.Type {
	return x.typ
}

func (x *typed[T]) CreateValue() (reflect.Value, error) {
	out, err := x.activator.Create()
	if err != nil {
		return reflect.Value{}, gerrors.NewErrActivationFailed(x.typ, err)
	}
	value := reflect.ValueOf(&out).Elem()
	if value.Kind() == reflect.Pointer && value.IsNil() {
		return reflect.Value{}, gerrors.NewErrActivationFailed(x.typ, gerrors.ErrUnexpectedValueType)
	}
	return value, nil
}

// Default returns the activator used when nothing is registered for a type.
// Pointers get a freshly allocated zero value, maps an empty map and every
// other type its zero value.
func Default(typ reflect.Type) Untyped {
	return defaultActivator{typ: typ}
}

type defaultActivator struct {
	typ reflect.Type
}

func (x defaultActivator) Type() reflect.Type {
	return x.typ
}

func (x defaultActivator) CreateValue() (reflect.Value, error) {
	switch x.typ.Kind() {
	case reflect.Pointer:
		return reflect.New(x.typ.Elem()), nil
	case reflect.Map:
		return reflect.MakeMap(x.typ), nil
	default:
		return reflect.New(x.typ).Elem(), nil
	}
}
