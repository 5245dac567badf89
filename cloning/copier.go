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

// Package cloning defines deep copiers. A copy reproduces the identity
// topology of its input: objects reachable through several paths are copied
// once and cycles are preserved.
package cloning

import (
	"reflect"

	"github.com/tochemey/wirecodec/activators"
)

// DeepCopier creates deep copies of values of T.
// Implementations are stateless and safe for concurrent use.
type DeepCopier[T any] interface {
	DeepCopy(input T, ctx *CopyContext) (T, error)
}

// Copier is the type-erased copier stored and returned by the Provider
type Copier = DeepCopier[any]

// BaseCopier copies the members declared at a single level of a struct.
// The output is addressable and already holds a shallow copy of the input.
type BaseCopier interface {
	DeepCopyFields(input, output reflect.Value, ctx *CopyContext) error
}

// DerivedTypeCopier marks a copier registered for a declared base that also
// serves every type embedding that base
type DerivedTypeCopier interface {
	Copier
	CoversDerivedTypes()
}

// SpecializableCopier produces copiers for the family of types it supports
type SpecializableCopier interface {
	IsSupportedType(typ reflect.Type) bool
	GetSpecializedCopier(typ reflect.Type, provider Provider) (Copier, error)
}

// GeneralizedCopier is a single copier serving every type it supports
type GeneralizedCopier interface {
	Copier
	IsSupportedType(typ reflect.Type) bool
}

// Provider resolves the dependencies of copiers at call time
type Provider interface {
	GetCopier(typ reflect.Type) (Copier, error)
	GetBaseCopier(typ reflect.Type) (BaseCopier, error)
	GetActivator(typ reflect.Type) (activators.Untyped, error)
}

// Untyped erases the type of a copier
func Untyped[T any](copier DeepCopier[T]) Copier {
	if c, ok := any(copier).(Copier); ok {
		return c
	}
	return &untypedCopier[T]{inner: copier}
}

type untypedCopier[T any] struct {
	inner DeepCopier[T]
}

func (x *untypedCopier[T]) Inner() any {
	return x.inner
}

func (x *untypedCopier[T]) DeepCopy(input any, ctx *CopyContext) (any, error) {
	if input == nil {
		var zero T
		return x.inner.DeepCopy(zero, ctx)
	}
	typed, ok := input.(T)
	if !ok {
		return nil, unexpected(reflect.TypeFor[T](), input)
	}
	return x.inner.DeepCopy(typed, ctx)
}

// Typed restores the type of a type-erased copier
func Typed[T any](copier Copier) DeepCopier[T] {
	if c, ok := copier.(DeepCopier[T]); ok {
		return c
	}
	return &typedCopier[T]{inner: copier}
}

type typedCopier[T any] struct {
	inner Copier
}

func (x *typedCopier[T]) Inner() any {
	return x.inner
}

func (x *typedCopier[T]) DeepCopy(input T, ctx *CopyContext) (T, error) {
	var zero T
	out, err := x.inner.DeepCopy(input, ctx)
	if err != nil || out == nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, unexpected(reflect.TypeFor[T](), out)
	}
	return typed, nil
}
