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

// Package codecs defines the codec contracts and the codecs shipped with the
// engine: primitives, collections, enumerations, struct composition, surrogates
// and the interface fallback.
//
// Codecs never resolve their dependencies at construction. They ask the
// Provider at call time so that recursive types can be described without
// infinite recursion.
package codecs

import (
	"reflect"

	"github.com/tochemey/wirecodec/activators"
	"github.com/tochemey/wirecodec/wire"
)

// Codec writes and reads values of T as wire fields.
// Implementations are stateless and safe for concurrent use.
type Codec[T any] interface {
	// WriteField writes the value as a field whose id is delta after the previous field.
	// The expected type is the static type of the field; the runtime type is embedded
	// when it differs.
	WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value T) error
	// ReadValue reads the payload of the given field header
	ReadValue(r *wire.Reader, field wire.Field) (T, error)
}

// FieldCodec is the type-erased codec stored and returned by the Provider
type FieldCodec = Codec[any]

// Wrapped is implemented by type-erasing adapters and exposes the adapted codec
type Wrapped interface {
	Inner() any
}

// BaseCodec writes and reads the members declared at a single level of T.
// Members of the declared base of T are handled by the base's own BaseCodec.
// Deserialize consumes the fields of its level up to and including the end
// marker, which wire.ReadFields does.
type BaseCodec[T any] interface {
	Serialize(w *wire.Writer, value *T) error
	Deserialize(r *wire.Reader, value *T) error
}

// BaseSerializer is the type-erased form of a BaseCodec.
// DeserializeFields receives an addressable struct value.
type BaseSerializer interface {
	SerializeFields(w *wire.Writer, value reflect.Value) error
	DeserializeFields(r *wire.Reader, value reflect.Value) error
}

// SealedReader is implemented by codecs able to read a field whose runtime type
// is known to be the codec type, skipping the embedded type check.
type SealedReader interface {
	ReadValueSealed(r *wire.Reader, field wire.Field) (any, error)
}

// DerivedTypeCodec marks a codec registered for a declared base that also
// serves every type embedding that base
type DerivedTypeCodec interface {
	FieldCodec
	CoversDerivedTypes()
}

// SpecializableCodec produces codecs for the family of types it supports
type SpecializableCodec interface {
	IsSupportedType(typ reflect.Type) bool
	GetSpecializedCodec(typ reflect.Type, provider Provider) (FieldCodec, error)
}

// GeneralizedCodec is a single codec serving every type it supports.
// ReadValue receives the concrete type in Field.FieldType.
type GeneralizedCodec interface {
	FieldCodec
	IsSupportedType(typ reflect.Type) bool
}

// SpecializableBaseCodec produces base codecs for the family of types it supports
type SpecializableBaseCodec interface {
	IsSupportedType(typ reflect.Type) bool
	GetSpecializedBaseCodec(typ reflect.Type, provider Provider) (BaseSerializer, error)
}

// GeneralizedBaseCodec is a single base codec serving every type it supports
type GeneralizedBaseCodec interface {
	BaseSerializer
	IsSupportedType(typ reflect.Type) bool
}

// PrimitiveCodec is implemented by the codecs of basic kinds so that named
// types built on them can reuse the encoding
type PrimitiveCodec interface {
	WritePrimitive(w *wire.Writer, delta uint32, expected, actual reflect.Type, value reflect.Value) error
	ReadPrimitive(r *wire.Reader, field wire.Field, into reflect.Value) error
}

// Provider resolves the dependencies of codecs at call time
type Provider interface {
	// GetCodec returns the codec of the given type or an error
	GetCodec(typ reflect.Type) (FieldCodec, error)
	// TryGetCodec returns the codec of the given type or nil when none resolves
	TryGetCodec(typ reflect.Type) (FieldCodec, error)
	// GetBaseCodec returns the base codec of the given struct type
	GetBaseCodec(typ reflect.Type) (BaseSerializer, error)
	// GetActivator returns the activator of the given type
	GetActivator(typ reflect.Type) (activators.Untyped, error)
}
