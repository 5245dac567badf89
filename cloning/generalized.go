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

package cloning

import (
	"encoding"
	"reflect"

	"google.golang.org/protobuf/proto"

	"github.com/tochemey/wirecodec/codecs"
	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
)

var protoMessageType = reflect.TypeFor[proto.Message]()

// ProtoMessageCopier copies protocol buffer messages with proto.Clone
type ProtoMessageCopier struct{}

var _ GeneralizedCopier = ProtoMessageCopier{}

// IsSupportedType returns true for pointer types implementing proto.Message
func (ProtoMessageCopier) IsSupportedType(typ reflect.Type) bool {
	return typ.Kind() == reflect.Pointer && typ.Implements(protoMessageType)
}

// DeepCopy clones the message
func (ProtoMessageCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if identity.IsNil(rv) {
		return input, nil
	}
	message, ok := input.(proto.Message)
	if !ok {
		return nil, unexpected(protoMessageType, input)
	}
	if out, ok := ctx.TryGetCopy(rv); ok {
		return out, nil
	}
	out := proto.Clone(message)
	ctx.RecordCopy(rv, out)
	return out, nil
}

// BinaryMarshalerCopier copies values through their binary form
type BinaryMarshalerCopier struct{}

var _ GeneralizedCopier = BinaryMarshalerCopier{}

// IsSupportedType returns true for the types served by codecs.BinaryMarshalerCodec
func (BinaryMarshalerCopier) IsSupportedType(typ reflect.Type) bool {
	return codecs.BinaryMarshalerCodec{}.IsSupportedType(typ)
}

// DeepCopy marshals the value and unmarshals it into a new instance
func (BinaryMarshalerCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if identity.IsNil(rv) {
		return input, nil
	}
	if out, ok := ctx.TryGetCopy(rv); ok {
		return out, nil
	}
	marshaler, ok := input.(encoding.BinaryMarshaler)
	if !ok {
		return nil, unexpected(reflect.TypeFor[encoding.BinaryMarshaler](), input)
	}
	raw, err := marshaler.MarshalBinary()
	if err != nil {
		return nil, err
	}

	typ := rv.Type()
	indirect := typ.Kind() == reflect.Pointer
	if indirect {
		typ = typ.Elem()
	}
	out := reflect.New(typ)
	if err := out.Interface().(encoding.BinaryUnmarshaler).UnmarshalBinary(raw); err != nil {
		return nil, gerrors.NewErrMalformedPayload(err)
	}
	if !indirect {
		return out.Elem().Interface(), nil
	}
	ctx.RecordCopy(rv, out.Interface())
	return out.Interface(), nil
}

// ErrorCopier returns errors as they are. Errors are treated as immutable,
// which keeps errors.Is and errors.As working on the copy.
type ErrorCopier struct{}

var _ GeneralizedCopier = ErrorCopier{}

// IsSupportedType returns true for the types served by codecs.ErrorCodec
func (ErrorCopier) IsSupportedType(typ reflect.Type) bool {
	return codecs.ErrorCodec{}.IsSupportedType(typ)
}

// DeepCopy returns the input
func (ErrorCopier) DeepCopy(input any, _ *CopyContext) (any, error) {
	return input, nil
}

// CBORCopiers specializes copiers for the types opted in to CBOR encoding
type CBORCopiers struct {
	codecs *codecs.CBORCodecs
}

var _ SpecializableCopier = (*CBORCopiers)(nil)

// NewCBORCopiers creates the copier extension sharing the opt-ins of the given codecs
func NewCBORCopiers(cbor *codecs.CBORCodecs) *CBORCopiers {
	return &CBORCopiers{codecs: cbor}
}

// IsSupportedType returns true for opted-in types and pointers to them
func (x *CBORCopiers) IsSupportedType(typ reflect.Type) bool {
	return x.codecs.IsSupportedType(typ)
}

// GetSpecializedCopier returns the copier of the given type
func (x *CBORCopiers) GetSpecializedCopier(typ reflect.Type, _ Provider) (Copier, error) {
	return &cborCopier{codecs: x.codecs}, nil
}

type cborCopier struct {
	codecs *codecs.CBORCodecs
}

func (x *cborCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if out, ok := ctx.TryGetCopy(rv); ok {
		return out, nil
	}
	out, err := x.codecs.Clone(input)
	if err != nil {
		return nil, err
	}
	ctx.RecordCopy(rv, out)
	return out, nil
}
