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

package codecs

import (
	"reflect"

	"google.golang.org/protobuf/proto"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

var protoMessageType = reflect.TypeFor[proto.Message]()

// ProtoMessageCodec encodes protocol buffer messages as LengthPrefixed fields
// holding their binary form. Messages take part in reference tracking.
type ProtoMessageCodec struct{}

var _ GeneralizedCodec = ProtoMessageCodec{}

// IsSupportedType returns true for pointer types implementing proto.Message
func (ProtoMessageCodec) IsSupportedType(typ reflect.Type) bool {
	return typ.Kind() == reflect.Pointer && typ.Implements(protoMessageType)
}

// WriteField writes the message
func (ProtoMessageCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if identity.IsNil(rv) {
		w.WriteNullReference(delta)
		return nil
	}
	message, ok := value.(proto.Message)
	if !ok {
		return gerrors.NewErrUnexpectedValueType(protoMessageType, value)
	}
	if TryWriteReferenceField(w, delta, rv) {
		return nil
	}

	raw, err := proto.Marshal(message)
	if err != nil {
		return err
	}
	if err := w.WriteFieldHeader(delta, expected, rv.Type(), wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteLengthPrefixed(raw)
	return nil
}

// ReadValue reads a message of the embedded type
func (c ProtoMessageCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.LengthPrefixed {
		return nil, unexpectedWireType(field.FieldType, field)
	}
	if !field.HasFieldType() {
		return nil, gerrors.NewErrFieldTypeMissing(protoMessageType)
	}
	if !c.IsSupportedType(field.FieldType) {
		return nil, gerrors.NewErrUnsupportedWireType(field.FieldType, field)
	}

	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return nil, err
	}
	message := reflect.New(field.FieldType.Elem()).Interface().(proto.Message)
	if err := proto.Unmarshal(raw, message); err != nil {
		return nil, gerrors.NewErrMalformedPayload(err)
	}
	RecordObject(r, field, message)
	return message, nil
}
