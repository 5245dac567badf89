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
	"time"

	"github.com/google/uuid"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/wire"
)

// BytesCodec encodes byte slices as LengthPrefixed fields.
// Byte slices are references: a slice written twice is read back once and shared.
type BytesCodec struct{}

var _ Codec[[]byte] = BytesCodec{}

// WriteField writes the bytes
func (c BytesCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value []byte) error {
	if value == nil {
		w.WriteNullReference(delta)
		return nil
	}
	if TryWriteReferenceField(w, delta, reflect.ValueOf(value)) {
		return nil
	}
	if err := w.WriteFieldHeader(delta, expected, bytesType, wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteLengthPrefixed(value)
	return nil
}

// ReadValue reads the bytes
func (c BytesCodec) ReadValue(r *wire.Reader, field wire.Field) ([]byte, error) {
	if field.WireType == wire.Reference {
		value, err := ReadReference(r, field)
		if err != nil || value == nil {
			return nil, err
		}
		out, ok := value.([]byte)
		if !ok {
			return nil, gerrors.NewErrUnexpectedValueType(bytesType, value)
		}
		return out, nil
	}
	if field.WireType != wire.LengthPrefixed {
		return nil, unexpectedWireType(bytesType, field)
	}
	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	RecordObject(r, field, out)
	return out, nil
}

// TimeCodec encodes time.Time values with their binary form, keeping the zone offset
type TimeCodec struct{}

var _ Codec[time.Time] = TimeCodec{}

// WriteField writes the instant
func (c TimeCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value time.Time) error {
	raw, err := value.MarshalBinary()
	if err != nil {
		return err
	}
	if err := w.WriteFieldHeader(delta, expected, timeType, wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteLengthPrefixed(raw)
	return nil
}

// ReadValue reads the instant
func (c TimeCodec) ReadValue(r *wire.Reader, field wire.Field) (time.Time, error) {
	var out time.Time
	if field.WireType != wire.LengthPrefixed {
		return out, unexpectedWireType(timeType, field)
	}
	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return out, err
	}
	if err := out.UnmarshalBinary(raw); err != nil {
		return out, gerrors.NewErrMalformedPayload(err)
	}
	return out, nil
}

// UUIDCodec encodes uuid.UUID values as their 16 raw bytes
type UUIDCodec struct{}

var _ Codec[uuid.UUID] = UUIDCodec{}

// WriteField writes the identifier
func (c UUIDCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value uuid.UUID) error {
	if err := w.WriteFieldHeader(delta, expected, uuidType, wire.LengthPrefixed); err != nil {
		return err
	}
	w.WriteLengthPrefixed(value[:])
	return nil
}

// ReadValue reads the identifier
func (c UUIDCodec) ReadValue(r *wire.Reader, field wire.Field) (uuid.UUID, error) {
	if field.WireType != wire.LengthPrefixed {
		return uuid.Nil, unexpectedWireType(uuidType, field)
	}
	raw, err := r.ReadLengthPrefixed()
	if err != nil {
		return uuid.Nil, err
	}
	out, err := uuid.FromBytes(raw)
	if err != nil {
		return uuid.Nil, gerrors.NewErrMalformedPayload(err)
	}
	return out, nil
}

var (
	bytesType = reflect.TypeFor[[]byte]()
	timeType  = reflect.TypeFor[time.Time]()
	uuidType  = reflect.TypeFor[uuid.UUID]()
)
