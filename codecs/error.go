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
	"errors"
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/identity"
	"github.com/tochemey/wirecodec/wire"
)

var (
	errorType     = reflect.TypeFor[error]()
	wireErrorType = reflect.TypeFor[*WireError]()
)

// WireError is the decoded form of an error that has no codec of its own.
// It carries the message of the original error and the chain it wrapped.
type WireError struct {
	Message string
	Cause   error
}

// Error returns the message of the original error
func (e *WireError) Error() string {
	return e.Message
}

// Unwrap returns the decoded form of the wrapped error
func (e *WireError) Unwrap() error {
	return e.Cause
}

// WireErrorType returns the type every error is decoded to by ErrorCodec
func WireErrorType() reflect.Type {
	return wireErrorType
}

// ErrorCodec encodes errors by message and errors.Unwrap chain.
// Every error is read back as a *WireError, so peers need not know the
// concrete types of the errors they receive.
type ErrorCodec struct{}

var _ GeneralizedCodec = ErrorCodec{}

// IsSupportedType returns true for concrete types implementing error
func (ErrorCodec) IsSupportedType(typ reflect.Type) bool {
	return typ.Kind() != reflect.Interface && typ.Implements(errorType)
}

// WriteField writes the message of the error, field 0, and its cause, field 1
func (c ErrorCodec) WriteField(w *wire.Writer, delta uint32, expected reflect.Type, value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() == reflect.Pointer && identity.IsNil(rv)) {
		w.WriteNullReference(delta)
		return nil
	}
	e, ok := value.(error)
	if !ok {
		return gerrors.NewErrUnexpectedValueType(errorType, value)
	}
	if rv.Kind() == reflect.Pointer && TryWriteReferenceField(w, delta, rv) {
		return nil
	}

	if err := w.WriteStartObject(delta, expected, wireErrorType); err != nil {
		return err
	}
	if err := (StringCodec{}).WriteField(w, 0, stringType, e.Error()); err != nil {
		return err
	}
	if cause := errors.Unwrap(e); cause != nil {
		if err := c.WriteField(w, 1, errorType, cause); err != nil {
			return err
		}
	}
	w.WriteEndObject()
	return nil
}

// ReadValue reads a *WireError
func (c ErrorCodec) ReadValue(r *wire.Reader, field wire.Field) (any, error) {
	if field.WireType == wire.Reference {
		return ReadReference(r, field)
	}
	if field.WireType != wire.TagDelimited {
		return nil, unexpectedWireType(wireErrorType, field)
	}
	if field.HasFieldType() && field.FieldType != wireErrorType && !c.IsSupportedType(field.FieldType) {
		return nil, gerrors.NewErrUnexpectedValueType(errorType, reflect.Zero(field.FieldType).Interface())
	}

	out := &WireError{}
	RecordObject(r, field, out)
	err := wire.ReadUntilEndObject(r, func(id uint32, header wire.Field) (bool, error) {
		switch id {
		case 0:
			message, err := StringCodec{}.ReadValue(r, header)
			if err != nil {
				return true, err
			}
			out.Message = message
			return true, nil
		case 1:
			var ok bool
			cause, err := c.ReadValue(r, header)
			if err != nil {
				return true, err
			}
			if cause == nil {
				return true, nil
			}
			if out.Cause, ok = cause.(error); !ok {
				return true, gerrors.NewErrUnexpectedValueType(errorType, cause)
			}
			return true, nil
		default:
			return false, nil
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
