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

package errors

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrCodecNotFound is returned when no resolution path produced a codec for a type.
	ErrCodecNotFound = errors.New("codec not found")

	// ErrCopierNotFound is returned when no resolution path produced a deep copier for a type.
	ErrCopierNotFound = errors.New("copier not found")

	// ErrBaseCodecNotFound is returned when a struct level has no base codec.
	ErrBaseCodecNotFound = errors.New("base codec not found")

	// ErrBaseCopierNotFound is returned when a struct level has no base copier.
	ErrBaseCopierNotFound = errors.New("base copier not found")

	// ErrUnsupportedType is returned for types that can never be serialized:
	// channels, functions, unsafe pointers and pointers to pointers.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFieldTypeMissing is returned when an interface typed field is read
	// without an embedded type marker.
	ErrFieldTypeMissing = errors.New("field type missing")

	// ErrMissingPopulateCapability is returned when a converter used as a base
	// codec cannot populate an existing instance.
	ErrMissingPopulateCapability = errors.New("converter does not support populate")

	// ErrReferenceNotFound is returned when a reference id does not resolve to a recorded object.
	ErrReferenceNotFound = errors.New("reference not found")

	// ErrUnsupportedWireType is returned when a codec reads a field with a wire type it cannot decode.
	ErrUnsupportedWireType = errors.New("unsupported wire type")

	// ErrUnknownType is returned when an embedded type name is not known to the type registry.
	ErrUnknownType = errors.New("unknown type")

	// ErrMalformedPayload is returned when the payload is truncated or corrupted.
	ErrMalformedPayload = errors.New("malformed payload")

	// ErrInvalidLength is returned when a declared collection length is inconsistent with the input.
	ErrInvalidLength = errors.New("invalid length")

	// ErrUnexpectedValueType is returned when a codec receives a value of a type it does not handle.
	ErrUnexpectedValueType = errors.New("unexpected value type")

	// ErrActivationFailed is returned when an activator cannot create an instance.
	ErrActivationFailed = errors.New("activation failed")

	// ErrInvalidConfig is returned when the configuration does not validate.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRegistration is returned when a manifest entry is inconsistent.
	ErrInvalidRegistration = errors.New("invalid registration")
)

// NewErrCodecNotFound formats an ErrCodecNotFound with the given type
func NewErrCodecNotFound(typ reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", typeString(typ), ErrCodecNotFound)
}

// NewErrCopierNotFound formats an ErrCopierNotFound with the given type
func NewErrCopierNotFound(typ reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", typeString(typ), ErrCopierNotFound)
}

// NewErrBaseCodecNotFound formats an ErrBaseCodecNotFound with the given type
func NewErrBaseCodecNotFound(typ reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", typeString(typ), ErrBaseCodecNotFound)
}

// NewErrBaseCopierNotFound formats an ErrBaseCopierNotFound with the given type
func NewErrBaseCopierNotFound(typ reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", typeString(typ), ErrBaseCopierNotFound)
}

// NewErrUnsupportedType formats an ErrUnsupportedType with the given type and reason
func NewErrUnsupportedType(typ reflect.Type, reason string) error {
	return fmt.Errorf("type=(%s) is %s: %w", typeString(typ), reason, ErrUnsupportedType)
}

// NewErrFieldTypeMissing formats an ErrFieldTypeMissing for the given static type
func NewErrFieldTypeMissing(typ reflect.Type) error {
	return fmt.Errorf("field of type=(%s) %w", typeString(typ), ErrFieldTypeMissing)
}

// NewErrMissingPopulateCapability formats an ErrMissingPopulateCapability for the given type
func NewErrMissingPopulateCapability(typ reflect.Type) error {
	return fmt.Errorf("type=(%s) %w", typeString(typ), ErrMissingPopulateCapability)
}

// NewErrReferenceNotFound formats an ErrReferenceNotFound for the given reference id
func NewErrReferenceNotFound(id uint32) error {
	return fmt.Errorf("reference=(%d) %w", id, ErrReferenceNotFound)
}

// NewErrUnsupportedWireType formats an ErrUnsupportedWireType
func NewErrUnsupportedWireType(typ reflect.Type, field fmt.Stringer) error {
	return fmt.Errorf("codec for type=(%s) cannot read %s: %w", typeString(typ), field, ErrUnsupportedWireType)
}

// NewErrUnknownType formats an ErrUnknownType with the given type name
func NewErrUnknownType(name string) error {
	return fmt.Errorf("name=(%s) %w", name, ErrUnknownType)
}

// NewErrMalformedPayload wraps a decoding failure with ErrMalformedPayload
func NewErrMalformedPayload(err error) error {
	return errors.Join(ErrMalformedPayload, err)
}

// NewErrInvalidLength formats an ErrInvalidLength for the given type
func NewErrInvalidLength(typ reflect.Type, length uint64) error {
	return fmt.Errorf("type=(%s) length=(%d) %w", typeString(typ), length, ErrInvalidLength)
}

// NewErrUnexpectedValueType formats an ErrUnexpectedValueType
func NewErrUnexpectedValueType(expected reflect.Type, value any) error {
	return fmt.Errorf("expected=(%s) got=(%T) %w", typeString(expected), value, ErrUnexpectedValueType)
}

// NewErrActivationFailed wraps an activator failure with ErrActivationFailed
func NewErrActivationFailed(typ reflect.Type, err error) error {
	return fmt.Errorf("type=(%s) %w: %w", typeString(typ), ErrActivationFailed, err)
}

// NewErrInvalidRegistration formats an ErrInvalidRegistration
func NewErrInvalidRegistration(typ reflect.Type, reason string) error {
	return fmt.Errorf("type=(%s) %s: %w", typeString(typ), reason, ErrInvalidRegistration)
}

func typeString(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	return typ.String()
}
