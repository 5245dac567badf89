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
	"io"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct{}

func TestErrorFormatters(t *testing.T) {
	typ := reflect.TypeOf(sample{})

	err := NewErrCodecNotFound(typ)
	require.EqualError(t, err, "type=(errors.sample) codec not found")
	assert.ErrorIs(t, err, ErrCodecNotFound)

	err = NewErrCodecNotFound(nil)
	require.EqualError(t, err, "type=(<nil>) codec not found")

	err = NewErrUnsupportedType(reflect.TypeOf(make(chan int)), "a channel")
	require.EqualError(t, err, "type=(chan int) is a channel: unsupported type")
	assert.ErrorIs(t, err, ErrUnsupportedType)

	err = NewErrReferenceNotFound(7)
	require.EqualError(t, err, "reference=(7) reference not found")
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	err = NewErrMalformedPayload(io.ErrUnexpectedEOF)
	assert.ErrorIs(t, err, ErrMalformedPayload)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	cause := errors.New("no constructor")
	err = NewErrActivationFailed(typ, cause)
	assert.ErrorIs(t, err, ErrActivationFailed)
	assert.ErrorIs(t, err, cause)

	err = NewErrUnexpectedValueType(reflect.TypeOf(0), "x")
	require.EqualError(t, err, "expected=(int) got=(string) unexpected value type")

	assert.ErrorIs(t, NewErrMissingPopulateCapability(typ), ErrMissingPopulateCapability)
	assert.ErrorIs(t, NewErrFieldTypeMissing(typ), ErrFieldTypeMissing)
	assert.ErrorIs(t, NewErrUnknownType("x.y"), ErrUnknownType)
	assert.ErrorIs(t, NewErrInvalidLength(typ, 10), ErrInvalidLength)
	assert.ErrorIs(t, NewErrInvalidRegistration(typ, "nil codec"), ErrInvalidRegistration)
	assert.ErrorIs(t, NewErrCopierNotFound(typ), ErrCopierNotFound)
	assert.ErrorIs(t, NewErrBaseCodecNotFound(typ), ErrBaseCodecNotFound)
	assert.ErrorIs(t, NewErrBaseCopierNotFound(typ), ErrBaseCopierNotFound)
}
