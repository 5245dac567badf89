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
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
)

func unexpected(typ reflect.Type, value any) error {
	return gerrors.NewErrUnexpectedValueType(typ, value)
}

// setValue assigns a copied value to a destination, nil meaning the zero value
func setValue(dst reflect.Value, value any) error {
	if value == nil {
		dst.SetZero()
		return nil
	}
	rv := reflect.ValueOf(value)
	if !rv.Type().AssignableTo(dst.Type()) {
		return unexpected(dst.Type(), value)
	}
	dst.Set(rv)
	return nil
}

// copyInto copies a value with the copier of the given type and assigns it
func copyInto(provider Provider, typ reflect.Type, src, dst reflect.Value, ctx *CopyContext) error {
	copier, err := provider.GetCopier(typ)
	if err != nil {
		return err
	}
	out, err := copier.DeepCopy(src.Interface(), ctx)
	if err != nil {
		return err
	}
	return setValue(dst, out)
}
