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

	"github.com/tochemey/wirecodec/internal/identity"
)

// ObjectCopier serves interface types by dispatching on the runtime type of the value
type ObjectCopier struct {
	provider Provider
}

var _ Copier = (*ObjectCopier)(nil)

// NewObjectCopier creates an ObjectCopier
func NewObjectCopier(provider Provider) *ObjectCopier {
	return &ObjectCopier{provider: provider}
}

// DeepCopy copies the value with the copier of its runtime type
func (c *ObjectCopier) DeepCopy(input any, ctx *CopyContext) (any, error) {
	rv := reflect.ValueOf(input)
	if identity.IsNil(rv) {
		return input, nil
	}
	copier, err := c.provider.GetCopier(rv.Type())
	if err != nil {
		return nil, err
	}
	return copier.DeepCopy(input, ctx)
}
