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

package validation

import (
	"cmp"
	"fmt"
)

// rangeValidator checks that a value lies within inclusive bounds
type rangeValidator[T cmp.Ordered] struct {
	field string
	value T
	min   T
	max   T
}

var _ Validator = (*rangeValidator[int])(nil)

// NewRangeValidator creates a validator failing when value is outside [min, max]
func NewRangeValidator[T cmp.Ordered](field string, value, min, max T) Validator {
	return &rangeValidator[T]{field: field, value: value, min: min, max: max}
}

// Validate executes the validation
func (x *rangeValidator[T]) Validate() error {
	if x.value < x.min || x.value > x.max {
		return fmt.Errorf("the [%s]=(%v) must be within [%v, %v]", x.field, x.value, x.min, x.max)
	}
	return nil
}
