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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestChain(t *testing.T) {
	t.Run("With no validators", func(t *testing.T) {
		require.NoError(t, New().Validate())
	})
	t.Run("With passing checks", func(t *testing.T) {
		chain := New().
			AddAssertion(true, "never").
			AddValidator(NewRangeValidator("limit", 5, 1, 10))
		require.NoError(t, chain.Validate())
	})
	t.Run("With AllErrors every violation is reported", func(t *testing.T) {
		chain := New(AllErrors()).
			AddValidator(NewRangeValidator("limit", 0, 1, 10)).
			AddAssertion(false, "the [compression] is unknown")

		err := chain.Validate()
		require.Error(t, err)
		assert.EqualError(t, err, "the [limit]=(0) must be within [1, 10]; the [compression] is unknown")
		assert.Len(t, multierr.Errors(err), 2)

		// the chain holds no state between runs
		assert.EqualError(t, chain.Validate(), err.Error())
	})
	t.Run("With FailFast the first violation is reported", func(t *testing.T) {
		chain := New(FailFast()).
			AddValidator(NewRangeValidator("limit", 0, 1, 10)).
			AddAssertion(false, "the [compression] is unknown")
		assert.EqualError(t, chain.Validate(), "the [limit]=(0) must be within [1, 10]")
	})
	t.Run("With a validator func", func(t *testing.T) {
		expected := errors.New("boom")
		err := New().AddValidator(ValidatorFunc(func() error { return expected })).Validate()
		require.ErrorIs(t, err, expected)
	})
}
