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

package compression

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompression(t *testing.T) {
	input := []byte(strings.Repeat("compressed payloads stay tidy! ", 64))

	for _, algorithm := range []Algorithm{None, Gzip, Zstd, Brotli} {
		t.Run(algorithm.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Compress(algorithm, &buf, input))
			if algorithm != None {
				assert.Less(t, buf.Len(), len(input))
			}

			out, err := Decompress(algorithm, buf.Bytes(), 0)
			require.NoError(t, err)
			assert.Equal(t, input, out)
		})
	}
}

func TestDecompressLimit(t *testing.T) {
	input := bytes.Repeat([]byte{'a'}, 4096)
	for _, algorithm := range []Algorithm{Gzip, Zstd, Brotli} {
		t.Run(algorithm.String(), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Compress(algorithm, &buf, input))

			_, err := Decompress(algorithm, buf.Bytes(), 1024)
			require.ErrorIs(t, err, ErrPayloadTooLarge)
		})
	}
}

func TestUnknownAlgorithm(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Compress(Algorithm(42), &buf, []byte("x")), ErrUnknownAlgorithm)
	_, err := Decompress(Algorithm(42), []byte("x"), 0)
	require.ErrorIs(t, err, ErrUnknownAlgorithm)
	assert.False(t, Algorithm(42).Valid())
	assert.Equal(t, "Algorithm(42)", Algorithm(42).String())
}

func TestParse(t *testing.T) {
	cases := map[string]Algorithm{
		"":       None,
		"none":   None,
		"GZIP":   Gzip,
		" zstd ": Zstd,
		"br":     Brotli,
		"brotli": Brotli,
	}
	for name, expected := range cases {
		actual, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, expected, actual)
	}

	_, err := Parse("lz4")
	require.ErrorIs(t, err, ErrUnknownAlgorithm)

	var algorithm Algorithm
	require.NoError(t, algorithm.UnmarshalText([]byte("zstd")))
	assert.Equal(t, Zstd, algorithm)
	text, err := algorithm.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "zstd", string(text))
}

func TestConcurrentCompression(t *testing.T) {
	input := []byte(strings.Repeat("pooled encoders are shared ", 32))
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func(algorithm Algorithm) {
			defer wg.Done()
			var buf bytes.Buffer
			assert.NoError(t, Compress(algorithm, &buf, input))
			out, err := Decompress(algorithm, buf.Bytes(), 0)
			assert.NoError(t, err)
			assert.Equal(t, input, out)
		}(Algorithm(i % 4))
	}
	wg.Wait()
}
