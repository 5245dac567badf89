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

package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/log"
)

func TestConfig(t *testing.T) {
	t.Run("With defaults", func(t *testing.T) {
		cfg := New()
		require.NoError(t, cfg.Validate())
		assert.Equal(t, NoCompression, cfg.Compression)
		assert.Equal(t, log.InfoLevel, cfg.LogLevel)
		assert.EqualValues(t, 10240, cfg.MaxCollectionLength)
		assert.EqualValues(t, 64<<20, cfg.MaxDecompressedSize)
		assert.Equal(t, 8192, cfg.MaxDepth)
	})
	t.Run("With options", func(t *testing.T) {
		cfg := New(
			WithCompression(ZstdCompression),
			WithLogLevel(log.DebugLevel),
			WithMaxCollectionLength(100),
			WithMaxDecompressedSize(1024),
			WithMaxDepth(64),
		)
		require.NoError(t, cfg.Validate())
		assert.Equal(t, ZstdCompression, cfg.Compression)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
		assert.EqualValues(t, 100, cfg.MaxCollectionLength)
		assert.EqualValues(t, 1024, cfg.MaxDecompressedSize)
		assert.Equal(t, 64, cfg.MaxDepth)
		assert.NotNil(t, cfg.Logger())
	})
	t.Run("With every violation reported", func(t *testing.T) {
		cfg := New(
			WithCompression(Compression(9)),
			WithLogLevel(log.InvalidLevel),
			WithMaxCollectionLength(0),
			WithMaxDepth(-1),
		)
		err := cfg.Validate()
		require.ErrorIs(t, err, gerrors.ErrInvalidConfig)
		assert.Contains(t, err.Error(), "compression")
		assert.Contains(t, err.Error(), "logLevel")
		assert.Contains(t, err.Error(), "maxCollectionLength")
		assert.Contains(t, err.Error(), "maxDepth")
	})
}

func TestLoadYAML(t *testing.T) {
	t.Run("With every key", func(t *testing.T) {
		doc := `
compression: brotli
logLevel: debug
maxCollectionLength: 512
maxDecompressedSize: 4096
maxDepth: 32
`
		cfg, err := LoadYAML(strings.NewReader(doc))
		require.NoError(t, err)
		assert.Equal(t, BrotliCompression, cfg.Compression)
		assert.Equal(t, log.DebugLevel, cfg.LogLevel)
		assert.EqualValues(t, 512, cfg.MaxCollectionLength)
		assert.EqualValues(t, 4096, cfg.MaxDecompressedSize)
		assert.Equal(t, 32, cfg.MaxDepth)
	})
	t.Run("With absent keys", func(t *testing.T) {
		cfg, err := LoadYAML(strings.NewReader("compression: gzip\n"))
		require.NoError(t, err)
		assert.Equal(t, GzipCompression, cfg.Compression)
		assert.EqualValues(t, DefaultMaxCollectionLength, cfg.MaxCollectionLength)
	})
	t.Run("With an empty document", func(t *testing.T) {
		cfg, err := LoadYAML(strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, New(), cfg)
	})
	t.Run("With an unknown key", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("compresion: gzip\n"))
		require.ErrorIs(t, err, gerrors.ErrInvalidConfig)
	})
	t.Run("With an unknown algorithm", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("compression: lz4\n"))
		require.ErrorIs(t, err, gerrors.ErrInvalidConfig)
	})
	t.Run("With an invalid limit", func(t *testing.T) {
		_, err := LoadYAML(strings.NewReader("maxCollectionLength: 0\n"))
		require.ErrorIs(t, err, gerrors.ErrInvalidConfig)

		_, err = LoadYAML(strings.NewReader("maxDepth: 0\n"))
		require.ErrorIs(t, err, gerrors.ErrInvalidConfig)
	})
}

func TestLoadYAMLFile(t *testing.T) {
	_, err := LoadYAMLFile("does-not-exist.yaml")
	require.Error(t, err)
}
