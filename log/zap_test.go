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

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZapDefaultsToDebugOnUnknownLevel(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InvalidLevel, buffer)
	require.Equal(t, DebugLevel, logger.LogLevel())

	logger.Debug("test debug")
	entry := decodeEntry(t, buffer.Bytes())
	require.Equal(t, "test debug", entry["msg"])
	require.Equal(t, "debug", entry["level"])
}

func TestZapLevels(t *testing.T) {
	t.Run("With info level debug is dropped", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.Debugf("resolved %s", "codec")
		require.Empty(t, buffer.Bytes())
		require.False(t, logger.Enabled(DebugLevel))
		require.True(t, logger.Enabled(ErrorLevel))
	})
	t.Run("With warn level info is dropped", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(WarningLevel, buffer)
		logger.Info("dropped")
		require.Empty(t, buffer.Bytes())
		logger.Warnf("codec not found for %s", "T")
		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "codec not found for T", entry["msg"])
		require.Equal(t, "warn", entry["level"])
	})
	t.Run("Errorf is written", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(ErrorLevel, buffer)
		logger.Errorf("failed: %d", 3)
		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "failed: 3", entry["msg"])
		require.Equal(t, ErrorLevel, logger.LogLevel())
	})
}

func TestZapWith(t *testing.T) {
	t.Run("With adds structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("type", "*codecs.Person", "err", errors.New("boom")).Info("resolved")
		entry := decodeEntry(t, buffer.Bytes())
		require.Equal(t, "resolved", entry["msg"])
		require.Equal(t, "*codecs.Person", entry["type"])
		require.Equal(t, "boom", entry["err"])
	})
	t.Run("With returns the same logger when no fields are given", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With())
	})
	t.Run("With skips non string keys", func(t *testing.T) {
		logger := NewZap(InfoLevel, new(bytes.Buffer))
		assert.Same(t, logger, logger.With(1, "x"))
	})
}

func TestZapOutputsAndFlush(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	require.Len(t, logger.LogOutput(), 1)
	require.NoError(t, logger.Flush())
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DebugLevel, ParseLevel("DEBUG"))
	require.Equal(t, WarningLevel, ParseLevel("warning"))
	require.Equal(t, WarningLevel, ParseLevel(" warn "))
	require.Equal(t, InvalidLevel, ParseLevel("verbose"))
	require.Equal(t, "invalid", InvalidLevel.String())
}

func decodeEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(data, &entry))
	return entry
}
