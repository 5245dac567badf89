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

package serializer

import (
	"github.com/tochemey/wirecodec/config"
	"github.com/tochemey/wirecodec/log"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a Serializer.
	Apply(*Serializer)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Serializer)

// Apply applies the option
func (f OptionFunc) Apply(s *Serializer) {
	f(s)
}

// WithCompression sets the algorithm compressing the payloads
func WithCompression(compression config.Compression) Option {
	return OptionFunc(func(s *Serializer) {
		s.compression = compression
	})
}

// WithMaxCollectionLength sets the largest collection length accepted when
// it exceeds the remaining payload
func WithMaxCollectionLength(length uint64) Option {
	return OptionFunc(func(s *Serializer) {
		s.maxCollectionLength = length
	})
}

// WithMaxDecompressedSize sets the largest decompressed payload accepted, in bytes
func WithMaxDecompressedSize(size int64) Option {
	return OptionFunc(func(s *Serializer) {
		s.maxDecompressedSize = size
	})
}

// WithMaxDepth sets the number of objects that may be nested in a payload
func WithMaxDepth(depth int) Option {
	return OptionFunc(func(s *Serializer) {
		s.maxDepth = depth
	})
}

// WithConfig applies the settings of the given configuration
func WithConfig(cfg *config.Config) Option {
	return OptionFunc(func(s *Serializer) {
		if cfg == nil {
			return
		}
		s.compression = cfg.Compression
		s.maxCollectionLength = cfg.MaxCollectionLength
		s.maxDecompressedSize = cfg.MaxDecompressedSize
		s.maxDepth = cfg.MaxDepth
	})
}

// WithLogger sets the logger. The provider logger is used by default.
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(s *Serializer) {
		if logger != nil {
			s.logger = logger
		}
	})
}
