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

import "github.com/tochemey/wirecodec/log"

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*Config)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(config *Config)

// Apply applies the option
func (f OptionFunc) Apply(c *Config) {
	f(c)
}

// WithCompression sets the payload compression
func WithCompression(compression Compression) Option {
	return OptionFunc(func(config *Config) {
		config.Compression = compression
	})
}

// WithLogLevel sets the log level
func WithLogLevel(level log.Level) Option {
	return OptionFunc(func(config *Config) {
		config.LogLevel = level
	})
}

// WithMaxCollectionLength sets the largest collection length accepted when
// it exceeds the remaining payload
func WithMaxCollectionLength(length uint64) Option {
	return OptionFunc(func(config *Config) {
		config.MaxCollectionLength = length
	})
}

// WithMaxDecompressedSize sets the largest decompressed payload accepted, in bytes
func WithMaxDecompressedSize(size int64) Option {
	return OptionFunc(func(config *Config) {
		config.MaxDecompressedSize = size
	})
}

// WithMaxDepth sets the number of objects that may be nested in a payload
func WithMaxDepth(depth int) Option {
	return OptionFunc(func(config *Config) {
		config.MaxDepth = depth
	})
}
