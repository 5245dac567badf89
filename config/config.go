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

// Package config holds the settings of a serializer: payload compression,
// logging and decoding limits. Settings are built with options or loaded
// from YAML.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/compression"
	"github.com/tochemey/wirecodec/internal/validation"
	"github.com/tochemey/wirecodec/log"
	"github.com/tochemey/wirecodec/wire"
)

// Compression names the algorithm compressing serialized payloads
type Compression = compression.Algorithm

const (
	NoCompression     = compression.None
	GzipCompression   = compression.Gzip
	ZstdCompression   = compression.Zstd
	BrotliCompression = compression.Brotli
)

const (
	// DefaultMaxCollectionLength is the default bound of decoded collection lengths
	DefaultMaxCollectionLength = wire.DefaultMaxCollectionLength
	// DefaultMaxDecompressedSize is the default bound of decompressed payloads
	DefaultMaxDecompressedSize = compression.DefaultMaxDecompressedSize
	// DefaultMaxDepth is the default bound of nested objects in a payload
	DefaultMaxDepth = wire.DefaultMaxDepth
	// maxDepthLimit caps the configurable nesting depth
	maxDepthLimit = 1 << 20
	// maxCollectionLengthLimit caps the configurable collection length
	maxCollectionLengthLimit = 1 << 30
)

// Config represents the serializer configuration
type Config struct {
	// Specifies the algorithm compressing serialized payloads.
	// The default value is NoCompression
	Compression Compression
	// Specifies the level of the logger built by Logger.
	// The default value is log.InfoLevel
	LogLevel log.Level
	// Specifies the largest collection length accepted when it exceeds the
	// remaining payload. The default value is 10240
	MaxCollectionLength uint64
	// Specifies the largest decompressed payload accepted, in bytes.
	// The default value is 64MiB
	MaxDecompressedSize int64
	// Specifies the number of objects that may be nested in a payload.
	// The default value is 8192
	MaxDepth int
}

// New creates an instance of Config
func New(options ...Option) *Config {
	config := &Config{
		Compression:         NoCompression,
		LogLevel:            log.InfoLevel,
		MaxCollectionLength: DefaultMaxCollectionLength,
		MaxDecompressedSize: DefaultMaxDecompressedSize,
		MaxDepth:            DefaultMaxDepth,
	}
	for _, opt := range options {
		opt.Apply(config)
	}
	return config
}

// document is the YAML form of Config
type document struct {
	Compression         *string `yaml:"compression"`
	LogLevel            *string `yaml:"logLevel"`
	MaxCollectionLength *uint64 `yaml:"maxCollectionLength"`
	MaxDecompressedSize *int64  `yaml:"maxDecompressedSize"`
	MaxDepth            *int    `yaml:"maxDepth"`
}

// LoadYAML loads a Config from a YAML reader. Absent keys keep their
// default value; unknown keys are rejected.
func LoadYAML(r io.Reader) (*Config, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, err)
	}

	config := New()
	if doc.Compression != nil {
		algorithm, err := compression.Parse(*doc.Compression)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, err)
		}
		config.Compression = algorithm
	}
	if doc.LogLevel != nil {
		config.LogLevel = log.ParseLevel(*doc.LogLevel)
	}
	if doc.MaxCollectionLength != nil {
		config.MaxCollectionLength = *doc.MaxCollectionLength
	}
	if doc.MaxDecompressedSize != nil {
		config.MaxDecompressedSize = *doc.MaxDecompressedSize
	}
	if doc.MaxDepth != nil {
		config.MaxDepth = *doc.MaxDepth
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadYAMLFile loads a Config from a YAML file
func LoadYAMLFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadYAML(file)
}

// Validate returns every violation of the configuration wrapped with ErrInvalidConfig
func (c *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddAssertion(c.Compression.Valid(), fmt.Sprintf("the [compression]=(%d) is unknown", byte(c.Compression))).
		AddAssertion(c.LogLevel != log.InvalidLevel, "the [logLevel] is unknown").
		AddValidator(validation.NewRangeValidator("maxCollectionLength", c.MaxCollectionLength, 1, maxCollectionLengthLimit)).
		AddValidator(validation.NewRangeValidator("maxDecompressedSize", c.MaxDecompressedSize, 1, 1<<40)).
		AddValidator(validation.NewRangeValidator("maxDepth", c.MaxDepth, 1, maxDepthLimit))

	if err := chain.Validate(); err != nil {
		return fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, err)
	}
	return nil
}

// Logger returns a zap logger writing at the configured level to the given writers
func (c *Config) Logger(writers ...io.Writer) log.Logger {
	return log.NewZap(c.LogLevel, writers...)
}
