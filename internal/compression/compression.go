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

// Package compression compresses serialized payloads with pooled encoders.
package compression

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Algorithm identifies a compression algorithm. Its value is the header
// byte of a compressed payload.
type Algorithm byte

const (
	// None leaves the payload as is
	None Algorithm = iota
	// Gzip compresses with gzip
	Gzip
	// Zstd compresses with Zstandard
	Zstd
	// Brotli compresses with Brotli
	Brotli
)

// DefaultMaxDecompressedSize bounds the size of a decompressed payload
const DefaultMaxDecompressedSize = 64 << 20

// ErrUnknownAlgorithm is returned for an unrecognized algorithm
var ErrUnknownAlgorithm = errors.New("unknown compression algorithm")

// ErrPayloadTooLarge is returned when a payload decompresses past the allowed size
var ErrPayloadTooLarge = errors.New("decompressed payload too large")

// String returns the name of the algorithm
func (x Algorithm) String() string {
	switch x {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Brotli:
		return "brotli"
	default:
		return fmt.Sprintf("Algorithm(%d)", byte(x))
	}
}

// Valid returns true for known algorithms
func (x Algorithm) Valid() bool {
	return x <= Brotli
}

// MarshalText implements encoding.TextMarshaler
func (x Algorithm) MarshalText() ([]byte, error) {
	if !x.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, byte(x))
	}
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (x *Algorithm) UnmarshalText(text []byte) error {
	algorithm, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = algorithm
	return nil
}

// Parse returns the algorithm of the given name
func Parse(name string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	case "brotli", "br":
		return Brotli, nil
	default:
		return None, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
	}
}

// Compress appends the compressed form of src to dst
func Compress(algorithm Algorithm, dst *bytes.Buffer, src []byte) error {
	switch algorithm {
	case None:
		_, err := dst.Write(src)
		return err
	case Gzip:
		return gzipCompress(dst, src)
	case Zstd:
		return zstdCompress(dst, src)
	case Brotli:
		return brotliCompress(dst, src)
	default:
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, byte(algorithm))
	}
}

// Decompress returns the decompressed form of src. The output is bounded by
// limit bytes, a non-positive limit meaning DefaultMaxDecompressedSize.
func Decompress(algorithm Algorithm, src []byte, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = DefaultMaxDecompressedSize
	}
	switch algorithm {
	case None:
		return src, nil
	case Gzip:
		return gzipDecompress(src, limit)
	case Zstd:
		return zstdDecompress(src, limit)
	case Brotli:
		return brotliDecompress(src, limit)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, byte(algorithm))
	}
}
