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
	"sync"

	"github.com/klauspost/compress/zstd"
)

var zstdEncodersPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil)
		return enc
	},
}

// zstd decoders are safe for concurrent DecodeAll calls
var (
	zstdDecoderOnce sync.Once
	zstdDecoder     *zstd.Decoder
	zstdDecoderErr  error
)

func zstdCompress(dst *bytes.Buffer, src []byte) error {
	enc, ok := zstdEncodersPool.Get().(*zstd.Encoder)
	if !ok || enc == nil {
		var err error
		if enc, err = zstd.NewWriter(nil); err != nil {
			return err
		}
	}
	defer zstdEncodersPool.Put(enc)

	out := enc.EncodeAll(src, dst.AvailableBuffer())
	_, err := dst.Write(out)
	return err
}

func zstdDecompress(src []byte, limit int64) ([]byte, error) {
	zstdDecoderOnce.Do(func() {
		zstdDecoder, zstdDecoderErr = zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(0),
			zstd.WithDecoderMaxMemory(uint64(DefaultMaxDecompressedSize)))
	})
	if zstdDecoderErr != nil {
		return nil, zstdDecoderErr
	}

	out, err := zstdDecoder.DecodeAll(src, nil)
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}
