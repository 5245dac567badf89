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

	"github.com/andybalholm/brotli"
)

// Pool for reusing Brotli readers
var brotliReadersPool = sync.Pool{
	New: func() any {
		return brotli.NewReader(nil)
	},
}

// Pool for reusing Brotli writers
var brotliWritersPool = sync.Pool{
	New: func() any {
		return brotli.NewWriterLevel(nil, brotli.DefaultCompression)
	},
}

func brotliCompress(dst *bytes.Buffer, src []byte) error {
	writer := brotliWritersPool.Get().(*brotli.Writer)
	defer brotliWritersPool.Put(writer)

	writer.Reset(dst)
	if _, err := writer.Write(src); err != nil {
		return err
	}
	return writer.Close()
}

func brotliDecompress(src []byte, limit int64) ([]byte, error) {
	reader := brotliReadersPool.Get().(*brotli.Reader)
	defer func() {
		_ = reader.Reset(nil)
		brotliReadersPool.Put(reader)
	}()

	if err := reader.Reset(bytes.NewReader(src)); err != nil {
		return nil, err
	}
	return readLimited(reader, limit)
}
