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
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
)

var gzipWritersPool = sync.Pool{
	New: func() any {
		return gzip.NewWriter(nil)
	},
}

var gzipReadersPool = sync.Pool{
	New: func() any {
		return new(gzip.Reader)
	},
}

func gzipCompress(dst *bytes.Buffer, src []byte) error {
	writer := gzipWritersPool.Get().(*gzip.Writer)
	defer gzipWritersPool.Put(writer)

	writer.Reset(dst)
	if _, err := writer.Write(src); err != nil {
		return err
	}
	return writer.Close()
}

func gzipDecompress(src []byte, limit int64) ([]byte, error) {
	reader := gzipReadersPool.Get().(*gzip.Reader)
	defer gzipReadersPool.Put(reader)

	if err := reader.Reset(bytes.NewReader(src)); err != nil {
		return nil, err
	}
	defer reader.Close()
	return readLimited(reader, limit)
}

// readLimited reads everything from r, failing once more than limit bytes are produced
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrPayloadTooLarge
	}
	return out, nil
}
