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

package wire

import (
	"io"
	"reflect"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/tochemey/wirecodec/session"
)

// Writer appends fields to an in-memory buffer
type Writer struct {
	buf     []byte
	session *session.Session
}

// NewWriter creates a Writer bound to the given session
func NewWriter(sess *session.Session) *Writer {
	return &Writer{
		buf:     make([]byte, 0, 256),
		session: sess,
	}
}

// Session returns the session of the operation
func (w *Writer) Session() *session.Session {
	return w.session
}

// Bytes returns the encoded bytes. The slice is only valid until the next write.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far
func (w *Writer) Len() int {
	return len(w.buf)
}

// WriteTo copies the encoded bytes to the given io.Writer
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := dst.Write(w.buf)
	return int64(n), err
}

// Reset empties the buffer and binds the writer to another session
func (w *Writer) Reset(sess *session.Session) {
	w.buf = w.buf[:0]
	w.session = sess
}

// WriteFieldHeader writes a field header. The runtime type is embedded when it
// differs from the expected type. Object headers, TagDelimited and
// LengthPrefixed, consume a reference id.
func (w *Writer) WriteFieldHeader(delta uint32, expected, actual reflect.Type, wireType WireType) error {
	if actual == nil || actual == expected {
		w.WriteFieldHeaderExpected(delta, wireType)
		return nil
	}

	mark := len(w.buf)
	schema := w.schemaOf(actual)
	w.writeTag(wireType, schema, delta)
	if err := w.writeTypePayload(schema, actual, 0); err != nil {
		w.buf = w.buf[:mark]
		return err
	}
	w.onHeader(wireType)
	return nil
}

// WriteFieldHeaderExpected writes a field header without an embedded type
func (w *Writer) WriteFieldHeaderExpected(delta uint32, wireType WireType) {
	w.writeTag(wireType, Expected, delta)
	w.onHeader(wireType)
}

// WriteStartObject writes the header of a TagDelimited field
func (w *Writer) WriteStartObject(delta uint32, expected, actual reflect.Type) error {
	return w.WriteFieldHeader(delta, expected, actual, TagDelimited)
}

// WriteEndObject terminates the current TagDelimited field
func (w *Writer) WriteEndObject() {
	w.buf = append(w.buf, byte(Extended)<<wireTypeShift|byte(EndTagDelimited)<<schemaTypeShift)
}

// WriteEndBase closes the members of a declared base
func (w *Writer) WriteEndBase() {
	w.buf = append(w.buf, byte(Extended)<<wireTypeShift|byte(EndBaseFields)<<schemaTypeShift)
}

// WriteReference writes a reference field pointing at an object already written.
// A zero id encodes null.
func (w *Writer) WriteReference(delta uint32, id uint32) {
	w.writeTag(Reference, Expected, delta)
	w.WriteVarUint32(id)
}

// WriteNullReference writes a null reference field
func (w *Writer) WriteNullReference(delta uint32) {
	w.WriteReference(delta, 0)
}

// WriteByte appends a single byte
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteRaw appends bytes as they are
func (w *Writer) WriteRaw(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteVarUint32 appends a varint
func (w *Writer) WriteVarUint32(v uint32) {
	w.buf = protowire.AppendVarint(w.buf, uint64(v))
}

// WriteVarUint64 appends a varint
func (w *Writer) WriteVarUint64(v uint64) {
	w.buf = protowire.AppendVarint(w.buf, v)
}

// WriteVarInt64 appends a zigzag encoded varint
func (w *Writer) WriteVarInt64(v int64) {
	w.buf = protowire.AppendVarint(w.buf, protowire.EncodeZigZag(v))
}

// WriteFixed32 appends four little-endian bytes
func (w *Writer) WriteFixed32(v uint32) {
	w.buf = protowire.AppendFixed32(w.buf, v)
}

// WriteFixed64 appends eight little-endian bytes
func (w *Writer) WriteFixed64(v uint64) {
	w.buf = protowire.AppendFixed64(w.buf, v)
}

// WriteLengthPrefixed appends a varint length followed by the bytes
func (w *Writer) WriteLengthPrefixed(b []byte) {
	w.buf = protowire.AppendBytes(w.buf, b)
}

// WriteString appends a varint length followed by the string bytes
func (w *Writer) WriteString(s string) {
	w.buf = protowire.AppendString(w.buf, s)
}

func (w *Writer) writeTag(wireType WireType, schema SchemaType, delta uint32) {
	tag := byte(wireType)<<wireTypeShift | byte(schema)<<schemaTypeShift
	if delta < extendedDelta {
		w.buf = append(w.buf, tag|byte(delta))
		return
	}
	w.buf = append(w.buf, tag|extendedDelta)
	w.WriteVarUint32(delta)
}

func (w *Writer) onHeader(wireType WireType) {
	if wireType == TagDelimited || wireType == LengthPrefixed {
		w.session.References().OnHeaderWritten()
	}
}
