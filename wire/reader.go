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
	"fmt"
	"io"
	"reflect"

	"google.golang.org/protobuf/encoding/protowire"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/session"
)

// DefaultMaxCollectionLength is the collection length above which a declared
// length must also fit in the remaining input to be trusted.
const DefaultMaxCollectionLength = 10240

// DefaultMaxDepth is the default bound of nested TagDelimited fields
const DefaultMaxDepth = 8192

// ReaderOption configures a Reader
type ReaderOption func(*Reader)

// WithMaxCollectionLength sets the collection length above which a declared
// length is checked against the remaining input
func WithMaxCollectionLength(length uint64) ReaderOption {
	return func(r *Reader) {
		r.maxCollectionLength = length
	}
}

// WithMaxDepth sets the number of TagDelimited fields that may be open at once.
// A non-positive depth keeps the default.
func WithMaxDepth(depth int) ReaderOption {
	return func(r *Reader) {
		if depth > 0 {
			r.maxDepth = depth
		}
	}
}

// Reader decodes fields from an in-memory buffer
type Reader struct {
	buf                 []byte
	pos                 int
	session             *session.Session
	maxCollectionLength uint64
	maxDepth            int
	depth               int
}

// NewReader creates a Reader over the given bytes bound to the given session
func NewReader(data []byte, sess *session.Session, opts ...ReaderOption) *Reader {
	r := &Reader{
		buf:                 data,
		session:             sess,
		maxCollectionLength: DefaultMaxCollectionLength,
		maxDepth:            DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Session returns the session of the operation
func (r *Reader) Session() *session.Session {
	return r.session
}

// Position returns the offset of the next byte to read
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// Depth returns the number of TagDelimited fields currently open
func (r *Reader) Depth() int {
	return r.depth
}

// EnterObject opens a TagDelimited field. It fails once the nesting bound is
// reached. Every successful call must be paired with LeaveObject.
func (r *Reader) EnterObject() error {
	if r.depth >= r.maxDepth {
		return gerrors.NewErrMalformedPayload(fmt.Errorf("nesting exceeds %d levels", r.maxDepth))
	}
	r.depth++
	return nil
}

// LeaveObject closes the TagDelimited field opened by EnterObject
func (r *Reader) LeaveObject() {
	r.depth--
}

// ReadFieldHeader decodes the next field header. Object headers reserve a
// reference id which is reported in Field.ReferenceID.
func (r *Reader) ReadFieldHeader() (Field, error) {
	tag, err := r.ReadByte()
	if err != nil {
		return Field{}, err
	}

	field := Field{WireType: WireType(tag >> wireTypeShift)}
	if field.WireType == Extended {
		field.ExtendedWireType = ExtendedWireType((tag >> schemaTypeShift) & schemaTypeMask)
		return field, nil
	}

	switch field.WireType {
	case VarInt, TagDelimited, LengthPrefixed, Fixed32, Fixed64, Reference:
	default:
		return Field{}, gerrors.NewErrMalformedPayload(fmt.Errorf("invalid wire type %d", field.WireType))
	}

	field.FieldIDDelta = uint32(tag & deltaMask)
	if field.FieldIDDelta == extendedDelta {
		if field.FieldIDDelta, err = r.ReadVarUint32(); err != nil {
			return Field{}, err
		}
	}

	if schema := SchemaType((tag >> schemaTypeShift) & schemaTypeMask); schema != Expected {
		if field.FieldType, err = r.readTypePayload(schema, 0); err != nil {
			return Field{}, err
		}
	}

	if field.WireType == TagDelimited || field.WireType == LengthPrefixed {
		field.ReferenceID = r.session.References().ReserveID()
	}
	return field, nil
}

// ReadByte reads a single byte
func (r *Reader) ReadByte() (byte, error) {
	if r.pos >= len(r.buf) {
		return 0, gerrors.NewErrMalformedPayload(io.ErrUnexpectedEOF)
	}
	b := r.buf[r.pos]
	r.pos++
	return b, nil
}

// ReadBytes reads n bytes. The returned slice aliases the input.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, gerrors.NewErrMalformedPayload(io.ErrUnexpectedEOF)
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

// Skip advances past n bytes
func (r *Reader) Skip(n int) error {
	_, err := r.ReadBytes(n)
	return err
}

// ReadVarUint32 reads a varint that must fit in 32 bits
func (r *Reader) ReadVarUint32() (uint32, error) {
	v, err := r.ReadVarUint64()
	if err != nil {
		return 0, err
	}
	if v > uint64(^uint32(0)) {
		return 0, gerrors.NewErrMalformedPayload(fmt.Errorf("varint %d overflows 32 bits", v))
	}
	return uint32(v), nil
}

// ReadVarUint64 reads a varint
func (r *Reader) ReadVarUint64() (uint64, error) {
	v, n := protowire.ConsumeVarint(r.buf[r.pos:])
	if n < 0 {
		return 0, gerrors.NewErrMalformedPayload(protowire.ParseError(n))
	}
	r.pos += n
	return v, nil
}

// ReadVarInt64 reads a zigzag encoded varint
func (r *Reader) ReadVarInt64() (int64, error) {
	v, err := r.ReadVarUint64()
	if err != nil {
		return 0, err
	}
	return protowire.DecodeZigZag(v), nil
}

// ReadFixed32 reads four little-endian bytes
func (r *Reader) ReadFixed32() (uint32, error) {
	v, n := protowire.ConsumeFixed32(r.buf[r.pos:])
	if n < 0 {
		return 0, gerrors.NewErrMalformedPayload(protowire.ParseError(n))
	}
	r.pos += n
	return v, nil
}

// ReadFixed64 reads eight little-endian bytes
func (r *Reader) ReadFixed64() (uint64, error) {
	v, n := protowire.ConsumeFixed64(r.buf[r.pos:])
	if n < 0 {
		return 0, gerrors.NewErrMalformedPayload(protowire.ParseError(n))
	}
	r.pos += n
	return v, nil
}

// ReadLengthPrefixed reads a varint length followed by that many bytes.
// The returned slice aliases the input.
func (r *Reader) ReadLengthPrefixed() ([]byte, error) {
	v, n := protowire.ConsumeBytes(r.buf[r.pos:])
	if n < 0 {
		return nil, gerrors.NewErrMalformedPayload(protowire.ParseError(n))
	}
	r.pos += n
	return v, nil
}

// CheckLength rejects a declared collection length that is both larger than
// the configured bound and larger than the remaining input
func (r *Reader) CheckLength(typ reflect.Type, length uint64) error {
	if length > r.maxCollectionLength && length > uint64(r.Remaining()) {
		return gerrors.NewErrInvalidLength(typ, length)
	}
	return nil
}
