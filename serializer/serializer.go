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

// Package serializer is the entry point of the engine. A Serializer encodes
// values to self-describing payloads, decodes them back with their runtime
// types restored and deep copies values, using the codecs and copiers
// resolved by a serializers.CodecProvider.
//
// # Payload layout
//
// A payload is one header byte naming the compression algorithm followed by
// the tagged fields, compressed with that algorithm.
//
// The untyped Serialize embeds the runtime type of the value so that
// Deserialize can restore it. The generic Serialize[T] only embeds types that
// differ from T and must be paired with Deserialize[T].
package serializer

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/tochemey/wirecodec/cloning"
	"github.com/tochemey/wirecodec/codecs"
	"github.com/tochemey/wirecodec/config"
	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/bufferpool"
	"github.com/tochemey/wirecodec/internal/compression"
	"github.com/tochemey/wirecodec/log"
	"github.com/tochemey/wirecodec/serializers"
	"github.com/tochemey/wirecodec/session"
	"github.com/tochemey/wirecodec/wire"
)

var objectType = reflect.TypeFor[any]()

// Serializer encodes, decodes and copies values.
// It is safe for concurrent use; every call runs with its own session.
type Serializer struct {
	provider            *serializers.CodecProvider
	object              codecs.FieldCodec
	logger              log.Logger
	compression         compression.Algorithm
	maxCollectionLength uint64
	maxDecompressedSize int64
	maxDepth            int
}

// New creates a Serializer over the given provider
func New(provider *serializers.CodecProvider, opts ...Option) (*Serializer, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: the codec provider is required", gerrors.ErrInvalidConfig)
	}

	defaults := config.New()
	s := &Serializer{
		provider:            provider,
		logger:              provider.Logger(),
		compression:         defaults.Compression,
		maxCollectionLength: defaults.MaxCollectionLength,
		maxDecompressedSize: defaults.MaxDecompressedSize,
		maxDepth:            defaults.MaxDepth,
	}
	for _, opt := range opts {
		opt.Apply(s)
	}

	if !s.compression.Valid() {
		return nil, fmt.Errorf("%w: %w", gerrors.ErrInvalidConfig, compression.ErrUnknownAlgorithm)
	}
	if err := provider.Initialize(); err != nil {
		return nil, err
	}

	object, err := provider.GetCodec(objectType)
	if err != nil {
		return nil, err
	}
	s.object = object
	return s, nil
}

// Provider returns the codec provider of the serializer
func (s *Serializer) Provider() *serializers.CodecProvider {
	return s.provider
}

// Serialize encodes the value together with its runtime type
func (s *Serializer) Serialize(value any) ([]byte, error) {
	w := s.newWriter()
	if err := s.object.WriteField(w, 0, objectType, value); err != nil {
		return nil, err
	}
	return s.frame(w.Bytes())
}

// SerializeTo encodes the value together with its runtime type to the given writer
func (s *Serializer) SerializeTo(value any, dst io.Writer) error {
	payload, err := s.Serialize(value)
	if err != nil {
		return err
	}
	_, err = dst.Write(payload)
	return err
}

// Deserialize decodes a payload produced by Serialize and returns the value
// with its runtime type restored
func (s *Serializer) Deserialize(data []byte) (any, error) {
	r, err := s.newReader(data)
	if err != nil {
		return nil, err
	}
	return read(r, s.object)
}

// DeepCopy returns a deep copy of the value. Shared and cyclic references are
// copied once, so the copy has the identity topology of the original.
func (s *Serializer) DeepCopy(value any) (any, error) {
	if value == nil {
		return nil, nil
	}
	copier, err := s.provider.GetCopier(reflect.TypeOf(value))
	if err != nil {
		return nil, err
	}
	return copier.DeepCopy(value, cloning.NewCopyContext())
}

// Serialize encodes the value with the codec of T. The runtime type is only
// embedded when it differs from T.
func Serialize[T any](s *Serializer, value T) ([]byte, error) {
	codec, err := serializers.GetCodec[T](s.provider)
	if err != nil {
		return nil, err
	}

	w := s.newWriter()
	if err := codec.WriteField(w, 0, reflect.TypeFor[T](), value); err != nil {
		return nil, err
	}
	return s.frame(w.Bytes())
}

// Deserialize decodes a payload produced by Serialize[T]
func Deserialize[T any](s *Serializer, data []byte) (T, error) {
	var zero T
	codec, err := serializers.GetCodec[T](s.provider)
	if err != nil {
		return zero, err
	}

	r, err := s.newReader(data)
	if err != nil {
		return zero, err
	}
	return read(r, codec)
}

// DeepCopy returns a deep copy of the value using the copier of T
func DeepCopy[T any](s *Serializer, value T) (T, error) {
	copier, err := serializers.GetCopier[T](s.provider)
	if err != nil {
		var zero T
		return zero, err
	}
	return copier.DeepCopy(value, cloning.NewCopyContext())
}

func (s *Serializer) newWriter() *wire.Writer {
	return wire.NewWriter(session.New(s.provider.Registry()))
}

// frame prefixes the payload with the compression header
func (s *Serializer) frame(payload []byte) ([]byte, error) {
	buf := bufferpool.Pool.Get()
	defer bufferpool.Pool.Put(buf)

	buf.WriteByte(byte(s.compression))
	if err := compression.Compress(s.compression, buf, payload); err != nil {
		return nil, err
	}
	return bytes.Clone(buf.Bytes()), nil
}

// newReader strips the compression header and returns a reader over the payload
func (s *Serializer) newReader(data []byte) (*wire.Reader, error) {
	if len(data) == 0 {
		return nil, gerrors.NewErrMalformedPayload(io.ErrUnexpectedEOF)
	}

	algorithm := compression.Algorithm(data[0])
	if !algorithm.Valid() {
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("%w: %d", compression.ErrUnknownAlgorithm, data[0]))
	}

	payload, err := compression.Decompress(algorithm, data[1:], s.maxDecompressedSize)
	if err != nil {
		s.logger.Warnf("failed to decompress a %s payload: %v", algorithm, err)
		return nil, gerrors.NewErrMalformedPayload(err)
	}

	sess := session.New(s.provider.Registry())
	return wire.NewReader(payload, sess,
		wire.WithMaxCollectionLength(s.maxCollectionLength),
		wire.WithMaxDepth(s.maxDepth)), nil
}

// read decodes the root field and rejects trailing bytes
func read[T any](r *wire.Reader, codec codecs.Codec[T]) (T, error) {
	var zero T
	field, err := r.ReadFieldHeader()
	if err != nil {
		return zero, err
	}

	value, err := codec.ReadValue(r, field)
	if err != nil {
		return zero, err
	}
	if r.Remaining() != 0 {
		return zero, gerrors.NewErrMalformedPayload(fmt.Errorf("%d trailing bytes", r.Remaining()))
	}
	return value, nil
}
