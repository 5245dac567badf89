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
	"reflect"

	gerrors "github.com/tochemey/wirecodec/errors"
	"github.com/tochemey/wirecodec/internal/types"
)

func (w *Writer) schemaOf(typ reflect.Type) SchemaType {
	if _, ok := types.WellKnownID(typ); ok {
		return WellKnown
	}
	if _, ok := w.session.Types().TryGetID(typ); ok {
		return Referenced
	}
	return Encoded
}

func (w *Writer) writeTypePayload(schema SchemaType, typ reflect.Type, depth int) error {
	switch schema {
	case WellKnown:
		id, _ := types.WellKnownID(typ)
		w.WriteVarUint32(id)
	case Referenced:
		id, _ := w.session.Types().TryGetID(typ)
		w.WriteVarUint32(id)
	case Encoded:
		if err := w.writeTypeSpec(typ, depth); err != nil {
			return err
		}
		w.session.Types().Add(typ)
	}
	return nil
}

// writeNestedType writes an element type of an encoded description, preceded by its schema
func (w *Writer) writeNestedType(typ reflect.Type, depth int) error {
	schema := w.schemaOf(typ)
	w.buf = append(w.buf, byte(schema))
	return w.writeTypePayload(schema, typ, depth)
}

func (w *Writer) writeTypeSpec(typ reflect.Type, depth int) error {
	if depth > maxTypeDepth {
		return gerrors.NewErrUnsupportedType(typ, "too deeply nested")
	}

	if typ.Name() != "" {
		_ = w.WriteByte(specNamed)
		w.WriteString(w.session.Types().Resolver().Name(typ))
		return nil
	}

	switch typ.Kind() {
	case reflect.Pointer:
		_ = w.WriteByte(specPointer)
		return w.writeNestedType(typ.Elem(), depth+1)
	case reflect.Slice:
		_ = w.WriteByte(specSlice)
		return w.writeNestedType(typ.Elem(), depth+1)
	case reflect.Array:
		_ = w.WriteByte(specArray)
		w.WriteVarUint64(uint64(typ.Len()))
		return w.writeNestedType(typ.Elem(), depth+1)
	case reflect.Map:
		_ = w.WriteByte(specMap)
		if err := w.writeNestedType(typ.Key(), depth+1); err != nil {
			return err
		}
		return w.writeNestedType(typ.Elem(), depth+1)
	default:
		return gerrors.NewErrUnsupportedType(typ, "an unnamed type")
	}
}

func (r *Reader) readTypePayload(schema SchemaType, depth int) (reflect.Type, error) {
	switch schema {
	case WellKnown:
		id, err := r.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		typ, ok := types.WellKnownType(id)
		if !ok {
			return nil, gerrors.NewErrUnknownType(fmt.Sprintf("well-known id %d", id))
		}
		return typ, nil
	case Referenced:
		id, err := r.ReadVarUint32()
		if err != nil {
			return nil, err
		}
		typ, ok := r.session.Types().Get(id)
		if !ok {
			return nil, gerrors.NewErrUnknownType(fmt.Sprintf("type reference %d", id))
		}
		return typ, nil
	case Encoded:
		typ, err := r.readTypeSpec(depth)
		if err != nil {
			return nil, err
		}
		r.session.Types().Add(typ)
		return typ, nil
	default:
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("invalid schema type %d", schema))
	}
}

func (r *Reader) readNestedType(depth int) (reflect.Type, error) {
	b, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	schema := SchemaType(b)
	if schema == Expected || schema > Referenced {
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("invalid nested schema type %d", b))
	}
	return r.readTypePayload(schema, depth)
}

func (r *Reader) readTypeSpec(depth int) (reflect.Type, error) {
	if depth > maxTypeDepth {
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("type description nested deeper than %d", maxTypeDepth))
	}

	kind, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	switch kind {
	case specNamed:
		raw, err := r.ReadLengthPrefixed()
		if err != nil {
			return nil, err
		}
		name := string(raw)
		typ, ok := r.session.Types().Resolver().TypeOf(name)
		if !ok {
			return nil, gerrors.NewErrUnknownType(name)
		}
		return typ, nil
	case specPointer:
		elem, err := r.readNestedType(depth + 1)
		if err != nil {
			return nil, err
		}
		return reflect.PointerTo(elem), nil
	case specSlice:
		elem, err := r.readNestedType(depth + 1)
		if err != nil {
			return nil, err
		}
		return reflect.SliceOf(elem), nil
	case specArray:
		length, err := r.ReadVarUint64()
		if err != nil {
			return nil, err
		}
		if length > maxArrayLength {
			return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("array type length %d exceeds %d", length, maxArrayLength))
		}
		elem, err := r.readNestedType(depth + 1)
		if err != nil {
			return nil, err
		}
		return reflect.ArrayOf(int(length), elem), nil
	case specMap:
		key, err := r.readNestedType(depth + 1)
		if err != nil {
			return nil, err
		}
		if !key.Comparable() {
			return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("map key type %s is not comparable", key))
		}
		elem, err := r.readNestedType(depth + 1)
		if err != nil {
			return nil, err
		}
		return reflect.MapOf(key, elem), nil
	default:
		return nil, gerrors.NewErrMalformedPayload(fmt.Errorf("invalid type description %d", kind))
	}
}
