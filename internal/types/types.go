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

package types

import (
	"reflect"
	"strings"
)

// maxTypeDepth bounds the structural nesting accepted when walking or decoding types
const maxTypeDepth = 32

// Name returns the wire name of a type.
// Predeclared types use their bare name. Other named types are qualified with
// their package path. Generic instantiations keep their type arguments, which
// reflect already renders with fully qualified names.
func Name(typ reflect.Type) string {
	if typ == nil {
		return ""
	}
	name := typ.Name()
	if name == "" {
		return typ.String()
	}
	if pkg := typ.PkgPath(); pkg != "" {
		return pkg + "." + name
	}
	return name
}

// Family returns the generic family of a type: its qualified name without the
// type arguments. The boolean is false when the type is not a generic instantiation.
func Family(typ reflect.Type) (string, bool) {
	if typ == nil {
		return "", false
	}
	name := typ.Name()
	idx := strings.IndexByte(name, '[')
	if idx <= 0 {
		return "", false
	}
	if pkg := typ.PkgPath(); pkg != "" {
		return pkg + "." + name[:idx], true
	}
	return name[:idx], true
}

// IsGeneric returns true when the type is an instantiation of a generic type
func IsGeneric(typ reflect.Type) bool {
	_, ok := Family(typ)
	return ok
}

// IsEnum returns true when the type is a named type whose underlying type is a
// predeclared basic type, the Go rendition of an enumeration.
func IsEnum(typ reflect.Type) bool {
	if typ == nil || typ.PkgPath() == "" || typ.Name() == "" {
		return false
	}
	return IsBasicKind(typ.Kind())
}

// IsBasicKind returns true for the predeclared scalar kinds
func IsBasicKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	default:
		return false
	}
}

// Underlying returns the predeclared type backing a basic kind
func Underlying(kind reflect.Kind) (reflect.Type, bool) {
	typ, ok := basicTypes[kind]
	return typ, ok
}

// IsReference returns true when values of the type have an identity that must
// be preserved across a serialization round trip.
func IsReference(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	switch typ.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

// Unsupported reports whether a type can never be encoded and gives the reason
func Unsupported(typ reflect.Type) (string, bool) {
	if typ == nil {
		return "", false
	}
	switch typ.Kind() {
	case reflect.Chan:
		return "a channel", true
	case reflect.Func:
		return "a function", true
	case reflect.UnsafePointer:
		return "an unsafe pointer", true
	case reflect.Pointer:
		if typ.Elem().Kind() == reflect.Pointer {
			return "a pointer to a pointer", true
		}
	}
	return "", false
}

// DeclaredBase returns the declared base of a type: the exported struct
// embedded as its first field, unless that field is tagged wire:"-".
// For a pointer to such a struct the base is the pointer to the embedded struct.
func DeclaredBase(typ reflect.Type) (reflect.Type, bool) {
	if typ == nil {
		return nil, false
	}
	if typ.Kind() == reflect.Pointer {
		base, ok := DeclaredBase(typ.Elem())
		if !ok {
			return nil, false
		}
		return reflect.PointerTo(base), true
	}
	if typ.Kind() != reflect.Struct || typ.NumField() == 0 {
		return nil, false
	}
	field := typ.Field(0)
	if !field.Anonymous || !field.IsExported() || field.Type.Kind() != reflect.Struct {
		return nil, false
	}
	if field.Tag.Get("wire") == "-" {
		return nil, false
	}
	return field.Type, true
}
