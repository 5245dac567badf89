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

// Package session holds the state scoped to a single serialize, deserialize
// or copy operation. A Session is never shared between operations nor used
// from several goroutines at once.
package session

// Session carries the reference table and the type table of one operation
type Session struct {
	references *ReferencedObjects
	types      *TypeTable
}

// New creates a Session resolving type names with the given resolver
func New(resolver TypeResolver) *Session {
	return &Session{
		references: newReferencedObjects(),
		types:      newTypeTable(resolver),
	}
}

// References returns the reference table of the operation
func (s *Session) References() *ReferencedObjects {
	return s.references
}

// Types returns the type table of the operation
func (s *Session) Types() *TypeTable {
	return s.types
}

// Reset clears the session state so it can serve another operation
func (s *Session) Reset() {
	s.references.Reset()
	s.types.Reset()
}
