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

package xsync

import (
	"encoding/binary"
	"reflect"
	"runtime"

	"github.com/zeebo/xxh3"
)

// Hasher maps a key to a 64-bit hash used for shard selection
type Hasher[K comparable] func(K) uint64

// ShardedMap spreads its entries over several Map shards so that concurrent
// readers and writers of unrelated keys do not contend on the same lock.
type ShardedMap[K comparable, V any] struct {
	shards []*Map[K, V]
	mask   uint64
	hash   Hasher[K]
}

// NewShardedMap creates a ShardedMap. The shard count is rounded up to a power of two.
// A non-positive count picks one shard per available processor.
func NewShardedMap[K comparable, V any](shards int, hash Hasher[K]) *ShardedMap[K, V] {
	if shards <= 0 {
		shards = runtime.GOMAXPROCS(0)
	}
	size := 1
	for size < shards {
		size <<= 1
	}

	out := &ShardedMap[K, V]{
		shards: make([]*Map[K, V], size),
		mask:   uint64(size - 1),
		hash:   hash,
	}
	for i := range out.shards {
		out.shards[i] = NewMap[K, V]()
	}
	return out
}

func (s *ShardedMap[K, V]) shard(k K) *Map[K, V] {
	return s.shards[s.hash(k)&s.mask]
}

// Get retrieves the value associated with the given key
func (s *ShardedMap[K, V]) Get(k K) (V, bool) {
	return s.shard(k).Get(k)
}

// GetOrSet stores the value unless the key is already present and returns the stored value.
// The boolean is true when the value was already present.
func (s *ShardedMap[K, V]) GetOrSet(k K, v V) (V, bool) {
	return s.shard(k).GetOrSet(k, v)
}

// Len returns the number of entries across all shards
func (s *ShardedMap[K, V]) Len() int {
	total := 0
	for _, shard := range s.shards {
		total += shard.Len()
	}
	return total
}

// Range iterates over every entry of every shard
func (s *ShardedMap[K, V]) Range(f func(K, V)) {
	for _, shard := range s.shards {
		shard.Range(f)
	}
}

// Reset clears every shard
func (s *ShardedMap[K, V]) Reset() {
	for _, shard := range s.shards {
		shard.Reset()
	}
}

// HashType hashes the runtime identity of a type
func HashType(typ reflect.Type) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], typePointer(typ))
	return xxh3.Hash(buf[:])
}

// HashTypePair hashes the runtime identities of two types
func HashTypePair(a, b reflect.Type) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], typePointer(a))
	binary.LittleEndian.PutUint64(buf[8:], typePointer(b))
	return xxh3.Hash(buf[:])
}

// HashString hashes a string key
func HashString(s string) uint64 {
	return xxh3.HashString(s)
}

func typePointer(typ reflect.Type) uint64 {
	if typ == nil {
		return 0
	}
	return uint64(reflect.ValueOf(typ).Pointer())
}
