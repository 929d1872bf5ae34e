/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package filters provides a Bloom filter over packed k-mers for approximate
// membership: "does this k-mer occur in the sequence at all". False positives
// are possible, false negatives are not. Filters built with the same size,
// hash count and seed union associatively, so per-chunk filters combine the
// same way per-chunk count tables do. Hashing uses XXHash64 with
// Kirsch-Mitzenmacher double hashing.
package filters

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"

	"github.com/cespare/xxhash/v2"
	"github.com/knucleotide/knucleotide-go/nucleotide"
)

// ErrIncompatible is returned when combining filters with different
// parameters.
var ErrIncompatible = errors.New("cannot union incompatible bloom filters")

// BloomFilter is a probabilistic set of k-mers of a single length.
type BloomFilter interface {
	// Update methods add k-mers to the filter
	Update(key nucleotide.Key)
	UpdateString(kmer string) error

	// Query methods test membership
	Query(key nucleotide.Key) bool
	QueryString(kmer string) (bool, error)

	// Set operations
	Union(other BloomFilter) error
	IsCompatible(other BloomFilter) bool

	// State queries
	IsEmpty() bool
	BitsUsed() uint64
	Capacity() uint64
	NumHashes() uint16
	Seed() uint64
	K() int

	Reset()
}

// bloomFilterImpl is the concrete implementation of BloomFilter.
type bloomFilterImpl struct {
	k            int
	seed         uint64
	numHashes    uint16
	capacityBits uint64
	numBitsSet   uint64
	bitArray     []uint64
}

// IsEmpty returns true if no bits are set in the filter.
func (bf *bloomFilterImpl) IsEmpty() bool {
	return bf.BitsUsed() == 0
}

// BitsUsed returns the number of bits currently set to 1.
func (bf *bloomFilterImpl) BitsUsed() uint64 {
	return bf.numBitsSet
}

// Capacity returns the total number of bits in the filter.
func (bf *bloomFilterImpl) Capacity() uint64 {
	return bf.capacityBits
}

// NumHashes returns the number of hash functions used.
func (bf *bloomFilterImpl) NumHashes() uint16 {
	return bf.numHashes
}

// Seed returns the hash seed used by the filter.
func (bf *bloomFilterImpl) Seed() uint64 {
	return bf.seed
}

// K returns the k-mer length the filter holds.
func (bf *bloomFilterImpl) K() int {
	return bf.k
}

// Reset clears all bits in the filter.
func (bf *bloomFilterImpl) Reset() {
	for i := range bf.bitArray {
		bf.bitArray[i] = 0
	}
	bf.numBitsSet = 0
}

// IsCompatible checks if two filters can be combined.
// Filters are compatible if they have the same k, seed, hash count and capacity.
func (bf *bloomFilterImpl) IsCompatible(other BloomFilter) bool {
	return bf.k == other.K() &&
		bf.seed == other.Seed() &&
		bf.numHashes == other.NumHashes() &&
		bf.capacityBits == other.Capacity()
}

// computeHashes computes two hash values of key using XXHash64 and the
// Kirsch-Mitzenmacher approach.
func (bf *bloomFilterImpl) computeHashes(key nucleotide.Key) (h0, h1 uint64) {
	var data [8]byte
	binary.LittleEndian.PutUint64(data[:], uint64(key))

	// Compute h0 with the filter's seed
	h := xxhash.NewWithSeed(bf.seed)
	h.Write(data[:])
	h0 = h.Sum64()

	// Compute h1 using h0 as seed
	h.ResetWithSeed(h0)
	h.Write(data[:])
	h1 = h.Sum64()
	return
}

// locate returns the word of the bit array holding bit idx and the mask of
// that bit within it.
func (bf *bloomFilterImpl) locate(idx uint64) (int, uint64) {
	return int(idx >> 6), 1 << (idx & 63)
}

// getHashIndex computes the i-th hash index using double hashing.
// Formula: g_i(x) = ((h0 + i * h1) >> 1) mod capacity
func (bf *bloomFilterImpl) getHashIndex(h0, h1 uint64, i uint16) uint64 {
	return ((h0 + uint64(i)*h1) >> 1) % bf.capacityBits
}

// Update adds key to the filter.
func (bf *bloomFilterImpl) Update(key nucleotide.Key) {
	h0, h1 := bf.computeHashes(key)
	for i := uint16(1); i <= bf.numHashes; i++ {
		word, mask := bf.locate(bf.getHashIndex(h0, h1, i))
		if bf.bitArray[word]&mask == 0 {
			bf.bitArray[word] |= mask
			bf.numBitsSet++
		}
	}
}

// UpdateString adds the k-mer s to the filter.
func (bf *bloomFilterImpl) UpdateString(s string) error {
	key, err := bf.encode(s)
	if err != nil {
		return err
	}
	bf.Update(key)
	return nil
}

// Query tests if key might be in the filter.
func (bf *bloomFilterImpl) Query(key nucleotide.Key) bool {
	if bf.IsEmpty() {
		return false
	}
	h0, h1 := bf.computeHashes(key)
	for i := uint16(1); i <= bf.numHashes; i++ {
		word, mask := bf.locate(bf.getHashIndex(h0, h1, i))
		if bf.bitArray[word]&mask == 0 {
			return false
		}
	}
	return true
}

// QueryString tests if the k-mer s might be in the filter.
func (bf *bloomFilterImpl) QueryString(s string) (bool, error) {
	key, err := bf.encode(s)
	if err != nil {
		return false, err
	}
	return bf.Query(key), nil
}

// Union performs a bitwise OR operation with another filter.
// After union, this filter will contain items from both filters.
func (bf *bloomFilterImpl) Union(other BloomFilter) error {
	if !bf.IsCompatible(other) {
		return ErrIncompatible
	}
	otherImpl, ok := other.(*bloomFilterImpl)
	if !ok {
		return fmt.Errorf("cannot union with non-standard bloom filter implementation")
	}
	var n uint64
	for i, w := range otherImpl.bitArray {
		bf.bitArray[i] |= w
		n += uint64(bits.OnesCount64(bf.bitArray[i]))
	}
	bf.numBitsSet = n
	return nil
}

func (bf *bloomFilterImpl) encode(s string) (nucleotide.Key, error) {
	if len(s) != bf.k {
		return 0, fmt.Errorf("k-mer %q does not match filter length %d", s, bf.k)
	}
	return nucleotide.FromString(s)
}
