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

package filters

import (
	"fmt"
	"math"

	"github.com/knucleotide/knucleotide-go/nucleotide"
)

// DefaultSeed is the default seed value for hash functions
const DefaultSeed = uint64(9001)

const maxBits = uint64(math.MaxInt32) * 64

// bloomFilterOptions holds optional parameters for filter construction.
type bloomFilterOptions struct {
	seed uint64
}

// BloomFilterOption is a functional option for configuring a BloomFilter.
type BloomFilterOption func(*bloomFilterOptions)

// WithSeed sets a custom seed for the hash functions.
func WithSeed(seed uint64) BloomFilterOption {
	return func(opts *bloomFilterOptions) {
		opts.seed = seed
	}
}

// NewBloomFilterBySize creates a new Bloom filter for k-mers of length k with
// explicit size parameters.
//
// Parameters:
//   - k: The k-mer length
//   - numBits: The number of bits in the filter (will be rounded up to multiple of 64)
//   - numHashes: The number of hash functions to use
//   - opts: Optional configuration (seed)
//
// Returns an error if parameters are invalid.
func NewBloomFilterBySize(k int, numBits uint64, numHashes uint16, opts ...BloomFilterOption) (BloomFilter, error) {
	if _, err := nucleotide.NewWindow(k); err != nil {
		return nil, err
	}
	if numBits == 0 {
		return nil, fmt.Errorf("numBits must be positive")
	}
	if numHashes == 0 {
		return nil, fmt.Errorf("numHashes must be positive")
	}
	if numBits > maxBits {
		return nil, fmt.Errorf("numBits exceeds maximum allowed size")
	}

	options := &bloomFilterOptions{
		seed: DefaultSeed,
	}
	for _, opt := range opts {
		opt(options)
	}

	capacityBits := roundCapacity(numBits)
	return &bloomFilterImpl{
		k:            k,
		seed:         options.seed,
		numHashes:    numHashes,
		capacityBits: capacityBits,
		bitArray:     make([]uint64, capacityBits/64),
	}, nil
}

// NewBloomFilterByAccuracy creates a new Bloom filter sized to achieve the
// target false positive probability for the expected number of distinct k-mers.
func NewBloomFilterByAccuracy(k int, maxDistinctItems uint64, targetFpp float64, opts ...BloomFilterOption) (BloomFilter, error) {
	if maxDistinctItems == 0 {
		return nil, fmt.Errorf("maxDistinctItems must be positive")
	}
	if targetFpp <= 0.0 || targetFpp >= 1.0 {
		return nil, fmt.Errorf("targetFpp must be between 0 and 1")
	}

	numBits := SuggestNumFilterBits(maxDistinctItems, targetFpp)
	numHashes := SuggestNumHashesFromSize(maxDistinctItems, numBits)

	return NewBloomFilterBySize(k, numBits, numHashes, opts...)
}

// SuggestNumFilterBits calculates the optimal number of bits for a Bloom filter.
//
// Formula: m = ceil(-n * ln(p) / (ln(2))^2)
// where n = number of items, p = target false positive probability
func SuggestNumFilterBits(maxDistinctItems uint64, targetFpp float64) uint64 {
	n := float64(maxDistinctItems)
	ln2 := math.Ln2
	return uint64(math.Ceil(-n * math.Log(targetFpp) / (ln2 * ln2)))
}

// SuggestNumHashesFromSize calculates optimal number of hash functions from filter size.
//
// Formula: k = ceil((m/n) * ln(2))
// where m = number of bits, n = number of items
func SuggestNumHashesFromSize(maxDistinctItems, numFilterBits uint64) uint16 {
	if maxDistinctItems == 0 {
		return 1
	}
	ratio := float64(numFilterBits) / float64(maxDistinctItems)
	result := uint16(math.Ceil(ratio * math.Ln2))
	if result == 0 {
		return 1
	}
	return result
}

// MaxDistinctKmers bounds the number of distinct k-mers in a sequence of
// length n: there are at most n-k+1 windows and at most 4^k distinct keys.
func MaxDistinctKmers(n, k int) uint64 {
	windows := uint64(max(n-k+1, 1))
	if k >= 32 {
		return windows
	}
	return min(windows, uint64(1)<<(2*uint(k)))
}

func roundCapacity(numBits uint64) uint64 {
	return (numBits + 63) &^ 63
}
