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
	"math/bits"
	"math/rand"
	"testing"

	"github.com/knucleotide/knucleotide-go/nucleotide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func onesCount(bf BloomFilter) uint64 {
	var n uint64
	for _, w := range bf.(*bloomFilterImpl).bitArray {
		n += uint64(bits.OnesCount64(w))
	}
	return n
}

func TestBloomFilterBitsUsed(t *testing.T) {
	bf, err := NewBloomFilterBySize(4, 128, 3)
	require.NoError(t, err)
	assert.Equal(t, uint64(128), bf.Capacity())
	assert.Len(t, bf.(*bloomFilterImpl).bitArray, 2)

	require.NoError(t, bf.UpdateString("GGTA"))
	used := bf.BitsUsed()
	assert.Positive(t, used)
	assert.LessOrEqual(t, used, uint64(3))
	assert.Equal(t, onesCount(bf), used)

	// adding the same k-mer again sets no new bit
	require.NoError(t, bf.UpdateString("GGTA"))
	assert.Equal(t, used, bf.BitsUsed())

	require.NoError(t, bf.UpdateString("CCCC"))
	assert.Equal(t, onesCount(bf), bf.BitsUsed())

	bf.Reset()
	assert.Zero(t, bf.BitsUsed())
	assert.Zero(t, onesCount(bf))
}

func TestBloomFilterLocate(t *testing.T) {
	bf := &bloomFilterImpl{capacityBits: 128, bitArray: make([]uint64, 2)}
	word, mask := bf.locate(5)
	assert.Equal(t, 0, word)
	assert.Equal(t, uint64(1)<<5, mask)
	word, mask = bf.locate(65)
	assert.Equal(t, 1, word)
	assert.Equal(t, uint64(2), mask)
	word, mask = bf.locate(127)
	assert.Equal(t, 1, word)
	assert.Equal(t, uint64(1)<<63, mask)
}

func TestBloomFilterInvalidArgs(t *testing.T) {
	_, err := NewBloomFilterBySize(0, 64, 3)
	assert.Error(t, err)
	_, err = NewBloomFilterBySize(4, 0, 3)
	assert.Error(t, err)
	_, err = NewBloomFilterBySize(4, 64, 0)
	assert.Error(t, err)
	_, err = NewBloomFilterByAccuracy(4, 0, 0.01)
	assert.Error(t, err)
	_, err = NewBloomFilterByAccuracy(4, 100, 1.0)
	assert.Error(t, err)
}

func TestBloomFilterNoFalseNegatives(t *testing.T) {
	const k = 8
	bf, err := NewBloomFilterByAccuracy(k, 1000, 0.01)
	require.NoError(t, err)
	assert.True(t, bf.IsEmpty())
	assert.Equal(t, k, bf.K())
	assert.Equal(t, DefaultSeed, bf.Seed())
	assert.Zero(t, bf.Capacity()%64)

	rng := rand.New(rand.NewSource(9))
	mask := uint64(1)<<(2*k) - 1
	keys := make([]nucleotide.Key, 1000)
	for i := range keys {
		keys[i] = nucleotide.Key(rng.Uint64() & mask)
		bf.Update(keys[i])
	}
	assert.False(t, bf.IsEmpty())
	for _, key := range keys {
		assert.True(t, bf.Query(key))
	}

	bf.Reset()
	assert.True(t, bf.IsEmpty())
	assert.False(t, bf.Query(keys[0]))
}

func TestBloomFilterStrings(t *testing.T) {
	bf, err := NewBloomFilterBySize(3, 1024, 4, WithSeed(17))
	require.NoError(t, err)
	assert.Equal(t, uint64(17), bf.Seed())
	assert.NoError(t, bf.UpdateString("GGT"))
	ok, err := bf.QueryString("ggt")
	assert.NoError(t, err)
	assert.True(t, ok)

	assert.Error(t, bf.UpdateString("GGTA"))
	_, err = bf.QueryString("GNT")
	assert.ErrorIs(t, err, nucleotide.ErrInvalidSymbol)
}

func TestBloomFilterUnion(t *testing.T) {
	a, _ := NewBloomFilterBySize(2, 512, 3)
	b, _ := NewBloomFilterBySize(2, 512, 3)
	require.NoError(t, a.UpdateString("AC"))
	require.NoError(t, b.UpdateString("GT"))

	assert.NoError(t, a.Union(b))
	for _, s := range []string{"AC", "GT"} {
		ok, err := a.QueryString(s)
		assert.NoError(t, err)
		assert.True(t, ok, s)
	}
	assert.Equal(t, onesCount(a), a.BitsUsed())

	other, _ := NewBloomFilterBySize(2, 512, 3, WithSeed(1))
	assert.ErrorIs(t, a.Union(other), ErrIncompatible)
	otherK, _ := NewBloomFilterBySize(3, 512, 3)
	assert.False(t, a.IsCompatible(otherK))
}

func TestSuggestions(t *testing.T) {
	assert.Equal(t, uint64(9586), SuggestNumFilterBits(1000, 0.01))
	assert.Equal(t, uint16(7), SuggestNumHashesFromSize(1000, 9586))
	assert.Equal(t, uint16(1), SuggestNumHashesFromSize(0, 10))
	assert.Equal(t, uint64(4), MaxDistinctKmers(100, 1))
	assert.Equal(t, uint64(64), MaxDistinctKmers(100, 3))
	assert.Equal(t, uint64(96), MaxDistinctKmers(100, 5))
	assert.Equal(t, uint64(69), MaxDistinctKmers(100, 32))
	assert.Equal(t, uint64(1), MaxDistinctKmers(0, 4))
}
