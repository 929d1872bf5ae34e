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

package count

import (
	"math"
	"math/rand"
	"testing"

	"github.com/knucleotide/knucleotide-go/nucleotide"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CountMinSketch(t *testing.T) {
	cms, err := NewCountMinSketch(3, 3, 50, 421)
	assert.NoError(t, err)
	assert.True(t, cms.IsEmpty())

	estimate, err := cms.GetEstimateString("GGT")
	assert.NoError(t, err)
	assert.Equal(t, int64(0), estimate)

	assert.NoError(t, cms.UpdateString("GGT", 9))
	estimate, err = cms.GetEstimateString("GGT")
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, estimate, int64(9))
	assert.Equal(t, int64(9), cms.GetTotalWeights())

	assert.Error(t, cms.UpdateString("GGTA", 1))
	_, err = cms.GetEstimateString("GNT")
	assert.ErrorIs(t, err, nucleotide.ErrInvalidSymbol)
}

func TestCountMinSketchInvalidArgs(t *testing.T) {
	_, err := NewCountMinSketch(0, 3, 50, 1)
	assert.Error(t, err)
	_, err = NewCountMinSketch(4, 0, 50, 1)
	assert.Error(t, err)
	_, err = NewCountMinSketch(4, 3, 2, 1)
	assert.Error(t, err)
	_, err = NewCountMinSketchByAccuracy(4, 0, 0.9, 1)
	assert.Error(t, err)
	_, err = NewCountMinSketchByAccuracy(4, 0.1, 1.5, 1)
	assert.Error(t, err)
}

func TestCountMinSketchNeverUnderCounts(t *testing.T) {
	const k = 6
	rng := rand.New(rand.NewSource(11))
	cms, err := NewCountMinSketchByAccuracy(k, 0.01, 0.99, 7)
	require.NoError(t, err)

	exact := make(map[nucleotide.Key]int64)
	mask := uint64(1)<<(2*k) - 1
	for i := 0; i < 5000; i++ {
		key := nucleotide.Key(rng.Uint64() & mask & 0xff) // at most 256 distinct keys
		exact[key]++
		cms.Update(key, 1)
	}
	for key, n := range exact {
		assert.GreaterOrEqual(t, cms.GetEstimate(key), n)
		assert.LessOrEqual(t, cms.GetLowerBound(key), cms.GetUpperBound(key))
	}
}

func TestCountMinSketchMerge(t *testing.T) {
	a, err := NewCountMinSketch(2, 4, 64, 3)
	require.NoError(t, err)
	b, err := NewCountMinSketch(2, 4, 64, 3)
	require.NoError(t, err)
	require.NoError(t, a.UpdateString("AC", 5))
	require.NoError(t, b.UpdateString("AC", 7))
	require.NoError(t, b.UpdateString("GT", 2))

	assert.NoError(t, a.Merge(b))
	est, _ := a.GetEstimateString("AC")
	assert.GreaterOrEqual(t, est, int64(12))
	est, _ = a.GetEstimateString("GT")
	assert.GreaterOrEqual(t, est, int64(2))
	assert.Equal(t, int64(14), a.GetTotalWeights())

	assert.Error(t, a.Merge(a))
	other, _ := NewCountMinSketch(2, 4, 64, 4)
	assert.ErrorIs(t, a.Merge(other), ErrIncompatible)
	otherK, _ := NewCountMinSketch(3, 4, 64, 3)
	assert.ErrorIs(t, a.Merge(otherK), ErrIncompatible)
}

func TestSuggest(t *testing.T) {
	b, err := SuggestNumBuckets(0.1)
	assert.NoError(t, err)
	assert.Equal(t, int32(28), b)
	h, err := SuggestNumHashes(0.99)
	assert.NoError(t, err)
	assert.Equal(t, int8(5), h)
	h, err = SuggestNumHashes(0)
	assert.NoError(t, err)
	assert.Equal(t, int8(1), h)
}

func TestSuggestOutOfRange(t *testing.T) {
	for _, confidence := range []float64{1.0, 1.5, -0.1, math.NaN()} {
		_, err := SuggestNumHashes(confidence)
		assert.Error(t, err, "confidence=%v", confidence)
	}
	// 1 - 1e-300 rounds to 1
	_, err := SuggestNumHashes(1 - 1e-300)
	assert.Error(t, err)

	for _, relativeError := range []float64{0, -1, 1e-12, math.NaN()} {
		_, err := SuggestNumBuckets(relativeError)
		assert.Error(t, err, "relativeError=%v", relativeError)
	}
	b, err := SuggestNumBuckets(2 * math.E / math.MaxInt32)
	assert.NoError(t, err)
	assert.Positive(t, b)
}

func TestCountMinSketchByAccuracyEdges(t *testing.T) {
	_, err := NewCountMinSketchByAccuracy(3, 0.01, 1.0, 1)
	assert.Error(t, err)
	_, err = NewCountMinSketchByAccuracy(3, 1e-12, 0.9, 1)
	assert.ErrorContains(t, err, "buckets")
	assert.NotContains(t, err.Error(), "fewer than 3")

	cms, err := NewCountMinSketchByAccuracy(3, 0.01, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int8(1), cms.GetNumHashes())
	cms, err = NewCountMinSketchByAccuracy(3, 0.01, 0.999999, 1)
	require.NoError(t, err)
	assert.Equal(t, int8(14), cms.GetNumHashes())
}
