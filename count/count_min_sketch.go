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

// Package count provides a count-min sketch over packed k-mers. It estimates
// k-mer counts in fixed memory, never under-counting, and merges associatively
// so that per-chunk sketches can be combined like exact count tables.
package count

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/knucleotide/knucleotide-go/nucleotide"
	"github.com/twmb/murmur3"
)

// ErrIncompatible is returned when merging sketches built with different
// parameters.
var ErrIncompatible = errors.New("sketches are incompatible")

type CountMinSketch struct {
	k            int
	numBuckets   int32 // counter array for each of the hashing function
	numHashes    int8  // number of hashing functions
	sketchSlice  []int64
	seed         int64
	totalWeights int64
	hashSeeds    []uint64
}

// NewCountMinSketch returns a sketch of numHashes rows of numBuckets counters
// for k-mers of length k. Sketches built with equal parameters and seed can be
// merged.
func NewCountMinSketch(k int, numHashes int8, numBuckets int32, seed int64) (*CountMinSketch, error) {
	if _, err := nucleotide.NewWindow(k); err != nil {
		return nil, err
	}
	if numHashes < 1 {
		return nil, errors.New("at least one hash function is required")
	}
	if numBuckets < 3 {
		return nil, errors.New("using fewer than 3 buckets incurs relative error greater than 1.0")
	}
	if int64(numBuckets)*int64(numHashes) >= 1<<30 {
		return nil, errors.New("these parameters generate a sketch that exceeds 2^30 elements")
	}

	rng := rand.New(rand.NewSource(seed))
	hashSeeds := make([]uint64, numHashes)
	for i := range int(numHashes) {
		hashSeeds[i] = uint64(rng.Int63()) + uint64(seed)
	}

	return &CountMinSketch{
		k:           k,
		numBuckets:  numBuckets,
		numHashes:   numHashes,
		sketchSlice: make([]int64, int(numBuckets)*int(numHashes)),
		seed:        seed,
		hashSeeds:   hashSeeds,
	}, nil
}

// NewCountMinSketchByAccuracy sizes the sketch for the given relative error
// and confidence.
func NewCountMinSketchByAccuracy(k int, relativeError float64, confidence float64, seed int64) (*CountMinSketch, error) {
	numBuckets, err := SuggestNumBuckets(relativeError)
	if err != nil {
		return nil, err
	}
	numHashes, err := SuggestNumHashes(confidence)
	if err != nil {
		return nil, err
	}
	return NewCountMinSketch(k, numHashes, numBuckets, seed)
}

func (c *CountMinSketch) GetK() int {
	return c.k
}

func (c *CountMinSketch) GetNumBuckets() int32 {
	return c.numBuckets
}

func (c *CountMinSketch) GetNumHashes() int8 {
	return c.numHashes
}

func (c *CountMinSketch) GetTotalWeights() int64 {
	return c.totalWeights
}

func (c *CountMinSketch) GetSeed() int64 {
	return c.seed
}

func (c *CountMinSketch) GetRelativeError() float64 {
	return math.Exp(1.0) / float64(c.numBuckets)
}

func (c *CountMinSketch) IsEmpty() bool {
	return c.totalWeights == 0
}

// bucket returns the counter index of key in row i.
func (c *CountMinSketch) bucket(i int, key nucleotide.Key) int {
	var scratch [8]byte
	binary.LittleEndian.PutUint64(scratch[:], uint64(key))
	h := murmur3.SeedSum64(c.hashSeeds[i], scratch[:])
	return i*int(c.numBuckets) + int(h%uint64(c.numBuckets))
}

// Update adds weight occurrences of key.
func (c *CountMinSketch) Update(key nucleotide.Key, weight int64) {
	if weight < 0 {
		c.totalWeights += -weight
	} else {
		c.totalWeights += weight
	}
	for i := range int(c.numHashes) {
		c.sketchSlice[c.bucket(i, key)] += weight
	}
}

// UpdateString adds weight occurrences of the k-mer s.
func (c *CountMinSketch) UpdateString(s string, weight int64) error {
	key, err := c.encode(s)
	if err != nil {
		return err
	}
	c.Update(key, weight)
	return nil
}

// GetEstimate returns the smallest counter key maps to. With non-negative
// weights it is never below the true count.
func (c *CountMinSketch) GetEstimate(key nucleotide.Key) int64 {
	estimate := int64(math.MaxInt64)
	for i := range int(c.numHashes) {
		estimate = Min(estimate, c.sketchSlice[c.bucket(i, key)])
	}
	return estimate
}

// GetEstimateString is GetEstimate for the k-mer s.
func (c *CountMinSketch) GetEstimateString(s string) (int64, error) {
	key, err := c.encode(s)
	if err != nil {
		return 0, err
	}
	return c.GetEstimate(key), nil
}

func (c *CountMinSketch) GetUpperBound(key nucleotide.Key) int64 {
	return c.GetEstimate(key) + int64(c.GetRelativeError()*float64(c.GetTotalWeights()))
}

func (c *CountMinSketch) GetLowerBound(key nucleotide.Key) int64 {
	return c.GetEstimate(key)
}

// Merge adds the counters of otherSketch into c.
func (c *CountMinSketch) Merge(otherSketch *CountMinSketch) error {
	if c == otherSketch {
		return errors.New("cannot merge sketch with itself")
	}

	canMerge := c.k == otherSketch.k &&
		c.GetNumHashes() == otherSketch.GetNumHashes() &&
		c.GetNumBuckets() == otherSketch.GetNumBuckets() &&
		c.GetSeed() == otherSketch.GetSeed()

	if !canMerge {
		return ErrIncompatible
	}

	for i := range c.sketchSlice {
		c.sketchSlice[i] += otherSketch.sketchSlice[i]
	}
	c.totalWeights += otherSketch.totalWeights

	return nil
}

func (c *CountMinSketch) encode(s string) (nucleotide.Key, error) {
	if len(s) != c.k {
		return 0, fmt.Errorf("k-mer %q does not match sketch length %d", s, c.k)
	}
	return nucleotide.FromString(s)
}
