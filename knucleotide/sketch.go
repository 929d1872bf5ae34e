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

package knucleotide

import (
	"fmt"

	"github.com/knucleotide/knucleotide-go/count"
	"github.com/knucleotide/knucleotide-go/filters"
	"github.com/knucleotide/knucleotide-go/nucleotide"
	"golang.org/x/sync/errgroup"
)

const maxFilterItems = uint64(1) << 24

// SketchConfig sizes the probabilistic summaries built by Engine.Sketch.
type SketchConfig struct {
	// RelativeError is the count-min error as a fraction of the total count.
	RelativeError float64
	// Confidence is the probability that an estimate is within RelativeError.
	Confidence float64
	// FalsePositiveRate is the target false positive rate of the Bloom filter.
	FalsePositiveRate float64
	// Seed makes sketches of the same length mergeable.
	Seed int64
}

// DefaultSketchConfig returns the parameters used by the sketch command.
func DefaultSketchConfig() SketchConfig {
	return SketchConfig{
		RelativeError:     0.0001,
		Confidence:        0.99,
		FalsePositiveRate: 0.01,
		Seed:              int64(filters.DefaultSeed),
	}
}

// Estimate is the approximate count of one query k-mer.
type Estimate struct {
	Query      string
	Estimate   int64
	UpperBound int64
	Present    bool
}

// Sketch builds a count-min sketch and a Bloom filter of the k-mers of length k
// in seq. Every chunk builds its own pair, which are then merged.
func (e *Engine) Sketch(seq nucleotide.Sequence, k int, cfg SketchConfig) (*count.CountMinSketch, filters.BloomFilter, error) {
	w, err := nucleotide.NewWindow(k)
	if err != nil {
		return nil, nil, err
	}
	newPair := func() (*count.CountMinSketch, filters.BloomFilter, error) {
		cms, err := count.NewCountMinSketchByAccuracy(k, cfg.RelativeError, cfg.Confidence, cfg.Seed)
		if err != nil {
			return nil, nil, err
		}
		// past maxFilterItems the filter stops growing and its false positive
		// rate rises instead
		distinct := min(filters.MaxDistinctKmers(seq.Len(), k), maxFilterItems)
		bf, err := filters.NewBloomFilterByAccuracy(k, distinct, cfg.FalsePositiveRate,
			filters.WithSeed(uint64(cfg.Seed)))
		if err != nil {
			return nil, nil, err
		}
		return cms, bf, nil
	}

	chunks, err := e.chunks(seq, w)
	if err != nil {
		return nil, nil, err
	}
	if len(chunks) == 0 {
		return newPair()
	}
	sketches := make([]*count.CountMinSketch, len(chunks))
	blooms := make([]filters.BloomFilter, len(chunks))
	err = e.fanOut(chunks, func(i int, chunk nucleotide.Sequence) error {
		cms, bf, err := newPair()
		if err != nil {
			return err
		}
		for c := w.Scan(chunk); c.Next(); {
			cms.Update(c.Key(), 1)
			bf.Update(c.Key())
		}
		sketches[i], blooms[i] = cms, bf
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	for i := 1; i < len(chunks); i++ {
		if err := sketches[0].Merge(sketches[i]); err != nil {
			return nil, nil, err
		}
		if err := blooms[0].Union(blooms[i]); err != nil {
			return nil, nil, err
		}
	}
	return sketches[0], blooms[0], nil
}

// Estimate returns approximate counts for queries. One sketch pair is built per
// distinct query length; the estimates come back in the order of queries.
func (e *Engine) Estimate(seq nucleotide.Sequence, queries []string, cfg SketchConfig) ([]Estimate, error) {
	type pair struct {
		cms *count.CountMinSketch
		bf  filters.BloomFilter
	}
	var lengths []int
	byLength := make(map[int]*pair)
	for _, q := range queries {
		if _, ok := byLength[len(q)]; !ok {
			byLength[len(q)] = &pair{}
			lengths = append(lengths, len(q))
		}
	}

	var g errgroup.Group
	for _, k := range lengths {
		p := byLength[k]
		g.Go(func() error {
			cms, bf, err := e.Sketch(seq, k, cfg)
			if err != nil {
				return fmt.Errorf("sketch k=%d: %w", k, err)
			}
			p.cms, p.bf = cms, bf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	estimates := make([]Estimate, len(queries))
	for i, q := range queries {
		p := byLength[len(q)]
		key, err := nucleotide.FromString(q)
		if err != nil {
			return nil, fmt.Errorf("query %q: %w", q, err)
		}
		estimates[i] = Estimate{
			Query:      q,
			Estimate:   p.cms.GetEstimate(key),
			UpperBound: p.cms.GetUpperBound(key),
			Present:    p.bf.Query(key),
		}
	}
	return estimates, nil
}
