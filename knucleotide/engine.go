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

// Package knucleotide runs k-mer frequency tabulations and exact k-mer queries
// in parallel over one shared, read-only nucleotide.Sequence.
//
// Every computation splits the sequence with the partition package, scans the
// chunks on a bounded pool of goroutines and reduces the per-chunk results.
// Results are collected by dispatch position, so they come back in the order
// they were asked for whatever order the goroutines finish in. The first
// failing task fails the whole computation.
package knucleotide

import (
	"fmt"

	"github.com/knucleotide/knucleotide-go/frequencies"
	"github.com/knucleotide/knucleotide-go/nucleotide"
	"github.com/knucleotide/knucleotide-go/partition"
	"golang.org/x/sync/errgroup"
)

// Engine runs counts with a fixed Config. It holds no per-computation state
// and is safe for concurrent use.
type Engine struct {
	cfg Config
}

// NewEngine returns an Engine for cfg.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// chunks splits seq for windows of w. Neighbouring chunks overlap by k-1
// symbols, which lets every chunk finish the windows starting inside it.
func (e *Engine) chunks(seq nucleotide.Sequence, w nucleotide.Window) ([]nucleotide.Sequence, error) {
	ranges, err := partition.Split(seq.Len(), e.cfg.Chunks, w.K()-1)
	if err != nil {
		return nil, err
	}
	chunks := make([]nucleotide.Sequence, len(ranges))
	for i, r := range ranges {
		chunks[i] = seq.Slice(r.Start, r.End)
	}
	return chunks, nil
}

// fanOut calls fn for every chunk on at most Workers goroutines and waits for
// all of them.
func (e *Engine) fanOut(chunks []nucleotide.Sequence, fn func(i int, chunk nucleotide.Sequence) error) error {
	var g errgroup.Group
	g.SetLimit(e.cfg.Workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			return fn(i, chunk)
		})
	}
	return g.Wait()
}

// Tabulate counts every k-mer of length k in seq.
func (e *Engine) Tabulate(seq nucleotide.Sequence, k int) (*frequencies.CountTable, error) {
	w, err := nucleotide.NewWindow(k)
	if err != nil {
		return nil, err
	}
	chunks, err := e.chunks(seq, w)
	if err != nil {
		return nil, err
	}
	tables := make([]*frequencies.CountTable, len(chunks))
	err = e.fanOut(chunks, func(i int, chunk nucleotide.Sequence) error {
		tables[i] = frequencies.Tabulate(chunk, w)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reduce(k, tables)
}

// reduce merges tables into one. Merge is associative and commutative, so the
// fold order does not change the result.
func reduce(k int, tables []*frequencies.CountTable) (*frequencies.CountTable, error) {
	if len(tables) == 0 {
		return frequencies.NewCountTable(k)
	}
	acc := tables[0]
	for _, t := range tables[1:] {
		if err := acc.Merge(t); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Frequencies returns the ranked frequency list of the k-mers of length k.
func (e *Engine) Frequencies(seq nucleotide.Sequence, k int) ([]*frequencies.Row, error) {
	t, err := e.Tabulate(seq, k)
	if err != nil {
		return nil, err
	}
	return frequencies.Rank(t), nil
}

// Count returns the exact number of occurrences of query in seq. Occurrences
// may overlap. A query that never occurs counts 0.
func (e *Engine) Count(seq nucleotide.Sequence, query string) (uint64, error) {
	w, err := nucleotide.NewWindow(len(query))
	if err != nil {
		return 0, err
	}
	target, err := w.Encode(query)
	if err != nil {
		return 0, err
	}
	chunks, err := e.chunks(seq, w)
	if err != nil {
		return 0, err
	}
	counts := make([]uint64, len(chunks))
	err = e.fanOut(chunks, func(i int, chunk nucleotide.Sequence) error {
		counts[i] = frequencies.CountTarget(chunk, w, target)
		return nil
	})
	if err != nil {
		return 0, err
	}
	var total uint64
	for _, n := range counts {
		total += n
	}
	return total, nil
}

// Analyze computes the frequency list of every length in lengths and the
// count of every query, all concurrently. The report lists both in the order
// given.
func (e *Engine) Analyze(seq nucleotide.Sequence, lengths []int, queries []string) (*Report, error) {
	report := &Report{
		Frequencies: make([]FrequencyTable, len(lengths)),
		Queries:     make([]QueryResult, len(queries)),
	}

	var g errgroup.Group
	for i, query := range queries {
		g.Go(func() error {
			n, err := e.Count(seq, query)
			if err != nil {
				return fmt.Errorf("query %q: %w", query, err)
			}
			report.Queries[i] = QueryResult{Query: query, Count: n}
			return nil
		})
	}
	for i, k := range lengths {
		g.Go(func() error {
			rows, err := e.Frequencies(seq, k)
			if err != nil {
				return fmt.Errorf("frequencies k=%d: %w", k, err)
			}
			report.Frequencies[i] = FrequencyTable{K: k, Rows: rows}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}
