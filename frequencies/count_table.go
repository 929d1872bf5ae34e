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

// Package frequencies tabulates k-mer occurrences over a nucleotide.Sequence,
// merges the per-chunk tables and ranks the result by frequency.
package frequencies

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/knucleotide/knucleotide-go/nucleotide"
)

// ErrIncompatible is returned when merging tables built for different window
// lengths.
var ErrIncompatible = errors.New("count tables are incompatible")

// CountTable maps the packed k-mers of one window length to their occurrence
// counts. Keys are unique and iteration order is unspecified.
//
// A CountTable is not safe for concurrent use; during a parallel tabulation
// every chunk owns its own table until it is handed to Merge. The zero value is
// not usable: create tables with NewCountTable.
type CountTable struct {
	w       nucleotide.Window
	total   uint64
	hashMap *kmerHashMap
}

// NewCountTable returns an empty table for k-mers of length k.
func NewCountTable(k int) (*CountTable, error) {
	w, err := nucleotide.NewWindow(k)
	if err != nil {
		return nil, err
	}
	return newCountTable(w), nil
}

func newCountTable(w nucleotide.Window) *CountTable {
	return newCountTableWithHint(w, 0)
}

// newCountTableWithHint presizes the table for about hint distinct keys, up to
// 2^_LG_MAX_PRESIZE slots. Larger tables grow on demand.
func newCountTableWithHint(w nucleotide.Window, hint int) *CountTable {
	lg := bits.Len(uint(max(float64(hint)/kmerHashMapLoadFactor, 0)))
	lg = min(max(lg, _LG_MIN_MAP_SIZE), _LG_MAX_PRESIZE)
	return &CountTable{w: w, hashMap: newKmerHashMap(lg)}
}

// table returns the backing map, panicking with a clear message on a zero
// CountTable.
func (t *CountTable) table() *kmerHashMap {
	if t.hashMap == nil {
		panic("frequencies: CountTable must be created with NewCountTable")
	}
	return t.hashMap
}

// K returns the window length of the table.
func (t *CountTable) K() int {
	return t.w.K()
}

// Window returns the window the keys of the table were built with.
func (t *CountTable) Window() nucleotide.Window {
	return t.w
}

// Inc counts one more occurrence of key.
func (t *CountTable) Inc(key nucleotide.Key) {
	t.table().adjustOrPutValue(uint64(key), 1)
	t.total++
}

// Add counts n more occurrences of key. Adding zero leaves the table untouched.
func (t *CountTable) Add(key nucleotide.Key, n uint64) {
	if n == 0 {
		return
	}
	t.table().adjustOrPutValue(uint64(key), n)
	t.total += n
}

// Get returns the count of key, 0 if it never occurred.
func (t *CountTable) Get(key nucleotide.Key) uint64 {
	return t.table().get(uint64(key))
}

// GetString returns the count of the k-mer s.
func (t *CountTable) GetString(s string) (uint64, error) {
	key, err := t.w.Encode(s)
	if err != nil {
		return 0, err
	}
	return t.Get(key), nil
}

// Len returns the number of distinct keys.
func (t *CountTable) Len() int {
	return t.table().numActive
}

// Total returns the sum of all counts.
func (t *CountTable) Total() uint64 {
	return t.total
}

// IsEmpty reports whether nothing has been counted.
func (t *CountTable) IsEmpty() bool {
	return t.total == 0
}

// Merge adds every count of other into t.
func (t *CountTable) Merge(other *CountTable) error {
	if t == other {
		return errors.New("cannot merge table with itself")
	}
	if t.K() != other.K() {
		return fmt.Errorf("%w: window length %d, %d", ErrIncompatible, t.K(), other.K())
	}
	for iter := other.Iterator(); iter.Next(); {
		t.Add(iter.Key(), iter.Count())
	}
	return nil
}

// Merge returns a new table holding, for every key of a or b, the sum of its
// counts in both. Neither argument is modified. Merge is associative and
// commutative, so chunk tables can be combined in any order.
func Merge(a, b *CountTable) (*CountTable, error) {
	if a.K() != b.K() {
		return nil, fmt.Errorf("%w: window length %d, %d", ErrIncompatible, a.K(), b.K())
	}
	res := a.Clone()
	if err := res.Merge(b); err != nil {
		return nil, err
	}
	return res, nil
}

// Clone returns a deep copy of t.
func (t *CountTable) Clone() *CountTable {
	res := newCountTable(t.w)
	for iter := t.Iterator(); iter.Next(); {
		res.Add(iter.Key(), iter.Count())
	}
	return res
}

// Equal reports whether both tables have the same window length and the same
// count for every key.
func (t *CountTable) Equal(other *CountTable) bool {
	if t.K() != other.K() || t.Len() != other.Len() || t.total != other.total {
		return false
	}
	for iter := t.Iterator(); iter.Next(); {
		if other.Get(iter.Key()) != iter.Count() {
			return false
		}
	}
	return true
}

// Iterator returns an iterator over the entries of t. The table must not be
// modified while iterating.
func (t *CountTable) Iterator() *CountTableIterator {
	return &CountTableIterator{it: t.table().iterator()}
}

func (t *CountTable) String() string {
	var sb strings.Builder
	sb.WriteString("### Count Table SUMMARY: \n")
	sb.WriteString(fmt.Sprintf("   k              : %d\n", t.K()))
	sb.WriteString(fmt.Sprintf("   Distinct keys  : %d\n", t.Len()))
	sb.WriteString(fmt.Sprintf("   Total count    : %d\n", t.total))
	sb.WriteString(fmt.Sprintf("   Map capacity   : %d\n", t.table().getCapacity()))
	sb.WriteString("### END SUMMARY\n")
	return sb.String()
}

// CountTableIterator walks the entries of a CountTable.
type CountTableIterator struct {
	it *iteratorKmerHashMap
}

// Next advances to the next entry and reports whether there was one.
func (i *CountTableIterator) Next() bool {
	return i.it.next()
}

// Key returns the key of the current entry.
func (i *CountTableIterator) Key() nucleotide.Key {
	return nucleotide.Key(i.it.getKey())
}

// Count returns the count of the current entry.
func (i *CountTableIterator) Count() uint64 {
	return i.it.getValue()
}
