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

package frequencies

import (
	"fmt"
	"sort"

	"github.com/knucleotide/knucleotide-go/nucleotide"
)

// Row is one entry of a ranked frequency list.
type Row struct {
	key   nucleotide.Key
	k     int
	count uint64
	total uint64
}

func newRow(key nucleotide.Key, k int, count uint64, total uint64) *Row {
	return &Row{
		key:   key,
		k:     k,
		count: count,
		total: total,
	}
}

// String renders the row as "<k-mer> <percentage>" with three decimals.
func (r *Row) String() string {
	return fmt.Sprintf("%s %.3f", r.GetSequence(), r.GetPercent())
}

func (r *Row) GetKey() nucleotide.Key {
	return r.key
}

// GetSequence returns the decoded k-mer.
func (r *Row) GetSequence() string {
	return r.key.String(r.k)
}

func (r *Row) GetCount() uint64 {
	return r.count
}

// GetPercent returns the count as a percentage of the table total.
func (r *Row) GetPercent() float64 {
	return percent(r.count, r.total)
}

// Rank returns the entries of t sorted by descending count. Equal counts are
// ordered by ascending key, which is alphabetical order of the k-mers. An empty
// table ranks to no rows.
func Rank(t *CountTable) []*Row {
	rowList := make([]*Row, 0, t.Len())
	for iter := t.Iterator(); iter.Next(); {
		rowList = append(rowList, newRow(iter.Key(), t.K(), iter.Count(), t.Total()))
	}

	sort.Slice(rowList, func(i, j int) bool {
		if rowList[i].count == rowList[j].count {
			return rowList[i].key < rowList[j].key
		}
		return rowList[i].count > rowList[j].count
	})

	return rowList
}
