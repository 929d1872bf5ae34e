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
	"github.com/knucleotide/knucleotide-go/nucleotide"
)

// Tabulate counts every k-mer of seq. A sequence shorter than the window
// yields an empty table.
func Tabulate(seq nucleotide.Sequence, w nucleotide.Window) *CountTable {
	t := newCountTableWithHint(w, distinctHint(seq.Len()-w.K()+1, w.K()))
	for c := w.Scan(seq); c.Next(); {
		t.Inc(c.Key())
	}
	return t
}

// CountTarget returns how many windows of seq are equal to target. It is the
// cheap path for long k-mers, where tabulating every distinct key to read a
// single count would be wasteful.
func CountTarget(seq nucleotide.Sequence, w nucleotide.Window, target nucleotide.Key) uint64 {
	var n uint64
	for c := w.Scan(seq); c.Next(); {
		if c.Key() == target {
			n++
		}
	}
	return n
}
