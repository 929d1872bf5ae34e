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

// Package partition cuts a buffer into contiguous chunks that can be scanned
// independently by a sliding window of length k.
//
// The buffer [0, length) is first tiled by nominal ranges that do not overlap.
// Every range is then extended past its nominal end by overlap bytes (k-1 for a
// window of length k), clamped to the buffer. Scanning an extended range yields
// exactly the windows that start inside its nominal range: the extension only
// completes windows the chunk owns and never reaches a window that starts in
// the next chunk. Summing per-chunk counts therefore gives the single-pass
// count.
package partition

import (
	"errors"
	"fmt"
)

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// Split cuts length bytes into n near-equal nominal ranges, the first
// length%n of them one byte longer, and extends each by overlap.
// n is reduced to length when it is larger; an empty buffer has no ranges.
func Split(length, n, overlap int) ([]Range, error) {
	if err := checkArgs(length, overlap); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("number of chunks must be positive: %d", n)
	}
	if length == 0 {
		return nil, nil
	}
	n = min(n, length)
	base, rem := length/n, length%n
	ranges := make([]Range, 0, n)
	start := 0
	for i := 0; i < n; i++ {
		end := start + base
		if i < rem {
			end++
		}
		ranges = append(ranges, extend(start, end, overlap, length))
		start = end
	}
	return ranges, nil
}

// SplitSize cuts length bytes into nominal ranges of size bytes, the last one
// possibly shorter, and extends each by overlap.
func SplitSize(length, size, overlap int) ([]Range, error) {
	if err := checkArgs(length, overlap); err != nil {
		return nil, err
	}
	if size < 1 {
		return nil, fmt.Errorf("chunk size must be positive: %d", size)
	}
	ranges := make([]Range, 0, (length+size-1)/size)
	for start := 0; start < length; start += size {
		ranges = append(ranges, extend(start, min(start+size, length), overlap, length))
	}
	return ranges, nil
}

func extend(start, end, overlap, length int) Range {
	return Range{Start: start, End: min(end+overlap, length)}
}

func checkArgs(length, overlap int) error {
	if length < 0 {
		return errors.New("length must not be negative")
	}
	if overlap < 0 {
		return errors.New("overlap must not be negative")
	}
	return nil
}
