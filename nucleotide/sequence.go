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

package nucleotide

import (
	"bytes"
	"fmt"
)

// Sequence is a read-only run of nucleotide symbols. The backing array is
// allocated once by NewSequence and never written afterwards, so a Sequence
// and every sub-sequence obtained from Slice can be shared freely between
// goroutines.
type Sequence struct {
	data []byte
}

// NewSequence validates b and returns a Sequence holding a private copy of it.
// The first byte outside of the alphabet fails the whole buffer.
func NewSequence(b []byte) (Sequence, error) {
	for i, s := range b {
		if !IsValid(s) {
			return Sequence{}, fmt.Errorf("%w: %q at offset %d", ErrInvalidSymbol, s, i)
		}
	}
	return Sequence{data: bytes.Clone(b)}, nil
}

// MustSequence is like NewSequence but panics if b is not a valid sequence.
func MustSequence(s string) Sequence {
	seq, err := NewSequence([]byte(s))
	if err != nil {
		panic(err)
	}
	return seq
}

// Len returns the number of symbols in the sequence.
func (s Sequence) Len() int {
	return len(s.data)
}

// At returns the symbol at offset i.
func (s Sequence) At(i int) byte {
	return s.data[i]
}

// Slice returns the sub-sequence [start, end). It shares the receiver's
// backing array.
func (s Sequence) Slice(start, end int) Sequence {
	return Sequence{data: s.data[start:end:end]}
}

func (s Sequence) String() string {
	return string(s.data)
}
