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

// Package nucleotide holds the 2-bit symbol codec, the fixed-width k-mer key
// and the sliding window that produces keys over an immutable Sequence.
package nucleotide

import (
	"errors"
	"fmt"
)

// Code is the 2-bit code of a single nucleotide. Codes are ordered A < C < G < T,
// so numeric order of keys matches alphabetical order of the decoded k-mers.
type Code uint8

const (
	CodeA Code = iota
	CodeC
	CodeG
	CodeT
)

const invalidCode = uint8(0xff)

// ErrInvalidSymbol is returned when a byte outside of the ACGT alphabet
// (in either case) reaches the codec.
var ErrInvalidSymbol = errors.New("invalid nucleotide symbol")

var (
	symbols = [4]byte{'A', 'C', 'G', 'T'}
	codes   [256]uint8
)

func init() {
	for i := range codes {
		codes[i] = invalidCode
	}
	for c, s := range symbols {
		codes[s] = uint8(c)
		codes[s|0x20] = uint8(c) // lower case
	}
}

// Encode returns the 2-bit code of b.
func Encode(b byte) (Code, error) {
	c := codes[b]
	if c == invalidCode {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSymbol, b)
	}
	return Code(c), nil
}

// MustEncode is like Encode but panics on a byte outside of the alphabet.
func MustEncode(b byte) Code {
	c, err := Encode(b)
	if err != nil {
		panic(err)
	}
	return c
}

// Decode returns the upper-case display character of c.
func Decode(c Code) byte {
	return symbols[c&3]
}

// IsValid reports whether b belongs to the alphabet.
func IsValid(b byte) bool {
	return codes[b] != invalidCode
}
