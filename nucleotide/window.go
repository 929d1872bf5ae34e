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
	"errors"
	"fmt"
)

var errZeroWindow = errors.New("nucleotide: zero Window, use NewWindow")

// MaxK is the longest window that fits a Key at 2 bits per symbol.
const MaxK = 32

// Key is a k-mer packed 2 bits per symbol. The first symbol of the window
// sits in the highest used pair of bits and the most recent one in the lowest;
// bits above 2k-1 are always zero.
type Key uint64

// Window describes a k-mer length and the mask that keeps a Key within 2k bits.
// The zero Window has no length and is rejected by Encode and Scan; obtain
// windows from NewWindow.
type Window struct {
	k    int
	mask Key
}

// NewWindow returns the Window for k-mers of length k, 1 <= k <= MaxK.
func NewWindow(k int) (Window, error) {
	if k < 1 || k > MaxK {
		return Window{}, fmt.Errorf("window length must be in [1, %d]: %d", MaxK, k)
	}
	return Window{
		k:    k,
		mask: ^Key(0) >> (64 - 2*uint(k)),
	}, nil
}

// K returns the window length.
func (w Window) K() int {
	return w.k
}

// Mask returns the bits a key of this window may use.
func (w Window) Mask() Key {
	return w.mask
}

// Push slides the window one symbol forward: the oldest symbol falls off the
// high end and c enters at the low end.
func (w Window) Push(key Key, c Code) Key {
	return (key<<2 | Key(c)) & w.mask
}

// Encode packs s, which must be exactly k symbols long.
func (w Window) Encode(s string) (Key, error) {
	if w.k == 0 {
		return 0, errZeroWindow
	}
	if len(s) != w.k {
		return 0, fmt.Errorf("k-mer %q does not match window length %d", s, w.k)
	}
	var key Key
	for i := 0; i < len(s); i++ {
		c, err := Encode(s[i])
		if err != nil {
			return 0, err
		}
		key = w.Push(key, c)
	}
	return key, nil
}

// Decode unpacks key into its k symbols.
func (w Window) Decode(key Key) string {
	return key.String(w.k)
}

// Scan returns a fresh Cursor over the windows of seq. It panics on the zero
// Window.
func (w Window) Scan(seq Sequence) *Cursor {
	if w.k == 0 {
		panic(errZeroWindow)
	}
	return newCursor(w, seq.data)
}

// FromString packs s using a window of length len(s).
func FromString(s string) (Key, error) {
	w, err := NewWindow(len(s))
	if err != nil {
		return 0, err
	}
	return w.Encode(s)
}

// String decodes the low 2*length bits of key, first symbol first.
func (k Key) String(length int) string {
	res := make([]byte, length)
	for i := length - 1; i >= 0; i-- {
		res[i] = Decode(Code(k & 3))
		k >>= 2
	}
	return string(res)
}
