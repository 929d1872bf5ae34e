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

// Cursor walks the k-mers of a sequence one symbol at a time, updating its key
// incrementally with Window.Push. A sequence of n symbols yields n-k+1 keys,
// none when n < k. A Cursor is single pass; scanning again requires a new one
// from Window.Scan.
type Cursor struct {
	w    Window
	data []byte
	pos  int
	key  Key
}

func newCursor(w Window, data []byte) *Cursor {
	c := &Cursor{w: w, data: data}
	if len(data) < w.k {
		c.pos = len(data)
		return c
	}
	// prime with the first k-1 symbols
	for ; c.pos < w.k-1; c.pos++ {
		c.key = w.Push(c.key, Code(codes[data[c.pos]]))
	}
	return c
}

// Next advances to the next window and reports whether there was one.
func (c *Cursor) Next() bool {
	if c.pos >= len(c.data) {
		return false
	}
	c.key = c.w.Push(c.key, Code(codes[c.data[c.pos]]))
	c.pos++
	return true
}

// Key returns the key of the current window.
func (c *Cursor) Key() Key {
	return c.key
}

// Offset returns the position, within the scanned sequence, of the first
// symbol of the current window.
func (c *Cursor) Offset() int {
	return c.pos - c.w.k
}
