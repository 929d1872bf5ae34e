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
	"strings"
)

// kmerHashMap is an open addressing, linear probing map from packed k-mer keys
// to counts. Its length is always 2^lgLength. Unlike a frequent-items map it
// never forgets a key: crossing the load threshold doubles the arrays.
type kmerHashMap struct {
	lgLength      int
	loadThreshold int
	keys          []uint64
	values        []uint64
	states        []int16 // 0 empty, otherwise probe distance + 1
	numActive     int
}

type iteratorKmerHashMap struct {
	keys_      []uint64
	values_    []uint64
	states_    []int16
	numActive_ int
	stride_    int
	mask_      int
	i_         int
	count_     int
}

const (
	kmerHashMapLoadFactor = float64(0.75)
	kmerHashMapDriftLimit = 1024

	// inverseGolden spreads the iteration stride over the whole table.
	inverseGolden = float64(0.6180339887498949025)
)

// newKmerHashMap returns an empty map of 2^lgLength slots.
func newKmerHashMap(lgLength int) *kmerHashMap {
	m := &kmerHashMap{}
	m.allocate(lgLength)
	return m
}

func (m *kmerHashMap) allocate(lgLength int) {
	size := 1 << lgLength
	m.lgLength = lgLength
	m.loadThreshold = int(float64(size) * kmerHashMapLoadFactor)
	m.keys = make([]uint64, size)
	m.values = make([]uint64, size)
	m.states = make([]int16, size)
	m.numActive = 0
}

func (m *kmerHashMap) mask() uint64 {
	return uint64(1)<<m.lgLength - 1
}

func (m *kmerHashMap) get(key uint64) uint64 {
	probe := m.hashProbe(key)
	if m.states[probe] > 0 {
		return m.values[probe]
	}
	return 0
}

// getCapacity returns the number of keys the map holds before it grows.
func (m *kmerHashMap) getCapacity() int {
	return m.loadThreshold
}

// adjustOrPutValue increments the value mapped to key by adjustAmount,
// inserting the key when it is absent.
func (m *kmerHashMap) adjustOrPutValue(key uint64, adjustAmount uint64) {
	var (
		arrayMask = m.mask()
		probe     = hashFn(key) & arrayMask
		drift     = 1
	)
	for m.states[probe] != 0 && m.keys[probe] != key {
		probe = (probe + 1) & arrayMask
		drift++
		if drift >= kmerHashMapDriftLimit {
			// a cluster this long means the table is too dense for the key set
			m.grow()
			m.adjustOrPutValue(key, adjustAmount)
			return
		}
	}
	if m.states[probe] != 0 {
		m.values[probe] += adjustAmount
		return
	}
	m.keys[probe] = key
	m.values[probe] = adjustAmount
	m.states[probe] = int16(drift)
	m.numActive++
	if m.numActive > m.loadThreshold {
		m.grow()
	}
}

// grow doubles the table and reinserts every entry.
func (m *kmerHashMap) grow() {
	oldKeys, oldValues, oldStates := m.keys, m.values, m.states
	m.allocate(m.lgLength + 1)
	for i, state := range oldStates {
		if state > 0 {
			m.adjustOrPutValue(oldKeys[i], oldValues[i])
		}
	}
}

func (m *kmerHashMap) hashProbe(key uint64) int {
	arrayMask := m.mask()
	probe := hashFn(key) & arrayMask
	for m.states[probe] > 0 && m.keys[probe] != key {
		probe = (probe + 1) & arrayMask
	}
	return int(probe)
}

func (m *kmerHashMap) iterator() *iteratorKmerHashMap {
	stride := int(uint64(float64(len(m.keys))*inverseGolden) | 1)
	return &iteratorKmerHashMap{
		keys_:      m.keys,
		values_:    m.values,
		states_:    m.states,
		numActive_: m.numActive,

		stride_: stride,
		mask_:   int(m.mask()),
		i_:      -stride,
	}
}

func (m *kmerHashMap) String() string {
	var sb strings.Builder
	sb.WriteString("KmerHashMap:\n")
	sb.WriteString(fmt.Sprintf("  %12s:%11s%20s %s\n", "Index", "States", "Values", "Keys"))
	for i := 0; i < len(m.keys); i++ {
		if m.states[i] <= 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %12d:%11d%20d %d\n", i, m.states[i], m.values[i], m.keys[i]))
	}
	return sb.String()
}

// next advances over the occupied slots, visiting each exactly once: the odd
// stride is coprime with the power-of-two length.
func (i *iteratorKmerHashMap) next() bool {
	i.i_ = (i.i_ + i.stride_) & i.mask_
	for i.count_ < i.numActive_ {
		if i.states_[i.i_] > 0 {
			i.count_++
			return true
		}
		i.i_ = (i.i_ + i.stride_) & i.mask_
	}
	return false
}

func (i *iteratorKmerHashMap) getKey() uint64 {
	return i.keys_[i.i_]
}

func (i *iteratorKmerHashMap) getValue() uint64 {
	return i.values_[i.i_]
}
