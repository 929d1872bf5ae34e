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
	"golang.org/x/exp/constraints"
)

const (
	_LG_MIN_MAP_SIZE = 3
	_LG_MAX_PRESIZE  = 16
)

// hashFn returns an index into the hash table.
// This hash function is taken from the internals of Austin Appleby's MurmurHash3 algorithm.
// It is also used by the Trove for Java libraries.
func hashFn(okey uint64) uint64 {
	key := okey
	key ^= key >> 33
	key *= 0xff51afd7ed558ccd
	key ^= key >> 33
	key *= 0xc4ceb9fe1a85ec53
	key ^= key >> 33
	return key
}

// distinctHint bounds the number of distinct k-mers among n windows of
// length k.
func distinctHint(n, k int) int {
	if n <= 0 {
		return 0
	}
	if k < 16 {
		return min(n, 1<<(2*k))
	}
	return n
}

// percent returns part as a percentage of whole, or 0 when whole is 0.
func percent[T constraints.Integer](part, whole T) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) * 100 / float64(whole)
}
