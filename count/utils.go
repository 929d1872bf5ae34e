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

package count

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// SuggestNumBuckets returns ceil(e / relativeError), the number of buckets per
// row that keeps the estimation error within relativeError of the total weight.
func SuggestNumBuckets(relativeError float64) (int32, error) {
	if !(relativeError > 0) {
		return 0, errors.New("relative error must be greater than 0.0")
	}
	numBuckets := math.Ceil(math.Exp(1.0) / relativeError)
	if numBuckets > math.MaxInt32 {
		return 0, fmt.Errorf("relative error %g needs more than %d buckets", relativeError, math.MaxInt32)
	}
	return int32(numBuckets), nil
}

// SuggestNumHashes returns ceil(ln(1 / (1 - confidence))), the number of rows
// that bounds the error with probability confidence.
func SuggestNumHashes(confidence float64) (int8, error) {
	if !(confidence >= 0 && confidence < 1.0) {
		return 0, errors.New("confidence must be in [0, 1.0)")
	}
	numHashes := math.Ceil(math.Log(1.0 / (1.0 - confidence)))
	if numHashes > math.MaxInt8 {
		return 0, fmt.Errorf("confidence %g needs more than %d hash functions", confidence, math.MaxInt8)
	}
	// a single row already holds for any confidence up to 1-1/e
	return max(int8(numHashes), 1), nil
}
