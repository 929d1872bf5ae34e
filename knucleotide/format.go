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

package knucleotide

import (
	"fmt"
	"io"

	"github.com/knucleotide/knucleotide-go/frequencies"
)

// WriteFrequencies writes one "<k-mer> <percentage>" line per row, the
// percentage with three decimals.
func WriteFrequencies(w io.Writer, rows []*frequencies.Row) error {
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteQueries writes one "<count>\t<query>" line per result.
func WriteQueries(w io.Writer, results []QueryResult) error {
	for _, q := range results {
		if _, err := fmt.Fprintln(w, q); err != nil {
			return err
		}
	}
	return nil
}

// WriteEstimates writes one "<estimate>\t<upper bound>\t<present>\t<query>"
// line per estimate.
func WriteEstimates(w io.Writer, estimates []Estimate) error {
	for _, e := range estimates {
		if _, err := fmt.Fprintf(w, "%d\t%d\t%t\t%s\n", e.Estimate, e.UpperBound, e.Present, e.Query); err != nil {
			return err
		}
	}
	return nil
}
