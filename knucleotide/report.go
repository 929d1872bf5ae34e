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
	"bytes"
	"fmt"
	"io"

	"github.com/knucleotide/knucleotide-go/frequencies"
)

// QueryResult is the exact count of one query k-mer.
type QueryResult struct {
	Query string
	Count uint64
}

func (q QueryResult) String() string {
	return fmt.Sprintf("%d\t%s", q.Count, q.Query)
}

// FrequencyTable is the ranked frequency list of the k-mers of one length.
type FrequencyTable struct {
	K    int
	Rows []*frequencies.Row
}

// Report is the outcome of Engine.Analyze.
type Report struct {
	Frequencies []FrequencyTable
	Queries     []QueryResult
}

// WriteTo writes every frequency table followed by a blank line, then one line
// per query.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	for _, f := range r.Frequencies {
		if err := WriteFrequencies(&buf, f.Rows); err != nil {
			return 0, err
		}
		buf.WriteByte('\n')
	}
	if err := WriteQueries(&buf, r.Queries); err != nil {
		return 0, err
	}
	return buf.WriteTo(w)
}
