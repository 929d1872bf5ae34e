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
	"runtime"
)

// Config tunes how an Engine splits and schedules work.
type Config struct {
	// Workers bounds the goroutines scanning the chunks of one computation.
	Workers int
	// Chunks is the number of chunks a sequence is split into for every
	// tabulation or query.
	Chunks int
}

// DefaultConfig uses one worker per CPU and four chunks per computation.
func DefaultConfig() Config {
	return Config{
		Workers: runtime.NumCPU(),
		Chunks:  4,
	}
}

func (c Config) validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive: %d", c.Workers)
	}
	if c.Chunks < 1 {
		return fmt.Errorf("chunks must be positive: %d", c.Chunks)
	}
	return nil
}

// DefaultFrequencyLengths returns the k-mer lengths of the frequency report.
func DefaultFrequencyLengths() []int {
	return []int{1, 2}
}

// DefaultQueries returns the k-mers whose exact counts are reported.
func DefaultQueries() []string {
	return []string{
		"GGT",
		"GGTA",
		"GGTATT",
		"GGTATTTTAATT",
		"GGTATTTTAATTTATAGT",
	}
}
