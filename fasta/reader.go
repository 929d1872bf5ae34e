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

// Package fasta extracts the symbols of one record from FASTA formatted input.
package fasta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrRecordNotFound is returned when no header line names the requested record.
var ErrRecordNotFound = errors.New("fasta record not found")

// Extract reads r to the end and returns the sequence of the first record
// whose header line starts with ">"+id. An empty id selects the first record.
// Sequence lines are concatenated without their line terminators or blanks;
// symbols are otherwise returned as found, validation is left to
// nucleotide.NewSequence.
func Extract(r io.Reader, id string) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return extract(data, id)
}

// ReadFile is Extract over the file at path. The file is mapped read-only
// instead of being copied into memory; "-" reads standard input.
func ReadFile(path string, id string) ([]byte, error) {
	if path == "-" {
		return Extract(os.Stdin, id)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, release, err := mapFile(f)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", path, err)
	}
	defer release()
	return extract(data, id)
}

func extract(data []byte, id string) ([]byte, error) {
	prefix := []byte(">" + id)
	var (
		seq   []byte
		found bool
	)
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimRight(line, "\r")

		if len(line) > 0 && line[0] == '>' {
			if found {
				break
			}
			found = bytes.HasPrefix(line, prefix)
			continue
		}
		if !found || len(line) == 0 || line[0] == ';' {
			continue
		}
		seq = appendSymbols(seq, line)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
	}
	if seq == nil {
		seq = []byte{}
	}
	return seq, nil
}

// appendSymbols appends line to seq, dropping spaces and tabs.
func appendSymbols(seq, line []byte) []byte {
	for len(line) > 0 {
		i := bytes.IndexAny(line, " \t")
		if i < 0 {
			return append(seq, line...)
		}
		seq = append(seq, line[:i]...)
		line = line[i+1:]
	}
	return seq
}
