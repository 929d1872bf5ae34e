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

package fasta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const input = ">ONE Homo sapiens alu\n" +
	"GGCCGGGCGCGGTGGCTCACGCCTGTAATCCCAGCA\n" +
	">TWO IUB ambiguity codes\n" +
	"cttBtatcatatgctaKggNcataaaSatgtaaaDcDRtBggDtctttataattcBgtcg\n" +
	">THREE Homo sapiens frequency\n" +
	"aacacttcaccaggtatcgtgaaggctcaagattacccagagaacctttgcaatataagaatatgtatgcagcattaccctaagtaattatattctttttctgactcaaagtgacaagccctagtgtatattaaatcggtatttgtcctcataaattaaaatagggtaacatagcccaacttacgtt\n" +
	"ggtatt  ttaatt\n" +
	";comment\n" +
	"\r\n" +
	"GGTA\r\n"

func TestExtract(t *testing.T) {
	seq, err := Extract(strings.NewReader(input), "THREE")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(seq), "aacacttcacc"))
	assert.True(t, strings.HasSuffix(string(seq), "acttacgttggtattttaattGGTA"))
	assert.NotContains(t, string(seq), "\n")
	assert.NotContains(t, string(seq), "\r")
	assert.NotContains(t, string(seq), " ")
}

func TestExtractStopsAtNextRecord(t *testing.T) {
	seq, err := Extract(strings.NewReader(input), "ONE")
	require.NoError(t, err)
	assert.Equal(t, "GGCCGGGCGCGGTGGCTCACGCCTGTAATCCCAGCA", string(seq))

	seq, err = Extract(strings.NewReader(input), "")
	require.NoError(t, err)
	assert.Equal(t, "GGCCGGGCGCGGTGGCTCACGCCTGTAATCCCAGCA", string(seq))
}

func TestExtractMissingRecord(t *testing.T) {
	_, err := Extract(strings.NewReader(input), "FOUR")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	seq, err := Extract(strings.NewReader(">EMPTY\n>NEXT\nACGT\n"), "EMPTY")
	assert.NoError(t, err)
	assert.Empty(t, seq)
	assert.NotNil(t, seq)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.fa")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	fromFile, err := ReadFile(path, "THREE")
	require.NoError(t, err)
	fromReader, err := Extract(strings.NewReader(input), "THREE")
	require.NoError(t, err)
	assert.Equal(t, fromReader, fromFile)

	empty := filepath.Join(t.TempDir(), "empty.fa")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err = ReadFile(empty, "THREE")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.fa"), "THREE")
	assert.Error(t, err)
}

func TestMapFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.fa")
	require.NoError(t, os.WriteFile(path, []byte(input), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	data, release, err := mapFile(f)
	require.NoError(t, err)
	assert.Equal(t, input, string(data))
	assert.NoError(t, release())

	empty := filepath.Join(dir, "empty.fa")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	g, err := os.Open(empty)
	require.NoError(t, err)
	defer g.Close()
	data, release, err = mapFile(g)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.NoError(t, release())
}
