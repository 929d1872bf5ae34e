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

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFasta(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.fa")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	path := writeFasta(t, ">ONE\nAAAA\n>THREE\nggta\n")
	out, err := execute(t, "-w", "2", "-c", "3", path)
	require.NoError(t, err)
	assert.Equal(t, "G 50.000\nA 25.000\nT 25.000\n\n"+
		"GG 33.333\nGT 33.333\nTA 33.333\n\n"+
		"1\tGGT\n1\tGGTA\n0\tGGTATT\n0\tGGTATTTTAATT\n0\tGGTATTTTAATTTATAGT\n", out)
}

func TestRootCommandRecord(t *testing.T) {
	path := writeFasta(t, ">ONE\nAAAA\n>THREE\nggta\n")
	out, err := execute(t, "--record", "ONE", path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "A 100.000\n\nAA 100.000\n\n0\tGGT\n"), out)
}

func TestRootCommandErrors(t *testing.T) {
	path := writeFasta(t, ">ONE\nAAAA\n")
	_, err := execute(t, path)
	assert.Error(t, err)

	path = writeFasta(t, ">THREE\nGGNA\n")
	_, err = execute(t, path)
	assert.Error(t, err)

	path = writeFasta(t, ">THREE\nGGTA\n")
	_, err = execute(t, "--workers", "0", path)
	assert.Error(t, err)

	_, err = execute(t, filepath.Join(t.TempDir(), "missing.fa"))
	assert.Error(t, err)
}

func TestSketchCommand(t *testing.T) {
	path := writeFasta(t, ">THREE\nGGTAGGTA\n")
	out, err := execute(t, "sketch", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "2\t2\ttrue\tGGT", lines[0])
	assert.Equal(t, "2\t2\ttrue\tGGTA", lines[1])
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "knucleotide version "+version)
}
