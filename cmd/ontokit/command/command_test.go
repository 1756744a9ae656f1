// Copyright 2023 The Ontokit Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuads = `<http://example.com/onto/dog> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.com/onto/mammal> <http://www.w3.org/1999/02/22-rdf-syntax-ns#type> <http://www.w3.org/2002/07/owl#Class> .
<http://example.com/onto/dog> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.com/onto/mammal> .
<http://example.com/onto/dog> <http://www.w3.org/2000/01/rdf-schema#label> "dog" .
`

func writeQuadFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "onto.nq")
	require.NoError(t, os.WriteFile(path, []byte(testQuads), 0644))
	return path
}

func TestStatsCmd(t *testing.T) {
	cmd := NewStatsCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{writeQuadFile(t)})
	require.NoError(t, cmd.Execute())
	out := buf.String()
	assert.Contains(t, out, "classes: 2")
	assert.Contains(t, out, "subclass axioms: 1")
}

func TestConvertCmd(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.nq")
	cmd := NewConvertCmd()
	cmd.SetArgs([]string{writeQuadFile(t), "-o", outFile})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "subClassOf")
}

func TestVerbaliseCmd(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.jsonl")
	cmd := NewVerbaliseCmd()
	cmd.SetArgs([]string{writeQuadFile(t), "-o", outFile})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "every dog is mammal")
}

func TestConvertCmdToJSON(t *testing.T) {
	outFile := filepath.Join(t.TempDir(), "out.json")
	cmd := NewConvertCmd()
	cmd.SetArgs([]string{writeQuadFile(t), "-o", outFile, "--dump_format", "json"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"subject"`)
	assert.Contains(t, string(data), "http://example.com/onto/dog")
}

func TestVerbaliseCmdClassFilter(t *testing.T) {
	dir := t.TempDir()
	quadFile := filepath.Join(dir, "onto.nq")
	data := testQuads + `<http://example.com/onto/cat> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <http://example.com/onto/mammal> .
`
	require.NoError(t, os.WriteFile(quadFile, []byte(data), 0644))
	classFile := filepath.Join(dir, "classes.txt")
	require.NoError(t, os.WriteFile(classFile, []byte("<http://example.com/onto/dog>\n"), 0644))

	outFile := filepath.Join(dir, "out.jsonl")
	cmd := NewVerbaliseCmd()
	cmd.SetArgs([]string{quadFile, "-o", outFile, "--classes", classFile})
	require.NoError(t, cmd.Execute())

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Contains(t, string(out), "every dog is mammal")
	assert.NotContains(t, string(out), "cat")
}

func TestPruneCmdRequiresSelection(t *testing.T) {
	cmd := NewPruneCmd()
	cmd.SetArgs([]string{writeQuadFile(t), "-o", filepath.Join(t.TempDir(), "out.nq")})
	assert.Error(t, cmd.Execute())
}

func TestEvalCmdRequiresInput(t *testing.T) {
	cmd := NewEvalCmd()
	cmd.SetArgs([]string{})
	assert.Error(t, cmd.Execute())
}
