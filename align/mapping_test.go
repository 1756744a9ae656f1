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

package align

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = "http://example.com/src/"
const tgt = "http://example.com/tgt/"

func TestReadMappings(t *testing.T) {
	in := "SrcEntity\tTgtEntity\tScore\n" +
		src + "A\t" + tgt + "B\t0.9\n" +
		src + "C\t" + tgt + "D\t0.4\n"
	maps, err := ReadMappings(strings.NewReader(in), Equivalence, 0)
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, Mapping{Head: src + "A", Tail: tgt + "B", Relation: Equivalence, Score: 0.9}, maps[0])
}

func TestReadMappingsThreshold(t *testing.T) {
	in := "SrcEntity\tTgtEntity\tScore\n" +
		src + "A\t" + tgt + "B\t0.9\n" +
		src + "C\t" + tgt + "D\t0.4\n"
	maps, err := ReadMappings(strings.NewReader(in), Equivalence, 0.5)
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, src+"A", maps[0].Head)
}

func TestReadMappingsBadScore(t *testing.T) {
	in := src + "A\t" + tgt + "B\thigh\n"
	_, err := ReadMappings(strings.NewReader(in), Equivalence, 0)
	assert.Error(t, err)
}

func TestWriteMappingsRoundTrip(t *testing.T) {
	maps := []Mapping{
		{Head: src + "A", Tail: tgt + "B", Relation: Equivalence, Score: 0.95},
		{Head: src + "C", Tail: tgt + "D", Relation: Equivalence, Score: 0.5},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteMappings(&buf, maps))

	got, err := ReadMappings(&buf, Equivalence, 0)
	require.NoError(t, err)
	assert.Equal(t, maps, got)
}

func TestSortByScore(t *testing.T) {
	maps := []Mapping{
		{Head: "b", Tail: "y", Score: 0.5},
		{Head: "a", Tail: "x", Score: 0.9},
		{Head: "a", Tail: "w", Score: 0.5},
	}
	SortByScore(maps)
	assert.Equal(t, "a", maps[0].Head)
	assert.Equal(t, 0.9, maps[0].Score)
	// ties order by head then tail
	assert.Equal(t, "w", maps[1].Tail)
	assert.Equal(t, "y", maps[2].Tail)
}

func TestReadCandidatesScored(t *testing.T) {
	in := "SrcEntity\tTgtEntity\tTgtCandidates\n" +
		src + "A\t" + tgt + "B\t" + `[["` + tgt + `C",0.3],["` + tgt + `B",0.8]]` + "\n"
	sets, err := ReadCandidates(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, tgt+"B", sets[0].Reference.Tail)
	require.Len(t, sets[0].Candidates, 2)
	// candidates come back ranked
	assert.Equal(t, tgt+"B", sets[0].Candidates[0].Tail)
	assert.Empty(t, sets[0].Answers)
}

func TestReadCandidatesUnscored(t *testing.T) {
	in := src + "A\t" + tgt + "B\t" + `[["` + tgt + `B"],["` + tgt + `C"]]` + "\n"
	sets, err := ReadCandidates(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sets, 1)
	// given order is kept via descending rank scores
	assert.Equal(t, tgt+"B", sets[0].Candidates[0].Tail)
	assert.Equal(t, 1.0, sets[0].Candidates[0].Score)
	assert.Equal(t, 0.5, sets[0].Candidates[1].Score)
}

func TestReadCandidatesWithAnswers(t *testing.T) {
	in := src + "A\t" + tgt + "B\t" +
		`[["` + tgt + `B",0.8,true],["` + tgt + `C",0.3,false]]` + "\n"
	sets, err := ReadCandidates(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, sets[0].Answers, 1)
	assert.Equal(t, tgt+"B", sets[0].Answers[0].Tail)
}

func TestReadCandidatesMalformed(t *testing.T) {
	in := src + "A\t" + tgt + "B\t" + `[[0.8]]` + "\n"
	_, err := ReadCandidates(strings.NewReader(in))
	assert.ErrorIs(t, err, errBadCandidate)
}

func TestWriteCandidatesRoundTrip(t *testing.T) {
	sets := []CandidateSet{{
		Reference: Mapping{Head: src + "A", Tail: tgt + "B", Relation: Equivalence, Score: 1},
		Candidates: []Mapping{
			{Head: src + "A", Tail: tgt + "B", Relation: Equivalence, Score: 0.8},
			{Head: src + "A", Tail: tgt + "C", Relation: Equivalence, Score: 0.3},
		},
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCandidates(&buf, sets))

	got, err := ReadCandidates(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sets[0].Candidates, got[0].Candidates)
}
