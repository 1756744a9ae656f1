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
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontokit/ontokit/onto"
)

func matcherOntologies() (*onto.Ontology, *onto.Ontology) {
	srcOnto := onto.New(
		classQuad(src+"heartDisease"),
		labelQuad(src+"heartDisease", "heart disease"),
		classQuad(src+"kidneyStone"),
		labelQuad(src+"kidneyStone", "kidney stone"),
		classQuad(src+"unlabeled"),
	)
	tgtOnto := onto.New(
		classQuad(tgt+"cardiacDisease"),
		labelQuad(tgt+"cardiacDisease", "heart disease"),
		labelQuad(tgt+"cardiacDisease", "cardiac disease"),
		classQuad(tgt+"renalStone"),
		labelQuad(tgt+"renalStone", "kidney stones"),
		classQuad(tgt+"lungDisease"),
		labelQuad(tgt+"lungDisease", "lung disease"),
	)
	return srcOnto, tgtOnto
}

func TestMatchClassExactOverlap(t *testing.T) {
	srcOnto, tgtOnto := matcherOntologies()
	m := NewStringMatcher(srcOnto, tgtOnto)

	maps, err := m.MatchClass(quad.IRI(src + "heartDisease"))
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, tgt+"cardiacDisease", maps[0].Tail)
	assert.Equal(t, 1.0, maps[0].Score)
}

func TestMatchClassEditDistance(t *testing.T) {
	srcOnto, tgtOnto := matcherOntologies()
	m := NewStringMatcher(srcOnto, tgtOnto)
	m.UseEditDist = true

	maps, err := m.MatchClass(quad.IRI(src + "kidneyStone"))
	require.NoError(t, err)
	require.NotEmpty(t, maps)
	assert.Equal(t, tgt+"renalStone", maps[0].Tail)
	// "kidney stone" vs "kidney stones" differ by one char in 13
	assert.InDelta(t, 1-1.0/13, maps[0].Score, 1e-9)
}

func TestMatchClassNoLabels(t *testing.T) {
	srcOnto, tgtOnto := matcherOntologies()
	m := NewStringMatcher(srcOnto, tgtOnto)

	_, err := m.MatchClass(quad.IRI(src + "unlabeled"))
	assert.ErrorIs(t, err, ErrNoCandidates)
}

func TestMatchSkipsUnmatchable(t *testing.T) {
	srcOnto, tgtOnto := matcherOntologies()
	m := NewStringMatcher(srcOnto, tgtOnto)

	maps := m.Match()
	// only the exact-overlap pair scores positive without edit distance
	require.Len(t, maps, 1)
	assert.Equal(t, src+"heartDisease", maps[0].Head)
}

func TestMatchNBest(t *testing.T) {
	srcOnto, tgtOnto := matcherOntologies()
	m := NewStringMatcher(srcOnto, tgtOnto)
	m.UseEditDist = true
	m.NBest = 1

	maps, err := m.MatchClass(quad.IRI(src + "heartDisease"))
	require.NoError(t, err)
	assert.Len(t, maps, 1)
}

func TestNormEditSim(t *testing.T) {
	assert.Equal(t, 1.0, normEditSim("same", "same"))
	assert.InDelta(t, 0.75, normEditSim("abcd", "abce"), 1e-9)
	assert.Zero(t, normEditSim("", ""))
}
