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

	"github.com/stretchr/testify/assert"
)

func eq(head, tail string, score float64) Mapping {
	return Mapping{Head: head, Tail: tail, Relation: Equivalence, Score: score}
}

func TestF1(t *testing.T) {
	refs := []Mapping{eq("a", "1", 1), eq("b", "2", 1), eq("c", "3", 1), eq("d", "4", 1)}
	preds := []Mapping{eq("a", "1", 0.9), eq("b", "9", 0.8), eq("c", "3", 0.7)}
	res := F1(preds, refs, nil)
	assert.InDelta(t, 2.0/3.0, res.Precision, 1e-9)
	assert.InDelta(t, 0.5, res.Recall, 1e-9)
	assert.InDelta(t, 2*(2.0/3.0)*0.5/(2.0/3.0+0.5), res.F1, 1e-9)
}

func TestF1NullReferences(t *testing.T) {
	refs := []Mapping{eq("a", "1", 1), eq("b", "2", 1)}
	nulls := []Mapping{eq("c", "3", 1)}
	// the null prediction counts towards neither precision nor recall
	preds := []Mapping{eq("a", "1", 0.9), eq("c", "3", 0.8)}
	res := F1(preds, refs, nulls)
	assert.InDelta(t, 1.0, res.Precision, 1e-9)
	assert.InDelta(t, 0.5, res.Recall, 1e-9)
}

func TestF1Empty(t *testing.T) {
	res := F1(nil, nil, nil)
	assert.Zero(t, res.Precision)
	assert.Zero(t, res.Recall)
	assert.Zero(t, res.F1)
}

func rankedSet(refTail string, tails ...string) CandidateSet {
	set := CandidateSet{Reference: eq("a", refTail, 1)}
	for i, tail := range tails {
		set.Candidates = append(set.Candidates, eq("a", tail, float64(len(tails)-i)))
	}
	return set
}

func TestMeanReciprocalRank(t *testing.T) {
	sets := []CandidateSet{
		rankedSet("x", "x", "y", "z"), // rank 1
		rankedSet("y", "x", "y", "z"), // rank 2
		rankedSet("w", "x", "y", "z"), // missing
	}
	assert.InDelta(t, (1.0+0.5+0)/3, MeanReciprocalRank(sets), 1e-9)
}

func TestHitsAtK(t *testing.T) {
	sets := []CandidateSet{
		rankedSet("x", "x", "y", "z"),
		rankedSet("z", "x", "y", "z"),
	}
	assert.InDelta(t, 0.5, HitsAt(sets, 1), 1e-9)
	assert.InDelta(t, 1.0, HitsAt(sets, 3), 1e-9)
}

func TestRankingEmpty(t *testing.T) {
	assert.Zero(t, MeanReciprocalRank(nil))
	assert.Zero(t, HitsAt(nil, 5))
}
