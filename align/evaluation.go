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

// MatchResult holds global matching scores.
type MatchResult struct {
	Precision float64
	Recall    float64
	F1        float64
}

func mappingSet(maps []Mapping) map[string]struct{} {
	set := make(map[string]struct{}, len(maps))
	for _, m := range maps {
		set[m.key()] = struct{}{}
	}
	return set
}

// F1 scores prediction mappings against reference mappings. Null
// references are mappings of unknown correctness: predictions found
// in the null set count towards neither precision nor recall.
func F1(preds, refs, nullRefs []Mapping) MatchResult {
	refSet := mappingSet(refs)
	nullSet := mappingSet(nullRefs)

	var correct, nulled int
	seen := make(map[string]struct{}, len(preds))
	for _, p := range preds {
		k := p.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		if _, ok := nullSet[k]; ok {
			nulled++
			continue
		}
		if _, ok := refSet[k]; ok {
			correct++
		}
	}

	var res MatchResult
	if denom := len(seen) - nulled; denom > 0 {
		res.Precision = float64(correct) / float64(denom)
	}
	if len(refSet) > 0 {
		res.Recall = float64(correct) / float64(len(refSet))
	}
	if res.Precision+res.Recall > 0 {
		res.F1 = 2 * res.Precision * res.Recall / (res.Precision + res.Recall)
	}
	return res
}

// rank returns the 1-based rank of the reference tail in the ranked
// candidates, or 0 when absent.
func (c CandidateSet) rank() int {
	for i, m := range c.Candidates {
		if m.Tail == c.Reference.Tail {
			return i + 1
		}
	}
	return 0
}

// MeanReciprocalRank averages 1/rank of the reference mapping over
// all candidate sets. A missing reference contributes zero.
func MeanReciprocalRank(sets []CandidateSet) float64 {
	if len(sets) == 0 {
		return 0
	}
	var sum float64
	for _, set := range sets {
		if r := set.rank(); r > 0 {
			sum += 1 / float64(r)
		}
	}
	return sum / float64(len(sets))
}

// HitsAt is the fraction of candidate sets whose reference mapping
// ranks within the top k.
func HitsAt(sets []CandidateSet, k int) float64 {
	if len(sets) == 0 {
		return 0
	}
	var hits int
	for _, set := range sets {
		if r := set.rank(); r > 0 && r <= k {
			hits++
		}
	}
	return float64(hits) / float64(len(sets))
}
