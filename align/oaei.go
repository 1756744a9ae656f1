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
	"fmt"
	"os"
	"strings"

	"github.com/cayleygraph/quad"

	"github.com/ontokit/ontokit/onto"
)

// UseInAlignment is the OAEI Bio-ML annotation property marking
// classes excluded from alignment when its value is "false".
const UseInAlignment = "http://oaei.ontologymatching.org/bio-ml/ann/use_in_alignment"

// IgnoredIndex records classes not to be used in alignment.
type IgnoredIndex map[string]bool

// IgnoredClassIndex collects the classes of the given ontologies that
// carry a use_in_alignment=false annotation.
func IgnoredClassIndex(ontos ...*onto.Ontology) IgnoredIndex {
	ix := make(IgnoredIndex)
	for _, o := range ontos {
		for _, c := range o.Classes() {
			anns := o.Annotations(c, quad.IRI(UseInAlignment))
			if len(anns) > 0 && strings.ToLower(anns[0]) == "false" {
				ix[string(c)] = true
			}
		}
	}
	return ix
}

// Remove filters out mappings that touch an ignored class.
func (ix IgnoredIndex) Remove(maps []Mapping) []Mapping {
	var out []Mapping
	for _, m := range maps {
		if ix[m.Head] || ix[m.Tail] {
			continue
		}
		out = append(out, m)
	}
	return out
}

// MatchingEval scores a prediction mapping file against a reference
// mapping file. nullRefFile may be empty; predictions below threshold
// or touching an ignored class are dropped first.
func MatchingEval(predFile, refFile, nullRefFile string, ignored IgnoredIndex, threshold float64) (MatchResult, error) {
	refs, err := readMappingFile(refFile, 0)
	if err != nil {
		return MatchResult{}, err
	}
	preds, err := readMappingFile(predFile, threshold)
	if err != nil {
		return MatchResult{}, err
	}
	if ignored != nil {
		preds = ignored.Remove(preds)
	}
	var nullRefs []Mapping
	if nullRefFile != "" {
		if nullRefs, err = readMappingFile(nullRefFile, 0); err != nil {
			return MatchResult{}, err
		}
	}
	return F1(preds, refs, nullRefs), nil
}

// RankingEval computes MRR and Hits@K over a candidate mapping file.
func RankingEval(candFile string, ks ...int) (map[string]float64, error) {
	sets, err := readCandidateFile(candFile)
	if err != nil {
		return nil, err
	}
	if len(ks) == 0 {
		ks = []int{1, 5, 10}
	}
	results := map[string]float64{"MRR": MeanReciprocalRank(sets)}
	for _, k := range ks {
		results[fmt.Sprintf("Hits@%d", k)] = HitsAt(sets, k)
	}
	return results, nil
}

// BioLLMEval extends RankingEval with P/R/F1 where the prediction
// mappings are the candidates flagged answer=true and the references
// are the per-set reference mappings.
func BioLLMEval(candFile string, ks ...int) (map[string]float64, error) {
	sets, err := readCandidateFile(candFile)
	if err != nil {
		return nil, err
	}
	var preds, refs []Mapping
	for _, set := range sets {
		refs = append(refs, set.Reference)
		preds = append(preds, set.Answers...)
	}
	if len(ks) == 0 {
		ks = []int{1, 5, 10}
	}
	results := map[string]float64{"MRR": MeanReciprocalRank(sets)}
	for _, k := range ks {
		results[fmt.Sprintf("Hits@%d", k)] = HitsAt(sets, k)
	}
	f1 := F1(preds, refs, nil)
	results["Precision"] = f1.Precision
	results["Recall"] = f1.Recall
	results["F1"] = f1.F1
	return results, nil
}

func readMappingFile(path string, threshold float64) ([]Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadMappings(f, Equivalence, threshold)
}

func readCandidateFile(path string) ([]CandidateSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCandidates(f)
}
