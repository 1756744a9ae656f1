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
	"errors"

	"github.com/agnivade/levenshtein"
	"github.com/cayleygraph/quad"

	"github.com/ontokit/ontokit/olog"
	"github.com/ontokit/ontokit/onto"
	"github.com/ontokit/ontokit/text"
)

// ErrNoCandidates is returned when no target candidate can be
// selected for a source class.
var ErrNoCandidates = errors.New("align: no candidates")

const (
	defaultCandPool = 200
	defaultNBest    = 10
)

// StringMatcher aligns two ontologies by class labels. Candidates are
// selected from an inverted index over the target labels and scored
// either by exact label overlap or by maximum normalized edit
// similarity. Matching runs source to target; swap the ontologies to
// match the other direction.
type StringMatcher struct {
	// CandPool caps how many target candidates are considered per
	// source class. Defaults to 200.
	CandPool int
	// NBest caps the mappings kept per source class. Defaults to 10.
	NBest int
	// UseEditDist scores by normalized edit similarity instead of
	// exact label overlap.
	UseEditDist bool
	Relation    Relation

	srcLabels map[quad.IRI][]string
	tgtLabels map[quad.IRI][]string
	index     *text.InvertedIndex
}

// NewStringMatcher indexes the target ontology labels for matching.
func NewStringMatcher(src, tgt *onto.Ontology) *StringMatcher {
	m := &StringMatcher{
		CandPool:  defaultCandPool,
		NBest:     defaultNBest,
		Relation:  Equivalence,
		srcLabels: src.AnnotationIndex(onto.Classes, nil, true),
		tgtLabels: tgt.AnnotationIndex(onto.Classes, nil, true),
		index:     text.NewInvertedIndex(),
	}
	for c, labels := range m.tgtLabels {
		var tokens []string
		for _, lab := range labels {
			tokens = append(tokens, text.NormalizedTokens(lab)...)
		}
		m.index.Add(string(c), tokens)
	}
	return m
}

// MatchClass computes the n-best mappings for one source class.
func (m *StringMatcher) MatchClass(src quad.IRI) ([]Mapping, error) {
	src = src.Full()
	labels := m.srcLabels[src]
	if len(labels) == 0 {
		return nil, ErrNoCandidates
	}
	var tokens []string
	for _, lab := range labels {
		tokens = append(tokens, text.NormalizedTokens(lab)...)
	}
	cands := m.index.Select(tokens, m.CandPool)
	if len(cands) == 0 {
		return nil, ErrNoCandidates
	}

	var out []Mapping
	for _, cand := range cands {
		tgtLabels := m.tgtLabels[quad.IRI(cand.ID)]
		var score float64
		if m.UseEditDist {
			score = maxNormEditSim(labels, tgtLabels)
		} else if overlap(labels, tgtLabels) {
			score = 1
		}
		if score > 0 {
			out = append(out, Mapping{
				Head:     string(src),
				Tail:     cand.ID,
				Relation: m.Relation,
				Score:    score,
			})
		}
	}
	SortByScore(out)
	if len(out) > m.NBest {
		out = out[:m.NBest]
	}
	return out, nil
}

// Match computes mappings for every source class. Classes without
// labels or candidates are skipped.
func (m *StringMatcher) Match() []Mapping {
	var out []Mapping
	skipped := 0
	for src := range m.srcLabels {
		maps, err := m.MatchClass(src)
		if err != nil {
			skipped++
			continue
		}
		out = append(out, maps...)
	}
	if skipped > 0 && olog.V(1) {
		olog.Infof("align: no candidates for %d source classes", skipped)
	}
	SortByScore(out)
	return out
}

func overlap(src, tgt []string) bool {
	set := make(map[string]struct{}, len(src))
	for _, s := range src {
		set[s] = struct{}{}
	}
	for _, t := range tgt {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

// maxNormEditSim is the best 1 - dist/maxlen over all label pairs.
func maxNormEditSim(src, tgt []string) float64 {
	if overlap(src, tgt) {
		return 1
	}
	var best float64
	for _, s := range src {
		for _, t := range tgt {
			if sim := normEditSim(s, t); sim > best {
				best = sim
			}
		}
	}
	return best
}

func normEditSim(a, b string) float64 {
	longest := len([]rune(a))
	if n := len([]rune(b)); n > longest {
		longest = n
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
