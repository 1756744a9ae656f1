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

package text

import (
	"math"
	"sort"
)

// InvertedIndex maps tokens to the documents they occur in and ranks
// candidate documents for a query by summed inverse document frequency.
type InvertedIndex struct {
	postings map[string]map[string]struct{}
	docs     map[string]struct{}
}

// Candidate is a ranked document returned by Select.
type Candidate struct {
	ID    string
	Score float64
}

func NewInvertedIndex() *InvertedIndex {
	return &InvertedIndex{
		postings: make(map[string]map[string]struct{}),
		docs:     make(map[string]struct{}),
	}
}

// Add records a document with its tokens. Adding the same id again
// extends its token set.
func (x *InvertedIndex) Add(id string, tokens []string) {
	x.docs[id] = struct{}{}
	for _, tok := range tokens {
		set, ok := x.postings[tok]
		if !ok {
			set = make(map[string]struct{})
			x.postings[tok] = set
		}
		set[id] = struct{}{}
	}
}

// Len reports the number of documents in the index.
func (x *InvertedIndex) Len() int { return len(x.docs) }

// IDF is log10(D/df) for the token, or zero for unseen tokens.
func (x *InvertedIndex) IDF(token string) float64 {
	df := len(x.postings[token])
	if df == 0 {
		return 0
	}
	return math.Log10(float64(len(x.docs)) / float64(df))
}

// Select returns up to k documents ranked by the summed IDF of the
// query tokens they contain. Ties break on document id so results are
// deterministic.
func (x *InvertedIndex) Select(tokens []string, k int) []Candidate {
	scores := make(map[string]float64)
	for _, tok := range tokens {
		idf := x.IDF(tok)
		if idf == 0 {
			continue
		}
		for id := range x.postings[tok] {
			scores[id] += idf
		}
	}
	out := make([]Candidate, 0, len(scores))
	for id, score := range scores {
		out = append(out, Candidate{ID: id, Score: score})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if k >= 0 && len(out) > k {
		out = out[:k]
	}
	return out
}
