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

// Package align computes and evaluates mappings between the entities
// of two ontologies.
package align

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/ontokit/ontokit/olog"
)

// Relation is the semantic relation a mapping asserts between its
// head and tail entities.
type Relation string

const (
	Equivalence Relation = "="
	Subsumed    Relation = "<"
	Subsumes    Relation = ">"
)

// Mapping relates a head entity of the source ontology to a tail
// entity of the target ontology. Reference mappings carry score 1.
type Mapping struct {
	Head     string
	Tail     string
	Relation Relation
	Score    float64
}

func (m Mapping) String() string {
	return fmt.Sprintf("%s %s %s (%.4f)", m.Head, m.Relation, m.Tail, m.Score)
}

// key identifies a mapping up to its score.
func (m Mapping) key() string {
	return m.Head + "\t" + string(m.Relation) + "\t" + m.Tail
}

// SortByScore orders mappings by descending score, breaking ties on
// head then tail so the order is deterministic.
func SortByScore(maps []Mapping) {
	sort.SliceStable(maps, func(i, j int) bool {
		if maps[i].Score != maps[j].Score {
			return maps[i].Score > maps[j].Score
		}
		if maps[i].Head != maps[j].Head {
			return maps[i].Head < maps[j].Head
		}
		return maps[i].Tail < maps[j].Tail
	})
}

const tsvHeader = "SrcEntity\tTgtEntity\tScore"

// ReadMappings reads three-column (SrcEntity, TgtEntity, Score) TSV
// mappings. All rows get the given relation. Rows scoring below
// threshold are dropped.
func ReadMappings(r io.Reader, rel Relation, threshold float64) ([]Mapping, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.FieldsPerRecord = 3

	var out []Mapping
	for line := 1; ; line++ {
		row, err := tsv.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if line == 1 && row[0] == "SrcEntity" {
			continue
		}
		score, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad score %q: %w", line, row[2], err)
		}
		if score < threshold {
			continue
		}
		out = append(out, Mapping{Head: row[0], Tail: row[1], Relation: rel, Score: score})
	}
	return out, nil
}

// WriteMappings writes mappings as three-column TSV with a header row.
func WriteMappings(w io.Writer, maps []Mapping) error {
	if _, err := fmt.Fprintln(w, tsvHeader); err != nil {
		return err
	}
	for _, m := range maps {
		score := strconv.FormatFloat(m.Score, 'g', -1, 64)
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", m.Head, m.Tail, score); err != nil {
			return err
		}
	}
	return nil
}

// CandidateSet holds a reference mapping together with the scored
// candidate mappings ranked against it.
type CandidateSet struct {
	Reference  Mapping
	Candidates []Mapping
	// Answers are candidates flagged as accepted in the input, used
	// as prediction mappings by BioLLMEval.
	Answers []Mapping
}

var errBadCandidate = errors.New("malformed candidate tuple")

// ReadCandidates reads candidate-mapping TSV: columns SrcEntity,
// TgtEntity and TgtCandidates, where the last is a JSON list of
// [iri], [iri, score] or [iri, score, answer] tuples. Unscored
// candidates keep their given order under descending rank scores.
func ReadCandidates(r io.Reader) ([]CandidateSet, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.FieldsPerRecord = 3

	var out []CandidateSet
	warned := false
	for line := 1; ; line++ {
		row, err := tsv.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		if line == 1 && row[0] == "SrcEntity" {
			continue
		}
		var tuples [][]interface{}
		if err := json.Unmarshal([]byte(row[2]), &tuples); err != nil {
			return nil, fmt.Errorf("line %d: candidates: %w", line, err)
		}
		set := CandidateSet{
			Reference: Mapping{Head: row[0], Tail: row[1], Relation: Equivalence, Score: 1},
		}
		for i, tuple := range tuples {
			m, answer, err := parseCandidate(row[0], tuple, i, len(tuples))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			if len(tuple) == 1 && !warned {
				olog.Warningf("align: candidates have no scores, assuming descending rank order")
				warned = true
			}
			set.Candidates = append(set.Candidates, m)
			if answer {
				set.Answers = append(set.Answers, m)
			}
		}
		SortByScore(set.Candidates)
		out = append(out, set)
	}
	return out, nil
}

func parseCandidate(head string, tuple []interface{}, i, total int) (Mapping, bool, error) {
	m := Mapping{Head: head, Relation: Equivalence}
	if len(tuple) == 0 || len(tuple) > 3 {
		return m, false, errBadCandidate
	}
	tail, ok := tuple[0].(string)
	if !ok {
		return m, false, errBadCandidate
	}
	m.Tail = tail
	if len(tuple) == 1 {
		m.Score = float64(total-i) / float64(total)
		return m, false, nil
	}
	score, ok := tuple[1].(float64)
	if !ok {
		return m, false, errBadCandidate
	}
	m.Score = score
	if len(tuple) == 2 {
		return m, false, nil
	}
	answer, ok := tuple[2].(bool)
	if !ok {
		return m, false, errBadCandidate
	}
	return m, answer, nil
}

// WriteCandidates writes candidate sets in the TSV format ReadCandidates
// reads, with [iri, score] tuples.
func WriteCandidates(w io.Writer, sets []CandidateSet) error {
	if _, err := fmt.Fprintln(w, "SrcEntity\tTgtEntity\tTgtCandidates"); err != nil {
		return err
	}
	for _, set := range sets {
		tuples := make([][]interface{}, 0, len(set.Candidates))
		for _, c := range set.Candidates {
			tuples = append(tuples, []interface{}{c.Tail, c.Score})
		}
		enc, err := json.Marshal(tuples)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\n", set.Reference.Head, set.Reference.Tail, enc); err != nil {
			return err
		}
	}
	return nil
}
