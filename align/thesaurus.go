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
	"math/rand"
	"sort"

	"github.com/cayleygraph/quad"

	"github.com/ontokit/ontokit/olog"
	"github.com/ontokit/ontokit/onto"
)

// Section is a named collection of synonym groups. A group holds the
// labels of one class, so reflexivity and symmetry of the synonym
// relation are implicit.
type Section struct {
	Name   string
	Groups [][]string
}

// Thesaurus aggregates synonym groups from ontologies and from known
// cross-ontology mappings.
type Thesaurus struct {
	Sections []Section
}

func NewThesaurus() *Thesaurus { return &Thesaurus{} }

// GroupPair keeps the two sides of an aligned synonym group apart for
// cross-ontology negative sampling.
type GroupPair struct {
	Src []string
	Tgt []string
}

func classLabelGroups(o *onto.Ontology) [][]string {
	index := o.AnnotationIndex(onto.Classes, nil, true)
	var groups [][]string
	for _, c := range o.Classes() {
		labels := index[c]
		if len(labels) == 0 {
			continue
		}
		group := append([]string(nil), labels...)
		sort.Strings(group)
		groups = append(groups, group)
	}
	return groups
}

// AddOntology appends a section with one synonym group per labelled
// class of the ontology.
func (t *Thesaurus) AddOntology(name string, o *onto.Ontology) {
	groups := classLabelGroups(o)
	t.Sections = append(t.Sections, Section{Name: name, Groups: groups})
	olog.Infof("thesaurus: added %d synonym groups from %s", len(groups), name)
}

// AddMappings appends a cross-ontology section where the labels of
// each mapped class pair form one merged group. The unmerged side
// pairs are returned for negative sampling.
func (t *Thesaurus) AddMappings(name string, src, tgt *onto.Ontology, maps []Mapping) []GroupPair {
	srcIndex := src.AnnotationIndex(onto.Classes, nil, true)
	tgtIndex := tgt.AnnotationIndex(onto.Classes, nil, true)

	var pairs []GroupPair
	var groups [][]string
	for _, m := range maps {
		srcLabels := srcIndex[quad.IRI(m.Head).Full()]
		tgtLabels := tgtIndex[quad.IRI(m.Tail).Full()]
		if len(srcLabels) == 0 || len(tgtLabels) == 0 {
			continue
		}
		pairs = append(pairs, GroupPair{
			Src: append([]string(nil), srcLabels...),
			Tgt: append([]string(nil), tgtLabels...),
		})
		merged := append(append([]string(nil), srcLabels...), tgtLabels...)
		sort.Strings(merged)
		groups = append(groups, dedupeSorted(merged))
	}
	t.Sections = append(t.Sections, Section{Name: name, Groups: groups})
	olog.Infof("thesaurus: added %d aligned synonym groups from %s", len(groups), name)
	return pairs
}

// Merged returns all sections' groups merged under transitivity.
func (t *Thesaurus) Merged() [][]string {
	var all [][]string
	for _, s := range t.Sections {
		all = append(all, s.Groups...)
	}
	return MergeByTransitivity(all)
}

// MergeByTransitivity unions groups that share a label, yielding the
// connected components of the synonym relation. Groups and their
// labels come back sorted.
func MergeByTransitivity(groups [][]string) [][]string {
	parent := make(map[string]string)
	var find func(string) string
	find = func(x string) string {
		p, ok := parent[x]
		if !ok {
			parent[x] = x
			return x
		}
		if p == x {
			return x
		}
		root := find(p)
		parent[x] = root
		return root
	}
	union := func(a, b string) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		for _, label := range group[1:] {
			union(group[0], label)
		}
	}

	components := make(map[string][]string)
	for label := range parent {
		root := find(label)
		components[root] = append(components[root], label)
	}
	out := make([][]string, 0, len(components))
	for _, labels := range components {
		sort.Strings(labels)
		out = append(out, labels)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func dedupeSorted(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

// ErrSamplingExhausted is returned when the requested number of
// distinct negative pairs cannot be drawn from the given groups.
var ErrSamplingExhausted = errors.New("align: negative sampling exhausted")

// Sampler draws synonym and non-synonym label pairs with a seeded
// source, so runs are reproducible.
type Sampler struct {
	rng *rand.Rand
}

func NewSampler(seed int64) *Sampler {
	return &Sampler{rng: rand.New(rand.NewSource(seed))}
}

// Positives enumerates the ordered label pairs of each group,
// identity pairs included. A positive max caps the result by uniform
// sampling without replacement.
func (s *Sampler) Positives(groups [][]string, max int) [][2]string {
	var pool [][2]string
	seen := make(map[[2]string]struct{})
	for _, group := range groups {
		for _, a := range group {
			for _, b := range group {
				p := [2]string{a, b}
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				pool = append(pool, p)
			}
		}
	}
	return s.capPool(pool, max)
}

// PairedPositives enumerates cross-ontology label pairs from aligned
// groups, excluding identity pairs.
func (s *Sampler) PairedPositives(pairs []GroupPair, max int) [][2]string {
	var pool [][2]string
	seen := make(map[[2]string]struct{})
	for _, gp := range pairs {
		for _, a := range gp.Src {
			for _, b := range gp.Tgt {
				if a == b {
					continue
				}
				p := [2]string{a, b}
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				pool = append(pool, p)
			}
		}
	}
	return s.capPool(pool, max)
}

func (s *Sampler) capPool(pool [][2]string, max int) [][2]string {
	if max <= 0 || max >= len(pool) {
		return pool
	}
	out := make([][2]string, 0, max)
	for _, i := range s.rng.Perm(len(pool))[:max] {
		out = append(out, pool[i])
	}
	return out
}

// SoftNegatives draws n distinct label pairs from two randomly chosen
// different groups.
func (s *Sampler) SoftNegatives(groups [][]string, n int) ([][2]string, error) {
	if len(groups) < 2 {
		return nil, ErrSamplingExhausted
	}
	return s.drawNegatives(n, func() [2]string {
		i := s.rng.Intn(len(groups))
		j := s.rng.Intn(len(groups) - 1)
		if j >= i {
			j++
		}
		return [2]string{s.pick(groups[i]), s.pick(groups[j])}
	})
}

// HardNegatives draws n distinct label pairs where both labels come
// from the same declared-disjoint group set but different groups.
func (s *Sampler) HardNegatives(disjoint [][][]string, n int) ([][2]string, error) {
	var usable [][][]string
	for _, set := range disjoint {
		if len(set) >= 2 {
			usable = append(usable, set)
		}
	}
	if len(usable) == 0 {
		return nil, ErrSamplingExhausted
	}
	return s.drawNegatives(n, func() [2]string {
		set := usable[s.rng.Intn(len(usable))]
		i := s.rng.Intn(len(set))
		j := s.rng.Intn(len(set) - 1)
		if j >= i {
			j++
		}
		return [2]string{s.pick(set[i]), s.pick(set[j])}
	})
}

// PairedNegatives draws n distinct label pairs whose sides come from
// the source side of one aligned group and the target side of another.
func (s *Sampler) PairedNegatives(pairs []GroupPair, n int) ([][2]string, error) {
	if len(pairs) < 2 {
		return nil, ErrSamplingExhausted
	}
	return s.drawNegatives(n, func() [2]string {
		i := s.rng.Intn(len(pairs))
		j := s.rng.Intn(len(pairs) - 1)
		if j >= i {
			j++
		}
		return [2]string{s.pick(pairs[i].Src), s.pick(pairs[j].Tgt)}
	})
}

func (s *Sampler) drawNegatives(n int, draw func() [2]string) ([][2]string, error) {
	seen := make(map[[2]string]struct{}, n)
	var out [][2]string
	// the pool size is unknown, so give up after enough misses
	for attempts := 0; len(out) < n; attempts++ {
		if attempts > 100*n+100 {
			return nil, ErrSamplingExhausted
		}
		p := draw()
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out, nil
}

func (s *Sampler) pick(labels []string) string {
	return labels[s.rng.Intn(len(labels))]
}
