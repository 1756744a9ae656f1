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

package onto

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/cayleygraph/quad"
)

// Taxonomy is the directed acyclic graph of named classes under told
// subsumption, rooted at owl:Thing. Each node carries the first
// rdfs:label of its class. Cycles in the input collapse onto whichever
// edge was seen first; back edges are dropped.
type Taxonomy struct {
	parents  map[quad.IRI][]quad.IRI
	children map[quad.IRI][]quad.IRI
	labels   map[quad.IRI]string
	nodes    []quad.IRI
}

// NewTaxonomy builds the class taxonomy of o. Every named class becomes
// a node; classes without told parents are attached to owl:Thing so the
// graph has a single root.
func NewTaxonomy(o *Ontology) *Taxonomy {
	t := &Taxonomy{
		parents:  make(map[quad.IRI][]quad.IRI),
		children: make(map[quad.IRI][]quad.IRI),
		labels:   make(map[quad.IRI]string),
	}
	seen := make(map[quad.IRI]struct{})
	add := func(c quad.IRI) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		t.nodes = append(t.nodes, c)
		if labels := o.Labels(c); len(labels) > 0 {
			t.labels[c] = labels[0]
		}
	}
	add(OWLThing)
	for _, c := range o.Classes() {
		if c == OWLThing || c == OWLNothing {
			continue
		}
		add(c)
	}
	for _, q := range o.predicateQuads(quad.IRI(rdfsSubClassOf)) {
		sub, ok1 := q.Subject.(quad.IRI)
		super, ok2 := q.Object.(quad.IRI)
		if !ok1 || !ok2 || sub == super || super == OWLNothing {
			continue
		}
		if _, ok := seen[sub]; !ok {
			continue
		}
		if _, ok := seen[super]; !ok {
			continue
		}
		if t.hasPath(super, sub) {
			continue // back edge, would close a cycle
		}
		t.parents[sub] = append(t.parents[sub], super)
		t.children[super] = append(t.children[super], sub)
	}
	for _, c := range t.nodes {
		if c == OWLThing {
			continue
		}
		if len(t.parents[c]) == 0 {
			t.parents[c] = []quad.IRI{OWLThing}
			t.children[OWLThing] = append(t.children[OWLThing], c)
		}
	}
	sort.Slice(t.nodes, func(i, j int) bool { return t.nodes[i] < t.nodes[j] })
	return t
}

// hasPath reports whether to is reachable from from over parent edges.
func (t *Taxonomy) hasPath(from, to quad.IRI) bool {
	if from == to {
		return true
	}
	visited := make(map[quad.IRI]struct{})
	queue := []quad.IRI{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, ok := visited[cur]; ok {
			continue
		}
		visited[cur] = struct{}{}
		for _, p := range t.parents[cur] {
			if p == to {
				return true
			}
			queue = append(queue, p)
		}
	}
	return false
}

// Nodes returns all class nodes, sorted.
func (t *Taxonomy) Nodes() []quad.IRI { return t.nodes }

// Label returns the stored label of a class, or its short IRI form.
func (t *Taxonomy) Label(c quad.IRI) string {
	if l, ok := t.labels[c.Full()]; ok {
		return l
	}
	return string(c.Full().Short())
}

// Parents returns the direct parents of c.
func (t *Taxonomy) Parents(c quad.IRI) []quad.IRI {
	return sortedCopy(t.parents[c.Full()])
}

// Children returns the direct children of c.
func (t *Taxonomy) Children(c quad.IRI) []quad.IRI {
	return sortedCopy(t.children[c.Full()])
}

func sortedCopy(in []quad.IRI) []quad.IRI {
	out := make([]quad.IRI, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (t *Taxonomy) walk(edges map[quad.IRI][]quad.IRI, c quad.IRI) []quad.IRI {
	out := make(map[quad.IRI]struct{})
	queue := []quad.IRI{c.Full()}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range edges[cur] {
			if _, ok := out[next]; !ok {
				out[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	delete(out, c.Full())
	return setToSorted(out)
}

// Ancestors returns every node reachable over parent edges from c,
// excluding the owl:Thing root.
func (t *Taxonomy) Ancestors(c quad.IRI) []quad.IRI {
	var out []quad.IRI
	for _, a := range t.walk(t.parents, c) {
		if a != OWLThing {
			out = append(out, a)
		}
	}
	return out
}

// Descendants returns every node reachable over child edges from c.
func (t *Taxonomy) Descendants(c quad.IRI) []quad.IRI { return t.walk(t.children, c) }

func (t *Taxonomy) walkAt(edges map[quad.IRI][]quad.IRI, c quad.IRI, k int) []quad.IRI {
	out := make(map[quad.IRI]struct{})
	frontier := []quad.IRI{c.Full()}
	for hop := 0; hop < k && len(frontier) > 0; hop++ {
		var next []quad.IRI
		for _, cur := range frontier {
			for _, n := range edges[cur] {
				if _, ok := out[n]; !ok {
					out[n] = struct{}{}
					next = append(next, n)
				}
			}
		}
		frontier = next
	}
	delete(out, c.Full())
	return setToSorted(out)
}

// AncestorsAt returns the ancestors of c within k parent hops,
// excluding the owl:Thing root.
func (t *Taxonomy) AncestorsAt(c quad.IRI, k int) []quad.IRI {
	var out []quad.IRI
	for _, a := range t.walkAt(t.parents, c, k) {
		if a != OWLThing {
			out = append(out, a)
		}
	}
	return out
}

// DescendantsAt returns the descendants of c within k child hops.
func (t *Taxonomy) DescendantsAt(c quad.IRI, k int) []quad.IRI {
	return t.walkAt(t.children, c, k)
}

// LowestCommonAncestors returns the deepest classes that are ancestors
// of both a and b. A node counts as its own ancestor here, so the LCA
// of a class and its parent is the parent. Falls back to owl:Thing when
// the two classes share nothing else.
func (t *Taxonomy) LowestCommonAncestors(a, b quad.IRI) []quad.IRI {
	up := func(c quad.IRI) map[quad.IRI]struct{} {
		set := map[quad.IRI]struct{}{c.Full(): {}}
		for _, n := range t.walk(t.parents, c) {
			set[n] = struct{}{}
		}
		set[OWLThing] = struct{}{}
		return set
	}
	common, other := up(a), up(b)
	for c := range common {
		if _, ok := other[c]; !ok {
			delete(common, c)
		}
	}
	best, depth := []quad.IRI(nil), -1
	for c := range common {
		switch d := t.Depth(c); {
		case d > depth:
			best, depth = []quad.IRI{c}, d
		case d == depth:
			best = append(best, c)
		}
	}
	sort.Slice(best, func(i, j int) bool { return best[i] < best[j] })
	return best
}

// Leaves returns the classes without children, sorted.
func (t *Taxonomy) Leaves() []quad.IRI {
	var out []quad.IRI
	for _, c := range t.nodes {
		if len(t.children[c]) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// Depth returns the length of the longest parent path from c to the
// root. The root has depth 0.
func (t *Taxonomy) Depth(c quad.IRI) int {
	c = c.Full()
	memo := make(map[quad.IRI]int)
	var depth func(quad.IRI) int
	depth = func(n quad.IRI) int {
		if n == OWLThing {
			return 0
		}
		if d, ok := memo[n]; ok {
			return d
		}
		memo[n] = 0 // guards against malformed cycles
		best := 0
		for _, p := range t.parents[n] {
			if d := depth(p) + 1; d > best {
				best = d
			}
		}
		memo[n] = best
		return best
	}
	return depth(c)
}

// NegativeSampler draws corrupted subsumption pairs from a taxonomy for
// training and evaluating subsumption predictors.
type NegativeSampler struct {
	t   *Taxonomy
	rng *rand.Rand
}

// NewNegativeSampler seeds a sampler. The same seed reproduces the same
// sample sequence.
func NewNegativeSampler(t *Taxonomy, seed int64) *NegativeSampler {
	return &NegativeSampler{t: t, rng: rand.New(rand.NewSource(seed))}
}

// SubsumptionPair is a (sub, super) class pair.
type SubsumptionPair struct {
	Sub   quad.IRI
	Super quad.IRI
}

// Positives returns every direct told subsumption pair, excluding the
// synthetic edges to owl:Thing.
func (s *NegativeSampler) Positives() []SubsumptionPair {
	var out []SubsumptionPair
	for _, c := range s.t.nodes {
		for _, p := range s.t.parents[c] {
			if p == OWLThing {
				continue
			}
			out = append(out, SubsumptionPair{Sub: c, Super: p})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sub != out[j].Sub {
			return out[i].Sub < out[j].Sub
		}
		return out[i].Super < out[j].Super
	})
	return out
}

// RandomNegatives draws n pairs (sub, x) where x is a uniformly random
// class that is neither an ancestor nor a descendant of sub.
func (s *NegativeSampler) RandomNegatives(sub quad.IRI, n int) ([]SubsumptionPair, error) {
	sub = sub.Full()
	banned := make(map[quad.IRI]struct{})
	banned[sub] = struct{}{}
	banned[OWLThing] = struct{}{}
	for _, a := range s.t.Ancestors(sub) {
		banned[a] = struct{}{}
	}
	for _, d := range s.t.Descendants(sub) {
		banned[d] = struct{}{}
	}
	if len(s.t.nodes)-len(banned) <= 0 {
		return nil, fmt.Errorf("onto: no negative candidates for %s", sub)
	}
	out := make([]SubsumptionPair, 0, n)
	for len(out) < n {
		c := s.t.nodes[s.rng.Intn(len(s.t.nodes))]
		if _, bad := banned[c]; bad {
			continue
		}
		out = append(out, SubsumptionPair{Sub: sub, Super: c})
	}
	return out, nil
}

// HardNegatives draws up to n pairs (sub, x) where x is a sibling of
// one of sub's parents' children, the hardest structural confusions.
func (s *NegativeSampler) HardNegatives(sub quad.IRI, n int) []SubsumptionPair {
	sub = sub.Full()
	banned := make(map[quad.IRI]struct{})
	banned[sub] = struct{}{}
	for _, a := range s.t.Ancestors(sub) {
		banned[a] = struct{}{}
	}
	for _, d := range s.t.Descendants(sub) {
		banned[d] = struct{}{}
	}
	var pool []quad.IRI
	seen := make(map[quad.IRI]struct{})
	for _, p := range s.t.Parents(sub) {
		for _, sib := range s.t.Children(p) {
			if _, bad := banned[sib]; bad {
				continue
			}
			if _, dup := seen[sib]; dup {
				continue
			}
			seen[sib] = struct{}{}
			pool = append(pool, sib)
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	if len(pool) > n {
		pool = pool[:n]
	}
	out := make([]SubsumptionPair, 0, len(pool))
	for _, c := range pool {
		out = append(out, SubsumptionPair{Sub: sub, Super: c})
	}
	return out
}
