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
	"sort"

	"github.com/cayleygraph/quad"
)

// Reasoner answers structural entailment queries over the told axioms
// of one ontology: subsumption between named classes and object
// properties, equivalence groups, disjointness propagated down the
// hierarchy, and class membership of individuals.
//
// Subsumption is the reflexive-transitive closure of the told
// rdfs:subClassOf edges modulo owl:equivalentClass, with owl:Thing as
// the implicit top and owl:Nothing as the implicit bottom. No tableau
// reasoning is performed.
type Reasoner struct {
	o *Ontology

	super     map[quad.IRI]map[quad.IRI]struct{}
	sub       map[quad.IRI]map[quad.IRI]struct{}
	equiv     map[quad.IRI]map[quad.IRI]struct{}
	disjoint  map[quad.IRI]map[quad.IRI]struct{}
	instances map[quad.IRI]map[quad.IRI]struct{}

	propSuper map[quad.IRI]map[quad.IRI]struct{}
	propSub   map[quad.IRI]map[quad.IRI]struct{}
}

// OWLThing and OWLNothing are the implicit top and bottom classes.
var (
	OWLThing   = quad.IRI(Thing)
	OWLNothing = quad.IRI(Nothing)
)

// NewReasoner indexes the told hierarchy of o.
func NewReasoner(o *Ontology) *Reasoner {
	r := &Reasoner{
		o:         o,
		super:     make(map[quad.IRI]map[quad.IRI]struct{}),
		sub:       make(map[quad.IRI]map[quad.IRI]struct{}),
		equiv:     make(map[quad.IRI]map[quad.IRI]struct{}),
		disjoint:  make(map[quad.IRI]map[quad.IRI]struct{}),
		instances: make(map[quad.IRI]map[quad.IRI]struct{}),
		propSuper: make(map[quad.IRI]map[quad.IRI]struct{}),
		propSub:   make(map[quad.IRI]map[quad.IRI]struct{}),
	}
	for _, q := range o.predicateQuads(quad.IRI(rdfsSubClassOf)) {
		s, ok1 := q.Subject.(quad.IRI)
		v, ok2 := q.Object.(quad.IRI)
		if !ok1 || !ok2 {
			continue
		}
		addPair(r.super, s, v)
		addPair(r.sub, v, s)
	}
	for _, q := range o.predicateQuads(quad.IRI(EquivalentClass)) {
		s, ok1 := q.Subject.(quad.IRI)
		v, ok2 := q.Object.(quad.IRI)
		if !ok1 || !ok2 {
			continue
		}
		addPair(r.equiv, s, v)
		addPair(r.equiv, v, s)
	}
	for _, ax := range o.DisjointClassAxioms() {
		left, ok1 := ax.Left.(NamedClass)
		right, ok2 := ax.Right.(NamedClass)
		if !ok1 || !ok2 {
			continue
		}
		addPair(r.disjoint, left.IRI(), right.IRI())
		addPair(r.disjoint, right.IRI(), left.IRI())
	}
	for _, q := range o.predicateQuads(quad.IRI(rdfType)) {
		ind, ok1 := q.Subject.(quad.IRI)
		class, ok2 := q.Object.(quad.IRI)
		if !ok1 || !ok2 || !o.IsIndividual(ind) || !o.IsClass(class) {
			continue
		}
		addPair(r.instances, class, ind)
	}
	for _, q := range o.predicateQuads(quad.IRI(rdfsSubPropertyOf)) {
		s, ok1 := q.Subject.(quad.IRI)
		v, ok2 := q.Object.(quad.IRI)
		if !ok1 || !ok2 || !o.IsObjectProperty(v) {
			continue
		}
		addPair(r.propSuper, s, v)
		addPair(r.propSub, v, s)
	}
	return r
}

func addPair(m map[quad.IRI]map[quad.IRI]struct{}, k, v quad.IRI) {
	set, ok := m[k]
	if !ok {
		set = make(map[quad.IRI]struct{})
		m[k] = set
	}
	set[v] = struct{}{}
}

// Equivalents returns the equivalence group of c, excluding c itself.
func (r *Reasoner) Equivalents(c quad.IRI) []quad.IRI {
	group := r.equivalenceGroup(c.Full())
	delete(group, c.Full())
	return setToSorted(group)
}

func (r *Reasoner) equivalenceGroup(c quad.IRI) map[quad.IRI]struct{} {
	group := map[quad.IRI]struct{}{c: {}}
	queue := []quad.IRI{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range r.equiv[cur] {
			if _, seen := group[next]; !seen {
				group[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	return group
}

// ancestors returns every named class subsuming c (including c and its
// equivalents, excluding owl:Thing).
func (r *Reasoner) ancestors(c quad.IRI) map[quad.IRI]struct{} {
	out := make(map[quad.IRI]struct{})
	queue := []quad.IRI{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := out[cur]; seen {
			continue
		}
		out[cur] = struct{}{}
		for next := range r.super[cur] {
			queue = append(queue, next)
		}
		for next := range r.equiv[cur] {
			queue = append(queue, next)
		}
	}
	return out
}

func (r *Reasoner) descendants(c quad.IRI) map[quad.IRI]struct{} {
	out := make(map[quad.IRI]struct{})
	queue := []quad.IRI{c}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if _, seen := out[cur]; seen {
			continue
		}
		out[cur] = struct{}{}
		for next := range r.sub[cur] {
			queue = append(queue, next)
		}
		for next := range r.equiv[cur] {
			queue = append(queue, next)
		}
	}
	return out
}

// SuperClasses returns the named superclasses of c: the direct told
// parents when direct is true, the full inferred set otherwise.
func (r *Reasoner) SuperClasses(c quad.IRI, direct bool) []quad.IRI {
	c = c.Full()
	if direct {
		out := make(map[quad.IRI]struct{})
		for e := range r.equivalenceGroup(c) {
			for p := range r.super[e] {
				out[p] = struct{}{}
			}
		}
		delete(out, c)
		return setToSorted(out)
	}
	anc := r.ancestors(c)
	for e := range r.equivalenceGroup(c) {
		delete(anc, e)
	}
	return setToSorted(anc)
}

// SubClasses returns the named subclasses of c: the direct told
// children when direct is true, the full inferred set otherwise.
func (r *Reasoner) SubClasses(c quad.IRI, direct bool) []quad.IRI {
	c = c.Full()
	if direct {
		out := make(map[quad.IRI]struct{})
		for e := range r.equivalenceGroup(c) {
			for p := range r.sub[e] {
				out[p] = struct{}{}
			}
		}
		delete(out, c)
		return setToSorted(out)
	}
	desc := r.descendants(c)
	for e := range r.equivalenceGroup(c) {
		delete(desc, e)
	}
	return setToSorted(desc)
}

// Siblings returns the classes that share a direct parent with c.
func (r *Reasoner) Siblings(c quad.IRI) []quad.IRI {
	c = c.Full()
	out := make(map[quad.IRI]struct{})
	for _, p := range r.SuperClasses(c, true) {
		for _, s := range r.SubClasses(p, true) {
			out[s] = struct{}{}
		}
	}
	delete(out, c)
	for e := range r.equivalenceGroup(c) {
		delete(out, e)
	}
	return setToSorted(out)
}

// IsSubClassOf reports whether sub ⊑ super is entailed by the told
// hierarchy. Every class is a subclass of owl:Thing, and owl:Nothing
// is a subclass of every class.
func (r *Reasoner) IsSubClassOf(sub, super quad.IRI) bool {
	sub, super = sub.Full(), super.Full()
	if super == OWLThing || sub == OWLNothing || sub == super {
		return true
	}
	_, ok := r.ancestors(sub)[super]
	return ok
}

// AreDisjoint reports whether a and b are entailed to be disjoint:
// some ancestor pair of a and b is told disjoint.
func (r *Reasoner) AreDisjoint(a, b quad.IRI) bool {
	ancA := r.ancestors(a.Full())
	ancB := r.ancestors(b.Full())
	for x := range ancA {
		for y := range r.disjoint[x] {
			if _, ok := ancB[y]; ok {
				return true
			}
		}
	}
	return false
}

// IsUnsatisfiable reports whether c can have no instances: c is a
// subclass of owl:Nothing, or two of its ancestors are told disjoint.
func (r *Reasoner) IsUnsatisfiable(c quad.IRI) bool {
	anc := r.ancestors(c.Full())
	if _, ok := anc[OWLNothing]; ok {
		return true
	}
	for x := range anc {
		for y := range r.disjoint[x] {
			if _, ok := anc[y]; ok {
				return true
			}
		}
	}
	return false
}

// Instances returns the individuals asserted to belong to c, or to any
// subclass of c when direct is false.
func (r *Reasoner) Instances(c quad.IRI, direct bool) []quad.IRI {
	c = c.Full()
	out := make(map[quad.IRI]struct{})
	var classes map[quad.IRI]struct{}
	if direct {
		classes = r.equivalenceGroup(c)
	} else {
		classes = r.descendants(c)
	}
	for class := range classes {
		for ind := range r.instances[class] {
			out[ind] = struct{}{}
		}
	}
	return setToSorted(out)
}

// SuperProperties returns the named super object properties of p.
func (r *Reasoner) SuperProperties(p quad.IRI, direct bool) []quad.IRI {
	return r.propWalk(r.propSuper, p, direct)
}

// SubProperties returns the named sub object properties of p.
func (r *Reasoner) SubProperties(p quad.IRI, direct bool) []quad.IRI {
	return r.propWalk(r.propSub, p, direct)
}

func (r *Reasoner) propWalk(edges map[quad.IRI]map[quad.IRI]struct{}, p quad.IRI, direct bool) []quad.IRI {
	p = p.Full()
	if direct {
		return setToSorted(edges[p])
	}
	out := make(map[quad.IRI]struct{})
	queue := []quad.IRI{p}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for next := range edges[cur] {
			if _, seen := out[next]; !seen {
				out[next] = struct{}{}
				queue = append(queue, next)
			}
		}
	}
	delete(out, p)
	return setToSorted(out)
}

// IsEntailed checks subsumption, equivalence and disjointness axioms
// between named classes against the told closure.
func (r *Reasoner) IsEntailed(ax Axiom) bool {
	switch t := ax.(type) {
	case SubClassOf:
		sub, ok1 := t.Sub.(NamedClass)
		super, ok2 := t.Super.(NamedClass)
		if !ok1 || !ok2 {
			return false
		}
		return r.IsSubClassOf(sub.IRI(), super.IRI())
	case EquivalentClasses:
		left, ok1 := t.Left.(NamedClass)
		right, ok2 := t.Right.(NamedClass)
		if !ok1 || !ok2 {
			return false
		}
		_, ok := r.equivalenceGroup(left.IRI())[right.IRI()]
		return ok
	case DisjointClasses:
		left, ok1 := t.Left.(NamedClass)
		right, ok2 := t.Right.(NamedClass)
		if !ok1 || !ok2 {
			return false
		}
		return r.AreDisjoint(left.IRI(), right.IRI())
	case ClassAssertion:
		class, ok := t.Class.(NamedClass)
		if !ok {
			return false
		}
		for _, ind := range r.Instances(class.IRI(), false) {
			if ind == t.Individual {
				return true
			}
		}
		return false
	}
	return false
}

func setToSorted(m map[quad.IRI]struct{}) []quad.IRI {
	out := make([]quad.IRI, 0, len(m))
	for iri := range m {
		out = append(out, iri)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
