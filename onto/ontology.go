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

// Package onto implements an in-memory OWL ontology model over RDF quads.
//
// An Ontology is loaded from any quad format registered with
// github.com/cayleygraph/quad and indexed by subject, predicate and
// object so that the reasoner, taxonomy, verbaliser and alignment
// packages can answer structural queries without re-scanning the input.
package onto

import (
	"errors"
	"sort"

	"github.com/cayleygraph/quad"
)

var (
	ErrQuadExists   = errors.New("onto: quad already exists")
	ErrQuadNotExist = errors.New("onto: quad does not exist")
	ErrNotFound     = errors.New("onto: entity not found")
)

// Ontology is an indexed in-memory store for the axioms of one ontology.
type Ontology struct {
	iri quad.IRI

	nextVal  int64
	nextQuad int64
	ids      map[string]int64
	vals     map[int64]quad.Value
	quads    map[int64]quad.Quad

	// per-direction indexes from value id to quad ids (labels are ignored)
	index [3]map[int64][]int64

	classes     map[quad.IRI]struct{}
	objProps    map[quad.IRI]struct{}
	dataProps   map[quad.IRI]struct{}
	annProps    map[quad.IRI]struct{}
	individuals map[quad.IRI]struct{}
}

// New returns an empty ontology, optionally pre-filled with quads.
func New(quads ...quad.Quad) *Ontology {
	o := &Ontology{
		nextVal:     1,
		nextQuad:    1,
		ids:         make(map[string]int64),
		vals:        make(map[int64]quad.Value),
		quads:       make(map[int64]quad.Quad),
		classes:     make(map[quad.IRI]struct{}),
		objProps:    make(map[quad.IRI]struct{}),
		dataProps:   make(map[quad.IRI]struct{}),
		annProps:    make(map[quad.IRI]struct{}),
		individuals: make(map[quad.IRI]struct{}),
	}
	for d := range o.index {
		o.index[d] = make(map[int64][]int64)
	}
	for _, q := range quads {
		o.AddQuad(q)
	}
	return o
}

// IRI returns the ontology IRI from the owl:Ontology header, if any.
func (o *Ontology) IRI() quad.IRI { return o.iri }

// Size returns the number of quads in the ontology.
func (o *Ontology) Size() int { return len(o.quads) }

func dirIndex(d quad.Direction) int { return int(d - quad.Subject) }

func (o *Ontology) valueID(v quad.Value, create bool) (int64, bool) {
	v = normalizeValue(v)
	s := quad.StringOf(v)
	if id, ok := o.ids[s]; ok {
		return id, true
	}
	if !create {
		return 0, false
	}
	id := o.nextVal
	o.nextVal++
	o.ids[s] = id
	o.vals[id] = v
	return id, true
}

func (o *Ontology) quadID(q quad.Quad) (int64, bool) {
	// Scan the shortest index for the quad, the way memstore does.
	var best []int64
	for d := quad.Subject; d <= quad.Object; d++ {
		id, ok := o.valueID(q.Get(d), false)
		if !ok {
			return 0, false
		}
		ids, ok := o.index[dirIndex(d)][id]
		if !ok {
			return 0, false
		}
		if best == nil || len(ids) < len(best) {
			best = ids
		}
	}
	for _, qid := range best {
		if eq, ok := o.quads[qid]; ok && sameQuad(eq, q) {
			return qid, true
		}
	}
	return 0, false
}

func sameQuad(a, b quad.Quad) bool {
	return quad.StringOf(a.Subject) == quad.StringOf(b.Subject) &&
		quad.StringOf(a.Predicate) == quad.StringOf(b.Predicate) &&
		quad.StringOf(a.Object) == quad.StringOf(b.Object)
}

func normalizeValue(v quad.Value) quad.Value {
	if iri, ok := v.(quad.IRI); ok {
		return iri.Full()
	}
	return v
}

func normalizeQuad(q quad.Quad) quad.Quad {
	q.Subject = normalizeValue(q.Subject)
	q.Predicate = normalizeValue(q.Predicate)
	q.Object = normalizeValue(q.Object)
	return q
}

// AddQuad inserts a quad. IRIs are expanded to their full form so that
// prefixed input matches the OWL and RDFS vocabulary constants.
// Duplicates are rejected with ErrQuadExists.
func (o *Ontology) AddQuad(q quad.Quad) error {
	q = normalizeQuad(q)
	if _, ok := o.quadID(q); ok {
		return ErrQuadExists
	}
	qid := o.nextQuad
	o.nextQuad++
	o.quads[qid] = q
	for d := quad.Subject; d <= quad.Object; d++ {
		id, _ := o.valueID(q.Get(d), true)
		di := dirIndex(d)
		o.index[di][id] = append(o.index[di][id], qid)
	}
	o.classify(q)
	return nil
}

// DeleteQuad removes a quad. Missing quads are rejected with ErrQuadNotExist.
func (o *Ontology) DeleteQuad(q quad.Quad) error {
	q = normalizeQuad(q)
	qid, ok := o.quadID(q)
	if !ok {
		return ErrQuadNotExist
	}
	delete(o.quads, qid)
	for d := quad.Subject; d <= quad.Object; d++ {
		id, _ := o.valueID(q.Get(d), false)
		di := dirIndex(d)
		o.index[di][id] = removeID(o.index[di][id], qid)
		if len(o.index[di][id]) == 0 {
			delete(o.index[di], id)
		}
	}
	return nil
}

func removeID(ids []int64, qid int64) []int64 {
	for i, id := range ids {
		if id == qid {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// classify updates the entity sets for a newly added quad.
func (o *Ontology) classify(q quad.Quad) {
	pred, ok := q.Predicate.(quad.IRI)
	if !ok {
		return
	}
	switch string(pred) {
	case rdfType:
		obj, ok := q.Object.(quad.IRI)
		if !ok {
			return
		}
		subj, isIRI := q.Subject.(quad.IRI)
		switch string(obj) {
		case OntologyHeader:
			if isIRI && o.iri == "" {
				o.iri = subj
			}
		case ClassType:
			if isIRI {
				o.classes[subj] = struct{}{}
			}
		case ObjectPropertyType:
			if isIRI {
				o.objProps[subj] = struct{}{}
			}
		case DatatypePropertyType:
			if isIRI {
				o.dataProps[subj] = struct{}{}
			}
		case AnnotationPropertyType:
			if isIRI {
				o.annProps[subj] = struct{}{}
			}
		case NamedIndividualType:
			if isIRI {
				o.individuals[subj] = struct{}{}
			}
		}
	case rdfsSubClassOf:
		// Untyped ontologies still carry a class hierarchy.
		if s, ok := q.Subject.(quad.IRI); ok {
			o.classes[s] = struct{}{}
		}
		if v, ok := q.Object.(quad.IRI); ok {
			o.classes[v] = struct{}{}
		}
	}
}

// Quads returns all quads in insertion order.
func (o *Ontology) Quads() []quad.Quad {
	ids := make([]int64, 0, len(o.quads))
	for id := range o.quads {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]quad.Quad, 0, len(ids))
	for _, id := range ids {
		out = append(out, o.quads[id])
	}
	return out
}

// QuadsFor returns all quads that have v in direction d.
func (o *Ontology) QuadsFor(d quad.Direction, v quad.Value) []quad.Quad {
	id, ok := o.valueID(v, false)
	if !ok {
		return nil
	}
	ids := o.index[dirIndex(d)][id]
	sorted := make([]int64, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	out := make([]quad.Quad, 0, len(sorted))
	for _, qid := range sorted {
		out = append(out, o.quads[qid])
	}
	return out
}

// Objects returns the objects of all (s, p, ?) quads.
func (o *Ontology) Objects(s quad.Value, p quad.IRI) []quad.Value {
	p = p.Full()
	var out []quad.Value
	for _, q := range o.QuadsFor(quad.Subject, s) {
		if pi, ok := q.Predicate.(quad.IRI); ok && pi == p {
			out = append(out, q.Object)
		}
	}
	return out
}

// Subjects returns the subjects of all (?, p, v) quads.
func (o *Ontology) Subjects(p quad.IRI, v quad.Value) []quad.Value {
	p = p.Full()
	var out []quad.Value
	for _, q := range o.QuadsFor(quad.Object, v) {
		if pi, ok := q.Predicate.(quad.IRI); ok && pi == p {
			out = append(out, q.Subject)
		}
	}
	return out
}

// Has reports whether the (s, p, v) triple is present.
func (o *Ontology) Has(s quad.Value, p quad.IRI, v quad.Value) bool {
	_, ok := o.quadID(normalizeQuad(quad.Quad{Subject: s, Predicate: p, Object: v}))
	return ok
}

func sortedIRIs(m map[quad.IRI]struct{}) []quad.IRI {
	out := make([]quad.IRI, 0, len(m))
	for iri := range m {
		out = append(out, iri)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Classes returns all named classes, sorted.
func (o *Ontology) Classes() []quad.IRI { return sortedIRIs(o.classes) }

// ObjectProperties returns all declared object properties, sorted.
func (o *Ontology) ObjectProperties() []quad.IRI { return sortedIRIs(o.objProps) }

// DataProperties returns all declared data properties, sorted.
func (o *Ontology) DataProperties() []quad.IRI { return sortedIRIs(o.dataProps) }

// AnnotationProperties returns all declared annotation properties, sorted.
func (o *Ontology) AnnotationProperties() []quad.IRI { return sortedIRIs(o.annProps) }

// Individuals returns all declared named individuals, sorted.
func (o *Ontology) Individuals() []quad.IRI { return sortedIRIs(o.individuals) }

// IsClass reports whether iri is a known named class.
func (o *Ontology) IsClass(iri quad.IRI) bool {
	_, ok := o.classes[iri.Full()]
	return ok
}

// IsObjectProperty reports whether iri is a declared object property.
func (o *Ontology) IsObjectProperty(iri quad.IRI) bool {
	_, ok := o.objProps[iri.Full()]
	return ok
}

// IsIndividual reports whether iri is a declared named individual.
func (o *Ontology) IsIndividual(iri quad.IRI) bool {
	_, ok := o.individuals[iri.Full()]
	return ok
}

// RemoveEntity deletes every quad that mentions the given entity.
func (o *Ontology) RemoveEntity(iri quad.IRI) {
	iri = iri.Full()
	seen := make(map[int64]struct{})
	id, ok := o.valueID(iri, false)
	if !ok {
		return
	}
	for d := quad.Subject; d <= quad.Object; d++ {
		for _, qid := range o.index[dirIndex(d)][id] {
			seen[qid] = struct{}{}
		}
	}
	for qid := range seen {
		q, ok := o.quads[qid]
		if !ok {
			continue
		}
		o.DeleteQuad(q)
	}
	delete(o.classes, iri)
	delete(o.objProps, iri)
	delete(o.dataProps, iri)
	delete(o.annProps, iri)
	delete(o.individuals, iri)
}
