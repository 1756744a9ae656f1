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
	"strings"

	"github.com/cayleygraph/quad"
)

// Projector flattens an ontology into a plain triple graph suitable for
// graph embedding. Subsumptions become rdfs:subClassOf edges, simple
// existential restrictions become direct property edges between the
// named classes involved, and individual assertions are carried over.
type Projector struct {
	// IncludeLiterals keeps annotation quads with literal objects.
	IncludeLiterals bool
	// Namespace, when non-empty, restricts subjects to IRIs with this
	// prefix.
	Namespace string
}

// Project returns the projected triples of o, sorted and de-duplicated.
func (p Projector) Project(o *Ontology) []quad.Quad {
	seen := make(map[string]struct{})
	var out []quad.Quad
	emit := func(s quad.IRI, pred quad.IRI, v quad.Value) {
		if p.Namespace != "" && !strings.HasPrefix(string(s), p.Namespace) {
			return
		}
		q := quad.Quad{Subject: s, Predicate: pred, Object: v}
		key := q.String()
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		out = append(out, q)
	}

	for _, ax := range o.SubClassAxioms() {
		p.projectSubsumption(ax.Sub, ax.Super, emit)
	}
	for _, ax := range o.EquivalentClassAxioms() {
		p.projectSubsumption(ax.Left, ax.Right, emit)
		p.projectSubsumption(ax.Right, ax.Left, emit)
	}
	for _, ax := range o.ObjectPropertyDomainAxioms() {
		dom, ok := ax.Domain.(NamedClass)
		if !ok {
			continue
		}
		for _, rng := range o.ObjectPropertyRangeAxioms() {
			if rng.Property != ax.Property {
				continue
			}
			if rc, ok := rng.Range.(NamedClass); ok {
				emit(dom.IRI(), ax.Property.IRI(), rc.IRI())
			}
		}
	}
	for _, ax := range o.ClassAssertionAxioms() {
		if c, ok := ax.Class.(NamedClass); ok {
			emit(ax.Individual, quad.IRI(rdfType), c.IRI())
		}
	}
	for _, ax := range o.ObjectPropertyAssertionAxioms() {
		emit(ax.Subject, ax.Property.IRI(), ax.Object)
	}
	if p.IncludeLiterals {
		for _, q := range o.Quads() {
			s, ok1 := q.Subject.(quad.IRI)
			pred, ok2 := q.Predicate.(quad.IRI)
			if !ok1 || !ok2 {
				continue
			}
			if _, isLit := literalString(q.Object); !isLit {
				continue
			}
			emit(s, pred, q.Object)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// projectSubsumption emits the edges of sub ⊑ super. A named pair
// becomes a subClassOf edge; a restriction on either side becomes a
// property edge between the named class and the named filler.
func (p Projector) projectSubsumption(sub, super ClassExpression, emit func(quad.IRI, quad.IRI, quad.Value)) {
	subName, subNamed := sub.(NamedClass)
	superName, superNamed := super.(NamedClass)
	switch {
	case subNamed && superNamed:
		emit(subName.IRI(), quad.IRI(rdfsSubClassOf), superName.IRI())
	case subNamed:
		for _, e := range namedRestrictions(super) {
			emit(subName.IRI(), e.prop.IRI(), e.filler.IRI())
		}
	case superNamed:
		for _, e := range namedRestrictions(sub) {
			emit(e.filler.IRI(), e.prop.IRI(), superName.IRI())
		}
	}
}

// propertyEdge is one (property, named filler) pair of a restriction.
type propertyEdge struct {
	prop   ObjectProperty
	filler NamedClass
}

// namedRestrictions collects the property and named-filler pairs of an
// expression: direct restrictions and restrictions nested one level
// inside an intersection. Several restrictions on the same property
// each contribute their own pair.
func namedRestrictions(c ClassExpression) []propertyEdge {
	var out []propertyEdge
	collect := func(c ClassExpression) {
		r, ok := c.(Restriction)
		if !ok {
			return
		}
		prop, ok := r.Property.(ObjectProperty)
		if !ok {
			return
		}
		if filler, ok := r.Filler.(NamedClass); ok {
			out = append(out, propertyEdge{prop: prop, filler: filler})
		}
	}
	collect(c)
	if j, ok := c.(Junction); ok && j.Op == Intersection {
		for _, op := range j.Operands {
			collect(op)
		}
	}
	return out
}
