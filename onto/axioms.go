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

	"github.com/cayleygraph/quad"
)

// Axiom is an OWL axiom. String renders the OWL functional syntax.
type Axiom interface {
	fmt.Stringer
	isAxiom()
}

// SubClassOf is the axiom Sub ⊑ Super.
type SubClassOf struct {
	Sub   ClassExpression
	Super ClassExpression
}

func (a SubClassOf) isAxiom() {}
func (a SubClassOf) String() string {
	return "SubClassOf(" + a.Sub.String() + " " + a.Super.String() + ")"
}

// EquivalentClasses is the pairwise axiom Left ≡ Right.
type EquivalentClasses struct {
	Left  ClassExpression
	Right ClassExpression
}

func (a EquivalentClasses) isAxiom() {}

// String keeps a trailing space before the closing parenthesis, the
// shape common functional-syntax renderers emit for this axiom type.
// The verbal parser is exercised against exactly this form.
func (a EquivalentClasses) String() string {
	return "EquivalentClasses(" + a.Left.String() + " " + a.Right.String() + " )"
}

// DisjointClasses is the pairwise axiom Left ⊓ Right ⊑ ⊥.
type DisjointClasses struct {
	Left  ClassExpression
	Right ClassExpression
}

func (a DisjointClasses) isAxiom() {}
func (a DisjointClasses) String() string {
	return "DisjointClasses(" + a.Left.String() + " " + a.Right.String() + ")"
}

// ClassAssertion is the axiom Class(Individual).
type ClassAssertion struct {
	Class      ClassExpression
	Individual quad.IRI
}

func (a ClassAssertion) isAxiom() {}
func (a ClassAssertion) String() string {
	return "ClassAssertion(" + a.Class.String() + " " + a.Individual.String() + ")"
}

// SubObjectPropertyOf is the axiom Sub ⊑ Super for object properties,
// where Sub may be a property chain.
type SubObjectPropertyOf struct {
	Sub   PropertyExpression
	Super ObjectProperty
}

func (a SubObjectPropertyOf) isAxiom() {}
func (a SubObjectPropertyOf) String() string {
	return "SubObjectPropertyOf(" + a.Sub.String() + " " + a.Super.String() + ")"
}

// ObjectPropertyAssertion is the axiom Property(Subject, Object).
type ObjectPropertyAssertion struct {
	Property ObjectProperty
	Subject  quad.IRI
	Object   quad.IRI
}

func (a ObjectPropertyAssertion) isAxiom() {}
func (a ObjectPropertyAssertion) String() string {
	return "ObjectPropertyAssertion(" + a.Property.String() + " " + a.Subject.String() + " " + a.Object.String() + ")"
}

// ObjectPropertyDomain constrains the subjects of Property to Domain.
type ObjectPropertyDomain struct {
	Property ObjectProperty
	Domain   ClassExpression
}

func (a ObjectPropertyDomain) isAxiom() {}
func (a ObjectPropertyDomain) String() string {
	return "ObjectPropertyDomain(" + a.Property.String() + " " + a.Domain.String() + ")"
}

// ObjectPropertyRange constrains the objects of Property to Range.
type ObjectPropertyRange struct {
	Property ObjectProperty
	Range    ClassExpression
}

func (a ObjectPropertyRange) isAxiom() {}
func (a ObjectPropertyRange) String() string {
	return "ObjectPropertyRange(" + a.Property.String() + " " + a.Range.String() + ")"
}

// rdfList walks an RDF collection from its head node.
func (o *Ontology) rdfList(head quad.Value) []quad.Value {
	var out []quad.Value
	seen := make(map[string]struct{})
	for {
		if iri, ok := head.(quad.IRI); ok && string(iri) == rdfNil {
			return out
		}
		key := quad.StringOf(head)
		if _, dup := seen[key]; dup {
			// malformed circular list
			return out
		}
		seen[key] = struct{}{}
		first := o.Objects(head, quad.IRI(rdfFirst))
		if len(first) == 0 {
			return out
		}
		out = append(out, first[0])
		rest := o.Objects(head, quad.IRI(rdfRest))
		if len(rest) == 0 {
			return out
		}
		head = rest[0]
	}
}

// ClassExpression reconstructs the class expression rooted at v from
// its RDF encoding. IRIs become named classes; blank nodes are decoded
// as restrictions, junctions or complements.
func (o *Ontology) ClassExpression(v quad.Value) (ClassExpression, error) {
	switch t := v.(type) {
	case quad.IRI:
		return NamedClass(t), nil
	case quad.BNode:
		return o.anonymousExpression(v)
	default:
		return nil, fmt.Errorf("onto: value %s is not a class expression", quad.StringOf(v))
	}
}

func (o *Ontology) anonymousExpression(v quad.Value) (ClassExpression, error) {
	if heads := o.Objects(v, quad.IRI(IntersectionOf)); len(heads) != 0 {
		return o.junction(Intersection, heads[0])
	}
	if heads := o.Objects(v, quad.IRI(UnionOf)); len(heads) != 0 {
		return o.junction(Union, heads[0])
	}
	if ops := o.Objects(v, quad.IRI(ComplementOf)); len(ops) != 0 {
		inner, err := o.ClassExpression(ops[0])
		if err != nil {
			return nil, err
		}
		return Complement{Operand: inner}, nil
	}
	if props := o.Objects(v, quad.IRI(OnProperty)); len(props) != 0 {
		prop, err := o.propertyExpression(props[0])
		if err != nil {
			return nil, err
		}
		if fillers := o.Objects(v, quad.IRI(SomeValuesFrom)); len(fillers) != 0 {
			filler, err := o.ClassExpression(fillers[0])
			if err != nil {
				return nil, err
			}
			return Restriction{Quantifier: Existential, Property: prop, Filler: filler}, nil
		}
		if fillers := o.Objects(v, quad.IRI(AllValuesFrom)); len(fillers) != 0 {
			filler, err := o.ClassExpression(fillers[0])
			if err != nil {
				return nil, err
			}
			return Restriction{Quantifier: Universal, Property: prop, Filler: filler}, nil
		}
		return nil, fmt.Errorf("onto: unsupported restriction at %s", quad.StringOf(v))
	}
	return nil, fmt.Errorf("onto: unsupported anonymous class at %s", quad.StringOf(v))
}

func (o *Ontology) junction(op JunctionOp, head quad.Value) (ClassExpression, error) {
	items := o.rdfList(head)
	if len(items) == 0 {
		return nil, fmt.Errorf("onto: empty %v list", op)
	}
	operands := make([]ClassExpression, 0, len(items))
	for _, item := range items {
		c, err := o.ClassExpression(item)
		if err != nil {
			return nil, err
		}
		operands = append(operands, c)
	}
	if len(operands) == 1 {
		return operands[0], nil
	}
	return Junction{Op: op, Operands: operands}, nil
}

func (o *Ontology) propertyExpression(v quad.Value) (PropertyExpression, error) {
	switch t := v.(type) {
	case quad.IRI:
		return ObjectProperty(t), nil
	case quad.BNode:
		// a property chain encoded as an RDF list
		items := o.rdfList(v)
		if len(items) == 0 {
			return nil, fmt.Errorf("onto: unsupported property expression at %s", quad.StringOf(v))
		}
		chain := make(PropertyChain, 0, len(items))
		for _, item := range items {
			iri, ok := item.(quad.IRI)
			if !ok {
				return nil, fmt.Errorf("onto: non-IRI property in chain at %s", quad.StringOf(item))
			}
			chain = append(chain, ObjectProperty(iri))
		}
		return chain, nil
	default:
		return nil, fmt.Errorf("onto: value %s is not a property expression", quad.StringOf(v))
	}
}

// SubClassAxioms extracts all rdfs:subClassOf axioms whose sides decode
// into supported class expressions.
func (o *Ontology) SubClassAxioms() []SubClassOf {
	var out []SubClassOf
	for _, q := range o.predicateQuads(quad.IRI(rdfsSubClassOf)) {
		sub, err := o.ClassExpression(q.Subject)
		if err != nil {
			continue
		}
		super, err := o.ClassExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, SubClassOf{Sub: sub, Super: super})
	}
	return out
}

// EquivalentClassAxioms extracts all owl:equivalentClass axioms.
func (o *Ontology) EquivalentClassAxioms() []EquivalentClasses {
	var out []EquivalentClasses
	for _, q := range o.predicateQuads(quad.IRI(EquivalentClass)) {
		left, err := o.ClassExpression(q.Subject)
		if err != nil {
			continue
		}
		right, err := o.ClassExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, EquivalentClasses{Left: left, Right: right})
	}
	return out
}

// DisjointClassAxioms extracts owl:disjointWith axioms together with the
// pairwise expansion of owl:AllDisjointClasses declarations.
func (o *Ontology) DisjointClassAxioms() []DisjointClasses {
	var out []DisjointClasses
	for _, q := range o.predicateQuads(quad.IRI(DisjointWith)) {
		left, err := o.ClassExpression(q.Subject)
		if err != nil {
			continue
		}
		right, err := o.ClassExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, DisjointClasses{Left: left, Right: right})
	}
	for _, decl := range o.Subjects(quad.IRI(rdfType), quad.IRI(AllDisjointClasses)) {
		for _, head := range o.Objects(decl, quad.IRI(Members)) {
			members := o.rdfList(head)
			for i := 0; i < len(members); i++ {
				for j := i + 1; j < len(members); j++ {
					left, err := o.ClassExpression(members[i])
					if err != nil {
						continue
					}
					right, err := o.ClassExpression(members[j])
					if err != nil {
						continue
					}
					out = append(out, DisjointClasses{Left: left, Right: right})
				}
			}
		}
	}
	return out
}

// ClassAssertionAxioms extracts rdf:type assertions for named individuals.
func (o *Ontology) ClassAssertionAxioms() []ClassAssertion {
	var out []ClassAssertion
	for _, q := range o.predicateQuads(quad.IRI(rdfType)) {
		ind, ok := q.Subject.(quad.IRI)
		if !ok || !o.IsIndividual(ind) {
			continue
		}
		if obj, ok := q.Object.(quad.IRI); ok && string(obj) == NamedIndividualType {
			continue
		}
		class, err := o.ClassExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, ClassAssertion{Class: class, Individual: ind})
	}
	return out
}

// SubObjectPropertyAxioms extracts rdfs:subPropertyOf axioms between
// object properties and owl:propertyChainAxiom declarations.
func (o *Ontology) SubObjectPropertyAxioms() []SubObjectPropertyOf {
	var out []SubObjectPropertyOf
	for _, q := range o.predicateQuads(quad.IRI(rdfsSubPropertyOf)) {
		super, ok := q.Object.(quad.IRI)
		if !ok || !o.IsObjectProperty(super) {
			continue
		}
		sub, err := o.propertyExpression(q.Subject)
		if err != nil {
			continue
		}
		out = append(out, SubObjectPropertyOf{Sub: sub, Super: ObjectProperty(super)})
	}
	for _, q := range o.predicateQuads(quad.IRI(PropertyChainAxiom)) {
		super, ok := q.Subject.(quad.IRI)
		if !ok {
			continue
		}
		chain, err := o.propertyExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, SubObjectPropertyOf{Sub: chain, Super: ObjectProperty(super)})
	}
	return out
}

// ObjectPropertyAssertionAxioms extracts property assertions between
// named individuals.
func (o *Ontology) ObjectPropertyAssertionAxioms() []ObjectPropertyAssertion {
	var out []ObjectPropertyAssertion
	for _, prop := range o.ObjectProperties() {
		for _, q := range o.predicateQuads(prop) {
			s, ok := q.Subject.(quad.IRI)
			if !ok {
				continue
			}
			v, ok := q.Object.(quad.IRI)
			if !ok {
				continue
			}
			out = append(out, ObjectPropertyAssertion{Property: ObjectProperty(prop), Subject: s, Object: v})
		}
	}
	return out
}

// ObjectPropertyDomainAxioms extracts rdfs:domain axioms for object properties.
func (o *Ontology) ObjectPropertyDomainAxioms() []ObjectPropertyDomain {
	var out []ObjectPropertyDomain
	for _, q := range o.predicateQuads(quad.IRI(rdfsDomain)) {
		prop, ok := q.Subject.(quad.IRI)
		if !ok || !o.IsObjectProperty(prop) {
			continue
		}
		dom, err := o.ClassExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, ObjectPropertyDomain{Property: ObjectProperty(prop), Domain: dom})
	}
	return out
}

// ObjectPropertyRangeAxioms extracts rdfs:range axioms for object properties.
func (o *Ontology) ObjectPropertyRangeAxioms() []ObjectPropertyRange {
	var out []ObjectPropertyRange
	for _, q := range o.predicateQuads(quad.IRI(rdfsRange)) {
		prop, ok := q.Subject.(quad.IRI)
		if !ok || !o.IsObjectProperty(prop) {
			continue
		}
		rng, err := o.ClassExpression(q.Object)
		if err != nil {
			continue
		}
		out = append(out, ObjectPropertyRange{Property: ObjectProperty(prop), Range: rng})
	}
	return out
}

func (o *Ontology) predicateQuads(p quad.IRI) []quad.Quad {
	return o.QuadsFor(quad.Predicate, p)
}
