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
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// restrictionQuads encodes bnode as (ObjectSomeValuesFrom prop filler).
func restrictionQuads(bnode quad.BNode, prop, filler string) []quad.Quad {
	return []quad.Quad{
		{Subject: bnode, Predicate: quad.IRI("rdf:type"), Object: quad.IRI(RestrictionType)},
		{Subject: bnode, Predicate: quad.IRI(OnProperty), Object: quad.IRI(prop)},
		{Subject: bnode, Predicate: quad.IRI(SomeValuesFrom), Object: quad.IRI(filler)},
	}
}

// listQuads encodes an RDF collection with the given member values.
func listQuads(head quad.BNode, members ...quad.Value) []quad.Quad {
	var out []quad.Quad
	cur := head
	for i, m := range members {
		out = append(out, quad.Quad{Subject: cur, Predicate: quad.IRI("rdf:first"), Object: m})
		if i == len(members)-1 {
			out = append(out, quad.Quad{Subject: cur, Predicate: quad.IRI("rdf:rest"), Object: quad.IRI("rdf:nil")})
			break
		}
		next := quad.BNode(string(head) + "-rest-" + string(rune('a'+i)))
		out = append(out, quad.Quad{Subject: cur, Predicate: quad.IRI("rdf:rest"), Object: next})
		cur = next
	}
	return out
}

func TestSubClassAxiomsAtomic(t *testing.T) {
	o := New(subClassQuad(ex+"A", ex+"B"))
	axioms := o.SubClassAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t, "SubClassOf(<"+ex+"A> <"+ex+"B>)", axioms[0].String())
}

func TestSubClassAxiomWithRestriction(t *testing.T) {
	bn := quad.BNode("r1")
	quads := append([]quad.Quad{
		{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI("rdfs:subClassOf"), Object: bn},
	}, restrictionQuads(bn, ex+"hasPart", ex+"B")...)
	o := New(quads...)

	axioms := o.SubClassAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t,
		"SubClassOf(<"+ex+"A> ObjectSomeValuesFrom(<"+ex+"hasPart> <"+ex+"B>))",
		axioms[0].String())
}

func TestEquivalentClassAxiomWithIntersection(t *testing.T) {
	junction := quad.BNode("and1")
	head := quad.BNode("list1")
	restriction := quad.BNode("r1")

	var quads []quad.Quad
	quads = append(quads, quad.Quad{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI(EquivalentClass), Object: junction})
	quads = append(quads, quad.Quad{Subject: junction, Predicate: quad.IRI(IntersectionOf), Object: head})
	quads = append(quads, listQuads(head, quad.IRI(ex+"B"), restriction)...)
	quads = append(quads, restrictionQuads(restriction, ex+"hasPart", ex+"C")...)
	o := New(quads...)

	axioms := o.EquivalentClassAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t,
		"EquivalentClasses(<"+ex+"A> ObjectIntersectionOf(<"+ex+"B> ObjectSomeValuesFrom(<"+ex+"hasPart> <"+ex+"C>)) )",
		axioms[0].String())
}

func TestDisjointClassAxioms(t *testing.T) {
	decl := quad.BNode("adc")
	head := quad.BNode("members")

	var quads []quad.Quad
	quads = append(quads,
		quad.Quad{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI(DisjointWith), Object: quad.IRI(ex + "B")},
		quad.Quad{Subject: decl, Predicate: quad.IRI("rdf:type"), Object: quad.IRI(AllDisjointClasses)},
		quad.Quad{Subject: decl, Predicate: quad.IRI(Members), Object: head},
	)
	quads = append(quads, listQuads(head, quad.IRI(ex+"X"), quad.IRI(ex+"Y"), quad.IRI(ex+"Z"))...)
	o := New(quads...)

	axioms := o.DisjointClassAxioms()
	// one direct axiom plus C(3,2) pairwise expansions
	require.Len(t, axioms, 4)
	assert.Equal(t, "DisjointClasses(<"+ex+"A> <"+ex+"B>)", axioms[0].String())
}

func TestComplementAndUnion(t *testing.T) {
	neg := quad.BNode("neg")
	union := quad.BNode("or")
	head := quad.BNode("orlist")

	var quads []quad.Quad
	quads = append(quads,
		quad.Quad{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI("rdfs:subClassOf"), Object: neg},
		quad.Quad{Subject: neg, Predicate: quad.IRI(ComplementOf), Object: union},
		quad.Quad{Subject: union, Predicate: quad.IRI(UnionOf), Object: head},
	)
	quads = append(quads, listQuads(head, quad.IRI(ex+"B"), quad.IRI(ex+"C"))...)
	o := New(quads...)

	axioms := o.SubClassAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t,
		"SubClassOf(<"+ex+"A> ObjectComplementOf(ObjectUnionOf(<"+ex+"B> <"+ex+"C>)))",
		axioms[0].String())
}

func TestPropertyChainAxiom(t *testing.T) {
	head := quad.BNode("chain")
	var quads []quad.Quad
	quads = append(quads,
		typeQuad(ex+"locatedIn", ObjectPropertyType),
		typeQuad(ex+"partOf", ObjectPropertyType),
		quad.Quad{Subject: quad.IRI(ex + "locatedIn"), Predicate: quad.IRI(PropertyChainAxiom), Object: head},
	)
	quads = append(quads, listQuads(head, quad.IRI(ex+"partOf"), quad.IRI(ex+"locatedIn"))...)
	o := New(quads...)

	axioms := o.SubObjectPropertyAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t,
		"SubObjectPropertyOf(ObjectPropertyChain(<"+ex+"partOf> <"+ex+"locatedIn>) <"+ex+"locatedIn>)",
		axioms[0].String())
}

func TestClassAssertionAxioms(t *testing.T) {
	o := New(
		typeQuad(ex+"rex", NamedIndividualType),
		typeQuad(ex+"dog", ClassType),
		typeQuad(ex+"rex", ex+"dog"),
	)
	axioms := o.ClassAssertionAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t, "ClassAssertion(<"+ex+"dog> <"+ex+"rex>)", axioms[0].String())
}

func TestObjectPropertyAssertionAxioms(t *testing.T) {
	o := New(
		typeQuad(ex+"owns", ObjectPropertyType),
		quad.Quad{Subject: quad.IRI(ex + "alice"), Predicate: quad.IRI(ex + "owns"), Object: quad.IRI(ex + "rex")},
	)
	axioms := o.ObjectPropertyAssertionAxioms()
	require.Len(t, axioms, 1)
	assert.Equal(t,
		"ObjectPropertyAssertion(<"+ex+"owns> <"+ex+"alice> <"+ex+"rex>)",
		axioms[0].String())
}

func TestDomainAndRangeAxioms(t *testing.T) {
	o := New(
		typeQuad(ex+"owns", ObjectPropertyType),
		quad.Quad{Subject: quad.IRI(ex + "owns"), Predicate: quad.IRI("rdfs:domain"), Object: quad.IRI(ex + "person")},
		quad.Quad{Subject: quad.IRI(ex + "owns"), Predicate: quad.IRI("rdfs:range"), Object: quad.IRI(ex + "animal")},
	)
	domains := o.ObjectPropertyDomainAxioms()
	require.Len(t, domains, 1)
	assert.Equal(t, "ObjectPropertyDomain(<"+ex+"owns> <"+ex+"person>)", domains[0].String())

	ranges := o.ObjectPropertyRangeAxioms()
	require.Len(t, ranges, 1)
	assert.Equal(t, "ObjectPropertyRange(<"+ex+"owns> <"+ex+"animal>)", ranges[0].String())
}

func TestMalformedListDoesNotHang(t *testing.T) {
	head := quad.BNode("loop")
	o := New(
		quad.Quad{Subject: head, Predicate: quad.IRI("rdf:first"), Object: quad.IRI(ex + "A")},
		quad.Quad{Subject: head, Predicate: quad.IRI("rdf:rest"), Object: head},
	)
	members := o.rdfList(head)
	assert.Equal(t, []quad.Value{quad.IRI(ex + "A").Full()}, members)
}
