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
	"strings"
	"testing"

	"github.com/cayleygraph/quad"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliseAtomicSubsumption(t *testing.T) {
	o := New(subClassQuad(ex+"A", ex+"B"))
	tbox := Normalise(o)
	require.Len(t, tbox.Axioms, 1)
	assert.Empty(t, tbox.Fresh)
	assert.Zero(t, tbox.Skipped)
	assert.Equal(t, "SubClassOf(<"+ex+"A> <"+ex+"B>)", tbox.Axioms[0].String())
}

func TestNormaliseRestrictionSuper(t *testing.T) {
	bn := quad.BNode("r1")
	quads := append([]quad.Quad{
		{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI("rdfs:subClassOf"), Object: bn},
	}, restrictionQuads(bn, ex+"hasPart", ex+"B")...)
	o := New(quads...)

	tbox := Normalise(o)
	// A ⊑ ∃hasPart.B is already in normal form
	require.Len(t, tbox.Axioms, 1)
	assert.Empty(t, tbox.Fresh)
	assert.Equal(t,
		"SubClassOf(<"+ex+"A> ObjectSomeValuesFrom(<"+ex+"hasPart> <"+ex+"B>))",
		tbox.Axioms[0].String())
}

func TestNormaliseNestedFillerIntroducesFreshName(t *testing.T) {
	outer := quad.BNode("outer")
	inner := quad.BNode("inner")
	quads := []quad.Quad{
		{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI("rdfs:subClassOf"), Object: outer},
		{Subject: outer, Predicate: quad.IRI("rdf:type"), Object: quad.IRI(RestrictionType)},
		{Subject: outer, Predicate: quad.IRI(OnProperty), Object: quad.IRI(ex + "hasPart")},
		{Subject: outer, Predicate: quad.IRI(SomeValuesFrom), Object: inner},
	}
	quads = append(quads, restrictionQuads(inner, ex+"hasPart", ex+"B")...)
	o := New(quads...)

	tbox := Normalise(o)
	require.Len(t, tbox.Fresh, 1)
	fresh := tbox.Fresh[0]
	assert.True(t, strings.HasPrefix(string(fresh), NormNS))

	// the nested filler is named and defined in both directions
	var sawOuter, sawDef bool
	for _, ax := range tbox.Axioms {
		s := ax.String()
		if s == "SubClassOf(<"+ex+"A> ObjectSomeValuesFrom(<"+ex+"hasPart> "+fresh.String()+"))" {
			sawOuter = true
		}
		if s == "SubClassOf("+fresh.String()+" ObjectSomeValuesFrom(<"+ex+"hasPart> <"+ex+"B>))" {
			sawDef = true
		}
	}
	assert.True(t, sawOuter, "outer axiom uses the fresh name")
	assert.True(t, sawDef, "fresh name is defined by the nested filler")
}

func TestNormaliseEquivalenceSplits(t *testing.T) {
	o := New(quad.Quad{
		Subject:   quad.IRI(ex + "A"),
		Predicate: quad.IRI(EquivalentClass),
		Object:    quad.IRI(ex + "B"),
	})
	tbox := Normalise(o)
	require.Len(t, tbox.Axioms, 2)
	assert.Equal(t, "SubClassOf(<"+ex+"A> <"+ex+"B>)", tbox.Axioms[0].String())
	assert.Equal(t, "SubClassOf(<"+ex+"B> <"+ex+"A>)", tbox.Axioms[1].String())
}

func TestNormaliseSkipsNonEL(t *testing.T) {
	neg := quad.BNode("neg")
	o := New(
		quad.Quad{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI("rdfs:subClassOf"), Object: neg},
		quad.Quad{Subject: neg, Predicate: quad.IRI(ComplementOf), Object: quad.IRI(ex + "B")},
	)
	tbox := Normalise(o)
	assert.Empty(t, tbox.Axioms)
	assert.Equal(t, 1, tbox.Skipped)
}

func TestNormaliseIntersectionSuperSplits(t *testing.T) {
	junction := quad.BNode("and")
	head := quad.BNode("list")
	var quads []quad.Quad
	quads = append(quads,
		quad.Quad{Subject: quad.IRI(ex + "A"), Predicate: quad.IRI("rdfs:subClassOf"), Object: junction},
		quad.Quad{Subject: junction, Predicate: quad.IRI(IntersectionOf), Object: head},
	)
	quads = append(quads, listQuads(head, quad.IRI(ex+"B"), quad.IRI(ex+"C"))...)
	o := New(quads...)

	tbox := Normalise(o)
	require.Len(t, tbox.Axioms, 2)
	rendered := []string{tbox.Axioms[0].String(), tbox.Axioms[1].String()}
	assert.Contains(t, rendered, "SubClassOf(<"+ex+"A> <"+ex+"B>)")
	assert.Contains(t, rendered, "SubClassOf(<"+ex+"A> <"+ex+"C>)")
}
