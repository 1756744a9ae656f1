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

const ex = "http://example.com/onto/"

func typeQuad(s, typ string) quad.Quad {
	return quad.Quad{Subject: quad.IRI(s), Predicate: quad.IRI("rdf:type"), Object: quad.IRI(typ)}
}

func subClassQuad(sub, super string) quad.Quad {
	return quad.Quad{Subject: quad.IRI(sub), Predicate: quad.IRI("rdfs:subClassOf"), Object: quad.IRI(super)}
}

func labelQuad(s, label string) quad.Quad {
	return quad.Quad{Subject: quad.IRI(s), Predicate: quad.IRI("rdfs:label"), Object: quad.String(label)}
}

func TestAddQuadRejectsDuplicates(t *testing.T) {
	o := New()
	q := subClassQuad(ex+"A", ex+"B")
	require.NoError(t, o.AddQuad(q))
	assert.Equal(t, ErrQuadExists, o.AddQuad(q))
	assert.Equal(t, 1, o.Size())
}

func TestAddQuadNormalisesPrefixedIRIs(t *testing.T) {
	o := New()
	require.NoError(t, o.AddQuad(typeQuad(ex+"A", "owl:Class")))

	// duplicate in full form
	err := o.AddQuad(quad.Quad{
		Subject:   quad.IRI(ex + "A"),
		Predicate: quad.IRI("http://www.w3.org/1999/02/22-rdf-syntax-ns#type"),
		Object:    quad.IRI(ClassType),
	})
	assert.Equal(t, ErrQuadExists, err)
	assert.True(t, o.IsClass(quad.IRI(ex+"A")))
}

func TestDeleteQuad(t *testing.T) {
	o := New()
	q := subClassQuad(ex+"A", ex+"B")
	require.NoError(t, o.AddQuad(q))
	require.NoError(t, o.DeleteQuad(q))
	assert.Equal(t, 0, o.Size())
	assert.Equal(t, ErrQuadNotExist, o.DeleteQuad(q))
}

func TestEntityClassification(t *testing.T) {
	o := New(
		typeQuad(ex+"A", ClassType),
		typeQuad(ex+"r", ObjectPropertyType),
		typeQuad(ex+"d", DatatypePropertyType),
		typeQuad(ex+"ann", AnnotationPropertyType),
		typeQuad(ex+"x", NamedIndividualType),
		// subClassOf implies both sides are classes
		subClassQuad(ex+"B", ex+"C"),
	)
	assert.Equal(t, []quad.IRI{quad.IRI(ex + "A"), quad.IRI(ex + "B"), quad.IRI(ex + "C")}, o.Classes())
	assert.Equal(t, []quad.IRI{quad.IRI(ex + "r")}, o.ObjectProperties())
	assert.Equal(t, []quad.IRI{quad.IRI(ex + "d")}, o.DataProperties())
	assert.Equal(t, []quad.IRI{quad.IRI(ex + "ann")}, o.AnnotationProperties())
	assert.Equal(t, []quad.IRI{quad.IRI(ex + "x")}, o.Individuals())
	assert.True(t, o.IsObjectProperty(quad.IRI(ex+"r")))
	assert.False(t, o.IsClass(quad.IRI(ex+"r")))
}

func TestOntologyIRI(t *testing.T) {
	o := New(typeQuad(ex+"my-onto", OntologyHeader))
	assert.Equal(t, quad.IRI(ex+"my-onto"), o.IRI())
}

func TestObjectsAndSubjects(t *testing.T) {
	o := New(
		subClassQuad(ex+"A", ex+"B"),
		subClassQuad(ex+"A", ex+"C"),
		subClassQuad(ex+"D", ex+"B"),
	)
	objs := o.Objects(quad.IRI(ex+"A"), quad.IRI("rdfs:subClassOf"))
	assert.Len(t, objs, 2)

	subs := o.Subjects(quad.IRI("rdfs:subClassOf"), quad.IRI(ex+"B"))
	assert.Len(t, subs, 2)

	assert.True(t, o.Has(quad.IRI(ex+"A"), quad.IRI("rdfs:subClassOf"), quad.IRI(ex+"B")))
	assert.False(t, o.Has(quad.IRI(ex+"B"), quad.IRI("rdfs:subClassOf"), quad.IRI(ex+"A")))
}

func TestRemoveEntity(t *testing.T) {
	o := New(
		typeQuad(ex+"A", ClassType),
		subClassQuad(ex+"A", ex+"B"),
		subClassQuad(ex+"C", ex+"A"),
		labelQuad(ex+"A", "a thing"),
	)
	o.RemoveEntity(quad.IRI(ex + "A"))
	assert.False(t, o.IsClass(quad.IRI(ex+"A")))
	for _, q := range o.Quads() {
		assert.NotContains(t, q.String(), ex+"A")
	}
}

func TestLabelsAndAnnotationIndex(t *testing.T) {
	o := New(
		typeQuad(ex+"A", ClassType),
		labelQuad(ex+"A", "Beta blocker"),
		labelQuad(ex+"A", "beta blocker"),
	)
	assert.Equal(t, []string{"Beta blocker", "beta blocker"}, o.Labels(quad.IRI(ex+"A")))

	idx := o.AnnotationIndex(Classes, nil, true)
	// lowercasing collapses the two labels
	assert.Equal(t, []string{"beta blocker"}, idx[quad.IRI(ex+"A")])
}

func TestReadFromAndWriteTo(t *testing.T) {
	data := `<` + ex + `A> <http://www.w3.org/2000/01/rdf-schema#subClassOf> <` + ex + `B> .
<` + ex + `A> <http://www.w3.org/2000/01/rdf-schema#label> "aspirin" .
`
	o, err := ReadFrom(strings.NewReader(data), "nquads")
	require.NoError(t, err)
	assert.Equal(t, 2, o.Size())
	assert.Equal(t, []string{"aspirin"}, o.Labels(quad.IRI(ex+"A")))

	var b strings.Builder
	require.NoError(t, o.WriteTo(&b, "nquads"))
	assert.Contains(t, b.String(), "aspirin")

	_, err = ReadFrom(strings.NewReader(data), "no-such-format")
	assert.Error(t, err)
}

func TestQuadFormatRegistry(t *testing.T) {
	for _, name := range []string{"nquads", "json", "jsonld", "pquads", "gml", "graphml", "graphviz"} {
		assert.NotNil(t, quad.FormatByName(name), name)
	}
}

func TestReadFromJSONLD(t *testing.T) {
	data := `{
		"@id": "` + ex + `A",
		"http://www.w3.org/2000/01/rdf-schema#subClassOf": {"@id": "` + ex + `B"},
		"http://www.w3.org/2000/01/rdf-schema#label": "aspirin"
	}`
	o, err := ReadFrom(strings.NewReader(data), "jsonld")
	require.NoError(t, err)
	assert.True(t, o.IsClass(quad.IRI(ex+"A")))
	assert.True(t, o.IsClass(quad.IRI(ex+"B")))
	assert.Equal(t, []string{"aspirin"}, o.Labels(quad.IRI(ex+"A")))
}
