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
)

func TestPruneReconnectsHierarchy(t *testing.T) {
	o := New(
		subClassQuad(ex+"dog", ex+"mammal"),
		subClassQuad(ex+"cat", ex+"mammal"),
		subClassQuad(ex+"mammal", ex+"animal"),
		labelQuad(ex+"mammal", "mammal"),
	)
	o.Prune([]quad.IRI{quad.IRI(ex + "mammal")})

	assert.False(t, o.IsClass(quad.IRI(ex+"mammal")))
	assert.True(t, o.Has(quad.IRI(ex+"dog"), quad.IRI("rdfs:subClassOf"), quad.IRI(ex+"animal")))
	assert.True(t, o.Has(quad.IRI(ex+"cat"), quad.IRI("rdfs:subClassOf"), quad.IRI(ex+"animal")))
	for _, q := range o.Quads() {
		assert.NotContains(t, q.String(), ex+"mammal")
	}
}

func TestPruneChainOfClasses(t *testing.T) {
	o := New(
		subClassQuad(ex+"A", ex+"B"),
		subClassQuad(ex+"B", ex+"C"),
		subClassQuad(ex+"C", ex+"D"),
	)
	// removing a chain still connects the outer neighbours
	o.Prune([]quad.IRI{quad.IRI(ex + "B"), quad.IRI(ex + "C")})
	assert.True(t, o.Has(quad.IRI(ex+"A"), quad.IRI("rdfs:subClassOf"), quad.IRI(ex+"D")))
}

func TestKeepNamespace(t *testing.T) {
	other := "http://other.example.com/"
	o := New(
		subClassQuad(ex+"A", ex+"B"),
		subClassQuad(other+"X", ex+"B"),
		typeQuad(other+"Y", ClassType),
	)
	removed := o.KeepNamespace(ex)
	assert.Equal(t, 2, removed)
	assert.True(t, o.IsClass(quad.IRI(ex+"A")))
	assert.False(t, o.IsClass(quad.IRI(other+"X")))
	assert.False(t, o.IsClass(quad.IRI(other+"Y")))
}
