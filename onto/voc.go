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
	"github.com/cayleygraph/quad/voc"
	"github.com/cayleygraph/quad/voc/rdf"
	"github.com/cayleygraph/quad/voc/rdfs"
)

func init() {
	voc.RegisterPrefix(Prefix, NS)
}

// Full forms of the RDF and RDFS terms the model indexes on. The voc
// constants are prefixed, while stored values are expanded.
const (
	rdfType  = rdf.NS + "type"
	rdfFirst = rdf.NS + "first"
	rdfRest  = rdf.NS + "rest"
	rdfNil   = rdf.NS + "nil"

	rdfsSubClassOf    = rdfs.NS + "subClassOf"
	rdfsSubPropertyOf = rdfs.NS + "subPropertyOf"
	rdfsDomain        = rdfs.NS + "domain"
	rdfsRange         = rdfs.NS + "range"
	rdfsLabel         = rdfs.NS + "label"
)

// Constants of the Web Ontology Language (OWL) used by the ontology model.
const (
	NS     = `http://www.w3.org/2002/07/owl#`
	Prefix = `owl:`
)

const (
	OntologyHeader = NS + "Ontology"

	Thing   = NS + "Thing"
	Nothing = NS + "Nothing"

	ClassType              = NS + "Class"
	ObjectPropertyType     = NS + "ObjectProperty"
	DatatypePropertyType   = NS + "DatatypeProperty"
	AnnotationPropertyType = NS + "AnnotationProperty"
	NamedIndividualType    = NS + "NamedIndividual"

	RestrictionType = NS + "Restriction"
	OnProperty      = NS + "onProperty"
	SomeValuesFrom  = NS + "someValuesFrom"
	AllValuesFrom   = NS + "allValuesFrom"

	IntersectionOf = NS + "intersectionOf"
	UnionOf        = NS + "unionOf"
	ComplementOf   = NS + "complementOf"
	OneOf          = NS + "oneOf"

	EquivalentClass    = NS + "equivalentClass"
	DisjointWith       = NS + "disjointWith"
	AllDisjointClasses = NS + "AllDisjointClasses"
	Members            = NS + "members"

	InversePropertyOf  = NS + "inverseOf"
	PropertyChainAxiom = NS + "propertyChainAxiom"
)
