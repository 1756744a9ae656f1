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

// EntityType selects which entity set an annotation index covers.
type EntityType int

const (
	Classes EntityType = iota
	ObjectProperties
	DataProperties
	AnnotationProperties
	Individuals
)

func (t EntityType) String() string {
	switch t {
	case Classes:
		return "classes"
	case ObjectProperties:
		return "object properties"
	case DataProperties:
		return "data properties"
	case AnnotationProperties:
		return "annotation properties"
	case Individuals:
		return "individuals"
	}
	return "unknown"
}

func (o *Ontology) entities(t EntityType) []quad.IRI {
	switch t {
	case Classes:
		return o.Classes()
	case ObjectProperties:
		return o.ObjectProperties()
	case DataProperties:
		return o.DataProperties()
	case AnnotationProperties:
		return o.AnnotationProperties()
	case Individuals:
		return o.Individuals()
	}
	return nil
}

// RDFSLabel is the default annotation property for entity names.
var RDFSLabel = quad.IRI(rdfsLabel)

// AnnotationIndex maps every entity of the given type to its literal
// annotation values for the given properties. When props is empty,
// rdfs:label is used. Duplicate values are removed; the order of values
// per entity is the quad insertion order.
func (o *Ontology) AnnotationIndex(t EntityType, props []quad.IRI, lowercase bool) map[quad.IRI][]string {
	if len(props) == 0 {
		props = []quad.IRI{RDFSLabel}
	}
	out := make(map[quad.IRI][]string)
	for _, ent := range o.entities(t) {
		var vals []string
		seen := make(map[string]struct{})
		for _, p := range props {
			for _, v := range o.Objects(ent, p) {
				s, ok := literalString(v)
				if !ok {
					continue
				}
				if lowercase {
					s = strings.ToLower(s)
				}
				if _, dup := seen[s]; dup {
					continue
				}
				seen[s] = struct{}{}
				vals = append(vals, s)
			}
		}
		out[ent] = vals
	}
	return out
}

// Labels returns the rdfs:label values of an entity, sorted.
func (o *Ontology) Labels(ent quad.IRI) []string {
	var out []string
	for _, v := range o.Objects(ent, RDFSLabel) {
		if s, ok := literalString(v); ok {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Annotations returns the literal values of an arbitrary annotation
// property on an entity.
func (o *Ontology) Annotations(ent quad.IRI, prop quad.IRI) []string {
	var out []string
	for _, v := range o.Objects(ent, prop) {
		if s, ok := literalString(v); ok {
			out = append(out, s)
		}
	}
	return out
}

func literalString(v quad.Value) (string, bool) {
	switch t := v.(type) {
	case quad.String:
		return string(t), true
	case quad.LangString:
		return string(t.Value), true
	case quad.TypedString:
		return string(t.Value), true
	default:
		return "", false
	}
}
