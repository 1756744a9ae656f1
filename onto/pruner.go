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
	"github.com/cayleygraph/quad"

	"github.com/ontokit/ontokit/olog"
)

// Prune removes the given classes from the ontology while preserving
// the told hierarchy: before a class is deleted, each of its named
// subclasses is re-attached to each of its named superclasses. Classes
// are removed one at a time so that chains of doomed classes still
// leave their outer neighbours connected. Every other quad mentioning
// a removed class is dropped with it.
func (o *Ontology) Prune(remove []quad.IRI) {
	for _, c := range remove {
		c = c.Full()
		subs := o.namedSubClasses(c)
		supers := o.namedSuperClasses(c)
		for _, sub := range subs {
			for _, super := range supers {
				if sub == super {
					continue
				}
				err := o.AddQuad(quad.Quad{
					Subject:   sub,
					Predicate: quad.IRI(rdfsSubClassOf),
					Object:    super,
				})
				if err != nil && err != ErrQuadExists {
					olog.Errorf("prune: reattach %s under %s: %v", sub, super, err)
				}
			}
		}
		o.RemoveEntity(c)
	}
}

func (o *Ontology) namedSubClasses(c quad.IRI) []quad.IRI {
	var out []quad.IRI
	for _, v := range o.Subjects(quad.IRI(rdfsSubClassOf), c) {
		if iri, ok := v.(quad.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

func (o *Ontology) namedSuperClasses(c quad.IRI) []quad.IRI {
	var out []quad.IRI
	for _, v := range o.Objects(c, quad.IRI(rdfsSubClassOf)) {
		if iri, ok := v.(quad.IRI); ok {
			out = append(out, iri)
		}
	}
	return out
}

// KeepNamespace prunes every class whose IRI does not start with the
// given namespace prefix. Useful for carving one source out of a
// merged ontology such as UMLS.
func (o *Ontology) KeepNamespace(ns string) int {
	var remove []quad.IRI
	for _, c := range o.Classes() {
		if len(string(c)) < len(ns) || string(c)[:len(ns)] != ns {
			remove = append(remove, c)
		}
	}
	o.Prune(remove)
	return len(remove)
}
