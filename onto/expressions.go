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
	"strings"

	"github.com/cayleygraph/quad"
)

// ClassExpression is an OWL class expression reconstructed from its RDF
// encoding. String renders the OWL functional syntax used by the
// verbal package's parser, e.g.
//
//	SubClassOf(<ex:A> ObjectSomeValuesFrom(<ex:r> <ex:B>))
type ClassExpression interface {
	fmt.Stringer
	isClass()
}

// PropertyExpression is an object property or a property chain.
type PropertyExpression interface {
	fmt.Stringer
	isProperty()
}

// NamedClass is an atomic class.
type NamedClass quad.IRI

func (c NamedClass) isClass()       {}
func (c NamedClass) String() string { return quad.IRI(c).String() }

// IRI returns the class IRI.
func (c NamedClass) IRI() quad.IRI { return quad.IRI(c) }

// ObjectProperty is an atomic object property.
type ObjectProperty quad.IRI

func (p ObjectProperty) isProperty()    {}
func (p ObjectProperty) String() string { return quad.IRI(p).String() }

// IRI returns the property IRI.
func (p ObjectProperty) IRI() quad.IRI { return quad.IRI(p) }

// PropertyChain is a composition r1 . r2 . ... of object properties.
type PropertyChain []ObjectProperty

func (c PropertyChain) isProperty() {}

func (c PropertyChain) String() string {
	parts := make([]string, len(c))
	for i, p := range c {
		parts[i] = p.String()
	}
	return "ObjectPropertyChain(" + strings.Join(parts, " ") + ")"
}

// Quantifier distinguishes existential from universal restrictions.
type Quantifier int

const (
	Existential Quantifier = iota
	Universal
)

// Restriction is an ObjectSomeValuesFrom or ObjectAllValuesFrom expression.
type Restriction struct {
	Quantifier Quantifier
	Property   PropertyExpression
	Filler     ClassExpression
}

func (r Restriction) isClass() {}

func (r Restriction) String() string {
	op := "ObjectSomeValuesFrom"
	if r.Quantifier == Universal {
		op = "ObjectAllValuesFrom"
	}
	return op + "(" + r.Property.String() + " " + r.Filler.String() + ")"
}

// JunctionOp distinguishes conjunction from disjunction.
type JunctionOp int

const (
	Intersection JunctionOp = iota
	Union
)

// Junction is an ObjectIntersectionOf or ObjectUnionOf expression.
type Junction struct {
	Op       JunctionOp
	Operands []ClassExpression
}

func (j Junction) isClass() {}

func (j Junction) String() string {
	op := "ObjectIntersectionOf"
	if j.Op == Union {
		op = "ObjectUnionOf"
	}
	parts := make([]string, len(j.Operands))
	for i, c := range j.Operands {
		parts[i] = c.String()
	}
	return op + "(" + strings.Join(parts, " ") + ")"
}

// Complement is an ObjectComplementOf expression.
type Complement struct {
	Operand ClassExpression
}

func (c Complement) isClass() {}

func (c Complement) String() string {
	return "ObjectComplementOf(" + c.Operand.String() + ")"
}

// IsAtomic reports whether the expression is a named class.
func IsAtomic(c ClassExpression) bool {
	_, ok := c.(NamedClass)
	return ok
}
