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

	"github.com/ontokit/ontokit/olog"
)

// NormNS is the namespace for fresh class names introduced during
// normalisation.
const NormNS = "http://ontokit.org/norm#"

// NormalisedTBox is the result of rewriting the subsumption and
// equivalence axioms of an ontology into the EL normal forms
//
//	A ⊑ B
//	A1 ⊓ A2 ⊑ B
//	A ⊑ ∃r.B
//	∃r.A ⊑ B
//
// where A, B are named classes. Complex sub-expressions are replaced by
// fresh names recorded in Fresh. Axioms that fall outside the EL
// fragment (complements, unions, universal restrictions) are not
// rewritten and are counted in Skipped.
type NormalisedTBox struct {
	Axioms  []SubClassOf
	Fresh   []quad.IRI
	Skipped int
}

type normaliser struct {
	out   []SubClassOf
	fresh []quad.IRI
	names map[string]NamedClass
	next  int
}

// Normalise rewrites the TBox of o into EL normal forms.
func Normalise(o *Ontology) *NormalisedTBox {
	n := &normaliser{names: make(map[string]NamedClass)}
	skipped := 0
	for _, ax := range o.SubClassAxioms() {
		if !inEL(ax.Sub) || !inEL(ax.Super) {
			skipped++
			continue
		}
		n.subsumption(ax.Sub, ax.Super)
	}
	for _, ax := range o.EquivalentClassAxioms() {
		if !inEL(ax.Left) || !inEL(ax.Right) {
			skipped++
			continue
		}
		n.subsumption(ax.Left, ax.Right)
		n.subsumption(ax.Right, ax.Left)
	}
	if olog.V(1) {
		olog.Infof("normalised TBox: %d axioms, %d fresh names, %d skipped",
			len(n.out), len(n.fresh), skipped)
	}
	return &NormalisedTBox{Axioms: n.out, Fresh: n.fresh, Skipped: skipped}
}

// inEL reports whether the expression stays inside the EL fragment.
func inEL(c ClassExpression) bool {
	switch t := c.(type) {
	case NamedClass:
		return true
	case Restriction:
		if t.Quantifier != Existential {
			return false
		}
		if _, chain := t.Property.(PropertyChain); chain {
			return false
		}
		return inEL(t.Filler)
	case Junction:
		if t.Op != Intersection {
			return false
		}
		for _, op := range t.Operands {
			if !inEL(op) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// subsumption emits sub ⊑ super in normal form.
func (n *normaliser) subsumption(sub, super ClassExpression) {
	switch t := sub.(type) {
	case NamedClass:
		n.emitNamedSub(t, super)
	case Restriction:
		// ∃r.C ⊑ D with C named first
		filler := n.name(t.Filler)
		left := Restriction{Quantifier: Existential, Property: t.Property, Filler: filler}
		right := n.name(super)
		n.out = append(n.out, SubClassOf{Sub: left, Super: right})
	case Junction:
		ops := make([]NamedClass, 0, len(t.Operands))
		for _, op := range t.Operands {
			ops = append(ops, n.name(op))
		}
		// fold n-ary intersections into binary ones
		for len(ops) > 2 {
			pair := Junction{Op: Intersection, Operands: []ClassExpression{ops[0], ops[1]}}
			combined := n.nameFor(pair)
			ops = append([]NamedClass{combined}, ops[2:]...)
		}
		var left ClassExpression
		if len(ops) == 1 {
			left = ops[0]
		} else {
			left = Junction{Op: Intersection, Operands: []ClassExpression{ops[0], ops[1]}}
		}
		right := n.name(super)
		n.out = append(n.out, SubClassOf{Sub: left, Super: right})
	}
}

// emitNamedSub emits A ⊑ super, splitting intersections on the right.
func (n *normaliser) emitNamedSub(sub NamedClass, super ClassExpression) {
	switch t := super.(type) {
	case NamedClass:
		n.out = append(n.out, SubClassOf{Sub: sub, Super: t})
	case Restriction:
		filler := n.name(t.Filler)
		n.out = append(n.out, SubClassOf{
			Sub:   sub,
			Super: Restriction{Quantifier: Existential, Property: t.Property, Filler: filler},
		})
	case Junction:
		// A ⊑ C1 ⊓ C2 splits into A ⊑ C1 and A ⊑ C2
		for _, op := range t.Operands {
			n.emitNamedSub(sub, op)
		}
	}
}

// name reduces an expression to a named class, introducing a fresh name
// with defining axioms when the expression is complex.
func (n *normaliser) name(c ClassExpression) NamedClass {
	if named, ok := c.(NamedClass); ok {
		return named
	}
	return n.nameFor(c)
}

// nameFor returns the fresh name of a complex expression, minting it on
// first sight. The same expression text always maps to the same name.
func (n *normaliser) nameFor(c ClassExpression) NamedClass {
	key := c.String()
	if named, ok := n.names[key]; ok {
		return named
	}
	n.next++
	named := NamedClass(quad.IRI(fmt.Sprintf("%sN%d", NormNS, n.next)))
	n.names[key] = named
	n.fresh = append(n.fresh, named.IRI())
	// defining axioms in both directions keep the models equivalent
	n.subsumption(c, named)
	n.emitNamedSub(named, c)
	return named
}
