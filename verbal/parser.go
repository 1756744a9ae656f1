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

// Package verbal turns OWL axioms into English sentences.
//
// It works on the OWL functional syntax rendering of an axiom, e.g.
//
//	EquivalentClasses(<obo:FOODON_00001707> ObjectIntersectionOf(<obo:FOODON_00002044> ObjectSomeValuesFrom(<obo:RO_0001000> <obo:FOODON_03412116>)) )
//
// The operator names are first abbreviated to fixed-width tags so that
// a parenthesis-matching pass can recover the formula tree, which the
// verbaliser then renders bottom-up using entity labels.
package verbal

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Every operator tag has exactly five characters, so the tag of a
// sub-formula always occupies the five positions before its opening
// parenthesis.
var abbreviator = strings.NewReplacer(
	"ObjectComplementOf", "[NEG]",
	"ObjectSomeValuesFrom", "[EX.]",
	"ObjectAllValuesFrom", "[ALL]",
	"ObjectUnionOf", "[OR.]",
	"ObjectIntersectionOf", "[AND]",
	"ObjectPropertyChain", "[OPC]",
	"EquivalentClasses", "[EQV]",
	"SubClassOf", "[SUB]",
	"SuperClassOf", "[SUP]",
	"ClassAssertion", "[CLA]",
	"SubObjectPropertyOf", "[SUB]",
	"SuperObjectPropertyOf", "[SUP]",
	"ObjectPropertyAssertion", "[OPA]",
	"ObjectPropertyDomain", "[OPD]",
	"DataPropertyDomain", "[DPD]",
	"AnnotationPropertyDomain", "[APD]",
	"ObjectPropertyRange", "[OPR]",
	"DataPropertyRange", "[DPR]",
	"AnnotationPropertyRange", "[APR]",
)

// Node tags after abbreviation.
const (
	TagNegation    = "NEG"
	TagExistential = "EX."
	TagUniversal   = "ALL"
	TagUnion       = "OR."
	TagConjunction = "AND"
	TagChain       = "OPC"
	TagEquivalence = "EQV"
	TagSubsumption = "SUB"
	TagAssertion   = "CLA"
	TagPropAssert  = "OPA"
	TagDomain      = "OPD"
	TagRange       = "OPR"
)

// Abbreviate rewrites operator names in an OWL expression to their
// five-character tags.
func Abbreviate(expr string) string {
	return abbreviator.Replace(expr)
}

// RangeNode is a node in the containment tree of an abbreviated OWL
// expression. Each node covers the half-open range [Start, End) of the
// abbreviated text; a parent's range strictly contains its children's,
// partial overlap is malformed input.
type RangeNode struct {
	Start, End int
	// Name is the operator tag for sub-formulas, or the last IRI
	// segment for leaves.
	Name  string
	Text  string
	IsIRI bool

	Parent   *RangeNode
	Children []*RangeNode
}

var errPartialOverlap = errors.New("verbal: ranges have a partial overlap")

// contains reports whether n's range covers m's.
func (n *RangeNode) contains(m *RangeNode) bool {
	return n.Start <= m.Start && m.End <= n.End
}

func (n *RangeNode) disjointWith(m *RangeNode) bool {
	return m.End <= n.Start || n.End <= m.Start
}

// insert places node at its position in the containment tree under n.
// An existing child inside the new node's range is re-parented, which
// can happen for several children at once.
func (n *RangeNode) insert(node *RangeNode) error {
	if !n.contains(node) {
		return fmt.Errorf("verbal: node [%d:%d) outside parent [%d:%d)", node.Start, node.End, n.Start, n.End)
	}
	if node.Start == n.Start && node.End == n.End {
		return nil // duplicate
	}
	var keep []*RangeNode
	for _, ch := range n.Children {
		switch {
		case ch.contains(node):
			return ch.insert(node)
		case node.contains(ch):
			ch.Parent = node
			node.Children = append(node.Children, ch)
		case ch.disjointWith(node):
			keep = append(keep, ch)
		default:
			return errPartialOverlap
		}
	}
	sort.Slice(node.Children, func(i, j int) bool { return node.Children[i].Start < node.Children[j].Start })
	node.Parent = n
	keep = append(keep, node)
	sort.Slice(keep, func(i, j int) bool { return keep[i].Start < keep[j].Start })
	n.Children = keep
	return nil
}

// Render returns an indented rendering of the tree, one node per line.
func (n *RangeNode) Render() string {
	var b strings.Builder
	n.render(&b, 0)
	return b.String()
}

func (n *RangeNode) render(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	end := "inf"
	if n.End != math.MaxInt {
		end = fmt.Sprint(n.End)
	}
	fmt.Fprintf(b, "%s@[%d:%s]\n", n.Name, n.Start, end)
	for _, ch := range n.Children {
		ch.render(b, depth+1)
	}
}

// Parse builds the containment tree of an OWL expression. Operator
// sub-formulas are matched on round parentheses first, then IRI leaves
// on angle brackets. The returned root spans the whole text with the
// axiom (or top expression) as its only child.
func Parse(expr string) (*RangeNode, error) {
	expr = Abbreviate(expr)
	root := &RangeNode{Start: 0, End: math.MaxInt, Name: "Root", Text: expr}
	if err := parseByParentheses(expr, root, '(', ')'); err != nil {
		return nil, err
	}
	if err := parseByParentheses(expr, root, '<', '>'); err != nil {
		return nil, err
	}
	return root, nil
}

func parseByParentheses(expr string, root *RangeNode, opening, closing byte) error {
	forIRI := opening == '<'
	var stack []int
	for i := 0; i < len(expr); i++ {
		switch expr[i] {
		case opening:
			stack = append(stack, i)
		case closing:
			if len(stack) == 0 {
				return fmt.Errorf("verbal: unbalanced %q at offset %d", string(closing), i)
			}
			start := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			end := i
			var node *RangeNode
			if !forIRI {
				// the five characters before "(" hold the [TAG]
				realStart := start - 5
				if realStart < 0 {
					return fmt.Errorf("verbal: no operator tag before offset %d", start)
				}
				node = &RangeNode{
					Start: realStart,
					End:   end + 1,
					Name:  expr[realStart+1 : start-1],
					Text:  expr[realStart : end+1],
				}
			} else {
				text := expr[start : end+1]
				segs := strings.Split(strings.TrimSuffix(text, ">"), "/")
				node = &RangeNode{
					Start: start,
					End:   end + 1,
					Name:  segs[len(segs)-1],
					Text:  text,
					IsIRI: true,
				}
			}
			if err := root.insert(node); err != nil {
				return err
			}
		}
	}
	if len(stack) != 0 {
		return fmt.Errorf("verbal: unbalanced %q at offset %d", string(opening), stack[len(stack)-1])
	}
	return nil
}

// IRI returns the full IRI of a leaf node, without angle brackets.
func (n *RangeNode) IRI() string {
	return strings.TrimSuffix(strings.TrimPrefix(n.Text, "<"), ">")
}
