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

package verbal

import (
	"fmt"
	"strings"

	"github.com/ontokit/ontokit/olog"
	"github.com/ontokit/ontokit/onto"
)

// Rendering is the recursive result of verbalising one node of a
// formula tree. Verbal holds the English phrase; the remaining fields
// expose the verbalised parts so callers can re-assemble them with
// their own templates.
type Rendering struct {
	Verbal string
	// Type is "IRI" for leaves, or the operator tag of the node.
	Type string

	IRI        string       // leaves only
	Property   *Rendering   // restrictions
	Class      *Rendering   // restrictions and negations
	Classes    []*Rendering // junctions
	Properties []*Rendering // property chains
}

// Options configure a Verbaliser.
type Options struct {
	// Lowercase entity labels when building the vocabulary.
	Lowercase bool
	// KeepIRI renders entities as their bracketed IRIs instead of labels.
	KeepIRI bool
	// AutoCorrect applies rule-based grammar fixes to entity names.
	AutoCorrect bool
	// QuantifierWords adds the Manchester syntax words "some"/"only"
	// after properties in restrictions.
	QuantifierWords bool
}

// Verbaliser renders OWL class expressions and axioms as English,
// naming entities by their rdfs:label.
type Verbaliser struct {
	opts  Options
	vocab map[string]string
}

// New builds a verbaliser over the entity labels of o. Entities
// without a label fall back to their IRI at rendering time.
func New(o *onto.Ontology, opts Options) *Verbaliser {
	v := &Verbaliser{opts: opts, vocab: make(map[string]string)}
	for _, t := range []onto.EntityType{onto.Classes, onto.ObjectProperties, onto.DataProperties, onto.Individuals} {
		for ent, names := range o.AnnotationIndex(t, nil, opts.Lowercase) {
			if len(names) > 0 {
				v.vocab[string(ent)] = names[0]
			}
		}
	}
	return v
}

// UpdateEntityName overrides the rendered name of one entity. Call it
// before verbalising.
func (v *Verbaliser) UpdateEntityName(iri, name string) {
	v.vocab[iri] = name
}

// VerbaliseExpression verbalises the functional syntax rendering of a
// class expression.
func (v *Verbaliser) VerbaliseExpression(expr string) (*Rendering, error) {
	node, err := v.parseTop(expr)
	if err != nil {
		return nil, err
	}
	return v.verbaliseNode(node)
}

func (v *Verbaliser) parseTop(expr string) (*RangeNode, error) {
	root, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	if len(root.Children) == 0 {
		return nil, fmt.Errorf("verbal: nothing to verbalise in %q", expr)
	}
	return root.Children[0], nil
}

func (v *Verbaliser) verbaliseNode(n *RangeNode) (*Rendering, error) {
	switch {
	case n.IsIRI:
		return v.verbaliseIRI(n, false), nil
	case n.Name == TagNegation:
		if len(n.Children) != 1 {
			return nil, fmt.Errorf("verbal: malformed negation %q", n.Text)
		}
		cl, err := v.verbaliseNode(n.Children[0])
		if err != nil {
			return nil, err
		}
		return &Rendering{Verbal: "not " + cl.Verbal, Class: cl, Type: TagNegation}, nil
	case n.Name == TagExistential || n.Name == TagUniversal:
		return v.verbaliseRestriction(n, true)
	case n.Name == TagConjunction || n.Name == TagUnion:
		return v.verbaliseJunction(n)
	case n.Name == TagChain:
		return v.verbaliseProperty(n)
	}
	return nil, fmt.Errorf("verbal: unsupported expression %q", n.Text)
}

func (v *Verbaliser) verbaliseIRI(n *RangeNode, isProperty bool) *Rendering {
	iri := n.IRI()
	verbal := n.Text
	if !v.opts.KeepIRI {
		if name, ok := v.vocab[iri]; ok {
			verbal = name
		} else {
			olog.Warningf("verbal: no label for %s, rendering the IRI", iri)
		}
	}
	if v.opts.AutoCorrect {
		if isProperty {
			verbal = fixVerbPhrase(verbal)
		} else {
			verbal = fixNounPhrase(verbal)
		}
	}
	return &Rendering{Verbal: verbal, IRI: iri, Type: "IRI"}
}

// verbaliseProperty handles a property leaf or an ObjectPropertyChain,
// rendered as "r1 something that r2 ...".
func (v *Verbaliser) verbaliseProperty(n *RangeNode) (*Rendering, error) {
	if n.IsIRI {
		return v.verbaliseIRI(n, true), nil
	}
	if n.Name != TagChain {
		return nil, fmt.Errorf("verbal: %q is not a property expression", n.Text)
	}
	props := make([]*Rendering, 0, len(n.Children))
	parts := make([]string, 0, len(n.Children))
	for _, ch := range n.Children {
		p := v.verbaliseIRI(ch, true)
		props = append(props, p)
		parts = append(parts, p.Verbal)
	}
	return &Rendering{
		Verbal:     strings.Join(parts, " something that "),
		Properties: props,
		Type:       TagChain,
	}, nil
}

func (v *Verbaliser) verbaliseRestriction(n *RangeNode, addSomething bool) (*Rendering, error) {
	if (n.Name != TagExistential && n.Name != TagUniversal) || len(n.Children) != 2 {
		return nil, fmt.Errorf("verbal: malformed restriction %q", n.Text)
	}
	quantifier := "some"
	if n.Name == TagUniversal {
		quantifier = "only"
	}
	prop, err := v.verbaliseProperty(n.Children[0])
	if err != nil {
		return nil, err
	}
	filler, err := v.verbaliseNode(n.Children[1])
	if err != nil {
		return nil, err
	}
	var verbal string
	if v.opts.QuantifierWords {
		verbal = prop.Verbal + " " + quantifier + " " + filler.Verbal
	} else {
		verbal = prop.Verbal + " " + filler.Verbal
	}
	verbal = strings.TrimSpace(verbal)
	if addSomething {
		verbal = "something that " + verbal
	}
	return &Rendering{Verbal: verbal, Property: prop, Class: filler, Type: n.Name}, nil
}

// verbaliseJunction renders a conjunction or disjunction. Restrictions
// over the same property are merged first, so that "derives from shark"
// and "derives from goldfish" become "derives from shark and goldfish".
func (v *Verbaliser) verbaliseJunction(n *RangeNode) (*Rendering, error) {
	if n.Name != TagConjunction && n.Name != TagUnion {
		return nil, fmt.Errorf("verbal: malformed junction %q", n.Text)
	}
	word := "and"
	if n.Name == TagUnion {
		word = "or"
	}

	// group restriction children by quantifier and property phrase,
	// preserving first-seen order
	type group struct {
		key      string
		children []*Rendering
	}
	var exGroups, allGroups []*group
	byKey := make(map[string]*group)
	var others []*Rendering
	for _, ch := range n.Children {
		switch ch.Name {
		case TagExistential, TagUniversal:
			r, err := v.verbaliseRestriction(ch, false)
			if err != nil {
				return nil, err
			}
			key := ch.Name + "\x00" + r.Property.Verbal
			g, ok := byKey[key]
			if !ok {
				g = &group{key: key}
				byKey[key] = g
				if ch.Name == TagExistential {
					exGroups = append(exGroups, g)
				} else {
					allGroups = append(allGroups, g)
				}
			}
			g.children = append(g.children, r)
		default:
			r, err := v.verbaliseNode(ch)
			if err != nil {
				return nil, err
			}
			others = append(others, r)
		}
	}

	var merged []*Rendering
	for _, g := range append(exGroups, allGroups...) {
		first := g.children[0]
		if len(g.children) == 1 {
			merged = append(merged, first)
			continue
		}
		mergedClass := &Rendering{
			Verbal:  first.Class.Verbal,
			Classes: []*Rendering{first.Class},
			Type:    n.Name,
		}
		m := &Rendering{
			Verbal:   first.Verbal,
			Property: first.Property,
			Class:    mergedClass,
			Type:     first.Type,
		}
		for _, r := range g.children[1:] {
			m.Verbal += " " + word + " " + r.Class.Verbal
			mergedClass.Verbal += " " + word + " " + r.Class.Verbal
			mergedClass.Classes = append(mergedClass.Classes, r.Class)
		}
		merged = append(merged, m)
	}

	out := &Rendering{Type: n.Name, Classes: append(others, merged...)}
	mergedVerbals := make([]string, 0, len(merged))
	for _, m := range merged {
		mergedVerbals = append(mergedVerbals, m.Verbal)
	}
	if len(others) == 0 {
		out.Verbal = "something that " + strings.Join(mergedVerbals, " "+word+" ")
		return out, nil
	}
	otherVerbals := make([]string, 0, len(others))
	for _, r := range others {
		otherVerbals = append(otherVerbals, r.Verbal)
	}
	out.Verbal = strings.Join(otherVerbals, " "+word+" ")
	if len(merged) > 0 {
		if word == "and" {
			// sea food and non-vegetarian product that derives from
			// shark and goldfish
			out.Verbal += " that " + strings.Join(mergedVerbals, " "+word+" ")
		} else {
			// sea food or non-vegetarian product or something that
			// derives from shark or goldfish
			out.Verbal += " or something that " + strings.Join(mergedVerbals, " "+word+" ")
		}
	}
	return out, nil
}

// axiomTop parses an axiom and checks its top-level tag.
func (v *Verbaliser) axiomTop(ax onto.Axiom, tags ...string) (*RangeNode, error) {
	node, err := v.parseTop(ax.String())
	if err != nil {
		return nil, err
	}
	for _, tag := range tags {
		if node.Name == tag {
			return node, nil
		}
	}
	return nil, fmt.Errorf("verbal: axiom %q is not one of %v", ax.String(), tags)
}

// VerbaliseSubsumption verbalises sub ⊑ super, returning both sides.
func (v *Verbaliser) VerbaliseSubsumption(ax onto.SubClassOf) (sub, super *Rendering, err error) {
	node, err := v.axiomTop(ax, TagSubsumption)
	if err != nil {
		return nil, nil, err
	}
	if len(node.Children) != 2 {
		return nil, nil, fmt.Errorf("verbal: malformed subsumption %q", ax.String())
	}
	if sub, err = v.verbaliseNode(node.Children[0]); err != nil {
		return nil, nil, err
	}
	if super, err = v.verbaliseNode(node.Children[1]); err != nil {
		return nil, nil, err
	}
	return sub, super, nil
}

// VerbaliseEquivalence verbalises left ≡ right, returning both sides.
func (v *Verbaliser) VerbaliseEquivalence(ax onto.EquivalentClasses) (left, right *Rendering, err error) {
	node, err := v.axiomTop(ax, TagEquivalence)
	if err != nil {
		return nil, nil, err
	}
	if len(node.Children) != 2 {
		return nil, nil, fmt.Errorf("verbal: malformed equivalence %q", ax.String())
	}
	if left, err = v.verbaliseNode(node.Children[0]); err != nil {
		return nil, nil, err
	}
	if right, err = v.verbaliseNode(node.Children[1]); err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

// VerbaliseClassAssertion verbalises C(x), returning the class and the
// individual.
func (v *Verbaliser) VerbaliseClassAssertion(ax onto.ClassAssertion) (class, individual *Rendering, err error) {
	node, err := v.axiomTop(ax, TagAssertion)
	if err != nil {
		return nil, nil, err
	}
	if len(node.Children) != 2 {
		return nil, nil, fmt.Errorf("verbal: malformed class assertion %q", ax.String())
	}
	if class, err = v.verbaliseNode(node.Children[0]); err != nil {
		return nil, nil, err
	}
	individual = v.verbaliseIRI(node.Children[1], false)
	return class, individual, nil
}

// VerbalisePropertySubsumption verbalises r ⊑ s between object
// properties, where the sub side may be a property chain.
func (v *Verbaliser) VerbalisePropertySubsumption(ax onto.SubObjectPropertyOf) (sub, super *Rendering, err error) {
	node, err := v.axiomTop(ax, TagSubsumption)
	if err != nil {
		return nil, nil, err
	}
	if len(node.Children) != 2 {
		return nil, nil, fmt.Errorf("verbal: malformed property subsumption %q", ax.String())
	}
	if sub, err = v.verbaliseProperty(node.Children[0]); err != nil {
		return nil, nil, err
	}
	if super, err = v.verbaliseProperty(node.Children[1]); err != nil {
		return nil, nil, err
	}
	return sub, super, nil
}

// VerbalisePropertyAssertion verbalises r(x, y).
func (v *Verbaliser) VerbalisePropertyAssertion(ax onto.ObjectPropertyAssertion) (prop, subject, object *Rendering, err error) {
	node, err := v.axiomTop(ax, TagPropAssert)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(node.Children) != 3 {
		return nil, nil, nil, fmt.Errorf("verbal: malformed property assertion %q", ax.String())
	}
	prop = v.verbaliseIRI(node.Children[0], true)
	subject = v.verbaliseIRI(node.Children[1], false)
	object = v.verbaliseIRI(node.Children[2], false)
	return prop, subject, object, nil
}

// VerbaliseDomain verbalises an object property domain axiom.
func (v *Verbaliser) VerbaliseDomain(ax onto.ObjectPropertyDomain) (prop, domain *Rendering, err error) {
	node, err := v.axiomTop(ax, TagDomain)
	if err != nil {
		return nil, nil, err
	}
	if len(node.Children) != 2 {
		return nil, nil, fmt.Errorf("verbal: malformed domain axiom %q", ax.String())
	}
	prop = v.verbaliseIRI(node.Children[0], true)
	if domain, err = v.verbaliseNode(node.Children[1]); err != nil {
		return nil, nil, err
	}
	return prop, domain, nil
}

// VerbaliseRange verbalises an object property range axiom.
func (v *Verbaliser) VerbaliseRange(ax onto.ObjectPropertyRange) (prop, rng *Rendering, err error) {
	node, err := v.axiomTop(ax, TagRange)
	if err != nil {
		return nil, nil, err
	}
	if len(node.Children) != 2 {
		return nil, nil, fmt.Errorf("verbal: malformed range axiom %q", ax.String())
	}
	prop = v.verbaliseIRI(node.Children[0], true)
	if rng, err = v.verbaliseNode(node.Children[1]); err != nil {
		return nil, nil, err
	}
	return prop, rng, nil
}

// Sentence renders a whole axiom as one English sentence.
func (v *Verbaliser) Sentence(ax onto.Axiom) (string, error) {
	switch t := ax.(type) {
	case onto.SubClassOf:
		sub, super, err := v.VerbaliseSubsumption(t)
		if err != nil {
			return "", err
		}
		return "every " + sub.Verbal + " is " + super.Verbal, nil
	case onto.EquivalentClasses:
		left, right, err := v.VerbaliseEquivalence(t)
		if err != nil {
			return "", err
		}
		return left.Verbal + " is equivalent to " + right.Verbal, nil
	case onto.ClassAssertion:
		class, ind, err := v.VerbaliseClassAssertion(t)
		if err != nil {
			return "", err
		}
		return ind.Verbal + " is " + class.Verbal, nil
	case onto.SubObjectPropertyOf:
		sub, super, err := v.VerbalisePropertySubsumption(t)
		if err != nil {
			return "", err
		}
		return "whatever " + sub.Verbal + " something also " + super.Verbal + " it", nil
	case onto.ObjectPropertyAssertion:
		prop, subj, obj, err := v.VerbalisePropertyAssertion(t)
		if err != nil {
			return "", err
		}
		return subj.Verbal + " " + prop.Verbal + " " + obj.Verbal, nil
	case onto.ObjectPropertyDomain:
		prop, domain, err := v.VerbaliseDomain(t)
		if err != nil {
			return "", err
		}
		return "whatever " + prop.Verbal + " something is " + domain.Verbal, nil
	case onto.ObjectPropertyRange:
		prop, rng, err := v.VerbaliseRange(t)
		if err != nil {
			return "", err
		}
		return "whatever something " + prop.Verbal + " is " + rng.Verbal, nil
	}
	return "", fmt.Errorf("verbal: unsupported axiom %q", ax.String())
}
