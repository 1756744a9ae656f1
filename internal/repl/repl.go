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

// Package repl provides an interactive shell over a loaded ontology.
package repl

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/peterh/liner"

	"github.com/ontokit/ontokit/onto"
	"github.com/ontokit/ontokit/verbal"
)

const (
	ps1 = "ontokit> "

	history = ".ontokit_history"
)

// Shell evaluates reasoning commands against one ontology.
type Shell struct {
	onto       *onto.Ontology
	reasoner   *onto.Reasoner
	verbaliser *verbal.Verbaliser
}

func New(o *onto.Ontology) *Shell {
	return &Shell{
		onto:       o,
		reasoner:   onto.NewReasoner(o),
		verbaliser: verbal.New(o, verbal.Options{Lowercase: true, AutoCorrect: true}),
	}
}

const usage = `commands:
  super <iri> [direct]      super-classes
  sub <iri> [direct]        sub-classes
  siblings <iri>            sibling classes
  instances <iri> [direct]  individuals of a class
  label <iri>               rdfs:label values
  verbalise <iri>           English sentences for the class axioms
  check <sub> <super>       is the subsumption entailed
  disjoint <a> <b>          are two classes disjoint
  stats                     ontology summary
  exit                      leave the shell`

// Eval runs one command line, writing its output to w. It reports
// whether the shell should exit.
func (s *Shell) Eval(w io.Writer, line string) bool {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(w, usage)
	case "super":
		s.classList(w, args, s.reasoner.SuperClasses)
	case "sub":
		s.classList(w, args, s.reasoner.SubClasses)
	case "siblings":
		s.classList(w, args, func(c quad.IRI, _ bool) []quad.IRI {
			return s.reasoner.Siblings(c)
		})
	case "instances":
		s.classList(w, args, s.reasoner.Instances)
	case "label":
		if len(args) != 1 {
			fmt.Fprintln(w, "usage: label <iri>")
			return false
		}
		for _, l := range s.onto.Labels(quad.IRI(args[0])) {
			fmt.Fprintln(w, l)
		}
	case "verbalise":
		s.verbalise(w, args)
	case "check":
		if len(args) != 2 {
			fmt.Fprintln(w, "usage: check <sub> <super>")
			return false
		}
		fmt.Fprintln(w, s.reasoner.IsSubClassOf(quad.IRI(args[0]), quad.IRI(args[1])))
	case "disjoint":
		if len(args) != 2 {
			fmt.Fprintln(w, "usage: disjoint <a> <b>")
			return false
		}
		fmt.Fprintln(w, s.reasoner.AreDisjoint(quad.IRI(args[0]), quad.IRI(args[1])))
	case "stats":
		fmt.Fprintf(w, "quads: %d\nclasses: %d\nobject properties: %d\nindividuals: %d\n",
			s.onto.Size(), len(s.onto.Classes()),
			len(s.onto.ObjectProperties()), len(s.onto.Individuals()))
	default:
		fmt.Fprintf(w, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (s *Shell) classList(w io.Writer, args []string, list func(quad.IRI, bool) []quad.IRI) {
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(w, "usage: <command> <iri> [direct]")
		return
	}
	c := quad.IRI(args[0]).Full()
	if !s.onto.IsClass(c) {
		fmt.Fprintf(w, "unknown class %s\n", c)
		return
	}
	direct := len(args) == 2 && args[1] == "direct"
	for _, iri := range list(c, direct) {
		fmt.Fprintln(w, string(iri))
	}
}

func (s *Shell) verbalise(w io.Writer, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(w, "usage: verbalise <iri>")
		return
	}
	c := quad.IRI(args[0]).Full()
	if !s.onto.IsClass(c) {
		fmt.Fprintf(w, "unknown class %s\n", c)
		return
	}
	for _, ax := range s.onto.SubClassAxioms() {
		if named, ok := ax.Sub.(onto.NamedClass); ok && named.IRI() == c {
			s.sentence(w, ax)
		}
	}
	for _, ax := range s.onto.EquivalentClassAxioms() {
		if named, ok := ax.Left.(onto.NamedClass); ok && named.IRI() == c {
			s.sentence(w, ax)
		}
	}
}

func (s *Shell) sentence(w io.Writer, ax onto.Axiom) {
	sent, err := s.verbaliser.Sentence(ax)
	if err != nil {
		fmt.Fprintf(w, "cannot verbalise %s: %v\n", ax.String(), err)
		return
	}
	fmt.Fprintln(w, sent)
}

// Run reads commands until EOF or exit, keeping history across runs.
func (s *Shell) Run() error {
	term, err := terminal(history)
	if os.IsNotExist(err) {
		fmt.Printf("creating new history file: %q\n", history)
	}
	defer persist(term, history)

	for {
		line, err := term.Prompt(ps1)
		if err != nil {
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		term.AppendHistory(line)
		if s.Eval(os.Stdout, line) {
			return nil
		}
	}
}

func terminal(path string) (*liner.State, error) {
	term := liner.NewLiner()

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, os.Kill)
		<-c

		if err := persist(term, history); err != nil {
			fmt.Fprintf(os.Stderr, "failed to properly clean up terminal: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}()

	f, err := os.Open(path)
	if err != nil {
		return term, err
	}
	defer f.Close()
	_, err = term.ReadHistory(f)
	return term, err
}

func persist(term *liner.State, path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0666)
	if err != nil {
		return fmt.Errorf("could not open %q to append history: %v", path, err)
	}
	defer f.Close()
	if _, err = term.WriteHistory(f); err != nil {
		return fmt.Errorf("could not write history to %q: %v", path, err)
	}
	return term.Close()
}
