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

package command

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"

	"github.com/ontokit/ontokit/olog"
	"github.com/ontokit/ontokit/onto"
)

func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print entity and axiom counts for an ontology.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if iri := o.IRI(); iri != "" {
				fmt.Fprintf(w, "ontology: %s\n", iri)
			}
			fmt.Fprintf(w, "quads: %d\n", o.Size())
			fmt.Fprintf(w, "classes: %d\n", len(o.Classes()))
			fmt.Fprintf(w, "object properties: %d\n", len(o.ObjectProperties()))
			fmt.Fprintf(w, "data properties: %d\n", len(o.DataProperties()))
			fmt.Fprintf(w, "annotation properties: %d\n", len(o.AnnotationProperties()))
			fmt.Fprintf(w, "individuals: %d\n", len(o.Individuals()))
			fmt.Fprintf(w, "subclass axioms: %d\n", len(o.SubClassAxioms()))
			fmt.Fprintf(w, "equivalence axioms: %d\n", len(o.EquivalentClassAxioms()))
			fmt.Fprintf(w, "disjointness axioms: %d\n", len(o.DisjointClassAxioms()))
			fmt.Fprintf(w, "class assertions: %d\n", len(o.ClassAssertionAxioms()))
			return nil
		},
	}
	registerLoadFlags(cmd)
	return cmd
}

func NewConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "convert",
		Aliases: []string{"conv", "dump"},
		Short:   "Convert an ontology between supported quad formats.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString(flagDumpFormat)
			if err := o.WriteTo(out, format); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	return cmd
}

func NewPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove classes from an ontology, reconnecting the hierarchy.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			classFile, _ := cmd.Flags().GetString("classes")
			namespace, _ := cmd.Flags().GetString("keep-namespace")
			if classFile == "" && namespace == "" {
				return errors.New("either --classes or --keep-namespace must be specified")
			}
			if classFile != "" {
				remove, err := readIRIFile(classFile)
				if err != nil {
					return err
				}
				o.Prune(remove)
				olog.Infof("pruned %d classes", len(remove))
			}
			if namespace != "" {
				removed := o.KeepNamespace(namespace)
				olog.Infof("pruned %d classes outside %q", removed, namespace)
			}
			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString(flagDumpFormat)
			if err := o.WriteTo(out, format); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	cmd.Flags().String("classes", "", "file with one class IRI per line to remove")
	cmd.Flags().String("keep-namespace", "", "remove every class outside this namespace")
	return cmd
}

func NewProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project an ontology onto a plain triple graph.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			literals, _ := cmd.Flags().GetBool("literals")
			namespace, _ := cmd.Flags().GetString("namespace")
			p := onto.Projector{IncludeLiterals: literals, Namespace: namespace}
			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString(flagDumpFormat)
			if err := writeQuads(out, format, p.Project(o)); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	cmd.Flags().Bool("literals", false, "include annotation literals in the projection")
	cmd.Flags().String("namespace", "", "only project subjects with this IRI prefix")
	return cmd
}

func NewNormaliseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "normalise",
		Aliases: []string{"normalize"},
		Short:   "Normalise the EL part of an ontology into simple subsumptions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			tbox := onto.Normalise(o)
			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(out)
			for _, ax := range tbox.Axioms {
				fmt.Fprintln(w, ax.String())
			}
			if err := w.Flush(); err != nil {
				closeOut()
				return err
			}
			olog.Infof("normalised %d axioms, %d fresh names, %d non-EL axioms skipped",
				len(tbox.Axioms), len(tbox.Fresh), tbox.Skipped)
			return closeOut()
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	return cmd
}

func readIRIFile(path string) ([]quad.IRI, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []quad.IRI
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "<")
		line = strings.TrimSuffix(line, ">")
		out = append(out, quad.IRI(line))
	}
	return out, sc.Err()
}
