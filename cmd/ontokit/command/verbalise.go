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
	"encoding/json"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ontokit/ontokit/olog"
	"github.com/ontokit/ontokit/onto"
	"github.com/ontokit/ontokit/verbal"
)

type verbalisation struct {
	Axiom    string `json:"axiom"`
	Sentence string `json:"sentence"`
}

func NewVerbaliseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "verbalise",
		Aliases: []string{"verbalize"},
		Short:   "Verbalise class axioms as English sentences in JSON lines.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			v := verbal.New(o, verbal.Options{
				Lowercase:       true,
				AutoCorrect:     true,
				KeepIRI:         viper.GetBool(KeyVerbKeepIRI),
				QuantifierWords: viper.GetBool(KeyVerbQuantifiers),
			})

			var keep map[quad.IRI]bool
			if classFile, _ := cmd.Flags().GetString("classes"); classFile != "" {
				iris, err := readIRIFile(classFile)
				if err != nil {
					return err
				}
				keep = make(map[quad.IRI]bool, len(iris))
				for _, iri := range iris {
					keep[iri.Full()] = true
				}
			}
			about := func(c onto.ClassExpression) bool {
				if keep == nil {
					return true
				}
				named, ok := c.(onto.NamedClass)
				return ok && keep[named.IRI().Full()]
			}

			var axioms []onto.Axiom
			for _, ax := range o.SubClassAxioms() {
				if about(ax.Sub) {
					axioms = append(axioms, ax)
				}
			}
			for _, ax := range o.EquivalentClassAxioms() {
				if about(ax.Left) || about(ax.Right) {
					axioms = append(axioms, ax)
				}
			}

			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(out)
			enc := json.NewEncoder(w)
			failed := 0
			for _, ax := range axioms {
				sent, err := v.Sentence(ax)
				if err != nil {
					failed++
					continue
				}
				if err := enc.Encode(verbalisation{Axiom: ax.String(), Sentence: sent}); err != nil {
					closeOut()
					return err
				}
			}
			if err := w.Flush(); err != nil {
				closeOut()
				return err
			}
			if failed > 0 {
				olog.Warningf("could not verbalise %d of %d axioms", failed, len(axioms))
			}
			return closeOut()
		},
	}
	registerLoadFlags(cmd)
	registerDumpFlags(cmd)
	cmd.Flags().String("classes", "", "file with one class IRI per line to restrict verbalisation to")
	return cmd
}
