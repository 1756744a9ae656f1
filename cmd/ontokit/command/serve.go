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
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	ontohttp "github.com/ontokit/ontokit/internal/http"
	"github.com/ontokit/ontokit/internal/repl"
	"github.com/ontokit/ontokit/version"
)

func NewReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Drop into an interactive reasoner shell over an ontology.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			return repl.New(o).Run()
		},
	}
	registerLoadFlags(cmd)
	return cmd
}

func NewHTTPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "http",
		Short: "Serve the ontology API over HTTP.",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := loadOntology(cmd, args)
			if err != nil {
				return err
			}
			return ontohttp.ListenAndServe(viper.GetString(KeyHTTPAddr), ontohttp.NewAPI(o))
		},
	}
	registerLoadFlags(cmd)
	return cmd
}

func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Version information.",
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "ontokit %s\n", version.Version)
			fmt.Fprintf(w, "git hash: %s\n", version.GitHash)
			if version.BuildDate != "" {
				fmt.Fprintf(w, "build date: %s\n", version.BuildDate)
			}
		},
	}
}
