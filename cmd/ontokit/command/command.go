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

// Package command implements the ontokit CLI commands.
package command

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ontokit/ontokit/onto"
)

// Viper keys bound to persistent config.
const (
	KeyHTTPAddr        = "http.addr"
	KeyStorePath       = "store.path"
	KeyMatchCandidates = "match.candidates"
	KeyMatchNBest      = "match.nbest"
	KeyMatchEditDist   = "match.edit_distance"
	KeyVerbQuantifiers = "verbalise.quantifiers"
	KeyVerbKeepIRI     = "verbalise.keep_iri"
)

const (
	flagLoad       = "load"
	flagLoadFormat = "load_format"
	flagDump       = "dump"
	flagDumpFormat = "dump_format"
)

func registerLoadFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagLoad, "i", "", `ontology file to load (".gz" and ".bz2" supported, http(s) URLs accepted)`)
	var names []string
	for _, f := range quad.Formats() {
		if f.Reader != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	cmd.Flags().String(flagLoadFormat, "", `quad file format to use for loading instead of auto-detection ("`+strings.Join(names, `", "`)+`")`)
}

func registerDumpFlags(cmd *cobra.Command) {
	cmd.Flags().StringP(flagDump, "o", "-", `output file (".gz" supported, "-" for stdout)`)
	var names []string
	for _, f := range quad.Formats() {
		if f.Writer != nil {
			names = append(names, f.Name)
		}
	}
	sort.Strings(names)
	cmd.Flags().String(flagDumpFormat, "", `quad file format to use instead of auto-detection ("`+strings.Join(names, `", "`)+`")`)
}

// loadOntology reads the ontology named by the load flag or the first
// positional argument.
func loadOntology(cmd *cobra.Command, args []string) (*onto.Ontology, error) {
	load, _ := cmd.Flags().GetString(flagLoad)
	if load == "" && len(args) > 0 {
		load = args[0]
	}
	if load == "" {
		return nil, errors.New("an ontology file must be specified")
	}
	format, _ := cmd.Flags().GetString(flagLoadFormat)
	return onto.Load(load, format)
}

// openOutput opens the dump flag target, with "-" meaning stdout.
// The returned closer is a no-op for stdout.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString(flagDump)
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("could not create %q: %v", path, err)
	}
	if filepath.Ext(path) == ".gz" {
		gz := gzip.NewWriter(f)
		return gz, func() error {
			if err := gz.Close(); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		}, nil
	}
	return f, f.Close, nil
}

func writeQuads(w io.Writer, typ string, quads []quad.Quad) error {
	if typ == "" {
		typ = "nquads"
	}
	format := quad.FormatByName(typ)
	if format == nil {
		return fmt.Errorf("unsupported format: %q", typ)
	} else if format.Writer == nil {
		return fmt.Errorf("encoding in %s format is not supported", typ)
	}
	qw := format.Writer(w)
	for _, q := range quads {
		if err := qw.WriteQuad(q); err != nil {
			qw.Close()
			return err
		}
	}
	return qw.Close()
}

// NewRootCmd assembles the ontokit command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ontokit",
		Short:         "ontokit is a toolkit for processing OWL ontologies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to an explicit configuration file")
	root.AddCommand(
		NewStatsCmd(),
		NewConvertCmd(),
		NewPruneCmd(),
		NewProjectCmd(),
		NewNormaliseCmd(),
		NewVerbaliseCmd(),
		NewMatchCmd(),
		NewEvalCmd(),
		NewReplCmd(),
		NewHTTPCmd(),
		NewVersionCmd(),
	)
	return root
}

// LoadConfig discovers and reads the viper config: an explicit file,
// or ontokit.{json,yaml,toml} in ., $HOME or /etc. Environment
// variables with the ONTOKIT prefix override file values.
func LoadConfig(file string) error {
	viper.SetEnvPrefix("ONTOKIT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyHTTPAddr, "127.0.0.1:64210")
	viper.SetDefault(KeyMatchCandidates, 200)
	viper.SetDefault(KeyMatchNBest, 10)

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.SetConfigName("ontokit")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath("/etc")
	}
	err := viper.ReadInConfig()
	if _, missing := err.(viper.ConfigFileNotFoundError); missing && file == "" {
		return nil
	}
	return err
}
