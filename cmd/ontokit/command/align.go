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
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ontokit/ontokit/align"
	"github.com/ontokit/ontokit/olog"
	"github.com/ontokit/ontokit/onto"
)

func NewMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match <source> <target>",
		Short: "Match two ontologies by class labels, writing mapping TSV.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString(flagLoadFormat)
			srcOnto, err := onto.Load(args[0], format)
			if err != nil {
				return err
			}
			tgtOnto, err := onto.Load(args[1], format)
			if err != nil {
				return err
			}

			m := align.NewStringMatcher(srcOnto, tgtOnto)
			m.CandPool = viper.GetInt(KeyMatchCandidates)
			m.NBest = viper.GetInt(KeyMatchNBest)
			m.UseEditDist = viper.GetBool(KeyMatchEditDist)

			var store *align.Store
			run, _ := cmd.Flags().GetString("run")
			if path := viper.GetString(KeyStorePath); path != "" {
				if store, err = align.OpenStore(path); err != nil {
					return err
				}
				defer store.Close()
			}

			var maps []align.Mapping
			skipped := 0
			for _, c := range srcOnto.Classes() {
				classMaps, err := m.MatchClass(c)
				if errors.Is(err, align.ErrNoCandidates) {
					skipped++
					continue
				} else if err != nil {
					return err
				}
				maps = append(maps, classMaps...)
				if store != nil {
					if err := store.Put(run, string(c), classMaps); err != nil {
						return err
					}
				}
			}
			if skipped > 0 {
				olog.Infof("no candidates for %d source classes", skipped)
			}
			align.SortByScore(maps)

			out, closeOut, err := openOutput(cmd)
			if err != nil {
				return err
			}
			if err := align.WriteMappings(out, maps); err != nil {
				closeOut()
				return err
			}
			return closeOut()
		},
	}
	registerDumpFlags(cmd)
	cmd.Flags().String(flagLoadFormat, "", "quad file format of the input ontologies")
	cmd.Flags().String("run", "default", "run name used to key the mapping store")
	return cmd
}

func NewEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate mappings: global matching (P/R/F1) or local ranking (MRR, Hits@K).",
		RunE: func(cmd *cobra.Command, args []string) error {
			pred, _ := cmd.Flags().GetString("pred")
			cands, _ := cmd.Flags().GetString("cands")
			switch {
			case pred != "" && cands != "":
				return errors.New("--pred and --cands are mutually exclusive")
			case pred != "":
				ref, _ := cmd.Flags().GetString("ref")
				if ref == "" {
					return errors.New("--ref is required with --pred")
				}
				nullRef, _ := cmd.Flags().GetString("null-ref")
				threshold, _ := cmd.Flags().GetFloat64("threshold")
				res, err := align.MatchingEval(pred, ref, nullRef, nil, threshold)
				if err != nil {
					return err
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
			case cands != "":
				ks, _ := cmd.Flags().GetIntSlice("hits")
				biollm, _ := cmd.Flags().GetBool("biollm")
				var (
					res map[string]float64
					err error
				)
				if biollm {
					res, err = align.BioLLMEval(cands, ks...)
				} else {
					res, err = align.RankingEval(cands, ks...)
				}
				if err != nil {
					return err
				}
				keys := make([]string, 0, len(res))
				for k := range res {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %.4f\n", k, res[k])
				}
				return nil
			}
			return errors.New("either --pred or --cands must be specified")
		},
	}
	cmd.Flags().String("pred", "", "prediction mapping TSV for matching evaluation")
	cmd.Flags().String("ref", "", "reference mapping TSV")
	cmd.Flags().String("null-ref", "", "null reference mapping TSV to exclude")
	cmd.Flags().Float64("threshold", 0, "drop predictions scoring below this value")
	cmd.Flags().String("cands", "", "candidate mapping TSV for ranking evaluation")
	cmd.Flags().IntSlice("hits", []int{1, 5, 10}, "Hits@K cut-offs")
	cmd.Flags().Bool("biollm", false, "evaluate answer-flagged candidates with P/R/F1 as well")
	return cmd
}
