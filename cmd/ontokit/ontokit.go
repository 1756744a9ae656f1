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

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/ontokit/ontokit/cmd/ontokit/command"

	// Route olog through glog.
	_ "github.com/ontokit/ontokit/olog/glog"
)

func main() {
	defer glog.Flush()

	root := command.NewRootCmd()
	// Expose glog's -v, -logtostderr and friends as persistent flags.
	root.PersistentFlags().AddGoFlagSet(flag.CommandLine)

	cobraPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("config")
		if err := command.LoadConfig(file); err != nil {
			return err
		}
		if cobraPreRun != nil {
			return cobraPreRun(cmd, args)
		}
		return nil
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
