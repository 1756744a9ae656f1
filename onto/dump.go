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
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cayleygraph/quad"
)

// Dump writes the ontology to a file in the given quad format
// (".gz" supported, "-" for stdout). An empty format means nquads.
func (o *Ontology) Dump(outFile, typ string) error {
	var f *os.File
	if outFile == "-" {
		f = os.Stdout
	} else {
		var err error
		f, err = os.Create(outFile)
		if err != nil {
			return fmt.Errorf("could not open file %q: %v", outFile, err)
		}
		defer f.Close()
	}

	var w io.Writer = f
	if filepath.Ext(outFile) == ".gz" {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}
	return o.WriteTo(w, typ)
}

// WriteTo writes all quads to w in the given quad format.
func (o *Ontology) WriteTo(w io.Writer, typ string) error {
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
	for _, q := range o.Quads() {
		if err := qw.WriteQuad(q); err != nil {
			qw.Close()
			return err
		}
	}
	return qw.Close()
}
