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
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cayleygraph/quad"
	"github.com/cayleygraph/quad/nquads"

	"github.com/ontokit/ontokit/internal/decompressor"
	"github.com/ontokit/ontokit/olog"

	// Register all supported quad formats.
	_ "github.com/cayleygraph/quad/dot"
	_ "github.com/cayleygraph/quad/gml"
	_ "github.com/cayleygraph/quad/graphml"
	_ "github.com/cayleygraph/quad/json"
	_ "github.com/cayleygraph/quad/jsonld"
	_ "github.com/cayleygraph/quad/pquads"
)

// Load reads an ontology from a local file or an http(s) URL. The quad
// format is picked by name when typ is non-empty, otherwise by the file
// extension, falling back to nquads. Gzip and bzip2 input is detected
// and decompressed transparently.
func Load(path, typ string) (*Ontology, error) {
	var r io.Reader

	u, err := url.Parse(path)
	if err != nil || u.Scheme == "file" || u.Scheme == "" {
		// Don't alter relative URL path or non-URL path parameter.
		if u != nil && u.Scheme != "" && err == nil {
			// Recovery heuristic for mistyping "file://path/to/file".
			path = filepath.Join(u.Host, u.Path)
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("could not open file %q: %v", path, err)
		}
		defer f.Close()
		r = f
	} else {
		res, err := http.Get(path)
		if err != nil {
			return nil, fmt.Errorf("could not get resource <%s>: %v", u, err)
		}
		defer res.Body.Close()
		r = res.Body
	}
	if typ == "" {
		typ = formatForPath(path)
	}
	return ReadFrom(r, typ)
}

func formatForPath(path string) string {
	ext := filepath.Ext(path)
	if ext == ".gz" || ext == ".bz2" {
		ext = filepath.Ext(strings.TrimSuffix(path, ext))
	}
	if f := quad.FormatByExt(ext); f != nil {
		return f.Name
	}
	return ""
}

// ReadFrom reads an ontology from r in the given quad format. An empty
// format means nquads.
func ReadFrom(r io.Reader, typ string) (*Ontology, error) {
	r, err := decompressor.New(r)
	if err != nil {
		if err == io.EOF {
			return New(), nil
		}
		return nil, err
	}

	var qr quad.ReadCloser
	switch typ {
	case "", "nquads":
		qr = nquads.NewReader(r, false)
	default:
		rf := quad.FormatByName(typ)
		if rf == nil {
			return nil, fmt.Errorf("unknown quad format %q", typ)
		} else if rf.Reader == nil {
			return nil, fmt.Errorf("decoding of %q is not supported", typ)
		}
		qr = rf.Reader(r)
	}
	defer qr.Close()

	o := New()
	n, dup := 0, 0
	for {
		q, err := qr.ReadQuad()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("onto: failed to load data: %v", err)
		}
		if err := o.AddQuad(q); err == ErrQuadExists {
			dup++
			continue
		} else if err != nil {
			return nil, err
		}
		n++
	}
	if olog.V(1) {
		olog.Infof("read %d quads (%d duplicates)", n, dup)
	}
	return o, nil
}
