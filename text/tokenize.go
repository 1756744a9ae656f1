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

// Package text provides the tokenisation, normalisation and candidate
// selection primitives used by ontology matching.
package text

import "github.com/blevesearch/segment"

// nonAlphaNumeric is the segment type for punctuation and whitespace.
const nonAlphaNumeric = 0

// Tokenize splits s into word tokens following the Unicode word
// segmentation rules. Punctuation and whitespace segments are dropped.
func Tokenize(s string) ([]string, error) {
	segmenter := segment.NewWordSegmenterDirect([]byte(s))
	var out []string
	for segmenter.Segment() {
		if segmenter.Type() == nonAlphaNumeric {
			continue
		}
		out = append(out, segmenter.Text())
	}
	if err := segmenter.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
