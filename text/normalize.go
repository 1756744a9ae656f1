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

package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var enclosingCharacters = map[byte]struct{}{
	'(': {},
	')': {},
	'{': {},
	'}': {},
	'[': {},
	']': {},
	'"': {},
}

var sentencePunctuation = map[byte]struct{}{
	':': {},
	';': {},
	',': {},
	'.': {},
	'?': {},
	'!': {},
}

// Normalize canonicalises a label for matching: NFKC normal form,
// lowercased, with enclosing characters and trailing punctuation
// stripped. Two labels that normalise equal are considered a match.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 0 {
		if _, ok := enclosingCharacters[s[0]]; !ok {
			break
		}
		s = s[1:]
	}
	for len(s) > 0 {
		last := s[len(s)-1]
		_, enclosing := enclosingCharacters[last]
		_, punct := sentencePunctuation[last]
		if !enclosing && !punct {
			break
		}
		s = s[:len(s)-1]
	}
	return strings.ToLower(norm.NFKC.String(s))
}

// NormalizedTokens tokenizes the normalised form of s. Segmentation
// errors cannot occur on in-memory strings, so they are swallowed.
func NormalizedTokens(s string) []string {
	tokens, err := Tokenize(Normalize(s))
	if err != nil {
		return nil
	}
	return tokens
}
