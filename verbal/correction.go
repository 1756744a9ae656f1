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

package verbal

import "strings"

// prepositions that should not end a noun phrase.
var prepositions = map[string]struct{}{
	"about": {}, "above": {}, "across": {}, "after": {}, "against": {},
	"along": {}, "among": {}, "around": {}, "at": {}, "before": {},
	"behind": {}, "below": {}, "beneath": {}, "beside": {}, "between": {},
	"by": {}, "during": {}, "for": {}, "from": {}, "in": {}, "into": {},
	"like": {}, "near": {}, "of": {}, "off": {}, "on": {}, "over": {},
	"through": {}, "to": {}, "under": {}, "up": {}, "with": {}, "without": {},
}

// verbHeads are active verb forms commonly leading object property
// names in biomedical and general ontologies. A property name starting
// with one of these reads as a verb phrase already and needs no "is".
var verbHeads = map[string]struct{}{
	"has": {}, "have": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"acts": {}, "affects": {}, "binds": {}, "causes": {}, "connects": {},
	"contains": {}, "derives": {}, "develops": {}, "enables": {},
	"encodes": {}, "follows": {}, "includes": {}, "inheres": {},
	"inhibits": {}, "interacts": {}, "involves": {}, "occurs": {},
	"overlaps": {}, "participates": {}, "precedes": {}, "produces": {},
	"realizes": {}, "regulates": {}, "results": {}, "treats": {},
	"uses": {},
}

// fixNounPhrase drops a trailing preposition, e.g. "part of" -> "part".
func fixNounPhrase(s string) string {
	words := strings.Split(s, " ")
	if len(words) > 1 {
		if _, ok := prepositions[words[len(words)-1]]; ok {
			return strings.Join(words[:len(words)-1], " ")
		}
	}
	return s
}

// fixVerbPhrase prepends "is" to property names that read as nouns,
// adjectives or passive participles, e.g. "part of" -> "is part of" and
// "derived from" -> "is derived from". Names already led by an active
// verb are left alone.
func fixVerbPhrase(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	first := strings.ToLower(words[0])
	if _, ok := verbHeads[first]; ok {
		return s
	}
	return "is " + s
}
