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

import "github.com/cayleygraph/quad/voc"

// Well-known namespaces of the ontologies this toolkit is typically
// pointed at, registered so that values round-trip through the short
// prefixed form.
var namespaces = map[string]string{
	// largebio
	"fma:":    "http://bioontology.org/projects/ontologies/fma/fmaOwlDlComponent_2_0#",
	"nci:":    "http://ncicb.nci.nih.gov/xml/owl/EVS/Thesaurus.owl#",
	"snomed:": "http://snomed.info/id/",

	// Mondo
	"umls:":       "http://linkedlifedata.com/resource/umls/id/",
	"hgnc:":       "http://identifiers.org/hgnc/",
	"mesh:":       "http://identifiers.org/mesh/",
	"snomedct:":   "http://identifiers.org/snomedct/",
	"obo:":        "http://purl.obolibrary.org/obo/",
	"ordo:":       "http://www.orpha.net/ORDO/",
	"efo:":        "http://www.ebi.ac.uk/efo/",
	"omim_entry:": "https://omim.org/entry/",
	"omim_pheno:": "https://omim.org/phenotypicSeries/",
	"meddra:":     "http://identifiers.org/meddra/",
	"medgen:":     "http://identifiers.org/medgen/",
}

func init() {
	for pref, ns := range namespaces {
		voc.RegisterPrefix(pref, ns)
	}
}
