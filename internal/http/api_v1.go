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

package http

import (
	"net/http"
	"net/url"

	"github.com/cayleygraph/quad"
	"github.com/julienschmidt/httprouter"

	"github.com/ontokit/ontokit/onto"
	"github.com/ontokit/ontokit/verbal"
)

// API serves reasoning and verbalisation over a loaded ontology.
type API struct {
	onto       *onto.Ontology
	reasoner   *onto.Reasoner
	verbaliser *verbal.Verbaliser
}

// NewAPI indexes the ontology for serving.
func NewAPI(o *onto.Ontology) *API {
	return &API{
		onto:       o,
		reasoner:   onto.NewReasoner(o),
		verbaliser: verbal.New(o, verbal.Options{Lowercase: true, AutoCorrect: true}),
	}
}

// RegisterOn mounts the v1 API routes.
func (api *API) RegisterOn(r *httprouter.Router) {
	r.GET("/api/v1/classes/:iri/super", LogRequest("/api/v1/classes/:iri/super", api.ServeSuperClasses))
	r.GET("/api/v1/classes/:iri/sub", LogRequest("/api/v1/classes/:iri/sub", api.ServeSubClasses))
	r.GET("/api/v1/classes/:iri/siblings", LogRequest("/api/v1/classes/:iri/siblings", api.ServeSiblings))
	r.GET("/api/v1/classes/:iri/instances", LogRequest("/api/v1/classes/:iri/instances", api.ServeInstances))
	r.GET("/api/v1/classes/:iri/verbalise", LogRequest("/api/v1/classes/:iri/verbalise", api.ServeVerbalise))
	r.GET("/api/v1/entities/:iri/labels", LogRequest("/api/v1/entities/:iri/labels", api.ServeLabels))
	r.GET("/api/v1/subsumption", LogRequest("/api/v1/subsumption", api.ServeSubsumption))
	r.GET("/api/v1/disjoint", LogRequest("/api/v1/disjoint", api.ServeDisjoint))
	r.GET("/api/v1/stats", LogRequest("/api/v1/stats", api.ServeStats))
}

func classParam(params httprouter.Params) (quad.IRI, error) {
	iri, err := url.PathUnescape(params.ByName("iri"))
	if err != nil {
		return "", err
	}
	return quad.IRI(iri).Full(), nil
}

func iriStrings(iris []quad.IRI) []string {
	out := make([]string, 0, len(iris))
	for _, iri := range iris {
		out = append(out, string(iri))
	}
	return out
}

func direct(req *http.Request) bool {
	return req.URL.Query().Get("direct") == "true"
}

func (api *API) serveClassList(w http.ResponseWriter, req *http.Request, params httprouter.Params,
	list func(c quad.IRI, direct bool) []quad.IRI) {
	c, err := classParam(params)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err)
		return
	}
	if !api.onto.IsClass(c) {
		jsonError(w, http.StatusNotFound, "unknown class: "+string(c))
		return
	}
	writeJSON(w, map[string][]string{"classes": iriStrings(list(c, direct(req)))})
}

func (api *API) ServeSuperClasses(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	api.serveClassList(w, req, params, api.reasoner.SuperClasses)
}

func (api *API) ServeSubClasses(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	api.serveClassList(w, req, params, api.reasoner.SubClasses)
}

func (api *API) ServeSiblings(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	api.serveClassList(w, req, params, func(c quad.IRI, _ bool) []quad.IRI {
		return api.reasoner.Siblings(c)
	})
}

func (api *API) ServeInstances(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	c, err := classParam(params)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err)
		return
	}
	if !api.onto.IsClass(c) {
		jsonError(w, http.StatusNotFound, "unknown class: "+string(c))
		return
	}
	writeJSON(w, map[string][]string{
		"individuals": iriStrings(api.reasoner.Instances(c, direct(req))),
	})
}

func (api *API) ServeVerbalise(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	c, err := classParam(params)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err)
		return
	}
	if !api.onto.IsClass(c) {
		jsonError(w, http.StatusNotFound, "unknown class: "+string(c))
		return
	}
	sentences := []string{}
	for _, ax := range api.onto.SubClassAxioms() {
		if named, ok := ax.Sub.(onto.NamedClass); ok && named.IRI() == c {
			if s, err := api.verbaliser.Sentence(ax); err == nil {
				sentences = append(sentences, s)
			}
		}
	}
	for _, ax := range api.onto.EquivalentClassAxioms() {
		if named, ok := ax.Left.(onto.NamedClass); ok && named.IRI() == c {
			if s, err := api.verbaliser.Sentence(ax); err == nil {
				sentences = append(sentences, s)
			}
		}
	}
	writeJSON(w, map[string][]string{"sentences": sentences})
}

func (api *API) ServeLabels(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
	iri, err := classParam(params)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err)
		return
	}
	labels := api.onto.Labels(iri)
	if labels == nil {
		labels = []string{}
	}
	writeJSON(w, map[string][]string{"labels": labels})
}

func (api *API) ServeSubsumption(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	sub := req.URL.Query().Get("sub")
	sup := req.URL.Query().Get("sup")
	if sub == "" || sup == "" {
		jsonError(w, http.StatusBadRequest, "both sub and sup are required")
		return
	}
	writeJSON(w, map[string]bool{
		"entailed": api.reasoner.IsSubClassOf(quad.IRI(sub), quad.IRI(sup)),
	})
}

func (api *API) ServeDisjoint(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	a := req.URL.Query().Get("a")
	b := req.URL.Query().Get("b")
	if a == "" || b == "" {
		jsonError(w, http.StatusBadRequest, "both a and b are required")
		return
	}
	writeJSON(w, map[string]bool{
		"disjoint": api.reasoner.AreDisjoint(quad.IRI(a), quad.IRI(b)),
	})
}

// Stats summarises the loaded ontology.
type Stats struct {
	IRI                  string `json:"iri,omitempty"`
	Quads                int    `json:"quads"`
	Classes              int    `json:"classes"`
	ObjectProperties     int    `json:"object_properties"`
	DataProperties       int    `json:"data_properties"`
	AnnotationProperties int    `json:"annotation_properties"`
	Individuals          int    `json:"individuals"`
	SubClassAxioms       int    `json:"subclass_axioms"`
	EquivalenceAxioms    int    `json:"equivalence_axioms"`
	DisjointnessAxioms   int    `json:"disjointness_axioms"`
	ClassAssertions      int    `json:"class_assertions"`
}

func (api *API) ServeStats(w http.ResponseWriter, req *http.Request, _ httprouter.Params) {
	o := api.onto
	writeJSON(w, Stats{
		IRI:                  string(o.IRI()),
		Quads:                o.Size(),
		Classes:              len(o.Classes()),
		ObjectProperties:     len(o.ObjectProperties()),
		DataProperties:       len(o.DataProperties()),
		AnnotationProperties: len(o.AnnotationProperties()),
		Individuals:          len(o.Individuals()),
		SubClassAxioms:       len(o.SubClassAxioms()),
		EquivalenceAxioms:    len(o.EquivalentClassAxioms()),
		DisjointnessAxioms:   len(o.DisjointClassAxioms()),
		ClassAssertions:      len(o.ClassAssertionAxioms()),
	})
}
