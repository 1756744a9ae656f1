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
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/cayleygraph/quad"
	"github.com/phayes/freeport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ontokit/ontokit/onto"
)

const ex = "http://example.com/onto/"

func testOntology() *onto.Ontology {
	mkQuad := func(s, p string, o quad.Value) quad.Quad {
		return quad.Quad{Subject: quad.IRI(s), Predicate: quad.IRI(p), Object: o}
	}
	return onto.New(
		mkQuad(ex+"animal", "rdf:type", quad.IRI(onto.ClassType)),
		mkQuad(ex+"mammal", "rdf:type", quad.IRI(onto.ClassType)),
		mkQuad(ex+"fish", "rdf:type", quad.IRI(onto.ClassType)),
		mkQuad(ex+"dog", "rdf:type", quad.IRI(onto.ClassType)),
		mkQuad(ex+"mammal", "rdfs:subClassOf", quad.IRI(ex+"animal")),
		mkQuad(ex+"fish", "rdfs:subClassOf", quad.IRI(ex+"animal")),
		mkQuad(ex+"dog", "rdfs:subClassOf", quad.IRI(ex+"mammal")),
		mkQuad(ex+"mammal", onto.DisjointWith, quad.IRI(ex+"fish")),
		mkQuad(ex+"rex", "rdf:type", quad.IRI(onto.NamedIndividualType)),
		mkQuad(ex+"rex", "rdf:type", quad.IRI(ex+"dog")),
		mkQuad(ex+"dog", "rdfs:label", quad.String("dog")),
		mkQuad(ex+"mammal", "rdfs:label", quad.String("mammal")),
	)
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(SetupRoutes(NewAPI(testOntology())))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestSuperClasses(t *testing.T) {
	srv := testServer(t)
	var got map[string][]string
	code := getJSON(t, srv.URL+"/api/v1/classes/"+url.PathEscape(ex+"dog")+"/super?direct=true", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{ex + "mammal"}, got["classes"])
}

func TestSuperClassesInferred(t *testing.T) {
	srv := testServer(t)
	var got map[string][]string
	code := getJSON(t, srv.URL+"/api/v1/classes/"+url.PathEscape(ex+"dog")+"/super", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, got["classes"], ex+"animal")
}

func TestSubClassesUnknownClass(t *testing.T) {
	srv := testServer(t)
	var got map[string]string
	code := getJSON(t, srv.URL+"/api/v1/classes/"+url.PathEscape(ex+"nosuch")+"/sub", &got)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, got["error"], "unknown class")
}

func TestSiblings(t *testing.T) {
	srv := testServer(t)
	var got map[string][]string
	code := getJSON(t, srv.URL+"/api/v1/classes/"+url.PathEscape(ex+"mammal")+"/siblings", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{ex + "fish"}, got["classes"])
}

func TestInstances(t *testing.T) {
	srv := testServer(t)
	var got map[string][]string
	code := getJSON(t, srv.URL+"/api/v1/classes/"+url.PathEscape(ex+"mammal")+"/instances", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{ex + "rex"}, got["individuals"])
}

func TestVerbalise(t *testing.T) {
	srv := testServer(t)
	var got map[string][]string
	code := getJSON(t, srv.URL+"/api/v1/classes/"+url.PathEscape(ex+"dog")+"/verbalise", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"every dog is mammal"}, got["sentences"])
}

func TestLabels(t *testing.T) {
	srv := testServer(t)
	var got map[string][]string
	code := getJSON(t, srv.URL+"/api/v1/entities/"+url.PathEscape(ex+"dog")+"/labels", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []string{"dog"}, got["labels"])

	code = getJSON(t, srv.URL+"/api/v1/entities/"+url.PathEscape(ex+"fish")+"/labels", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, got["labels"])
}

func TestSubsumption(t *testing.T) {
	srv := testServer(t)
	var got map[string]bool
	code := getJSON(t, srv.URL+"/api/v1/subsumption?sub="+url.QueryEscape(ex+"dog")+"&sup="+url.QueryEscape(ex+"animal"), &got)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, got["entailed"])

	code = getJSON(t, srv.URL+"/api/v1/subsumption?sub="+url.QueryEscape(ex+"animal"), nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestDisjoint(t *testing.T) {
	srv := testServer(t)
	var got map[string]bool
	code := getJSON(t, srv.URL+"/api/v1/disjoint?a="+url.QueryEscape(ex+"dog")+"&b="+url.QueryEscape(ex+"fish"), &got)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, got["disjoint"])
}

func TestStats(t *testing.T) {
	srv := testServer(t)
	var got Stats
	code := getJSON(t, srv.URL+"/api/v1/stats", &got)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, got.Classes)
	assert.Equal(t, 1, got.Individuals)
	assert.Equal(t, 3, got.SubClassAxioms)
	assert.Equal(t, 1, got.ClassAssertions)
}

func TestMetricsExposed(t *testing.T) {
	srv := testServer(t)
	code := getJSON(t, srv.URL+"/api/v1/stats", &Stats{})
	require.Equal(t, http.StatusOK, code)
	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListenAndServe(t *testing.T) {
	port, err := freeport.GetFreePort()
	require.NoError(t, err)
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	go func() {
		if err := ListenAndServe(addr, NewAPI(testOntology())); err != nil {
			t.Logf("server stopped: %v", err)
		}
	}()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
