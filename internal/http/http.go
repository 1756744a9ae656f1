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

// Package http serves the ontology API over HTTP.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ontokit/ontokit/olog"
)

var (
	mRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ontokit_http_requests_total",
		Help: "Number of HTTP requests served, by path pattern and status code.",
	}, []string{"path", "code"})
	mRequestSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "ontokit_http_request_seconds",
		Help: "Time to serve an HTTP request, by path pattern.",
	}, []string{"path"})
)

type statusWriter struct {
	http.ResponseWriter
	code *int
}

func (w *statusWriter) WriteHeader(code int) {
	*(w.code) = code
	w.ResponseWriter.WriteHeader(code)
}

// LogRequest logs a request and records its metrics under the given
// route pattern.
func LogRequest(pattern string, handler httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		start := time.Now()
		addr := req.Header.Get("X-Real-IP")
		if addr == "" {
			addr = req.Header.Get("X-Forwarded-For")
			if addr == "" {
				addr = req.RemoteAddr
			}
		}
		code := 200
		rw := &statusWriter{ResponseWriter: w, code: &code}
		olog.Infof("started %s %s for %s", req.Method, req.URL.Path, addr)
		handler(rw, req, params)
		took := time.Since(start)
		olog.Infof("completed %v %s %s in %v", code, http.StatusText(code), req.URL.Path, took)
		mRequests.WithLabelValues(pattern, strconv.Itoa(code)).Inc()
		mRequestSeconds.WithLabelValues(pattern).Observe(took.Seconds())
	}
}

func jsonError(w http.ResponseWriter, code int, err interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(`{"error": `))
	data, _ := json.Marshal(fmt.Sprint(err))
	w.Write(data)
	w.Write([]byte(`}`))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		olog.Errorf("http: writing response: %v", err)
	}
}

// HandleHealth is a route for handling health checks to the server.
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

// SetupRoutes builds the router for an API instance.
func SetupRoutes(api *API) *httprouter.Router {
	r := httprouter.New()
	api.RegisterOn(r)
	r.HandlerFunc(http.MethodGet, "/health", HandleHealth)
	r.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// ListenAndServe serves the API on addr until the listener fails.
func ListenAndServe(addr string, api *API) error {
	olog.Infof("listening on %s, web access at http://%s", addr, addr)
	return http.ListenAndServe(addr, SetupRoutes(api))
}
