// Copyright 2025 Zintix Labs
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

package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/dto"
	"github.com/zintix-labs/ppcdata/export"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/server/logger"
	"github.com/zintix-labs/ppcdata/server/svrcfg"
	"github.com/zintix-labs/ppcdata/spec"
)

func newCfg(t *testing.T) *svrcfg.SvrCfg {
	t.Helper()
	lab, err := ppcdata.NewWithProfiles(core.Default(), spec.DefaultProfile())
	if err != nil {
		t.Fatal(err)
	}
	sc := &svrcfg.SvrCfg{Log: logger.NewDefaultLogger(logger.ModeSilence), Lab: lab, CacheSize: 8}
	if err := sc.Valid(); err != nil {
		t.Fatal(err)
	}
	return sc
}

func newDatasetHandler(t *testing.T) *DatasetHandler {
	t.Helper()
	h, err := NewDatasetHandler(newCfg(t))
	if err != nil {
		t.Fatal(err)
	}
	return h
}

func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestDatasetSeededIsCached(t *testing.T) {
	h := newDatasetHandler(t)
	target := "/v1/dataset?n=100&seed=7"

	first := serve(h.Dataset, httptest.NewRequest(http.MethodGet, target, nil))
	if first.Code != http.StatusOK {
		t.Fatalf("status %d: %s", first.Code, first.Body.String())
	}
	if got := first.Header().Get(HeaderSeed); got != "7" {
		t.Fatalf("seed header %q", got)
	}
	if got := first.Header().Get(HeaderCache); got != "MISS" {
		t.Fatalf("cache header %q", got)
	}
	if !strings.HasPrefix(first.Header().Get("Content-Type"), "application/json") {
		t.Fatalf("content type %q", first.Header().Get("Content-Type"))
	}

	second := serve(h.Dataset, httptest.NewRequest(http.MethodGet, target, nil))
	if got := second.Header().Get(HeaderCache); got != "HIT" {
		t.Fatalf("cache header %q", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatalf("cached body differs")
	}
	if h.cache.Len() != 1 {
		t.Fatalf("cache len %d", h.cache.Len())
	}

	axes, err := export.ReadJSON(first.Body)
	if err != nil {
		t.Fatal(err)
	}
	if axes.Points() != 100 {
		t.Fatalf("points %d", axes.Points())
	}
	want := []string{"a1", "a2", "label", "class"}
	got := axes.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("keys %v", got)
		}
	}
}

func TestDatasetSameSeedDifferentFormatNotShared(t *testing.T) {
	h := newDatasetHandler(t)
	serve(h.Dataset, httptest.NewRequest(http.MethodGet, "/v1/dataset?n=10&seed=1", nil))
	w := serve(h.Dataset, httptest.NewRequest(http.MethodGet, "/v1/dataset?n=10&seed=1&format=yaml", nil))
	if w.Header().Get(HeaderCache) != "MISS" {
		t.Fatalf("yaml should not hit json entry")
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "application/yaml") {
		t.Fatalf("content type %q", w.Header().Get("Content-Type"))
	}
	if _, err := export.ReadYAML(w.Body); err != nil {
		t.Fatal(err)
	}
}

func TestDatasetRandomSeedBypassesCache(t *testing.T) {
	h := newDatasetHandler(t)
	w := serve(h.Dataset, httptest.NewRequest(http.MethodGet, "/v1/dataset?n=10", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if w.Header().Get(HeaderCache) != "BYPASS" {
		t.Fatalf("cache header %q", w.Header().Get(HeaderCache))
	}
	if w.Header().Get(HeaderSeed) == "" {
		t.Fatalf("seed header missing")
	}
	if h.cache.Len() != 0 {
		t.Fatalf("random seed cached")
	}
}

// 預設值展開後相同的請求共用同一筆快取
func TestDatasetCacheKeyUsesResolvedParams(t *testing.T) {
	h := newDatasetHandler(t)
	for _, pair := range [][2]string{
		{"/v1/dataset?seed=5", "/v1/dataset?n=2000&seed=5"},
		{"/v1/dataset?n=50&seed=6&worker=0", "/v1/dataset?n=50&seed=6&worker=1"},
		{"/v1/dataset?n=3&seed=8&worker=4", "/v1/dataset?n=3&seed=8&worker=3"},
	} {
		first := serve(h.Dataset, httptest.NewRequest(http.MethodGet, pair[0], nil))
		if got := first.Header().Get(HeaderCache); got != "MISS" {
			t.Fatalf("%s: cache header %q", pair[0], got)
		}
		second := serve(h.Dataset, httptest.NewRequest(http.MethodGet, pair[1], nil))
		if got := second.Header().Get(HeaderCache); got != "HIT" {
			t.Fatalf("%s: cache header %q", pair[1], got)
		}
		if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
			t.Fatalf("%s: body differs", pair[1])
		}
	}
	if h.cache.Len() != 3 {
		t.Fatalf("cache len %d", h.cache.Len())
	}
}

func TestDatasetZstdAndProps(t *testing.T) {
	h := newDatasetHandler(t)
	w := serve(h.Dataset, httptest.NewRequest(http.MethodGet, "/v1/dataset?n=20&seed=3&format=zstd", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "dataset.json.zst") {
		t.Fatalf("disposition %q", w.Header().Get("Content-Disposition"))
	}
	axes, err := export.ReadZstd(w.Body, export.MaxReadBytes)
	if err != nil {
		t.Fatal(err)
	}
	if axes.Points() != 20 {
		t.Fatalf("points %d", axes.Points())
	}

	w = serve(h.Dataset, httptest.NewRequest(http.MethodGet, "/v1/dataset?n=20&seed=3&props=true", nil))
	var props map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &props); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"axes", "order", "activeLabel", "interactionMode"} {
		if _, ok := props[k]; !ok {
			t.Fatalf("props missing %q", k)
		}
	}
}

func TestDatasetPost(t *testing.T) {
	h := newDatasetHandler(t)
	body := strings.NewReader(`{"profile":"default","n":50,"seed":9,"worker":4}`)
	w := serve(h.Dataset, httptest.NewRequest(http.MethodPost, "/v1/dataset", body))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	axes, err := export.ReadJSON(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if axes.Points() != 50 {
		t.Fatalf("points %d", axes.Points())
	}
}

func TestDatasetBadRequests(t *testing.T) {
	h := newDatasetHandler(t)
	for _, target := range []string{
		"/v1/dataset?n=-1",
		"/v1/dataset?n=200001",
		"/v1/dataset?worker=999",
		"/v1/dataset?profile=missing",
		"/v1/dataset?format=csv",
		"/v1/dataset?seed=abc",
	} {
		w := serve(h.Dataset, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", target, w.Code)
		}
	}
	w := serve(h.Dataset, httptest.NewRequest(http.MethodPost, "/v1/dataset", strings.NewReader(`{"bogus":1}`)))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("unknown field: status %d", w.Code)
	}
}

func TestDatasetCanceled(t *testing.T) {
	h := newDatasetHandler(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest(http.MethodGet, "/v1/dataset?n=200000&seed=1", nil).WithContext(ctx)
	w := serve(h.Dataset, r)
	if w.Code != http.StatusRequestTimeout {
		t.Fatalf("status %d", w.Code)
	}
	if h.cache.Len() != 0 {
		t.Fatalf("canceled request cached")
	}
}

func TestReport(t *testing.T) {
	h := newDatasetHandler(t)
	w := serve(h.Report, httptest.NewRequest(http.MethodGet, "/v1/report?n=500&seed=11", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res dto.ReportResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	s := res.Report.Summary
	if s.Points != 500 || s.Seed != 11 {
		t.Fatalf("summary %+v", s)
	}
	if s.Selected+s.NotSelected != 500 {
		t.Fatalf("class counts %d + %d", s.Selected, s.NotSelected)
	}
	if len(res.Report.Features) != 2 {
		t.Fatalf("features %d", len(res.Report.Features))
	}
}

func TestClassify(t *testing.T) {
	cfg := newCfg(t)
	h, err := NewClassifyHandler(cfg.Lab)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(h.Classify, httptest.NewRequest(http.MethodGet, "/v1/classify?a1=25&a2=125", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	var res dto.ClassifyResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	// 兩條曲線都在平台區：p = 1，落在門檻帶外
	if res.Memberships != [2]float64{1, 1} || res.Prob != 1 {
		t.Fatalf("plateau: %+v", res)
	}
	if res.Class != 0.25 || res.Label != "Not selected" || res.Profile != "default" {
		t.Fatalf("class: %+v", res)
	}

	g, err := cfg.Lab.NewGeneratorWithSeed("default", 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, pt := range [][2]float64{{12, 110}, {35, 180}, {0, 100}} {
		target := "/v1/classify?a1=" + ftoa(pt[0]) + "&a2=" + ftoa(pt[1])
		w := serve(h.Classify, httptest.NewRequest(http.MethodGet, target, nil))
		var res dto.ClassifyResult
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatal(err)
		}
		prob, class := g.Classify(pt[0], pt[1])
		if res.Prob != prob || res.Class != class {
			t.Fatalf("%v: got (%g,%g) want (%g,%g)", pt, res.Prob, res.Class, prob, class)
		}
		wantLabel := "Not selected"
		if class == 0.75 {
			wantLabel = "Selected"
		}
		if res.Label != wantLabel {
			t.Fatalf("%v: label %q", pt, res.Label)
		}
	}
}

func TestClassifyBadRequests(t *testing.T) {
	h, err := NewClassifyHandler(newCfg(t).Lab)
	if err != nil {
		t.Fatal(err)
	}
	for _, target := range []string{
		"/v1/classify?a1=1",
		"/v1/classify?a1=x&a2=1",
		"/v1/classify?a1=1&a2=1&profile=nope",
		"/v1/classify?a1=NaN&a2=120",
		"/v1/classify?a1=Inf&a2=120",
		"/v1/classify?a1=25&a2=-Inf",
	} {
		w := serve(h.Classify, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status %d", target, w.Code)
		}
	}
}

func TestProfiles(t *testing.T) {
	h, err := NewProfileHandler(newCfg(t).Lab)
	if err != nil {
		t.Fatal(err)
	}
	w := serve(h.List, httptest.NewRequest(http.MethodGet, "/v1/profiles", nil))
	var res dto.ProfilesResult
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Profiles) != 1 || res.Profiles[0].Name != "default" {
		t.Fatalf("profiles %+v", res.Profiles)
	}

	w = serve(h.Get, httptest.NewRequest(http.MethodGet, "/v1/profile?format=yaml", nil))
	if !strings.Contains(w.Body.String(), "name: default") {
		t.Fatalf("yaml body: %s", w.Body.String())
	}
	w = serve(h.Get, httptest.NewRequest(http.MethodGet, "/v1/profile?name=default", nil))
	var p spec.Profile
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Features) != 2 || p.Features[1].Range != (spec.Range{100, 200}) {
		t.Fatalf("profile %+v", p)
	}
	w = serve(h.Get, httptest.NewRequest(http.MethodGet, "/v1/profile?name=nope", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d", w.Code)
	}
}

func TestNewCacheRejectsZero(t *testing.T) {
	if _, err := NewCache(0); err == nil {
		t.Fatalf("zero size accepted")
	}
}

func ftoa(v float64) string {
	b, _ := json.Marshal(v)
	return string(b)
}
