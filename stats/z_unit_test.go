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

package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/spec"
)

func genDataset(t *testing.T, n int) *ppcdata.Dataset {
	t.Helper()
	g, err := ppcdata.NewGenerator(spec.DefaultProfile(), core.Default(), 2024)
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	ds, _, err := g.Generate(n, false)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return ds
}

func TestAnalyzeCounts(t *testing.T) {
	ds := genDataset(t, 2000)
	r, err := Analyze(ds)
	if err != nil {
		t.Fatal(err)
	}
	s := r.Summary
	if s.Points != 2000 || s.Selected+s.NotSelected != 2000 {
		t.Fatalf("counts: %+v", s)
	}
	if s.Selected != ds.CountClass(0.75) {
		t.Fatalf("selected %d, dataset says %d", s.Selected, ds.CountClass(0.75))
	}
	if s.SelectedRate.CI.Lo > s.SelectedRate.Hat || s.SelectedRate.Hat > s.SelectedRate.CI.Hi {
		t.Fatalf("CI does not contain estimate: %+v", s.SelectedRate)
	}
	if s.SelectedLabel != "Selected" || s.NotSelectedLabel != "Not selected" {
		t.Fatalf("labels: %q %q", s.SelectedLabel, s.NotSelectedLabel)
	}

	if len(r.Features) != 2 {
		t.Fatalf("features: %d", len(r.Features))
	}
	for _, f := range r.Features {
		if f.Min < f.Range[0] || f.Max > f.Range[1] {
			t.Fatalf("%s: min/max outside range: %+v", f.Key, f)
		}
		mid := (f.Range[0] + f.Range[1]) / 2
		if math.Abs(f.Mean-mid) > (f.Range[1]-f.Range[0])*0.05 {
			t.Fatalf("%s: uniform mean %v too far from %v", f.Key, f.Mean, mid)
		}
		if f.MeanMembership < 0 || f.MeanMembership > 1 {
			t.Fatalf("%s: membership %v", f.Key, f.MeanMembership)
		}
	}

	total := 0
	for _, c := range r.Dist.Collect {
		total += c
	}
	if total != 2000 || len(r.Dist.Bucket) != len(r.Dist.Collect) {
		t.Fatalf("dist: %+v", r.Dist)
	}
	if r.Dist.Collect[0] != r.Prob.Zero {
		t.Fatalf("zero bucket %d vs zero count %d", r.Dist.Collect[0], r.Prob.Zero)
	}
}

func TestAnalyzeSinglePoint(t *testing.T) {
	r, err := Analyze(genDataset(t, 1))
	if err != nil {
		t.Fatal(err)
	}
	if r.Features[0].Std != 0 || r.Prob.Std != 0 {
		t.Fatalf("single sample std must be 0")
	}
	if _, err := json.Marshal(r); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	if _, err := Analyze(nil); errs.Level(err) != errs.Warn {
		t.Fatalf("nil dataset should warn, got %v", err)
	}
	if _, err := Analyze(&ppcdata.Dataset{Profile: spec.DefaultProfile()}); errs.Level(err) != errs.Warn {
		t.Fatalf("empty dataset should warn, got %v", err)
	}
}

func TestProportionCICP(t *testing.T) {
	hat, ci := proportionCICP(0, 100, 0.95)
	if hat != 0 || ci.Lo != 0 || ci.Hi <= 0 || ci.Hi >= 0.1 {
		t.Fatalf("k=0: %v %+v", hat, ci)
	}
	hat, ci = proportionCICP(100, 100, 0.95)
	if hat != 1 || ci.Hi != 1 || ci.Lo >= 1 || ci.Lo <= 0.9 {
		t.Fatalf("k=n: %v %+v", hat, ci)
	}
	hat, ci = proportionCICP(50, 100, 0.95)
	if hat != 0.5 || !(ci.Lo < 0.5 && ci.Hi > 0.5) {
		t.Fatalf("k=n/2: %v %+v", hat, ci)
	}
	if _, ci = proportionCICP(0, 0, 0.95); ci != (CI{0, 1}) {
		t.Fatalf("n=0: %+v", ci)
	}
}

func TestBucketsIndex(t *testing.T) {
	cases := []struct {
		p    float64
		want int
	}{
		{0, 0}, {-1, 0}, {0.01, 1}, {0.05, 1}, {0.07, 2}, {0.25, 3}, {0.2500001, 4}, {0.6, 5}, {1, 6}, {2, 6},
	}
	for _, c := range cases {
		if got := Buckets.Index(c.p); got != c.want {
			t.Fatalf("Index(%v)=%d want %d", c.p, got, c.want)
		}
	}
	if Buckets.Len() != 7 || Buckets.Labels()[3] != "(0.1,0.25]" {
		t.Fatalf("labels: %v", Buckets.Labels())
	}
}

func TestRenderers(t *testing.T) {
	r, err := Analyze(genDataset(t, 200))
	if err != nil {
		t.Fatal(err)
	}
	var jb bytes.Buffer
	if err := r.WriteWith(&jb, &JsonReportRender{}); err != nil {
		t.Fatal(err)
	}
	var back Report
	if err := json.Unmarshal(jb.Bytes(), &back); err != nil {
		t.Fatalf("json: %v", err)
	}
	if back.Summary.Selected != r.Summary.Selected {
		t.Fatalf("json lost data")
	}

	var yb bytes.Buffer
	if err := r.WriteWith(&yb, &YAMLReportRender{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(yb.String(), "range: [0, 50]") {
		t.Fatalf("yaml inner list should be flow style:\n%s", yb.String())
	}

	tbl := r.Table()
	for _, want := range []string{"default", "Selected", "Not selected", "Rate 95% CI", "a1 mean/std"} {
		if !strings.Contains(tbl, want) {
			t.Fatalf("table missing %q:\n%s", want, tbl)
		}
	}
}
