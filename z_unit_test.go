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

package ppcdata

import (
	"testing"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/profiles"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/spec"
)

func newLab(t *testing.T) *Lab {
	t.Helper()
	lab, err := NewAuto(core.Default(), Profiles(profiles.FS))
	if err != nil {
		t.Fatalf("build lab: %v", err)
	}
	return lab
}

func checkDataset(t *testing.T, ds *Dataset, n int) {
	t.Helper()
	if ds.Len() != n {
		t.Fatalf("expected %d points, got %d", n, ds.Len())
	}
	r1 := ds.Profile.Features[0].Range
	r2 := ds.Profile.Features[1].Range
	for i, p := range ds.Points {
		if p.ID != i {
			t.Fatalf("id at %d is %d", i, p.ID)
		}
		if !r1.Contains(p.A1) || !r2.Contains(p.A2) {
			t.Fatalf("point %d out of range: %+v", i, p)
		}
		if p.Class != 0.25 && p.Class != 0.75 {
			t.Fatalf("point %d class %v", i, p.Class)
		}
		if (p.Class == 0.75) != (p.Prob > 0 && p.Prob <= 0.25) {
			t.Fatalf("point %d: class %v inconsistent with prob %v", i, p.Class, p.Prob)
		}
	}
}

func TestGenerateDefault2000(t *testing.T) {
	g, err := newLab(t).NewGeneratorWithSeed("default", 42)
	if err != nil {
		t.Fatal(err)
	}
	ds, _, err := g.Generate(g.DefaultPoints(), false)
	if err != nil {
		t.Fatal(err)
	}
	checkDataset(t, ds, 2000)
	if ds.Seed != 42 || ds.Workers != 0 {
		t.Fatalf("metadata: seed=%d workers=%d", ds.Seed, ds.Workers)
	}
	// 2000 點中兩個類別都應該出現
	sel := ds.CountClass(0.75)
	if sel == 0 || sel == 2000 {
		t.Fatalf("degenerate class split: %d selected", sel)
	}
}

func TestGenerateExactSamples(t *testing.T) {
	g, _ := newLab(t).NewGeneratorWithSeed("default", 7)
	ds, _, _ := g.Generate(5, false)

	// 以相同 seed 的 core 重新推導，樣本值必須完全相同（a1、a2 交錯抽樣）
	c := core.New(core.Default().New(7))
	for i, p := range ds.Points {
		a1 := c.Uniform(0, 50)
		a2 := c.Uniform(100, 200)
		if p.A1 != a1 || p.A2 != a2 {
			t.Fatalf("point %d: got (%v,%v) want (%v,%v)", i, p.A1, p.A2, a1, a2)
		}
		prob, class := g.Classify(a1, a2)
		if p.Prob != prob || p.Class != class {
			t.Fatalf("point %d: classification mismatch", i)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	lab := newLab(t)
	g1, _ := lab.NewGeneratorWithSeed("default", 99)
	g2, _ := lab.NewGeneratorWithSeed("default", 99)
	d1, _, _ := g1.Generate(300, false)
	d2, _, _ := g2.Generate(300, false)
	d3, _, _ := g1.Generate(300, false)
	for i := range d1.Points {
		if d1.Points[i] != d2.Points[i] || d1.Points[i] != d3.Points[i] {
			t.Fatalf("mismatch at %d", i)
		}
	}
}

func TestGenerateMP(t *testing.T) {
	g, _ := newLab(t).NewGeneratorWithSeed("default", 5)
	d1, _, err := g.GenerateMP(2000, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	checkDataset(t, d1, 2000)
	d2, _, _ := g.GenerateMP(2000, 4, false)
	for i := range d1.Points {
		if d1.Points[i] != d2.Points[i] {
			t.Fatalf("GenerateMP not deterministic at %d", i)
		}
	}
	if d1.Workers != 4 {
		t.Fatalf("workers: %d", d1.Workers)
	}
	// 每個樣本的 (a1,a2) → 類別 與單點分類一致
	for _, p := range d1.Points {
		prob, class := g.Classify(p.A1, p.A2)
		if prob != p.Prob || class != p.Class {
			t.Fatalf("point %d classification differs", p.ID)
		}
	}
	// workers 比點數多時自動縮減
	small, _, err := g.GenerateMP(3, 8, false)
	if err != nil {
		t.Fatal(err)
	}
	checkDataset(t, small, 3)
}

func TestGenerateParams(t *testing.T) {
	g, _ := newLab(t).NewGeneratorWithSeed("default", 1)
	if _, _, err := g.Generate(0, false); errs.Level(err) != errs.Warn {
		t.Fatalf("n=0 should warn, got %v", err)
	}
	if _, _, err := g.GenerateMP(10, 0, false); errs.Level(err) != errs.Warn {
		t.Fatalf("workers=0 should warn, got %v", err)
	}
	if _, _, err := g.GenerateMP(10, MaxWorkers+1, false); err == nil {
		t.Fatalf("too many workers should fail")
	}
}

func TestDegenerateRangeRejectedBeforeSampling(t *testing.T) {
	p := spec.DefaultProfile().Clone()
	p.Features[0].Range = spec.Range{5, 5}
	if _, err := NewGenerator(p, core.Default(), 1); errs.Level(err) != errs.Fatal {
		t.Fatalf("degenerate range should be fatal, got %v", err)
	}
	if _, err := NewGenerator(nil, core.Default(), 1); err == nil {
		t.Fatalf("nil profile should fail")
	}
	if _, err := NewGenerator(spec.DefaultProfile(), nil, 1); err == nil {
		t.Fatalf("nil factory should fail")
	}
}

func TestLabLookup(t *testing.T) {
	lab := newLab(t)
	if _, err := lab.NewGeneratorWithSeed("missing", 1); errs.Level(err) != errs.Warn {
		t.Fatalf("missing profile should warn, got %v", err)
	}
	if names := lab.Names(); len(names) != 2 {
		t.Fatalf("names: %v", names)
	}
	g, err := lab.NewGenerator("linear")
	if err != nil {
		t.Fatal(err)
	}
	if g.DefaultPoints() != 1000 || g.ProfileName != "linear" {
		t.Fatalf("linear generator: %d %s", g.DefaultPoints(), g.ProfileName)
	}
	if _, err := New(nil, Profiles(profiles.FS)); err == nil {
		t.Fatalf("nil factory should fail")
	}
}

func TestLabNotFrozen(t *testing.T) {
	lab, err := New(core.Default(), Profiles(profiles.FS))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lab.NewGeneratorWithSeed("default", 1); err == nil {
		t.Fatalf("unfrozen lab must refuse generators")
	}
	extra := spec.DefaultProfile().Clone()
	extra.Name = "extra"
	if err := lab.Register(extra); err != nil {
		t.Fatal(err)
	}
	lab.Freeze()
	if _, err := lab.NewGeneratorWithSeed("extra", 1); err != nil {
		t.Fatal(err)
	}
}

func TestNewGeneratorByYAML(t *testing.T) {
	lab, err := NewWithProfiles(core.Default(), spec.DefaultProfile())
	if err != nil {
		t.Fatal(err)
	}
	raw := []byte(`
name: adhoc
features:
  - key: a1
    range: [0, 1]
    segments: [{ kind: linear, interval: { start: 0, end: 1 } }]
  - key: a2
    range: [0, 1]
    segments: [{ kind: constant, interval: { start: 0, end: 1 } }]
`)
	g, err := lab.NewGeneratorByYAML(raw, 3)
	if err != nil {
		t.Fatal(err)
	}
	ds, _, _ := g.Generate(100, false)
	checkDataset(t, ds, 100)
	if _, err := lab.NewGeneratorByJSON([]byte(`{"name":"x"}`), 1); err == nil {
		t.Fatalf("profile without features must fail")
	}
}

func TestChunk(t *testing.T) {
	for _, tc := range []struct{ n, w int }{{10, 3}, {2000, 7}, {5, 5}, {1, 1}} {
		next := 0
		for w := 0; w < tc.w; w++ {
			lo, hi := chunk(tc.n, tc.w, w)
			if lo != next || hi < lo {
				t.Fatalf("n=%d w=%d chunk %d: [%d,%d)", tc.n, tc.w, w, lo, hi)
			}
			next = hi
		}
		if next != tc.n {
			t.Fatalf("n=%d w=%d: chunks cover %d", tc.n, tc.w, next)
		}
	}
}

func TestSeedMaker(t *testing.T) {
	a := newSeedMaker(10)
	b := newSeedMaker(10)
	seen := map[int64]struct{}{}
	for i := 0; i < 1000; i++ {
		x, y := a.next(), b.next()
		if x != y {
			t.Fatalf("seedMaker not deterministic")
		}
		if x < 0 {
			t.Fatalf("negative seed %d", x)
		}
		if _, dup := seen[x]; dup {
			t.Fatalf("duplicate seed at %d", i)
		}
		seen[x] = struct{}{}
	}
	if s, err := RandomSeed(); err != nil || s < 0 {
		t.Fatalf("RandomSeed: %d %v", s, err)
	}
}
