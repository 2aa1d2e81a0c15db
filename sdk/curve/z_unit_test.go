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

package curve

import (
	"math"
	"testing"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/sdk/ease"
)

func mustRPF(t *testing.T, a, b, c, d float64) *Curve {
	t.Helper()
	cv, err := RisePlateauFall(a, b, c, d)
	if err != nil {
		t.Fatalf("build curve: %v", err)
	}
	return cv
}

func TestReferenceCurves(t *testing.T) {
	a1 := mustRPF(t, 10, 22.5, 27.5, 40)
	a2 := mustRPF(t, 100, 120, 130, 200)

	cases := []struct {
		name string
		c    *Curve
		x    float64
		want float64
	}{
		{"a1 below", a1, 0, 0},
		{"a1 rise start", a1, 10, 0},
		{"a1 rise mid", a1, 16.25, 0.5},
		{"a1 plateau start", a1, 22.5, 1},
		{"a1 plateau", a1, 25, 1},
		{"a1 plateau end", a1, 27.5, 1},
		{"a1 fall mid", a1, 33.75, 0.5},
		{"a1 fall end", a1, 40, 0},
		{"a1 above", a1, 50, 0},
		{"a2 plateau start", a2, 120, 1},
		{"a2 rise start", a2, 100, 0},
		{"a2 rise mid", a2, 110, 0.5},
		{"a2 fall mid", a2, 165, 0.5},
		{"a2 above", a2, 200.5, 0},
	}
	for _, c := range cases {
		if got := c.c.Sample(c.x); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("%s: Sample(%v)=%v want %v", c.name, c.x, got, c.want)
		}
	}
}

func TestSampleBounded(t *testing.T) {
	cv := mustRPF(t, 10, 22.5, 27.5, 40)
	for x := -100.0; x <= 150; x += 0.01 {
		v := cv.Sample(x)
		if v < 0 || v > 1 || math.IsNaN(v) {
			t.Fatalf("Sample(%v)=%v out of [0,1]", x, v)
		}
	}
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if v := cv.Sample(x); v != 0 {
			t.Fatalf("Sample(%v)=%v want 0", x, v)
		}
	}
}

func TestOverlapNoDoubleCount(t *testing.T) {
	// 兩段完全重疊：max 組合下仍是 1，不是 2
	cv, err := New(
		Segment{Kind: ease.KindConstant, Interval: ease.Interval{Start: 0, End: 10}},
		Segment{Kind: ease.KindConstant, Interval: ease.Interval{Start: 5, End: 15}},
		Segment{Kind: ease.KindLinear, Interval: ease.Interval{Start: 0, End: 15}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if got := cv.Sample(7); got != 1 {
		t.Fatalf("expected 1, got %v", got)
	}
}

func TestNewRejectsZeroWidthRamp(t *testing.T) {
	_, err := RisePlateauFall(10, 10, 27.5, 40)
	if err == nil {
		t.Fatalf("zero width rise must fail")
	}
	if errs.Level(err) != errs.Fatal {
		t.Fatalf("expected fatal, got %v", err)
	}
	if _, err := New(Segment{Kind: "quartic", Interval: ease.Interval{Start: 0, End: 1}}); err == nil {
		t.Fatalf("unknown kind must fail")
	}
}

func TestEmptyCurve(t *testing.T) {
	cv, err := New()
	if err != nil {
		t.Fatal(err)
	}
	if cv.Sample(1) != 0 {
		t.Fatalf("empty curve must be 0")
	}
	if _, _, ok := cv.Support(); ok {
		t.Fatalf("empty curve has no support")
	}
}

func TestSupportAndSegments(t *testing.T) {
	cv := mustRPF(t, 100, 120, 130, 200)
	lo, hi, ok := cv.Support()
	if !ok || lo != 100 || hi != 200 {
		t.Fatalf("support: %v %v %v", lo, hi, ok)
	}
	segs := cv.Segments()
	if len(segs) != 3 || segs[2].Interval.Start != 200 || segs[2].Kind != ease.KindInOut {
		t.Fatalf("segments: %+v", segs)
	}
	segs[0].Interval.Start = -1
	if cv.Segments()[0].Interval.Start != 100 {
		t.Fatalf("Segments must return a copy")
	}
	if cv.String() == "" {
		t.Fatalf("empty string")
	}
}
