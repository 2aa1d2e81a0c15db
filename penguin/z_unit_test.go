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

package penguin

import (
	"os"
	"strings"
	"testing"

	"github.com/zintix-labs/ppcdata/errs"
)

const header = "id,species,island,bill_length_mm,bill_depth_mm,flipper_length_mm,body_mass_g,sex,year\n"

func TestReadCSVStrict(t *testing.T) {
	f, err := os.Open("testdata/penguins.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	_, err = ReadCSV(f, Options{})
	if errs.Level(err) != errs.Warn {
		t.Fatalf("NA row should warn, got %v", err)
	}
	if !strings.Contains(err.Error(), "line=4") || !strings.Contains(err.Error(), "unknown sex") {
		t.Fatalf("error should name the line: %v", err)
	}
}

func TestLoadSkipInvalid(t *testing.T) {
	f, err := os.Open("testdata/penguins.csv")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	axes, res, err := Load(f, Options{SkipInvalid: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Rows) != 5 || len(res.Skipped) != 1 {
		t.Fatalf("rows=%d skipped=%d", len(res.Rows), len(res.Skipped))
	}
	if strings.Join(axes.Keys(), ",") != strings.Join(Columns, ",") {
		t.Fatalf("keys: %v", axes.Keys())
	}

	sp, _ := axes.Get("species")
	want := []float64{0.25, 0.25, 0.5, 0.75, 0.75}
	for i, v := range want {
		if sp.DataPoints[i] != v {
			t.Fatalf("species[%d]=%v want %v", i, sp.DataPoints[i], v)
		}
	}
	if sp.Range == nil || *sp.Range != [2]float64{0, 1} || strings.Join(sp.TickLabels, ",") != "Adelie,Chinstrap,Gentoo" {
		t.Fatalf("species axis: %+v", sp)
	}
	isl, _ := axes.Get("island")
	if isl.DataPoints[0] != 0.75 || isl.DataPoints[2] != 0.5 || isl.DataPoints[3] != 0.25 {
		t.Fatalf("island: %v", isl.DataPoints)
	}
	sex, _ := axes.Get("sex")
	if sex.DataPoints[0] != 0.75 || sex.DataPoints[1] != 0.25 || len(sex.TickPositions) != 2 {
		t.Fatalf("sex: %+v", sex)
	}
	bl, _ := axes.Get("bill_length_mm")
	if bl.Range != nil || bl.DataPoints[4] != 50.0 {
		t.Fatalf("bill length: %+v", bl)
	}
	id, _ := axes.Get("id")
	if id.DataPoints[2] != 4 {
		t.Fatalf("id column should keep source ids: %v", id.DataPoints)
	}
}

func TestReadCSVErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"header only":   header,
		"unknown isle":  header + "1,Adelie,Atlantis,39.1,18.7,181,3750,male,2007\n",
		"bad number":    header + "1,Adelie,Dream,abc,18.7,181,3750,male,2007\n",
		"field count":   header + "1,Adelie,Dream\n",
		"float flipper": header + "1,Adelie,Dream,39.1,18.7,181.5,3750,male,2007\n",
	}
	for name, in := range cases {
		if _, err := ReadCSV(strings.NewReader(in), Options{}); errs.Level(err) != errs.Warn {
			t.Fatalf("%s: expected warn, got %v", name, err)
		}
	}
}

func TestCategoryValue(t *testing.T) {
	if v, ok := Species.Value("Chinstrap"); !ok || v != 0.5 {
		t.Fatalf("Chinstrap: %v %v", v, ok)
	}
	if _, ok := Sex.Value("Male"); ok {
		t.Fatalf("category names are case sensitive")
	}
}
