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
	"github.com/zintix-labs/ppcdata/spec"
)

// Point 資料集中的一筆樣本。ID 為 0-based 的插入位置。
type Point struct {
	ID    int     `json:"id"`
	A1    float64 `json:"a1"`
	A2    float64 `json:"a2"`
	Prob  float64 `json:"prob"`
	Class float64 `json:"class"`
}

// Dataset 一次產生的完整結果，建立後不再修改。
//
// Points 依 ID 排序（Points[i].ID == i）。Seed 與 Workers 足以重現同一份資料。
type Dataset struct {
	Profile *spec.Profile
	Seed    int64
	Workers int // 0 代表單線 Generate
	Points  []Point
}

func (d *Dataset) Len() int {
	return len(d.Points)
}

// Column 依欄位取出一整列數值（匯出成軸資料用）
func (d *Dataset) Column(f func(Point) float64) []float64 {
	out := make([]float64, len(d.Points))
	for i, p := range d.Points {
		out[i] = f(p)
	}
	return out
}

func (d *Dataset) A1() []float64 { return d.Column(func(p Point) float64 { return p.A1 }) }

func (d *Dataset) A2() []float64 { return d.Column(func(p Point) float64 { return p.A2 }) }

func (d *Dataset) IDs() []float64 { return d.Column(func(p Point) float64 { return float64(p.ID) }) }

func (d *Dataset) Classes() []float64 { return d.Column(func(p Point) float64 { return p.Class }) }

func (d *Dataset) Probs() []float64 { return d.Column(func(p Point) float64 { return p.Prob }) }

// CountClass 回傳類別值等於 class 的樣本數
func (d *Dataset) CountClass(class float64) int {
	n := 0
	for _, p := range d.Points {
		if p.Class == class {
			n++
		}
	}
	return n
}
