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

// Package spec 定義資料集設定檔（Profile）：兩個特徵的取樣範圍與隸屬曲線、類別門檻與標籤。
//
// Profile 是明確傳入產生器的設定結構，不依賴任何全域常數，
// 因此多個 Profile 可以並存並各自測試。
package spec

import (
	"fmt"
	"math"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/sdk/curve"
)

// DefaultPoints 為未指定點數時的預設資料點數
const DefaultPoints int = 2000

// FeatureCount 固定為兩個特徵
const FeatureCount int = 2

// Range 是特徵的取樣範圍 [min, max]，設定檔中寫成 [0, 50]。
type Range [2]float64

func (r Range) Min() float64 { return r[0] }

func (r Range) Max() float64 { return r[1] }

// Contains 回傳 v 是否落在 [min, max]（含邊界）
func (r Range) Contains(v float64) bool { return r[0] <= v && v <= r[1] }

// Valid 端點必須有限且 min < max；min == max 會讓曲線正規化除以 0，取樣前即拒絕。
func (r Range) Valid() error {
	for _, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Fatalf("non-finite feature range: %v", r)
		}
	}
	if r[0] == r[1] {
		return errs.Fatalf("degenerate feature range: min == max == %g", r[0])
	}
	if r[0] > r[1] {
		return errs.Fatalf("feature range min > max: %v", r)
	}
	return nil
}

// Axis 是輸出軸的鍵與顯示名稱
type Axis struct {
	Key   string `yaml:"key"   json:"key"`
	Label string `yaml:"label" json:"label"`
}

// Feature 一個特徵：輸出軸、取樣範圍、隸屬曲線區段
type Feature struct {
	Axis     `yaml:",inline"`
	Range    Range           `yaml:"range"    json:"range"`
	Segments []curve.Segment `yaml:"segments" json:"segments"`
}

// Band 是選取機率的門檻帶 (Lo, Hi]：Lo 不含、Hi 含。
type Band struct {
	Lo float64 `yaml:"lo" json:"lo"`
	Hi float64 `yaml:"hi" json:"hi"`
}

// Contains 回傳 Lo < p <= Hi
func (b Band) Contains(p float64) bool { return b.Lo < p && p <= b.Hi }

// ClassSetting 類別軸與門檻設定。
//
// 注意方向：機率落在門檻帶內（預設 (0, 0.25]，也就是「低」機率）時標記為 Selected。
// 這是視覺化示範刻意要的圖樣，下游的刻度標籤依賴這個對應，不要「修正」它。
type ClassSetting struct {
	Axis             `yaml:",inline"`
	Band             Band    `yaml:"band"               json:"band"`
	Selected         float64 `yaml:"selected"           json:"selected"`
	NotSelected      float64 `yaml:"not_selected"       json:"not_selected"`
	SelectedLabel    string  `yaml:"selected_label"     json:"selected_label"`
	NotSelectedLabel string  `yaml:"not_selected_label" json:"not_selected_label"`
}

// Profile 包含產生一份資料集所需的全部設定。
type Profile struct {
	Name     string       `yaml:"name"     json:"name"`
	Points   int          `yaml:"points"   json:"points"`
	ID       Axis         `yaml:"id"       json:"id"`
	Features []Feature    `yaml:"features" json:"features"`
	Class    ClassSetting `yaml:"class"    json:"class"`
}

// DefaultProfile 回傳參考資料集的設定：
//
//	a1 ∈ [0,50]    曲線 rise 10→22.5, plateau 22.5..27.5, fall 40→27.5
//	a2 ∈ [100,200] 曲線 rise 100→120, plateau 120..130,  fall 200→130
//	class: (0,0.25] → 0.75 "Selected"，其餘 → 0.25 "Not selected"
func DefaultProfile() *Profile {
	p := &Profile{
		Name:   "default",
		Points: DefaultPoints,
		Features: []Feature{
			{
				Axis:     Axis{Key: "a1", Label: "A1"},
				Range:    Range{0, 50},
				Segments: curve.RisePlateauFallSegments(10, 22.5, 27.5, 40),
			},
			{
				Axis:     Axis{Key: "a2", Label: "A2"},
				Range:    Range{100, 200},
				Segments: curve.RisePlateauFallSegments(100, 120, 130, 200),
			},
		},
	}
	if err := p.init(); err != nil {
		panic("spec: default profile invalid: " + err.Error())
	}
	return p
}

// init 補上預設值後執行檢查
func (p *Profile) init() error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Points == 0 {
		p.Points = DefaultPoints
	}
	if p.ID.Key == "" {
		p.ID.Key = "label"
	}
	if p.ID.Label == "" {
		p.ID.Label = "Label"
	}
	c := &p.Class
	if c.Key == "" {
		c.Key = "class"
	}
	if c.Label == "" {
		c.Label = "Class"
	}
	if c.Band == (Band{}) {
		c.Band = Band{Lo: 0, Hi: 0.25}
	}
	if c.Selected == 0 && c.NotSelected == 0 {
		c.Selected, c.NotSelected = 0.75, 0.25
	}
	if c.SelectedLabel == "" {
		c.SelectedLabel = "Selected"
	}
	if c.NotSelectedLabel == "" {
		c.NotSelectedLabel = "Not selected"
	}
	return p.valid()
}

// valid 執行設定檢查。所有錯誤皆為 Fatal：設定錯誤必須在取樣開始前被拒絕。
func (p *Profile) valid() error {
	if p.Name == "" {
		return errs.NewFatal("profile name required")
	}
	if p.Points < 0 {
		return errs.Fatalf("profile %s: points must >= 0", p.Name)
	}
	if len(p.Features) != FeatureCount {
		return errs.Fatalf("profile %s: exactly %d features required, got %d", p.Name, FeatureCount, len(p.Features))
	}
	keys := map[string]struct{}{p.ID.Key: {}, p.Class.Key: {}}
	if len(keys) != 2 {
		return errs.Fatalf("profile %s: id and class axis share key %q", p.Name, p.ID.Key)
	}
	for i, f := range p.Features {
		where := fmt.Sprintf("profile=%s feature=%d", p.Name, i)
		if f.Key == "" {
			return errs.NewFatal("feature key required").WithExtra(where)
		}
		if _, dup := keys[f.Key]; dup {
			return errs.Fatalf("duplicate axis key: %q", f.Key).WithExtra(where)
		}
		keys[f.Key] = struct{}{}
		if err := f.Range.Valid(); err != nil {
			return errs.Wrap(err, "invalid feature range").WithExtra(where)
		}
		if len(f.Segments) == 0 {
			return errs.NewFatal("feature curve needs at least one segment").WithExtra(where)
		}
		if _, err := curve.New(f.Segments...); err != nil {
			return errs.Wrap(err, "invalid feature curve").WithExtra(where)
		}
	}
	c := p.Class
	for _, v := range []float64{c.Band.Lo, c.Band.Hi, c.Selected, c.NotSelected} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errs.Fatalf("profile %s: non-finite class setting", p.Name)
		}
	}
	if c.Band.Lo >= c.Band.Hi {
		return errs.Fatalf("profile %s: class band requires lo < hi, got (%g,%g]", p.Name, c.Band.Lo, c.Band.Hi)
	}
	if c.Selected == c.NotSelected {
		return errs.Fatalf("profile %s: selected and not_selected labels must differ", p.Name)
	}
	return nil
}

// Curves 建立兩個特徵的隸屬曲線
func (p *Profile) Curves() ([FeatureCount]*curve.Curve, error) {
	var out [FeatureCount]*curve.Curve
	if len(p.Features) != FeatureCount {
		return out, errs.Fatalf("profile %s: exactly %d features required", p.Name, FeatureCount)
	}
	for i, f := range p.Features {
		c, err := curve.New(f.Segments...)
		if err != nil {
			return out, errs.Wrap(err, "invalid feature curve").WithExtra(fmt.Sprintf("profile=%s feature=%d", p.Name, i))
		}
		out[i] = c
	}
	return out, nil
}

// Clone 深拷貝，讓 catalog 交出去的 Profile 被修改時不影響原本的設定。
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.Features = make([]Feature, len(p.Features))
	for i, f := range p.Features {
		f.Segments = append([]curve.Segment(nil), f.Segments...)
		cp.Features[i] = f
	}
	return &cp
}
