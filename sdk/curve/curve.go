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

// Package curve 把多段 easing 組合成單一的分段隸屬曲線（piecewise membership curve）。
//
// 組合方式是逐點取最大值（pointwise max），起始值為 0：
//
//	v = max(0, seg_0(x), seg_1(x), ..., seg_n(x))
//
// 因此重疊的區段不會重複累加，輸出恆在 [0,1]。
package curve

import (
	"fmt"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/sdk/ease"
)

// Segment 是曲線中的一段：一個 easing 種類與其區間
type Segment struct {
	Kind     ease.Kind     `yaml:"kind"     json:"kind"`
	Interval ease.Interval `yaml:"interval" json:"interval"`
}

// Curve 是已驗證的有序區段列表。零值 Curve 恆回傳 0。
type Curve struct {
	segs  []Segment
	funcs []ease.Func
}

// New 驗證並建立曲線。任何區段不合法（未知種類、非有限端點、斜坡寬度為 0）都回傳 Fatal。
func New(segs ...Segment) (*Curve, error) {
	c := &Curve{
		segs:  make([]Segment, 0, len(segs)),
		funcs: make([]ease.Func, 0, len(segs)),
	}
	for i, s := range segs {
		if err := s.Interval.Valid(s.Kind); err != nil {
			return nil, errs.Wrap(err, "invalid curve segment").WithExtra(fmt.Sprintf("segment=%d", i))
		}
		f, _ := ease.ByKind(s.Kind)
		c.segs = append(c.segs, s)
		c.funcs = append(c.funcs, f)
	}
	return c, nil
}

// RisePlateauFall 建立固定的「上升、平台、下降」三段曲線：
//
//	in_out(riseStart → plateauStart)
//	constant(plateauStart .. plateauEnd)
//	in_out(fallEnd → plateauEnd)      // 反向斜坡，x 往 fallEnd 增加時下降
func RisePlateauFall(riseStart, plateauStart, plateauEnd, fallEnd float64) (*Curve, error) {
	return New(RisePlateauFallSegments(riseStart, plateauStart, plateauEnd, fallEnd)...)
}

// RisePlateauFallSegments 回傳 RisePlateauFall 使用的區段，供設定檔預設值使用。
func RisePlateauFallSegments(riseStart, plateauStart, plateauEnd, fallEnd float64) []Segment {
	return []Segment{
		{Kind: ease.KindInOut, Interval: ease.Interval{Start: riseStart, End: plateauStart}},
		{Kind: ease.KindConstant, Interval: ease.Interval{Start: plateauStart, End: plateauEnd}},
		{Kind: ease.KindInOut, Interval: ease.Interval{Start: fallEnd, End: plateauEnd}},
	}
}

// Sample 回傳 x 的隸屬度，恆在 [0,1]
func (c *Curve) Sample(x float64) float64 {
	v := 0.0
	for i, f := range c.funcs {
		v = max(v, f(x, c.segs[i].Interval.Start, c.segs[i].Interval.End))
	}
	return v
}

// Segments 回傳區段副本
func (c *Curve) Segments() []Segment {
	out := make([]Segment, len(c.segs))
	copy(out, c.segs)
	return out
}

// Support 回傳曲線可能非零的最小/最大 x。沒有區段時 ok=false。
func (c *Curve) Support() (lo, hi float64, ok bool) {
	for i, s := range c.segs {
		if i == 0 {
			lo, hi = s.Interval.Min(), s.Interval.Max()
			continue
		}
		lo = min(lo, s.Interval.Min())
		hi = max(hi, s.Interval.Max())
	}
	return lo, hi, len(c.segs) > 0
}

func (c *Curve) String() string {
	parts := make([]string, 0, len(c.segs))
	for _, s := range c.segs {
		parts = append(parts, string(s.Kind)+s.Interval.String())
	}
	return "max(" + strings.Join(parts, ", ") + ")"
}
