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

package ease

import (
	"fmt"
	"math"

	"github.com/zintix-labs/ppcdata/errs"
)

// Kind 是 easing 函數在設定檔中的名稱
type Kind string

const (
	KindConstant Kind = "constant"
	KindLinear   Kind = "linear"
	KindInOut    Kind = "in_out"
)

var byKind = map[Kind]Func{
	KindConstant: Constant,
	KindLinear:   Linear,
	KindInOut:    InOut,
}

// ByKind 依名稱取得 easing 函數
func ByKind(k Kind) (Func, bool) {
	f, ok := byKind[k]
	return f, ok
}

// IsRamp 回傳該種類是否需要非零寬度（會做除法正規化）。
func (k Kind) IsRamp() bool {
	return k == KindLinear || k == KindInOut
}

// Interval 是 easing 的轉換區間，Start > End 代表反向。
type Interval struct {
	Start float64 `yaml:"start" json:"start"`
	End   float64 `yaml:"end"   json:"end"`
}

func (iv Interval) Min() float64 { return math.Min(iv.Start, iv.End) }

func (iv Interval) Max() float64 { return math.Max(iv.Start, iv.End) }

func (iv Interval) Width() float64 { return math.Abs(iv.End - iv.Start) }

// Reversed 回傳端點對調後的區間
func (iv Interval) Reversed() Interval { return Interval{Start: iv.End, End: iv.Start} }

func (iv Interval) String() string {
	return fmt.Sprintf("[%g→%g]", iv.Start, iv.End)
}

// Valid 檢查區間是否可用於指定種類的 easing：端點必須有限；斜坡的寬度不得為 0。
func (iv Interval) Valid(k Kind) error {
	if _, ok := byKind[k]; !ok {
		return errs.Fatalf("unknown easing kind: %q", k)
	}
	if math.IsNaN(iv.Start) || math.IsNaN(iv.End) || math.IsInf(iv.Start, 0) || math.IsInf(iv.End, 0) {
		return errs.Fatalf("non-finite easing interval: %s", iv)
	}
	if k.IsRamp() && iv.Width() == 0 {
		return errs.Fatalf("zero width %s interval: %s", k, iv)
	}
	return nil
}
