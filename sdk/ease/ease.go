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

// Package ease 提供把純量輸入映射到 [0,1] 隸屬度（membership）的 easing 函數。
//
// 所有函數皆為無狀態、無副作用的純函數，簽名一致：f(x, start, end)。
// 區間可以任意順序給定；start > end 代表反向（x 往 start 增加時隸屬度下降）。
// x 落在區間外時一律回傳 0（fail-safe），不視為錯誤。
package ease

import "math"

// Func 是 easing 函數的共同簽名
type Func func(x, start, end float64) float64

// Constant 在 [min(start,end), max(start,end)] 內（含邊界）回傳 1，否則回傳 0。
// 用於標示完全隸屬的平台（plateau）。
func Constant(x, start, end float64) float64 {
	lo, hi := math.Min(start, end), math.Max(start, end)
	if lo <= x && x <= hi {
		return 1
	}
	return 0
}

// Linear 線性斜坡：t = (x - min) / |end - start|，區間外回傳 0，start > end 時回傳 1 - t。
func Linear(x, start, end float64) float64 {
	t, ok := normalize(x, start, end)
	if !ok {
		return 0
	}
	if start > end {
		return 1 - t
	}
	return t
}

// InOut 三次 ease-in-out 斜坡，正規化與反向規則同 Linear。
//
//	t <  0.5 : 4t³
//	t >= 0.5 : 1 - (-2t+2)³/2
//
// 兩端斜率為 0，產生的類別邊界比 Linear 平滑。
func InOut(x, start, end float64) float64 {
	t, ok := normalize(x, start, end)
	if !ok {
		return 0
	}
	if start > end {
		t = 1 - t
	}
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// normalize 把 x 映射到區間內的相對位置 t。
// 區間寬度為 0 或 t 不在 [0,1]（含 NaN）時回傳 ok=false。
// 寬度為 0 的斜坡屬於設定錯誤，curve.New 會在建構時拒絕；這裡只保證不產生 NaN。
func normalize(x, start, end float64) (float64, bool) {
	w := math.Abs(end - start)
	if w == 0 {
		return 0, false
	}
	t := (x - math.Min(start, end)) / w
	if !(t >= 0 && t <= 1) {
		return 0, false
	}
	return t, true
}
