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

import "fmt"

// ProbBuckets
//
// 用來把選取機率定位到分布統計的位置。
//
// 區間：[0,0], (0,0.05], (0.05,0.1], (0.1,0.25], (0.25,0.5], (0.5,0.75], (0.75,1]
//   - (0.1,0.25] 的上界與預設門檻帶對齊，前四格加總即為 Selected 的候選範圍
type ProbBuckets struct {
	edges []float64
	label []string
}

// Buckets 預設分桶，請勿修改
var Buckets *ProbBuckets = newProbBuckets(0.05, 0.1, 0.25, 0.5, 0.75, 1)

func newProbBuckets(edges ...float64) *ProbBuckets {
	b := &ProbBuckets{
		edges: append([]float64(nil), edges...),
		label: make([]string, 0, len(edges)+1),
	}
	b.label = append(b.label, "[0,0]")
	lo := 0.0
	for _, e := range edges {
		b.label = append(b.label, fmt.Sprintf("(%g,%g]", lo, e))
		lo = e
	}
	return b
}

func (b *ProbBuckets) Labels() []string {
	return b.label
}

func (b *ProbBuckets) Len() int {
	return len(b.label)
}

// Index 回傳 p 所在的桶；p <= 0 落在 [0,0]，p > 1 併入最後一格
func (b *ProbBuckets) Index(p float64) int {
	if p <= 0 {
		return 0
	}
	for i, e := range b.edges {
		if p <= e {
			return i + 1
		}
	}
	return len(b.edges)
}
