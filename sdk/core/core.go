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

// Package core 提供資料集產生器使用的可注入、可重現亂數來源。
package core

// PRNG 定義核心亂數取樣能力。
//
// 取樣只需要 [0,1) 的均勻浮點數；Uint64 保留給派生子 seed 或自訂分佈使用。
// Float64 的精度（32-bit vs 53-bit）由實作自行決定。
type PRNG interface {
	// Uint64 回傳非負 uint64 亂數。
	Uint64() uint64
	// Float64 回傳 [0,1) 的浮點亂數。
	Float64() float64
}

type PRNGFactory interface {
	// New 以指定 seed 建立新的 PRNG。
	//
	// 合約：同一個實作與版本下，New(seed) 必須是決定性的，
	// 相同的 seed 必須產生相同的輸出序列。測試依此斷言確切的樣本值。
	New(int64) PRNG
}

// DefaultPRNG 實作預設的 PRNGFactory（PCG64）
type DefaultPRNG struct{}

func (d *DefaultPRNG) New(seed int64) PRNG {
	return newPCG64WithSeed(seed)
}

func Default() *DefaultPRNG {
	return &DefaultPRNG{}
}

// Core 封裝 PRNG，並提供特徵取樣使用的工具方法。
type Core struct {
	PRNG
}

// New 允許使用外部自實現的 PRNG 建立 Core。
func New(rng PRNG) *Core {
	return &Core{rng}
}

// Uniform 回傳 [lo,hi) 的均勻亂數：lo + (hi-lo)*u。
//
// lo > hi 時依同一公式落在 (hi,lo]；lo == hi 時恆回傳 lo。
// 範圍合法性由呼叫端（spec.Range.Valid）負責。
func (c *Core) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*c.Float64()
}
