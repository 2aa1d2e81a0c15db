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
	"io"
	"sync"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/model"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/spec"
)

// MaxWorkers 平行產生時的 chunk 上限
const MaxWorkers int = 256

// Generator 依 Profile 抽樣並標記資料點。
//
// 每次呼叫 Generate / GenerateMP 都從 initSeed 重新開始，
// 因此同一個 Generator 重複呼叫會得到相同結果。
type Generator struct {
	ProfileName string
	profile     *spec.Profile
	model       *model.Model
	cf          core.PRNGFactory
	initSeed    int64
}

// NewGenerator 驗證 Profile 並建立 Generator；設定錯誤在取樣前就回傳（Fatal）。
func NewGenerator(p *spec.Profile, cf core.PRNGFactory, seed int64) (*Generator, error) {
	if p == nil {
		return nil, errs.NewFatal("profile required")
	}
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	if len(p.Features) != spec.FeatureCount {
		return nil, errs.Fatalf("exactly %d features required, got %d", spec.FeatureCount, len(p.Features))
	}
	for _, f := range p.Features {
		if err := f.Range.Valid(); err != nil {
			return nil, errs.Wrap(err, "invalid feature range").WithExtra(f.Key)
		}
	}
	m, err := model.New(p)
	if err != nil {
		return nil, err
	}
	return &Generator{
		ProfileName: p.Name,
		profile:     p.Clone(),
		model:       m,
		cf:          cf,
		initSeed:    seed,
	}, nil
}

func (g *Generator) Seed() int64 { return g.initSeed }

func (g *Generator) Model() *model.Model { return g.model }

// Profile 回傳 Profile 副本
func (g *Generator) Profile() *spec.Profile { return g.profile.Clone() }

// DefaultPoints 回傳 Profile 宣告的點數
func (g *Generator) DefaultPoints() int { return g.profile.Points }

// Generate 單線產生：以一個 core 依序為每個 ID 抽 a1、a2 並分類，回傳資料集與用時。
func (g *Generator) Generate(n int, showpb bool) (*Dataset, time.Duration, error) {
	if n < 1 {
		return nil, 0, errs.NewWarn("points must > 0")
	}
	pts := make([]Point, n)
	c := core.New(g.cf.New(g.initSeed))

	bar := newBar(n, showpb)
	g.fill(c, pts, 0, bar)
	used := time.Since(bar.StartTime())
	bar.Finish()

	return g.dataset(pts, 0), used, nil
}

// GenerateMP 平行產生：把 [0,n) 切成 workers 個連續區段，每段使用由 initSeed 派生的獨立 core。
//
// 每個 goroutine 只寫自己的區段，輸出仍依 ID 排序；
// 單一樣本 (a1,a2) → 類別 的對應與單線版本完全相同，只是抽樣序列不同。
// 結果由 (seed, workers) 決定，workers 改變時樣本值也會改變。
func (g *Generator) GenerateMP(n int, workers int, showpb bool) (*Dataset, time.Duration, error) {
	if n < 1 {
		return nil, 0, errs.NewWarn("points must > 0")
	}
	if workers < 1 || workers > MaxWorkers {
		return nil, 0, errs.Warnf("workers must be between 1 and %d", MaxWorkers)
	}
	workers = min(workers, n)
	pts := make([]Point, n)

	// 先依序派生 seed，確保與 goroutine 排程無關
	sm := newSeedMaker(g.initSeed)
	seeds := make([]int64, workers)
	for i := range seeds {
		seeds[i] = sm.next()
	}

	bar := newBar(n, showpb)
	wg := new(sync.WaitGroup)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		lo, hi := chunk(n, workers, w)
		go func(w, lo, hi int) {
			defer wg.Done()
			c := core.New(g.cf.New(seeds[w]))
			g.fill(c, pts[lo:hi], lo, bar)
		}(w, lo, hi)
	}
	wg.Wait()
	used := time.Since(bar.StartTime())
	bar.Finish()

	return g.dataset(pts, workers), used, nil
}

// Classify 回傳單一樣本的選取機率與類別值（不涉及亂數）
func (g *Generator) Classify(a1, a2 float64) (prob float64, class float64) {
	return g.model.Class(a1, a2)
}

// fill 為 dst 內每個位置抽樣並分類，ID 由 offset 起算。
func (g *Generator) fill(c *core.Core, dst []Point, offset int, bar *pb.ProgressBar) {
	r1 := g.profile.Features[0].Range
	r2 := g.profile.Features[1].Range
	for i := range dst {
		a1 := c.Uniform(r1.Min(), r1.Max())
		a2 := c.Uniform(r2.Min(), r2.Max())
		prob, class := g.model.Class(a1, a2)
		dst[i] = Point{ID: offset + i, A1: a1, A2: a2, Prob: prob, Class: class}
		bar.Increment()
	}
}

func (g *Generator) dataset(pts []Point, workers int) *Dataset {
	return &Dataset{
		Profile: g.profile.Clone(),
		Seed:    g.initSeed,
		Workers: workers,
		Points:  pts,
	}
}

// chunk 回傳第 w 個區段 [lo,hi)，餘數平均分給前面的區段
func chunk(n, workers, w int) (int, int) {
	size, rem := n/workers, n%workers
	lo := w*size + min(w, rem)
	hi := lo + size
	if w < rem {
		hi++
	}
	return lo, hi
}

func newBar(n int, show bool) *pb.ProgressBar {
	bar := pb.New(n)
	if !show {
		bar.SetWriter(io.Discard)
	}
	return bar.Start()
}
