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

package v1

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/dto"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/export"
	"github.com/zintix-labs/ppcdata/server/httperr"
	"github.com/zintix-labs/ppcdata/server/svrcfg"
	"github.com/zintix-labs/ppcdata/stats"
)

const (
	HeaderSeed  = "X-Dataset-Seed"
	HeaderCache = "X-Cache"
)

type DatasetHandler struct {
	lab       *ppcdata.Lab
	cache     *Cache
	maxPoints int
	timeout   time.Duration
	log       *slog.Logger
}

// NewDatasetHandler sCfg 需先經過 Valid()
func NewDatasetHandler(sCfg *svrcfg.SvrCfg) (*DatasetHandler, error) {
	if sCfg == nil || sCfg.Lab == nil {
		return nil, errs.NewFatal("lab is required")
	}
	c, err := NewCache(max(1, sCfg.CacheSize))
	if err != nil {
		return nil, err
	}
	return &DatasetHandler{
		lab:       sCfg.Lab,
		cache:     c,
		maxPoints: sCfg.MaxPoints,
		timeout:   sCfg.Timeout,
		log:       sCfg.Log,
	}, nil
}

// Dataset GET/POST /v1/dataset
//
//	GET /v1/dataset?profile=default&n=2000&seed=7&worker=4&format=yaml&props=true
func (h *DatasetHandler) Dataset(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeDatasetRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	f, err := export.ParseFormat(req.Format)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	p, err := h.resolve(req)
	if err != nil {
		httperr.Errs(w, err)
		return
	}

	// 只有指定 seed 的請求可重現，才進快取
	key := p.key(f, req.Props)
	if p.seeded {
		if b, ok := h.cache.get(key); ok {
			h.write(w, f, p.seed, "HIT", b)
			return
		}
	}

	ds, _, err := h.generate(r.Context(), p)
	if err != nil {
		httperr.Log(h.log, "dataset", err)
		httperr.Errs(w, err)
		return
	}
	axes, err := export.FromDataset(ds)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	var out any = axes
	if req.Props {
		out = export.DefaultProps(axes)
	}
	buf := new(bytes.Buffer)
	if err := export.Write(buf, f, out); err != nil {
		httperr.Errs(w, err)
		return
	}
	b := buf.Bytes()
	status := "BYPASS"
	if p.seeded {
		h.cache.add(key, b)
		status = "MISS"
	}
	h.write(w, f, ds.Seed, status, b)
}

// Report GET/POST /v1/report 參數同 /v1/dataset，回傳資料集的統計摘要。
func (h *DatasetHandler) Report(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeDatasetRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	p, err := h.resolve(req)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	ds, used, err := h.generate(r.Context(), p)
	if err != nil {
		httperr.Log(h.log, "report", err)
		httperr.Errs(w, err)
		return
	}
	rep, err := stats.Analyze(ds)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	w.Header().Set(HeaderSeed, strconv.FormatInt(ds.Seed, 10))
	writeJSON(w, &dto.ReportResult{Report: rep, UsedTime: used.Milliseconds()})
}

func (h *DatasetHandler) write(w http.ResponseWriter, f export.Format, seed int64, cache string, b []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set(HeaderSeed, strconv.FormatInt(seed, 10))
	w.Header().Set(HeaderCache, cache)
	if f == export.FormatZstd {
		w.Header().Set("Content-Disposition", `attachment; filename="dataset`+f.Ext()+`"`)
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

type genResult struct {
	ds   *ppcdata.Dataset
	used time.Duration
	err  error
}

// plan 正規化後的產生參數：points 已套用 Profile 預設，workers <= 1 一律記為 0（單線產生）。
// 產生結果相同的請求得到相同的 plan。
type plan struct {
	profile string
	points  int
	workers int
	seed    int64
	seeded  bool // seed 由呼叫端指定
}

func (p *plan) key(f export.Format, props bool) cacheKey {
	return cacheKey{
		profile: p.profile,
		points:  p.points,
		seed:    p.seed,
		workers: p.workers,
		format:  f,
		props:   props,
	}
}

// resolve 檢查參數並補上預設值；未指定 seed 時在此抽一個隨機 seed。
func (h *DatasetHandler) resolve(req *dto.DatasetRequest) (*plan, error) {
	if req.Points < 0 {
		return nil, errs.Warnf("n must be non-negative: %d", req.Points)
	}
	if req.Workers < 0 || req.Workers > ppcdata.MaxWorkers {
		return nil, errs.Warnf("worker must be between 0 and %d: %d", ppcdata.MaxWorkers, req.Workers)
	}
	name := profileName(req.Profile)
	prof, err := h.lab.Profile(name)
	if err != nil {
		return nil, err
	}
	p := &plan{profile: name, points: req.Points, workers: req.Workers}
	if p.points == 0 {
		p.points = prof.Points
	}
	if p.points > h.maxPoints {
		return nil, errs.Warnf("n exceeds limit %d: %d", h.maxPoints, p.points)
	}
	// 與 GenerateMP 相同：worker 不超過點數
	p.workers = min(p.workers, p.points)
	if p.workers <= 1 {
		p.workers = 0
	}
	if req.Seed != nil {
		p.seed, p.seeded = *req.Seed, true
	} else {
		s, err := ppcdata.RandomSeed()
		if err != nil {
			return nil, err
		}
		p.seed = s
	}
	return p, nil
}

// generate 產生資料集並受 timeout 與請求取消約束。
// 產生本身不可中斷：逾時後結果被丟棄，goroutine 會自行跑完。
func (h *DatasetHandler) generate(ctx context.Context, p *plan) (*ppcdata.Dataset, time.Duration, error) {
	g, err := h.lab.NewGeneratorWithSeed(p.profile, p.seed)
	if err != nil {
		return nil, 0, err
	}
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	done := make(chan genResult, 1)
	go func() {
		var res genResult
		if p.workers > 1 {
			res.ds, res.used, res.err = g.GenerateMP(p.points, p.workers, false)
		} else {
			res.ds, res.used, res.err = g.Generate(p.points, false)
		}
		done <- res
	}()
	select {
	case res := <-done:
		return res.ds, res.used, res.err
	case <-ctx.Done():
		return nil, 0, errs.Wrap(ctx.Err(), "generate dataset")
	}
}
