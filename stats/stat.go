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

// Package stats 彙整一份資料集的統計報告：類別計數、選取率信賴區間、特徵摘要、機率分布。
package stats

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/model"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var lang language.Tag = language.English

// Confidence 報告中所有信賴區間使用的信心水準
const Confidence float64 = 0.95

// 信賴區間
type CI struct {
	Lo float64 `json:"Lo"`
	Hi float64 `json:"Hi"`
}

// PointStat 點估計 回傳 估計值 以及信賴區間
type PointStat struct {
	Hat float64 `json:"Hat"`
	CI  CI      `json:"CI"`
}

// Report 資料集統計報告
type Report struct {
	Summary  *SummaryReport   `json:"Summary"`
	Features []*FeatureReport `json:"Features"`
	Prob     *ProbReport      `json:"Prob"`
	Dist     *DistReport      `json:"Dist"`
}

type SummaryReport struct {
	Profile          string    `json:"Profile"`
	Seed             int64     `json:"Seed"`
	Workers          int       `json:"Workers"`
	Points           int       `json:"Points"`
	Selected         int       `json:"Selected"`
	NotSelected      int       `json:"NotSelected"`
	SelectedLabel    string    `json:"SelectedLabel"`
	NotSelectedLabel string    `json:"NotSelectedLabel"`
	SelectedRate     PointStat `json:"SelectedRate"` // Clopper–Pearson
}

// FeatureReport 單一特徵的取樣摘要
type FeatureReport struct {
	Key            string     `json:"Key"`
	Range          [2]float64 `json:"Range"`
	Mean           float64    `json:"Mean"`
	Std            float64    `json:"Std"`
	Min            float64    `json:"Min"`
	Max            float64    `json:"Max"`
	MeanMembership float64    `json:"MeanMembership"`
	SelectedMean   float64    `json:"SelectedMean"` // 只看 Selected 樣本；沒有 Selected 時為 0
}

// ProbReport 選取機率摘要
type ProbReport struct {
	Mean     float64   `json:"Mean"`
	Std      float64   `json:"Std"`
	Median   PointStat `json:"Median"`
	P90      float64   `json:"P90"`
	Zero     int       `json:"Zero"`
	ZeroRate PointStat `json:"ZeroRate"`
}

// DistReport 機率分桶落點統計
type DistReport struct {
	Bucket  []string  `json:"Bucket"`
	Collect []int     `json:"Collect"`
	Dist    []float64 `json:"Dist"`
}

// ============================================================
// ** 公開方法 **
// ============================================================

// Analyze 由資料集計算報告。資料集為空時回傳 Warn。
func Analyze(ds *ppcdata.Dataset) (*Report, error) {
	if ds == nil || ds.Len() == 0 {
		return nil, errs.NewWarn("empty dataset")
	}
	if ds.Profile == nil {
		return nil, errs.NewFatal("dataset without profile")
	}
	m, err := model.New(ds.Profile)
	if err != nil {
		return nil, err
	}
	cls := m.Classifier()
	n := ds.Len()

	sel := ds.CountClass(cls.Selected)
	hat, ci := proportionCICP(sel, n, Confidence)
	r := &Report{
		Summary: &SummaryReport{
			Profile:          ds.Profile.Name,
			Seed:             ds.Seed,
			Workers:          ds.Workers,
			Points:           n,
			Selected:         sel,
			NotSelected:      n - sel,
			SelectedLabel:    ds.Profile.Class.SelectedLabel,
			NotSelectedLabel: ds.Profile.Class.NotSelectedLabel,
			SelectedRate:     PointStat{Hat: hat, CI: ci},
		},
	}

	cols := [][]float64{ds.A1(), ds.A2()}
	memb := [][]float64{make([]float64, n), make([]float64, n)}
	for i, p := range ds.Points {
		memb[0][i], memb[1][i] = m.Memberships(p.A1, p.A2)
	}
	for fi, f := range ds.Profile.Features {
		x := cols[fi]
		mean, std := meanStd(x)
		r.Features = append(r.Features, &FeatureReport{
			Key:            f.Key,
			Range:          f.Range,
			Mean:           mean,
			Std:            std,
			Min:            floats.Min(x),
			Max:            floats.Max(x),
			MeanMembership: stat.Mean(memb[fi], nil),
			SelectedMean:   selectedMean(ds, x, cls.Selected),
		})
	}

	probs := ds.Probs()
	r.Prob = probReport(probs)
	r.Dist = distReport(probs)
	return r, nil
}

func (r *Report) WriteWith(w io.Writer, rep ReportRender) error {
	return rep.Write(w, r)
}

// StdOut 印出用時與摘要表
func (r *Report) StdOut(ut time.Duration) {
	formatDuration(ut, r.Summary.Points)
	fmt.Println(r.Table())
}

// Table 回傳摘要表（不含用時）
func (r *Report) Table() string {
	keys, msg := r.fmtBasic()
	return fmtTable(r.Summary.Profile, keys, msg)
}

// ============================================================
// ** 內部方法 **
// ============================================================

// meanStd 樣本數不足 2 時標準差記為 0（避免 NaN 進入 JSON）
func meanStd(x []float64) (float64, float64) {
	if len(x) < 2 {
		return stat.Mean(x, nil), 0
	}
	return stat.MeanStdDev(x, nil)
}

func selectedMean(ds *ppcdata.Dataset, x []float64, selected float64) float64 {
	w := make([]float64, len(x))
	k := 0
	for i, p := range ds.Points {
		if p.Class == selected {
			w[i] = 1
			k++
		}
	}
	if k == 0 {
		return 0
	}
	return stat.Mean(x, w)
}

func probReport(probs []float64) *ProbReport {
	n := len(probs)
	sorted := append([]float64(nil), probs...)
	sort.Float64s(sorted)

	mean, std := meanStd(probs)
	zero := 0
	for _, p := range sorted {
		if p > 0 {
			break
		}
		zero++
	}
	zHat, zCI := proportionCICP(zero, n, Confidence)
	mLo, mHi := quantileCI(sorted, 0.5, Confidence)
	return &ProbReport{
		Mean:     mean,
		Std:      std,
		Median:   PointStat{Hat: stat.Quantile(0.5, stat.Empirical, sorted, nil), CI: CI{Lo: mLo, Hi: mHi}},
		P90:      stat.Quantile(0.9, stat.Empirical, sorted, nil),
		Zero:     zero,
		ZeroRate: PointStat{Hat: zHat, CI: zCI},
	}
}

func distReport(probs []float64) *DistReport {
	L := Buckets.Len()
	d := &DistReport{
		Bucket:  Buckets.Labels(),
		Collect: make([]int, L),
		Dist:    make([]float64, L),
	}
	for _, p := range probs {
		d.Collect[Buckets.Index(p)]++
	}
	for i, c := range d.Collect {
		d.Dist[i] = float64(c) / float64(len(probs))
	}
	return d
}

func formatDuration(d time.Duration, points int) {
	p := message.NewPrinter(lang)
	if d < 0 {
		d = -d
	}
	sec := d.Seconds()
	if sec <= 0 {
		sec = 1e-9
	}
	pps := int(float64(points) / sec)
	if sec < 60.0 {
		p.Printf("used: %.3f seconds\npps : %d points/sec\n", sec, pps)
		return
	}
	s := int(d.Seconds()) % 60
	m := int(d.Minutes()) % 60
	h := int(d.Hours())
	if h == 0 {
		p.Printf("used: %dm %ds\npps : %d points/sec\n", m, s, pps)
		return
	}
	p.Printf("used: %dh:%dm:%ds\npps : %d points/sec\n", h, m, s, pps)
}

func (r *Report) fmtBasic() ([]string, map[string]string) {
	p := message.NewPrinter(lang)
	s := r.Summary
	keys := []string{"Profile", "Seed", "Workers", "Points", s.SelectedLabel, s.NotSelectedLabel, "Selected Rate", "Rate 95% CI"}
	basic := map[string]string{
		"Profile":          s.Profile,
		"Seed":             fmt.Sprintf("%d", s.Seed),
		"Workers":          p.Sprintf("%d", s.Workers),
		"Points":           p.Sprintf("%d", s.Points),
		s.SelectedLabel:    p.Sprintf("%d", s.Selected),
		s.NotSelectedLabel: p.Sprintf("%d", s.NotSelected),
		"Selected Rate":    p.Sprintf("%.2f %%", 100.0*s.SelectedRate.Hat),
		"Rate 95% CI":      p.Sprintf("[%.2f%%,%.2f%%]", 100.0*s.SelectedRate.CI.Lo, 100.0*s.SelectedRate.CI.Hi),
	}
	for _, f := range r.Features {
		k := f.Key + " mean/std"
		keys = append(keys, k)
		basic[k] = p.Sprintf("%.3f / %.3f", f.Mean, f.Std)
		k = f.Key + " membership"
		keys = append(keys, k)
		basic[k] = p.Sprintf("%.4f", f.MeanMembership)
	}
	keys = append(keys, "Prob mean", "Prob median", "Prob = 0")
	basic["Prob mean"] = p.Sprintf("%.4f", r.Prob.Mean)
	basic["Prob median"] = p.Sprintf("%.4f", r.Prob.Median.Hat)
	basic["Prob = 0"] = p.Sprintf("%d", r.Prob.Zero)
	return keys, basic
}

func fmtTable(title string, keys []string, msg map[string]string) string {
	p := message.NewPrinter(lang)
	maxKeyLen := runewidth.StringWidth(title)
	maxValLen := 0
	for k, m := range msg {
		if w := runewidth.StringWidth(k); w > maxKeyLen {
			maxKeyLen = w
		}
		if w := runewidth.StringWidth(m); w > maxValLen {
			maxValLen = w
		}
	}
	maxKeyLen += 2
	maxValLen += 2

	divider := "+" + strings.Repeat("-", maxKeyLen) + "+" + strings.Repeat("-", maxValLen) + "+\n"
	top := "+" + strings.Repeat("-", maxKeyLen+1+maxValLen) + "+\n"

	totalInner := maxKeyLen + maxValLen + 1
	titleW := runewidth.StringWidth(title)
	left := (totalInner - titleW) / 2
	right := totalInner - titleW - left

	var sb strings.Builder
	sb.WriteString(top)
	sb.WriteString(p.Sprintf("|%s%s%s|\n", blank(left), title, blank(right)))
	sb.WriteString(divider)
	for _, k := range keys {
		sb.WriteString(p.Sprintf("| %s%s | %s%s |\n", k, blank(maxKeyLen-2-runewidth.StringWidth(k)), msg[k], blank(maxValLen-2-runewidth.StringWidth(msg[k]))))
	}
	sb.WriteString(divider)
	return sb.String()
}

func blank(w int) string {
	if w < 1 {
		return ""
	}
	return strings.Repeat(" ", w)
}
