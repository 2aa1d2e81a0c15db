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

// Package penguin 把企鵝量測資料（CSV）轉成平行座標圖的軸資料。
//
// 類別欄位對應到 [0,1] 內的固定刻度：
//
//	species  Adelie 0.25 / Chinstrap 0.5 / Gentoo 0.75
//	island   Biscoe 0.25 / Dream 0.5 / Torgersen 0.75
//	sex      female 0.25 / male 0.75
package penguin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/export"
)

// Columns CSV 欄位順序（第一列為標題，讀取時略過）
var Columns = []string{"id", "species", "island", "bill_length_mm", "bill_depth_mm", "flipper_length_mm", "body_mass_g", "sex", "year"}

// Level 類別值與其刻度位置
type Level struct {
	Name  string
	Value float64
}

// Category 一個類別欄位
type Category struct {
	Key    string
	Levels []Level
}

var (
	Species = Category{Key: "species", Levels: []Level{{"Adelie", 0.25}, {"Chinstrap", 0.5}, {"Gentoo", 0.75}}}
	Island  = Category{Key: "island", Levels: []Level{{"Biscoe", 0.25}, {"Dream", 0.5}, {"Torgersen", 0.75}}}
	Sex     = Category{Key: "sex", Levels: []Level{{"female", 0.25}, {"male", 0.75}}}
)

// Value 回傳類別名稱對應的刻度位置（大小寫需完全相同）
func (c Category) Value(name string) (float64, bool) {
	for _, l := range c.Levels {
		if l.Name == name {
			return l.Value, true
		}
	}
	return 0, false
}

// Axis 建立類別軸：range [0,1]，刻度為各類別
func (c Category) Axis(data []float64) *export.Axis {
	r := [2]float64{0, 1}
	pos := make([]float64, len(c.Levels))
	lbl := make([]string, len(c.Levels))
	for i, l := range c.Levels {
		pos[i], lbl[i] = l.Value, l.Name
	}
	return &export.Axis{Label: c.Key, Range: &r, TickPositions: pos, TickLabels: lbl, DataPoints: data}
}

// Row 一筆已驗證的資料
type Row struct {
	Line          int
	ID            int
	Species       string
	Island        string
	BillLength    float64
	BillDepth     float64
	FlipperLength int
	BodyMass      int
	Sex           string
	Year          int
}

// Options 讀取選項
type Options struct {
	// SkipInvalid 為 true 時略過無法解析的列（例如 "NA"），否則遇到第一個錯誤就停止
	SkipInvalid bool
}

// Result 讀取結果；Skipped 只在 SkipInvalid 時有值
type Result struct {
	Rows    []Row
	Skipped []error
}

// ReadCSV 讀取 CSV。欄位數錯誤、數值無法解析、未知類別皆為 Warn，錯誤訊息帶行號。
func ReadCSV(r io.Reader, opt Options) (*Result, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Columns)
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.NewWarn("empty csv")
		}
		return nil, errs.WrapWarn(err, "read csv header failed")
	}

	res := &Result{}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var row Row
		if err == nil {
			line, _ := cr.FieldPos(0)
			row, err = parseRow(rec, line)
		} else {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			err = errs.WrapWarn(err, "read csv failed").WithExtra(fmt.Sprintf("line=%d", line))
		}
		if err != nil {
			if !opt.SkipInvalid {
				return nil, err
			}
			res.Skipped = append(res.Skipped, err)
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	if len(res.Rows) == 0 {
		return nil, errs.NewWarn("no valid rows")
	}
	return res, nil
}

func parseRow(rec []string, line int) (Row, error) {
	where := fmt.Sprintf("line=%d", line)
	row := Row{Line: line}
	var err error
	fail := func(col int, e error) (Row, error) {
		return Row{}, errs.WrapWarn(e, fmt.Sprintf("invalid %s: %q", Columns[col], rec[col])).WithExtra(where)
	}

	if row.ID, err = strconv.Atoi(strings.TrimSpace(rec[0])); err != nil {
		return fail(0, err)
	}
	row.Species, row.Island, row.Sex = strings.TrimSpace(rec[1]), strings.TrimSpace(rec[2]), strings.TrimSpace(rec[7])
	for _, c := range []struct {
		cat Category
		v   string
	}{{Species, row.Species}, {Island, row.Island}, {Sex, row.Sex}} {
		if _, ok := c.cat.Value(c.v); !ok {
			return Row{}, errs.Warnf("unknown %s: %q", c.cat.Key, c.v).WithExtra(where)
		}
	}
	if row.BillLength, err = strconv.ParseFloat(strings.TrimSpace(rec[3]), 64); err != nil {
		return fail(3, err)
	}
	if row.BillDepth, err = strconv.ParseFloat(strings.TrimSpace(rec[4]), 64); err != nil {
		return fail(4, err)
	}
	if row.FlipperLength, err = strconv.Atoi(strings.TrimSpace(rec[5])); err != nil {
		return fail(5, err)
	}
	if row.BodyMass, err = strconv.Atoi(strings.TrimSpace(rec[6])); err != nil {
		return fail(6, err)
	}
	if row.Year, err = strconv.Atoi(strings.TrimSpace(rec[8])); err != nil {
		return fail(8, err)
	}
	return row, nil
}

// Axes 依欄位順序建立軸；類別欄位使用固定刻度，其餘欄位不帶 range。
func Axes(rows []Row) (*export.Axes, error) {
	if len(rows) == 0 {
		return nil, errs.NewWarn("no rows")
	}
	n := len(rows)
	cols := make([][]float64, len(Columns))
	for i := range cols {
		cols[i] = make([]float64, n)
	}
	for i, r := range rows {
		cols[0][i] = float64(r.ID)
		cols[1][i], _ = Species.Value(r.Species)
		cols[2][i], _ = Island.Value(r.Island)
		cols[3][i] = r.BillLength
		cols[4][i] = r.BillDepth
		cols[5][i] = float64(r.FlipperLength)
		cols[6][i] = float64(r.BodyMass)
		cols[7][i], _ = Sex.Value(r.Sex)
		cols[8][i] = float64(r.Year)
	}

	cats := map[string]Category{Species.Key: Species, Island.Key: Island, Sex.Key: Sex}
	axes := export.NewAxes()
	for i, key := range Columns {
		ax := &export.Axis{Label: key, DataPoints: cols[i]}
		if c, ok := cats[key]; ok {
			ax = c.Axis(cols[i])
		}
		if err := axes.Add(key, ax); err != nil {
			return nil, err
		}
	}
	return axes, nil
}

// Load 讀取 CSV 並直接轉成軸資料
func Load(r io.Reader, opt Options) (*export.Axes, *Result, error) {
	res, err := ReadCSV(r, opt)
	if err != nil {
		return nil, nil, err
	}
	axes, err := Axes(res.Rows)
	if err != nil {
		return nil, nil, err
	}
	return axes, res, nil
}
