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

// Package model 把兩個特徵的隸屬度組合成聯合選取機率，並以門檻帶分類。
//
//	p     = curve1(a1) * curve2(a2)          // 獨立假設，無交叉項
//	class = Selected     if band.Lo < p <= band.Hi
//	        NotSelected  otherwise
//
// 預設門檻帶 (0, 0.25] 對應 Selected = 0.75：低機率反而標記為「Selected」。
// 這是參考資料集刻意的設計，視覺化的刻度標籤依賴這個對應。
package model

import (
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/sdk/curve"
	"github.com/zintix-labs/ppcdata/spec"
)

// Classifier 兩路門檻分類器
type Classifier struct {
	Band        spec.Band
	Selected    float64
	NotSelected float64
}

// DefaultClassifier (0, 0.25] → 0.75，其餘 → 0.25
func DefaultClassifier() Classifier {
	return Classifier{Band: spec.Band{Lo: 0, Hi: 0.25}, Selected: 0.75, NotSelected: 0.25}
}

// Classify 回傳 Selected 或 NotSelected 兩者之一
func (c Classifier) Classify(p float64) float64 {
	if c.Band.Contains(p) {
		return c.Selected
	}
	return c.NotSelected
}

// Model 機率模型 + 分類器，建立後唯讀，可被多個 goroutine 共用。
type Model struct {
	curves [spec.FeatureCount]*curve.Curve
	cls    Classifier
}

// New 由 Profile 建立模型；曲線不合法時回傳 Fatal。
func New(p *spec.Profile) (*Model, error) {
	if p == nil {
		return nil, errs.NewFatal("profile required")
	}
	cv, err := p.Curves()
	if err != nil {
		return nil, err
	}
	return &Model{
		curves: cv,
		cls: Classifier{
			Band:        p.Class.Band,
			Selected:    p.Class.Selected,
			NotSelected: p.Class.NotSelected,
		},
	}, nil
}

// Reference 回傳參考資料集（spec.DefaultProfile）的模型
func Reference() *Model {
	m, err := New(spec.DefaultProfile())
	if err != nil {
		panic("model: reference profile invalid: " + err.Error())
	}
	return m
}

// Memberships 回傳兩個特徵各自的隸屬度
func (m *Model) Memberships(a1, a2 float64) (float64, float64) {
	return m.curves[0].Sample(a1), m.curves[1].Sample(a2)
}

// SelectionProbability 回傳 curve1(a1) * curve2(a2)，恆在 [0,1]
func (m *Model) SelectionProbability(a1, a2 float64) float64 {
	p1, p2 := m.Memberships(a1, a2)
	return p1 * p2
}

// Classify 依門檻帶將機率轉成類別值
func (m *Model) Classify(p float64) float64 {
	return m.cls.Classify(p)
}

// Class 回傳樣本的選取機率與類別值
func (m *Model) Class(a1, a2 float64) (prob float64, class float64) {
	prob = m.SelectionProbability(a1, a2)
	return prob, m.cls.Classify(prob)
}

func (m *Model) Classifier() Classifier {
	return m.cls
}
