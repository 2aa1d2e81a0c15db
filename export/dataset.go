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

package export

import (
	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/errs"
)

// FromDataset 依資料集的 Profile 建立四個軸（順序固定）：
//
//	a1, a2  連續特徵，帶 range
//	label   樣本 ID，不帶 range
//	class   二元類別，range [0,1]，刻度 [NotSelected, Selected]
func FromDataset(ds *ppcdata.Dataset) (*Axes, error) {
	if ds == nil || ds.Profile == nil {
		return nil, errs.NewFatal("dataset with profile required")
	}
	p := ds.Profile
	if len(p.Features) != 2 {
		return nil, errs.Fatalf("dataset profile %s: expected 2 features, got %d", p.Name, len(p.Features))
	}
	axes := NewAxes()
	cols := [][]float64{ds.A1(), ds.A2()}
	for i, f := range p.Features {
		r := [2]float64(f.Range)
		label := f.Label
		if label == "" {
			label = f.Key
		}
		if err := axes.Add(f.Key, &Axis{Label: label, Range: &r, DataPoints: cols[i]}); err != nil {
			return nil, err
		}
	}
	if err := axes.Add(p.ID.Key, &Axis{Label: p.ID.Label, DataPoints: ds.IDs()}); err != nil {
		return nil, err
	}

	c := p.Class
	pos := []float64{c.NotSelected, c.Selected}
	lbl := []string{c.NotSelectedLabel, c.SelectedLabel}
	if c.Selected < c.NotSelected {
		pos[0], pos[1] = pos[1], pos[0]
		lbl[0], lbl[1] = lbl[1], lbl[0]
	}
	r := [2]float64{min(0, pos[0]), max(1, pos[1])}
	class := &Axis{
		Label:         c.Label,
		Range:         &r,
		TickPositions: pos,
		TickLabels:    lbl,
		DataPoints:    ds.Classes(),
	}
	if err := axes.Add(c.Key, class); err != nil {
		return nil, err
	}
	return axes, nil
}
