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

// Package export 把資料集轉成平行座標圖元件使用的軸資料（axes schema），並寫成 JSON / YAML / zstd。
//
// 每個軸的結構：
//
//	{ "label": "A1", "range": [0, 50], "tickPositions": [...], "tickLabels": [...], "dataPoints": [...] }
//
// range、tickPositions、tickLabels 為選填；Axes 保持加入順序輸出。
package export

import (
	"bytes"
	"encoding/json"

	"github.com/zintix-labs/ppcdata/errs"
	"gopkg.in/yaml.v3"
)

// Axis 單一軸
type Axis struct {
	Label         string      `json:"label"                   yaml:"label"`
	Range         *[2]float64 `json:"range,omitempty"         yaml:"range,omitempty"`
	TickPositions []float64   `json:"tickPositions,omitempty" yaml:"tickPositions,omitempty"`
	TickLabels    []string    `json:"tickLabels,omitempty"    yaml:"tickLabels,omitempty"`
	DataPoints    []float64   `json:"dataPoints"              yaml:"dataPoints"`
}

// Len 回傳資料點數
func (a *Axis) Len() int {
	return len(a.DataPoints)
}

func (a *Axis) valid() error {
	if len(a.TickPositions) != len(a.TickLabels) {
		return errs.Fatalf("axis %q: %d tick positions but %d tick labels", a.Label, len(a.TickPositions), len(a.TickLabels))
	}
	if a.Range != nil && a.Range[0] > a.Range[1] {
		return errs.Fatalf("axis %q: range min > max: %v", a.Label, *a.Range)
	}
	return nil
}

// Axes 以鍵保存多個軸並維持加入順序（a1, a2, label, class ...）。
// 所有軸的資料點數必須相同。
type Axes struct {
	keys  []string
	byKey map[string]*Axis
}

func NewAxes() *Axes {
	return &Axes{byKey: map[string]*Axis{}}
}

// Add 加入一個軸。鍵重複、點數不一致、刻度數量不一致皆為 Fatal。
func (a *Axes) Add(key string, ax *Axis) error {
	if a.byKey == nil {
		a.byKey = map[string]*Axis{}
	}
	if key == "" || ax == nil {
		return errs.NewFatal("axis key and axis required")
	}
	if _, dup := a.byKey[key]; dup {
		return errs.Fatalf("duplicate axis key: %q", key)
	}
	if err := ax.valid(); err != nil {
		return err
	}
	if len(a.keys) > 0 {
		if n := a.byKey[a.keys[0]].Len(); n != ax.Len() {
			return errs.Fatalf("axis %q has %d points, expected %d", key, ax.Len(), n)
		}
	}
	a.keys = append(a.keys, key)
	a.byKey[key] = ax
	return nil
}

func (a *Axes) Get(key string) (*Axis, bool) {
	ax, ok := a.byKey[key]
	return ax, ok
}

// Keys 回傳軸的順序（副本）
func (a *Axes) Keys() []string {
	return append([]string(nil), a.keys...)
}

func (a *Axes) Len() int {
	return len(a.keys)
}

// Points 回傳每個軸的資料點數；沒有軸時為 0
func (a *Axes) Points() int {
	if len(a.keys) == 0 {
		return 0
	}
	return a.byKey[a.keys[0]].Len()
}

// MarshalJSON 依加入順序輸出 JSON 物件
func (a *Axes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(a.byKey[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON 依檔案中的順序讀回
func (a *Axes) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return errs.WrapWarn(err, "decode axes failed")
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errs.NewWarn("axes must be a JSON object")
	}
	out := NewAxes()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return errs.WrapWarn(err, "decode axes failed")
		}
		key, _ := tok.(string)
		ax := new(Axis)
		if err := dec.Decode(ax); err != nil {
			return errs.WrapWarn(err, "decode axis failed").WithExtra(key)
		}
		if err := out.Add(key, ax); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return errs.WrapWarn(err, "decode axes failed")
	}
	*a = *out
	return nil
}

// MarshalYAML 依加入順序輸出 YAML mapping
func (a *Axes) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range a.keys {
		v := new(yaml.Node)
		if err := v.Encode(a.byKey[k]); err != nil {
			return nil, err
		}
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, v)
	}
	return n, nil
}

func (a *Axes) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return errs.NewWarn("axes must be a YAML mapping")
	}
	out := NewAxes()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		ax := new(Axis)
		if err := n.Content[i+1].Decode(ax); err != nil {
			return errs.WrapWarn(err, "decode axis failed").WithExtra(key)
		}
		if err := out.Add(key, ax); err != nil {
			return err
		}
	}
	*a = *out
	return nil
}
