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

// Props 平行座標圖元件的完整屬性。Axes 之外的欄位都是顯示設定。
type Props struct {
	Axes            *Axes                   `json:"axes"            yaml:"axes"`
	Order           []string                `json:"order"           yaml:"order"`
	Labels          map[string]LabelSetting `json:"labels"          yaml:"labels"`
	ActiveLabel     string                  `json:"activeLabel"     yaml:"activeLabel"`
	Colors          Colors                  `json:"colors"          yaml:"colors"`
	ColorBar        string                  `json:"colorBar"        yaml:"colorBar"`
	InteractionMode int                     `json:"interactionMode" yaml:"interactionMode"`
	Debug           Debug                   `json:"debug"           yaml:"debug"`
}

// LabelSetting 單一標籤（選取群組）的設定；空值代表使用元件預設
type LabelSetting struct {
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}

type Colors struct {
	Selected ColorSetting `json:"selected" yaml:"selected"`
}

// ColorSetting 色階名稱與取色位置 [0,1]
type ColorSetting struct {
	Scale string  `json:"scale" yaml:"scale"`
	Color float64 `json:"color" yaml:"color"`
}

// Debug 各種 bounding box 的除錯顯示
type Debug struct {
	ShowAxisBoundingBox       bool `json:"showAxisBoundingBox"       yaml:"showAxisBoundingBox"`
	ShowLabelBoundingBox      bool `json:"showLabelBoundingBox"      yaml:"showLabelBoundingBox"`
	ShowCurvesBoundingBox     bool `json:"showCurvesBoundingBox"     yaml:"showCurvesBoundingBox"`
	ShowAxisLineBoundingBox   bool `json:"showAxisLineBoundingBox"   yaml:"showAxisLineBoundingBox"`
	ShowSelectionsBoundingBox bool `json:"showSelectionsBoundingBox" yaml:"showSelectionsBoundingBox"`
	ShowColorBarBoundingBox   bool `json:"showColorBarBoundingBox"   yaml:"showColorBarBoundingBox"`
}

const (
	DefaultLabel           = "Default"
	DefaultColorScale      = "plasma"
	DefaultColorBar        = "hidden"
	DefaultInteractionMode = 2
)

// DefaultProps 以 axes 的順序作為 order，其餘使用元件預設值
func DefaultProps(axes *Axes) *Props {
	return &Props{
		Axes:        axes,
		Order:       axes.Keys(),
		Labels:      map[string]LabelSetting{DefaultLabel: {}},
		ActiveLabel: DefaultLabel,
		Colors: Colors{
			Selected: ColorSetting{Scale: DefaultColorScale, Color: 0.5},
		},
		ColorBar:        DefaultColorBar,
		InteractionMode: DefaultInteractionMode,
	}
}
