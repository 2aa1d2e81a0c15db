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

// Package ppcdata 產生給平行座標圖（parallel coordinates）元件使用的合成二特徵標記資料集。
//
// 管線是單向的：
//
//	均勻取樣 (a1, a2) → 隸屬曲線 → 選取機率 p = m1·m2 → 門檻分類 → 依 ID 排序的資料集 → 匯出
//
// Lab 是「組裝器（assembler）」：持有設定檔目錄（catalog）與亂數工廠（PRNGFactory），
// 並提供建立 Generator 的入口。設定檔來源一律以 fs.FS 注入，Lab 本身不綁定任何檔案路徑。
//
// 典型用法：
//
//	lab, _ := ppcdata.NewAuto(core.Default(), ppcdata.Profiles(profiles.FS))
//	g, _ := lab.NewGeneratorWithSeed("default", 42)
//	ds, _, _ := g.Generate(2000, false)
//	axes := export.FromDataset(ds)
package ppcdata

import (
	"io/fs"

	"github.com/zintix-labs/ppcdata/catalog"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/spec"
)

// Profiles 用來把一或多個設定檔來源（fs.FS）打包成 New() 需要的參數。
func Profiles(src ...fs.FS) []fs.FS {
	return src
}

// Lab 組裝 catalog 與 PRNGFactory。
// catalog 在 Freeze 之後才允許建立 Generator，避免執行期間設定被替換。
type Lab struct {
	cat *catalog.Catalog
	cf  core.PRNGFactory
}

// New 建立 Lab 並載入所有設定檔（fail-fast、原子性）。
func New(cf core.PRNGFactory, src []fs.FS) (*Lab, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	cat, err := catalog.Load(src...)
	if err != nil {
		return nil, err
	}
	return &Lab{cat: cat, cf: cf}, nil
}

// NewAuto 建立 Lab 並直接凍結 catalog，進入執行階段。
func NewAuto(cf core.PRNGFactory, src []fs.FS) (*Lab, error) {
	lab, err := New(cf, src)
	if err != nil {
		return nil, err
	}
	lab.Freeze()
	return lab, nil
}

// NewWithProfiles 以程式建立的 Profile 組裝 Lab（已凍結），不需要任何 fs.FS。
func NewWithProfiles(cf core.PRNGFactory, ps ...*spec.Profile) (*Lab, error) {
	if cf == nil {
		return nil, errs.NewFatal("prng factory required")
	}
	if len(ps) == 0 {
		return nil, errs.NewFatal("profiles required")
	}
	cat := catalog.New()
	if err := cat.Register(ps...); err != nil {
		return nil, err
	}
	cat.Freeze()
	return &Lab{cat: cat, cf: cf}, nil
}

// Register 在凍結前追加 Profile
func (l *Lab) Register(ps ...*spec.Profile) error {
	return l.cat.Register(ps...)
}

func (l *Lab) Freeze() {
	l.cat.Freeze()
}

func (l *Lab) Names() []string {
	return l.cat.Names()
}

func (l *Lab) Summaries() []catalog.Summary {
	return l.cat.Summaries()
}

// Profile 回傳指定名稱的 Profile 副本
func (l *Lab) Profile(name string) (*spec.Profile, error) {
	p, ok := l.cat.Get(name)
	if !ok {
		return nil, errs.Warnf("profile not found: %q", name)
	}
	return p, nil
}

// NewGenerator 以隨機 seed 建立 Generator（seed 會被記錄在 Dataset 內以便重現）。
func (l *Lab) NewGenerator(name string) (*Generator, error) {
	seed, err := RandomSeed()
	if err != nil {
		return nil, err
	}
	return l.NewGeneratorWithSeed(name, seed)
}

// NewGeneratorWithSeed 與 NewGenerator 相同，但由呼叫端指定 seed。
// 同一份 Profile + 同一個 seed 會產生完全相同的資料集。
func (l *Lab) NewGeneratorWithSeed(name string, seed int64) (*Generator, error) {
	if !l.cat.IsFrozen() {
		return nil, errs.NewFatal("catalog is not frozen yet")
	}
	p, err := l.Profile(name)
	if err != nil {
		return nil, err
	}
	return NewGenerator(p, l.cf, seed)
}

// NewGeneratorByYAML 以臨時的 YAML 設定建立 Generator（不會註冊進 catalog）。
func (l *Lab) NewGeneratorByYAML(raw []byte, seed int64) (*Generator, error) {
	p, err := spec.GetProfileByYAML(raw)
	if err != nil {
		return nil, err
	}
	return NewGenerator(p, l.cf, seed)
}

// NewGeneratorByJSON 以臨時的 JSON 設定建立 Generator（不會註冊進 catalog）。
func (l *Lab) NewGeneratorByJSON(raw []byte, seed int64) (*Generator, error) {
	p, err := spec.GetProfileByJSON(raw)
	if err != nil {
		return nil, err
	}
	return NewGenerator(p, l.cf, seed)
}
