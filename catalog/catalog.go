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

// Package catalog 持有一組已驗證的資料集設定檔（Profile），以名稱查詢。
//
// 設定檔來源一律以 fs.FS 注入（go:embed 或 os.DirFS），目錄必須是扁平的，
// 只有 .yaml/.yml/.json 會被解析，其他檔案略過。
package catalog

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/spec"
)

var (
	ErrDupName = errs.NewFatal("duplicate profile name")
	ErrFrozen  = errs.NewWarn("can not register when catalog already frozen")
)

// Entry 記錄一個設定檔的來源
type Entry struct {
	Name       string `json:"name"`
	ConfigName string `json:"config"` // 來源檔名；程式內註冊的 Profile 為空字串
}

// Summary 對外（API）展示用的摘要
type Summary struct {
	Name     string       `json:"name"`
	Points   int          `json:"points"`
	Features []string     `json:"features"`
	Ranges   []spec.Range `json:"ranges"`
}

type Catalog struct {
	byName map[string]*spec.Profile
	entry  map[string]Entry
	names  []string // 用來穩定排序
	frozen bool
}

func New() *Catalog {
	return &Catalog{
		byName: map[string]*spec.Profile{},
		entry:  map[string]Entry{},
		names:  make([]string, 0, 8),
	}
}

// Load 掃描所有來源並一次性註冊。
//
// 行為特性：
//  1. Fail-fast：任何一個檔案讀取/解析/檢查失敗，立刻回傳 error。
//  2. 原子性：全部檔案都成功才寫入，不會留下只註冊一半的 catalog。
//  3. 穩定性：依來源順序與檔名排序處理（fs.WalkDir 保證詞典序）。
func Load(src ...fs.FS) (*Catalog, error) {
	if len(src) == 0 {
		return nil, errs.NewFatal("profile sources required")
	}
	c := New()
	profiles := make([]*spec.Profile, 0, 8)
	files := make([]string, 0, 8)
	seenFile := map[string]int{}

	for i, s := range src {
		if s == nil {
			return nil, errs.Fatalf("fs[%d] is nil", i)
		}
		err := fs.WalkDir(s, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == "." {
					return nil
				}
				return errs.Fatalf("profile FS must be flat (no subdirectories): %q", path)
			}
			if !spec.IsProfileFile(path) {
				return nil
			}
			if prev, ok := seenFile[path]; ok {
				return errs.Fatalf("duplicate profile file %q in fs[%d] and fs[%d]", path, prev, i)
			}
			seenFile[path] = i

			raw, rerr := fs.ReadFile(s, path)
			if rerr != nil {
				return errs.Wrap(rerr, "read profile failed").WithExtra(path)
			}
			p, perr := spec.GetProfileByExt(path, raw)
			if perr != nil {
				return errs.Wrap(perr, "parse profile failed").WithExtra(path)
			}
			profiles = append(profiles, p)
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	if len(profiles) == 0 {
		return nil, errs.NewFatal("no profile files found")
	}
	if err := c.register(files, profiles); err != nil {
		return nil, err
	}
	return c, nil
}

// Register 以程式建立的 Profile 註冊（例如測試或 spec.DefaultProfile()）。
func (c *Catalog) Register(ps ...*spec.Profile) error {
	return c.register(make([]string, len(ps)), ps)
}

func (c *Catalog) register(files []string, ps []*spec.Profile) error {
	if c.frozen {
		return ErrFrozen
	}
	seen := map[string]struct{}{}
	for _, p := range ps {
		if p == nil {
			return errs.NewFatal("nil profile")
		}
		key := normName(p.Name)
		if key == "" {
			return errs.NewFatal("profile name required")
		}
		if _, ok := c.byName[key]; ok {
			return errs.Wrap(ErrDupName, fmt.Sprintf("profile %q already registered", key))
		}
		if _, ok := seen[key]; ok {
			return errs.Wrap(ErrDupName, fmt.Sprintf("profile %q declared twice", key))
		}
		seen[key] = struct{}{}
	}
	for i, p := range ps {
		key := normName(p.Name)
		c.byName[key] = p.Clone()
		c.entry[key] = Entry{Name: key, ConfigName: files[i]}
		c.names = append(c.names, key)
	}
	sort.Strings(c.names)
	return nil
}

// Get 依名稱（不分大小寫）取得 Profile 副本
func (c *Catalog) Get(name string) (*spec.Profile, bool) {
	p, ok := c.byName[normName(name)]
	if !ok {
		return nil, false
	}
	return p.Clone(), true
}

func (c *Catalog) Entry(name string) (Entry, bool) {
	e, ok := c.entry[normName(name)]
	return e, ok
}

func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Summaries 依名稱排序回傳所有設定檔摘要
func (c *Catalog) Summaries() []Summary {
	out := make([]Summary, 0, len(c.names))
	for _, n := range c.names {
		p := c.byName[n]
		s := Summary{Name: n, Points: p.Points}
		for _, f := range p.Features {
			s.Features = append(s.Features, f.Key)
			s.Ranges = append(s.Ranges, f.Range)
		}
		out = append(out, s)
	}
	return out
}

func (c *Catalog) Len() int { return len(c.names) }

func (c *Catalog) Freeze() { c.frozen = true }

func (c *Catalog) IsFrozen() bool { return c.frozen }

func normName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
