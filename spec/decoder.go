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

package spec

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
	"gopkg.in/yaml.v3"
)

// GetProfileByYAML
// 會讀取 YAML 設定、補預設值並執行檢查後回傳。未知欄位（拼錯）直接報錯。
func GetProfileByYAML(data []byte) (*Profile, error) {
	p := &Profile{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal profile yaml")
	}
	if err := p.init(); err != nil {
		return nil, errs.Wrap(err, "profile initialized err")
	}
	return p, nil
}

// GetProfileByJSON
// 會讀取 Json 設定、補預設值並執行檢查後回傳
func GetProfileByJSON(data []byte) (*Profile, error) {
	p := &Profile{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, errs.Wrap(err, "failed to unmarshal profile json")
	}
	if err := p.init(); err != nil {
		return nil, errs.Wrap(err, "profile initialized err")
	}
	return p, nil
}

// GetProfileByExt 依副檔名選擇解碼方式
func GetProfileByExt(filename string, data []byte) (*Profile, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return GetProfileByYAML(data)
	case ".json":
		return GetProfileByJSON(data)
	default:
		return nil, errs.Fatalf("unsupported profile format: %q", filename)
	}
}

// IsProfileFile 回傳檔名是否為可辨識的設定檔
func IsProfileFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json":
		return !strings.HasPrefix(filepath.Base(filename), ".")
	default:
		return false
	}
}

// ToYAML 將 Profile 輸出成 YAML（用於 `gen -dump-profile`）
func (p *Profile) ToYAML() ([]byte, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return nil, errs.Wrap(err, "marshal profile yaml")
	}
	return b, nil
}
