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
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/zintix-labs/ppcdata/corefmt"
	"github.com/zintix-labs/ppcdata/errs"
	"gopkg.in/yaml.v3"
)

// Format 輸出格式
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
	FormatZstd // JSON + zstd
)

// MaxReadBytes 讀取 zstd 檔時解壓後的大小上限
const MaxReadBytes int64 = 256 << 20

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatZstd:
		return "zstd"
	}
	return "unknown"
}

// Ext 回傳建議的副檔名
func (f Format) Ext() string {
	switch f {
	case FormatYAML:
		return ".yaml"
	case FormatZstd:
		return ".json.zst"
	}
	return ".json"
}

// ContentType 回傳 HTTP Content-Type
func (f Format) ContentType() string {
	switch f {
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatZstd:
		return "application/zstd"
	}
	return "application/json; charset=utf-8"
}

// ParseFormat 接受 json / yaml / yml / zst / zstd（不分大小寫）
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "zst", "zstd":
		return FormatZstd, nil
	}
	return FormatJSON, errs.Warnf("unknown format: %q", s)
}

// FormatByPath 依副檔名決定格式：.json / .yaml / .yml / .json.zst
func FormatByPath(path string) (Format, error) {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".json.zst"):
		return FormatZstd, nil
	case strings.HasSuffix(lower, ".json"):
		return FormatJSON, nil
	case strings.HasSuffix(lower, ".yaml"), strings.HasSuffix(lower, ".yml"):
		return FormatYAML, nil
	}
	return FormatJSON, errs.Warnf("unsupported output extension: %s", filepath.Base(path))
}

// Write 以指定格式輸出 v（*Axes 或 *Props）
func Write(w io.Writer, f Format, v any) error {
	switch f {
	case FormatYAML:
		return WriteYAML(w, v)
	case FormatZstd:
		return WriteZstd(w, v)
	}
	return WriteJSON(w, v)
}

// WriteJSON 以 4 格縮排輸出
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return errs.Wrap(err, "json encode failed")
	}
	return nil
}

// WriteYAML 最內層的數值陣列輸出成 flow style
func WriteYAML(w io.Writer, v any) error {
	return corefmt.WriteReadableYAML(w, v)
}

// WriteZstd 輸出壓縮過的精簡 JSON
func WriteZstd(w io.Writer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return errs.Wrap(err, "json encode failed")
	}
	return corefmt.WriteZstd(w, b)
}

func ReadJSON(r io.Reader) (*Axes, error) {
	axes := NewAxes()
	if err := json.NewDecoder(r).Decode(axes); err != nil {
		return nil, errs.WrapWarn(err, "read axes json failed")
	}
	return axes, nil
}

func ReadYAML(r io.Reader) (*Axes, error) {
	axes := NewAxes()
	if err := yaml.NewDecoder(r).Decode(axes); err != nil {
		return nil, errs.WrapWarn(err, "read axes yaml failed")
	}
	return axes, nil
}

func ReadZstd(r io.Reader, maxBytes int64) (*Axes, error) {
	b, err := corefmt.ReadZstd(r, maxBytes)
	if err != nil {
		return nil, err
	}
	return ReadJSON(bytes.NewReader(b))
}

// Read 以指定格式讀回 Axes
func Read(r io.Reader, f Format) (*Axes, error) {
	switch f {
	case FormatYAML:
		return ReadYAML(r)
	case FormatZstd:
		return ReadZstd(r, MaxReadBytes)
	}
	return ReadJSON(r)
}

// WriteFile 依副檔名選擇格式寫檔，必要時建立目錄
func WriteFile(path string, v any) error {
	f, err := FormatByPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errs.Wrap(err, "create output dir failed")
		}
	}
	fp, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create output file failed")
	}
	if err := Write(fp, f, v); err != nil {
		fp.Close()
		return err
	}
	if err := fp.Close(); err != nil {
		return errs.Wrap(err, "close output file failed")
	}
	return nil
}

// ReadFile 依副檔名讀回 Axes
func ReadFile(path string) (*Axes, error) {
	f, err := FormatByPath(path)
	if err != nil {
		return nil, err
	}
	fp, err := os.Open(path)
	if err != nil {
		return nil, errs.WrapWarn(err, "open axes file failed")
	}
	defer fp.Close()
	return Read(fp, f)
}
