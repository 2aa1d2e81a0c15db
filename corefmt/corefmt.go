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

// Package corefmt 放共用的輸出格式工具：易讀 YAML 與 zstd 壓縮串流。
package corefmt

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/zintix-labs/ppcdata/errs"
	"gopkg.in/yaml.v3"
)

// WriteReadableYAML 以 yaml.v3 輸出 v。
//
// 只含純量的陣列（最內層一維陣列或本身就是一維）輸出成 flow style：[a, b, c]；
// 含有子陣列或物件的陣列維持預設 block（展開）。
func WriteReadableYAML(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return errs.Wrap(err, "yaml encode failed")
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return errs.Wrap(err, "yaml write failed")
	}
	return enc.Close()
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
	case yaml.SequenceNode:
		flat := true
		for _, c := range n.Content {
			if c != nil && c.Kind != yaml.ScalarNode {
				flat = false
			}
			styleReadableSequences(c)
		}
		if flat {
			n.Style = yaml.FlowStyle
		}
	}
}

// WriteZstd 把 payload 以 zstd 壓縮後寫入 w
func WriteZstd(w io.Writer, payload []byte) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return errs.Wrap(err, "zstd writer init failed")
	}
	if _, err := enc.Write(payload); err != nil {
		enc.Close()
		return errs.Wrap(err, "zstd write failed")
	}
	if err := enc.Close(); err != nil {
		return errs.Wrap(err, "zstd flush failed")
	}
	return nil
}

// ReadZstd 解壓 r 的全部內容。
//
// maxBytes 是解壓後大小上限，避免讀取不可信輸入時無上限配置；0 代表不限制。
func ReadZstd(r io.Reader, maxBytes int64) ([]byte, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, errs.Wrap(err, "zstd reader init failed")
	}
	defer dec.Close()

	var src io.Reader = dec
	if maxBytes > 0 {
		src = io.LimitReader(dec, maxBytes+1)
	}
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(src); err != nil {
		return nil, errs.Wrap(err, "zstd read failed")
	}
	if maxBytes > 0 && int64(buf.Len()) > maxBytes {
		return nil, errs.NewWarn("zstd payload exceeds maxBytes")
	}
	return buf.Bytes(), nil
}
