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

// Package dto 定義 HTTP API 的請求與回應結構，以及請求解碼。
//
// 解碼只負責型別轉換，不做業務校驗（Profile 是否存在、點數上限等由 handler 決定）。
package dto

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/zintix-labs/ppcdata/errs"
)

// maxBody POST body 大小上限（1MiB）
const maxBody = 1 << 20

// DatasetRequest 產生資料集（/v1/dataset、/v1/report）
type DatasetRequest struct {
	Profile string `json:"profile"`
	Points  int    `json:"n,omitempty"`      // 0 代表使用 Profile 的預設點數
	Seed    *int64 `json:"seed,omitempty"`   // nil 代表隨機 seed
	Workers int    `json:"worker,omitempty"` // 0 代表單線產生
	Format  string `json:"format,omitempty"` // json / yaml / zstd
	Props   bool   `json:"props,omitempty"`  // 輸出完整的元件屬性而非只有 axes
}

// ClassifyRequest 單點分類（/v1/classify）
type ClassifyRequest struct {
	Profile string   `json:"profile"`
	A1      *float64 `json:"a1"`
	A2      *float64 `json:"a2"`
}

// DecodeDatasetRequest 解碼 GET query（profile/n/seed/worker/format/props）或 POST JSON。
func DecodeDatasetRequest(r *http.Request) (*DatasetRequest, error) {
	req := new(DatasetRequest)
	err := decode(r, req, func(q url.Values) error {
		req.Profile = q.Get("profile")
		req.Format = q.Get("format")
		if err := queryInt(q, "n", &req.Points); err != nil {
			return err
		}
		if err := queryInt(q, "worker", &req.Workers); err != nil {
			return err
		}
		if err := queryBool(q, "props", &req.Props); err != nil {
			return err
		}
		if s := q.Get("seed"); s != "" {
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return errs.Warnf("invalid seed: %q", s)
			}
			req.Seed = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeClassifyRequest 解碼 GET query（profile/a1/a2）或 POST JSON；a1、a2 皆為必填。
func DecodeClassifyRequest(r *http.Request) (*ClassifyRequest, error) {
	req := new(ClassifyRequest)
	err := decode(r, req, func(q url.Values) error {
		req.Profile = q.Get("profile")
		for _, f := range []struct {
			key string
			dst **float64
		}{{"a1", &req.A1}, {"a2", &req.A2}} {
			s := q.Get(f.key)
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return errs.Warnf("invalid %s: %q", f.key, s)
			}
			*f.dst = &v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if req.A1 == nil || req.A2 == nil {
		return nil, errs.NewWarn("a1 and a2 are required")
	}
	// NaN / ±Inf 無法回寫成 JSON，也不是合法的特徵值
	for _, f := range []struct {
		key string
		v   float64
	}{{"a1", *req.A1}, {"a2", *req.A2}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return nil, errs.Warnf("invalid %s: %q", f.key, strconv.FormatFloat(f.v, 'g', -1, 64))
		}
	}
	return req, nil
}

// decode GET 走 query；POST 走 JSON body（大小限制、拒絕未知欄位）
func decode(r *http.Request, dst any, fromQuery func(url.Values) error) error {
	if r == nil {
		return errs.NewWarn("nil request")
	}
	switch r.Method {
	case http.MethodGet:
		return fromQuery(r.URL.Query())
	case http.MethodPost:
		dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return errs.WrapWarn(err, "invalid json")
		}
		return nil
	default:
		return errs.NewWarn("method not allowed")
	}
}

func queryInt(q url.Values, key string, dst *int) error {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errs.Warnf("invalid %s: %q", key, s)
	}
	*dst = v
	return nil
}

func queryBool(q url.Values, key string, dst *bool) error {
	s := q.Get(key)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return errs.Warnf("invalid %s: %q", key, s)
	}
	*dst = v
	return nil
}
