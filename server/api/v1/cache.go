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

package v1

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/export"
)

// cacheKey 欄位取自展開預設值後的 plan：相同 (profile, n, seed, workers) 一定產生相同資料集，格式不同則編碼結果不同。
type cacheKey struct {
	profile string
	points  int
	seed    int64
	workers int
	format  export.Format
	props   bool
}

// Cache 已編碼資料集的 LRU（只快取指定 seed 的請求）
type Cache struct {
	lru *lru.Cache[cacheKey, []byte]
}

func NewCache(size int) (*Cache, error) {
	c, err := lru.New[cacheKey, []byte](size)
	if err != nil {
		return nil, errs.Wrap(err, "build dataset cache failed")
	}
	return &Cache{lru: c}, nil
}

func (c *Cache) get(k cacheKey) ([]byte, bool) {
	return c.lru.Get(k)
}

func (c *Cache) add(k cacheKey, b []byte) {
	c.lru.Add(k, b)
}

// Len 目前快取筆數
func (c *Cache) Len() int {
	return c.lru.Len()
}
