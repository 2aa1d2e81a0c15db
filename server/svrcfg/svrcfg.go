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

package svrcfg

import (
	"log/slog"
	"time"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/server/logger"
)

const (
	DefaultCacheSize = 64
	DefaultMaxPoints = 200_000
	DefaultTimeout   = 10 * time.Second
)

type SvrCfg struct {
	Log       *slog.Logger
	Lab       *ppcdata.Lab
	CacheSize int           // 已編碼資料集的 LRU 筆數，1..4096
	MaxPoints int           // 單次請求點數上限
	Timeout   time.Duration // 單次產生的等待上限
}

// Valid 檢查必要依賴並補上預設值
func (sc *SvrCfg) Valid() error {
	if sc.Log != nil {
		if ah, ok := sc.Log.Handler().(*logger.AsyncHandler); ok && !ah.Ready() {
			return errs.NewFatal("nil default log handler: async handler is nil")
		}
	} else {
		// 保持安靜、合法
		sc.Log, _ = logger.NewAsync(1024, logger.ModeDev)
	}
	if sc.Lab == nil {
		return errs.NewFatal("lab is required")
	}
	if len(sc.Lab.Names()) == 0 {
		return errs.NewFatal("lab has no profiles")
	}

	if sc.CacheSize <= 0 {
		sc.CacheSize = DefaultCacheSize
	}
	sc.CacheSize = min(4096, sc.CacheSize)
	if sc.MaxPoints <= 0 {
		sc.MaxPoints = DefaultMaxPoints
	}
	if sc.Timeout <= 0 {
		sc.Timeout = DefaultTimeout
	}
	return nil
}
