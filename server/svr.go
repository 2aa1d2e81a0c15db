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

package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/server/api"
	"github.com/zintix-labs/ppcdata/server/app"
	"github.com/zintix-labs/ppcdata/server/netsvr"
	"github.com/zintix-labs/ppcdata/server/svrcfg"
)

// Run 是 server 套件的組裝器與啟動入口：
//  1. 驗證 SvrCfg（補上預設 logger、cache、上限）。
//  2. 建立預設的 chi server，監聽 addr（空字串用 netsvr.DefaultAddr）。
//  3. 註冊 middleware 與路由。
//  4. 交給 app 管理生命週期，直到收到 SIGINT/SIGTERM。
//
// 所有依賴都經 SvrCfg 注入，不讀檔案、不讀環境變數。
func Run(sCfg *svrcfg.SvrCfg, addr string) error {
	return RunWithSvr(context.Background(), sCfg, netsvr.NewChiServer(addr))
}

// RunWithSvr 與 Run 相同，但由呼叫端注入 NetSvr（自訂 listener、timeout 或框架）。
// ctx 結束時優雅關閉。
func RunWithSvr(ctx context.Context, sCfg *svrcfg.SvrCfg, svr netsvr.NetSvr) error {
	if sCfg == nil {
		return errs.NewFatal("server config is required")
	}
	if err := sCfg.Valid(); err != nil {
		// logger 可能就是不可用的那個
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if svr == nil {
		return errs.NewFatal("svr is required")
	}
	if s, ok := svr.(*netsvr.ChiAdapter); ok {
		if !s.Ready() {
			return errs.NewFatal("default server is not ready")
		}
		sCfg.Log.Info("[ppcdata] listening on http://localhost" + s.Address())
	}

	if err := api.RegisterRoutes(svr, sCfg); err != nil {
		return errs.Wrap(err, "register routes failed")
	}

	a := app.NewWith(sCfg.Log, svr)
	if err := a.RunContext(ctx); err != nil {
		sCfg.Log.Error("app stopped", slog.Any("err", err))
		return err
	}
	return nil
}
