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

package api

import (
	"log/slog"

	"github.com/zintix-labs/ppcdata/server/api/index"
	v1 "github.com/zintix-labs/ppcdata/server/api/v1"
	"github.com/zintix-labs/ppcdata/server/netsvr"
	"github.com/zintix-labs/ppcdata/server/netsvr/middleware"
	"github.com/zintix-labs/ppcdata/server/svrcfg"
)

// RegisterRoutes 註冊 middleware 與所有路由；sCfg 需先經過 Valid()
func RegisterRoutes(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	registerMiddleware(svr, sCfg.Log) // 1. 註冊 middleware
	registerIndex(svr)                // 2. 註冊主頁
	return registerV1API(svr, sCfg)   // 3. 註冊 v1 api
}

// 註冊 middleware
func registerMiddleware(svr netsvr.NetRouter, log *slog.Logger) {
	svr.Use(middleware.RequestID)
	svr.Use(middleware.AccessLog(log))
	svr.Use(middleware.Recover(log))
	svr.Use(middleware.Compression)
}

// 註冊主頁
func registerIndex(svr netsvr.NetRouter) {
	svr.Get("/", index.IndexHandlerFn)
}

// 註冊 v1 api
func registerV1API(svr netsvr.NetRouter, sCfg *svrcfg.SvrCfg) error {
	p, err := v1.NewProfileHandler(sCfg.Lab)
	if err != nil {
		return err
	}
	d, err := v1.NewDatasetHandler(sCfg)
	if err != nil {
		return err
	}
	c, err := v1.NewClassifyHandler(sCfg.Lab)
	if err != nil {
		return err
	}
	svr.Group("/v1", func(vOne netsvr.NetRouter) {
		vOne.Get("/profiles", p.List)
		vOne.Get("/profile", p.Get)

		vOne.GetPost("/dataset", d.Dataset)
		vOne.GetPost("/report", d.Report)
		vOne.GetPost("/classify", c.Classify)
	})
	return nil
}
