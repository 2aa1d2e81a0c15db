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

// Package netsvr 把 HTTP 框架包在 NetSvr / NetRouter 之後，api 層只面向 NetRouter。
package netsvr

import (
	"net/http"

	"github.com/zintix-labs/ppcdata/server/app"
)

// NetSvr 路由 + 啟停。
// 同時是 app.Component（交給 app.App 管理生命週期）與 http.Handler（測試時直接餵 httptest）。
type NetSvr interface {
	NetRouter
	app.Component
	http.Handler
}

// NetRouter 只有路由行為，Group 回呼拿不到 Run/Shutdown。
type NetRouter interface {
	Use(middleware func(http.Handler) http.Handler)

	Get(path string, h http.HandlerFunc)
	Post(path string, h http.HandlerFunc)

	// GetPost 同一個 handler 同時註冊 GET 與 POST
	GetPost(path string, h http.HandlerFunc)

	Group(path string, fn func(NetRouter))
}
