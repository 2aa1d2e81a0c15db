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

// Package app 管理長期運行元件（Component）的啟動與優雅關閉。
package app

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/zintix-labs/ppcdata/errs"
)

// DefaultShutdownTimeout 優雅關閉的預設等待時間
const DefaultShutdownTimeout = 5 * time.Second

// App 並行啟動所有 Component；收到 SIGINT/SIGTERM、ctx 結束、或任一 Component 返回時，依序關閉全部元件。
type App struct {
	comps   []Component
	log     *slog.Logger
	timeout time.Duration
}

// New 建立 App；log 為 nil 時關閉錯誤不輸出。
func New(log *slog.Logger) *App {
	return &App{log: log, timeout: DefaultShutdownTimeout}
}

// NewWith 建立 App 並直接註冊多個 Component。
func NewWith(log *slog.Logger, comps ...Component) *App {
	a := New(log)
	for _, c := range comps {
		a.Register(c)
	}
	return a
}

func (a *App) Register(c Component) {
	a.comps = append(a.comps, c)
}

// SetShutdownTimeout 調整優雅關閉的等待時間（<= 0 時忽略）
func (a *App) SetShutdownTimeout(td time.Duration) {
	if td > 0 {
		a.timeout = td
	}
}

// Run 等同 RunContext(context.Background())
func (a *App) Run() error {
	return a.RunContext(context.Background())
}

// RunContext 阻塞直到：
//   - 收到 OS 終止信號或 ctx 結束：優雅關閉並回傳 nil
//   - 任一 Component.Run 返回：優雅關閉並回傳該錯誤（正常結束時為 nil）
func (a *App) RunContext(ctx context.Context) error {
	if len(a.comps) == 0 {
		return errs.NewFatal("no component registered")
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, len(a.comps))
	for _, c := range a.comps {
		go func(c Component) {
			errCh <- c.Run()
		}(c)
	}

	select {
	case <-ctx.Done():
		a.gracefulShutdown()
		return nil
	case err := <-errCh:
		a.gracefulShutdown()
		return err
	}
}

// gracefulShutdown 在 timeout 內依序呼叫所有 Component.Shutdown
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()
	for _, c := range a.comps {
		if err := c.Shutdown(ctx); err != nil && a.log != nil {
			a.log.Error("shutdown failed", slog.Any("err", err))
		}
	}
}
