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

package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/profiles"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/server"
	"github.com/zintix-labs/ppcdata/server/logger"
	"github.com/zintix-labs/ppcdata/server/svrcfg"
)

// svr 啟動資料集 HTTP 服務
//
//	go run ./cmd/svr -addr :5810 -log dev
//	go run ./cmd/svr -log file -log-file logs/ppcdata.log -profiles ./profiles
func main() {
	cfg := new(config)
	flag.StringVar(&cfg.addr, "addr", "", "listen address (default :5810)")
	flag.StringVar(&cfg.logMode, "log", "dev", "log mode: dev | prod | silence | file")
	flag.StringVar(&cfg.logFile, "log-file", logger.DefaultFileCfg.Path, "log file path for -log file")
	flag.IntVar(&cfg.cache, "cache", svrcfg.DefaultCacheSize, "dataset cache entries")
	flag.IntVar(&cfg.maxPoints, "maxpoints", svrcfg.DefaultMaxPoints, "max points per request")
	flag.DurationVar(&cfg.timeout, "timeout", svrcfg.DefaultTimeout, "generation timeout per request")
	flag.StringVar(&cfg.profileDir, "profiles", "", "profile directory (default: embedded profiles)")
	flag.Parse()

	sCfg, closeLog, err := cfg.build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = server.Run(sCfg, cfg.addr)
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

type config struct {
	addr       string
	logMode    string
	logFile    string
	cache      int
	maxPoints  int
	timeout    time.Duration
	profileDir string
}

// build 回傳的 close 會排空非同步 log 並關閉輪替檔
func (cfg *config) build() (*svrcfg.SvrCfg, func(), error) {
	mode, err := logger.ParseMode(cfg.logMode)
	if err != nil {
		return nil, nil, err
	}
	var (
		base   slog.Handler
		closer func()
	)
	if mode == logger.ModeFile {
		fc := logger.DefaultFileCfg
		fc.Path = cfg.logFile
		h, c := logger.NewFileHandler(fc, slog.LevelInfo)
		base, closer = h, func() { _ = c.Close() }
	}
	var (
		log *slog.Logger
		ah  *logger.AsyncHandler
	)
	if base != nil {
		ah = logger.NewAsyncHandler(base, 4096)
		log = slog.New(ah)
	} else {
		log, ah = logger.NewAsync(4096, mode)
	}
	closeLog := func() {
		ah.Close()
		if closer != nil {
			closer()
		}
	}

	var src fs.FS = profiles.FS
	if cfg.profileDir != "" {
		src = os.DirFS(cfg.profileDir)
	}
	lab, err := ppcdata.NewAuto(core.Default(), ppcdata.Profiles(src))
	if err != nil {
		closeLog()
		return nil, nil, err
	}
	return &svrcfg.SvrCfg{
		Log:       log,
		Lab:       lab,
		CacheSize: cfg.cache,
		MaxPoints: cfg.maxPoints,
		Timeout:   cfg.timeout,
	}, closeLog, nil
}
