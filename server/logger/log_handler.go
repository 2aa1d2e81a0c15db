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

package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
	"gopkg.in/natefinch/lumberjack.v2"
)

// enum LogMode
type LogMode uint8

const (
	ModeDev LogMode = iota
	ModeProd
	ModeSilence
	ModeFile // JSON 寫入輪替檔案（見 FileCfg）
)

// ParseMode 接受 dev / prod / silence / file（不分大小寫）
func ParseMode(s string) (LogMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence", "silent":
		return ModeSilence, nil
	case "file":
		return ModeFile, nil
	}
	return ModeDev, errs.Warnf("unknown log mode: %q", s)
}

// FileCfg 輪替檔案設定（lumberjack）
type FileCfg struct {
	Path       string // 預設 logs/ppcdata.log
	MaxSizeMB  int    // 單檔上限，預設 50
	MaxBackups int    // 保留份數，預設 5
	MaxAgeDays int    // 保留天數，0 代表不依天數清除
	Compress   bool   // 輪替後的舊檔以 gzip 壓縮
}

// DefaultFileCfg ModeFile 使用的預設值
var DefaultFileCfg = FileCfg{Path: "logs/ppcdata.log", MaxSizeMB: 50, MaxBackups: 5}

// NewFileHandler 建立寫入輪替檔案的 JSON handler；關閉程式前請呼叫回傳的 io.Closer。
func NewFileHandler(cfg FileCfg, level slog.Level) (slog.Handler, io.Closer) {
	if cfg.Path == "" {
		cfg.Path = DefaultFileCfg.Path
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = DefaultFileCfg.MaxSizeMB
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = DefaultFileCfg.MaxBackups
	}
	lj := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	return slog.NewJSONHandler(lj, &slog.HandlerOptions{Level: level}), lj
}

// 兩種注入方式：
//   - 直接傳 *slog.Logger：NewDefaultLogger(mode) 或自行組裝。
//   - 傳 slog.Handler：自行組合 JSON/Text/ReplaceAttr/LevelVar 後以 NewLogger(h) 包起來。
//
// 任何 handler 都能再包一層 AsyncHandler（見 async.go）變成非阻塞。

// NewDefaultLogger 依 LogMode 的預設值建立同步 logger
func NewDefaultLogger(mode LogMode) *slog.Logger {
	return slog.New(buildHandler(mode))
}

// NewDefaultAsyncLogger 依 LogMode 的預設值建立非同步 logger（buffer 8192）
func NewDefaultAsyncLogger(mode LogMode) *slog.Logger {
	return slog.New(NewAsyncHandler(buildHandler(mode), 8192))
}

// NewLogger 包裝呼叫端組裝好的 handler；nil 時使用 ModeDev。
func NewLogger(h slog.Handler) *slog.Logger {
	if h == nil {
		h = buildHandler(ModeDev)
	}
	return slog.New(h)
}

// NewAsync builds a *slog.Logger using LogMode defaults, then wraps its handler with AsyncHandler.
// 這是「我想要預設非阻塞」的便利入口。
func NewAsync(buf int, mode LogMode) (*slog.Logger, *AsyncHandler) {
	base := buildHandler(mode)
	ah := NewAsyncHandler(base, buf)
	return slog.New(ah), ah
}

func buildHandler(logmode LogMode) slog.Handler {
	switch logmode {
	case ModeDev:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	case ModeProd:
		// 正式環境：JSON + stdout，給 Loki / Promtail
		return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		// 靜默模式：全部丟掉
		return slog.NewTextHandler(io.Discard, nil)
	case ModeFile:
		// 檔案模式：輪替檔案由程式結束時一併關閉（lumberjack 寫入時才開檔）
		h, _ := NewFileHandler(DefaultFileCfg, slog.LevelInfo)
		return h
	default:
		return slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
