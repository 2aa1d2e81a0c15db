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

// Package perf 以 runtime/pprof 包住一段執行，寫出 cpu / heap / allocs profile。
package perf

import (
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/zintix-labs/ppcdata/errs"
)

// DefaultDir pprof 檔案預設寫入路徑
const DefaultDir = "build/profiling"

type Mode string

const (
	ModeNone   Mode = ""
	ModeCPU    Mode = "cpu"
	ModeHeap   Mode = "heap"
	ModeAllocs Mode = "allocs"
)

// ParseMode 接受空字串、cpu、heap、allocs
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeNone, ModeCPU, ModeHeap, ModeAllocs:
		return m, nil
	}
	return ModeNone, errs.Warnf("unknown pprof mode: %q (want cpu|heap|allocs)", s)
}

// Run 依 mode 包住 exe 執行並回傳寫出的 profile 路徑（ModeNone 時為空字串）。
// exe 的錯誤優先回傳；profile 寫出失敗時回傳 Fatal。
//
// Usage like:
//
//	go run ./cmd/gen -n 1000000 -worker 8 -p cpu
//	go tool pprof build/profiling/cpu.pprof
func Run(dir string, mode Mode, exe func() error) (string, error) {
	if mode == ModeNone {
		return "", exe()
	}
	if dir == "" {
		dir = DefaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errs.Wrap(err, "create pprof dir failed")
	}
	path := filepath.Join(dir, string(mode)+".pprof")
	switch mode {
	case ModeCPU:
		return path, cpu(path, exe)
	case ModeHeap, ModeAllocs:
		if err := exe(); err != nil {
			return "", err
		}
		return path, snapshot(path, mode)
	}
	return "", errs.Warnf("unknown pprof mode: %q", string(mode))
}

// cpu 也可以拿來做構建時給 pgo 的優化 blueprint
func cpu(path string, exe func() error) error {
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create cpu.pprof failed")
	}
	defer f.Close()
	if err := pprof.StartCPUProfile(f); err != nil {
		return errs.Wrap(err, "start cpu profile failed")
	}
	defer pprof.StopCPUProfile()
	return exe()
}

// snapshot 在 exe() 之後寫出一次快照。
//   - heap: in-use memory，寫出前先 GC 讓 live objects 較準確
//   - allocs: 累積配置（搭配 -alloc_space / -alloc_objects 查看）
func snapshot(path string, mode Mode) error {
	if mode == ModeHeap {
		runtime.GC()
	}
	f, err := os.Create(path)
	if err != nil {
		return errs.Wrap(err, "create "+filepath.Base(path)+" failed")
	}
	defer f.Close()

	prof := pprof.Lookup(string(mode))
	if prof == nil {
		return errs.Fatalf("pprof profile not found: %s", mode)
	}
	if err := prof.WriteTo(f, 0); err != nil {
		return errs.Wrap(err, "write "+string(mode)+" profile failed")
	}
	return nil
}
