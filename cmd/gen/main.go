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
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/export"
	"github.com/zintix-labs/ppcdata/profiles"
	"github.com/zintix-labs/ppcdata/sdk/core"
	"github.com/zintix-labs/ppcdata/sdk/perf"
	"github.com/zintix-labs/ppcdata/server/logger"
	"github.com/zintix-labs/ppcdata/stats"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// gen 產生一份資料集：寫出檔案（依副檔名選 json / yaml / json.zst）並印出統計報告。
//
//	go run ./cmd/gen -n 2000 -seed 7 -out output.json
//	go run ./cmd/gen -profile linear -n 1000000 -worker 8 -pb -p cpu
func main() {
	cfg := loadConfigFromFlags()
	log := logger.NewDefaultLogger(logger.ModeDev)
	if err := run(cfg); err != nil {
		log.Error("gen failed", slog.Any("err", err))
		os.Exit(1)
	}
}

type config struct {
	profile     string
	profileDir  string
	points      int
	seed        int64
	worker      int
	out         string
	props       bool
	report      string
	showpb      bool
	pprofmode   string
	dumpProfile bool
	list        bool
}

func loadConfigFromFlags() *config {
	cfg := new(config)
	flag.StringVar(&cfg.profile, "profile", "default", "profile name")
	flag.StringVar(&cfg.profileDir, "profiles", "", "profile directory (default: embedded profiles)")
	flag.IntVar(&cfg.points, "n", 0, "number of points (0: profile default)")
	flag.Int64Var(&cfg.seed, "seed", -1, "int64 seed (< 0: random)")
	flag.IntVar(&cfg.worker, "worker", 1, "number of workers")
	flag.StringVar(&cfg.out, "out", "", "output file: .json | .yaml | .json.zst")
	flag.BoolVar(&cfg.props, "props", false, "write full component props instead of axes only")
	flag.StringVar(&cfg.report, "report", "table", "report: table | json | yaml | none")
	flag.BoolVar(&cfg.showpb, "pb", false, "show progress bar")
	flag.StringVar(&cfg.pprofmode, "p", "", "pprof: '', cpu, heap, allocs")
	flag.BoolVar(&cfg.dumpProfile, "dump-profile", false, "print the resolved profile as yaml and exit")
	flag.BoolVar(&cfg.list, "list", false, "list profiles and exit")
	flag.Parse()
	return cfg
}

func run(cfg *config) error {
	mode, err := perf.ParseMode(cfg.pprofmode)
	if err != nil {
		return err
	}
	var src fs.FS = profiles.FS
	if cfg.profileDir != "" {
		src = os.DirFS(cfg.profileDir)
	}
	lab, err := ppcdata.NewAuto(core.Default(), ppcdata.Profiles(src))
	if err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	if cfg.list {
		for _, s := range lab.Summaries() {
			p.Printf("%-12s points=%d features=%v ranges=%v\n", s.Name, s.Points, s.Features, s.Ranges)
		}
		return nil
	}
	if cfg.dumpProfile {
		prof, err := lab.Profile(cfg.profile)
		if err != nil {
			return err
		}
		b, err := prof.ToYAML()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(b)
		return err
	}

	var g *ppcdata.Generator
	if cfg.seed < 0 {
		g, err = lab.NewGenerator(cfg.profile)
	} else {
		g, err = lab.NewGeneratorWithSeed(cfg.profile, cfg.seed)
	}
	if err != nil {
		return err
	}
	n := cfg.points
	if n == 0 {
		n = g.DefaultPoints()
	}

	green := "\033[1;32m"
	reset := "\033[0m"
	p.Printf("%s[PROFILE:%s] [POINTS:%d] [WORKERS:%d] [SEED:%d]%s\n", green, cfg.profile, n, cfg.worker, g.Seed(), reset)

	var (
		ds   *ppcdata.Dataset
		used time.Duration
	)
	path, err := perf.Run(perf.DefaultDir, mode, func() error {
		var err error
		if cfg.worker > 1 {
			ds, used, err = g.GenerateMP(n, cfg.worker, cfg.showpb)
		} else {
			ds, used, err = g.Generate(n, cfg.showpb)
		}
		return err
	})
	if err != nil {
		return err
	}
	if path != "" {
		p.Printf("pprof: %s\n", path)
	}

	if cfg.out != "" {
		if err := writeOut(cfg, ds); err != nil {
			return err
		}
		p.Printf("wrote %d points to %s\n", ds.Len(), cfg.out)
	}
	return printReport(cfg.report, ds, used)
}

func writeOut(cfg *config, ds *ppcdata.Dataset) error {
	axes, err := export.FromDataset(ds)
	if err != nil {
		return err
	}
	if cfg.props {
		return export.WriteFile(cfg.out, export.DefaultProps(axes))
	}
	return export.WriteFile(cfg.out, axes)
}

func printReport(kind string, ds *ppcdata.Dataset, used time.Duration) error {
	if kind == "none" {
		return nil
	}
	rep, err := stats.Analyze(ds)
	if err != nil {
		return err
	}
	switch kind {
	case "table", "":
		rep.StdOut(used)
		return nil
	case "json":
		return rep.WriteWith(os.Stdout, &stats.JsonReportRender{})
	case "yaml":
		return rep.WriteWith(os.Stdout, &stats.YAMLReportRender{})
	}
	return errs.Warnf("unknown report kind: %q", kind)
}
