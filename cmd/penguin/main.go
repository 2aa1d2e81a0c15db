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
	"log/slog"
	"os"

	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/export"
	"github.com/zintix-labs/ppcdata/penguin"
	"github.com/zintix-labs/ppcdata/server/logger"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// penguin 把 penguins CSV 轉成平行座標軸資料
//
//	go run ./cmd/penguin -in penguins.csv -out penguins.json -skip-invalid
func main() {
	in := flag.String("in", "penguins.csv", "input csv")
	out := flag.String("out", "penguins.json", "output file: .json | .yaml | .json.zst")
	skip := flag.Bool("skip-invalid", false, "skip rows with NA or unknown categories")
	props := flag.Bool("props", false, "write full component props instead of axes only")
	flag.Parse()

	log := logger.NewDefaultLogger(logger.ModeDev)
	if err := run(log, *in, *out, *skip, *props); err != nil {
		log.Error("penguin failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger, in, out string, skip, props bool) error {
	f, err := os.Open(in)
	if err != nil {
		return errs.WrapWarn(err, "open input failed")
	}
	defer f.Close()

	axes, res, err := penguin.Load(f, penguin.Options{SkipInvalid: skip})
	if err != nil {
		return err
	}
	for _, e := range res.Skipped {
		log.Warn("row skipped", slog.Any("err", e))
	}

	var v any = axes
	if props {
		v = export.DefaultProps(axes)
	}
	if err := export.WriteFile(out, v); err != nil {
		return err
	}
	message.NewPrinter(language.English).Printf("wrote %d rows to %s (%d skipped)\n", len(res.Rows), out, len(res.Skipped))
	return nil
}
