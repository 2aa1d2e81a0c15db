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
	"os"
	"os/exec"
	"path/filepath"
)

const sampleDir = "build/sample"

// runSample 以固定 seed 產生三種格式的範例輸出，方便前端元件直接載入
func runSample() error {
	PrintGreen("writing samples to " + sampleDir)
	for _, out := range []string{"output.json", "output.yaml", "output.json.zst"} {
		if err := goRun("./cmd/gen", "-seed", "7", "-report", "none", "-out", filepath.Join(sampleDir, out)); err != nil {
			return err
		}
	}
	return goRun("./cmd/gen", "-seed", "7", "-report", "none", "-props", "-out", filepath.Join(sampleDir, "props.json"))
}

// runPGO 產生一次大型資料集的 cpu profile，複製到 cmd/gen/default.pgo
func runPGO() error {
	PrintGreen("profiling cmd/gen")
	if err := goRun("./cmd/gen", "-n", "5000000", "-worker", "8", "-report", "none", "-p", "cpu"); err != nil {
		return err
	}
	b, err := os.ReadFile("build/profiling/cpu.pprof")
	if err != nil {
		return err
	}
	return os.WriteFile("cmd/gen/default.pgo", b, 0o644)
}

func goRun(args ...string) error {
	cmd := exec.Command("go", append([]string{"run"}, args...)...)
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	return cmd.Run()
}
