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

// scripts 開發用的任務入口（取代 Makefile，Windows 也能跑）
//
//	go run ./scripts test
//	go run ./scripts sample
package main

import (
	"fmt"
	"os"
)

var tasks = map[string]func() error{
	"test":        runTest,       // 只列出 ok / FAIL
	"test-all":    runTestAll,    // 全部套件 + coverage
	"test-detail": runTestDetail, // -v，濾掉 [no test files]
	"sample":      runSample,     // 產生範例資料集到 build/sample
	"pgo":         runPGO,        // 以大量產生的 cpu profile 作為 default.pgo
}

func main() {
	if len(os.Args) < 2 {
		PrintYellow("Usage: go run ./scripts [test|test-all|test-detail|sample|pgo]")
		os.Exit(1)
	}
	task, ok := tasks[os.Args[1]]
	if !ok {
		PrintYellow(fmt.Sprintf("Unknown task: %s", os.Args[1]))
		os.Exit(1)
	}
	if err := task(); err != nil {
		PrintRed(err.Error())
		os.Exit(1)
	}
}
