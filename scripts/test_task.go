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
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

func runTest() error {
	PrintGreen("running tests")
	return goTest([]string{"./...", "-cover", "-count=1"}, func(line string) {
		switch {
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		case strings.Contains(line, "build failed"), strings.Contains(line, "setup failed"):
			// 編譯錯誤不以 ok/FAIL 開頭
			PrintRed(line)
		}
	})
}

func runTestAll() error {
	PrintGreen("running tests (all with coverage)")
	return goTest([]string{"./...", "-cover"}, func(line string) { fmt.Println(line) })
}

func runTestDetail() error {
	PrintGreen("running tests (detail)")
	return goTest([]string{"./...", "-v", "-count=1"}, func(line string) {
		switch {
		case strings.Contains(line, "[no test files]"):
		case strings.HasPrefix(line, "ok"):
			PrintGreen(line)
		case strings.HasPrefix(line, "FAIL"):
			PrintRed(line)
		default:
			fmt.Println(line)
		}
	})
}

// goTest 先清 test cache，再以 stdout+stderr 合併的方式逐行交給 emit
func goTest(args []string, emit func(line string)) error {
	clean := exec.Command("go", "clean", "-testcache")
	clean.Stdout, clean.Stderr = os.Stdout, os.Stderr
	if err := clean.Run(); err != nil {
		return fmt.Errorf("go clean -testcache failed: %w", err)
	}

	cmd := exec.Command("go", append([]string{"test"}, args...)...)
	pr, pw := io.Pipe()
	cmd.Stdout, cmd.Stderr = pw, pw
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start go test: %w", err)
	}
	go func() {
		pw.CloseWithError(cmd.Wait())
	}()

	sc := bufio.NewScanner(pr)
	for sc.Scan() {
		emit(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("tests finished with errors: %w", err)
	}
	return nil
}
