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

package errs

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestWrapKeepsLevel(t *testing.T) {
	base := NewWarn("points must > 0")
	w := Wrap(base, "generate")
	if w.ErrLv != Warn {
		t.Fatalf("expected warn level, got %s", w.ErrLv)
	}
	if !errors.Is(w, base) {
		t.Fatalf("wrapped error must unwrap to cause")
	}
}

func TestWrapForeignIsFatal(t *testing.T) {
	w := Wrap(io.ErrUnexpectedEOF, "read profile")
	if w.ErrLv != Fatal {
		t.Fatalf("expected fatal, got %s", w.ErrLv)
	}
	if Level(io.EOF) != Fatal {
		t.Fatalf("foreign error should be fatal")
	}
	if Level(nil) != None {
		t.Fatalf("nil error should be none")
	}
}

func TestErrorString(t *testing.T) {
	e := Fatalf("zero width interval: [%g,%g]", 1.0, 1.0).WithExtra("feature=a1").WithExtra("segment=0")
	s := e.Error()
	for _, want := range []string{"errlv=fatal", "zero width interval", "feature=a1; segment=0"} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %q in %q", want, s)
		}
	}
}

func TestWrapWarn(t *testing.T) {
	w := WrapWarn(io.EOF, "bad csv")
	if Level(w) != Warn {
		t.Fatalf("expected warn")
	}
	if _, ok := AsErr(io.EOF); ok {
		t.Fatalf("io.EOF is not *E")
	}
}
