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
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// AsyncHandler 把任一 slog.Handler 變成非阻塞：
//   - Handle 只把 Record 的副本放進 channel，背景 goroutine 逐筆交給 next。
//   - channel 滿或已 Close 時直接丟棄並計數（Dropped），延遲不會回到請求路徑。
//   - Close 之前成功入列的 Record 一定會被寫出：入列與 Close 以 mu 互斥。
//
// slog.Logger 會忽略 Handle 回傳的 error，所以 I/O 錯誤只能在 next 內處理。
type AsyncHandler struct {
	next slog.Handler
	q    *queue
}

// queue 由同一個 AsyncHandler 衍生出的 WithAttrs / WithGroup 共用
type queue struct {
	ch      chan asyncItem
	mu      sync.RWMutex // Handle 持讀鎖入列，Close 持寫鎖設 stopped
	stopped bool
	closed  chan struct{}
	once    sync.Once
	done    sync.WaitGroup
	dropped atomic.Uint64
}

type asyncItem struct {
	ctx context.Context
	rec slog.Record
	h   slog.Handler
}

// NewAsyncHandler buf <= 0 時為 1024。buf 越大越不容易丟棄，但 Close 時需要排空越久。
func NewAsyncHandler(next slog.Handler, buf int) *AsyncHandler {
	if next == nil {
		next = buildHandler(ModeDev)
	}
	if buf <= 0 {
		buf = 1024
	}
	q := &queue{
		ch:     make(chan asyncItem, buf),
		closed: make(chan struct{}),
	}
	q.done.Add(1)
	go q.run()
	return &AsyncHandler{next: next, q: q}
}

func (h *AsyncHandler) Ready() bool {
	return h != nil && h.q != nil
}

// Dropped buffer 滿或 Close 之後被丟棄的筆數
func (h *AsyncHandler) Dropped() uint64 {
	if !h.Ready() {
		return 0
	}
	return h.q.dropped.Load()
}

// Close 停止接收並排空 buffer；可重複呼叫。
func (h *AsyncHandler) Close() {
	if !h.Ready() {
		return
	}
	h.q.once.Do(func() {
		h.q.mu.Lock()
		h.q.stopped = true
		h.q.mu.Unlock()
		close(h.q.closed)
	})
	h.q.done.Wait()
}

func (q *queue) run() {
	defer q.done.Done()
	for {
		select {
		case it := <-q.ch:
			_ = it.h.Handle(it.ctx, it.rec)
		case <-q.closed:
			q.drain()
			return
		}
	}
}

func (q *queue) drain() {
	for {
		select {
		case it := <-q.ch:
			_ = it.h.Handle(it.ctx, it.rec)
		default:
			return
		}
	}
}

func (h *AsyncHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *AsyncHandler) Handle(ctx context.Context, r slog.Record) error {
	if !h.Ready() {
		return nil
	}
	h.q.mu.RLock()
	defer h.q.mu.RUnlock()
	if h.q.stopped {
		h.q.dropped.Add(1)
		return nil
	}
	// Clone：Record 內的 attrs 可能被呼叫端重用，跨 goroutine 前先複製
	select {
	case h.q.ch <- asyncItem{ctx: ctx, rec: r.Clone(), h: h.next}:
	default:
		h.q.dropped.Add(1)
	}
	return nil
}

func (h *AsyncHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AsyncHandler{next: h.next.WithAttrs(attrs), q: h.q}
}

func (h *AsyncHandler) WithGroup(name string) slog.Handler {
	return &AsyncHandler{next: h.next.WithGroup(name), q: h.q}
}
