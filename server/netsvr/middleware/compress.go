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

package middleware

import (
	"bufio"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// CompressConfig 壓縮等級
type CompressConfig struct {
	GzipLevel int
	ZstdLevel zstd.EncoderLevel
}

// DefaultCompressConfig 只在 encoder 第一次建立時讀取
var DefaultCompressConfig = CompressConfig{
	GzipLevel: gzip.DefaultCompression,
	ZstdLevel: zstd.SpeedFastest,
}

// encoder 是 *gzip.Writer 與 *zstd.Encoder 共同的方法集合
type encoder interface {
	io.WriteCloser
	Reset(w io.Writer)
	Flush() error
}

// codec 一種 Content-Encoding 與它的 encoder 池
type codec struct {
	name string
	pool sync.Pool
}

func (c *codec) get(w io.Writer) encoder {
	e := c.pool.Get().(encoder)
	e.Reset(w)
	return e
}

// put 寫出 footer 後放回池，並放掉對 ResponseWriter 的參照
func (c *codec) put(e encoder) {
	_ = e.Close()
	e.Reset(io.Discard)
	c.pool.Put(e)
}

var zstdCodec = &codec{name: "zstd", pool: sync.Pool{New: func() any {
	zw, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(DefaultCompressConfig.ZstdLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		// 只有 option 不合法才會發生
		panic(err)
	}
	return zw
}}}

var gzipCodec = &codec{name: "gzip", pool: sync.Pool{New: func() any {
	gw, err := gzip.NewWriterLevel(nil, DefaultCompressConfig.GzipLevel)
	if err != nil {
		return gzip.NewWriter(nil)
	}
	return gw
}}}

// negotiate 依 Accept-Encoding 選出 codec：zstd 優先於 gzip，q=0 視為拒絕。
func negotiate(accept string) *codec {
	var zs, gz bool
	for _, part := range strings.Split(accept, ",") {
		name, params, _ := strings.Cut(part, ";")
		if qvalue(params) <= 0 {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "zstd":
			zs = true
		case "gzip", "x-gzip":
			gz = true
		}
	}
	switch {
	case zs:
		return zstdCodec
	case gz:
		return gzipCodec
	}
	return nil
}

// qvalue 解析 ";q=0.5"，沒有 q 時為 1，格式錯誤視為 0
func qvalue(params string) float64 {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(k, "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}

func isWebSocketUpgrade(r *http.Request) bool {
	return strings.Contains(strings.ToLower(r.Header.Get("Connection")), "upgrade") ||
		r.Header.Get("Upgrade") != ""
}

// isPrecompressed 回應本身已是壓縮檔（例如 .json.zst 下載），不再二次壓縮
func isPrecompressed(h http.Header) bool {
	mt, _, _ := strings.Cut(h.Get("Content-Type"), ";")
	switch strings.ToLower(strings.TrimSpace(mt)) {
	case "application/zstd", "application/gzip", "application/x-gzip", "application/zip":
		return true
	}
	return false
}

// 1xx / 204 / 304 沒有 body
func isNoBodyStatus(code int) bool {
	return (code >= 100 && code < 200) || code == http.StatusNoContent || code == http.StatusNotModified
}

// compressWriter 在第一次 WriteHeader 時才決定是否壓縮；不壓縮時 enc 為 nil。
type compressWriter struct {
	http.ResponseWriter
	c       *codec
	enc     encoder
	decided bool
}

func (cw *compressWriter) WriteHeader(code int) {
	if cw.decided {
		cw.ResponseWriter.WriteHeader(code)
		return
	}
	cw.decided = true
	h := cw.Header()
	if !isNoBodyStatus(code) && !isPrecompressed(h) && h.Get("Content-Encoding") == "" {
		h.Set("Content-Encoding", cw.c.name)
		h.Add("Vary", "Accept-Encoding")
		h.Del("Content-Length")
		cw.enc = cw.c.get(cw.ResponseWriter)
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *compressWriter) Write(b []byte) (int, error) {
	// 隱式 200：先嗅探 Content-Type，才能判斷是否已壓縮
	if !cw.decided {
		if cw.Header().Get("Content-Type") == "" {
			cw.Header().Set("Content-Type", http.DetectContentType(b))
		}
		cw.WriteHeader(http.StatusOK)
	}
	if cw.enc == nil {
		return cw.ResponseWriter.Write(b)
	}
	return cw.enc.Write(b)
}

func (cw *compressWriter) Flush() {
	if cw.enc != nil {
		_ = cw.enc.Flush()
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (cw *compressWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := cw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("underlying response writer does not support Hijacker")
	}
	return hj.Hijack()
}

func (cw *compressWriter) close() {
	if cw.enc != nil {
		cw.c.put(cw.enc)
		cw.enc = nil
	}
}

// Compression 依 Accept-Encoding 以 zstd 或 gzip 壓縮回應。
// HEAD、WebSocket、無 body 狀態碼、已壓縮的內容與 handler 自行設定 Content-Encoding 的回應原樣輸出。
func Compression(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead || isWebSocketUpgrade(r) {
			next.ServeHTTP(w, r)
			return
		}
		c := negotiate(r.Header.Get("Accept-Encoding"))
		if c == nil {
			next.ServeHTTP(w, r)
			return
		}
		cw := &compressWriter{ResponseWriter: w, c: c}
		defer cw.close()
		next.ServeHTTP(cw, r)
	})
}
