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

package index

import (
	"net/http"
	"strings"
)

var endpoints = []string{
	"GET      /                 this page",
	"GET      /v1/profiles      list profiles",
	"GET      /v1/profile       ?name=default&format=yaml",
	"GET/POST /v1/dataset       ?profile=default&n=2000&seed=7&worker=4&format=json|yaml|zstd&props=true",
	"GET/POST /v1/report        same params as /v1/dataset",
	"GET/POST /v1/classify      ?profile=default&a1=25&a2=125",
}

// IndexHandlerFn 純文字的端點列表
func IndexHandlerFn(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ppcdata\n\n" + strings.Join(endpoints, "\n") + "\n"))
}
