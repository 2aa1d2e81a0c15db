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

package dto

import (
	"github.com/zintix-labs/ppcdata/catalog"
	"github.com/zintix-labs/ppcdata/stats"
)

// ProfilesResult /v1/profiles
type ProfilesResult struct {
	Profiles []catalog.Summary `json:"profiles"`
}

// ClassifyResult 單點分類結果
type ClassifyResult struct {
	Profile     string     `json:"profile"`
	A1          float64    `json:"a1"`
	A2          float64    `json:"a2"`
	Memberships [2]float64 `json:"memberships"`
	Prob        float64    `json:"prob"`
	Class       float64    `json:"class"`
	Label       string     `json:"label"`
}

// ReportResult /v1/report
type ReportResult struct {
	Report   *stats.Report `json:"report"`
	UsedTime int64         `json:"used_ms"`
}
