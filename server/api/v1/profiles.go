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

package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/dto"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/server/httperr"
	"github.com/zintix-labs/ppcdata/spec"
)

type ProfileHandler struct {
	lab *ppcdata.Lab
}

func NewProfileHandler(lab *ppcdata.Lab) (*ProfileHandler, error) {
	if lab == nil {
		return nil, errs.NewFatal("lab is required")
	}
	return &ProfileHandler{lab: lab}, nil
}

// List GET /v1/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, &dto.ProfilesResult{Profiles: h.lab.Summaries()})
}

// Get GET /v1/profile?name=default&format=yaml
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p, err := h.lab.Profile(profileName(q.Get("name")))
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	switch q.Get("format") {
	case "yaml", "yml":
		b, err := p.ToYAML()
		if err != nil {
			httperr.Errs(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
		_, _ = w.Write(b)
	default:
		writeJSON(w, p)
	}
}

// profileName 未指定時使用預設 Profile
func profileName(name string) string {
	if name == "" {
		return spec.DefaultProfile().Name
	}
	return name
}

// writeJSON 先編碼再寫出，避免寫到一半才發生錯誤
func writeJSON(w http.ResponseWriter, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		httperr.Errs(w, errs.Wrap(err, "encode response failed"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(append(b, '\n'))
}
