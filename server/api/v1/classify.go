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
	"net/http"

	"github.com/zintix-labs/ppcdata"
	"github.com/zintix-labs/ppcdata/dto"
	"github.com/zintix-labs/ppcdata/errs"
	"github.com/zintix-labs/ppcdata/server/httperr"
)

type ClassifyHandler struct {
	lab *ppcdata.Lab
}

func NewClassifyHandler(lab *ppcdata.Lab) (*ClassifyHandler, error) {
	if lab == nil {
		return nil, errs.NewFatal("lab is required")
	}
	return &ClassifyHandler{lab: lab}, nil
}

// Classify GET/POST /v1/classify?profile=default&a1=25&a2=125
//
// 單點計算，不取樣：seed 固定為 0。
func (h *ClassifyHandler) Classify(w http.ResponseWriter, r *http.Request) {
	req, err := dto.DecodeClassifyRequest(r)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	name := profileName(req.Profile)
	g, err := h.lab.NewGeneratorWithSeed(name, 0)
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	a1, a2 := *req.A1, *req.A2
	m1, m2 := g.Model().Memberships(a1, a2)
	prob, class := g.Classify(a1, a2)

	cs := g.Profile().Class
	label := cs.NotSelectedLabel
	if class == cs.Selected {
		label = cs.SelectedLabel
	}
	writeJSON(w, &dto.ClassifyResult{
		Profile:     name,
		A1:          a1,
		A2:          a2,
		Memberships: [2]float64{m1, m2},
		Prob:        prob,
		Class:       class,
		Label:       label,
	})
}
