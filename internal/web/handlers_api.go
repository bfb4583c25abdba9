package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/emiliopalmerini/uhpc/internal/compare"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
	"github.com/emiliopalmerini/uhpc/internal/standards"
)

type presetView struct {
	Slug string           `json:"slug"`
	Mix  domain.MixDesign `json:"mix"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	names := domain.PresetNames()
	out := make([]presetView, 0, len(names))
	for _, n := range names {
		m, _ := domain.Preset(n)
		out = append(out, presetView{Slug: n, Mix: m})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"presets":                 out,
		"comparison_set":          domain.ComparisonSet(),
		"optimization_candidates": domain.OptimizationCandidates(),
	})
}

func (s *Server) handleStandards(w http.ResponseWriter, r *http.Request) {
	all, err := standards.All()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var in mixInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	m, err := in.resolve()
	if err != nil {
		writeError(w, err)
		return
	}
	save, _ := strconv.ParseBool(r.URL.Query().Get("save"))

	res, err := s.svc.Predict(r.Context(), m, save)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusOK
	if res.RecordID != "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var in mixInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	m, err := in.resolve()
	if err != nil {
		writeError(w, err)
		return
	}
	id := standards.ID(r.URL.Query().Get("standard"))
	reports, err := s.svc.Validate(m, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

type compareRequest struct {
	Mixes     []domain.MixDesign `json:"mixes"`
	Presets   []string           `json:"presets"`
	Objective string             `json:"objective"`
}

type compareResponse struct {
	Objective compare.Objective `json:"objective"`
	Ranking   []compare.Ranked  `json:"ranking"`
	Deltas    []compare.Delta   `json:"deltas"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	mixes := req.Mixes
	for _, name := range req.Presets {
		m, err := domain.Preset(name)
		if err != nil {
			writeError(w, err)
			return
		}
		mixes = append(mixes, m)
	}
	if req.Objective == "" {
		req.Objective = string(compare.MaxCompressive)
	}
	obj, err := compare.ParseObjective(req.Objective)
	if err != nil {
		writeError(w, err)
		return
	}

	ranked, err := s.svc.Compare(r.Context(), mixes, obj)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := compareResponse{Objective: obj, Ranking: ranked, Deltas: []compare.Delta{}}
	for _, other := range ranked[1:] {
		resp.Deltas = append(resp.Deltas, compare.Diff(ranked[0], other))
	}
	writeJSON(w, http.StatusOK, resp)
}

type optimizeRequest struct {
	Requirements *compare.Requirements `json:"requirements"`
	Candidates   []domain.MixDesign    `json:"candidates"`
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	reqs := compare.DefaultRequirements()
	if req.Requirements != nil {
		reqs = *req.Requirements
	}
	out, err := s.svc.Optimize(r.Context(), reqs, req.Candidates)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requirements": reqs, "candidates": out})
}

type progressionRequest struct {
	mixInput
	MaxAgeDays float64 `json:"max_age_days"`
}

func (s *Server) handleProgression(w http.ResponseWriter, r *http.Request) {
	var req progressionRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	m, err := req.resolve()
	if err != nil {
		writeError(w, err)
		return
	}
	steps, err := s.svc.Progression(m, req.MaxAgeDays)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, steps)
}

func (s *Server) handleAgreement(w http.ResponseWriter, r *http.Request) {
	var in mixInput
	if err := decode(w, r, &in); err != nil {
		writeError(w, err)
		return
	}
	m, err := in.resolve()
	if err != nil {
		writeError(w, err)
		return
	}
	a, err := s.svc.Agreement(m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}
	recs, err := s.svc.History(r.Context(), ports.ListOptions{Limit: limit, Name: r.URL.Query().Get("name")})
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*domain.PredictionRecord{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.Record(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeletePrediction(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.DeleteRecord(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleVerifyPrediction(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Verify(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
