package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/web/templates"
)

const defaultReportPreset = "standard-uhpc"

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("preset")
	if slug == "" {
		slug = defaultReportPreset
	}
	m, err := domain.Preset(slug)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	res, err := s.svc.Predict(r.Context(), m, false)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	steps, err := s.svc.Progression(m, 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	agreement, err := s.svc.Agreement(m)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := templates.ReportData{
		Title:       m.Label(slug) + " prediction report",
		Preset:      slug,
		Presets:     domain.PresetNames(),
		Prediction:  res.Prediction,
		Analysis:    res.Analysis,
		Reports:     res.Reports,
		Progression: steps,
		Agreement:   agreement,

		Confidence:      res.Confidence,
		ConfidenceLevel: res.ConfidenceLevel,
	}
	page := templates.Report(data)
	if IsHTMX(r) {
		page = templates.ReportBody(data)
	}
	templ.Handler(page).ServeHTTP(w, r)
}
