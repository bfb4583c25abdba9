package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/emiliopalmerini/uhpc/internal/util"
)

const style = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:960px;color:#222}
h1{border-bottom:3px solid #1f4e79;padding-bottom:.4rem}
table{border-collapse:collapse;margin:1rem 0;width:100%}
th,td{border:1px solid #ddd;padding:.4rem .6rem;text-align:left}
th{background:#f3f6fa}
.ok{color:#1b7f3b}.warn{color:#b26a00}.bad{color:#b00020}
nav a{margin-right:.8rem}
footer{margin-top:2rem;font-size:.8rem;color:#666}`

const htmxScript = "https://unpkg.com/htmx.org@1.9.12"

// Report renders a standalone HTML page for one prediction.
func Report(d ReportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}

		w.raw("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>")
		w.text(d.Title)
		w.raw("</title><style>%s</style><script src=\"%s\"></script></head><body>\n", style, htmxScript)

		w.raw("<nav>")
		for _, name := range d.Presets {
			u := templ.EscapeString(string(reportURL(name)))
			w.raw("<a href=\"%s\" hx-get=\"%s\" hx-target=\"#report\" hx-push-url=\"true\">", u, u)
			w.text(name)
			w.raw("</a>")
		}
		w.raw("</nav>\n<main id=\"report\">\n")
		if w.err != nil {
			return w.err
		}
		if err := ReportBody(d).Render(ctx, out); err != nil {
			return err
		}
		w.raw("</main>\n</body></html>\n")
		return w.err
	})
}

// ReportBody renders the report sections without the page shell, for
// partial page updates.
func ReportBody(d ReportData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		p := d.Prediction

		w.raw("<h1>")
		w.text(d.Title)
		w.raw("</h1>\n")

		w.raw("<h2>Mix design</h2>\n<table>\n")
		w.row("Cement", fmt.Sprintf("%g kg/m³", p.Mix.Cement))
		w.row("Water", fmt.Sprintf("%g kg/m³", p.Mix.Water))
		w.row("Slag", fmt.Sprintf("%g kg/m³", p.Mix.Slag))
		w.row("Fly ash", fmt.Sprintf("%g kg/m³", p.Mix.FlyAsh))
		w.row("Silica fume", fmt.Sprintf("%g kg/m³", p.Mix.SilicaFume))
		w.row("Coarse aggregate", fmt.Sprintf("%g kg/m³", p.Mix.CoarseAggregate))
		w.row("Fine aggregate", fmt.Sprintf("%g kg/m³", p.Mix.FineAggregate))
		w.row("Superplasticizer", fmt.Sprintf("%g kg/m³", p.Mix.Superplasticizer))
		w.row("Steel fiber", fmt.Sprintf("%g kg/m³", p.Mix.SteelFiber))
		w.row("Age", days(p.Mix.AgeDays))
		w.raw("</table>\n")

		w.raw("<h2>Predicted properties</h2>\n<table>\n<tr><th>Property</th><th>Value</th><th>R²</th></tr>\n")
		prop := func(label, value string, r2 float64) {
			w.raw("<tr><td>")
			w.text(label)
			w.raw("</td><td>")
			w.text(value)
			w.raw("</td><td>%.2f</td></tr>\n", r2)
		}
		prop("Compressive strength", util.FormatMPa(p.CompressiveStrength.Value), p.CompressiveStrength.R2)
		prop("Tensile strength", util.FormatMPa(p.TensileStrength.Value), p.TensileStrength.R2)
		prop("Elastic modulus", util.FormatGPa(p.ElasticModulus.Value), p.ElasticModulus.R2)
		prop("Pulse velocity", util.FormatVelocity(p.UPV.Value), p.UPV.R2)
		prop("Material cost", util.FormatUSD(p.Cost), p.CostR2)
		w.raw("</table>\n<p>Confidence %.2f (", d.Confidence)
		w.text(d.ConfidenceLevel)
		w.raw("). Engine ")
		w.text(p.EngineVersion)
		w.raw(", descriptor <code>")
		w.text(util.ShortID(p.DescriptorDigest))
		w.raw("</code>.</p>\n")

		a := d.Analysis
		w.raw("<h2>Analysis</h2>\n<table>\n")
		w.row("Performance class", string(a.Class))
		w.row("Pulse velocity quality", a.UPVQuality)
		w.row("Water/cement", fmt.Sprintf("%.3f", a.WaterCementRatio))
		w.row("Water/binder", fmt.Sprintf("%.3f", a.WaterBinderRatio))
		w.row("SCM content", util.FormatPercent(a.SCMPercent))
		w.row("Sustainability score", fmt.Sprintf("%.1f / 10", a.SustainabilityScore))
		w.row("Strength per cost", fmt.Sprintf("%.2f MPa per USD", a.StrengthPerCost))
		w.row("Tensile/compressive", util.FormatPercent(a.TensileRatioPercent))
		w.row("Modulus/strength", fmt.Sprintf("%.0f", a.ModulusRatio))
		w.raw("</table>\n<p>Recommended for: ")
		for i, app := range a.Applications {
			if i > 0 {
				w.raw(", ")
			}
			w.text(app)
		}
		w.raw("</p>\n")

		w.raw("<h2>Standards</h2>\n<table>\n<tr><th>Standard</th><th>Status</th><th>Issues</th></tr>\n")
		for _, r := range d.Reports {
			w.raw("<tr><td>")
			w.text(r.Name)
			w.raw("</td><td class=\"%s\">", statusClass(string(r.Status)))
			w.text(string(r.Status))
			w.raw("</td><td>")
			for i, issue := range r.Issues {
				if i > 0 {
					w.raw("<br>")
				}
				w.text(issue.Message)
			}
			w.raw("</td></tr>\n")
		}
		w.raw("</table>\n")

		if len(d.Progression) > 0 {
			w.raw("<h2>Strength development</h2>\n<table>\n<tr><th>Age</th><th>Compressive</th><th>Tensile</th><th>Of 28-day</th></tr>\n")
			for _, s := range d.Progression {
				w.raw("<tr><td>")
				w.text(days(s.AgeDays))
				if s.Milestone {
					w.raw(" ★")
				}
				w.raw("</td><td>")
				w.text(util.FormatMPa(s.Prediction.CompressiveStrength.Value))
				w.raw("</td><td>")
				w.text(util.FormatMPa(s.Prediction.TensileStrength.Value))
				w.raw("</td><td>")
				w.text(util.FormatPercent(s.GainPercent))
				w.raw("</td></tr>\n")
			}
			w.raw("</table>\n")
		}

		if len(d.Agreement.Correlations) > 0 {
			w.raw("<h2>Agreement with reference curves</h2>\n<table>\n<tr><th>Standard</th><th>Pearson r</th></tr>\n")
			for _, c := range d.Agreement.Correlations {
				w.raw("<tr><td>")
				w.text(c.Name)
				w.raw("</td><td>%.3f</td></tr>\n", c.Pearson)
			}
			w.raw("</table>\n<p>Overall: <span class=\"%s\">", statusClass(string(d.Agreement.Status)))
			w.text(string(d.Agreement.Status))
			w.raw("</span> (average %.3f)</p>\n", d.Agreement.Average)
		}

		w.raw("<footer>Generated by uhpc ")
		w.text(p.EngineVersion)
		w.raw("</footer>\n")
		return w.err
	})
}
