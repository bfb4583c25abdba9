package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/codec"
	"github.com/emiliopalmerini/uhpc/internal/domain"
	"github.com/emiliopalmerini/uhpc/internal/ports"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export logged predictions",
	Long: `Export logged predictions for external analysis.

Examples:
  uhpc export --format json --out predictions.json
  uhpc export --format csv --out predictions.csv
  uhpc export --format yaml --name "Sustainable Mix"
  uhpc export --format cbor --out predictions.cbor`,
	Annotations: map[string]string{needsDB: "true"},
	RunE:        runExport,
}

var (
	exportFormat string
	exportOut    string
	exportName   string
	exportLimit  int
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv, yaml, cbor")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportName, "name", "", "Filter by mix name")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 1000, "Maximum predictions to export (0 for all)")
}

// ExportRecord is one logged prediction flattened for export.
type ExportRecord struct {
	ID                 string           `json:"id" yaml:"id" cbor:"id"`
	CreatedAt          string           `json:"created_at" yaml:"created_at" cbor:"created_at"`
	Mix                domain.MixDesign `json:"mix" yaml:"mix" cbor:"mix"`
	DescriptorDigest   string           `json:"descriptor_digest" yaml:"descriptor_digest" cbor:"descriptor_digest"`
	EngineVersion      string           `json:"engine_version" yaml:"engine_version" cbor:"engine_version"`
	CoefficientsDigest string           `json:"coefficients_digest" yaml:"coefficients_digest" cbor:"coefficients_digest"`
	CompressiveMPa     float64          `json:"compressive_mpa" yaml:"compressive_mpa" cbor:"compressive_mpa"`
	TensileMPa         float64          `json:"tensile_mpa" yaml:"tensile_mpa" cbor:"tensile_mpa"`
	ElasticModulusMPa  float64          `json:"elastic_modulus_mpa" yaml:"elastic_modulus_mpa" cbor:"elastic_modulus_mpa"`
	UPVms              float64          `json:"upv_ms" yaml:"upv_ms" cbor:"upv_ms"`
	CostUSD            string           `json:"cost_usd" yaml:"cost_usd" cbor:"cost_usd"`
	Confidence         float64          `json:"confidence" yaml:"confidence" cbor:"confidence"`
}

func toExportRecord(r *domain.PredictionRecord) ExportRecord {
	p := r.Prediction
	return ExportRecord{
		ID:                 r.ID,
		CreatedAt:          r.CreatedAt.UTC().Format(time.RFC3339),
		Mix:                p.Mix,
		DescriptorDigest:   p.DescriptorDigest,
		EngineVersion:      p.EngineVersion,
		CoefficientsDigest: p.CoefficientsDigest,
		CompressiveMPa:     p.CompressiveStrength.Value,
		TensileMPa:         p.TensileStrength.Value,
		ElasticModulusMPa:  p.ElasticModulus.Value,
		UPVms:              p.UPV.Value,
		CostUSD:            p.Cost.StringFixed(2),
		Confidence:         p.Confidence,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if err := app.Migrate(ctx); err != nil {
		return err
	}

	recs, err := app.Service.History(ctx, ports.ListOptions{Limit: exportLimit, Name: exportName})
	if err != nil {
		return fmt.Errorf("failed to list predictions: %w", err)
	}
	rows := make([]ExportRecord, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, toExportRecord(r))
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if err := writeExport(w, exportFormat, rows); err != nil {
		return err
	}
	if exportOut != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d predictions to %s\n", len(rows), exportOut)
	}
	return nil
}

func writeExport(w io.Writer, format string, rows []ExportRecord) error {
	if format == "csv" {
		return writeCSV(w, rows)
	}
	f, err := codec.ParseFormat(format)
	if err != nil || f == codec.FormatJSONC {
		return fmt.Errorf("unsupported format: %s (use json, csv, yaml or cbor)", format)
	}
	data, err := codec.Marshal(rows, f)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	if f == codec.FormatJSON {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func writeCSV(w io.Writer, rows []ExportRecord) error {
	cw := csv.NewWriter(w)

	header := []string{"id", "created_at", "name"}
	for _, f := range domain.Fields {
		header = append(header, f.Key)
	}
	header = append(header,
		"compressive_mpa", "tensile_mpa", "elastic_modulus_mpa", "upv_ms", "cost_usd", "confidence",
		"engine_version", "coefficients_digest", "descriptor_digest")
	if err := cw.Write(header); err != nil {
		return err
	}

	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	for _, r := range rows {
		rec := []string{r.ID, r.CreatedAt, r.Mix.Name}
		for _, f := range domain.Fields {
			rec = append(rec, ff(f.Get(r.Mix)))
		}
		rec = append(rec,
			ff(r.CompressiveMPa), ff(r.TensileMPa), ff(r.ElasticModulusMPa), ff(r.UPVms), r.CostUSD, ff(r.Confidence),
			r.EngineVersion, r.CoefficientsDigest, r.DescriptorDigest)
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
