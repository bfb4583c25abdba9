package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/codec"
	"github.com/emiliopalmerini/uhpc/internal/domain"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the built-in mix presets",
	Long: `List the built-in mix presets.

With --dump the presets are written as a descriptor list that --file accepts.

Examples:
  uhpc presets
  uhpc presets --dump yaml > mixes.yaml`,
	RunE: runPresets,
}

var presetsDump string

func init() {
	rootCmd.AddCommand(presetsCmd)
	presetsCmd.Flags().StringVar(&presetsDump, "dump", "", "Write the presets as a descriptor list (json, jsonc, yaml, cbor)")
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	names := domain.PresetNames()

	if presetsDump != "" {
		f, err := codec.ParseFormat(presetsDump)
		if err != nil {
			return err
		}
		ms := make([]domain.MixDesign, 0, len(names))
		for _, n := range names {
			m, _ := domain.Preset(n)
			ms = append(ms, m)
		}
		data, err := codec.EncodeList(ms, f)
		if err != nil {
			return fmt.Errorf("failed to encode presets: %w", err)
		}
		_, err = out.Write(data)
		return err
	}

	if jsonOutput() {
		all := make(map[string]domain.MixDesign, len(names))
		for _, n := range names {
			all[n], _ = domain.Preset(n)
		}
		return printJSON(out, all)
	}

	tw := newTable(out)
	fmt.Fprintln(tw, "PRESET\tNAME\tCEMENT\tWATER\tSLAG\tFLY ASH\tSILICA\tSP\tw/b")
	for _, n := range names {
		m, _ := domain.Preset(n)
		fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%.3f\n",
			n, m.Name, m.Cement, m.Water, m.Slag, m.FlyAsh, m.SilicaFume, m.Superplasticizer, m.WaterBinderRatio())
	}
	return tw.Flush()
}
