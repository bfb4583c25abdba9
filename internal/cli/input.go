package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/uhpc/internal/codec"
	"github.com/emiliopalmerini/uhpc/internal/domain"
)

// defaultPreset seeds descriptors built from field flags alone.
const defaultPreset = "custom"

// mixFlags collects a descriptor from --preset, --file or per-field flags.
type mixFlags struct {
	preset string
	file   string
	name   string
	values map[string]*float64
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// addMixFlags registers the descriptor flags on cmd.
func addMixFlags(cmd *cobra.Command) *mixFlags {
	mf := &mixFlags{values: make(map[string]*float64, len(domain.Fields))}
	fs := cmd.Flags()
	fs.StringVarP(&mf.preset, "preset", "p", "", "Start from a preset ("+strings.Join(domain.PresetNames(), ", ")+")")
	fs.StringVarP(&mf.file, "file", "f", "", "Read the mix from a .json, .jsonc, .yaml or .cbor file")
	fs.StringVar(&mf.name, "name", "", "Mix name")
	for _, f := range domain.Fields {
		usage := fmt.Sprintf("%s (%s, calibrated %g-%g)", f.Label, f.Unit, f.Min, f.Max)
		mf.values[f.Key] = fs.Float64(flagName(f.Key), 0, usage)
	}
	cmd.MarkFlagsMutuallyExclusive("preset", "file")
	return mf
}

// mixes resolves every descriptor the flags describe. Field flags override the
// preset or file values.
func (mf *mixFlags) mixes(cmd *cobra.Command) ([]domain.MixDesign, error) {
	var base []domain.MixDesign
	switch {
	case mf.file != "":
		ms, err := codec.ReadFile(mf.file)
		if err != nil {
			return nil, err
		}
		if len(ms) == 0 {
			return nil, &domain.EmptyInputError{Operation: "read " + mf.file}
		}
		base = ms
	default:
		slug := mf.preset
		if slug == "" {
			slug = defaultPreset
		}
		m, err := domain.Preset(slug)
		if err != nil {
			return nil, err
		}
		base = []domain.MixDesign{m}
	}

	for i := range base {
		for _, f := range domain.Fields {
			if cmd.Flags().Changed(flagName(f.Key)) {
				f.Set(&base[i], *mf.values[f.Key])
			}
		}
		if mf.name != "" {
			base[i].Name = mf.name
		}
	}
	return base, nil
}

// mix resolves exactly one descriptor.
func (mf *mixFlags) mix(cmd *cobra.Command) (domain.MixDesign, error) {
	ms, err := mf.mixes(cmd)
	if err != nil {
		return domain.MixDesign{}, err
	}
	if len(ms) != 1 {
		return domain.MixDesign{}, fmt.Errorf("expected one mix, %s holds %d", mf.file, len(ms))
	}
	return ms[0], nil
}
