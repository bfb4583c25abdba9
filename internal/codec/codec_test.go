package codec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

func sustainable(t *testing.T) domain.MixDesign {
	t.Helper()
	m, err := domain.Preset("sustainable")
	require.NoError(t, err)
	m.SteelFiber = 78.5
	return m
}

func TestRoundTrip(t *testing.T) {
	m := sustainable(t)
	for _, f := range []Format{FormatJSON, FormatYAML, FormatCBOR} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(m, f)
			require.NoError(t, err)

			got, err := Decode(data, f)
			require.NoError(t, err)
			if diff := cmp.Diff(m, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRoundTripList(t *testing.T) {
	set := domain.ComparisonSet()
	for _, f := range []Format{FormatJSON, FormatYAML, FormatCBOR} {
		data, err := EncodeList(set, f)
		require.NoError(t, err)
		got, err := DecodeList(data, f)
		require.NoError(t, err)
		if diff := cmp.Diff(set, got); diff != "" {
			t.Errorf("%s list mismatch (-want +got):\n%s", f, diff)
		}
	}
}

func TestDecode_JSONC(t *testing.T) {
	src := []byte(`{
		// trial batch
		"name": "trial",
		"cement": 400, "water": 160, /* no SCMs */ "silica_fume": 40,
		"age_days": 28,
	}`)
	m, err := Decode(src, FormatJSONC)
	require.NoError(t, err)
	assert.Equal(t, "trial", m.Name)
	assert.Equal(t, 400.0, m.Cement)
	assert.Equal(t, 40.0, m.SilicaFume)
}

func TestDecode_RejectsUnknownFields(t *testing.T) {
	_, err := Decode([]byte(`{"cement": 400, "cemnet": 1}`), FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte("cement: 400\nwatr: 160\n"), FormatYAML)
	assert.Error(t, err)
}

func TestDecodeList_SingleObject(t *testing.T) {
	ms, err := DecodeList([]byte("cement: 400\nwater: 160\nage_days: 28\n"), FormatYAML)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	assert.Equal(t, 160.0, ms[0].Water)
}

func TestDecodeList_ReportsBadElement(t *testing.T) {
	yamlList := []byte("- cement: 400\n  water: 160\n  age_days: 28\n- cemnt: 420\n  water: 150\n  age_days: 28\n")
	_, err := DecodeList(yamlList, FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cemnt")

	jsonList := []byte(`[{"cement": 400, "water": 160, "age_days": 28}, {"cemnt": 420, "water": 150}]`)
	_, err = DecodeList(jsonList, FormatJSON)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cemnt")

	_, err = DecodeList([]byte("  // leading comment\n[{\"cemnt\": 1}]"), FormatJSONC)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cemnt")
}

func TestDecodeList_SingleObjectErrorKeepsField(t *testing.T) {
	_, err := DecodeList([]byte("cemnt: 400\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cemnt")
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{".yml": FormatYAML, "YAML": FormatYAML, ".json": FormatJSON, "jsonc": FormatJSONC, ".cbor": FormatCBOR}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseFormat(".toml")
	assert.ErrorContains(t, err, "yaml")
}

func TestDigest_StableAndDistinct(t *testing.T) {
	m := sustainable(t)
	d1, err := Digest(m)
	require.NoError(t, err)
	d2, err := Digest(m)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
	assert.Len(t, d1, 64)

	other, err := Digest(m.WithAge(7))
	require.NoError(t, err)
	assert.NotEqual(t, d1, other)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mixes.yaml")
	data, err := EncodeList(domain.ComparisonSet(), FormatYAML)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	ms, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, ms, 3)

	_, err = ReadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
