// Package codec reads and writes mix design descriptors and produces the
// canonical encoding used for digests.
package codec

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"

	"github.com/emiliopalmerini/uhpc/internal/domain"
)

// Format is a descriptor serialization.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONC Format = "jsonc"
	FormatYAML  Format = "yaml"
	FormatCBOR  Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatJSONC, FormatYAML, FormatCBOR}

var canonicalMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("codec: canonical cbor mode: %v", err))
	}
	canonicalMode = em
}

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "jsonc":
		return FormatJSONC, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "cbor":
		return FormatCBOR, nil
	}
	return "", fmt.Errorf("unsupported format %q (want one of %v)", s, Formats)
}

// Canonical encodes v as canonical CBOR (sorted keys, shortest ints).
func Canonical(v any) ([]byte, error) {
	return canonicalMode.Marshal(v)
}

// Digest is the hex BLAKE3-256 of the canonical CBOR encoding of v.
func Digest(v any) (string, error) {
	b, err := Canonical(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode for digest: %w", err)
	}
	sum := blake3.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Encode writes one descriptor in the given format.
func Encode(m domain.MixDesign, f Format) ([]byte, error) {
	return encode(m, f)
}

// EncodeList writes several descriptors in the given format.
func EncodeList(ms []domain.MixDesign, f Format) ([]byte, error) {
	return encode(ms, f)
}

// Marshal writes any value in the given format.
func Marshal(v any, f Format) ([]byte, error) {
	return encode(v, f)
}

func encode(v any, f Format) ([]byte, error) {
	switch f {
	case FormatJSON, FormatJSONC:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatCBOR:
		return Canonical(v)
	}
	return nil, fmt.Errorf("unsupported format %q", f)
}

// Decode reads one descriptor. Unknown fields are rejected for the text formats.
func Decode(data []byte, f Format) (domain.MixDesign, error) {
	var m domain.MixDesign
	if err := decode(data, f, &m); err != nil {
		return domain.MixDesign{}, err
	}
	return m, nil
}

// DecodeList reads either a list of descriptors or a single one.
func DecodeList(data []byte, f Format) ([]domain.MixDesign, error) {
	list, err := isList(data, f)
	if err != nil {
		return nil, err
	}
	if list {
		var ms []domain.MixDesign
		if err := decode(data, f, &ms); err != nil {
			return nil, err
		}
		return ms, nil
	}
	m, err := Decode(data, f)
	if err != nil {
		return nil, err
	}
	return []domain.MixDesign{m}, nil
}

// isList reports whether the top-level value of data is a sequence.
func isList(data []byte, f Format) (bool, error) {
	switch f {
	case FormatJSONC:
		data = jsonc.ToJSON(data)
		fallthrough
	case FormatJSON:
		trimmed := bytes.TrimLeft(data, " \t\r\n")
		return len(trimmed) > 0 && trimmed[0] == '[', nil
	case FormatYAML:
		var doc yaml.Node
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return false, fmt.Errorf("failed to decode yaml descriptor: %w", err)
		}
		return doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 &&
			doc.Content[0].Kind == yaml.SequenceNode, nil
	case FormatCBOR:
		// Major type 4 is an array.
		return len(data) > 0 && data[0]>>5 == 4, nil
	}
	return false, fmt.Errorf("unsupported format %q", f)
}

func decode(data []byte, f Format, out any) error {
	switch f {
	case FormatJSONC:
		data = jsonc.ToJSON(data)
		fallthrough
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to decode json descriptor: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(out); err != nil {
			return fmt.Errorf("failed to decode yaml descriptor: %w", err)
		}
	case FormatCBOR:
		if err := cbor.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode cbor descriptor: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", f)
	}
	return nil
}

// ReadFile loads descriptors from path, picking the format from its extension.
func ReadFile(path string) ([]domain.MixDesign, error) {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor file: %w", err)
	}
	return DecodeList(data, f)
}
