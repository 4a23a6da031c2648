package defines

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// File is the on-disk shape of a defines dump.
type File struct {
	Entries []Entry `json:"entries" yaml:"entries" toml:"entries"`
}

// Entry is one level of configuration.
type Entry struct {
	Section    string         `json:"section" yaml:"section" toml:"section"`
	Arch       string         `json:"arch,omitempty" yaml:"arch,omitempty" toml:"arch,omitempty"`
	Featureset string         `json:"featureset,omitempty" yaml:"featureset,omitempty" toml:"featureset,omitempty"`
	Flavour    string         `json:"flavour,omitempty" yaml:"flavour,omitempty" toml:"flavour,omitempty"`
	Values     map[string]any `json:"values" yaml:"values" toml:"values"`
}

// Key returns the level this entry is stored at.
func (e Entry) Key() Key {
	return Key{Section: e.Section, Arch: e.Arch, Featureset: e.Featureset, Flavour: e.Flavour}
}

// Format identifies a defines file encoding.
type Format string

const (
	// FormatYAML is the default encoding.
	FormatYAML Format = "yaml"
	// FormatTOML is selected by the .toml extension.
	FormatTOML Format = "toml"
	// FormatJSON is selected by the .json extension.
	FormatJSON Format = "json"
)

// FormatFromPath selects the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", gerrors.NewValidationError(
			fmt.Sprintf("unsupported defines file extension %q", filepath.Ext(path)),
			path, "", "use .yaml, .yml, .toml or .json")
	}
}

// Load reads a defines file and builds a store from it.
func Load(path string) (*Store, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.NewNotFoundError("defines file does not exist", path,
				"pass --defines or set defines in gencontrol.yaml")
		}
		return nil, fmt.Errorf("reading defines %s: %w", path, err)
	}

	store, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading defines %s: %w", path, err)
	}
	return store, nil
}

// Parse decodes defines data in the given format.
func Parse(data []byte, format Format) (*Store, error) {
	var file File

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&file); err != nil {
			return nil, gerrors.NewValidationError(err.Error(), "", "", "")
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, gerrors.NewValidationError(err.Error(), "", "", "")
		}
	case FormatJSON:
		if err := sigsyaml.UnmarshalStrict(data, &file); err != nil {
			return nil, gerrors.NewValidationError(err.Error(), "", "", "")
		}
	default:
		return nil, gerrors.NewValidationError(fmt.Sprintf("unknown format %q", format), "", "", "")
	}

	return FromEntries(file.Entries)
}

// FromEntries builds a store, validating that every entry names a section and
// that no dimension is skipped (a flavour without a feature set, etc.).
func FromEntries(entries []Entry) (*Store, error) {
	store := NewStore()
	for i, e := range entries {
		loc := fmt.Sprintf("entries[%d]", i)
		if e.Section == "" {
			return nil, gerrors.NewValidationError("entry has no section", loc, "section", "")
		}
		if (e.Featureset != "" && e.Arch == "") || (e.Flavour != "" && e.Featureset == "") {
			return nil, gerrors.NewValidationError(
				fmt.Sprintf("entry %s skips a dimension", e.Key()), loc, "",
				"a flavour needs a feature set and a feature set needs an architecture")
		}
		store.Set(e.Key(), e.Values)
	}
	return store, nil
}
