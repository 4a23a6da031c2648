// Package templates is the template catalog: named control templates (lists
// of package entries) and text templates, read from an optional directory
// overlaid on the embedded defaults.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/kernelmeta/gencontrol/internal/control"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

//go:embed defaults/*
var defaultsFS embed.FS

// Defaults returns the embedded default templates.
func Defaults() fs.FS {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Catalog resolves template names against layered filesystems. The first
// layer holding a file wins.
type Catalog struct {
	layers  []fs.FS
	entries map[string][]*control.Entry
}

// New creates a catalog over layers, highest priority first.
func New(layers ...fs.FS) *Catalog {
	return &Catalog{
		layers:  layers,
		entries: make(map[string][]*control.Entry),
	}
}

// Open creates a catalog reading dir first and the embedded defaults second.
// An empty dir uses the defaults only.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return New(Defaults()), nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gerrors.NewNotFoundError("templates directory does not exist", dir, "")
		}
		return nil, fmt.Errorf("opening templates %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, gerrors.NewValidationError("templates path is not a directory", dir, "", "")
	}
	return New(os.DirFS(dir), Defaults()), nil
}

func (c *Catalog) read(file string) ([]byte, string, error) {
	for i, layer := range c.layers {
		data, err := fs.ReadFile(layer, file)
		if err == nil {
			return data, fmt.Sprintf("layer%d:%s", i, file), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("reading template %s: %w", file, err)
		}
	}
	return nil, "", gerrors.NewNotFoundError(fmt.Sprintf("template %s not found", file), file, "")
}

// Entries returns copies of the entries of control template name.
func (c *Catalog) Entries(name string) ([]*control.Entry, error) {
	cached, ok := c.entries[name]
	if !ok {
		data, loc, err := c.read(name + ".yaml")
		if err != nil {
			return nil, err
		}
		cached, err = ParseEntries(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", loc, err)
		}
		c.entries[name] = cached
	}

	out := make([]*control.Entry, len(cached))
	for i, e := range cached {
		out[i] = e.Clone()
	}
	return out, nil
}

// Text returns the raw content of text template name.
func (c *Catalog) Text(name string) (string, error) {
	data, _, err := c.read(name + ".in")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Has reports whether name resolves as a control or text template.
func (c *Catalog) Has(name string) bool {
	for _, ext := range []string{".yaml", ".in"} {
		for _, layer := range c.layers {
			if _, err := fs.Stat(layer, path.Clean(name+ext)); err == nil {
				return true
			}
		}
	}
	return false
}
