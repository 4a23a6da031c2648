package rules

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/kernelmeta/gencontrol/internal/control"
)

// DefaultBaseDir is the packaging directory link sources and destinations
// live in.
const DefaultBaseDir = "debian"

// Link kinds shared between meta-packages.
var (
	FlavourLinkKinds = []string{"NEWS"}
	ExtraLinkKinds   = []string{"config", "postinst", "templates"}
)

// DefaultPrefixes maps package roles to the canonical names whose files
// are shared by every package of that role.
func DefaultPrefixes() map[string][]string {
	return map[string][]string{
		"image":     {"linux-image"},
		"image-dbg": {"linux-image"},
		"headers":   {"linux-headers"},
		"extra":     {"linux-image", "linux-headers", "linux-doc", "linux-source", "linux-tools"},
		"doc":       {"linux-doc"},
		"source":    {"linux-source"},
		"tools":     {"linux-tools"},
	}
}

// Linker emits `ln -sf` commands that point a package's maintainer files at
// the canonical copy for its role.
type Linker struct {
	// Fs is rooted at the source tree.
	Fs afero.Fs

	// BaseDir is the packaging directory inside Fs.
	BaseDir string

	// Prefixes maps roles to canonical package name prefixes.
	Prefixes map[string][]string

	// FlavourKinds are linked for every package built by a variant.
	FlavourKinds []string

	// ExtraKinds are linked for extra packages.
	ExtraKinds []string
}

// NewLinker creates a linker over fsys with the default base dir, prefixes
// and link kinds.
func NewLinker(fsys afero.Fs) *Linker {
	return &Linker{
		Fs:           fsys,
		BaseDir:      DefaultBaseDir,
		Prefixes:     DefaultPrefixes(),
		FlavourKinds: slices.Clone(FlavourLinkKinds),
		ExtraKinds:   slices.Clone(ExtraLinkKinds),
	}
}

// Canonical returns the canonical name for pkg: the longest prefix p of its
// role such that the package is named p-<suffix>.
func (l *Linker) Canonical(pkg *control.Package) (string, bool) {
	name := pkg.Name()
	best := ""
	for _, p := range l.Prefixes[pkg.Role] {
		if len(name) > len(p)+1 && strings.HasPrefix(name, p+"-") && len(p) > len(best) {
			best = p
		}
	}
	return best, best != ""
}

// LinkCommands returns one command per kind whose canonical file exists and
// whose destination is missing or already a symlink. Regular destination
// files are never replaced.
func (l *Linker) LinkCommands(pkg *control.Package, kinds []string) ([]string, error) {
	canonical, ok := l.Canonical(pkg)
	if !ok {
		return nil, nil
	}

	var cmds []string
	for _, kind := range kinds {
		source := filepath.Join(l.BaseDir, canonical+"."+kind)
		dest := filepath.Join(l.BaseDir, pkg.Name()+"."+kind)

		isSource, err := l.isRegular(source)
		if err != nil {
			return nil, err
		}
		if !isSource {
			continue
		}
		isDest, err := l.isRegular(dest)
		if err != nil {
			return nil, err
		}
		isLink, err := l.isSymlink(dest)
		if err != nil {
			return nil, err
		}
		if isDest && !isLink {
			continue
		}

		rel, err := filepath.Rel(l.BaseDir, source)
		if err != nil {
			return nil, fmt.Errorf("relative link source for %s: %w", source, err)
		}
		cmds = append(cmds, "ln -sf "+rel+" "+dest)
	}
	return cmds, nil
}

// isRegular follows symlinks.
func (l *Linker) isRegular(path string) (bool, error) {
	info, err := l.Fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

func (l *Linker) isSymlink(path string) (bool, error) {
	lstater, ok := l.Fs.(afero.Lstater)
	if !ok {
		return false, nil
	}
	info, _, err := lstater.LstatIfPossible(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	return info.Mode()&fs.ModeSymlink != 0, nil
}
