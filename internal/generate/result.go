package generate

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/kernelmeta/gencontrol/internal/control"
	"github.com/kernelmeta/gencontrol/internal/output"
	"github.com/kernelmeta/gencontrol/internal/rules"
)

// Output file names inside the packaging directory.
const (
	ControlFile = "control"
	RulesFile   = "rules.gen"
)

// Result is the outcome of a successful run.
type Result struct {
	Manifest       *control.Manifest
	Makefile       *rules.Makefile
	Files          *SideFiles
	Variants       []Variant
	PackageVersion string
}

// File is one rendered output file.
type File struct {
	Name    string
	Content []byte
}

// WrittenFile reports what Write did with a file.
type WrittenFile struct {
	Name   string
	Status string
}

// Render serializes the control file, the rules and the side files, in that
// order.
func (r *Result) Render() ([]File, error) {
	var ctrl bytes.Buffer
	if err := output.WriteControl(&ctrl, r.Manifest); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", ControlFile, err)
	}
	var mk bytes.Buffer
	if _, err := r.Makefile.WriteTo(&mk); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", RulesFile, err)
	}

	files := []File{
		{Name: ControlFile, Content: ctrl.Bytes()},
		{Name: RulesFile, Content: mk.Bytes()},
	}
	for _, name := range r.Files.Names() {
		content, _ := r.Files.Get(name)
		files = append(files, File{Name: name, Content: []byte(content)})
	}
	return files, nil
}

// Write renders every file and then writes them under dir. Rendering
// finishes before the first write, so a rendering failure leaves dir
// untouched. Files whose content is unchanged are not rewritten.
func (r *Result) Write(fsys afero.Fs, dir string) ([]WrittenFile, error) {
	files, err := r.Render()
	if err != nil {
		return nil, err
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	written := make([]WrittenFile, 0, len(files))
	for _, f := range files {
		path := filepath.Join(dir, f.Name)

		status := output.StatusCreated
		old, err := afero.ReadFile(fsys, path)
		switch {
		case err == nil && bytes.Equal(old, f.Content):
			written = append(written, WrittenFile{Name: f.Name, Status: output.StatusUnchanged})
			continue
		case err == nil:
			status = output.StatusUpdated
		case !errors.Is(err, fs.ErrNotExist):
			return written, fmt.Errorf("reading %s: %w", path, err)
		}

		if err := afero.WriteFile(fsys, path, f.Content, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		output.Debug("wrote file", "file", path, "status", status)
		written = append(written, WrittenFile{Name: f.Name, Status: status})
	}
	return written, nil
}
