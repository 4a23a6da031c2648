package templates

import (
	"fmt"

	"github.com/kernelmeta/gencontrol/internal/vars"
)

// TextSource supplies raw text templates.
type TextSource interface {
	Text(name string) (string, error)
}

// Renderer substitutes text templates against a variable context.
type Renderer struct {
	src  TextSource
	vars vars.Context
}

// NewRenderer creates a renderer for ctx.
func NewRenderer(src TextSource, ctx vars.Context) *Renderer {
	return &Renderer{src: src, vars: ctx}
}

// Render substitutes text template name.
func (r *Renderer) Render(name string) (string, error) {
	raw, err := r.src.Text(name)
	if err != nil {
		return "", err
	}
	out, err := r.vars.Substitute(raw)
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return out, nil
}
