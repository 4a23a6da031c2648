package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/kernelmeta/gencontrol/internal/control"
)

// WriteControl writes the manifest as a control file: the source stanza
// first, then every binary package in manifest order, each stanza followed
// by a blank line. Empty fields and X- fields are omitted.
func WriteControl(w io.Writer, m *control.Manifest) error {
	bw := bufio.NewWriter(w)
	if src := m.Source(); src != nil {
		writeStanza(bw, src)
	}
	for _, pkg := range m.Packages() {
		writeStanza(bw, pkg.Entry)
	}
	return bw.Flush()
}

func writeStanza(w *bufio.Writer, e *control.Entry) {
	for _, f := range e.Fields() {
		if strings.HasPrefix(f.Name, "X-") || f.Value.IsEmpty() {
			continue
		}
		w.WriteString(f.Name)
		w.WriteString(": ")
		w.WriteString(f.Value.Render(f.Name))
		w.WriteString("\n")
	}
	w.WriteString("\n")
}
