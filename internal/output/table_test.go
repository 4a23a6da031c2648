package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderManifestTable(t *testing.T) {
	s := snapshot(
		SnapshotPackage{Package: "linux-image-amd64", Role: "image", Architectures: []string{"amd64", "arm64"}},
		SnapshotPackage{Package: "linux-doc", Role: "doc", Architectures: []string{"all"}},
	)

	out := RenderManifestTable(s)
	assert.Contains(t, out, "PACKAGE")
	assert.Contains(t, out, "linux-image-amd64")
	assert.Contains(t, out, "amd64 arm64")
	assert.Contains(t, out, "doc")
}

func TestTable_Rows(t *testing.T) {
	out := NewTable("A", "B").Row("1", "2").Row("3", "4").String()
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "4")
}
