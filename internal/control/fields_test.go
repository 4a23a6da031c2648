package control

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseField(t *testing.T) {
	tests := []struct {
		name  string
		field string
		raw   string
		want  Value
	}{
		{"architecture", FieldArchitecture, " amd64  arm64 ", List("amd64", "arm64")},
		{"relation", "Depends", "linux-image-5.10.0-8-amd64,  ${misc:Depends} ,", List("linux-image-5.10.0-8-amd64", "${misc:Depends}")},
		{"relation with version", "Build-Depends", "debhelper (>= 10),\n python3", List("debhelper (>= 10)", "python3")},
		{"scalar", "Section", " kernel ", String("kernel")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseField(tt.field, tt.raw)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.True(t, tt.want.Equal(got), "got %#v", got)
		})
	}
}

func TestParseField_Description(t *testing.T) {
	v := ParseField(FieldDescription, "Summary\nLong text.")
	assert.Equal(t, KindDescription, v.Kind)
	assert.Equal(t, "Summary\n Long text.", v.Render(FieldDescription))
}

func TestIsRelationField(t *testing.T) {
	assert.True(t, IsRelationField("Depends"))
	assert.False(t, IsRelationField("Package"))
}
