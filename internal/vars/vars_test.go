package vars

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

func TestSubstitute(t *testing.T) {
	ctx := Context{
		"flavour":  "cloud-amd64",
		"abiname":  "-8",
		"version":  "5.10",
		"long_var": "x",
	}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no placeholders", "linux-doc", "linux-doc"},
		{"single", "linux-image-@flavour@", "linux-image-cloud-amd64"},
		{"multiple", "linux-image-@version@@abiname@-@flavour@", "linux-image-5.10-8-cloud-amd64"},
		{"underscore name", "@long_var@", "x"},
		{"upper case is not a placeholder", "@FLAVOUR@", "@FLAVOUR@"},
		{"lone at sign", "user@example.org", "user@example.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.Substitute(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_Unresolved(t *testing.T) {
	ctx := Context{"flavour": "amd64"}

	_, err := ctx.Substitute("linux-headers-@abiname@-@flavour@-@class@")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerrors.ErrUnresolvedVariable))

	var detail *gerrors.DetailError
	require.True(t, errors.As(err, &detail))
	assert.Equal(t, "abiname", detail.Field, "first missing placeholder is reported")
}

func TestSubstituteAll(t *testing.T) {
	ctx := Context{"abiname": "8"}

	got, err := ctx.SubstituteAll([]string{"linux-support-@abiname@", "linux-headers-@abiname@-all"})
	require.NoError(t, err)
	assert.Equal(t, []string{"linux-support-8", "linux-headers-8-all"}, got)

	_, err = ctx.SubstituteAll([]string{"ok", "@nope@"})
	assert.True(t, errors.Is(err, gerrors.ErrUnresolvedVariable))
}

func TestCloneAndWith(t *testing.T) {
	base := Context{"version": "5.10"}
	derived := base.With("flavour", "arm64", "arch")

	assert.Equal(t, "arm64", derived["flavour"])
	assert.NotContains(t, derived, "arch", "odd trailing name is ignored")
	assert.NotContains(t, base, "flavour", "With must not mutate the receiver")

	clone := base.Clone()
	clone["version"] = "6.1"
	assert.Equal(t, "5.10", base["version"])
}

func TestNames(t *testing.T) {
	ctx := Context{"b": "", "a": "", "c": ""}
	assert.Equal(t, []string{"a", "b", "c"}, ctx.Names())
}
