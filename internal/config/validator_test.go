package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

func TestValidate_Defaults(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidate_Problems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Defines = " "
	cfg.Links.Flavour = []string{"NEWS", "../escape"}
	cfg.Links.Extra = []string{""}
	cfg.Canonical = map[string][]string{
		"kernel": {"linux"},
		"image":  {"linux image"},
	}

	err := Validate(cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gerrors.ErrValidation))

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field)
	}
	assert.Equal(t, []string{"defines", "links.flavour[1]", "links.extra[0]", "canonical.image", "canonical.kernel"}, fields)
	assert.Contains(t, err.Error(), "config validation failed:")
}

func TestKnownRoles(t *testing.T) {
	roles := KnownRoles()
	assert.Contains(t, roles, "xen")
	assert.Contains(t, roles, "image-dbg")
	assert.IsIncreasing(t, roles)
}

func TestValidateFile(t *testing.T) {
	err := ValidateFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.Is(err, gerrors.ErrNotFound))

	assert.NoError(t, ValidateFile(writeConfig(t, "output: debian\n")))

	err = ValidateFile(writeConfig(t, "canonical:\n  bogus: [x]\n"))
	assert.True(t, errors.Is(err, gerrors.ErrValidation))
}
