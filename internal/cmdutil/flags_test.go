package cmdutil

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceFlags_AddTo(t *testing.T) {
	var sf SourceFlags
	cmd := &cobra.Command{Use: "test"}
	sf.AddTo(cmd)

	for _, name := range []string{"defines", "templates", "changelog"} {
		f := cmd.Flags().Lookup(name)
		require.NotNil(t, f, name)
		assert.Equal(t, "string", f.Value.Type())
		assert.Equal(t, "", f.DefValue)
	}

	strict := cmd.Flags().Lookup("strict")
	require.NotNil(t, strict)
	assert.Equal(t, "bool", strict.Value.Type())
	assert.Equal(t, "false", strict.DefValue)
}

func TestSourceFlags_FlagValues(t *testing.T) {
	var sf SourceFlags
	cmd := &cobra.Command{Use: "test"}
	sf.AddTo(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--defines", "d.toml", "--strict"}))

	got := sf.flagValues(cmd)

	assert.Equal(t, flagValue{"d.toml", true}, got["defines"])
	assert.Equal(t, flagValue{"true", true}, got["strict"])
	assert.Equal(t, flagValue{"", false}, got["templates"])
	assert.False(t, sf.flagValues(nil)["defines"].set, "no command means no flag was set")
}

func TestResolveRoot(t *testing.T) {
	assert.Equal(t, ".", ResolveRoot(nil))
	assert.Equal(t, "src/linux-latest", ResolveRoot([]string{"src/linux-latest"}))
}
