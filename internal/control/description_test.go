package control

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kernelmeta/gencontrol/internal/defines"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

func TestParseDescription(t *testing.T) {
	d := ParseDescription("Linux for 64-bit PCs (meta-package), signed\n This package depends on the latest image.\n .\n Second paragraph.")

	assert.Equal(t, []string{"Linux for 64-bit PCs (meta-package)", "signed"}, d.Short)
	require.Len(t, d.Long, 2)
	assert.Equal(t, "This package depends on the latest image.", strings.TrimSpace(d.Long[0]))
	assert.Equal(t, "Second paragraph.", strings.TrimSpace(d.Long[1]))
}

func TestDescription_String(t *testing.T) {
	d := &Description{}
	d.AppendShort("Linux for ARMv8 machines")
	assert.Equal(t, "Linux for ARMv8 machines", d.String(), "no long text renders summary only")

	d.Append("First paragraph.")
	d.Append("Second paragraph.")
	assert.Equal(t, "Linux for ARMv8 machines\n First paragraph.\n .\n Second paragraph.", d.String())
}

func TestDescription_StringWraps(t *testing.T) {
	d := &Description{Short: []string{"summary"}}
	d.Append(strings.Repeat("word ", 40))

	lines := strings.Split(d.String(), "\n")
	require.Greater(t, len(lines), 2)
	for _, line := range lines[1:] {
		assert.True(t, strings.HasPrefix(line, " "), "continuation line %q must be indented", line)
		assert.LessOrEqual(t, len(line), descriptionWidth+1)
	}
}

func TestDescription_AppendShortSkipsEmpty(t *testing.T) {
	d := &Description{}
	d.AppendShort("")
	d.AppendShort(" a , ,b")
	assert.Equal(t, []string{"a", "b"}, d.Short)
}

func TestComposeDescription_DedupesAndSorts(t *testing.T) {
	section := defines.Values{
		"part-long-alpha":  "Alpha long.",
		"part-short-alpha": "alpha short",
		"part-long-beta":   "Beta long.",
	}

	d, err := ComposeDescription([]string{"beta", "alpha", "alpha"}, section)
	require.NoError(t, err)

	assert.Equal(t, []string{"Alpha long.", "Beta long."}, d.Long)
	assert.Equal(t, []string{"alpha short"}, d.Short, "missing short part defaults to empty and is skipped")
}

func TestComposeDescription_Deterministic(t *testing.T) {
	section := defines.Values{"part-long-a": "A.", "part-long-b": "B.", "part-long-c": "C."}

	first, err := ComposeDescription([]string{"c", "a", "b"}, section)
	require.NoError(t, err)
	second, err := ComposeDescription([]string{"b", "c", "a", "c"}, section)
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestComposeDescription_NoParts(t *testing.T) {
	d, err := ComposeDescription(nil, defines.Values{})
	require.NoError(t, err)
	assert.True(t, d.IsEmpty())
}

func TestComposeDescription_MissingLongPart(t *testing.T) {
	_, err := ComposeDescription([]string{"pc"}, defines.Values{"part-short-pc": "x"})
	assert.True(t, errors.Is(err, gerrors.ErrMissingKey))
}

func TestDescription_Extend(t *testing.T) {
	d := ParseDescription("Linux image\n Base text.")
	d.Extend(&Description{Short: []string{"PC"}, Long: []string{"Extra."}})
	d.Extend(nil)

	assert.Equal(t, []string{"Linux image", "PC"}, d.Short)
	assert.Len(t, d.Long, 2)
}
