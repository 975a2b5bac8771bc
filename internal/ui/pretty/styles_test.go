package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowiki/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for name, rendered := range map[string]string{
		"bold":    styles.Bold.Render("test"),
		"block":   styles.Block.Render("test"),
		"link":    styles.Link.Render("test"),
		"failure": styles.Failure.Render("test"),
		"hit":     styles.TableHit.Render("test"),
	} {
		assert.Equal(t, "test", rendered, name)
	}
}

func TestStyles_AllFieldsInitialized(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)

	assert.NotEmpty(t, styles.Block.Render("x"))
	assert.NotEmpty(t, styles.Inline.Render("x"))
	assert.NotEmpty(t, styles.Text.Render("x"))
	assert.NotEmpty(t, styles.Link.Render("x"))
	assert.NotEmpty(t, styles.Variable.Render("x"))
	assert.NotEmpty(t, styles.Token.Render("x"))
	assert.NotEmpty(t, styles.Branch.Render("x"))
	assert.NotEmpty(t, styles.SummaryTitle.Render("x"))
	assert.NotEmpty(t, styles.Success.Render("x"))
	assert.NotEmpty(t, styles.Failure.Render("x"))
	assert.NotEmpty(t, styles.TableHeader.Render("x"))
	assert.NotEmpty(t, styles.TableMiss.Render("x"))
	assert.NotEmpty(t, styles.Dim.Render("x"))
}

func TestIsColorEnabled(t *testing.T) {
	var buf bytes.Buffer

	assert.True(t, pretty.IsColorEnabled("always", &buf), "always mode")
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout), "never mode")
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "auto mode with non-TTY")
	assert.False(t, pretty.IsColorEnabled("", &buf), "empty mode defaults to auto")
	assert.False(t, pretty.IsColorEnabled("unknown", &buf), "unknown mode defaults to auto")
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always overrides NO_COLOR")
}
