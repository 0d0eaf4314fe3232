package output

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrinter(jsonMode bool) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Printer{json: jsonMode, stdout: &stdout, stderr: &stderr}, &stdout, &stderr
}

func TestResultJSONMode(t *testing.T) {
	p, stdout, stderr := newTestPrinter(true)

	err := p.Result(map[string]string{"title": "Example", "url": "https://example.com"}, "Example")
	require.NoError(t, err)

	assert.JSONEq(t, `{"title":"Example","url":"https://example.com"}`, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestResultHumanMode(t *testing.T) {
	p, stdout, _ := newTestPrinter(false)

	err := p.Result(map[string]string{"title": "Example"}, "Example")
	require.NoError(t, err)

	assert.Equal(t, "Example\n", stdout.String())
}

func TestResultHumanModeEmpty(t *testing.T) {
	p, stdout, _ := newTestPrinter(false)

	err := p.Result(map[string]string{"title": "Example"}, "")
	require.NoError(t, err)

	assert.Empty(t, stdout.String())
}

func TestPlain(t *testing.T) {
	p, stdout, _ := newTestPrinter(true)
	p.Plain("raw text")
	assert.Equal(t, "raw text\n", stdout.String())
}

func TestHumanHelpersSilentInJSONMode(t *testing.T) {
	p, stdout, _ := newTestPrinter(true)

	p.Title("Heading")
	p.Field("URL", "https://example.com")
	p.Success("done")
	p.Note("aside")

	assert.Empty(t, stdout.String())
}

func TestHumanHelpers(t *testing.T) {
	p, stdout, _ := newTestPrinter(false)

	p.Title("Heading")
	p.Field("URL", "https://example.com")
	p.Success("done")
	p.Note("aside")

	out := stdout.String()
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "URL:")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "aside")
}

func TestErrorJSONMode(t *testing.T) {
	p, stdout, stderr := newTestPrinter(true)

	p.Error(errors.New("navigation failed"))

	assert.JSONEq(t, `{"error":"navigation failed"}`, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestErrorHumanMode(t *testing.T) {
	p, stdout, stderr := newTestPrinter(false)

	p.Error(errors.New("navigation failed"))

	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Error:")
	assert.Contains(t, stderr.String(), "navigation failed")
}

func TestErrorsJSONMode(t *testing.T) {
	p, stdout, _ := newTestPrinter(true)

	p.Errors([]string{"first", "second"})

	assert.JSONEq(t, `{"errors":["first","second"]}`, stdout.String())
}

func TestErrorsHumanMode(t *testing.T) {
	p, _, stderr := newTestPrinter(false)

	p.Errors([]string{"first", "second"})

	lines := strings.Split(strings.TrimRight(stderr.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "first")
	assert.Contains(t, lines[1], "second")
}
