package pdf_test

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/shiplogix/backend/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixturePdf produces a single blank-page pdf with ghostscript.
func writeFixturePdf(t *testing.T, path string) {
	t.Helper()
	out, err := exec.Command("gs",
		"-o", path, "-sDEVICE=pdfwrite", "-dQUIET", "-c", "showpage").CombinedOutput()
	require.NoError(t, err, "fixture generation failed: %s", out)
}

func requireGhostscript(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("gs"); err != nil {
		t.Skip("ghostscript not installed")
	}
}

func TestCompressReplacesOriginal(t *testing.T) {
	requireGhostscript(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "resume.pdf")
	writeFixturePdf(t, input)

	c := pdf.NewCompressor(slog.Default())
	output, err := c.Compress(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "resume-compressed.pdf"), output)
	assert.NoFileExists(t, input, "original should be deleted after a verified compression")
	require.FileExists(t, output)
	assert.NoError(t, pdf.Verify(output))
}

func TestCompressMissingInput(t *testing.T) {
	requireGhostscript(t)

	c := pdf.NewCompressor(slog.Default())
	_, err := c.Compress(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"))
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))
	assert.Error(t, pdf.Verify(path))
}
