package pdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	lpdf "github.com/ledongthuc/pdf"
)

// Compressor shrinks PDF files with a ghostscript pdfwrite pass. The original
// file is removed only after the compressed output has been verified, so a
// submission never ends up pointing at a deleted file.
type Compressor struct {
	gsBin  string
	logger *slog.Logger
}

func NewCompressor(logger *slog.Logger) *Compressor {
	return &Compressor{
		gsBin:  "gs",
		logger: logger.With("module", "pdf"),
	}
}

// Compress writes a compressed copy next to the input as
// <name>-compressed.pdf, deletes the original, and returns the new path.
// On any failure the original file is left untouched and an error is
// returned; callers are expected to keep using the original.
func (c *Compressor) Compress(ctx context.Context, inputPath string) (string, error) {
	ext := filepath.Ext(inputPath)
	outputPath := strings.TrimSuffix(inputPath, ext) + "-compressed" + ext

	cmd := exec.CommandContext(ctx, c.gsBin,
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/ebook",
		"-dNOPAUSE", "-dQUIET", "-dBATCH",
		"-sOutputFile="+outputPath,
		inputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("ghostscript failed: %w: %s", err, strings.TrimSpace(string(out)))
	}

	if err := Verify(outputPath); err != nil {
		os.Remove(outputPath)
		return "", fmt.Errorf("compressed output is not a readable pdf: %w", err)
	}

	if err := os.Remove(inputPath); err != nil {
		// compression itself succeeded; the orphaned original is only a
		// disk-space concern
		c.logger.Warn("failed to remove original pdf after compression",
			"path", inputPath, "error", err)
	}

	return outputPath, nil
}

// Verify checks that the file at path parses as a PDF with at least one page.
func Verify(path string) error {
	f, r, err := lpdf.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if r.NumPage() < 1 {
		return errors.New("pdf has no pages")
	}
	return nil
}
