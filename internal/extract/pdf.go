// ABOUTME: PDF metadata extraction for the reference library
// ABOUTME: Reads size from the filesystem and page count with ledongthuc/pdf
package extract

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/ledongthuc/pdf"

	"github.com/harper/chambers/internal/models"
)

// ErrNotPDF is returned for files that do not carry the PDF header
var ErrNotPDF = errors.New("not a pdf file")

// PDFExtractor reads asset metadata from PDF files
type PDFExtractor struct{}

// NewPDFExtractor returns a PDFExtractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// Extract returns the file size in KB (two decimals) and its page count
func (e *PDFExtractor) Extract(path string) (models.AssetMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.AssetMeta{}, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return models.AssetMeta{}, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return models.AssetMeta{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !isPDF(data) {
		return models.AssetMeta{}, fmt.Errorf("%s: %w", path, ErrNotPDF)
	}

	pages, err := countPages(data)
	if err != nil {
		return models.AssetMeta{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return models.AssetMeta{
		SizeKB: SizeKB(info.Size()),
		Pages:  pages,
	}, nil
}

// SizeKB converts bytes to kilobytes rounded to two decimals
func SizeKB(size int64) float64 {
	return math.Round(float64(size)/1024*100) / 100
}

func isPDF(b []byte) bool {
	// PDF starts with "%PDF-"
	return len(b) >= 5 && string(b[:5]) == "%PDF-"
}

// countPages parses the document. The pdf package panics on some malformed
// input, so panics are reported as errors.
func countPages(data []byte) (pages int, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("pdf reader: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("pdf reader: %w", err)
	}
	return r.NumPage(), nil
}
