package ocr

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextExtractor extracts raw text from an uploaded report file
type TextExtractor interface {
	Extract(ctx context.Context, filename string, data []byte) (string, error)
}

// PlainTextExtractor reads text-bearing uploads directly. Image and scanned
// PDF extraction is delegated to an external OCR service in deployments that
// need it; this extractor covers digitally produced reports.
type PlainTextExtractor struct {
	logger *zap.Logger
}

// NewPlainTextExtractor creates a new PlainTextExtractor
func NewPlainTextExtractor(logger *zap.Logger) *PlainTextExtractor {
	return &PlainTextExtractor{
		logger: logger,
	}
}

// Extract returns the textual content of the file
func (e *PlainTextExtractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}

	if !utf8.Valid(data) {
		e.logger.Warn("upload is not valid text",
			zap.String("filename", filename),
			zap.Int("size_bytes", len(data)),
		)
		return "", fmt.Errorf("no text could be extracted from %s", filename)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from %s", filename)
	}

	e.logger.Info("text extracted from upload",
		zap.String("filename", filename),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}

// Ensure PlainTextExtractor implements TextExtractor
var _ TextExtractor = (*PlainTextExtractor)(nil)
