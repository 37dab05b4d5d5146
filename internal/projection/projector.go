// Package projection turns an AnalysisResult into renderable section models.
// It is pure data transformation; rendering to markup lives elsewhere.
package projection

import (
	"go.uber.org/zap"
)

// Projector builds presentation models from analysis payloads
type Projector struct {
	logger *zap.Logger
}

// NewProjector creates a projector
func NewProjector(logger *zap.Logger) *Projector {
	return &Projector{logger: logger}
}
