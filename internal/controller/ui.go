// Package controller provides output adapters for reporting a mutate run's
// results: how many mutations were possible, which were selected, and what
// the selector and replacer warned about along the way.
package controller

import (
	"context"

	"github.com/rowmut/rowmut/internal/model"
	"github.com/rowmut/rowmut/internal/warnings"
)

// Reporter defines the interface for reporting a mutate run's progress and
// results. Implementations can use different output methods (simple text,
// TUI, etc).
type Reporter interface {
	Start(ctx context.Context) error
	Close(ctx context.Context)
	DisplaySelection(ctx context.Context, possibleCount int, selected []model.SelectedMutation) error
	DisplayWarnings(ctx context.Context, warn *warnings.Aggregator)
	DisplayResult(ctx context.Context, outputPath string, bytesWritten int)
}
