package dataprocessing

import (
	"io"
	"log/slog"
)

// GradebookProcessor applies the gradebook transformation stages to a table.
// Each stage mutates the table in place.
type GradebookProcessor struct {
	logger  *slog.Logger
	options ProcessingOptions
}

// NewGradebookProcessor creates a processor. A nil logger discards output.
func NewGradebookProcessor(logger *slog.Logger, options ProcessingOptions) *GradebookProcessor {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if options.DenominatorPolicy == "" {
		options.DenominatorPolicy = DenominatorLastWins
	}
	return &GradebookProcessor{
		logger:  logger,
		options: options,
	}
}

