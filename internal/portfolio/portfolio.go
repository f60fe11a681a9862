// Package portfolio implements company portfolio analysis over the
// classifier pipeline. Analysis results are returned to the caller and
// never persisted.
package portfolio

import (
	"context"
	"log/slog"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
)

// System defines the public contract for portfolio analysis.
type System interface {
	Handler() *Handler
	Analyze(ctx context.Context, company string) (*classifier.Portfolio, error)
}

type system struct {
	engine *classifier.Engine
	logger *slog.Logger
}

// New creates a portfolio system over the classifier engine.
func New(engine *classifier.Engine, logger *slog.Logger) System {
	return &system{
		engine: engine,
		logger: logger.With("system", "portfolio"),
	}
}

func (s *system) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *system) Analyze(ctx context.Context, company string) (*classifier.Portfolio, error) {
	return s.engine.AnalyzePortfolio(ctx, company)
}
