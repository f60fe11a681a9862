package api

import (
	"github.com/HIMANSHUIPE/HSClassification/internal/classifications"
	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/internal/portfolio"
	"github.com/HIMANSHUIPE/HSClassification/internal/prompts"
	"github.com/HIMANSHUIPE/HSClassification/pkg/retry"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Classifications classifications.System
	Portfolio       portfolio.System
	Prompts         prompts.System
}

// NewDomain creates all domain systems from the API runtime. The classifier
// engine is shared between the classification and portfolio systems.
func NewDomain(runtime *Runtime) *Domain {
	promptsSystem := prompts.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	engine := classifier.New(
		runtime.Completion,
		promptsSystem,
		runtime.Logger,
	)

	classificationsSystem := classifications.New(
		runtime.Database.Connection(),
		engine,
		runtime.Logger,
		runtime.Pagination,
		retry.DefaultPolicy(),
	)

	portfolioSystem := portfolio.New(engine, runtime.Logger)

	return &Domain{
		Classifications: classificationsSystem,
		Portfolio:       portfolioSystem,
		Prompts:         promptsSystem,
	}
}
