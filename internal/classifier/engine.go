// Package classifier implements the classification pipeline: prompt
// composition, completion invocation, structured output extraction,
// validation, and reference link derivation. The pipeline is purely
// functional given its input; it performs no retry and no persistence.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
	"github.com/HIMANSHUIPE/HSClassification/internal/hscode"
	"github.com/HIMANSHUIPE/HSClassification/internal/prompts"
	"github.com/HIMANSHUIPE/HSClassification/pkg/formatting"
)

// Sampling temperatures per stage. Classification leans deterministic;
// portfolio analysis allows slightly more variation across inferred products.
const (
	classifyTemperature  = 0.1
	portfolioTemperature = 0.2
)

// Engine executes the classification pipeline against a completion client,
// composing stage prompts from the prompt system.
type Engine struct {
	client  completion.Client
	prompts prompts.System
	logger  *slog.Logger
}

// New creates an Engine over the given completion client and prompt system.
func New(client completion.Client, ps prompts.System, logger *slog.Logger) *Engine {
	return &Engine{
		client:  client,
		prompts: ps,
		logger:  logger.With("system", "classifier"),
	}
}

// Classify turns a product description into a validated classification
// candidate. The description must be non-empty after trimming. Transport
// failures surface as ErrClassificationFailed; responses without a parseable
// JSON object surface as ErrMalformedResponse; parsed responses missing the
// HS code, chapter, or description surface as ErrIncompleteClassification.
func (e *Engine) Classify(ctx context.Context, req ClassifyRequest) (*Candidate, error) {
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	system, err := e.composePrompt(ctx, prompts.StageClassify)
	if err != nil {
		return nil, err
	}

	content, err := e.client.Complete(ctx, completion.Request{
		System:      system,
		User:        classifyUserPrompt(description, req.CustomerName),
		Temperature: classifyTemperature,
	})
	if err != nil {
		if errors.Is(err, completion.ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrClassificationFailed, err)
	}

	payload, err := formatting.Parse[classificationPayload](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if payload.HSCode == "" || payload.Chapter == "" || payload.Description == "" {
		return nil, ErrIncompleteClassification
	}

	candidate := &Candidate{
		ProductName:  description,
		CustomerName: req.CustomerName,
		HSCode:       payload.HSCode,
		Chapter:      payload.Chapter,
		Description:  payload.Description,
		Confidence:   payload.Confidence,
		IsDualUse:    payload.IsDualUse,
		Links:        hscode.ReferenceLinks(payload.HSCode),
	}
	if payload.Reasoning != "" {
		candidate.Reasoning = &payload.Reasoning
	}

	e.logger.Info("product classified",
		"hs_code", candidate.HSCode,
		"confidence", candidate.Confidence,
		"dual_use", candidate.IsDualUse,
	)
	return candidate, nil
}

// AnalyzePortfolio infers a company's likely product portfolio from its name
// alone. The extraction and failure contract matches Classify, except a
// parsed response with no products surfaces as ErrEmptyPortfolio.
func (e *Engine) AnalyzePortfolio(ctx context.Context, company string) (*Portfolio, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return nil, ErrEmptyCompany
	}

	system, err := e.composePrompt(ctx, prompts.StagePortfolio)
	if err != nil {
		return nil, err
	}

	content, err := e.client.Complete(ctx, completion.Request{
		System:      system,
		User:        portfolioUserPrompt(company),
		Temperature: portfolioTemperature,
	})
	if err != nil {
		if errors.Is(err, completion.ErrNotConfigured) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrClassificationFailed, err)
	}

	payload, err := formatting.Parse[portfolioPayload](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	if len(payload.Products) == 0 {
		return nil, ErrEmptyPortfolio
	}

	products := make([]Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, Product{
			ProductName: p.ProductName,
			Category:    p.Category,
			HSCode:      p.HSCode,
			Chapter:     p.Chapter,
			Description: p.Description,
			Confidence:  p.Confidence,
			IsDualUse:   p.IsDualUse,
			Reasoning:   p.Reasoning,
			Links:       hscode.ReferenceLinks(p.HSCode),
		})
	}

	result := &Portfolio{
		Company:   company,
		Industry:  payload.Industry,
		RiskLevel: RiskLevel(payload.RiskLevel),
		Products:  products,
	}

	e.logger.Info("portfolio analyzed",
		"company", company,
		"products", len(products),
		"risk_level", result.RiskLevel,
	)
	return result, nil
}

// composePrompt builds the system prompt for a stage by combining its
// tunable instructions with its immutable output specification.
func (e *Engine) composePrompt(ctx context.Context, stage prompts.Stage) (string, error) {
	instructions, err := e.prompts.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := e.prompts.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	return instructions + "\n\n" + spec, nil
}

func classifyUserPrompt(description string, customer *string) string {
	var sb strings.Builder
	sb.WriteString("Classify the following product:\n\n")
	sb.WriteString(description)

	if customer != nil && *customer != "" {
		sb.WriteString("\n\nCustomer: ")
		sb.WriteString(*customer)
	}

	return sb.String()
}

func portfolioUserPrompt(company string) string {
	return "Analyze the product portfolio of the following company:\n\n" + company
}
