package classifier

import "github.com/HIMANSHUIPE/HSClassification/internal/hscode"

// ClassifyRequest carries the input for a single-product classification.
type ClassifyRequest struct {
	Description  string  `json:"description"`
	CustomerName *string `json:"customer_name,omitempty"`
}

// Candidate is a validated classification produced by the pipeline,
// ready for persistence.
type Candidate struct {
	ProductName  string       `json:"product_name"`
	CustomerName *string      `json:"customer_name,omitempty"`
	HSCode       string       `json:"hs_code"`
	Chapter      string       `json:"chapter"`
	Description  string       `json:"description"`
	Confidence   int          `json:"confidence"`
	IsDualUse    bool         `json:"is_dual_use"`
	Reasoning    *string      `json:"reasoning,omitempty"`
	Links        hscode.Links `json:"links"`
}

// RiskLevel is the coarse export-control risk classification for a portfolio.
type RiskLevel string

// Portfolio risk levels.
const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Product is one inferred product in a company portfolio analysis.
type Product struct {
	ProductName string       `json:"product_name"`
	Category    string       `json:"category"`
	HSCode      string       `json:"hs_code"`
	Chapter     string       `json:"chapter"`
	Description string       `json:"description"`
	Confidence  int          `json:"confidence"`
	IsDualUse   bool         `json:"is_dual_use"`
	Reasoning   string       `json:"reasoning"`
	Links       hscode.Links `json:"links"`
}

// Portfolio is the result of a company portfolio analysis.
type Portfolio struct {
	Company   string    `json:"company"`
	Industry  string    `json:"industry"`
	RiskLevel RiskLevel `json:"risk_level"`
	Products  []Product `json:"products"`
}

// classificationPayload mirrors the JSON shape the classify output spec
// mandates from the model.
type classificationPayload struct {
	HSCode      string `json:"hsCode"`
	Chapter     string `json:"chapter"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
	IsDualUse   bool   `json:"isDualUse"`
	Reasoning   string `json:"reasoning"`
}

// portfolioPayload mirrors the JSON shape the portfolio output spec
// mandates from the model.
type portfolioPayload struct {
	Products  []portfolioProductPayload `json:"products"`
	Industry  string                    `json:"industry"`
	RiskLevel string                    `json:"riskLevel"`
}

type portfolioProductPayload struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	HSCode      string `json:"hsCode"`
	Chapter     string `json:"chapter"`
	Description string `json:"description"`
	Confidence  int    `json:"confidence"`
	IsDualUse   bool   `json:"isDualUse"`
	Reasoning   string `json:"reasoning"`
}
