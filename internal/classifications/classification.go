// Package classifications implements the classification record domain.
// It provides types, data access, aggregation, CSV export, and HTTP
// handlers for storing and querying classification results produced by
// the classifier pipeline.
package classifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/HIMANSHUIPE/HSClassification/internal/hscode"
)

// Classification represents a stored classification record.
// It mirrors the classifications table schema.
type Classification struct {
	ID           uuid.UUID     `json:"id"`
	ProductName  string        `json:"product_name"`
	CustomerName *string       `json:"customer_name"`
	HSCode       string        `json:"hs_code"`
	Chapter      string        `json:"chapter"`
	Description  string        `json:"description"`
	Confidence   int           `json:"confidence"`
	IsDualUse    bool          `json:"is_dual_use"`
	Reasoning    *string       `json:"reasoning"`
	Links        *hscode.Links `json:"links"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// CreateCommand carries the data needed to store a classification record.
type CreateCommand struct {
	ProductName  string        `json:"product_name"`
	CustomerName *string       `json:"customer_name"`
	HSCode       string        `json:"hs_code"`
	Chapter      string        `json:"chapter"`
	Description  string        `json:"description"`
	Confidence   int           `json:"confidence"`
	IsDualUse    bool          `json:"is_dual_use"`
	Reasoning    *string       `json:"reasoning"`
	Links        *hscode.Links `json:"links"`
}

// UpdateCommand carries a partial field set for updating a record.
// Nil fields are left unchanged. Changing the HS code regenerates the
// stored reference links.
type UpdateCommand struct {
	ProductName  *string `json:"product_name"`
	CustomerName *string `json:"customer_name"`
	HSCode       *string `json:"hs_code"`
	Chapter      *string `json:"chapter"`
	Description  *string `json:"description"`
	Confidence   *int    `json:"confidence"`
	IsDualUse    *bool   `json:"is_dual_use"`
	Reasoning    *string `json:"reasoning"`
}

// ClassifyResult is the outcome of a classify-and-store call. Stored is
// false when classification succeeded but persistence failed after retries;
// StoreError then carries the failure message. The classification itself is
// never discarded over a store failure.
type ClassifyResult struct {
	Classification Classification `json:"classification"`
	Stored         bool           `json:"stored"`
	StoreError     string         `json:"store_error,omitempty"`
}
