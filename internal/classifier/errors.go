package classifier

import "errors"

// Pipeline errors for classification operations.
var (
	ErrEmptyDescription         = errors.New("product description is required")
	ErrEmptyCompany             = errors.New("company name is required")
	ErrMalformedResponse        = errors.New("no parseable classification in model response")
	ErrIncompleteClassification = errors.New("classification missing required fields")
	ErrEmptyPortfolio           = errors.New("portfolio analysis returned no products")
	ErrClassificationFailed     = errors.New("classification request failed")
)
