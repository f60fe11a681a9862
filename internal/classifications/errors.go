package classifications

import (
	"errors"
	"net/http"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
)

// Domain errors for classification operations.
var (
	ErrNotFound    = errors.New("classification not found")
	ErrStoreFailed = errors.New("store operation failed")
)

// MapHTTPStatus maps classification domain and pipeline errors to
// appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, classifier.ErrEmptyDescription),
		errors.Is(err, classifier.ErrEmptyCompany):
		return http.StatusBadRequest
	case errors.Is(err, completion.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, classifier.ErrMalformedResponse),
		errors.Is(err, classifier.ErrIncompleteClassification),
		errors.Is(err, classifier.ErrEmptyPortfolio),
		errors.Is(err, classifier.ErrClassificationFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
