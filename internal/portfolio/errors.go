package portfolio

import (
	"errors"
	"net/http"

	"github.com/HIMANSHUIPE/HSClassification/internal/classifier"
	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
)

// MapHTTPStatus maps portfolio analysis errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, classifier.ErrEmptyCompany):
		return http.StatusBadRequest
	case errors.Is(err, completion.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, classifier.ErrMalformedResponse),
		errors.Is(err, classifier.ErrEmptyPortfolio),
		errors.Is(err, classifier.ErrClassificationFailed):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
