package api

import (
	"net/http"

	"github.com/HIMANSHUIPE/HSClassification/pkg/routes"
)

func registerRoutes(mux *http.ServeMux, domain *Domain) {
	routes.Register(
		mux,
		domain.Classifications.Handler().Routes(),
		domain.Portfolio.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
	)
}
