package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/HIMANSHUIPE/HSClassification/internal/api"
	"github.com/HIMANSHUIPE/HSClassification/internal/config"
	"github.com/HIMANSHUIPE/HSClassification/internal/infrastructure"
	"github.com/HIMANSHUIPE/HSClassification/pkg/middleware"
	"github.com/HIMANSHUIPE/HSClassification/pkg/module"
	"github.com/HIMANSHUIPE/HSClassification/pkg/openapi"
	"github.com/HIMANSHUIPE/HSClassification/web/scalar"
)

type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	scalarModule := scalar.NewModule("/scalar", "/openapi.json")
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) (*module.Router, error) {
	specBytes, err := openapi.MarshalJSON(api.Spec(cfg))
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}

	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	router.HandleNative("GET /openapi.json", openapi.ServeSpec(specBytes))

	return router, nil
}
