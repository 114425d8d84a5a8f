package main

import (
	"net/http"

	"github.com/JaimeStill/user-auth/internal/api"
	"github.com/JaimeStill/user-auth/internal/config"
	"github.com/JaimeStill/user-auth/internal/infrastructure"
	"github.com/JaimeStill/user-auth/pkg/lifecycle"
	"github.com/JaimeStill/user-auth/pkg/module"
)

type Modules struct {
	Auth *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	authModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		Auth: authModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.Auth)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", handleHealthCheck)

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		handleReadinessCheck(w, infra.Lifecycle)
	})

	return router
}

func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func handleReadinessCheck(w http.ResponseWriter, ready lifecycle.ReadinessChecker) {
	if !ready.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("NOT READY"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("READY"))
}
