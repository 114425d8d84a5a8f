package main

import (
	"github.com/JaimeStill/user-auth/internal/infrastructure"
	"github.com/JaimeStill/user-auth/pkg/middleware"
)

// buildMiddleware creates the root middleware stack wrapping every module
// and probe.
func buildMiddleware(infra *infrastructure.Infrastructure) middleware.System {
	mw := middleware.New()
	mw.Use(middleware.Logger(infra.Logger))
	return mw
}
