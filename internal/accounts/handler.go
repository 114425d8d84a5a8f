package accounts

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/user-auth/pkg/handlers"
	"github.com/JaimeStill/user-auth/pkg/routes"
)

// Namespace qualifies the route names of this package.
const Namespace = "django_user_auth"

// Route names within Namespace.
const (
	RouteRegister  = "register"
	RouteUserLogin = "user_login"
)

type Handler struct {
	sys         System
	logger      *slog.Logger
	maxBodySize int64
}

// NewHandler creates the HTTP handlers for sys. Request bodies larger than
// maxBodySize bytes are rejected.
func NewHandler(sys System, logger *slog.Logger, maxBodySize int64) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("system", "accounts.handler"),
		maxBodySize: maxBodySize,
	}
}

// Routes returns the django_user_auth route table.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Namespace:   Namespace,
		Tags:        []string{"Accounts"},
		Description: "Account registration and login",
		Routes: []routes.Route{
			{
				Method:  http.MethodPost,
				Pattern: "/register/",
				Name:    RouteRegister,
				Handler: h.Register,
				OpenAPI: Spec.Register,
			},
			{
				Method:  http.MethodPost,
				Pattern: "/user_login/",
				Name:    RouteUserLogin,
				Handler: h.UserLogin,
				OpenAPI: Spec.UserLogin,
			},
		},
	}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var cmd RegisterCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, handlers.StatusForDecode(err), err)
		return
	}

	result, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) UserLogin(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := handlers.DecodeJSON(w, r, h.maxBodySize, &cmd); err != nil {
		handlers.RespondError(w, h.logger, handlers.StatusForDecode(err), err)
		return
	}

	result, err := h.sys.Authenticate(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
