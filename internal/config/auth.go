package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaimeStill/user-auth/pkg/middleware"
	"github.com/JaimeStill/user-auth/pkg/openapi"
)

const (
	EnvAuthBasePath    = "AUTH_BASE_PATH"
	EnvAuthMaxBodySize = "AUTH_MAX_BODY_SIZE"
	EnvAuthBcryptCost  = "AUTH_BCRYPT_COST"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "AUTH_CORS_ENABLED",
	Origins:          "AUTH_CORS_ORIGINS",
	AllowedMethods:   "AUTH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "AUTH_CORS_ALLOWED_HEADERS",
	AllowCredentials: "AUTH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "AUTH_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "AUTH_OPENAPI_TITLE",
	Description: "AUTH_OPENAPI_DESCRIPTION",
}

// AuthConfig configures the module serving the django_user_auth routes.
type AuthConfig struct {
	// BasePath is the single-segment prefix the module is mounted under.
	// Default: "/auth"
	BasePath       string                `toml:"base_path"`
	MaxBodySize    string                `toml:"max_body_size"`
	BcryptCost     int                   `toml:"bcrypt_cost"`
	CORS           middleware.CORSConfig `toml:"cors"`
	OpenAPI        openapi.Config        `toml:"openapi"`
	maxBodySizeVal int64
}

func (c *AuthConfig) MaxBodySizeBytes() int64 {
	return c.maxBodySizeVal
}

// Finalize applies defaults, loads environment overrides, and validates the auth configuration.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge applies values from overlay configuration that differ from zero values.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if size, err := units.FromHumanSize(overlay.MaxBodySize); err == nil {
		c.MaxBodySize = overlay.MaxBodySize
		c.maxBodySizeVal = size
	}
	if overlay.BcryptCost != 0 {
		c.BcryptCost = overlay.BcryptCost
	}
	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *AuthConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/auth"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.BcryptCost == 0 {
		c.BcryptCost = bcrypt.DefaultCost
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvAuthMaxBodySize); v != "" {
		c.MaxBodySize = v
	}
	if v := os.Getenv(EnvAuthBcryptCost); v != "" {
		if cost, err := strconv.Atoi(v); err == nil {
			c.BcryptCost = cost
		}
	}
}

func (c *AuthConfig) validate() error {
	if !strings.HasPrefix(c.BasePath, "/") || strings.Count(c.BasePath, "/") != 1 || len(c.BasePath) < 2 {
		return fmt.Errorf("base_path must be a single path segment such as /auth: %q", c.BasePath)
	}

	size, err := units.FromHumanSize(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return fmt.Errorf("max_body_size must be positive")
	}
	c.maxBodySizeVal = size

	if c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	return nil
}
