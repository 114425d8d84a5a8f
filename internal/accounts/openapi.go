package accounts

import "github.com/JaimeStill/user-auth/pkg/openapi"

// spec holds OpenAPI operation definitions for the accounts domain.
type spec struct {
	Register  *openapi.Operation
	UserLogin *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all account endpoints.
var Spec = spec{
	Register: &openapi.Operation{
		Summary:     "Register account",
		Description: "Creates an account with a bcrypt-hashed password",
		RequestBody: openapi.RequestBodyJSON("RegisterCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Account created", "Account"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
	UserLogin: &openapi.Operation{
		Summary:     "Log in",
		Description: "Verifies a username and password and returns the account",
		RequestBody: openapi.RequestBodyJSON("LoginCommand", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Credentials accepted", "Account"),
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			413: openapi.ResponseRef("TooLarge"),
		},
	},
}

// Schemas returns the account domain schemas for OpenAPI components.
func (spec) Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Account": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":         {Type: "string", Format: "uuid"},
				"username":   {Type: "string"},
				"email":      {Type: "string", Format: "email"},
				"created_at": {Type: "string", Format: "date-time"},
				"updated_at": {Type: "string", Format: "date-time"},
			},
		},
		"RegisterCommand": {
			Type:     "object",
			Required: []string{"username", "password", "password_confirm"},
			Properties: map[string]*openapi.Property{
				"username":         {Type: "string", Description: "Up to 150 letters, digits and @.+-_", Example: "alice"},
				"email":            {Type: "string", Format: "email"},
				"password":         {Type: "string", Format: "password"},
				"password_confirm": {Type: "string", Format: "password"},
			},
		},
		"LoginCommand": {
			Type:     "object",
			Required: []string{"username", "password"},
			Properties: map[string]*openapi.Property{
				"username": {Type: "string", Example: "alice"},
				"password": {Type: "string", Format: "password"},
			},
		},
	}
}
