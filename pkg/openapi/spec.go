package openapi

import (
	"encoding/json"
	"net/http"
	"strings"
)

// NewSpec creates an empty OpenAPI 3.1 document.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    "3.1.0",
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

func (s *Spec) SetDescription(description string) {
	s.Info.Description = description
}

// AddServer appends a server URL. Empty URLs are ignored.
func (s *Spec) AddServer(url string) {
	if url == "" {
		return
	}
	s.Servers = append(s.Servers, &Server{URL: url})
}

// AddTag registers a tag once. Later calls for the same name only fill in a
// missing description.
func (s *Spec) AddTag(name, description string) {
	if name == "" {
		return
	}
	for _, t := range s.Tags {
		if t.Name == name {
			if t.Description == "" {
				t.Description = description
			}
			return
		}
	}
	s.Tags = append(s.Tags, &Tag{Name: name, Description: description})
}

// AddOperation attaches op to path under method. Unsupported methods are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	if op == nil {
		return
	}
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch strings.ToUpper(method) {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// NewComponents creates components with the shared error responses.
func NewComponents() *Components {
	errorBody := map[string]*MediaType{
		"application/json": {Schema: SchemaRef("Error")},
	}
	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"error": {Type: "string", Description: "Error message"},
				},
				Required: []string{"error"},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   {Description: "Malformed or incomplete request", Content: errorBody},
			"Unauthorized": {Description: "Invalid credentials", Content: errorBody},
			"Conflict":     {Description: "Resource already exists", Content: errorBody},
			"TooLarge":     {Description: "Request body too large", Content: errorBody},
		},
	}
}

// AddSchemas merges schemas into the component set, replacing duplicates.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	if c.Schemas == nil {
		c.Schemas = make(map[string]*Schema)
	}
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// MarshalJSON renders the spec as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}

// ServeSpec returns a handler serving pre-rendered spec bytes.
func ServeSpec(spec []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(spec)
	}
}
