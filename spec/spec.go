// Package spec embeds the OpenAPI document of the business site builder API.
// It is imported by the HTTP server to serve the document at /openapi.yaml.
package spec

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// OpenAPI contains the raw bytes of openapi.yaml, embedded at compile time.
// Serving it from the binary means the document and the running code are always in sync.
//
//go:embed openapi.yaml
var OpenAPI []byte

// Load parses and validates the embedded document. main calls it at startup
// so a broken document fails the deploy instead of confusing API clients.
func Load(ctx context.Context) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(OpenAPI)
	if err != nil {
		return nil, fmt.Errorf("spec.Load: parse: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("spec.Load: validate: %w", err)
	}
	return doc, nil
}
