package swagger

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateSpec loads and validates the OpenAPI document the gateway serves.
// A broken spec fails startup rather than confusing API consumers later.
func ValidateSpec(path string) error {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load openapi spec %s: %w", path, err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("validate openapi spec %s: %w", path, err)
	}

	return nil
}
