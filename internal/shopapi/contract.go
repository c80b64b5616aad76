package shopapi

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// clientOperations lists every backend operation this client depends on.
// Keep in sync with the methods on Client.
var clientOperations = []struct {
	method string
	path   string
}{
	{"GET", "/products"},
	{"GET", "/products/featured"},
	{"GET", "/products/{slug}"},
	{"GET", "/cart"},
	{"POST", "/cart/items"},
	{"DELETE", "/cart/items/{id}"},
	{"POST", "/auth/login"},
	{"POST", "/auth/register"},
	{"GET", "/auth/me"},
}

// VerifyContract loads the backend's OpenAPI document and checks that every
// operation the client uses is still declared. It catches contract drift at
// startup instead of as runtime 404s; callers treat failures as warnings.
func VerifyContract(specPath string) error {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(specPath)
	if err != nil {
		return fmt.Errorf("failed to load backend OpenAPI document: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return fmt.Errorf("backend OpenAPI document is invalid: %w", err)
	}

	var missing []string
	for _, op := range clientOperations {
		item := doc.Paths.Find(op.path)
		if item == nil || item.GetOperation(op.method) == nil {
			missing = append(missing, op.method+" "+op.path)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("backend contract is missing operations: %s", strings.Join(missing, ", "))
	}

	return nil
}
