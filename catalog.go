package formwizard

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/catalog"
)

// LoadCatalog reads a catalog from path, or returns the embedded one when path
// is empty.
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
