package catalog

import "errors"

// ErrInvalidCatalog wraps every structural problem reported by Validate.
var ErrInvalidCatalog = errors.New("catalog: invalid")

// ErrUnknownOption is returned by CheckValue for a choice outside a select
// field's options.
var ErrUnknownOption = errors.New("catalog: unknown option")
