package tabular

import (
	"fmt"
	"strings"
)

// SchemaError reports that a file's headers cannot satisfy the schema's
// required fields. It lists the raw headers so the caller can see what the
// file actually provided. A schema error aborts the whole ingestion.
type SchemaError struct {
	Missing string
	Headers []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required column: %s. Available columns: %s",
		e.Missing, strings.Join(e.Headers, ", "))
}
