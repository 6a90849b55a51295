package format

import (
	"encoding/json"
	"fmt"
	"io"
)

// Tabular is implemented by payloads that can be printed as a table.
type Tabular interface {
	TableHeaders() []string
	TableRows() [][]string
}

// Write writes v in the requested format: json (default), edn or table.
// table needs v to implement Tabular.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "table":
		t, ok := v.(Tabular)
		if !ok {
			return fmt.Errorf("%T cannot be printed as a table", v)
		}
		return WriteTable(w, t)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
