package report

import (
	"encoding/json"
	"fmt"
)

// WriteJSON serializes v with indentation and writes it atomically to path.
// The audit runner calls this exactly once, at the end of a successful run;
// there is no incremental persistence.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshal results: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}
