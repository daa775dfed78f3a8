package export

import (
	"encoding/json"
	"os"
)

// WriteReport writes the run report as JSON, usually next to the exported
// bundles.
func WriteReport(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
