package storage

import (
	"encoding/json"
	"io"
	"os"
)

// ExportJSON writes the full run, series and final points included.
func ExportJSON(w io.Writer, r *Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// ExportJSONFile writes the run to path.
func ExportJSONFile(path string, r *Run) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := ExportJSON(file, r); err != nil {
		return err
	}
	return file.Close()
}
