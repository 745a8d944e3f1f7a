package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Populations []int `json:"populations"`
}

// ExportJSON writes a run's metadata and population series as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, populations []int) error {
	data := ExportData{
		RunMetadata: *meta,
		Populations: populations,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
