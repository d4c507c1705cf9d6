package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportJSON writes the report as indented JSON, creating the target
// folder if needed. Undefined cohort cells serialize as null.
func ExportJSON(filename string, r Report) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// TimestampedFilename builds reports/<name>_<ts>.json style paths.
func TimestampedFilename(baseDir, name string) string {
	ts := time.Now().Format("20060102_150405")
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.json", name, ts))
}
