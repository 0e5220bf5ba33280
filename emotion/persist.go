package emotion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Record is the persisted form of one analysis run.
type Record struct {
	RunID       string    `json:"run_id"`
	Source      string    `json:"source"`
	GeneratedAt time.Time `json:"generated_at"`
	Summary     *Summary  `json:"summary"`
}

// WriteSummary stores a summary as indented JSON under
// <outputsRoot>/run_<timestamp>_<runID>/summary.json and returns the file
// path. The run ID keeps paths distinct when several summaries are written
// within the same second, as the prefix-scan mode does.
func WriteSummary(outputsRoot, runID, source string, s *Summary) (string, error) {
	dir := filepath.Join(outputsRoot, "run_"+time.Now().Format("20060102-150405")+"_"+runID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, "summary.json")
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Record{
		RunID:       runID,
		Source:      source,
		GeneratedAt: time.Now(),
		Summary:     s,
	}); err != nil {
		return "", err
	}
	return path, nil
}
