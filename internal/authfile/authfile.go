// Package authfile validates LakeXpress credential files.
package authfile

import (
	"encoding/json"
	"fmt"
	"os"
)

// Report is the outcome of validating a credential file. Issues are
// human-readable findings; an empty list means the file is usable.
type Report struct {
	File       string   `json:"file"`
	Valid      bool     `json:"valid"`
	EntryCount int      `json:"entry_count"`
	Issues     []string `json:"issues,omitempty"`
}

// Validate checks that the file at path exists, parses as JSON and contains
// every required credential id. LakeXpress accepts two credential file
// shapes: an object keyed by credential id, or an array of entries each
// carrying an "id" field. Both are handled here.
func Validate(path string, requiredIDs []string) *Report {
	report := &Report{File: path}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			report.Issues = append(report.Issues, fmt.Sprintf("file not found: %s", path))
		} else {
			report.Issues = append(report.Issues, fmt.Sprintf("cannot stat file: %v", err))
		}
		return report
	}
	if info.IsDir() {
		report.Issues = append(report.Issues, fmt.Sprintf("path is not a file: %s", path))
		return report
	}

	data, err := os.ReadFile(path)
	if err != nil {
		report.Issues = append(report.Issues, fmt.Sprintf("cannot read file: %v", err))
		return report
	}

	var asObject map[string]json.RawMessage
	var asArray []map[string]json.RawMessage

	switch {
	case json.Unmarshal(data, &asObject) == nil:
		report.EntryCount = len(asObject)
		for _, id := range requiredIDs {
			if _, ok := asObject[id]; !ok {
				report.Issues = append(report.Issues, fmt.Sprintf("missing auth_id: %q", id))
			}
		}
	case json.Unmarshal(data, &asArray) == nil:
		report.EntryCount = len(asArray)
		found := make(map[string]bool)
		for _, entry := range asArray {
			var id string
			if raw, ok := entry["id"]; ok && json.Unmarshal(raw, &id) == nil {
				found[id] = true
			}
		}
		for _, id := range requiredIDs {
			if !found[id] {
				report.Issues = append(report.Issues, fmt.Sprintf("missing auth_id: %q", id))
			}
		}
	default:
		report.Issues = append(report.Issues, "invalid JSON: expected an object or an array of credential entries")
		return report
	}

	report.Valid = len(report.Issues) == 0
	return report
}
