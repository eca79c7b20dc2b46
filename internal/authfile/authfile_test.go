package authfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestValidateObjectShape(t *testing.T) {
	path := writeFile(t, "auth.json", `{
		"export_db": {"type": "postgresql", "host": "db.internal"},
		"source_db": {"type": "sqlserver", "host": "mssql.internal"}
	}`)

	report := Validate(path, []string{"export_db", "source_db"})
	if !report.Valid {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
	if report.EntryCount != 2 {
		t.Errorf("entry count = %d, want 2", report.EntryCount)
	}
}

func TestValidateArrayShape(t *testing.T) {
	path := writeFile(t, "auth.json", `[
		{"id": "export_db", "type": "postgresql"},
		{"id": "source_db", "type": "sqlserver"},
		{"note": "entry without id is ignored"}
	]`)

	report := Validate(path, []string{"export_db"})
	if !report.Valid {
		t.Fatalf("unexpected issues: %v", report.Issues)
	}
	if report.EntryCount != 3 {
		t.Errorf("entry count = %d, want 3", report.EntryCount)
	}
}

func TestValidateMissingIDs(t *testing.T) {
	path := writeFile(t, "auth.json", `{"export_db": {}}`)

	report := Validate(path, []string{"export_db", "s3_storage"})
	if report.Valid {
		t.Fatal("expected validation to fail")
	}
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "s3_storage") {
		t.Errorf("issues = %v, want one naming s3_storage", report.Issues)
	}
}

func TestValidateBadJSON(t *testing.T) {
	path := writeFile(t, "auth.json", `{not json`)

	report := Validate(path, nil)
	if report.Valid {
		t.Fatal("expected validation to fail")
	}
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "invalid JSON") {
		t.Errorf("issues = %v, want invalid JSON", report.Issues)
	}
}

func TestValidateMissingFile(t *testing.T) {
	report := Validate(filepath.Join(t.TempDir(), "nope.json"), nil)
	if report.Valid {
		t.Fatal("expected validation to fail")
	}
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "not found") {
		t.Errorf("issues = %v, want file not found", report.Issues)
	}
}

func TestValidateDirectory(t *testing.T) {
	report := Validate(t.TempDir(), nil)
	if report.Valid {
		t.Fatal("expected validation to fail")
	}
	if len(report.Issues) != 1 || !strings.Contains(report.Issues[0], "not a file") {
		t.Errorf("issues = %v, want not-a-file", report.Issues)
	}
}
