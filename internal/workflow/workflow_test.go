package workflow

import (
	"strings"
	"testing"
)

func TestSuggestWithPublishTarget(t *testing.T) {
	s := Suggest("sqlserver", "s3", "snowflake")

	if len(s.Steps) != 5 {
		t.Fatalf("got %d steps, want 5", len(s.Steps))
	}
	if s.Steps[0].Command != "logdb init" {
		t.Errorf("step 1 = %q, want logdb init", s.Steps[0].Command)
	}
	if !strings.Contains(s.Steps[1].Example, "--target_storage_id s3_storage") {
		t.Errorf("config create example missing storage id: %q", s.Steps[1].Example)
	}
	if !strings.Contains(s.Steps[1].Example, "--publish_target snowflake_target") {
		t.Errorf("config create example missing publish target: %q", s.Steps[1].Example)
	}
	if s.Steps[2].Command != "sync" {
		t.Errorf("step 3 = %q, want sync", s.Steps[2].Command)
	}
	if s.Steps[3].Step != "3a" || !strings.Contains(s.Steps[3].Command, "sync[export]") {
		t.Errorf("alternative step missing: %+v", s.Steps[3])
	}
	if s.Steps[4].Command != "status" {
		t.Errorf("final step = %q, want status", s.Steps[4].Command)
	}
}

func TestSuggestExportOnly(t *testing.T) {
	s := Suggest("postgresql", "local", "")

	if len(s.Steps) != 4 {
		t.Fatalf("got %d steps, want 4", len(s.Steps))
	}
	if !strings.Contains(s.Steps[1].Example, "--output_dir ./exports") {
		t.Errorf("local destination should use output_dir: %q", s.Steps[1].Example)
	}
	if s.Steps[2].Command != "sync[export]" {
		t.Errorf("step 3 = %q, want sync[export]", s.Steps[2].Command)
	}
	for _, step := range s.Steps {
		if strings.Contains(step.Example, "publish_target") {
			t.Errorf("no publish target expected in step %s: %q", step.Step, step.Example)
		}
	}
}
