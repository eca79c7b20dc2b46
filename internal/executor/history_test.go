package executor

import (
	"testing"
	"time"
)

func TestHistoryRecordAndGet(t *testing.T) {
	h, err := NewHistory(t.TempDir())
	if err != nil {
		t.Fatalf("NewHistory failed: %v", err)
	}

	result := &Result{ExitCode: 0, Stdout: "ok", Duration: 2 * time.Second}
	run, err := h.Record([]string{"/usr/bin/lakexpress", "config", "list"}, result, "admin", time.Now())
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if run.ID == "" {
		t.Error("run id not assigned")
	}
	if !run.Success {
		t.Error("run should be marked successful")
	}

	got, err := h.Get(run.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ExecutedBy != "admin" {
		t.Errorf("executed_by = %q, want admin", got.ExecutedBy)
	}
	if len(got.Command) != 3 || got.Command[1] != "config" {
		t.Errorf("command not persisted: %v", got.Command)
	}
}

func TestHistoryGetUnknown(t *testing.T) {
	h, err := NewHistory(t.TempDir())
	if err != nil {
		t.Fatalf("NewHistory failed: %v", err)
	}
	if _, err := h.Get("no-such-id"); err == nil {
		t.Fatal("expected error for unknown run id")
	}
}

func TestHistoryListNewestFirst(t *testing.T) {
	h, err := NewHistory(t.TempDir())
	if err != nil {
		t.Fatalf("NewHistory failed: %v", err)
	}

	for i, code := range []int{0, 1, 0} {
		result := &Result{ExitCode: code, Duration: time.Duration(i) * time.Second}
		if _, err := h.Record([]string{"lakexpress", "status"}, result, "", time.Now()); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	runs, err := h.List(2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Newest first: the last recorded run (exit 0) comes before the failed one.
	if runs[0].ExitCode != 0 || runs[1].ExitCode != 1 {
		t.Errorf("unexpected order: %v %v", runs[0].ExitCode, runs[1].ExitCode)
	}

	all, err := h.List(0)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d runs, want 3", len(all))
	}

	n, err := h.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}

func TestHistorySurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	h, err := NewHistory(dir)
	if err != nil {
		t.Fatalf("NewHistory failed: %v", err)
	}
	if _, err := h.Record([]string{"lakexpress", "status"}, &Result{}, "", time.Now()); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	reopened, err := NewHistory(dir)
	if err != nil {
		t.Fatalf("NewHistory failed: %v", err)
	}
	n, err := reopened.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count after reopen = %d, want 1", n)
	}
}
