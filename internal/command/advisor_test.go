package command

import (
	"strings"
	"testing"

	"evalgo.org/lakeservice/internal/domain"
	"evalgo.org/lakeservice/internal/version"
)

func TestAdviseNoWarningsForSupportedRequest(t *testing.T) {
	caps := version.DefaultRegistry().Resolve(nil)
	req := &domain.Request{
		Command: domain.CommandConfigCreate,
		ConfigCreate: &domain.ConfigCreateParams{
			GlobalOptions:   domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SourceDBAuthID:  "src",
			OutputDir:       "/tmp/x",
			CompressionType: domain.CompressionZstd,
			PublishTarget:   "snowflake",
		},
	}
	if warnings := Advise(req, caps); len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
}

func TestAdviseUnsupportedCommand(t *testing.T) {
	caps := version.CapabilitySet{
		Commands: map[domain.CommandKind]bool{domain.CommandSync: true},
	}
	req := &domain.Request{
		Command: domain.CommandStatus,
		Status: &domain.StatusParams{
			GlobalOptions: domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
		},
	}
	warnings := Advise(req, caps)
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"status"`) {
		t.Errorf("warnings = %v, want one naming the status command", warnings)
	}
}

func TestAdviseUnsupportedCodecAndTarget(t *testing.T) {
	caps := version.CapabilitySet{
		Commands:            map[domain.CommandKind]bool{domain.CommandConfigCreate: true},
		CompressionTypes:    map[string]bool{"Zstd": true},
		PublishTargets:      map[string]bool{"snowflake": true},
		SupportsIncremental: true,
	}
	req := &domain.Request{
		Command: domain.CommandConfigCreate,
		ConfigCreate: &domain.ConfigCreateParams{
			GlobalOptions:   domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SourceDBAuthID:  "src",
			OutputDir:       "/tmp/x",
			CompressionType: domain.CompressionLz4,
			PublishTarget:   "bigquery",
		},
	}
	warnings := Advise(req, caps)
	if len(warnings) != 2 {
		t.Fatalf("got %d warnings, want 2: %v", len(warnings), warnings)
	}
	if !strings.Contains(warnings[0], "Lz4") {
		t.Errorf("first warning should name the codec: %q", warnings[0])
	}
	if !strings.Contains(warnings[1], "bigquery") {
		t.Errorf("second warning should name the target: %q", warnings[1])
	}
}

func TestAdviseIncrementalAndCleanupFlags(t *testing.T) {
	caps := version.CapabilitySet{
		Commands: map[domain.CommandKind]bool{
			domain.CommandConfigCreate: true,
			domain.CommandCleanup:      true,
		},
	}

	incReq := &domain.Request{
		Command: domain.CommandConfigCreate,
		ConfigCreate: &domain.ConfigCreateParams{
			GlobalOptions:    domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SourceDBAuthID:   "src",
			OutputDir:        "/tmp/x",
			IncrementalTable: []string{"dbo.orders:updated_at:datetime"},
		},
	}
	warnings := Advise(incReq, caps)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "incremental") {
		t.Errorf("warnings = %v, want one about incremental exports", warnings)
	}

	cleanupReq := &domain.Request{
		Command: domain.CommandCleanup,
		Cleanup: &domain.CleanupParams{
			GlobalOptions: domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SyncID:        "s1",
		},
	}
	warnings = Advise(cleanupReq, caps)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "cleanup") {
		t.Errorf("warnings = %v, want one about cleanup support", warnings)
	}
}

func TestAdviseNoBannerFlag(t *testing.T) {
	caps := version.CapabilitySet{
		Commands: map[domain.CommandKind]bool{domain.CommandSync: true},
	}
	req := &domain.Request{
		Command: domain.CommandSync,
		Sync: &domain.SyncParams{
			SyncID:        "s1",
			CommonOptions: domain.CommonOptions{NoBanner: true},
		},
	}
	warnings := Advise(req, caps)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "--no_banner") {
		t.Errorf("warnings = %v, want one about --no_banner", warnings)
	}
}

func TestExplainNumbersEverySentence(t *testing.T) {
	jobs := 4
	req := &domain.Request{
		Command: domain.CommandConfigCreate,
		ConfigCreate: &domain.ConfigCreateParams{
			GlobalOptions:    domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SourceDBAuthID:   "src",
			OutputDir:        "/tmp/x",
			NJobs:            &jobs,
			CompressionType:  domain.CompressionZstd,
			IncrementalTable: []string{"dbo.orders:updated_at:datetime"},
		},
	}
	got := Explain(req)
	lines := strings.Split(got, "\n")
	if len(lines) != 6 {
		t.Fatalf("got %d lines, want 6:\n%s", len(lines), got)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, string(rune('1'+i))+". ") {
			t.Errorf("line %d not numbered: %q", i, line)
		}
	}
	if !strings.Contains(got, "Source database: src") {
		t.Errorf("missing source database line:\n%s", got)
	}
	if !strings.Contains(got, "Concurrent table exports: 4") {
		t.Errorf("missing n_jobs line:\n%s", got)
	}
}

func TestExplainDropWarnsLoudly(t *testing.T) {
	req := &domain.Request{
		Command: domain.CommandLogdbDrop,
		LogdbDrop: &domain.LogdbDropParams{
			GlobalOptions: domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			Confirm:       true,
		},
	}
	got := Explain(req)
	if !strings.Contains(got, "WARNING") {
		t.Errorf("drop explanation should carry a warning:\n%s", got)
	}
	if !strings.Contains(got, "Confirmation flag is set") {
		t.Errorf("drop explanation should note the confirm flag:\n%s", got)
	}
}

func TestExplainCleanupDryRun(t *testing.T) {
	req := &domain.Request{
		Command: domain.CommandCleanup,
		Cleanup: &domain.CleanupParams{
			GlobalOptions: domain.GlobalOptions{AuthFile: "a.json", LogDBAuthID: "db"},
			SyncID:        "s1",
			OlderThan:     "7d",
			Status:        domain.CleanupFailed,
			DryRun:        true,
		},
	}
	got := Explain(req)
	for _, want := range []string{"s1", "7d", "failed", "DRY RUN"} {
		if !strings.Contains(got, want) {
			t.Errorf("explanation missing %q:\n%s", want, got)
		}
	}
}
