package command

import (
	"fmt"
	"strings"

	"evalgo.org/lakeservice/internal/domain"
)

// Explain builds a numbered human-readable summary of what a validated
// request will do when executed. It is shown alongside the preview so the
// caller can review the command before confirming execution.
func Explain(req *domain.Request) string {
	var parts []string

	switch req.Command {
	case domain.CommandLogdbInit:
		parts = append(parts, "Initialize the log database schema")
		parts = append(parts, "This creates the required tables for LakeXpress sync management")

	case domain.CommandLogdbDrop:
		parts = append(parts, "Drop the log database schema")
		parts = append(parts, "WARNING: This will permanently delete all sync history and configuration")
		if req.LogdbDrop != nil && req.LogdbDrop.Confirm {
			parts = append(parts, "Confirmation flag is set — operation will proceed")
		}

	case domain.CommandLogdbTruncate:
		parts = append(parts, "Clear all data from the log database while keeping the schema")
		if req.LogdbTruncate != nil && req.LogdbTruncate.SyncID != "" {
			parts = append(parts, fmt.Sprintf("Only data for sync_id '%s' will be cleared", req.LogdbTruncate.SyncID))
		}

	case domain.CommandLogdbLocks:
		parts = append(parts, "Show currently locked tables in the log database")
		if req.LogdbLocks != nil && req.LogdbLocks.SyncID != "" {
			parts = append(parts, "Filtering by sync_id: "+req.LogdbLocks.SyncID)
		}

	case domain.CommandLogdbReleaseLocks:
		parts = append(parts, "Release stale or stuck table locks")
		if p := req.LogdbReleaseLocks; p != nil {
			if p.MaxAgeHours != nil {
				parts = append(parts, fmt.Sprintf("Only locks older than %d hours", *p.MaxAgeHours))
			}
			if p.TableID != "" {
				parts = append(parts, "For table_id: "+p.TableID)
			}
		}

	case domain.CommandConfigCreate:
		if p := req.ConfigCreate; p != nil {
			parts = append(parts, "Create a new sync configuration")
			parts = append(parts, "Source database: "+p.SourceDBAuthID)
			if p.SourceSchemaName != "" {
				parts = append(parts, "Source schema(s): "+p.SourceSchemaName)
			}
			if p.OutputDir != "" {
				parts = append(parts, "Output to local directory: "+p.OutputDir)
			} else if p.TargetStorageID != "" {
				parts = append(parts, "Output to cloud storage: "+p.TargetStorageID)
			}
			if p.PublishTarget != "" {
				parts = append(parts, "Publish to: "+p.PublishTarget)
			}
			if p.NJobs != nil && *p.NJobs > 1 {
				parts = append(parts, fmt.Sprintf("Concurrent table exports: %d", *p.NJobs))
			}
			if p.CompressionType != "" {
				parts = append(parts, "Compression: "+string(p.CompressionType))
			}
			if len(p.IncrementalTable) > 0 {
				parts = append(parts, fmt.Sprintf("Incremental tables configured: %d", len(p.IncrementalTable)))
			}
		}

	case domain.CommandConfigDelete:
		if req.ConfigDelete != nil {
			parts = append(parts, "Delete sync configuration: "+req.ConfigDelete.SyncID)
		}

	case domain.CommandConfigList:
		parts = append(parts, "List all sync configurations")
		if req.ConfigList != nil && req.ConfigList.EnvName != "" {
			parts = append(parts, "Filtered by environment: "+req.ConfigList.EnvName)
		}

	case domain.CommandSync:
		parts = append(parts, "Execute full sync (export + publish)")
		if p := req.Sync; p != nil {
			if p.SyncID != "" {
				parts = append(parts, "Sync ID: "+p.SyncID)
			}
			if p.Resume {
				parts = append(parts, "Resuming an incomplete run")
			}
		}

	case domain.CommandSyncExport:
		parts = append(parts, "Execute export phase only")
		if req.SyncExport != nil && req.SyncExport.SyncID != "" {
			parts = append(parts, "Sync ID: "+req.SyncExport.SyncID)
		}

	case domain.CommandSyncPublish:
		parts = append(parts, "Execute publish phase only")
		if p := req.SyncPublish; p != nil {
			if p.SyncID != "" {
				parts = append(parts, "Sync ID: "+p.SyncID)
			}
			if p.RunID != "" {
				parts = append(parts, "Run ID: "+p.RunID)
			}
		}

	case domain.CommandRun:
		if req.Run != nil {
			parts = append(parts, "Run export from YAML config: "+req.Run.Config)
		}

	case domain.CommandStatus:
		parts = append(parts, "Query sync/run status")
		if p := req.Status; p != nil {
			if p.SyncID != "" {
				parts = append(parts, "Sync ID: "+p.SyncID)
			}
			if p.RunID != "" {
				parts = append(parts, "Run ID: "+p.RunID)
			}
			if p.Verbose {
				parts = append(parts, "Verbose output enabled")
			}
		}

	case domain.CommandCleanup:
		if p := req.Cleanup; p != nil {
			parts = append(parts, "Clean up orphaned runs for sync_id: "+p.SyncID)
			if p.OlderThan != "" {
				parts = append(parts, "Only runs older than: "+p.OlderThan)
			}
			if p.Status != "" {
				parts = append(parts, "Only runs with status: "+string(p.Status))
			}
			if p.DryRun {
				parts = append(parts, "DRY RUN — no actual deletions")
			}
		}
	}

	lines := make([]string, len(parts))
	for i, part := range parts {
		lines[i] = fmt.Sprintf("%d. %s", i+1, part)
	}
	return strings.Join(lines, "\n")
}
