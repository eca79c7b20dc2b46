package command

import (
	"fmt"

	"evalgo.org/lakeservice/internal/domain"
	"evalgo.org/lakeservice/internal/version"
)

// Advise compares a validated request against the resolved capability set and
// returns one advisory message per mismatch. Advisories never block building
// or execution; they flag parameters the detected (or assumed) LakeXpress
// build may reject.
func Advise(req *domain.Request, caps version.CapabilitySet) []string {
	var warnings []string

	if len(caps.Commands) > 0 && !caps.Commands[req.Command] {
		warnings = append(warnings, fmt.Sprintf("command %q is not supported by the detected LakeXpress version", req.Command))
	}

	switch req.Command {
	case domain.CommandConfigCreate:
		if p := req.ConfigCreate; p != nil {
			if p.CompressionType != "" && len(caps.CompressionTypes) > 0 && !caps.CompressionTypes[string(p.CompressionType)] {
				warnings = append(warnings, fmt.Sprintf("compression type %q is not supported by the detected LakeXpress version", p.CompressionType))
			}
			if p.PublishTarget != "" && len(caps.PublishTargets) > 0 && !caps.PublishTargets[p.PublishTarget] {
				warnings = append(warnings, fmt.Sprintf("publish target %q is not supported by the detected LakeXpress version", p.PublishTarget))
			}
			if len(p.IncrementalTable) > 0 && !caps.SupportsIncremental {
				warnings = append(warnings, "incremental table exports are not supported by the detected LakeXpress version")
			}
		}
	case domain.CommandCleanup:
		if !caps.SupportsCleanup {
			warnings = append(warnings, "the cleanup command is not supported by the detected LakeXpress version")
		}
	}

	if !caps.SupportsNoBanner && usesNoBanner(req) {
		warnings = append(warnings, "the --no_banner flag is not supported by the detected LakeXpress version")
	}

	return warnings
}

func usesNoBanner(req *domain.Request) bool {
	switch req.Command {
	case domain.CommandLogdbInit:
		return req.LogdbInit != nil && req.LogdbInit.NoBanner
	case domain.CommandLogdbDrop:
		return req.LogdbDrop != nil && req.LogdbDrop.NoBanner
	case domain.CommandLogdbTruncate:
		return req.LogdbTruncate != nil && req.LogdbTruncate.NoBanner
	case domain.CommandLogdbLocks:
		return req.LogdbLocks != nil && req.LogdbLocks.NoBanner
	case domain.CommandLogdbReleaseLocks:
		return req.LogdbReleaseLocks != nil && req.LogdbReleaseLocks.NoBanner
	case domain.CommandConfigCreate:
		return req.ConfigCreate != nil && req.ConfigCreate.NoBanner
	case domain.CommandConfigDelete:
		return req.ConfigDelete != nil && req.ConfigDelete.NoBanner
	case domain.CommandConfigList:
		return req.ConfigList != nil && req.ConfigList.NoBanner
	case domain.CommandSync:
		return req.Sync != nil && req.Sync.NoBanner
	case domain.CommandSyncExport:
		return req.SyncExport != nil && req.SyncExport.NoBanner
	case domain.CommandSyncPublish:
		return req.SyncPublish != nil && req.SyncPublish.NoBanner
	case domain.CommandRun:
		return req.Run != nil && req.Run.NoBanner
	case domain.CommandStatus:
		return req.Status != nil && req.Status.NoBanner
	case domain.CommandCleanup:
		return req.Cleanup != nil && req.Cleanup.NoBanner
	}
	return false
}
