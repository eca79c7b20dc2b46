package domain

import "fmt"

// validLogLevels, validCompressionTypes etc. are the closed sets accepted by
// the LakeXpress CLI. The externally visible string forms are checked here so
// a bad value is rejected before a command is ever built.
var (
	validLogLevels = map[LogLevel]bool{
		LogLevelDebug:   true,
		LogLevelInfo:    true,
		LogLevelWarning: true,
		LogLevelError:   true,
	}
	validCompressionTypes = map[CompressionType]bool{
		CompressionZstd:   true,
		CompressionSnappy: true,
		CompressionGzip:   true,
		CompressionLz4:    true,
		CompressionNone:   true,
	}
	validPublishMethods = map[PublishMethod]bool{
		PublishExternal: true,
		PublishInternal: true,
	}
	validErrorActions = map[ErrorAction]bool{
		ErrorActionFail:     true,
		ErrorActionContinue: true,
		ErrorActionSkip:     true,
	}
	validCleanupStatuses = map[CleanupStatus]bool{
		CleanupRunning: true,
		CleanupFailed:  true,
	}
)

// Validate checks the request against the parameter schema for its command
// kind. All violations are collected and returned together as a
// *ValidationErrors; a nil return means the request is ready for building.
func (r *Request) Validate() error {
	errs := &ValidationErrors{}

	known := false
	for _, k := range CommandKinds() {
		if r.Command == k {
			known = true
			break
		}
	}
	if !known {
		errs.Add("command", fmt.Sprintf("unknown command: %q", string(r.Command)))
		return errs.AsError()
	}

	if !r.variantPresent() {
		errs.Add(string(r.Command), fmt.Sprintf(
			"command %q requires %q parameters to be provided",
			string(r.Command), string(r.Command)))
		return errs.AsError()
	}

	switch r.Command {
	case CommandLogdbInit:
		r.LogdbInit.GlobalOptions.validate("logdb_init", errs)
	case CommandLogdbDrop:
		r.LogdbDrop.GlobalOptions.validate("logdb_drop", errs)
	case CommandLogdbTruncate:
		r.LogdbTruncate.GlobalOptions.validate("logdb_truncate", errs)
	case CommandLogdbLocks:
		r.LogdbLocks.GlobalOptions.validate("logdb_locks", errs)
	case CommandLogdbReleaseLocks:
		r.LogdbReleaseLocks.GlobalOptions.validate("logdb_release_locks", errs)
	case CommandConfigCreate:
		r.ConfigCreate.validate(errs)
	case CommandConfigDelete:
		r.ConfigDelete.GlobalOptions.validate("config_delete", errs)
		if r.ConfigDelete.SyncID == "" {
			errs.Add("config_delete.sync_id", "sync_id is required")
		}
	case CommandConfigList:
		r.ConfigList.GlobalOptions.validate("config_list", errs)
	case CommandSync:
		r.Sync.CommonOptions.validate("sync", errs)
	case CommandSyncExport:
		r.SyncExport.CommonOptions.validate("sync_export", errs)
	case CommandSyncPublish:
		r.SyncPublish.CommonOptions.validate("sync_publish", errs)
	case CommandRun:
		if r.Run.Config == "" {
			errs.Add("run.config", "config file path is required")
		}
		r.Run.CommonOptions.validate("run", errs)
	case CommandStatus:
		r.Status.GlobalOptions.validate("status", errs)
	case CommandCleanup:
		r.Cleanup.GlobalOptions.validate("cleanup", errs)
		if r.Cleanup.SyncID == "" {
			errs.Add("cleanup.sync_id", "sync_id is required")
		}
		if r.Cleanup.Status != "" && !validCleanupStatuses[r.Cleanup.Status] {
			errs.Add("cleanup.status", fmt.Sprintf("invalid status: %q (expected running or failed)", string(r.Cleanup.Status)))
		}
	}

	return errs.AsError()
}

// validate checks the shared global options under the given variant prefix.
func (g *GlobalOptions) validate(prefix string, errs *ValidationErrors) {
	if g.AuthFile == "" {
		errs.Add(prefix+".auth_file", "auth_file is required")
	}
	if g.LogDBAuthID == "" {
		errs.Add(prefix+".log_db_auth_id", "log_db_auth_id is required")
	}
	if g.LogLevel != "" && !validLogLevels[g.LogLevel] {
		errs.Add(prefix+".log_level", fmt.Sprintf("invalid log level: %q", string(g.LogLevel)))
	}
}

// validate checks the reduced option set of the sync family and run.
func (c *CommonOptions) validate(prefix string, errs *ValidationErrors) {
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		errs.Add(prefix+".log_level", fmt.Sprintf("invalid log level: %q", string(c.LogLevel)))
	}
}

// validate checks the config create parameters, including the cross-field
// rules on storage destination and publishing.
func (p *ConfigCreateParams) validate(errs *ValidationErrors) {
	p.GlobalOptions.validate("config_create", errs)

	if p.SourceDBAuthID == "" {
		errs.Add("config_create.source_db_auth_id", "source_db_auth_id is required")
	}
	if p.CompressionType != "" && !validCompressionTypes[p.CompressionType] {
		errs.Add("config_create.compression_type", fmt.Sprintf("invalid compression type: %q", string(p.CompressionType)))
	}
	if p.PublishMethod != "" && !validPublishMethods[p.PublishMethod] {
		errs.Add("config_create.publish_method", fmt.Sprintf("invalid publish method: %q (expected external or internal)", string(p.PublishMethod)))
	}
	if p.ErrorAction != "" && !validErrorActions[p.ErrorAction] {
		errs.Add("config_create.error_action", fmt.Sprintf("invalid error action: %q (expected fail, continue or skip)", string(p.ErrorAction)))
	}

	// output_dir (local) and target_storage_id (cloud) are mutually
	// exclusive destinations, and one of them must be chosen.
	if p.OutputDir != "" && p.TargetStorageID != "" {
		errs.Add("config_create.output_dir", "output_dir and target_storage_id are mutually exclusive; use output_dir for local storage or target_storage_id for cloud storage")
	}
	if p.OutputDir == "" && p.TargetStorageID == "" {
		errs.Add("config_create.output_dir", "at least one of output_dir or target_storage_id must be provided")
	}

	if p.PublishMethod != "" && p.PublishTarget == "" {
		errs.Add("config_create.publish_method", "publish_method requires publish_target to be set")
	}
}
