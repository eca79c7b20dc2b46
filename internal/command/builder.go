// Package command builds LakeXpress command lines from validated requests.
//
// Building is pure: the same validated request always produces the same
// token vector, token for token, which keeps the preview/execute flow
// idempotent. The flag order per command is part of the LakeXpress CLI
// contract and is reproduced here exactly.
package command

import (
	"fmt"
	"os"
	"strconv"

	"evalgo.org/lakeservice/internal/domain"
)

// Builder turns validated requests into LakeXpress argument vectors.
type Builder struct {
	binaryPath string
}

// NewBuilder creates a builder for the LakeXpress binary at the given path.
// The path must point to an existing, regular, executable file; otherwise a
// *domain.ConfigurationError is returned and the builder is unusable.
func NewBuilder(binaryPath string) (*Builder, error) {
	info, err := os.Stat(binaryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.NewConfigurationError(binaryPath, "LakeXpress binary not found")
		}
		return nil, domain.NewConfigurationError(binaryPath, fmt.Sprintf("cannot stat LakeXpress binary (%v)", err))
	}
	if !info.Mode().IsRegular() {
		return nil, domain.NewConfigurationError(binaryPath, "LakeXpress path is not a regular file")
	}
	if info.Mode().Perm()&0111 == 0 {
		return nil, domain.NewConfigurationError(binaryPath, "LakeXpress binary is not executable")
	}
	return &Builder{binaryPath: binaryPath}, nil
}

// BinaryPath returns the configured LakeXpress binary path.
func (b *Builder) BinaryPath() string {
	return b.binaryPath
}

// Build produces the argument vector for a validated request. The request
// must have passed Validate; Build trusts the matching variant to be
// populated. The switch is exhaustive over the closed command set.
func (b *Builder) Build(req *domain.Request) ([]string, error) {
	switch req.Command {
	case domain.CommandLogdbInit:
		return b.buildLogdbInit(req.LogdbInit), nil
	case domain.CommandLogdbDrop:
		return b.buildLogdbDrop(req.LogdbDrop), nil
	case domain.CommandLogdbTruncate:
		return b.buildLogdbTruncate(req.LogdbTruncate), nil
	case domain.CommandLogdbLocks:
		return b.buildLogdbLocks(req.LogdbLocks), nil
	case domain.CommandLogdbReleaseLocks:
		return b.buildLogdbReleaseLocks(req.LogdbReleaseLocks), nil
	case domain.CommandConfigCreate:
		return b.buildConfigCreate(req.ConfigCreate), nil
	case domain.CommandConfigDelete:
		return b.buildConfigDelete(req.ConfigDelete), nil
	case domain.CommandConfigList:
		return b.buildConfigList(req.ConfigList), nil
	case domain.CommandSync:
		return b.buildSync(req.Sync), nil
	case domain.CommandSyncExport:
		return b.buildSyncExport(req.SyncExport), nil
	case domain.CommandSyncPublish:
		return b.buildSyncPublish(req.SyncPublish), nil
	case domain.CommandRun:
		return b.buildRun(req.Run), nil
	case domain.CommandStatus:
		return b.buildStatus(req.Status), nil
	case domain.CommandCleanup:
		return b.buildCleanup(req.Cleanup), nil
	}
	return nil, fmt.Errorf("unknown command kind: %s", req.Command)
}

// globalOptions emits the option block shared across most commands, in the
// fixed order LakeXpress documents it.
func globalOptions(g domain.GlobalOptions) []string {
	args := []string{"-a", g.AuthFile, "--log_db_auth_id", g.LogDBAuthID}
	if g.LogLevel != "" {
		args = append(args, "--log_level", string(g.LogLevel))
	}
	if g.LogDir != "" {
		args = append(args, "--log_dir", g.LogDir)
	}
	if g.NoProgress {
		args = append(args, "--no_progress")
	}
	if g.NoBanner {
		args = append(args, "--no_banner")
	}
	return args
}

// commonOptions emits the reduced option block used by the sync family and
// run, which take their credentials from the stored configuration.
func commonOptions(c domain.CommonOptions) []string {
	var args []string
	if c.LogLevel != "" {
		args = append(args, "--log_level", string(c.LogLevel))
	}
	if c.LogDir != "" {
		args = append(args, "--log_dir", c.LogDir)
	}
	if c.NoProgress {
		args = append(args, "--no_progress")
	}
	if c.NoBanner {
		args = append(args, "--no_banner")
	}
	return args
}

func (b *Builder) buildLogdbInit(p *domain.LogdbInitParams) []string {
	cmd := []string{b.binaryPath, "logdb", "init"}
	return append(cmd, globalOptions(p.GlobalOptions)...)
}

func (b *Builder) buildLogdbDrop(p *domain.LogdbDropParams) []string {
	cmd := []string{b.binaryPath, "logdb", "drop"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildLogdbTruncate(p *domain.LogdbTruncateParams) []string {
	cmd := []string{b.binaryPath, "logdb", "truncate"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildLogdbLocks(p *domain.LogdbLocksParams) []string {
	cmd := []string{b.binaryPath, "logdb", "locks"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	return cmd
}

func (b *Builder) buildLogdbReleaseLocks(p *domain.LogdbReleaseLocksParams) []string {
	cmd := []string{b.binaryPath, "logdb", "release-locks"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	if p.MaxAgeHours != nil {
		cmd = append(cmd, "--max_age_hours", strconv.Itoa(*p.MaxAgeHours))
	}
	if p.TableID != "" {
		cmd = append(cmd, "--table_id", p.TableID)
	}
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildConfigCreate(p *domain.ConfigCreateParams) []string {
	cmd := []string{b.binaryPath, "config", "create"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)

	// Source
	cmd = append(cmd, "--source_db_auth_id", p.SourceDBAuthID)
	if p.SourceDBName != "" {
		cmd = append(cmd, "--source_db_name", p.SourceDBName)
	}
	if p.SourceSchemaName != "" {
		cmd = append(cmd, "--source_schema_name", p.SourceSchemaName)
	}

	// Filtering
	if p.Include != "" {
		cmd = append(cmd, "-i", p.Include)
	}
	if p.Exclude != "" {
		cmd = append(cmd, "-e", p.Exclude)
	}
	if p.MinRows != nil {
		cmd = append(cmd, "--min_rows", strconv.Itoa(*p.MinRows))
	}
	if p.MaxRows != nil {
		cmd = append(cmd, "--max_rows", strconv.Itoa(*p.MaxRows))
	}

	// Incremental
	for _, inc := range p.IncrementalTable {
		cmd = append(cmd, "--incremental_table", inc)
	}
	if p.IncrementalSafetyLag != nil {
		cmd = append(cmd, "--incremental_safety_lag", strconv.Itoa(*p.IncrementalSafetyLag))
	}

	// Storage
	if p.OutputDir != "" {
		cmd = append(cmd, "--output_dir", p.OutputDir)
	}
	if p.TargetStorageID != "" {
		cmd = append(cmd, "--target_storage_id", p.TargetStorageID)
	}
	if p.SubPath != "" {
		cmd = append(cmd, "--sub_path", p.SubPath)
	}

	// FastBCP
	if p.FastBCPDirPath != "" {
		cmd = append(cmd, "--fastbcp_dir_path", p.FastBCPDirPath)
	}
	if p.FastBCPParallel != nil {
		cmd = append(cmd, "-p", strconv.Itoa(*p.FastBCPParallel))
	}
	if p.NJobs != nil {
		cmd = append(cmd, "--n_jobs", strconv.Itoa(*p.NJobs))
	}
	if p.CompressionType != "" {
		cmd = append(cmd, "--compression_type", string(p.CompressionType))
	}
	if p.LargeTableThreshold != nil {
		cmd = append(cmd, "--large_table_threshold", strconv.Itoa(*p.LargeTableThreshold))
	}
	if p.FastBCPTableConfig != "" {
		cmd = append(cmd, "--fastbcp_table_config", p.FastBCPTableConfig)
	}

	// Publishing
	if p.PublishTarget != "" {
		cmd = append(cmd, "--publish_target", p.PublishTarget)
	}
	if p.PublishMethod != "" {
		cmd = append(cmd, "--publish_method", string(p.PublishMethod))
	}
	if p.PublishDatabaseName != "" {
		cmd = append(cmd, "--publish_database_name", p.PublishDatabaseName)
	}
	if p.PublishSchemaPattern != "" {
		cmd = append(cmd, "--publish_schema_pattern", p.PublishSchemaPattern)
	}
	if p.PublishTablePattern != "" {
		cmd = append(cmd, "--publish_table_pattern", p.PublishTablePattern)
	}

	// Features
	if p.NoViews {
		cmd = append(cmd, "--no_views")
	}
	if p.PKConstraints {
		cmd = append(cmd, "--pk_constraints")
	}
	if p.GenerateMetadata {
		cmd = append(cmd, "--generate_metadata")
	}
	if p.ManifestName != "" {
		cmd = append(cmd, "--manifest_name", p.ManifestName)
	}

	// Other
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.ErrorAction != "" {
		cmd = append(cmd, "--error_action", string(p.ErrorAction))
	}
	if p.EnvName != "" {
		cmd = append(cmd, "--env_name", p.EnvName)
	}

	return cmd
}

func (b *Builder) buildConfigDelete(p *domain.ConfigDeleteParams) []string {
	cmd := []string{b.binaryPath, "config", "delete"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	cmd = append(cmd, "--sync_id", p.SyncID)
	if p.Confirm {
		cmd = append(cmd, "--confirm")
	}
	return cmd
}

func (b *Builder) buildConfigList(p *domain.ConfigListParams) []string {
	cmd := []string{b.binaryPath, "config", "list"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	if p.EnvName != "" {
		cmd = append(cmd, "--env_name", p.EnvName)
	}
	return cmd
}

func (b *Builder) buildSync(p *domain.SyncParams) []string {
	cmd := []string{b.binaryPath, "sync"}
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.Resume {
		cmd = append(cmd, "--resume")
	}
	if p.RunID != "" {
		cmd = append(cmd, "--run_id", p.RunID)
	}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	if p.FastBCPDirPath != "" {
		cmd = append(cmd, "--fastbcp_dir_path", p.FastBCPDirPath)
	}
	return append(cmd, commonOptions(p.CommonOptions)...)
}

func (b *Builder) buildSyncExport(p *domain.SyncExportParams) []string {
	// The phase selector is part of the subcommand token itself.
	cmd := []string{b.binaryPath, "sync[export]"}
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	if p.FastBCPDirPath != "" {
		cmd = append(cmd, "--fastbcp_dir_path", p.FastBCPDirPath)
	}
	return append(cmd, commonOptions(p.CommonOptions)...)
}

func (b *Builder) buildSyncPublish(p *domain.SyncPublishParams) []string {
	cmd := []string{b.binaryPath, "sync[publish]"}
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.RunID != "" {
		cmd = append(cmd, "--run_id", p.RunID)
	}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	return append(cmd, commonOptions(p.CommonOptions)...)
}

func (b *Builder) buildRun(p *domain.RunParams) []string {
	cmd := []string{b.binaryPath, "run", "-c", p.Config}
	if p.AuthFile != "" {
		cmd = append(cmd, "-a", p.AuthFile)
	}
	if p.LogDBAuthID != "" {
		cmd = append(cmd, "--log_db_auth_id", p.LogDBAuthID)
	}
	return append(cmd, commonOptions(p.CommonOptions)...)
}

func (b *Builder) buildStatus(p *domain.StatusParams) []string {
	cmd := []string{b.binaryPath, "status"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	if p.SyncID != "" {
		cmd = append(cmd, "--sync_id", p.SyncID)
	}
	if p.RunID != "" {
		cmd = append(cmd, "--run_id", p.RunID)
	}
	if p.Verbose {
		cmd = append(cmd, "--verbose")
	}
	return cmd
}

func (b *Builder) buildCleanup(p *domain.CleanupParams) []string {
	cmd := []string{b.binaryPath, "cleanup"}
	cmd = append(cmd, globalOptions(p.GlobalOptions)...)
	cmd = append(cmd, "--sync_id", p.SyncID)
	if p.OlderThan != "" {
		cmd = append(cmd, "--older-than", p.OlderThan)
	}
	if p.Status != "" {
		cmd = append(cmd, "--status", string(p.Status))
	}
	if p.DryRun {
		cmd = append(cmd, "--dry-run")
	}
	return cmd
}
