// Package domain defines the core request types for LakeXpress commands.
package domain

// CommandKind identifies one of the LakeXpress commands.
//
// The set is closed: LakeXpress itself only understands these fourteen
// operations, and the command builder matches exhaustively over them.
type CommandKind string

const (
	CommandLogdbInit         CommandKind = "logdb_init"
	CommandLogdbDrop         CommandKind = "logdb_drop"
	CommandLogdbTruncate     CommandKind = "logdb_truncate"
	CommandLogdbLocks        CommandKind = "logdb_locks"
	CommandLogdbReleaseLocks CommandKind = "logdb_release_locks"
	CommandConfigCreate      CommandKind = "config_create"
	CommandConfigDelete      CommandKind = "config_delete"
	CommandConfigList        CommandKind = "config_list"
	CommandSync              CommandKind = "sync"
	CommandSyncExport        CommandKind = "sync_export"
	CommandSyncPublish       CommandKind = "sync_publish"
	CommandRun               CommandKind = "run"
	CommandStatus            CommandKind = "status"
	CommandCleanup           CommandKind = "cleanup"
)

// CommandKinds lists every known command kind in a stable order.
func CommandKinds() []CommandKind {
	return []CommandKind{
		CommandLogdbInit,
		CommandLogdbDrop,
		CommandLogdbTruncate,
		CommandLogdbLocks,
		CommandLogdbReleaseLocks,
		CommandConfigCreate,
		CommandConfigDelete,
		CommandConfigList,
		CommandSync,
		CommandSyncExport,
		CommandSyncPublish,
		CommandRun,
		CommandStatus,
		CommandCleanup,
	}
}

// LogLevel is the LakeXpress logging verbosity level.
type LogLevel string

const (
	LogLevelDebug   LogLevel = "DEBUG"
	LogLevelInfo    LogLevel = "INFO"
	LogLevelWarning LogLevel = "WARNING"
	LogLevelError   LogLevel = "ERROR"
)

// CompressionType is the Parquet compression codec passed to LakeXpress.
type CompressionType string

const (
	CompressionZstd   CompressionType = "Zstd"
	CompressionSnappy CompressionType = "Snappy"
	CompressionGzip   CompressionType = "Gzip"
	CompressionLz4    CompressionType = "Lz4"
	CompressionNone   CompressionType = "None"
)

// PublishMethod selects between external tables and internal (loaded) publishing.
type PublishMethod string

const (
	PublishExternal PublishMethod = "external"
	PublishInternal PublishMethod = "internal"
)

// ErrorAction controls what LakeXpress does when a table export fails.
type ErrorAction string

const (
	ErrorActionFail     ErrorAction = "fail"
	ErrorActionContinue ErrorAction = "continue"
	ErrorActionSkip     ErrorAction = "skip"
)

// CleanupStatus filters which runs the cleanup command removes.
type CleanupStatus string

const (
	CleanupRunning CleanupStatus = "running"
	CleanupFailed  CleanupStatus = "failed"
)

// GlobalOptions holds the option fields shared across most commands.
// AuthFile and LogDBAuthID are mandatory wherever GlobalOptions is embedded.
type GlobalOptions struct {
	AuthFile    string   `json:"auth_file"`
	LogDBAuthID string   `json:"log_db_auth_id"`
	LogLevel    LogLevel `json:"log_level,omitempty"`
	LogDir      string   `json:"log_dir,omitempty"`
	NoProgress  bool     `json:"no_progress,omitempty"`
	NoBanner    bool     `json:"no_banner,omitempty"`
}

// CommonOptions holds the reduced option set used by the sync family and run,
// which resolve credentials from the stored configuration instead.
type CommonOptions struct {
	LogLevel   LogLevel `json:"log_level,omitempty"`
	LogDir     string   `json:"log_dir,omitempty"`
	NoProgress bool     `json:"no_progress,omitempty"`
	NoBanner   bool     `json:"no_banner,omitempty"`
}

// LogdbInitParams are the parameters for "logdb init".
type LogdbInitParams struct {
	GlobalOptions
}

// LogdbDropParams are the parameters for "logdb drop".
type LogdbDropParams struct {
	GlobalOptions
	Confirm bool `json:"confirm,omitempty"`
}

// LogdbTruncateParams are the parameters for "logdb truncate".
type LogdbTruncateParams struct {
	GlobalOptions
	SyncID  string `json:"sync_id,omitempty"`
	Confirm bool   `json:"confirm,omitempty"`
}

// LogdbLocksParams are the parameters for "logdb locks".
type LogdbLocksParams struct {
	GlobalOptions
	SyncID string `json:"sync_id,omitempty"`
}

// LogdbReleaseLocksParams are the parameters for "logdb release-locks".
type LogdbReleaseLocksParams struct {
	GlobalOptions
	MaxAgeHours *int   `json:"max_age_hours,omitempty"`
	TableID     string `json:"table_id,omitempty"`
	Confirm     bool   `json:"confirm,omitempty"`
}

// ConfigCreateParams are the parameters for "config create", the largest
// command surface: source selection, table filtering, incremental setup,
// storage destination, FastBCP tuning, publishing and feature toggles.
type ConfigCreateParams struct {
	GlobalOptions

	// Source
	SourceDBAuthID   string `json:"source_db_auth_id"`
	SourceDBName     string `json:"source_db_name,omitempty"`
	SourceSchemaName string `json:"source_schema_name,omitempty"`

	// Filtering
	Include string `json:"include,omitempty"`
	Exclude string `json:"exclude,omitempty"`
	MinRows *int   `json:"min_rows,omitempty"`
	MaxRows *int   `json:"max_rows,omitempty"`

	// Incremental
	IncrementalTable     []string `json:"incremental_table,omitempty"`
	IncrementalSafetyLag *int     `json:"incremental_safety_lag,omitempty"`

	// Storage destination: exactly one of OutputDir / TargetStorageID
	OutputDir       string `json:"output_dir,omitempty"`
	TargetStorageID string `json:"target_storage_id,omitempty"`
	SubPath         string `json:"sub_path,omitempty"`

	// FastBCP
	FastBCPDirPath      string          `json:"fastbcp_dir_path,omitempty"`
	FastBCPParallel     *int            `json:"fastbcp_p,omitempty"`
	NJobs               *int            `json:"n_jobs,omitempty"`
	CompressionType     CompressionType `json:"compression_type,omitempty"`
	LargeTableThreshold *int            `json:"large_table_threshold,omitempty"`
	FastBCPTableConfig  string          `json:"fastbcp_table_config,omitempty"`

	// Publishing
	PublishTarget        string        `json:"publish_target,omitempty"`
	PublishMethod        PublishMethod `json:"publish_method,omitempty"`
	PublishDatabaseName  string        `json:"publish_database_name,omitempty"`
	PublishSchemaPattern string        `json:"publish_schema_pattern,omitempty"`
	PublishTablePattern  string        `json:"publish_table_pattern,omitempty"`

	// Features
	NoViews          bool   `json:"no_views,omitempty"`
	PKConstraints    bool   `json:"pk_constraints,omitempty"`
	GenerateMetadata bool   `json:"generate_metadata,omitempty"`
	ManifestName     string `json:"manifest_name,omitempty"`

	// Other
	SyncID      string      `json:"sync_id,omitempty"`
	ErrorAction ErrorAction `json:"error_action,omitempty"`
	EnvName     string      `json:"env_name,omitempty"`
}

// ConfigDeleteParams are the parameters for "config delete".
type ConfigDeleteParams struct {
	GlobalOptions
	SyncID  string `json:"sync_id"`
	Confirm bool   `json:"confirm,omitempty"`
}

// ConfigListParams are the parameters for "config list".
type ConfigListParams struct {
	GlobalOptions
	EnvName string `json:"env_name,omitempty"`
}

// SyncParams are the parameters for "sync" (export + publish).
type SyncParams struct {
	SyncID         string `json:"sync_id,omitempty"`
	Resume         bool   `json:"resume,omitempty"`
	RunID          string `json:"run_id,omitempty"`
	AuthFile       string `json:"auth_file,omitempty"`
	FastBCPDirPath string `json:"fastbcp_dir_path,omitempty"`
	CommonOptions
}

// SyncExportParams are the parameters for "sync[export]".
type SyncExportParams struct {
	SyncID         string `json:"sync_id,omitempty"`
	AuthFile       string `json:"auth_file,omitempty"`
	FastBCPDirPath string `json:"fastbcp_dir_path,omitempty"`
	CommonOptions
}

// SyncPublishParams are the parameters for "sync[publish]".
type SyncPublishParams struct {
	SyncID   string `json:"sync_id,omitempty"`
	RunID    string `json:"run_id,omitempty"`
	AuthFile string `json:"auth_file,omitempty"`
	CommonOptions
}

// RunParams are the parameters for "run" (export from a YAML config file).
type RunParams struct {
	Config      string `json:"config"`
	AuthFile    string `json:"auth_file,omitempty"`
	LogDBAuthID string `json:"log_db_auth_id,omitempty"`
	CommonOptions
}

// StatusParams are the parameters for "status".
type StatusParams struct {
	GlobalOptions
	SyncID  string `json:"sync_id,omitempty"`
	RunID   string `json:"run_id,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`
}

// CleanupParams are the parameters for "cleanup".
type CleanupParams struct {
	GlobalOptions
	SyncID    string        `json:"sync_id"`
	OlderThan string        `json:"older_than,omitempty"`
	Status    CleanupStatus `json:"status,omitempty"`
	DryRun    bool          `json:"dry_run,omitempty"`
}

// Request is the top-level command request. Command selects the kind and
// exactly the matching variant must be populated; other variants are ignored.
type Request struct {
	Command CommandKind `json:"command"`

	LogdbInit         *LogdbInitParams         `json:"logdb_init,omitempty"`
	LogdbDrop         *LogdbDropParams         `json:"logdb_drop,omitempty"`
	LogdbTruncate     *LogdbTruncateParams     `json:"logdb_truncate,omitempty"`
	LogdbLocks        *LogdbLocksParams        `json:"logdb_locks,omitempty"`
	LogdbReleaseLocks *LogdbReleaseLocksParams `json:"logdb_release_locks,omitempty"`
	ConfigCreate      *ConfigCreateParams      `json:"config_create,omitempty"`
	ConfigDelete      *ConfigDeleteParams      `json:"config_delete,omitempty"`
	ConfigList        *ConfigListParams        `json:"config_list,omitempty"`
	Sync              *SyncParams              `json:"sync,omitempty"`
	SyncExport        *SyncExportParams        `json:"sync_export,omitempty"`
	SyncPublish       *SyncPublishParams       `json:"sync_publish,omitempty"`
	Run               *RunParams               `json:"run,omitempty"`
	Status            *StatusParams            `json:"status,omitempty"`
	Cleanup           *CleanupParams           `json:"cleanup,omitempty"`
}

// variantPresent reports whether the variant matching the declared command
// kind is populated.
func (r *Request) variantPresent() bool {
	switch r.Command {
	case CommandLogdbInit:
		return r.LogdbInit != nil
	case CommandLogdbDrop:
		return r.LogdbDrop != nil
	case CommandLogdbTruncate:
		return r.LogdbTruncate != nil
	case CommandLogdbLocks:
		return r.LogdbLocks != nil
	case CommandLogdbReleaseLocks:
		return r.LogdbReleaseLocks != nil
	case CommandConfigCreate:
		return r.ConfigCreate != nil
	case CommandConfigDelete:
		return r.ConfigDelete != nil
	case CommandConfigList:
		return r.ConfigList != nil
	case CommandSync:
		return r.Sync != nil
	case CommandSyncExport:
		return r.SyncExport != nil
	case CommandSyncPublish:
		return r.SyncPublish != nil
	case CommandRun:
		return r.Run != nil
	case CommandStatus:
		return r.Status != nil
	case CommandCleanup:
		return r.Cleanup != nil
	}
	return false
}
