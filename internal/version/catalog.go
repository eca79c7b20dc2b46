package version

// CommandDoc is a one-line description of a LakeXpress command for the
// capability catalog.
type CommandDoc struct {
	Command     string `json:"command"`
	Description string `json:"description"`
}

// Catalog is the static, human-oriented capability listing served by the
// capabilities endpoint. It mirrors the LakeXpress documentation rather than
// the per-version registry.
type Catalog struct {
	SourceDatabases  []string     `json:"source_databases"`
	LogDatabases     []string     `json:"log_databases"`
	StorageBackends  []string     `json:"storage_backends"`
	PublishTargets   []string     `json:"publish_targets"`
	CompressionTypes []string     `json:"compression_types"`
	Commands         []CommandDoc `json:"commands"`
}

// SupportedCatalog returns the static capability catalog with display names.
func SupportedCatalog() Catalog {
	return Catalog{
		SourceDatabases: []string{
			"SQL Server (sqlserver)",
			"PostgreSQL (postgresql)",
			"Oracle (oracle)",
			"MySQL (mysql)",
			"MariaDB (mariadb)",
		},
		LogDatabases: []string{
			"SQL Server (sqlserver)",
			"PostgreSQL (postgresql)",
			"MySQL (mysql)",
			"MariaDB (mariadb)",
			"SQLite (sqlite)",
			"DuckDB (duckdb)",
		},
		StorageBackends: []string{
			"Local filesystem (local)",
			"AWS S3 (s3)",
			"S3-compatible (s3compatible)",
			"Google Cloud Storage (gcs)",
			"Azure ADLS Gen2 (azure_adls)",
			"OneLake (onelake)",
		},
		PublishTargets: []string{
			"Snowflake (snowflake)",
			"Databricks (databricks)",
			"Microsoft Fabric (fabric)",
			"BigQuery (bigquery)",
			"MotherDuck (motherduck)",
			"AWS Glue (glue)",
			"DuckLake (ducklake)",
		},
		CompressionTypes: []string{"Zstd", "Snappy", "Gzip", "Lz4", "None"},
		Commands: []CommandDoc{
			{Command: "logdb init", Description: "Create the log database schema"},
			{Command: "logdb drop", Description: "Drop the log database schema"},
			{Command: "logdb truncate", Description: "Clear all data, keep schema"},
			{Command: "logdb locks", Description: "Show currently locked tables"},
			{Command: "logdb release-locks", Description: "Release stale or stuck locks"},
			{Command: "config create", Description: "Create a new sync configuration"},
			{Command: "config delete", Description: "Delete an existing sync configuration"},
			{Command: "config list", Description: "List all sync configurations"},
			{Command: "sync", Description: "Execute sync (export + publish)"},
			{Command: "sync[export]", Description: "Execute export only"},
			{Command: "sync[publish]", Description: "Execute publish only"},
			{Command: "run", Description: "Run export from YAML config file"},
			{Command: "status", Description: "Query sync/run status"},
			{Command: "cleanup", Description: "Remove orphaned or stale runs"},
		},
	}
}
