package version

import (
	"sort"

	"evalgo.org/lakeservice/internal/domain"
)

// CapabilitySet describes what a specific LakeXpress build supports.
// Instances are treated as immutable value objects.
type CapabilitySet struct {
	SourceDatabases  map[string]bool
	LogDatabases     map[string]bool
	StorageBackends  map[string]bool
	PublishTargets   map[string]bool
	CompressionTypes map[string]bool
	Commands         map[domain.CommandKind]bool

	SupportsNoBanner    bool
	SupportsVersionFlag bool
	SupportsIncremental bool
	SupportsCleanup     bool
}

// Entry pairs a known version with the capability set available at that
// version.
type Entry struct {
	Version      Version
	Capabilities CapabilitySet
}

// Registry is an append-only sequence of known version entries, sorted
// ascending at construction time and never mutated afterwards.
type Registry struct {
	entries []Entry
}

// NewRegistry builds a registry from the given entries, sorting them
// ascending by version.
func NewRegistry(entries []Entry) *Registry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Version.Less(sorted[j].Version)
	})
	return &Registry{entries: sorted}
}

// Resolve returns the capability set applicable for the detected version.
//
// An empty registry yields an empty set. An undetected version (nil) falls
// back to the newest known entry: an unknown binary is assumed to carry the
// newest known feature set so command construction is not needlessly
// restricted. Otherwise the newest entry at or below the detected version
// wins; a version older than every entry also falls back to the newest one,
// since the registry is treated as capability-additive over time.
func (r *Registry) Resolve(detected *Version) CapabilitySet {
	if len(r.entries) == 0 {
		return CapabilitySet{}
	}
	latest := r.entries[len(r.entries)-1].Capabilities
	if detected == nil {
		return latest
	}
	// First entry strictly greater than the detected version; everything
	// before it is <= detected.
	idx := sort.Search(len(r.entries), func(i int) bool {
		return detected.Less(r.entries[i].Version)
	})
	if idx == 0 {
		return latest
	}
	return r.entries[idx-1].Capabilities
}

// Newest returns the highest registered version, or false for an empty
// registry.
func (r *Registry) Newest() (Version, bool) {
	if len(r.entries) == 0 {
		return Version{}, false
	}
	return r.entries[len(r.entries)-1].Version, true
}

func stringSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func commandSet(kinds ...domain.CommandKind) map[domain.CommandKind]bool {
	set := make(map[domain.CommandKind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}

// DefaultRegistry returns the registry of LakeXpress versions this service
// knows about. New releases append entries here; the CLI surface pinned to
// each version is a compatibility contract, so changing an existing entry is
// a breaking change.
func DefaultRegistry() *Registry {
	return NewRegistry([]Entry{
		{
			Version: MustParse("0.2.8"),
			Capabilities: CapabilitySet{
				SourceDatabases:  stringSet("sqlserver", "postgresql", "oracle", "mysql", "mariadb"),
				LogDatabases:     stringSet("sqlserver", "postgresql", "mysql", "mariadb", "sqlite", "duckdb"),
				StorageBackends:  stringSet("local", "s3", "s3compatible", "gcs", "azure_adls", "onelake"),
				PublishTargets:   stringSet("snowflake", "databricks", "fabric", "bigquery", "motherduck", "glue", "ducklake"),
				CompressionTypes: stringSet("Zstd", "Snappy", "Gzip", "Lz4", "None"),
				Commands:         commandSet(domain.CommandKinds()...),

				SupportsNoBanner:    true,
				SupportsVersionFlag: true,
				SupportsIncremental: true,
				SupportsCleanup:     true,
			},
		},
	})
}

// SortedStrings returns the members of a string set in sorted order, for
// stable JSON responses.
func SortedStrings(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// SortedCommands returns the members of a command set in sorted order.
func SortedCommands(set map[domain.CommandKind]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}
