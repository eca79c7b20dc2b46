package version

import (
	"testing"

	"evalgo.org/lakeservice/internal/domain"
)

func testEntry(v string, marker string) Entry {
	return Entry{
		Version: MustParse(v),
		Capabilities: CapabilitySet{
			SourceDatabases: stringSet(marker),
		},
	}
}

func capMarker(caps CapabilitySet) string {
	names := SortedStrings(caps.SourceDatabases)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

func TestRegistryResolve(t *testing.T) {
	registry := NewRegistry([]Entry{
		// Deliberately out of order; NewRegistry must sort ascending.
		testEntry("0.3.0", "v030"),
		testEntry("0.2.0", "v020"),
		testEntry("0.2.8", "v028"),
	})

	v := func(s string) *Version {
		parsed := MustParse(s)
		return &parsed
	}

	tests := []struct {
		name     string
		detected *Version
		want     string
	}{
		{
			name:     "Exact match",
			detected: v("0.2.8"),
			want:     "v028",
		},
		{
			name:     "Between entries picks the lower",
			detected: v("0.2.9"),
			want:     "v028",
		},
		{
			name:     "Newer than all entries picks the newest",
			detected: v("1.0.0"),
			want:     "v030",
		},
		{
			name:     "Older than all entries falls back to the newest",
			detected: v("0.1.0"),
			want:     "v030",
		},
		{
			name:     "Undetected falls back to the newest",
			detected: nil,
			want:     "v030",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := capMarker(registry.Resolve(tt.detected))
			if got != tt.want {
				t.Errorf("Resolve() chose entry %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRegistryResolveSingleEntry(t *testing.T) {
	registry := NewRegistry([]Entry{testEntry("0.2.8", "v028")})

	newer := MustParse("1.0.0")
	if got := capMarker(registry.Resolve(&newer)); got != "v028" {
		t.Errorf("newer detected version resolved to %q, want v028", got)
	}
	if got := capMarker(registry.Resolve(nil)); got != "v028" {
		t.Errorf("undetected version resolved to %q, want v028", got)
	}
}

func TestRegistryResolveEmpty(t *testing.T) {
	registry := NewRegistry(nil)
	caps := registry.Resolve(nil)

	if len(caps.SourceDatabases) != 0 || len(caps.Commands) != 0 {
		t.Error("empty registry must resolve to an empty capability set")
	}
	if caps.SupportsNoBanner || caps.SupportsVersionFlag || caps.SupportsIncremental || caps.SupportsCleanup {
		t.Error("empty registry must resolve with all feature flags false")
	}
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	newest, ok := registry.Newest()
	if !ok {
		t.Fatal("default registry is empty")
	}
	if newest != MustParse("0.2.8") {
		t.Errorf("newest registered version = %v, want 0.2.8", newest)
	}

	caps := registry.Resolve(nil)
	for _, kind := range domain.CommandKinds() {
		if !caps.Commands[kind] {
			t.Errorf("command %q missing from 0.2.8 capability set", kind)
		}
	}
	if !caps.SourceDatabases["postgresql"] || !caps.PublishTargets["snowflake"] {
		t.Error("expected well-known databases and targets in 0.2.8 capability set")
	}
	if !caps.SupportsIncremental || !caps.SupportsCleanup {
		t.Error("expected incremental and cleanup support at 0.2.8")
	}
}
