// Package version detects the installed LakeXpress binary version and maps
// it to the capability set known for that version.
package version

import (
	"fmt"
	"regexp"
	"strconv"

	"evalgo.org/lakeservice/internal/domain"
)

// versionPattern matches the first X.Y.Z triple anywhere in a version
// string, ignoring surrounding text such as the product name.
var versionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// Version is a LakeXpress version number (X.Y.Z).
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse extracts a version triple from a string like "LakeXpress 0.2.8" or
// "0.2.8". A two-component version is not accepted.
func Parse(s string) (Version, error) {
	m := versionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, domain.NewDetectionError(fmt.Sprintf("cannot parse version from %q", s), nil)
	}
	// The pattern only admits digits, so the conversions cannot fail.
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// MustParse parses a version string and panics on failure. Reserved for
// static registry entries.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare orders versions lexicographically by (major, minor, patch) and
// returns -1, 0 or 1.
func (v Version) Compare(o Version) int {
	if v.Major != o.Major {
		return cmpInt(v.Major, o.Major)
	}
	if v.Minor != o.Minor {
		return cmpInt(v.Minor, o.Minor)
	}
	return cmpInt(v.Patch, o.Patch)
}

// Less reports whether v orders before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
