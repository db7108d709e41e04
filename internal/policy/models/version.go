package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed major.minor policy version.
//
// Policy versions are stored as strings but MUST be ordered numerically:
// "9.10" is newer than "9.9", which naive string comparison gets wrong.
// All "latest version" decisions in the lifecycle engine go through Compare.
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compare returns -1, 0 or 1 ordering by (major, minor).
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		if v.Major < other.Major {
			return -1
		}
		return 1
	}
	if v.Minor != other.Minor {
		if v.Minor < other.Minor {
			return -1
		}
		return 1
	}
	return 0
}

// ParseVersion parses a strict major.minor version string.
func ParseVersion(s string) (Version, bool) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return Version{}, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil || major < 0 {
		return Version{}, false
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil || minor < 0 {
		return Version{}, false
	}
	return Version{Major: major, Minor: minor}, true
}

// NextVersion increments the minor component: "1.0" -> "1.1", "9.9" -> "9.10".
// Strings that are not major.minor get a ".1" suffix as a degenerate fallback
// so re-versioning never fails on legacy data.
func NextVersion(current string) string {
	v, ok := ParseVersion(current)
	if !ok {
		return current + ".1"
	}
	v.Minor++
	return v.String()
}

// CompareVersions orders two version strings numerically when both parse as
// major.minor, falling back to plain string comparison otherwise.
func CompareVersions(a, b string) int {
	va, okA := ParseVersion(a)
	vb, okB := ParseVersion(b)
	if okA && okB {
		return va.Compare(vb)
	}
	return strings.Compare(a, b)
}
