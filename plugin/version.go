package plugin

import "fmt"

// ReleaseType qualifies a Version. The zero value is a final release.
type ReleaseType int

const (
	ReleaseFinal ReleaseType = iota
	ReleaseCandidate
	ReleaseBeta
	ReleaseAlpha
	ReleasePreAlpha
)

// String returns the suffix used when rendering a version.
func (r ReleaseType) String() string {
	switch r {
	case ReleaseFinal:
		return "final"
	case ReleaseCandidate:
		return "rc"
	case ReleaseBeta:
		return "beta"
	case ReleaseAlpha:
		return "alpha"
	case ReleasePreAlpha:
		return "prealpha"
	default:
		return "unknown"
	}
}

// Version is the semantic triple a plugin reports for display.
// It is never compared by the registry.
type Version struct {
	Major   int         `json:"major" validate:"gte=0"`
	Minor   int         `json:"minor" validate:"gte=0"`
	Patch   int         `json:"patch" validate:"gte=0"`
	Release ReleaseType `json:"release"`
}

// NewVersion creates a final release version.
func NewVersion(major, minor, patch int) Version {
	return Version{Major: major, Minor: minor, Patch: patch}
}

// String renders "1.0.0", or "1.0.0-beta" for non-final releases.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Release != ReleaseFinal {
		s += "-" + v.Release.String()
	}
	return s
}

// Validate rejects negative components and unknown release types.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return fmt.Errorf("version %d.%d.%d has a negative component", v.Major, v.Minor, v.Patch)
	}
	if v.Release < ReleaseFinal || v.Release > ReleasePreAlpha {
		return fmt.Errorf("version has unknown release type %d", v.Release)
	}
	return nil
}
