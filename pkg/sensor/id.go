package sensor

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Well-known family codes.
const (
	// FamilyDS2409 is the microlan coupler (hub) family.
	FamilyDS2409 = "1F"

	// FamilyDS2438 is the battery monitor family used as an intermediate
	// association hub by multisensor modules.
	FamilyDS2438 = "26"

	// FamilyEDS is the Embedded Data Systems family.
	FamilyEDS = "7E"
)

// Hub branch directory names.
const (
	BranchMain = "main"
	BranchAux  = "aux"
)

// ErrInvalidID is returned when a string is not a valid sensor path.
var ErrInvalidID = errors.New("invalid sensor id")

var (
	idPattern     = regexp.MustCompile(`^[0-9A-Fa-f]{2}\.[0-9A-Fa-f]+$`)
	branchPattern = regexp.MustCompile(`^(main|aux)$`)
)

// ID identifies a device by its bus path.
type ID struct {
	path string // absolute, no trailing slash
	id   string
}

// ParseID parses an owserver path such as "/1F.0123456789AB/main/28.0123456789AB".
// Leading and trailing slashes are optional. Every segment but the last must
// be a coupler id followed by a branch name.
func ParseID(path string) (ID, error) {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, path)
	}

	segments := strings.Split(trimmed, "/")
	last := segments[len(segments)-1]
	if !idPattern.MatchString(last) {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, path)
	}

	prefix := segments[:len(segments)-1]
	if len(prefix)%2 != 0 {
		return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, path)
	}
	for i := 0; i < len(prefix); i += 2 {
		if !idPattern.MatchString(prefix[i]) || !branchPattern.MatchString(prefix[i+1]) {
			return ID{}, fmt.Errorf("%w: %q", ErrInvalidID, path)
		}
	}

	return ID{
		path: "/" + trimmed,
		id:   last,
	}, nil
}

// MustParseID is like ParseID but panics on error. Intended for tests and
// constants.
func MustParseID(path string) ID {
	id, err := ParseID(path)
	if err != nil {
		panic(err)
	}
	return id
}

// ID returns the device id without path, e.g. "28.0123456789AB".
func (s ID) ID() string {
	return s.id
}

// FullPath returns the absolute bus path of the device.
func (s ID) FullPath() string {
	return s.path
}

// Family returns the upper-case two character family code.
func (s ID) Family() string {
	if len(s.id) < 2 {
		return ""
	}
	return strings.ToUpper(s.id[:2])
}

// Branch returns the directory path of one of the hub's branches, with a
// trailing slash as owserver expects for directory listings.
func (s ID) Branch(name string) string {
	return s.path + "/" + name + "/"
}

// Normalized returns the id in a form usable as a registry uid segment.
func (s ID) Normalized() string {
	return strings.ReplaceAll(s.id, ".", "_")
}

// IsZero reports whether the ID is unset.
func (s ID) IsZero() bool {
	return s.id == ""
}

// String returns the full path.
func (s ID) String() string {
	return s.path
}

// HasFamily reports whether a raw device id string belongs to the given family.
func HasFamily(id, family string) bool {
	return len(id) >= 2 && strings.EqualFold(id[:2], family)
}
