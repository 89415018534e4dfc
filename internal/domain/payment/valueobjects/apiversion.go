package valueobjects

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// APIVersion identifies one of the two provider wire formats.
type APIVersion string

const (
	APIVersionV1 APIVersion = "v1"
	APIVersionV2 APIVersion = "v2"
)

// ParseAPIVersion accepts "v1"/"v2" in any case, with or without the "v".
// Longer semver strings select their major version, so "2.0" is v2.
func ParseAPIVersion(s string) (APIVersion, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid api version: %q", s)
	}
	av := APIVersion(semver.Major(v))
	if !av.IsValid() {
		return "", fmt.Errorf("invalid api version: %q", s)
	}
	return av, nil
}

func (v APIVersion) IsValid() bool {
	return v == APIVersionV1 || v == APIVersionV2
}

func (v APIVersion) String() string {
	return string(v)
}
