package logic

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hashicorp/go-version"
)

// MinCliVersion - oldest glctl release the server still talks to
const MinCliVersion = "v0.1.0"

var versionCharset = regexp.MustCompile(`[^0-9A-Za-z.\-+]+`)

// IsVersionCompatible checks that the version passed is compatible (>=) with MinCliVersion
func IsVersionCompatible(ver string) bool {
	// during dev, assume developers know what they are doing
	if ver == "dev" {
		return true
	}
	trimmed := strings.TrimFunc(ver, func(r rune) bool {
		return !unicode.IsNumber(r)
	})
	v, err := version.NewVersion(trimmed)
	if err != nil {
		return false
	}
	constraint, err := version.NewConstraint(">= " + MinCliVersion)
	if err != nil {
		return false
	}
	return constraint.Check(v)
}

// CleanVersion normalizes a reported version string for storage: strips the
// v prefix, surrounding junk and any character semver does not allow.
func CleanVersion(raw string) string {
	if raw == "" {
		return ""
	}

	v := strings.TrimSpace(raw)
	v = strings.TrimPrefix(v, "v")
	v = strings.TrimPrefix(v, "V")
	v = strings.Trim(v, " ,\"'")
	v = versionCharset.ReplaceAllString(v, "")
	for strings.Contains(v, "..") {
		v = strings.ReplaceAll(v, "..", ".")
	}
	return v
}
