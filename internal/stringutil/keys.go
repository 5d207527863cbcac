package stringutil

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars   = regexp.MustCompile(`[^a-z0-9]+`)
	nonEnvKeyChars = regexp.MustCompile(`[^A-Z0-9]+`)
)

// Slugify turns a store label into a file-name-safe slug ("OG Thread" -> "og-thread").
func Slugify(label string) string {
	s := nonSlugChars.ReplaceAllString(strings.ToLower(label), "-")
	return strings.Trim(s, "-")
}

// EnvKey turns a store key into a segment of an environment-style secret
// name ("og-thread" -> "OG_THREAD"). Runs of other characters collapse into a
// single underscore.
func EnvKey(key string) string {
	s := nonEnvKeyChars.ReplaceAllString(strings.ToUpper(strings.TrimSpace(key)), "_")
	return strings.Trim(s, "_")
}
