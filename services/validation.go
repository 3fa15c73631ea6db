// ABOUTME: Input validation for cluster identifiers passed to lookups
// ABOUTME: Prevents injection into inventory queries and log output

package services

import (
	"fmt"
	"regexp"
	"strings"
)

// clusterNamePattern matches valid cluster names (alphanumeric start,
// then alphanumeric, hyphens, underscores, dots)
var clusterNamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// sanitizeForLog removes control characters from strings to prevent log
// injection when including user input in error messages
func sanitizeForLog(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// ValidateClusterName validates that a cluster identifier has a safe
// format before it is used in inventory queries or log output.
func ValidateClusterName(name string) error {
	if name == "" {
		return fmt.Errorf("cluster name cannot be empty")
	}
	if !clusterNamePattern.MatchString(name) {
		return fmt.Errorf("invalid cluster name format: %s", sanitizeForLog(name))
	}
	return nil
}
