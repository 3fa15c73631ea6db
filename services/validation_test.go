// ABOUTME: Tests for cluster identifier validation
// ABOUTME: Ensures unsafe input never reaches inventory queries or logs

package services

import "testing"

func TestValidateClusterName(t *testing.T) {
	valid := []string{
		"prod-east",
		"cluster01",
		"dc1.rack2_cluster",
		"A",
	}
	for _, name := range valid {
		if err := ValidateClusterName(name); err != nil {
			t.Errorf("Expected %q to be valid, got %v", name, err)
		}
	}

	invalid := []string{
		"",
		"-leading-hyphen",
		".leading-dot",
		"../etc/passwd",
		"name with spaces",
		"name\nnewline",
	}
	for _, name := range invalid {
		if err := ValidateClusterName(name); err == nil {
			t.Errorf("Expected %q to be rejected", name)
		}
	}
}

func TestSanitizeForLog(t *testing.T) {
	if got := sanitizeForLog("clean-name"); got != "clean-name" {
		t.Errorf("Expected clean input unchanged, got %q", got)
	}
	if got := sanitizeForLog("evil\nname\x00"); got != "evilname" {
		t.Errorf("Expected control characters stripped, got %q", got)
	}
}
