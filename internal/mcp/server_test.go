package mcp

import (
	"testing"

	"github.com/claude/liftlog/internal/volume"
)

// TestParseDaysDefault verifies the default analytics window when no
// parameter is given.
func TestParseDaysDefault(t *testing.T) {
	days, err := parseDays("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != volume.DefaultDaysBack {
		t.Errorf("parseDays(\"\") = %d, want %d", days, volume.DefaultDaysBack)
	}
}

// TestParseDaysExplicit verifies a supplied day count is used as-is.
func TestParseDaysExplicit(t *testing.T) {
	days, err := parseDays("7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 7 {
		t.Errorf("parseDays(\"7\") = %d, want 7", days)
	}
}

// TestParseDaysInvalid verifies that non-numeric and non-positive inputs
// are rejected.
func TestParseDaysInvalid(t *testing.T) {
	for _, input := range []string{"abc", "0", "-3", "1.5"} {
		if _, err := parseDays(input); err == nil {
			t.Errorf("parseDays(%q): expected error", input)
		}
	}
}
