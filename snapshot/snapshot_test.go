package snapshot

import (
	"testing"

	"bestseller-dashboard/utils"
)

func TestFindChromeBinaryPrefersEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")

	if got := findChromeBinary(); got != "/opt/custom/chrome" {
		t.Errorf("got %q, want /opt/custom/chrome", got)
	}
}

func TestNewKeepsExplicitBinary(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")

	c := New("/usr/local/bin/headless-shell", 2, utils.Discard())
	if c.chromeBin != "/usr/local/bin/headless-shell" {
		t.Errorf("chromeBin: got %q", c.chromeBin)
	}
	if c.retry.MaxAttempts != 2 {
		t.Errorf("MaxAttempts: got %d, want 2", c.retry.MaxAttempts)
	}
}

func TestNewFallsBackToEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/opt/custom/chrome")

	if got := New("", 1, utils.Discard()).binaryLabel(); got != "/opt/custom/chrome" {
		t.Errorf("got %q", got)
	}
}
