package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBuiltInLevels(t *testing.T) {
	levels, err := collectLevels(nil)
	if err != nil {
		t.Fatalf("collectLevels failed: %v", err)
	}
	if len(levels) < 2 {
		t.Fatalf("Expected at least 2 built-in levels, got %d", len(levels))
	}

	var out bytes.Buffer
	if err := checkLevels(&out, levels); err != nil {
		t.Fatalf("checkLevels failed: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), "crypt_entrance") {
		t.Errorf("Expected summary to mention crypt_entrance, got:\n%s", out.String())
	}
}

func TestCheckReportsBrokenStairs(t *testing.T) {
	dir := t.TempDir()
	level := `{"width": 3, "height": 1, "tiles": [0, 7, 0], "stairs": {"down": "nowhere"}}`
	if err := os.WriteFile(filepath.Join(dir, "lonely.json"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}

	levels, err := collectLevels([]string{dir})
	if err != nil {
		t.Fatalf("collectLevels failed: %v", err)
	}

	var out bytes.Buffer
	err = checkLevels(&out, levels)
	if err == nil {
		t.Fatal("Expected broken stairs error")
	}
	if !strings.Contains(out.String(), "MISSING") {
		t.Errorf("Expected MISSING in output, got:\n%s", out.String())
	}
}

func TestCheckRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"width": 2, "height": 2, "tiles": [0]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := collectLevels([]string{path}); err == nil {
		t.Error("Expected validation error for short tiles array")
	}
}
