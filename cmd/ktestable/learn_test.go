package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLearnCommandTextOutput(t *testing.T) {
	path := writeDataset(t, "baba\nabba\nabcabc\ncbacba\n")

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"learn", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(buf.String(), "cluster(s)") {
		t.Errorf("output missing cluster count: %q", buf.String())
	}
}

func TestLearnCommandJSONOutput(t *testing.T) {
	path := writeDataset(t, "baba\nabba\n")

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"learn", "--format=json", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(buf.String()), "[") {
		t.Errorf("expected JSON array output, got %q", buf.String())
	}
}

func TestLearnCommandRejectsUnknownOracle(t *testing.T) {
	path := writeDataset(t, "baba\n")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"learn", "--oracle=quantum", path})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for unknown oracle")
	}
}

func TestLearnCommandMissingFile(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"learn", "/nonexistent/path/does-not-exist.txt"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing dataset file")
	}
}

func writeDataset(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dataset.txt")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}
