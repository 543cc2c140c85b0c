package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCalculateChecksums(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "repose-checksum-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "data")
	if err := os.WriteFile(path, []byte("hello world"), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	sums, err := CalculateChecksums(path)
	if err != nil {
		t.Fatalf("CalculateChecksums failed: %v", err)
	}

	if sums.MD5 != "5eb63bbbe01eeed093cb22bb8f5acdc3" {
		t.Errorf("MD5 = %s", sums.MD5)
	}
	if sums.SHA256 != "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9" {
		t.Errorf("SHA256 = %s", sums.SHA256)
	}
	if sums.Size != int64(len("hello world")) {
		t.Errorf("Size = %d, want %d", sums.Size, len("hello world"))
	}
}

func TestCalculateChecksumsMissingFile(t *testing.T) {
	if _, err := CalculateChecksums("/nonexistent/file"); err == nil {
		t.Error("Expected error for missing file")
	}
}
