package repo

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/msgpo/repose/internal/models"
)

func TestQuerySinglePackage(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "repose-query-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := buildTestPackage(t, tmpDir, "foo", "1.0-1")
	cfg := testConfig(tmpDir)
	runUpdate(t, cfg, tmpDir)

	var buf bytes.Buffer
	if err := QueryDatabase(&buf, cfg.DatabasePath(), []string{"foo"}); err != nil {
		t.Fatalf("QueryDatabase failed: %v", err)
	}

	want := fmt.Sprintf(`Filename     : %s
Name         : foo
Version      : 1.0-1
Description  : Test package foo
Architecture : x86_64
URL          : https://example.com/foo
Packager     : Test Packager <test@example.com>

`, path)
	if got := buf.String(); got != want {
		t.Errorf("Query output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestQueryAllPackages(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "repose-query-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	buildTestPackage(t, tmpDir, "foo", "1.0-1")
	buildTestPackage(t, tmpDir, "bar", "2.0-1")
	cfg := testConfig(tmpDir)
	runUpdate(t, cfg, tmpDir)

	var buf bytes.Buffer
	if err := QueryDatabase(&buf, cfg.DatabasePath(), nil); err != nil {
		t.Fatalf("QueryDatabase failed: %v", err)
	}

	out := buf.String()
	if got := strings.Count(out, "Name         : "); got != 2 {
		t.Errorf("Query printed %d packages, want 2", got)
	}

	// Database order is preserved: bar was scanned first
	barAt := strings.Index(out, "Name         : bar")
	fooAt := strings.Index(out, "Name         : foo")
	if barAt == -1 || fooAt == -1 || barAt > fooAt {
		t.Errorf("Query order wrong:\n%s", out)
	}
}

func TestQueryHaltsOnFirstMiss(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "repose-query-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	buildTestPackage(t, tmpDir, "foo", "1.0-1")
	buildTestPackage(t, tmpDir, "bar", "2.0-1")
	cfg := testConfig(tmpDir)
	runUpdate(t, cfg, tmpDir)

	var buf bytes.Buffer
	err = QueryDatabase(&buf, cfg.DatabasePath(), []string{"bar", "missing", "foo"})

	var repoErr *models.RepoError
	if !errors.As(err, &repoErr) || repoErr.Type != models.ErrNotFound {
		t.Fatalf("QueryDatabase = %v, want ErrNotFound", err)
	}
	if repoErr.Package != "missing" {
		t.Errorf("Package = %q, want missing", repoErr.Package)
	}

	// Names before the miss are printed, names after it are not
	out := buf.String()
	if !strings.Contains(out, "Name         : bar") {
		t.Errorf("Package before the miss was not printed:\n%s", out)
	}
	if strings.Contains(out, "Name         : foo") {
		t.Errorf("Package after the miss was printed:\n%s", out)
	}
}

func TestQueryMissingDatabase(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "repose-query-test-")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	var buf bytes.Buffer
	err = QueryDatabase(&buf, tmpDir+"/missing.db.tar.gz", nil)

	var repoErr *models.RepoError
	if !errors.As(err, &repoErr) || repoErr.Type != models.ErrDatabaseRead {
		t.Errorf("QueryDatabase = %v, want ErrDatabaseRead", err)
	}
}
