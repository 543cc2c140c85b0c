package index

import (
	"testing"

	"github.com/msgpo/repose/internal/models"
)

func pkg(name, version string) *models.Package {
	return &models.Package{Name: name, Version: version}
}

func TestAddAndFind(t *testing.T) {
	idx := New(0)

	if got := idx.Find("foo"); got != nil {
		t.Errorf("Find on empty index = %v, want nil", got)
	}

	idx.Add(pkg("foo", "1.0-1"))
	idx.Add(pkg("bar", "2.0-1"))

	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}

	foo := idx.Find("foo")
	if foo == nil || foo.Version != "1.0-1" {
		t.Errorf("Find(foo) = %v, want version 1.0-1", foo)
	}
	if idx.Find("baz") != nil {
		t.Error("Find(baz) should be nil")
	}
}

func TestAddReplacesInPlace(t *testing.T) {
	// Replacing an existing entry must keep its position in the order,
	// not move it to the tail.
	idx := New(0)
	idx.Add(pkg("a", "1"))
	idx.Add(pkg("b", "1"))
	idx.Add(pkg("c", "1"))

	idx.Add(pkg("b", "2"))

	if idx.Len() != 3 {
		t.Fatalf("Len = %d, want 3", idx.Len())
	}
	if got := idx.Find("b"); got == nil || got.Version != "2" {
		t.Errorf("Find(b) = %v, want version 2", got)
	}

	want := []string{"a", "b", "c"}
	for i, p := range idx.Packages() {
		if p.Name != want[i] {
			t.Errorf("Packages()[%d] = %s, want %s", i, p.Name, want[i])
		}
	}
}

func TestRemove(t *testing.T) {
	idx := New(0)
	idx.Add(pkg("a", "1"))
	idx.Add(pkg("b", "1"))
	idx.Add(pkg("c", "1"))

	idx.Remove(idx.Find("b"))

	if idx.Len() != 2 {
		t.Fatalf("Len = %d, want 2", idx.Len())
	}
	if idx.Find("b") != nil {
		t.Error("Find(b) should be nil after Remove")
	}

	want := []string{"a", "c"}
	for i, p := range idx.Packages() {
		if p.Name != want[i] {
			t.Errorf("Packages()[%d] = %s, want %s", i, p.Name, want[i])
		}
	}

	// Removing an absent name is a no-op
	idx.Remove(pkg("missing", "1"))
	if idx.Len() != 2 {
		t.Errorf("Len after removing absent name = %d, want 2", idx.Len())
	}
}

func TestRemoveAndReadd(t *testing.T) {
	// A package removed and added again goes to the tail. This is how
	// upgraded packages end up last in the database.
	idx := New(0)
	idx.Add(pkg("a", "1"))
	idx.Add(pkg("b", "1"))
	idx.Add(pkg("c", "1"))

	idx.Remove(idx.Find("a"))
	idx.Add(pkg("a", "2"))

	want := []string{"b", "c", "a"}
	pkgs := idx.Packages()
	if len(pkgs) != len(want) {
		t.Fatalf("Len = %d, want %d", len(pkgs), len(want))
	}
	for i, p := range pkgs {
		if p.Name != want[i] {
			t.Errorf("Packages()[%d] = %s, want %s", i, p.Name, want[i])
		}
	}
}

func TestPackagesSnapshot(t *testing.T) {
	idx := New(0)
	idx.Add(pkg("a", "1"))

	snapshot := idx.Packages()
	idx.Add(pkg("b", "1"))

	if len(snapshot) != 1 {
		t.Errorf("Snapshot grew with the index: len = %d, want 1", len(snapshot))
	}
}
