package index

import "github.com/msgpo/repose/internal/models"

// Index is a name-keyed collection of package records with insertion-order
// iteration. It is owned by a single run and is not safe for concurrent use.
type Index struct {
	byName map[string]*models.Package
	order  []string
}

// New creates an empty index sized for at least hint entries. The hint is
// advisory; the index grows as needed.
func New(hint int) *Index {
	if hint < 0 {
		hint = 0
	}
	return &Index{
		byName: make(map[string]*models.Package, hint),
		order:  make([]string, 0, hint),
	}
}

// Find returns the current record for name, or nil if none exists.
func (idx *Index) Find(name string) *models.Package {
	return idx.byName[name]
}

// Add inserts pkg, replacing any existing record with the same name. A
// replaced record keeps its position in the iteration order; use Remove
// followed by Add to move a package to the tail.
func (idx *Index) Add(pkg *models.Package) {
	if _, ok := idx.byName[pkg.Name]; !ok {
		idx.order = append(idx.order, pkg.Name)
	}
	idx.byName[pkg.Name] = pkg
}

// Remove deletes the entry matching pkg's name. Removing an absent name is
// a no-op.
func (idx *Index) Remove(pkg *models.Package) {
	if _, ok := idx.byName[pkg.Name]; !ok {
		return
	}
	delete(idx.byName, pkg.Name)
	for i, name := range idx.order {
		if name == pkg.Name {
			idx.order = append(idx.order[:i], idx.order[i+1:]...)
			break
		}
	}
}

// Packages returns a snapshot of all current records in insertion order.
// Later mutations of the index do not affect a previously taken snapshot.
func (idx *Index) Packages() []*models.Package {
	pkgs := make([]*models.Package, 0, len(idx.order))
	for _, name := range idx.order {
		pkgs = append(pkgs, idx.byName[name])
	}
	return pkgs
}

// Len returns the number of records currently held.
func (idx *Index) Len() int {
	return len(idx.byName)
}
