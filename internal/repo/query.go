package repo

import (
	"fmt"
	"io"
	"os"

	"github.com/msgpo/repose/internal/models"
)

// QueryDatabase writes the stored metadata for the named packages to w, or
// for every package when names is empty. Names are resolved in order and
// the first one missing from the database fails the whole batch; later
// names are not looked up.
func QueryDatabase(w io.Writer, dbPath string, names []string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return &models.RepoError{Type: models.ErrDatabaseRead, Err: err}
	}

	idx, err := LoadDatabase(dbPath)
	if err != nil {
		return &models.RepoError{Type: models.ErrDatabaseRead, Err: err}
	}

	if len(names) == 0 {
		for _, pkg := range idx.Packages() {
			printPackage(w, pkg)
		}
		return nil
	}

	for _, name := range names {
		pkg := idx.Find(name)
		if pkg == nil {
			return &models.RepoError{
				Type:    models.ErrNotFound,
				Package: name,
				Err:     fmt.Errorf("package not found"),
			}
		}
		printPackage(w, pkg)
	}

	return nil
}

func printPackage(w io.Writer, pkg *models.Package) {
	fmt.Fprintf(w, "Filename     : %s\n", pkg.Filename)
	fmt.Fprintf(w, "Name         : %s\n", pkg.Name)
	fmt.Fprintf(w, "Version      : %s\n", pkg.Version)
	fmt.Fprintf(w, "Description  : %s\n", pkg.Description)
	fmt.Fprintf(w, "Architecture : %s\n", pkg.Architecture)
	fmt.Fprintf(w, "URL          : %s\n", pkg.URL)
	fmt.Fprintf(w, "Packager     : %s\n\n", pkg.Packager)
}
