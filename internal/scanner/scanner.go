package scanner

import (
	"context"
	"path/filepath"
	"strings"
)

// Scanner finds package archives beneath a set of filesystem roots.
type Scanner interface {
	Scan(ctx context.Context, roots []string) ([]string, error)
}

// MatchesPackage reports whether the basename of path looks like a package
// archive. Matching is case insensitive, equivalent to a *.pkg.tar* glob.
func MatchesPackage(path string) bool {
	name := strings.ToLower(filepath.Base(path))
	ok, _ := filepath.Match("*.pkg.tar*", name)
	return ok
}
