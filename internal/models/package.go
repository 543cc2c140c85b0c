package models

// Package represents one package's metadata as tracked by the repository
// database. At most one Package exists per Name within an index; Version
// ordering is decided by the alpm comparison rules, never lexically.
type Package struct {
	// Identity
	Name    string
	Version string

	// Provenance: path to the backing artifact on disk. Databases persist
	// only the basename; readers resolve it against the database directory.
	Filename string

	// Descriptive metadata from .PKGINFO
	Description  string
	URL          string
	Architecture string
	Packager     string
	BuildDate    int64

	// Sizes: CompressedSize is the artifact file size (CSIZE),
	// InstalledSize comes from the .PKGINFO "size" field (ISIZE).
	CompressedSize int64
	InstalledSize  int64

	// Stored checksums. These are what the database recorded; they are
	// recomputed from the artifact whenever the database is rewritten.
	MD5Sum    string
	SHA256Sum string

	// Relations, each in write order with duplicates permitted
	Licenses    []string
	Depends     []string
	Conflicts   []string
	Provides    []string
	OptDepends  []string
	MakeDepends []string
}
