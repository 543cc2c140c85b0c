package models

// RepositoryConfig contains configuration for one repose invocation
type RepositoryConfig struct {
	// RepoName is the repository name the database files derive from.
	// It may carry a directory prefix; the basename is the repo name.
	RepoName string

	// Clean removes superseded package files from disk during update
	Clean bool

	// Signing (optional, update only)
	GPGKeyPath    string
	GPGPassphrase string
}

// DatabasePath returns the path of the compressed database archive.
func (c *RepositoryConfig) DatabasePath() string {
	return c.RepoName + ".db.tar.gz"
}

// AliasPath returns the companion alias path pointing at the database.
func (c *RepositoryConfig) AliasPath() string {
	return c.RepoName + ".db"
}
