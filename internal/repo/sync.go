package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/msgpo/repose/internal/alpm"
	"github.com/msgpo/repose/internal/index"
	"github.com/msgpo/repose/internal/models"
	"github.com/msgpo/repose/internal/scanner"
	"github.com/msgpo/repose/internal/signer"
	"github.com/msgpo/repose/internal/utils"
)

// Engine drives one update run: load the existing database, drop records
// whose artifacts vanished, reconcile scanned candidates against the index
// by version, and rewrite the archive when anything changed.
type Engine struct {
	cfg     *models.RepositoryConfig
	scanner scanner.Scanner
	signer  signer.Signer

	idx   *index.Index
	dirty bool

	// overridable in tests
	load   func(path string) (*models.Package, error)
	vercmp func(a, b string) int
}

// NewEngine creates an update engine. sgn may be nil for an unsigned
// repository.
func NewEngine(cfg *models.RepositoryConfig, sc scanner.Scanner, sgn signer.Signer) *Engine {
	return &Engine{
		cfg:     cfg,
		scanner: sc,
		signer:  sgn,
		load:    alpm.LoadMetadata,
		vercmp:  alpm.VerCmp,
	}
}

// Update synchronizes the database with the package files found under
// roots. With no roots only the validation pass runs, so records whose
// artifacts vanished still fall out. The database file is rewritten only
// when something actually changed.
func (e *Engine) Update(ctx context.Context, roots []string) error {
	dbPath := e.cfg.DatabasePath()

	lock, err := LockDatabase(dbPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := e.loadIndex(dbPath); err != nil {
		return err
	}

	e.validateExisting()

	if len(roots) > 0 {
		if err := e.reconcile(ctx, roots); err != nil {
			return err
		}
	}

	if !e.dirty {
		logrus.Infof("Repository %s does not need updating", dbPath)
		return e.updateAlias(dbPath)
	}

	logrus.Infof("Writing database to disk...")
	if err := e.rewrite(dbPath); err != nil {
		return err
	}
	if err := e.updateAlias(dbPath); err != nil {
		return err
	}
	if err := e.sign(dbPath); err != nil {
		return err
	}

	logrus.Infof("Repository %s updated successfully (%d packages)", dbPath, e.idx.Len())
	return nil
}

// loadIndex reads the database into memory. A database that does not exist
// yet is a fresh index that always gets written out; any other stat failure
// aborts the run rather than silently replacing the file.
func (e *Engine) loadIndex(dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return &models.RepoError{Type: models.ErrDatabaseRead, Err: err}
		}
		logrus.Warnf("Repository %s does not exist, creating", dbPath)
		e.idx = index.New(0)
		e.dirty = true
		return nil
	}

	logrus.Infof("Reading existing database %s", dbPath)
	idx, err := LoadDatabase(dbPath)
	if err != nil {
		return &models.RepoError{Type: models.ErrDatabaseRead, Err: err}
	}
	e.idx = idx
	return nil
}

// validateExisting drops records whose artifact no longer exists on disk.
// The verifier runs in shallow mode here, so a record with stale checksums
// survives until someone runs verify.
func (e *Engine) validateExisting() {
	v := &Verifier{}
	for _, pkg := range e.idx.Packages() {
		if err := v.Verify(pkg); err == nil {
			continue
		}
		logrus.Warnf("Removing %s-%s: %s is gone", pkg.Name, pkg.Version, pkg.Filename)
		e.idx.Remove(pkg)
		e.dirty = true
	}
}

// reconcile folds scanned candidates into the index. A candidate whose
// metadata cannot be read is skipped with a warning; one bad file should
// not wedge the whole refresh.
func (e *Engine) reconcile(ctx context.Context, roots []string) error {
	logrus.Infof("Scanning for new packages in %s", strings.Join(roots, " "))

	candidates, err := e.scanner.Scan(ctx, roots)
	if err != nil {
		return err
	}

	for _, path := range candidates {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		pkg, err := e.load(path)
		if err != nil {
			logrus.Warnf("Skipping %s: %v", path, err)
			continue
		}
		e.consider(pkg)
	}
	return nil
}

// consider applies the version decision table to one candidate: new names
// are added, newer versions replace the existing record, equal versions
// change nothing, and older candidates are ignored. In clean mode the
// superseded artifact is deleted from disk.
func (e *Engine) consider(candidate *models.Package) {
	existing := e.idx.Find(candidate.Name)
	if existing == nil {
		logrus.Infof("Adding %s-%s", candidate.Name, candidate.Version)
		e.idx.Add(candidate)
		e.dirty = true
		return
	}

	switch cmp := e.vercmp(candidate.Version, existing.Version); {
	case cmp > 0:
		logrus.Infof("Updating %s %s -> %s", candidate.Name, existing.Version, candidate.Version)
		if e.cfg.Clean {
			e.unlink(existing.Filename)
		}
		e.idx.Remove(existing)
		e.idx.Add(candidate)
		e.dirty = true
	case cmp < 0:
		logrus.Debugf("Ignoring %s-%s, older than %s", candidate.Name, candidate.Version, existing.Version)
		if e.cfg.Clean {
			e.unlink(candidate.Filename)
		}
	}
}

func (e *Engine) unlink(path string) {
	if path == "" {
		return
	}
	logrus.Debugf("Deleting %s", path)
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("Failed to delete %s: %v", path, err)
	}
}

// rewrite serializes the whole index into a fresh archive and atomically
// replaces the database file.
func (e *Engine) rewrite(dbPath string) error {
	w, err := NewWriter(dbPath)
	if err != nil {
		return &models.RepoError{Type: models.ErrDatabaseWrite, Err: err}
	}
	defer w.Cleanup()

	for _, pkg := range e.idx.Packages() {
		if err := w.Add(pkg); err != nil {
			return &models.RepoError{Type: models.ErrDatabaseWrite, Package: pkg.Name, Err: err}
		}
	}

	if err := w.Close(); err != nil {
		return &models.RepoError{Type: models.ErrDatabaseWrite, Err: err}
	}
	return nil
}

// updateAlias refreshes the <repo>.db symlink pacman clients fetch.
func (e *Engine) updateAlias(dbPath string) error {
	if err := utils.Symlink(filepath.Base(dbPath), e.cfg.AliasPath()); err != nil {
		return &models.RepoError{Type: models.ErrDatabaseWrite, Err: err}
	}
	return nil
}

// sign writes a detached signature next to the database and mirrors it for
// the alias symlink.
func (e *Engine) sign(dbPath string) error {
	if e.signer == nil {
		return nil
	}

	data, err := os.ReadFile(dbPath)
	if err != nil {
		return &models.RepoError{Type: models.ErrSigning, Err: err}
	}

	sig, err := e.signer.SignDetached(data)
	if err != nil {
		return &models.RepoError{Type: models.ErrSigning, Err: err}
	}

	if err := utils.WriteFile(dbPath+".sig", sig, 0644); err != nil {
		return &models.RepoError{Type: models.ErrSigning, Err: err}
	}
	if err := utils.Symlink(filepath.Base(dbPath)+".sig", e.cfg.AliasPath()+".sig"); err != nil {
		return &models.RepoError{Type: models.ErrSigning, Err: err}
	}

	logrus.Infof("Signed database %s", dbPath)
	return nil
}
