package repo

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/msgpo/repose/internal/index"
	"github.com/msgpo/repose/internal/models"
	"github.com/msgpo/repose/internal/utils"
)

// Verifier checks index records against the package files they describe.
// The shallow pass only requires the artifact to exist; the deep pass also
// recomputes both checksums and compares them with the stored values.
type Verifier struct {
	Deep bool
}

// Verify checks a single record and reports the first problem found.
func (v *Verifier) Verify(pkg *models.Package) error {
	if _, err := os.Stat(pkg.Filename); err != nil {
		return &models.RepoError{
			Type:    models.ErrVerify,
			Package: pkg.Name,
			Err:     fmt.Errorf("couldn't find %s", pkg.Filename),
		}
	}

	if !v.Deep {
		return nil
	}

	sums, err := utils.CalculateChecksums(pkg.Filename)
	if err != nil {
		return &models.RepoError{Type: models.ErrVerify, Package: pkg.Name, Err: err}
	}
	if pkg.MD5Sum != sums.MD5 {
		return &models.RepoError{
			Type:    models.ErrVerify,
			Package: pkg.Name,
			Err:     fmt.Errorf("md5 sum for %s is different", pkg.Filename),
		}
	}
	if pkg.SHA256Sum != sums.SHA256 {
		return &models.RepoError{
			Type:    models.ErrVerify,
			Package: pkg.Name,
			Err:     fmt.Errorf("sha256 sum for %s is different", pkg.Filename),
		}
	}

	return nil
}

// VerifyIndex checks every record in the index. Failures are logged as
// they are found; the returned error aggregates the count so one broken
// package does not mask the rest.
func (v *Verifier) VerifyIndex(idx *index.Index) error {
	failed := 0
	for _, pkg := range idx.Packages() {
		if err := v.Verify(pkg); err != nil {
			logrus.Warnf("%v", err)
			failed++
		}
	}

	if failed > 0 {
		return &models.RepoError{
			Type: models.ErrVerify,
			Err:  fmt.Errorf("%d of %d packages failed verification", failed, idx.Len()),
		}
	}
	return nil
}

// VerifyDatabase loads the database at dbPath and deep-verifies every
// record against the artifacts on disk. The database is never modified.
func VerifyDatabase(dbPath string) error {
	if _, err := os.Stat(dbPath); err != nil {
		return &models.RepoError{Type: models.ErrDatabaseRead, Err: err}
	}

	idx, err := LoadDatabase(dbPath)
	if err != nil {
		return &models.RepoError{Type: models.ErrDatabaseRead, Err: err}
	}

	v := &Verifier{Deep: true}
	if err := v.VerifyIndex(idx); err != nil {
		return err
	}

	logrus.Infof("Repository %s is valid (%d packages)", dbPath, idx.Len())
	return nil
}
