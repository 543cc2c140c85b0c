package repo

import (
	"fmt"

	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"github.com/msgpo/repose/internal/models"
)

// DatabaseLock serializes update runs on one database across processes.
// Verify and query never take it; they only read.
type DatabaseLock struct {
	fl *flock.Flock
}

// LockDatabase takes an exclusive non-blocking lock on <dbPath>.lck. A
// database already locked by another process is reported as an error rather
// than waited on. The lock file stays in place after release and is reused
// by later runs.
func LockDatabase(dbPath string) (*DatabaseLock, error) {
	fl := flock.New(dbPath + ".lck")

	// TryLock only fails when the lock file cannot be opened, which means
	// the database path itself is unusable. Only a held lock is contention.
	acquired, err := fl.TryLock()
	if err != nil {
		return nil, &models.RepoError{Type: models.ErrDatabaseWrite, Err: err}
	}
	if !acquired {
		return nil, &models.RepoError{
			Type: models.ErrLocked,
			Err:  fmt.Errorf("%s is locked by another process", dbPath),
		}
	}

	return &DatabaseLock{fl: fl}, nil
}

// Release drops the lock.
func (l *DatabaseLock) Release() {
	if err := l.fl.Unlock(); err != nil {
		logrus.Warnf("Failed to release database lock: %v", err)
	}
}
