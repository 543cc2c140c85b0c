package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// Checksums contains the two content checksums the database format stores,
// plus the file size observed while computing them.
type Checksums struct {
	MD5    string
	SHA256 string
	Size   int64
}

// CalculateChecksums calculates both checksums for a file in a single pass
func CalculateChecksums(path string) (*Checksums, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	md5Hash := md5.New()
	sha256Hash := sha256.New()

	// Stream the file through both hashes at once
	multiWriter := io.MultiWriter(md5Hash, sha256Hash)
	if _, err := io.Copy(multiWriter, f); err != nil {
		return nil, err
	}

	return &Checksums{
		MD5:    hex.EncodeToString(md5Hash.Sum(nil)),
		SHA256: hex.EncodeToString(sha256Hash.Sum(nil)),
		Size:   info.Size(),
	}, nil
}
