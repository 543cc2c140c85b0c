package alpm

import (
	"archive/tar"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/msgpo/repose/internal/models"
)

// LoadMetadata reads the .PKGINFO embedded in a package archive and returns
// the package record it describes. The compressed size comes from the file
// on disk; checksums stay empty because they are recomputed whenever the
// package is serialized into a database.
func LoadMetadata(path string) (*models.Package, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	data, err := extractPKGINFO(path)
	if err != nil {
		return nil, err
	}

	pkg, err := parsePKGINFO(data)
	if err != nil {
		return nil, err
	}

	if pkg.Name == "" {
		return nil, fmt.Errorf("%s: .PKGINFO has no pkgname", filepath.Base(path))
	}
	if pkg.Version == "" {
		return nil, fmt.Errorf("%s: .PKGINFO has no pkgver", filepath.Base(path))
	}

	pkg.Filename = path
	pkg.CompressedSize = info.Size()

	return pkg, nil
}

// extractPKGINFO opens the archive with a decompressor chosen from the
// filename suffix and returns the contents of its .PKGINFO entry.
func extractPKGINFO(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var tarReader *tar.Reader

	switch name := strings.ToLower(path); {
	case strings.HasSuffix(name, ".pkg.tar.zst"):
		zr, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		tarReader = tar.NewReader(zr)
	case strings.HasSuffix(name, ".pkg.tar.xz"):
		xr, err := xz.NewReader(f)
		if err != nil {
			return nil, err
		}
		tarReader = tar.NewReader(xr)
	case strings.HasSuffix(name, ".pkg.tar.gz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		tarReader = tar.NewReader(gr)
	case strings.HasSuffix(name, ".pkg.tar"):
		tarReader = tar.NewReader(f)
	default:
		return nil, fmt.Errorf("unsupported package format: %s", filepath.Base(path))
	}

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if header.Name == ".PKGINFO" {
			return io.ReadAll(tarReader)
		}
	}

	return nil, fmt.Errorf("%s: no .PKGINFO entry", filepath.Base(path))
}

// parsePKGINFO parses the key = value lines written by makepkg. Comments
// and unknown keys are ignored; the repeatable keys accumulate.
func parsePKGINFO(data []byte) (*models.Package, error) {
	pkg := &models.Package{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch key {
		case "pkgname":
			pkg.Name = value
		case "pkgver":
			pkg.Version = value
		case "pkgdesc":
			pkg.Description = value
		case "url":
			pkg.URL = value
		case "arch":
			pkg.Architecture = value
		case "packager":
			pkg.Packager = value
		case "builddate":
			pkg.BuildDate, _ = strconv.ParseInt(value, 10, 64)
		case "size":
			pkg.InstalledSize, _ = strconv.ParseInt(value, 10, 64)
		case "license":
			pkg.Licenses = append(pkg.Licenses, value)
		case "depend":
			pkg.Depends = append(pkg.Depends, value)
		case "conflict":
			pkg.Conflicts = append(pkg.Conflicts, value)
		case "provides":
			pkg.Provides = append(pkg.Provides, value)
		case "optdepend":
			pkg.OptDepends = append(pkg.OptDepends, value)
		case "makedepend":
			pkg.MakeDepends = append(pkg.MakeDepends, value)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return pkg, nil
}
