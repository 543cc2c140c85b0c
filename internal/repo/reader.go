package repo

import (
	"archive/tar"
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"

	"github.com/msgpo/repose/internal/index"
	"github.com/msgpo/repose/internal/models"
)

// LoadDatabase reads a database archive into an index. Entries are grouped
// by their <name>-<version>/ directory, so the desc and depends members of
// one package merge into a single record, and archive order becomes the
// index's iteration order. Stored FILENAME values are basenames; they are
// resolved against the database's own directory so records can be stat'ed.
func LoadDatabase(dbPath string) (*index.Index, error) {
	f, err := os.Open(dbPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read database %s: %w", dbPath, err)
	}
	defer gr.Close()

	packages := make(map[string]*models.Package)
	broken := make(map[string]error)
	var order []string

	tr := tar.NewReader(gr)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read database %s: %w", dbPath, err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		dir, kind := path.Split(header.Name)
		dir = strings.TrimSuffix(dir, "/")
		if dir == "" || (kind != "desc" && kind != "depends") {
			continue
		}

		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("failed to read database %s: %w", dbPath, err)
		}

		pkg := packages[dir]
		if pkg == nil {
			pkg = &models.Package{}
			packages[dir] = pkg
			order = append(order, dir)
		}
		// A scan error means the member was only partially parsed, so the
		// whole entry is dropped even if name and version came through.
		if err := parseRecord(pkg, data); err != nil {
			broken[dir] = err
		}
	}

	dbDir := filepath.Dir(dbPath)

	idx := index.New(len(order))
	for _, entry := range order {
		if err := broken[entry]; err != nil {
			logrus.Warnf("Skipping malformed database entry %s: %v", entry, err)
			continue
		}
		pkg := packages[entry]
		if pkg.Name == "" || pkg.Version == "" {
			logrus.Warnf("Skipping malformed database entry %s", entry)
			continue
		}
		if pkg.Filename != "" {
			pkg.Filename = filepath.Join(dbDir, pkg.Filename)
		}
		idx.Add(pkg)
	}

	return idx, nil
}

// parseRecord folds one %FIELD% block file into pkg. The desc and depends
// members use disjoint field names, so both go through the same parser. The
// returned error is the scanner's, for lines its buffer cannot hold.
func parseRecord(pkg *models.Package, data []byte) error {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	var field string

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, "%") && strings.HasSuffix(line, "%") {
			field = strings.Trim(line, "%")
			continue
		}
		if line == "" {
			field = ""
			continue
		}

		switch field {
		case "FILENAME":
			pkg.Filename = line
		case "NAME":
			pkg.Name = line
		case "VERSION":
			pkg.Version = line
		case "DESC":
			pkg.Description = line
		case "CSIZE":
			pkg.CompressedSize, _ = strconv.ParseInt(line, 10, 64)
		case "ISIZE":
			pkg.InstalledSize, _ = strconv.ParseInt(line, 10, 64)
		case "MD5SUM":
			pkg.MD5Sum = line
		case "SHA256SUM":
			pkg.SHA256Sum = line
		case "URL":
			pkg.URL = line
		case "LICENSE":
			pkg.Licenses = append(pkg.Licenses, line)
		case "ARCH":
			pkg.Architecture = line
		case "BUILDDATE":
			pkg.BuildDate, _ = strconv.ParseInt(line, 10, 64)
		case "PACKAGER":
			pkg.Packager = line
		case "DEPENDS":
			pkg.Depends = append(pkg.Depends, line)
		case "CONFLICTS":
			pkg.Conflicts = append(pkg.Conflicts, line)
		case "PROVIDES":
			pkg.Provides = append(pkg.Provides, line)
		case "OPTDEPENDS":
			pkg.OptDepends = append(pkg.OptDepends, line)
		case "MAKEDEPENDS":
			pkg.MakeDepends = append(pkg.MakeDepends, line)
		}
	}

	return scanner.Err()
}
