package repo

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/msgpo/repose/internal/models"
)

// WriteDesc renders the desc member for a package: scalar metadata, sizes
// and checksums, in the fixed field order pacman tools expect. FILENAME is
// stored as a basename so the database stays relocatable.
func WriteDesc(buf *bytes.Buffer, pkg *models.Package) {
	filename := pkg.Filename
	if filename != "" {
		filename = filepath.Base(filename)
	}

	writeField(buf, "FILENAME", filename)
	writeField(buf, "NAME", pkg.Name)
	writeField(buf, "VERSION", pkg.Version)
	writeField(buf, "DESC", pkg.Description)
	writeInt(buf, "CSIZE", pkg.CompressedSize)
	writeInt(buf, "ISIZE", pkg.InstalledSize)
	writeField(buf, "MD5SUM", pkg.MD5Sum)
	writeField(buf, "SHA256SUM", pkg.SHA256Sum)
	writeField(buf, "URL", pkg.URL)
	writeList(buf, "LICENSE", pkg.Licenses)
	writeField(buf, "ARCH", pkg.Architecture)
	writeInt(buf, "BUILDDATE", pkg.BuildDate)
	writeField(buf, "PACKAGER", pkg.Packager)
}

// WriteDepends renders the depends member: the relation lists.
func WriteDepends(buf *bytes.Buffer, pkg *models.Package) {
	writeList(buf, "DEPENDS", pkg.Depends)
	writeList(buf, "CONFLICTS", pkg.Conflicts)
	writeList(buf, "PROVIDES", pkg.Provides)
	writeList(buf, "OPTDEPENDS", pkg.OptDepends)
	writeList(buf, "MAKEDEPENDS", pkg.MakeDepends)
}

func writeField(buf *bytes.Buffer, header, value string) {
	fmt.Fprintf(buf, "%%%s%%\n%s\n\n", header, value)
}

func writeInt(buf *bytes.Buffer, header string, value int64) {
	fmt.Fprintf(buf, "%%%s%%\n%d\n\n", header, value)
}

func writeList(buf *bytes.Buffer, header string, values []string) {
	fmt.Fprintf(buf, "%%%s%%\n", header)
	for _, v := range values {
		fmt.Fprintf(buf, "%s\n", v)
	}
	buf.WriteByte('\n')
}
