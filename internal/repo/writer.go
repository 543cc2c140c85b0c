package repo

import (
	"archive/tar"
	"bytes"
	"fmt"
	"time"

	"github.com/google/renameio"
	"github.com/klauspost/compress/gzip"

	"github.com/msgpo/repose/internal/models"
	"github.com/msgpo/repose/internal/utils"
)

// Writer streams packages into a gzip compressed tar database. The archive
// is assembled in a temporary file and only renamed over the destination by
// Close, so readers never observe a half-written database.
type Writer struct {
	pending *renameio.PendingFile
	gz      *gzip.Writer
	tw      *tar.Writer
	buf     bytes.Buffer
	now     time.Time
}

// NewWriter starts a new database at path.
func NewWriter(path string) (*Writer, error) {
	pending, err := renameio.TempFile("", path)
	if err != nil {
		return nil, err
	}
	if err := pending.Chmod(0644); err != nil {
		pending.Cleanup()
		return nil, err
	}

	gz := gzip.NewWriter(pending)
	return &Writer{
		pending: pending,
		gz:      gz,
		tw:      tar.NewWriter(gz),
		now:     time.Now().Truncate(time.Second),
	}, nil
}

// Add appends the desc and depends entries for pkg. Checksums and the
// compressed size are recomputed from the artifact on disk here, never
// trusted from a previously stored value, and pkg is updated with the
// fresh values.
func (w *Writer) Add(pkg *models.Package) error {
	sums, err := utils.CalculateChecksums(pkg.Filename)
	if err != nil {
		return fmt.Errorf("failed to checksum %s: %w", pkg.Filename, err)
	}

	pkg.CompressedSize = sums.Size
	pkg.MD5Sum = sums.MD5
	pkg.SHA256Sum = sums.SHA256

	w.buf.Reset()
	WriteDesc(&w.buf, pkg)
	if err := w.writeEntry(entryPath(pkg, "desc"), w.buf.Bytes()); err != nil {
		return err
	}

	w.buf.Reset()
	WriteDepends(&w.buf, pkg)
	return w.writeEntry(entryPath(pkg, "depends"), w.buf.Bytes())
}

func (w *Writer) writeEntry(name string, data []byte) error {
	hdr := &tar.Header{
		Name:       name,
		Mode:       0644,
		Size:       int64(len(data)),
		Typeflag:   tar.TypeReg,
		ModTime:    w.now,
		AccessTime: w.now,
		ChangeTime: w.now,
		Format:     tar.FormatPAX,
	}
	if err := w.tw.WriteHeader(hdr); err != nil {
		return err
	}
	_, err := w.tw.Write(data)
	return err
}

// Close flushes the archive and atomically moves it into place.
func (w *Writer) Close() error {
	if err := w.tw.Close(); err != nil {
		return err
	}
	if err := w.gz.Close(); err != nil {
		return err
	}
	return w.pending.CloseAtomicallyReplace()
}

// Cleanup discards the temporary file if the writer was never Closed into
// place. It is safe to defer next to a successful Close.
func (w *Writer) Cleanup() {
	w.pending.Cleanup()
}

func entryPath(pkg *models.Package, kind string) string {
	return fmt.Sprintf("%s-%s/%s", pkg.Name, pkg.Version, kind)
}
