// Package bundle packs rendered cards into a single zip archive.
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/klauspost/compress/zip"
)

// Filename is the download name of a bundle.
const Filename = "All_Invitation_Cards.zip"

// ErrEmptyFilename signals an entry without a name.
var ErrEmptyFilename = errors.New("bundle entry has no filename")

// Entry is one file of a bundle.
type Entry struct {
	Filename string
	Data     []byte
}

// modified is stamped on every entry so identical input yields identical archives.
var modified = time.Date(2025, time.June, 6, 0, 0, 0, 0, time.UTC)

// Write streams entries into a zip archive on w, in order. Filenames are
// written as given; callers are expected to make them unique.
func Write(w io.Writer, entries []Entry) error {
	zw := zip.NewWriter(w)
	for i, e := range entries {
		if e.Filename == "" {
			_ = zw.Close()
			return fmt.Errorf("entry %d: %w", i, ErrEmptyFilename)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.Filename,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("create %s: %w", e.Filename, err)
		}
		if _, err := fw.Write(e.Data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("write %s: %w", e.Filename, err)
		}
	}
	return zw.Close()
}

// Build returns the zip archive of entries as bytes.
func Build(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
