package ingestion

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jonathan/resume-screener/internal/types"
)

// maxEntryBytes bounds the decompressed size of a single archive entry.
const maxEntryBytes = 50 << 20

// IsArchive reports whether name looks like a ZIP archive.
func IsArchive(name string) bool {
	return strings.EqualFold(path.Ext(name), ".zip")
}

// ExpandArchive returns one in-memory source per regular file in a ZIP
// archive accepted by keep, in archive order. Directories and macOS
// resource-fork entries are skipped. Entry names keep their archive path.
func ExpandArchive(name string, data []byte, keep func(entry string) bool) ([]types.Source, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", name, err)
	}

	var out []types.Source
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if keep != nil && !keep(f.Name) {
			continue
		}

		content, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s from archive %s: %w", f.Name, name, err)
		}
		out = append(out, types.Source{Name: f.Name, Path: name + "!" + f.Name, Data: content})
	}
	return out, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, maxEntryBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxEntryBytes {
		return nil, fmt.Errorf("entry exceeds %d bytes", maxEntryBytes)
	}
	return data, nil
}
