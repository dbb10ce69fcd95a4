// Package bundle archives rendered chart images into a timestamped zip.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/carbocation/pfx"
)

// Timestamp layout embedded in archive names, e.g. plots_20260826-153000.zip
const stampLayout = "20060102-150405"

// WriteZip bundles the named files into destDir/<prefix>_<timestamp>.zip and
// returns the archive path. Entries are stored under their base names. A
// missing or unreadable input file aborts the archive with an error naming
// that path.
func WriteZip(destDir, prefix string, paths []string) (string, error) {
	if len(paths) == 0 {
		return "", fmt.Errorf("zip: no files to archive")
	}
	if prefix == "" {
		prefix = "plots"
	}

	archivePath := filepath.Join(destDir, fmt.Sprintf("%s_%s.zip", prefix, time.Now().Format(stampLayout)))

	outFile, err := os.Create(archivePath)
	if err != nil {
		return "", pfx.Err(err)
	}
	defer outFile.Close()

	zw := zip.NewWriter(outFile)

	for _, path := range paths {
		if err := addFile(zw, path); err != nil {
			zw.Close()
			return "", fmt.Errorf("zip: adding %s: %w", path, err)
		}
	}

	if err := zw.Close(); err != nil {
		return "", pfx.Err(err)
	}

	return archivePath, nil
}

func addFile(zw *zip.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return pfx.Err(err)
	}
	defer f.Close()

	w, err := zw.Create(filepath.Base(path))
	if err != nil {
		return pfx.Err(err)
	}

	if _, err := io.Copy(w, f); err != nil {
		return pfx.Err(err)
	}

	return nil
}
