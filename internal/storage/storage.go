package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/schollz/progressbar/v3"

	"github.com/edlkit/edl2moseq/internal/config"
	"github.com/edlkit/edl2moseq/internal/logger"
)

// CreateDir makes the destination directory, create-if-absent. Running
// a conversion twice against the same collection just overwrites the
// previous output.
func CreateDir(path string) error {
	return os.MkdirAll(path, config.OutDirPerm)
}

// CopyFile copies src to dst with a progress bar sized to the source
// file. Depth recordings can run to gigabytes, everything else here is
// tiny, so the caller decides whether a bar is worth showing.
func CopyFile(src, dst string, showProgress bool) error {
	log := logger.Log.WithField("scope", "storage")

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("error opening %s: %w", src, err)
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return fmt.Errorf("error getting file info for %s: %w", src, err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.OutFilePerm)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", dst, err)
	}
	defer out.Close()

	var w io.Writer = out
	if showProgress {
		bar := progressbar.DefaultBytes(fi.Size(), "Copying "+filepath.Base(src)+"... ")
		w = io.MultiWriter(out, bar)
	}

	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("error copying %s to %s: %w", src, dst, err)
	}
	log.Debugf("copied %s -> %s (%d bytes)", src, dst, fi.Size())
	return nil
}

// WriteTimestamps writes one timestamp per line. strconv formats with
// '.' regardless of locale, and -1 precision picks the shortest
// representation that round-trips, matching how the values were decoded.
func WriteTimestamps(path string, timestamps []float64) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, config.OutFilePerm)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 0, 32)
	for _, ts := range timestamps {
		buf = strconv.AppendFloat(buf[:0], ts, 'f', -1, 64)
		buf = append(buf, '\n')
		if _, err := f.Write(buf); err != nil {
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}
	return nil
}
