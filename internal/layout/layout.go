package layout

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/edlkit/edl2moseq/internal/config"
	"github.com/edlkit/edl2moseq/internal/edl"
)

// Paths are the three source files a collection must provide.
type Paths struct {
	Metadata string
	Video    string
	Tsync    string
}

// ResolveCollection locates the depth sensor's metadata, video and
// time-sync files inside a collection root by the fixed Syntalos naming
// convention. os.ReadDir returns entries sorted by filename, so when a
// directory unexpectedly holds several candidates the pick is stable.
func ResolveCollection(root string) (Paths, error) {
	var p Paths

	p.Metadata = filepath.Join(root, config.SensorName, config.MetadataFile)
	if _, err := os.Stat(p.Metadata); err != nil {
		return p, edl.NotFound("no %s found at %q", config.MetadataFile, p.Metadata)
	}

	sensorDir := filepath.Join(root, config.VideosDir, config.SensorName)
	entries, err := os.ReadDir(sensorDir)
	if err != nil {
		return p, edl.NotFound("no sensor video directory at %q", sensorDir)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if p.Video == "" && hasVideoExt(name) {
			p.Video = filepath.Join(sensorDir, name)
		}
		if p.Tsync == "" && strings.HasSuffix(name, config.TsyncSuffix) {
			p.Tsync = filepath.Join(sensorDir, name)
		}
	}

	if p.Video == "" {
		return p, edl.NotFound("no video file (.avi, .mkv, .mp4) found in %q", sensorDir)
	}
	if p.Tsync == "" {
		return p, edl.NotFound("no %s file found in %q", config.TsyncSuffix, sensorDir)
	}
	return p, nil
}

func hasVideoExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range config.VideoExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
