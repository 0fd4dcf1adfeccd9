package edl

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/edlkit/edl2moseq/internal/config"
	"github.com/edlkit/edl2moseq/internal/logger"
)

// Classification is the EDL node type declared by a manifest.
type Classification int

const (
	Dataset Classification = iota
	Group
	Collection
	GenericUnit
)

func (c Classification) String() string {
	switch c {
	case Dataset:
		return "EDLDataset"
	case Group:
		return "EDLGroup"
	case Collection:
		return "EDLCollection"
	case GenericUnit:
		return "EDLUnit"
	}
	return "unknown"
}

type manifest struct {
	Type string `toml:"type"`
}

// Classify reads <path>/manifest.toml and returns the declared EDL type.
// The path must be a directory holding a parseable manifest with a
// non-empty "type" key.
func Classify(path string) (Classification, error) {
	log := logger.Log.WithField("scope", "edl classify")

	fi, err := os.Stat(path)
	if err != nil || !fi.IsDir() {
		return 0, NotFound("the path %q is not a directory", path)
	}

	manifestPath := filepath.Join(path, config.ManifestFile)
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return 0, NotFound("no %s file found in %q", config.ManifestFile, path)
	}

	var m manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return 0, ParseErr("error parsing "+config.ManifestFile, err)
	}
	log.Debugf("manifest type: %q", m.Type)

	switch m.Type {
	case "dataset":
		return Dataset, nil
	case "group":
		return Group, nil
	case "collection":
		return Collection, nil
	case "":
		return 0, Validation("unknown or invalid EDL type in manifest: %q", m.Type)
	default:
		return GenericUnit, nil
	}
}
