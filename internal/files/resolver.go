package files

import (
	"os"
	"path/filepath"
	"strings"
)

// MetadataResolver maps a data-file path to its metadata path. An empty
// result means no metadata is available, which the loader treats as a
// warning, not an error.
type MetadataResolver interface {
	Resolve(dataPath string) string
}

// ExplicitResolver always returns a fixed metadata path.
type ExplicitResolver struct {
	Path string
}

func (r ExplicitResolver) Resolve(string) string {
	return r.Path
}

// SiblingResolver probes for a same-stem .json file next to the data file;
// an empty file does not count.
type SiblingResolver struct{}

func (SiblingResolver) Resolve(dataPath string) string {
	stem := strings.TrimSuffix(dataPath, filepath.Ext(dataPath))
	candidate := stem + ".json"
	info, err := os.Stat(candidate)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return ""
	}
	return candidate
}

// ChainResolver tries each resolver in order and returns the first hit.
type ChainResolver []MetadataResolver

func (c ChainResolver) Resolve(dataPath string) string {
	for _, r := range c {
		if p := r.Resolve(dataPath); p != "" {
			return p
		}
	}
	return ""
}
