// Package files discovers measurement files on disk and resolves metadata
// paths. Path discovery is deliberately separate from the loader: the loader
// takes an already-resolved path, and how that path was found (explicit
// argument, sibling convention, an interactive picker in some wrapper tool)
// stays pluggable.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo describes a discovered file.
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery lists measurement files under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a discovery instance rooted at basePath.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindMeasurementFiles finds all loadable data files (.db, .csv) in the
// given directory, sorted by modification time, oldest first.
func (d *Discovery) FindMeasurementFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".db", ".csv")
}

// FindFigureFiles finds rendered figure images (.png) for report building.
func (d *Discovery) FindFigureFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".png")
}

func (d *Discovery) findByExtension(dir string, exts ...string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		matched := false
		for _, want := range exts {
			if ext == want {
				matched = true
				break
			}
		}
		if !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].ModTime.Before(files[j].ModTime)
	})
	return files, nil
}
