package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// filingPrefix is the filename prefix shared by every FR Y-9 input file,
// raw or archived.
const filingPrefix = "bhcf"

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery provides input file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindFilingFiles finds all delimited filing text files (bhcf*.csv) in the
// specified directory, sorted by name so processing order is deterministic.
func (d *Discovery) FindFilingFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".csv")
}

// FindArchiveFiles finds all filing archives (bhcf*.zip) in the specified
// directory, sorted by name.
func (d *Discovery) FindArchiveFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".zip")
}

// findByExtension lists regular files carrying the filing prefix and the
// given extension, both matched case-insensitively.
func (d *Discovery) findByExtension(dir, ext string) ([]FileInfo, error) {
	fullPath := d.resolveDir(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := strings.ToLower(entry.Name())
		if !strings.HasPrefix(name, filingPrefix) || !strings.HasSuffix(name, ext) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// resolveDir resolves dir against the discovery base path unless it is
// already absolute.
func (d *Discovery) resolveDir(dir string) string {
	if filepath.IsAbs(dir) || d.basePath == "" {
		return dir
	}
	return filepath.Join(d.basePath, dir)
}
