// Package output handles writing converted schemas to disk. Files are
// replaced atomically so a watcher or server never serves a half-written
// document.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// extensions maps writer format identifiers to file extensions where the
// two differ.
var extensions = map[string]string{
	"turtle":   "ttl",
	"owl":      "ttl",
	"ntriples": "nt",
	"rdfxml":   "rdf",
	"docs":     "docs.json",
	"graph":    "graph.json",
	"yml":      "yaml",
}

// ExtensionFor returns the file extension for a writer format identifier.
func ExtensionFor(formatID string) string {
	id := strings.ToLower(formatID)
	if ext, ok := extensions[id]; ok {
		return ext
	}
	return id
}

// PathFor derives the output path for an input file converted to the
// given format: the input's base name with the format's extension, inside
// dir.
func PathFor(dir, inputPath, formatID string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, stem+"."+ExtensionFor(formatID))
}

// WriteFileAtomic writes data to path via a temporary file and rename, so
// readers observe either the old content or the new, never a mix.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
