package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

// ManifestName is the file Run writes next to the icons.
const ManifestName = "manifest.json"

// Manifest lists the generated icons. Icons is shaped like the "icons" block of
// a browser extension manifest so it can be pasted in as is.
type Manifest struct {
	Icons map[string]string `json:"icons"`
	Files []ManifestEntry   `json:"files"`
}

// ManifestEntry represents one generated file.
type ManifestEntry struct {
	Size   int    `json:"size"`
	Format string `json:"format"`
	File   string `json:"file"`
	Bytes  int64  `json:"bytes"`
}

// BuildManifest groups results by size. Only PNG files go into Icons.
func BuildManifest(results []Result) Manifest {
	m := Manifest{Icons: make(map[string]string)}
	for _, r := range results {
		name := filepath.Base(r.Path)
		if r.Format == "png" {
			m.Icons[strconv.Itoa(r.Size)] = name
		}
		m.Files = append(m.Files, ManifestEntry{
			Size:   r.Size,
			Format: r.Format,
			File:   name,
			Bytes:  r.Bytes,
		})
	}
	sort.SliceStable(m.Files, func(i, j int) bool { return m.Files[i].Size < m.Files[j].Size })
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, results []Result) error {
	data, err := json.MarshalIndent(BuildManifest(results), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
