package inspect

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var iconName = regexp.MustCompile(`^icon(\d+)\.([a-z0-9]+)$`)

// Index maps icon sizes to the files found for them, keyed by format.
type Index struct {
	entries map[int]map[string]string // size → format → path
}

// BuildIndex scans dir (not recursively) for files named icon<N>.<ext>.
func BuildIndex(dir string) (*Index, error) {
	idx := &Index{entries: make(map[int]map[string]string)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := iconName.FindStringSubmatch(strings.ToLower(e.Name()))
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if idx.entries[n] == nil {
			idx.entries[n] = make(map[string]string)
		}
		idx.entries[n][m[2]] = filepath.Join(dir, e.Name())
	}
	return idx, nil
}

// Path returns the file for size n in format, or ("", false).
func (idx *Index) Path(n int, format string) (string, bool) {
	p, ok := idx.entries[n][strings.ToLower(format)]
	return p, ok
}

// Formats returns the formats present for size n, sorted.
func (idx *Index) Formats(n int) []string {
	var out []string
	for f := range idx.entries[n] {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Sizes returns every indexed size in ascending order.
func (idx *Index) Sizes() []int {
	out := make([]int, 0, len(idx.entries))
	for n := range idx.entries {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	total := 0
	for _, m := range idx.entries {
		total += len(m)
	}
	return total
}
