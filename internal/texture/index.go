package texture

import (
	"os"
	"path/filepath"
	"strings"

	"avatar-combiner/internal/descriptor"
)

// Index maps part tag prefixes to their texture map files. A part named
// "outfit-f-casual-01-v2-bottom" owns every image whose stem is the same
// prefix plus a map tag, e.g. "outfit-f-casual-01-v2-bottom-n.png".
type Index struct {
	entries map[string]map[string]string // tag prefix → map tag → path
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tga":  true,
}

// BuildIndex scans root and all subdirectories for texture files.
// The first file seen for a prefix and map tag wins.
func BuildIndex(root string) *Index {
	idx := &Index{entries: make(map[string]map[string]string)}

	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !imageExts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		base := filepath.Base(path)
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		img, err := descriptor.ParseImage(stem)
		if err != nil {
			return nil
		}
		prefix := keyOf(img)
		if idx.entries[prefix] == nil {
			idx.entries[prefix] = make(map[string]string)
		}
		if _, exists := idx.entries[prefix][img.Map]; !exists {
			idx.entries[prefix][img.Map] = path
		}
		return nil
	})

	return idx
}

// Maps returns the texture map files belonging to a part, keyed by map tag.
func (idx *Index) Maps(part descriptor.Descriptor) map[string]string {
	return idx.entries[keyOf(part)]
}

// Len returns the number of parts with at least one indexed texture.
func (idx *Index) Len() int {
	return len(idx.entries)
}

func keyOf(d descriptor.Descriptor) string {
	return strings.Join([]string{d.Type, d.Skeleton, d.Theme, d.Variant, d.Mesh, d.Region}, descriptor.Sep)
}
