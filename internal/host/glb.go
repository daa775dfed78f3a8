package host

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"avatar-combiner/internal/bundle"
	"avatar-combiner/internal/combo"
	"avatar-combiner/internal/texture"
)

// GLBExporter assembles combinations into GLB bundles on the filesystem,
// embedding each part's texture maps as WebP. The output session is shared,
// so concurrent callers are serialized.
type GLBExporter struct {
	mu       sync.Mutex
	textures *texture.Index
	cache    *texture.Cache
}

// NewGLBExporter creates an exporter. textures may be nil to skip
// embedding.
func NewGLBExporter(textures *texture.Index, cache *texture.Cache) *GLBExporter {
	return &GLBExporter{textures: textures, cache: cache}
}

// Export writes <destDir>/<set name>.glb. A missing or unreadable part
// file fails the whole combination; a broken texture map only drops that
// map.
func (e *GLBExporter) Export(set combo.Named, destDir string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	parts := make([]bundle.Part, 0, len(set.Parts))
	for _, d := range set.Parts {
		payload, err := os.ReadFile(d.Path)
		if err != nil {
			return "", fmt.Errorf("host: part %s: %w", d.Name(), err)
		}
		part := bundle.Part{
			Name:     d.Name(),
			Category: d.Category,
			Source:   d.Path,
			Payload:  payload,
		}
		if e.textures != nil {
			for tag, path := range e.textures.Maps(d) {
				webp, err := e.cache.Encoded(path)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Warning: texture %s: %v\n", path, err)
					continue
				}
				if part.Textures == nil {
					part.Textures = make(map[string][]byte)
				}
				part.Textures[tag] = webp
			}
		}
		parts = append(parts, part)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("host: create %s: %w", destDir, err)
	}
	// Dots would collide with the extension; the set name normally has none.
	fileName := strings.ReplaceAll(set.Name, ".", "_") + ".glb"
	path := filepath.Join(destDir, fileName)
	if err := bundle.Write(path, set.Name, set.Skeleton, parts); err != nil {
		return "", err
	}
	return path, nil
}
