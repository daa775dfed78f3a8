package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"avatar-combiner/internal/classify"
	"avatar-combiner/internal/descriptor"
)

// Source is one discovered asset file: the category it was filed under
// (its first-level subfolder, authoritative), its file name stem, and its
// full path.
type Source struct {
	Category string
	Stem     string
	Path     string
}

// Scan walks the first-level subfolders of root and collects files with
// the given extension (without dot, case-insensitive). Hidden folders and
// folders whose name contains the tag separator are skipped; files sitting
// directly in root have no category and are skipped too.
func Scan(root, ext string) ([]Source, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scanner: read %s: %w", root, err)
	}

	wantExt := "." + strings.ToLower(strings.TrimPrefix(ext, "."))
	var sources []Source
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") || strings.Contains(e.Name(), descriptor.Sep) {
			continue
		}
		category := strings.ToLower(e.Name())
		catDir := filepath.Join(root, e.Name())
		err := filepath.WalkDir(catDir, func(path string, d os.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			if strings.ToLower(filepath.Ext(path)) != wantExt {
				return nil
			}
			base := filepath.Base(path)
			sources = append(sources, Source{
				Category: category,
				Stem:     strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base))),
				Path:     path,
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanner: walk %s: %w", catDir, err)
		}
	}
	return sources, nil
}

// Mismatch records a file whose region tag disagrees with the folder it
// was filed under. The folder stays authoritative; this is diagnostic
// output only.
type Mismatch struct {
	Name       string
	Region     string
	Category   string
	Suggestion string // closest known category to the region tag, if any
}

// Describe parses discovered sources into descriptors. Sources whose stem
// cannot be parsed at all are routed to the rejected list; region/category
// disagreements are reported as mismatches but kept.
func Describe(sources []Source) ([]descriptor.Descriptor, []classify.Rejected, []Mismatch) {
	categories := make([]string, 0, 4)
	seenCat := make(map[string]bool)
	for _, s := range sources {
		if !seenCat[s.Category] {
			seenCat[s.Category] = true
			categories = append(categories, s.Category)
		}
	}

	var (
		descs      []descriptor.Descriptor
		rejected   []classify.Rejected
		mismatches []Mismatch
	)
	for _, s := range sources {
		d, err := descriptor.Parse(s.Stem)
		if err != nil {
			rejected = append(rejected, classify.Rejected{
				Name:     s.Stem,
				Category: s.Category,
				Path:     s.Path,
				Reason:   err.Error(),
			})
			continue
		}
		d.Category = s.Category
		d.Path = s.Path
		if d.Region != descriptor.DefaultRegion && d.Region != s.Category {
			m := Mismatch{Name: s.Stem, Region: d.Region, Category: s.Category}
			if seenCat[d.Region] {
				m.Suggestion = d.Region
			} else if sug, ok := ClosestCategory(d.Region, categories); ok {
				m.Suggestion = sug
			}
			mismatches = append(mismatches, m)
		}
		descs = append(descs, d)
	}
	return descs, rejected, mismatches
}
