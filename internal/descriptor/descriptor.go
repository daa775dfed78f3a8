package descriptor

import (
	"fmt"
	"strings"
)

// Sep separates tags inside a file name stem, e.g. "outfit-f-casual-01-v2-bottom".
const Sep = "-"

// Default values applied to tags missing from a name.
const (
	DefaultType     = "undefined"
	DefaultSkeleton = "x"
	DefaultTheme    = "generic"
	DefaultVariant  = "01"
	DefaultMesh     = "v1"
	DefaultRegion   = "undefined"
	DefaultMap      = "D"
)

// Descriptor holds the tags parsed from one asset's file name.
// Category comes from the folder the file was found in, not from the name,
// and Path points back at the source file. Both are set by the caller.
type Descriptor struct {
	Category string
	Path     string

	Type     string
	Skeleton string
	Theme    string
	Variant  string
	Mesh     string
	Region   string
	Map      string // Texture map designation (D, N, R, ...). Images only.
}

// Parse maps the tags of a file name stem in order: type, skeleton, theme,
// variant, mesh, region. Missing trailing tags get defaults, surplus tags
// are dropped. The stem is lowercased first. Only an empty stem or a stem
// without any separator is an error.
func Parse(stem string) (Descriptor, error) {
	return parse(stem, false)
}

// ParseImage is Parse with a trailing map tag, e.g.
// "outfit-f-casual-01-v2-bottom-n". The map tag is uppercased.
func ParseImage(stem string) (Descriptor, error) {
	return parse(stem, true)
}

func parse(stem string, isImage bool) (Descriptor, error) {
	if stem == "" {
		return Descriptor{}, fmt.Errorf("descriptor: empty name")
	}
	if !strings.Contains(stem, Sep) {
		return Descriptor{}, fmt.Errorf("descriptor: no %q separator in %q", Sep, stem)
	}

	parts := strings.Split(strings.ToLower(stem), Sep)
	d := Descriptor{
		Type:     DefaultType,
		Skeleton: DefaultSkeleton,
		Theme:    DefaultTheme,
		Variant:  DefaultVariant,
		Mesh:     DefaultMesh,
		Region:   DefaultRegion,
	}

	fields := []*string{&d.Type, &d.Skeleton, &d.Theme, &d.Variant, &d.Mesh, &d.Region}
	if isImage {
		d.Map = DefaultMap
		fields = append(fields, &d.Map)
	}
	for i, f := range fields {
		if i >= len(parts) {
			break
		}
		*f = parts[i]
	}
	if isImage {
		d.Map = strings.ToUpper(d.Map)
	}
	return d, nil
}

// Name renders the descriptor back into tag form. Inverse of Parse for
// fully tagged names.
func (d Descriptor) Name() string {
	tags := []string{d.Type, d.Skeleton, d.Theme, d.Variant, d.Mesh, d.Region}
	if d.Map != "" {
		tags = append(tags, d.Map)
	}
	return strings.Join(tags, Sep)
}

// Identity is the full identity key of a part. Two descriptors with equal
// identity refer to the same part regardless of where they were found.
func (d Descriptor) Identity() string {
	return strings.Join([]string{d.Category, d.Skeleton, d.Theme, d.Variant, d.Mesh, d.Region}, Sep)
}

// Tagged reports whether the name carried an explicit skeleton tag.
// Untagged parts cannot be grouped by armature compatibility.
func (d Descriptor) Tagged() bool {
	return d.Skeleton != DefaultSkeleton
}
