package classify

import (
	"sort"

	"avatar-combiner/internal/descriptor"
)

// BodyCategory is mandatory in every combination. A skeleton group without
// it cannot produce full-body sets.
const BodyCategory = "body"

// Group collects the parts sharing one skeleton tag, bucketed by category.
// Within a category, parts keep the order they were discovered in.
type Group struct {
	Skeleton string

	categories []string
	parts      map[string][]descriptor.Descriptor
}

// Categories returns the category names in discovery order.
func (g *Group) Categories() []string {
	return g.categories
}

// SortedCategories returns the category names in alphabetical order.
func (g *Group) SortedCategories() []string {
	out := make([]string, len(g.categories))
	copy(out, g.categories)
	sort.Strings(out)
	return out
}

// Parts returns the parts of one category in discovery order.
func (g *Group) Parts(category string) []descriptor.Descriptor {
	return g.parts[category]
}

// HasBody reports whether the group contains the mandatory body category.
func (g *Group) HasBody() bool {
	return len(g.parts[BodyCategory]) > 0
}

// Size returns the total number of parts across all categories.
func (g *Group) Size() int {
	n := 0
	for _, p := range g.parts {
		n += len(p)
	}
	return n
}

func (g *Group) add(d descriptor.Descriptor) {
	if _, ok := g.parts[d.Category]; !ok {
		g.categories = append(g.categories, d.Category)
	}
	g.parts[d.Category] = append(g.parts[d.Category], d)
}

// Rejected is an input excluded from grouping, with the reason. Name holds
// the raw stem for parse failures and the rendered tag name otherwise.
type Rejected struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Path     string `json:"path,omitempty"`
	Reason   string `json:"reason"`
}

// Classify buckets descriptors by skeleton tag, then by category.
// Descriptors without an explicit skeleton tag are rejected: they cannot be
// matched to an armature safely. Re-seen identities are dropped so that
// re-scanning the same folder is idempotent.
func Classify(descs []descriptor.Descriptor) (map[string]*Group, []Rejected) {
	groups := make(map[string]*Group)
	var rejected []Rejected
	seen := make(map[string]bool, len(descs))

	for _, d := range descs {
		if seen[d.Identity()] {
			continue
		}
		seen[d.Identity()] = true

		if !d.Tagged() {
			rejected = append(rejected, Rejected{
				Name:     d.Name(),
				Category: d.Category,
				Path:     d.Path,
				Reason:   "no skeleton tag in file name",
			})
			continue
		}

		g, ok := groups[d.Skeleton]
		if !ok {
			g = &Group{
				Skeleton: d.Skeleton,
				parts:    make(map[string][]descriptor.Descriptor),
			}
			groups[d.Skeleton] = g
		}
		g.add(d)
	}

	return groups, rejected
}
