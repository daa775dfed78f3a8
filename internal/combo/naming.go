package combo

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"

	"avatar-combiner/internal/descriptor"
)

// NamePrefix starts every output set name.
const NamePrefix = "set"

// Named is a combination with its derived output name.
type Named struct {
	Combination
	Name string
}

// Canonical builds the hash input for a combination: each part rendered as
// category-theme-variant-mesh, sorted by category, joined by single
// spaces. The rendering depends only on part identities, never on
// discovery or generation order.
func Canonical(c Combination) string {
	rendered := make([]string, len(c.Parts))
	for i, p := range c.Parts {
		rendered[i] = strings.Join([]string{p.Category, p.Theme, p.Variant, p.Mesh}, descriptor.Sep)
	}
	sort.Strings(rendered)
	return strings.Join(rendered, " ")
}

// Name derives the output name for a combination:
// set-<skeleton>-<16 lowercase hex chars of the canonical string's xxhash>.
func Name(c Combination) string {
	return fmt.Sprintf("%s%s%s%s%016x",
		NamePrefix, descriptor.Sep, c.Skeleton, descriptor.Sep, xxhash.Sum64String(Canonical(c)))
}

// SkeletonFromName extracts the skeleton tag back out of an output name.
func SkeletonFromName(name string) (string, bool) {
	parts := strings.SplitN(name, descriptor.Sep, 3)
	if len(parts) != 3 || parts[0] != NamePrefix {
		return "", false
	}
	return parts[1], true
}
