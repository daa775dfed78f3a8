// Package host is the boundary to asset assembly and export. The
// combination pipeline only hands over part references and a destination
// name; it never inspects what the exporter builds from them.
package host

import (
	"avatar-combiner/internal/combo"
)

// Exporter assembles the parts of one named combination and writes them to
// a bundle under destDir. It returns the written file path.
type Exporter interface {
	Export(set combo.Named, destDir string) (string, error)
}
