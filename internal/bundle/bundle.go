// Package bundle writes combination sets as GLB containers: a 12-byte
// header followed by a JSON chunk describing the set and a binary chunk
// holding part payloads and embedded WebP textures.
package bundle

// Part is one component going into a bundle.
type Part struct {
	Name     string // rendered tag name, e.g. "outfit-f-casual-01-v2-bottom"
	Category string
	Source   string            // original file path, kept for traceability
	Payload  []byte            // raw part file contents
	Textures map[string][]byte // map tag → WebP bytes
}

// Doc is the JSON chunk of a bundle.
type Doc struct {
	Asset          Asset        `json:"asset"`
	ExtensionsUsed []string     `json:"extensionsUsed,omitempty"`
	Buffers        []Buffer     `json:"buffers"`
	BufferViews    []BufferView `json:"bufferViews,omitempty"`
	Images         []Image      `json:"images,omitempty"`
	Extras         Extras       `json:"extras"`
}

type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator"`
}

type Buffer struct {
	ByteLength int `json:"byteLength"`
}

type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength"`
}

type Image struct {
	Name       string `json:"name"`
	MimeType   string `json:"mimeType"`
	BufferView int    `json:"bufferView"`
}

// Extras carries the set-level metadata: the output name, the shared
// skeleton tag, and the included parts.
type Extras struct {
	Set      string      `json:"set"`
	Skeleton string      `json:"skeleton"`
	Parts    []PartEntry `json:"parts"`
}

type PartEntry struct {
	Name       string         `json:"name"`
	Category   string         `json:"category"`
	Source     string         `json:"source,omitempty"`
	BufferView int            `json:"bufferView"`
	Textures   map[string]int `json:"textures,omitempty"` // map tag → image index
}
