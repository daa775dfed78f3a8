package bundle

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

const (
	glbMagic   = 0x46546C67 // "glTF"
	glbVersion = 2
	chunkJSON  = 0x4E4F534A // "JSON"
	chunkBIN   = 0x004E4942 // "BIN\0"
)

// Write assembles the parts of one set into a GLB container at path.
func Write(path, setName, skeleton string, parts []Part) error {
	var bin bytes.Buffer
	doc := Doc{
		Asset:   Asset{Version: "2.0", Generator: "avatar-combiner"},
		Extras:  Extras{Set: setName, Skeleton: skeleton},
		Buffers: []Buffer{{}},
	}

	addView := func(data []byte) int {
		offset := bin.Len()
		bin.Write(data)
		// Chunk data is 4-byte aligned.
		for bin.Len()%4 != 0 {
			bin.WriteByte(0)
		}
		doc.BufferViews = append(doc.BufferViews, BufferView{
			Buffer:     0,
			ByteOffset: offset,
			ByteLength: len(data),
		})
		return len(doc.BufferViews) - 1
	}

	hasWebP := false
	for _, p := range parts {
		entry := PartEntry{
			Name:       p.Name,
			Category:   p.Category,
			Source:     p.Source,
			BufferView: addView(p.Payload),
		}
		// Fixed map-tag order so identical sets produce identical bundles.
		tags := make([]string, 0, len(p.Textures))
		for tag := range p.Textures {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		for _, tag := range tags {
			hasWebP = true
			doc.Images = append(doc.Images, Image{
				Name:       p.Name + "-" + tag,
				MimeType:   "image/webp",
				BufferView: addView(p.Textures[tag]),
			})
			if entry.Textures == nil {
				entry.Textures = make(map[string]int)
			}
			entry.Textures[tag] = len(doc.Images) - 1
		}
		doc.Extras.Parts = append(doc.Extras.Parts, entry)
	}
	if hasWebP {
		doc.ExtensionsUsed = []string{"EXT_texture_webp"}
	}
	doc.Buffers[0].ByteLength = bin.Len()

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("bundle: marshal %s: %w", setName, err)
	}
	// JSON chunks are padded with spaces to 4-byte alignment.
	for len(jsonData)%4 != 0 {
		jsonData = append(jsonData, ' ')
	}

	total := 12 + 8 + len(jsonData) + 8 + bin.Len()
	out := make([]byte, 0, total)
	out = appendU32(out, glbMagic)
	out = appendU32(out, glbVersion)
	out = appendU32(out, uint32(total))
	out = appendU32(out, uint32(len(jsonData)))
	out = appendU32(out, chunkJSON)
	out = append(out, jsonData...)
	out = appendU32(out, uint32(bin.Len()))
	out = appendU32(out, chunkBIN)
	out = append(out, bin.Bytes()...)

	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("bundle: write %s: %w", path, err)
	}
	return nil
}

// Decode parses a GLB container back into its JSON document and binary
// chunk. Used by inspection tooling and tests.
func Decode(raw []byte) (Doc, []byte, error) {
	if len(raw) < 12 || binary.LittleEndian.Uint32(raw) != glbMagic {
		return Doc{}, nil, fmt.Errorf("bundle: not a GLB container")
	}
	if binary.LittleEndian.Uint32(raw[4:]) != glbVersion {
		return Doc{}, nil, fmt.Errorf("bundle: unsupported GLB version %d", binary.LittleEndian.Uint32(raw[4:]))
	}

	var doc Doc
	var bin []byte
	seenJSON := false
	off := 12
	for off+8 <= len(raw) {
		length := int(binary.LittleEndian.Uint32(raw[off:]))
		kind := binary.LittleEndian.Uint32(raw[off+4:])
		off += 8
		if off+length > len(raw) {
			return Doc{}, nil, fmt.Errorf("bundle: truncated chunk")
		}
		data := raw[off : off+length]
		off += length
		switch kind {
		case chunkJSON:
			if err := json.Unmarshal(bytes.TrimRight(data, " "), &doc); err != nil {
				return Doc{}, nil, fmt.Errorf("bundle: parse JSON chunk: %w", err)
			}
			seenJSON = true
		case chunkBIN:
			bin = data
		}
	}
	if !seenJSON {
		return Doc{}, nil, fmt.Errorf("bundle: missing JSON chunk")
	}
	return doc, bin, nil
}

// View slices one buffer view out of the binary chunk.
func View(doc Doc, bin []byte, index int) ([]byte, error) {
	if index < 0 || index >= len(doc.BufferViews) {
		return nil, fmt.Errorf("bundle: buffer view %d out of range", index)
	}
	v := doc.BufferViews[index]
	if v.ByteOffset+v.ByteLength > len(bin) {
		return nil, fmt.Errorf("bundle: buffer view %d exceeds binary chunk", index)
	}
	return bin[v.ByteOffset : v.ByteOffset+v.ByteLength], nil
}

func appendU32(b []byte, v uint32) []byte {
	return binary.LittleEndian.AppendUint32(b, v)
}
