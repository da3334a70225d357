// Package mp4tag is the MP4/iTunes peer parser: it wraps
// github.com/dhowden/tag's atom reader and normalizes the raw atom
// names it returns into the literal UTF-8 keys tagcollate's field
// descriptors expect.
//
// dhowden/tag represents an MP4 "©nam"-style atom name as a Go string
// whose first byte is the single byte 0xA9, not the two-byte UTF-8
// encoding of U+00A9 (COPYRIGHT SIGN). tagcollate.FieldArtist and its
// siblings use the literal UTF-8 form ("©ART"), so every raw atom name
// beginning with 0xA9 is rewritten here before it reaches the
// MetadataMap.
package mp4tag

import (
	"io"
	"os"

	"github.com/ankit-chaubey/tagcollate"
	"github.com/dhowden/tag"
)

// Extract opens path, reads its MP4 atom metadata and returns a
// tagcollate.TypedMetadata of VariantMP4. Non-MP4 files are reported
// through the returned error, since dhowden/tag.ReadFrom dispatches by
// sniffing the stream rather than trusting the file extension.
func Extract(path string) (*tagcollate.TypedMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return extract(f)
}

func extract(r io.ReadSeeker) (*tagcollate.TypedMetadata, error) {
	meta, err := tag.ReadFrom(r)
	if err != nil {
		return nil, err
	}
	if meta.FileType() != tag.AAC && meta.FileType() != tag.ALAC {
		return nil, tagcollate.NewInvalidStreamMarkerError("not an MP4 file: %s", meta.FileType())
	}

	m := tagcollate.NewMetadataMap()
	for k, v := range meta.Raw() {
		s, ok := v.(string)
		if !ok {
			continue
		}
		m.Put(normalizeAtomName(k), s)
	}

	return &tagcollate.TypedMetadata{
		Variant: tagcollate.VariantMP4,
		Map:     m,
	}, nil
}

// normalizeAtomName rewrites a raw MP4 atom name's leading 0xA9 byte
// (dhowden/tag's representation of the iTunes "copyright" atom prefix)
// into the two-byte UTF-8 encoding of U+00A9, so that e.g. the atom
// name dhowden/tag reports as the 4 bytes {0xA9,'A','R','T'} becomes
// the 5-byte string "©ART".
func normalizeAtomName(name string) string {
	if len(name) == 0 || name[0] != 0xA9 {
		return name
	}
	return "©" + name[1:]
}
