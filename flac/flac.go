// Package flac parses the METADATA_BLOCK section of a FLAC stream into a
// Vorbis-comment tagcollate.MetadataMap.
//
// ref: https://xiph.org/flac/format.html#metadata_block_vorbis_comment
package flac

import (
	"encoding/binary"
	"io"

	"github.com/ankit-chaubey/tagcollate"
)

const (
	vorbisCommentBlockType = 4

	// minVorbisCommentLength is the smallest a type-4 block can be and
	// still hold its own vendor-length and comment-count prefixes.
	minVorbisCommentLength = 8
)

// Metadata is the output of Read: the Vorbis comments found in a FLAC
// stream's metadata block section, plus the vendor string every
// METADATA_BLOCK_VORBIS_COMMENT carries ahead of its comment list. The
// core collation model discards the vendor string (§9 open question);
// this reader keeps it, matching the peer parsers in mewkiz/flac and
// goulash/audio.
type Metadata struct {
	Map    *tagcollate.MetadataMap
	Vendor string
}

// Read parses the ID3v2 prefix (if present), the "fLaC" signature, and
// the METADATA_BLOCK sequence of r, stopping after the block whose
// header has the last-block flag set. It leaves r positioned at the
// start of the audio frames.
//
// r must support Seek, since an optional leading ID3v2 tag is detected
// by peeking four bytes and, if it turns out not to be the FLAC marker,
// rewound and skipped via skipID3v2.
func Read(r io.ReadSeeker) (*Metadata, error) {
	marker, err := readN(r, 4)
	if err != nil {
		return nil, err
	}

	if string(marker[:3]) == id3v2Identifier {
		if _, err := r.Seek(0, io.SeekStart); err != nil {
			return nil, tagcollate.NewUnexpectedEndOfStreamError(err, "rewinding for ID3v2 skip")
		}
		if err := skipID3v2(r); err != nil {
			return nil, err
		}
		marker, err = readN(r, 4)
		if err != nil {
			return nil, err
		}
	}

	if string(marker) != "fLaC" {
		return nil, tagcollate.NewInvalidStreamMarkerError("expected \"fLaC\", got %q", marker)
	}

	m := &Metadata{Map: tagcollate.NewMetadataMap()}
	for {
		header, err := readN(r, 4)
		if err != nil {
			return nil, err
		}
		isLast := header[0]&0x80 != 0
		blockType := header[0] & 0x7F
		length := int(header[1])<<16 | int(header[2])<<8 | int(header[3])

		if blockType == vorbisCommentBlockType {
			if err := readVorbisComment(r, length, m); err != nil {
				return nil, err
			}
		} else if err := skipN(r, length); err != nil {
			return nil, err
		}

		if isLast {
			break
		}
	}
	return m, nil
}

// readVorbisComment reads the body of a type-4 metadata block: a
// little-endian vendor-length-prefixed vendor string, a little-endian
// comment count, then that many length-prefixed "NAME=value" vectors.
// Vorbis field names are not case-folded here -- Vorbis treats them as
// case-insensitive, but CollatedTextSet is where that equivalence is
// actually resolved, since the Collator needs to see each tag's original
// casing when it picks a representative.
func readVorbisComment(r io.Reader, length int, m *Metadata) error {
	if length < minVorbisCommentLength {
		return tagcollate.NewMalformedBlockError("vorbis comment block of %d bytes smaller than the %d-byte vendor/count prefix", length, minVorbisCommentLength)
	}
	body, err := readN(r, length)
	if err != nil {
		return err
	}

	pos := 0
	vendorLen, err := readUint32LE(body, &pos)
	if err != nil {
		return err
	}
	if pos+int(vendorLen) > len(body) {
		return tagcollate.NewMalformedBlockError("vendor string length %d overruns block of %d bytes", vendorLen, len(body))
	}
	m.Vendor = string(body[pos : pos+int(vendorLen)])
	pos += int(vendorLen)

	count, err := readUint32LE(body, &pos)
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		commentLen, err := readUint32LE(body, &pos)
		if err != nil {
			return err
		}
		if pos+int(commentLen) > len(body) {
			return tagcollate.NewMalformedBlockError("comment %d length %d overruns block of %d bytes", i, commentLen, len(body))
		}
		comment := body[pos : pos+int(commentLen)]
		pos += int(commentLen)

		eq := indexByte(comment, '=')
		if eq < 0 {
			// No '=' present: the whole comment is the field name, value
			// is empty but still appended (§4.2 edge case).
			m.Map.Put(string(comment), "")
			continue
		}
		m.Map.Put(string(comment[:eq]), string(comment[eq+1:]))
	}
	return nil
}

func readUint32LE(buf []byte, pos *int) (uint32, error) {
	if *pos+4 > len(buf) {
		return 0, tagcollate.NewUnexpectedEndOfStreamError(nil, "need 4 more bytes at offset %d of %d-byte block", *pos, len(buf))
	}
	v := binary.LittleEndian.Uint32(buf[*pos:])
	*pos += 4
	return v, nil
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

func readN(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, tagcollate.NewUnexpectedEndOfStreamError(err, "reading %d bytes", n)
	}
	return buf, nil
}

func skipN(r io.Reader, n int) error {
	if _, err := io.CopyN(io.Discard, r, int64(n)); err != nil {
		return tagcollate.NewUnexpectedEndOfStreamError(err, "skipping %d bytes", n)
	}
	return nil
}
