// Package apetag is a hand-rolled peer parser for APEv2 tags. No
// library in this module's dependency set reads APE tags (dhowden/tag
// supports ID3v1, ID3v2, MP4, Vorbis and FLAC but not APE), so this
// package decodes the footer and item list directly, following the
// same read-the-trailer-then-walk-fixed-fields idiom tagcollate's own
// id3v1 reader and the teacher's WAV/AIFF chunk walkers use.
//
// ref: https://wiki.hydrogenaud.io/index.php?title=APEv2_specification
package apetag

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ankit-chaubey/tagcollate"
)

// ErrNoTag is returned by Read when the last 32 bytes of r are not an
// APEv2 footer.
var ErrNoTag = errors.New("apetag: no tag found")

const (
	footerSize = 32
	preamble   = "APETAGEX"

	// itemTypeText is the bits-1-2 value of a per-item flags word that
	// marks it as UTF-8 text rather than binary or an external link.
	itemTypeText = 0
	itemTypeMask = 0x3
)

// footer mirrors the trailing 32-byte APE_TAG_FOOTER structure.
type footer struct {
	version  uint32
	size     uint32 // tag size, including items and footer, excluding header
	items    uint32
	flags    uint32
}

// Read locates a 32-byte APEv2 footer at the end of r, then parses the
// item list preceding it into a tagcollate.MetadataMap keyed by each
// item's key string (e.g. "Artist", "Album", "Title" -- matching the
// ape column of tagcollate.FieldArtist/Album/Title). Binary and
// external-link items are skipped; only UTF-8 text items are kept.
func Read(r io.ReadSeeker) (*tagcollate.MetadataMap, error) {
	if _, err := r.Seek(-footerSize, io.SeekEnd); err != nil {
		return nil, err
	}
	raw := make([]byte, footerSize)
	if _, err := io.ReadFull(r, raw); err != nil {
		return nil, tagcollate.NewUnexpectedEndOfStreamError(err, "reading %d-byte APE footer", footerSize)
	}
	if string(raw[0:8]) != preamble {
		return nil, ErrNoTag
	}

	f := footer{
		version: binary.LittleEndian.Uint32(raw[8:12]),
		size:    binary.LittleEndian.Uint32(raw[12:16]),
		items:   binary.LittleEndian.Uint32(raw[16:20]),
		flags:   binary.LittleEndian.Uint32(raw[20:24]),
	}
	if f.size < footerSize {
		return nil, tagcollate.NewMalformedBlockError("APE tag size %d smaller than the footer itself", f.size)
	}

	// size covers the item list and the footer but never the optional
	// header, so the item list itself is size minus footerSize.
	itemsLen := int64(f.size) - footerSize

	if _, err := r.Seek(-footerSize-itemsLen, io.SeekEnd); err != nil {
		return nil, err
	}
	body := make([]byte, itemsLen)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, tagcollate.NewUnexpectedEndOfStreamError(err, "reading %d-byte APE item list", itemsLen)
	}

	m := tagcollate.NewMetadataMap()
	pos := 0
	for i := uint32(0); i < f.items; i++ {
		if pos+8 > len(body) {
			return nil, tagcollate.NewMalformedBlockError("item %d header overruns %d-byte item list", i, len(body))
		}
		valueLen := int(binary.LittleEndian.Uint32(body[pos : pos+4]))
		itemFlags := binary.LittleEndian.Uint32(body[pos+4 : pos+8])
		pos += 8

		keyEnd := indexByteFrom(body, pos, 0)
		if keyEnd < 0 {
			return nil, tagcollate.NewMalformedBlockError("item %d key is not NUL-terminated", i)
		}
		key := string(body[pos:keyEnd])
		pos = keyEnd + 1

		if pos+valueLen > len(body) {
			return nil, tagcollate.NewMalformedBlockError("item %d value length %d overruns %d-byte item list", i, valueLen, len(body))
		}
		value := body[pos : pos+valueLen]
		pos += valueLen

		if (itemFlags>>1)&itemTypeMask == itemTypeText {
			m.Put(key, string(value))
		}
	}
	return m, nil
}

func indexByteFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
