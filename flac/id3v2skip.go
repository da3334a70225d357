package flac

import (
	"io"

	"github.com/ankit-chaubey/tagcollate"
)

const id3v2Identifier = "ID3"

// skipID3v2 advances r past a leading ID3v2 tag: a 10-byte header
// ("ID3" + 2-byte version + 1-byte flags + 4-byte synchsafe size)
// followed by that many bytes of frame data. r must be positioned at
// offset 0 on entry. Mirrors the header layout github.com/bogem/id3v2
// parses internally (its own header decoder is unexported, so the FLAC
// reader -- which only needs to skip past the tag, not parse its frames
// -- decodes the synchsafe size itself).
func skipID3v2(r io.ReadSeeker) error {
	header, err := readN(r, 10)
	if err != nil {
		return err
	}
	if string(header[:3]) != id3v2Identifier {
		return tagcollate.NewInvalidStreamMarkerError("expected ID3v2 identifier, got %q", header[:3])
	}

	size, err := decodeSynchsafe(header[6:10])
	if err != nil {
		return err
	}
	if _, err := r.Seek(int64(size), io.SeekCurrent); err != nil {
		return tagcollate.NewUnexpectedEndOfStreamError(err, "seeking past %d-byte ID3v2 tag body", size)
	}
	return nil
}

// decodeSynchsafe decodes a 4-byte big-endian synchsafe integer: the
// high bit of every byte is always 0, so 28 usable bits are packed into
// 4 bytes rather than 32.
func decodeSynchsafe(b []byte) (uint32, error) {
	var size uint32
	for _, v := range b {
		if v&0x80 != 0 {
			return 0, tagcollate.NewMalformedBlockError("synchsafe byte 0x%02X has high bit set", v)
		}
		size = size<<7 | uint32(v)
	}
	return size, nil
}
