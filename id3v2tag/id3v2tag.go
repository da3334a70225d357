// Package id3v2tag is the ID3v2 peer parser: it wraps
// github.com/bogem/id3v2 to flatten a parsed tag into a
// tagcollate.MetadataMap keyed by frame ID (e.g. "TPE1", "TALB",
// "TIT2"), matching the field descriptor table in tagcollate's
// FieldArtist/Album/Title.
//
// User-defined text frames (TXXX) and comment/lyric full-text tables
// (COMM/USLT) are format-specific and opaque to the core collator, so
// they are flattened into an Aux map rather than the MetadataMap the
// Collator reads from.
package id3v2tag

import (
	"os"

	"github.com/ankit-chaubey/tagcollate"
	"github.com/bogem/id3v2/v2"
)

// Aux carries the ID3v2 data the core collation model treats as
// opaque: user-defined text frames keyed by their Description, and
// full-text comment/lyric frames keyed by "language:description".
type Aux struct {
	UserDefinedText map[string]string
	Comments        map[string]string
	Lyrics          map[string]string
}

// Extract opens path, parses its ID3v2 tag (if any) and returns a
// tagcollate.TypedMetadata of VariantID3v2. It returns (nil, nil) if the
// file carries no ID3v2 tag, so callers can skip appending a tag block
// rather than treating absence as an error.
func Extract(path string) (*tagcollate.TypedMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tag, err := id3v2.ParseReader(f, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	if tag == nil || !tag.HasFrames() {
		return nil, nil
	}

	m := tagcollate.NewMetadataMap()
	aux := Aux{
		UserDefinedText: make(map[string]string),
		Comments:        make(map[string]string),
		Lyrics:          make(map[string]string),
	}

	for id, frames := range tag.AllFrames() {
		for _, f := range frames {
			switch frame := f.(type) {
			case id3v2.TextFrame:
				m.Put(id, frame.Text)
			case id3v2.UserDefinedTextFrame:
				aux.UserDefinedText[frame.Description] = frame.Value
			case id3v2.CommentFrame:
				aux.Comments[frame.Language+":"+frame.Description] = frame.Text
			case id3v2.UnsynchronisedLyricsFrame:
				aux.Lyrics[frame.Language+":"+frame.ContentDescriptor] = frame.Lyrics
			}
		}
	}

	return &tagcollate.TypedMetadata{
		Variant: tagcollate.VariantID3v2,
		Map:     m,
		Aux:     aux,
	}, nil
}
