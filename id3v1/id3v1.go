// Package id3v1 is a minimal peer parser for the fixed 128-byte ID3v1
// trailer, producing a tagcollate.MetadataMap keyed by the raw names the
// id3v1 column of tagcollate.FieldArtist/Album/Title expects.
//
// ref: https://id3.org/ID3v1
package id3v1

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/ankit-chaubey/tagcollate"
)

// ErrNoTag is returned by Read when the last 128 bytes of r do not begin
// with the "TAG" identifier.
var ErrNoTag = errors.New("id3v1: no tag found")

// id3v1Genres is the fixed genre table from the ID3v1 specification.
var id3v1Genres = [...]string{
	"Blues", "Classic Rock", "Country", "Dance", "Disco", "Funk", "Grunge",
	"Hip-Hop", "Jazz", "Metal", "New Age", "Oldies", "Other", "Pop", "R&B",
	"Rap", "Reggae", "Rock", "Techno", "Industrial", "Alternative", "Ska",
	"Death Metal", "Pranks", "Soundtrack", "Euro-Techno", "Ambient",
	"Trip-Hop", "Vocal", "Jazz+Funk", "Fusion", "Trance", "Classical",
	"Instrumental", "Acid", "House", "Game", "Sound Clip", "Gospel",
	"Noise", "AlternRock", "Bass", "Soul", "Punk", "Space", "Meditative",
	"Instrumental Pop", "Instrumental Rock", "Ethnic", "Gothic",
	"Darkwave", "Techno-Industrial", "Electronic", "Pop-Folk",
	"Eurodance", "Dream", "Southern Rock", "Comedy", "Cult", "Gangsta",
	"Top 40", "Christian Rap", "Pop/Funk", "Jungle", "Native American",
	"Cabaret", "New Wave", "Psychadelic", "Rave", "Showtunes", "Trailer",
	"Lo-Fi", "Tribal", "Acid Punk", "Acid Jazz", "Polka", "Retro",
	"Musical", "Rock & Roll", "Hard Rock", "Folk", "Folk-Rock",
	"National Folk", "Swing", "Fast Fusion", "Bebob", "Latin", "Revival",
	"Celtic", "Bluegrass", "Avantgarde", "Gothic Rock", "Progressive Rock",
	"Psychedelic Rock", "Symphonic Rock", "Slow Rock", "Big Band",
	"Chorus", "Easy Listening", "Acoustic", "Humour", "Speech", "Chanson",
	"Opera", "Chamber Music", "Sonata", "Symphony", "Booty Bass", "Primus",
	"Porn Groove", "Satire", "Slow Jam", "Club", "Tango", "Samba",
	"Folklore", "Ballad", "Power Ballad", "Rhythmic Soul", "Freestyle",
	"Duet", "Punk Rock", "Drum Solo", "Acapella", "Euro-House", "Dance Hall",
}

// Read seeks to the last 128 bytes of r and, if they begin with "TAG",
// parses the fixed-width ID3v1 fields into a MetadataMap with keys
// "title", "artist", "album", "year", "comment", "track" and "genre" --
// matching the raw key names tagcollate's field descriptors expect for
// tagcollate.VariantID3v1.
func Read(r io.ReadSeeker) (*tagcollate.MetadataMap, error) {
	if _, err := r.Seek(-128, io.SeekEnd); err != nil {
		return nil, err
	}

	tag, err := readString(r, 3)
	if err != nil {
		return nil, err
	}
	if tag != "TAG" {
		return nil, ErrNoTag
	}

	title, err := readString(r, 30)
	if err != nil {
		return nil, err
	}
	artist, err := readString(r, 30)
	if err != nil {
		return nil, err
	}
	album, err := readString(r, 30)
	if err != nil {
		return nil, err
	}
	year, err := readString(r, 4)
	if err != nil {
		return nil, err
	}

	commentBytes, err := readBytes(r, 30)
	if err != nil {
		return nil, err
	}
	var comment string
	var track int
	if commentBytes[28] == 0 {
		// ID3v1.1: byte 28 is 0 and byte 29 holds a track number.
		comment = strings.TrimRight(string(commentBytes[:28]), " \x00")
		track = int(commentBytes[29])
	} else {
		comment = strings.TrimRight(string(commentBytes), " \x00")
	}

	genreID, err := readBytes(r, 1)
	if err != nil {
		return nil, err
	}
	var genre string
	if int(genreID[0]) < len(id3v1Genres) {
		genre = id3v1Genres[genreID[0]]
	}

	m := tagcollate.NewMetadataMap()
	m.Put("title", strings.TrimRight(title, " \x00"))
	m.Put("artist", strings.TrimRight(artist, " \x00"))
	m.Put("album", strings.TrimRight(album, " \x00"))
	if y, err := strconv.Atoi(strings.TrimRight(year, " \x00")); err == nil && y != 0 {
		m.Put("year", strconv.Itoa(y))
	}
	if comment != "" {
		m.Put("comment", comment)
	}
	if track != 0 {
		m.Put("track", strconv.Itoa(track))
	}
	if genre != "" {
		m.Put("genre", genre)
	}
	return m, nil
}

func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func readString(r io.Reader, n int) (string, error) {
	buf, err := readBytes(r, n)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
