package id3v1

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func padded(s string, n int) string {
	if len(s) >= n {
		return s[:n]
	}
	return s + strings.Repeat("\x00", n-len(s))
}

func buildTag(title, artist, album, year, comment string, track, genre byte) []byte {
	var buf bytes.Buffer
	buf.WriteString("TAG")
	buf.WriteString(padded(title, 30))
	buf.WriteString(padded(artist, 30))
	buf.WriteString(padded(album, 30))
	buf.WriteString(padded(year, 4))

	commentField := make([]byte, 30)
	copy(commentField, comment)
	if track != 0 {
		commentField[28] = 0
		commentField[29] = track
	}
	buf.Write(commentField)
	buf.WriteByte(genre)
	return buf.Bytes()
}

func TestReadID3v11Tag(t *testing.T) {
	assert := assert.New(t)

	tagBytes := buildTag("Wish You Were Here", "Pink Floyd", "Wish You Were Here", "1975", "classic", 1, 0)
	data := append(make([]byte, 100), tagBytes...)

	m, err := Read(bytes.NewReader(data))
	assert.NoError(err)

	v, _ := m.GetFirst("title")
	assert.Equal("Wish You Were Here", v)
	v, _ = m.GetFirst("artist")
	assert.Equal("Pink Floyd", v)
	v, _ = m.GetFirst("album")
	assert.Equal("Wish You Were Here", v)
	v, _ = m.GetFirst("year")
	assert.Equal("1975", v)
	v, _ = m.GetFirst("track")
	assert.Equal("1", v)
	v, _ = m.GetFirst("genre")
	assert.Equal("Blues", v)
}

func TestReadMissingTagReturnsErrNoTag(t *testing.T) {
	assert := assert.New(t)

	data := make([]byte, 200)
	_, err := Read(bytes.NewReader(data))
	assert.ErrorIs(err, ErrNoTag)
}

func TestReadID3v10NoTrackNumber(t *testing.T) {
	assert := assert.New(t)

	commentField := make([]byte, 29)
	copy(commentField, "a long freeform comment here!")
	tagBytes := buildTag("T", "A", "Al", "1999", "a long freeform comment here!", 0, 12)
	data := append(make([]byte, 50), tagBytes...)

	m, err := Read(bytes.NewReader(data))
	assert.NoError(err)
	_, ok := m.GetFirst("track")
	assert.False(ok)
	v, ok := m.GetFirst("genre")
	assert.True(ok)
	assert.Equal("Other", v)
}
