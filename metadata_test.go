package tagcollate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetadataMapPutGet(t *testing.T) {
	assert := assert.New(t)

	m := NewMetadataMap()
	assert.Equal(0, m.Len())

	m.Put("ARTIST", "First")
	m.Put("ARTIST", "Second")
	m.Put("ALBUM", "Only Album")
	m.Put("", "ignored")

	assert.Equal(3, m.Len())

	v, ok := m.GetFirst("ARTIST")
	assert.True(ok)
	assert.Equal("First", v)

	assert.Equal([]string{"First", "Second"}, m.Values("ARTIST"))

	_, ok = m.GetFirst("MISSING")
	assert.False(ok)
}

func TestVariantString(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("id3v1", VariantID3v1.String())
	assert.Equal("mp4", VariantMP4.String())
	assert.Equal("unknown", Variant(999).String())
}

func TestAllMetadataOfVariant(t *testing.T) {
	assert := assert.New(t)

	flacMap := NewMetadataMap()
	flacMap.Put("ARTIST", "A")
	vorbisMap := NewMetadataMap()
	vorbisMap.Put("ARTIST", "B")

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantFLAC, Map: flacMap},
		{Variant: VariantVorbis, Map: vorbisMap},
		{Variant: VariantFLAC, Map: NewMetadataMap()},
	}}

	var seen []int
	all.OfVariant(VariantFLAC, func(i int, _ TypedMetadata) bool {
		seen = append(seen, i)
		return true
	})
	assert.Equal([]int{0, 2}, seen)

	assert.Equal(2, all.CountDistinct())
}

func TestTypedMetadataFieldCount(t *testing.T) {
	assert := assert.New(t)

	m := NewMetadataMap()
	m.Put("ARTIST", "A")
	m.Put("ALBUM", "B")
	tag := TypedMetadata{Variant: VariantFLAC, Map: m}
	assert.Equal(2, tag.fieldCount())

	assert.Equal(0, TypedMetadata{}.fieldCount())
}
