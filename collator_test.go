package tagcollate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func metadataMap(pairs ...string) *MetadataMap {
	m := NewMetadataMap()
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Put(pairs[i], pairs[i+1])
	}
	return m
}

func TestCollatorPrioritizedValuePicksHigherPriorityVariant(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantID3v1, Map: metadataMap("artist", "ID3v1 Artist")},
		{Variant: VariantFLAC, Map: metadataMap("ARTIST", "FLAC Artist")},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeFirst)

	artist, ok := c.Artist()
	assert.True(ok)
	assert.Equal("FLAC Artist", artist)
}

func TestCollatorPrioritizedValueFallsThroughWhenMissing(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantFLAC, Map: metadataMap("TITLE", "Only Title")},
		{Variant: VariantID3v1, Map: metadataMap("artist", "ID3v1 Artist")},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeFirst)

	artist, ok := c.Artist()
	assert.True(ok)
	assert.Equal("ID3v1 Artist", artist)
}

func TestCollatorPrioritizeBestOrdersByFieldCount(t *testing.T) {
	assert := assert.New(t)

	sparse := metadataMap("ARTIST", "Sparse Artist")
	rich := metadataMap("ARTIST", "Rich Artist", "ALBUM", "Rich Album", "TITLE", "Rich Title")

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantVorbis, Map: sparse},
		{Variant: VariantVorbis, Map: rich},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeBest)

	artist, ok := c.Artist()
	assert.True(ok)
	assert.Equal("Rich Artist", artist)
}

func TestCollatorPrioritizeBestIsStableOnTies(t *testing.T) {
	assert := assert.New(t)

	first := metadataMap("ARTIST", "First")
	second := metadataMap("ARTIST", "Second")

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantVorbis, Map: first},
		{Variant: VariantVorbis, Map: second},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeBest)

	assert.Equal([]int{0, 1}, c.tagIndexesByPriority)
}

func TestCollatorPrioritizeBestNeverSortsAcrossVariantGroups(t *testing.T) {
	assert := assert.New(t)

	// The APE tag has more populated fields than the FLAC tag, but FLAC
	// outranks APE in DefaultPrioritization. Field-count sorting must
	// stay within a variant's own group, never letting a lower-priority
	// variant's tag sort ahead of a higher-priority one's.
	flacTag := metadataMap("ARTIST", "FLAC Artist")
	apeTag := metadataMap("Artist", "APE Artist", "Album", "APE Album", "Title", "APE Title")

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantFLAC, Map: flacTag},
		{Variant: VariantAPE, Map: apeTag},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeBest)

	assert.Equal([]int{0, 1}, c.tagIndexesByPriority)

	artist, ok := c.Artist()
	assert.True(ok)
	assert.Equal("FLAC Artist", artist)
}

func TestCollatorIgnoreDuplicatesKeepsOnlyFirstOfEachVariant(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantVorbis, Map: metadataMap("ARTIST", "First")},
		{Variant: VariantVorbis, Map: metadataMap("ARTIST", "Second")},
	}}
	c := NewCollator(all, DefaultPrioritization(), IgnoreDuplicates)

	artist, ok := c.Artist()
	assert.True(ok)
	assert.Equal("First", artist)
}

func TestCollatorArtistsDedupsAcrossVariants(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantFLAC, Map: metadataMap("ARTIST", "Daft Punk")},
		{Variant: VariantVorbis, Map: metadataMap("ARTIST", "DAFT PUNK")},
		{Variant: VariantMP4, Map: metadataMap("©ART", "Daft Punk")},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeFirst)

	artists, err := c.Artists()
	assert.NoError(err)
	assert.Equal([]string{"Daft Punk"}, artists)
}

func TestCollatorLastResortVariantSkippedWhenOthersContribute(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantFLAC, Map: metadataMap("ARTIST", "FLAC Artist")},
		{Variant: VariantID3v1, Map: metadataMap("artist", "Truncated ID3v1 Art")},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeFirst)

	artists, err := c.Artists()
	assert.NoError(err)
	assert.Equal([]string{"FLAC Artist"}, artists)
}

func TestCollatorLastResortVariantUsedWhenNoOtherContributes(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: []TypedMetadata{
		{Variant: VariantID3v1, Map: metadataMap("artist", "Only ID3v1 Artist")},
	}}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeFirst)

	artists, err := c.Artists()
	assert.NoError(err)
	assert.Equal([]string{"Only ID3v1 Artist"}, artists)
}

func TestCollatorEmptyAllMetadata(t *testing.T) {
	assert := assert.New(t)

	c := NewCollator(&AllMetadata{}, DefaultPrioritization(), PrioritizeBest)

	_, ok := c.Artist()
	assert.False(ok)

	artists, err := c.Artists()
	assert.NoError(err)
	assert.Empty(artists)
}

// scenarioTags builds the tag fixture shared by S2/S3/S4: an APE tag plus
// three FLAC tags of increasing completeness, in file order.
func scenarioTags() []TypedMetadata {
	return []TypedMetadata{
		{Variant: VariantAPE, Map: metadataMap("Album", "ape album")},
		{Variant: VariantFLAC, Map: metadataMap("ALBUM", "bad album")},
		{Variant: VariantFLAC, Map: metadataMap("ALBUM", "good album", "ARTIST", "artist")},
		{Variant: VariantFLAC, Map: metadataMap("ALBUM", "best album", "ARTIST", "artist", "TITLE", "song")},
	}
}

func TestCollatorScenarioS2PrioritizeBestAcrossFormats(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: scenarioTags()}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeBest)

	album, ok := c.Album()
	assert.True(ok)
	assert.Equal("best album", album)
}

func TestCollatorScenarioS3PrioritizeFirst(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: scenarioTags()}
	c := NewCollator(all, DefaultPrioritization(), PrioritizeFirst)

	album, ok := c.Album()
	assert.True(ok)
	assert.Equal("bad album", album)

	title, ok := c.Title()
	assert.True(ok)
	assert.Equal("song", title)
}

func TestCollatorScenarioS4IgnoreDuplicates(t *testing.T) {
	assert := assert.New(t)

	all := &AllMetadata{Tags: scenarioTags()}
	c := NewCollator(all, DefaultPrioritization(), IgnoreDuplicates)

	album, ok := c.Album()
	assert.True(ok)
	assert.Equal("bad album", album)

	_, ok = c.Title()
	assert.False(ok)
}
