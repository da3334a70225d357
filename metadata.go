// Package tagcollate unifies tag blocks from FLAC, MP4, MP3 (ID3v1/v2)
// and APE files into a single canonical view keyed by logical field
// names such as artist, album and title.
package tagcollate

// entry is one (key, value) pair in insertion order. Keys and values are
// borrowed byte slices owned by whatever parser produced them; this
// package never mutates or outlives them on its own.
type entry struct {
	key   string
	value string
}

// MetadataMap is an ordered multimap from a raw tag key to one or more
// raw values. Duplicate keys are not coalesced: Put always appends, and
// insertion order is preserved for both keys and values. Keys and values
// are stored exactly as given — no trimming, case folding, or other
// normalization happens at this layer, because the Collator depends on
// observing a tag block's original casing when choosing a representative
// (see CollatedTextSet).
type MetadataMap struct {
	entries []entry
}

// NewMetadataMap returns an empty MetadataMap.
func NewMetadataMap() *MetadataMap {
	return &MetadataMap{}
}

// Put appends (key, value). key must not be empty.
func (m *MetadataMap) Put(key, value string) {
	if key == "" {
		return
	}
	m.entries = append(m.entries, entry{key: key, value: value})
}

// GetFirst returns the first value whose key is byte-equal to key, and
// true. If no entry matches, it returns "", false.
func (m *MetadataMap) GetFirst(key string) (string, bool) {
	for _, e := range m.entries {
		if e.key == key {
			return e.value, true
		}
	}
	return "", false
}

// Values returns every value stored under key, in insertion order.
func (m *MetadataMap) Values(key string) []string {
	var out []string
	for _, e := range m.entries {
		if e.key == key {
			out = append(out, e.value)
		}
	}
	return out
}

// Len returns the total number of (key, value) pairs, counting
// duplicates.
func (m *MetadataMap) Len() int {
	return len(m.entries)
}

// Variant identifies the format a TypedMetadata tag block was extracted
// from. The set of variants is closed: every switch over Variant in this
// package is expected to be exhaustive.
type Variant int

const (
	VariantID3v1 Variant = iota
	VariantID3v2
	VariantFLAC
	VariantVorbis
	VariantAPE
	VariantMP4

	variantCount // sentinel, used to size per-variant arrays
)

func (v Variant) String() string {
	switch v {
	case VariantID3v1:
		return "id3v1"
	case VariantID3v2:
		return "id3v2"
	case VariantFLAC:
		return "flac"
	case VariantVorbis:
		return "vorbis"
	case VariantAPE:
		return "ape"
	case VariantMP4:
		return "mp4"
	default:
		return "unknown"
	}
}

// TypedMetadata is a single tag block tagged with the format it came
// from. ID3v2 and APE blocks may additionally carry format-specific
// auxiliary data (user-defined frames, comment/lyric tables) that this
// package treats as opaque — Aux is never inspected by the Collator.
type TypedMetadata struct {
	Variant Variant
	Map     *MetadataMap
	Aux     interface{}
}

// fieldCount implements §4.6: the number of populated
// entries in a tag block, used as the (acknowledged placeholder)
// heuristic for ordering same-variant tags in prioritize_best mode. It
// is identical across all six variants because TypedMetadata always
// carries exactly one MetadataMap regardless of variant; formats that
// additionally carry an Aux value (id3v2, ape) do not count Aux entries.
func (t TypedMetadata) fieldCount() int {
	if t.Map == nil {
		return 0
	}
	return t.Map.Len()
}

// AllMetadata is the ordered sequence of tag blocks extracted from a
// single file, in file-discovery order. It is read-only to a Collator
// for the Collator's entire lifetime.
type AllMetadata struct {
	Tags []TypedMetadata
}

// OfVariant calls yield(index, tag) for every tag of the given variant,
// in file order, stopping early if yield returns false.
func (a *AllMetadata) OfVariant(variant Variant, yield func(int, TypedMetadata) bool) {
	for i, t := range a.Tags {
		if t.Variant == variant {
			if !yield(i, t) {
				return
			}
		}
	}
}

// CountDistinct returns the number of distinct variants present in a,
// i.e. the length ignore_duplicates would assign to
// tagIndexesByPriority.
func (a *AllMetadata) CountDistinct() int {
	var seen [variantCount]bool
	n := 0
	for _, t := range a.Tags {
		if !seen[t.Variant] {
			seen[t.Variant] = true
			n++
		}
	}
	return n
}
