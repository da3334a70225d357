package tagcollate

// FieldDescriptor maps a logical field (artist, album, title, …) to the
// raw key used for it in each variant's MetadataMap. An empty string at
// index v means the variant does not carry that field at all.
type FieldDescriptor [variantCount]string

// key returns the raw key for variant, and whether the variant carries
// this logical field at all.
func (f FieldDescriptor) key(variant Variant) (string, bool) {
	k := f[variant]
	return k, k != ""
}

// Field descriptors for the three logical fields the Collator exposes
// convenience bindings for. Raw key casing matches each format's own
// convention (Vorbis/FLAC keys are conventionally upper-case; MP4 atom
// names use the Apple-assigned "©" prefix; ID3v2 uses its four-letter
// frame IDs).
var (
	FieldArtist = FieldDescriptor{
		VariantID3v1:  "artist",
		VariantID3v2:  "TPE1",
		VariantFLAC:   "ARTIST",
		VariantVorbis: "ARTIST",
		VariantAPE:    "Artist",
		VariantMP4:    "©ART",
	}
	FieldAlbum = FieldDescriptor{
		VariantID3v1:  "album",
		VariantID3v2:  "TALB",
		VariantFLAC:   "ALBUM",
		VariantVorbis: "ALBUM",
		VariantAPE:    "Album",
		VariantMP4:    "©alb",
	}
	FieldTitle = FieldDescriptor{
		VariantID3v1:  "title",
		VariantID3v2:  "TIT2",
		VariantFLAC:   "TITLE",
		VariantVorbis: "TITLE",
		VariantAPE:    "Title",
		VariantMP4:    "©nam",
	}
)

// Priority is a variant's weight in a Prioritization: last_resort
// variants only contribute to a multi-value query when no non-last-resort
// variant has already contributed anything for that field.
type Priority int

const (
	PriorityNormal Priority = iota
	PriorityLastResort
)

// Prioritization is an ordering of all variants plus a per-variant
// Priority.
type Prioritization struct {
	Order    []Variant
	Priority map[Variant]Priority
}

// priorityOf returns the Priority recorded for v, defaulting to
// PriorityNormal if Prioritization.Priority has no entry.
func (p Prioritization) priorityOf(v Variant) Priority {
	if p.Priority == nil {
		return PriorityNormal
	}
	return p.Priority[v]
}

// DefaultPrioritization is the prioritization used by collation unless
// the caller supplies its own: mp4, flac, vorbis, id3v2, ape, id3v1, with
// id3v1 demoted to last_resort because its 30-byte fixed fields are the
// most likely to be truncated or mis-encoded among the six variants.
func DefaultPrioritization() Prioritization {
	return Prioritization{
		Order: []Variant{
			VariantMP4,
			VariantFLAC,
			VariantVorbis,
			VariantID3v2,
			VariantAPE,
			VariantID3v1,
		},
		Priority: map[Variant]Priority{
			VariantID3v1: PriorityLastResort,
		},
	}
}
