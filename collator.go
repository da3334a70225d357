package tagcollate

// DuplicateTagStrategy controls how a Collator orders same-variant tag
// blocks when more than one tag block of that variant is present in
// AllMetadata.
type DuplicateTagStrategy int

const (
	// PrioritizeBest orders same-variant tags by descending field count
	// (§4.6), ties broken by file order.
	PrioritizeBest DuplicateTagStrategy = iota
	// PrioritizeFirst keeps same-variant tags in file order, unreordered.
	PrioritizeFirst
	// IgnoreDuplicates keeps only the first (file-order) tag of each
	// variant; later tags of an already-seen variant are invisible to
	// GetPrioritizedValue.
	IgnoreDuplicates
)

// Collator selects and merges field values across the tag blocks of a
// single file's AllMetadata, using a Prioritization and a
// DuplicateTagStrategy. A Collator borrows all, does not outlive it, and
// owns its own CollatedTextSet-backed scratch state for each multi-value
// query.
type Collator struct {
	all            *AllMetadata
	prioritization Prioritization
	strategy       DuplicateTagStrategy

	// tagIndexesByPriority is the permutation of indices into all.Tags
	// built at construction time per §4.4.
	tagIndexesByPriority []int
}

// NewCollator builds tagIndexesByPriority from all, prioritization and
// strategy. all must not be mutated for the lifetime of the returned
// Collator.
func NewCollator(all *AllMetadata, prioritization Prioritization, strategy DuplicateTagStrategy) *Collator {
	c := &Collator{
		all:            all,
		prioritization: prioritization,
		strategy:       strategy,
	}
	c.tagIndexesByPriority = c.buildPermutation()
	return c
}

// buildPermutation implements the three outer-loop-over-variants
// strategies described in §4.4.
func (c *Collator) buildPermutation() []int {
	switch c.strategy {
	case PrioritizeBest:
		return c.permutationPrioritizeBest()
	case PrioritizeFirst:
		return c.permutationPrioritizeFirst()
	case IgnoreDuplicates:
		return c.permutationIgnoreDuplicates()
	default:
		return c.permutationPrioritizeFirst()
	}
}

func (c *Collator) permutationPrioritizeFirst() []int {
	var out []int
	for _, variant := range c.prioritization.Order {
		c.all.OfVariant(variant, func(i int, _ TypedMetadata) bool {
			out = append(out, i)
			return true
		})
	}
	return out
}

func (c *Collator) permutationIgnoreDuplicates() []int {
	var out []int
	for _, variant := range c.prioritization.Order {
		c.all.OfVariant(variant, func(i int, _ TypedMetadata) bool {
			out = append(out, i)
			return false // only the first occurrence
		})
	}
	return out
}

// permutationPrioritizeBest collects every tag of each variant (in file
// order), then inserts them one at a time into the tail of out using an
// insertion sort driven by compareTagsForPrioritization: a tag with
// strictly more populated fields is inserted before ("is greater than")
// an existing entry with fewer. Ties are never treated as "greater", so
// the insertion point for equal field counts is always after every
// existing tag with the same count — which preserves file order among
// ties, since tags are considered in file order to begin with. The
// insertion scan is bounded to the current variant's own group
// (out[groupStart:]) so a later, lower-priority variant's tag can never
// sort ahead of an earlier, higher-priority variant's tag — field-count
// sorting happens within a variant group, never across groups.
func (c *Collator) permutationPrioritizeBest() []int {
	var out []int
	for _, variant := range c.prioritization.Order {
		var group []int
		c.all.OfVariant(variant, func(i int, _ TypedMetadata) bool {
			group = append(group, i)
			return true
		})
		groupStart := len(out)
		for _, idx := range group {
			pos := len(out)
			for j, existing := range out[groupStart:] {
				if compareTagsForPrioritization(c.all.Tags[idx], c.all.Tags[existing]) {
					pos = groupStart + j
					break
				}
			}
			out = append(out, 0)
			copy(out[pos+1:], out[pos:])
			out[pos] = idx
		}
	}
	return out
}

// compareTagsForPrioritization reports whether a should sort strictly
// before b: a is "greater" than b iff a has strictly more populated
// fields than b. Equal field counts never compare greater, which is what
// keeps the insertion sort in permutationPrioritizeBest stable.
//
// This is an acknowledged placeholder heuristic (§9): field count says
// nothing about which tag's values are actually more accurate, only
// which tag block is more complete. Tests pin this exact behavior so
// that any future improvement to the heuristic is a visible, deliberate
// change.
func compareTagsForPrioritization(a, b TypedMetadata) bool {
	return a.fieldCount() > b.fieldCount()
}

// GetPrioritizedValue returns the first value found for field by walking
// tagIndexesByPriority in order: for each tag, if field has no raw key
// for that tag's variant it is skipped; otherwise GetFirst(key) is tried
// and, if present, returned immediately. It honors the configured
// DuplicateTagStrategy because that strategy decides the order — and
// which tags are even visible — among same-variant tags.
func (c *Collator) GetPrioritizedValue(field FieldDescriptor) (string, bool) {
	for _, idx := range c.tagIndexesByPriority {
		tag := c.all.Tags[idx]
		key, ok := field.key(tag.Variant)
		if !ok {
			continue
		}
		if value, found := tag.Map.GetFirst(key); found {
			return value, true
		}
	}
	return "", false
}

// GetValuesFromKeys gathers every distinct string for field across every
// tag, deduplicating through a CollatedTextSet. Unlike
// GetPrioritizedValue it iterates prioritization.Order directly (not the
// permutation), because the duplicate-tag strategy only matters for
// choosing among tags of the same variant, and a multi-value query wants
// every value from every tag regardless. It does honor Priority: a
// last_resort variant is skipped entirely once the set already holds at
// least one value, so that e.g. ID3v1 truncations never pollute a result
// that a higher-quality source already populated.
func (c *Collator) GetValuesFromKeys(field FieldDescriptor) ([]string, error) {
	set := NewCollatedTextSet()
	for _, variant := range c.prioritization.Order {
		if c.prioritization.priorityOf(variant) == PriorityLastResort && set.Count() > 0 {
			continue
		}
		var putErr error
		c.all.OfVariant(variant, func(_ int, tag TypedMetadata) bool {
			if err := addValuesToSet(set, field, tag); err != nil {
				putErr = err
				return false
			}
			return true
		})
		if putErr != nil {
			return nil, putErr
		}
	}
	return set.Values(), nil
}

// addValuesToSet inserts every value of field's raw key found in tag
// into set. For ID3v1, only the first value for that key is inserted
// (its fixed 30-byte fields cannot repeat); every other variant inserts
// all values under the key.
func addValuesToSet(set *CollatedTextSet, field FieldDescriptor, tag TypedMetadata) error {
	key, ok := field.key(tag.Variant)
	if !ok {
		return nil
	}
	if tag.Variant == VariantID3v1 {
		if value, found := tag.Map.GetFirst(key); found {
			return set.Put(value)
		}
		return nil
	}
	for _, value := range tag.Map.Values(key) {
		if err := set.Put(value); err != nil {
			return err
		}
	}
	return nil
}

// Artist returns the prioritized single artist value.
func (c *Collator) Artist() (string, bool) { return c.GetPrioritizedValue(FieldArtist) }

// Artists returns every distinct artist value, collation-deduplicated.
func (c *Collator) Artists() ([]string, error) { return c.GetValuesFromKeys(FieldArtist) }

// Album returns the prioritized single album value.
func (c *Collator) Album() (string, bool) { return c.GetPrioritizedValue(FieldAlbum) }

// Albums returns every distinct album value, collation-deduplicated.
func (c *Collator) Albums() ([]string, error) { return c.GetValuesFromKeys(FieldAlbum) }

// Title returns the prioritized single title value.
func (c *Collator) Title() (string, bool) { return c.GetPrioritizedValue(FieldTitle) }

// Titles returns every distinct title value, collation-deduplicated.
func (c *Collator) Titles() ([]string, error) { return c.GetValuesFromKeys(FieldTitle) }
