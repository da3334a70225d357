package mp4tag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAtomName(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("©ART", normalizeAtomName("\xa9ART"))
	assert.Equal("©alb", normalizeAtomName("\xa9alb"))
	assert.Equal("©nam", normalizeAtomName("\xa9nam"))

	// Atom names with no 0xA9 prefix (e.g. "aART", "trkn") pass through
	// unchanged.
	assert.Equal("aART", normalizeAtomName("aART"))
	assert.Equal("trkn", normalizeAtomName("trkn"))

	assert.Equal("", normalizeAtomName(""))
}
