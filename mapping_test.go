package idna

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func mapString(s string, opts Options) string {
	mapped, _ := Builtin().Map([]rune(s), opts)
	return string(mapped)
}

func TestMapFoldsCase(t *testing.T) {
	assert.Equal(t, "example", mapString("ExAmPlE", DefaultOptions()))
	assert.Equal(t, "strasse", mapString("STRASSE", DefaultOptions()))
}

func TestMapRewritesDeviationsTransitionally(t *testing.T) {
	assert.Equal(t, "fuss", mapString("fuß", DefaultOptions()))
	assert.Equal(t, "ab", mapString("a\u200cb", DefaultOptions()))
	assert.Equal(t, "σσ", mapString("ςσ", DefaultOptions()))
}

func TestMapKeepsDeviationsNonTransitionally(t *testing.T) {
	assert.Equal(t, "fuß", mapString("fuß", nonTransitional()))
	assert.Equal(t, "a\u200cb", mapString("a\u200cb", nonTransitional()))
}

func TestMapNormalizesSeparators(t *testing.T) {
	assert.Equal(t, "a.b.c.d", mapString("a。b．c｡d", DefaultOptions()))
}

func TestMapDropsIgnored(t *testing.T) {
	// Soft hyphen, zero-width space, BOM.
	assert.Equal(t, "example", mapString("exam\u00adple\u200b\ufeff", DefaultOptions()))
}

func TestMapSplicesSequences(t *testing.T) {
	// Fullwidth folds onto ASCII, ligatures expand.
	assert.Equal(t, "abc01", mapString("ＡＢＣ０１", DefaultOptions()))
	assert.Equal(t, "fine", mapString("ﬁne", DefaultOptions()))
	assert.Equal(t, "office", mapString("oﬃce", DefaultOptions()))
}

func TestMapLeavesSTD3UnderStrictRules(t *testing.T) {
	// Under the STD3 rules the fullwidth exclamation mark is not
	// rewritten; it is reported instead.
	opts := DefaultOptions()
	opts.ReportDisallowed = true
	mapped, disallowed := Builtin().Map([]rune("a！b"), opts)
	assert.Equal(t, "a！b", string(mapped))
	assert.Equal(t, []rune{'！'}, disallowed)
}

func TestMapRelaxesSTD3(t *testing.T) {
	opts := DefaultOptions()
	opts.UseSTD3ASCIIRules = false
	opts.ReportDisallowed = true
	mapped, disallowed := Builtin().Map([]rune("a！b_c"), opts)
	assert.Equal(t, "a!b_c", string(mapped))
	assert.Empty(t, disallowed)
}

func TestMapReportsDisallowed(t *testing.T) {
	opts := DefaultOptions()
	opts.ReportDisallowed = true
	_, disallowed := Builtin().Map([]rune("a_b\u2062"), opts)
	// Underscore is disallowed only under STD3; the invisible times is
	// disallowed outright.
	assert.Equal(t, []rune{'_', 0x2062}, disallowed)
}

func TestMapNeverAborts(t *testing.T) {
	// Disallowed codepoints stay in the output; the decision to fail
	// is not the mapper's.
	mapped, _ := Builtin().Map([]rune("a\u2062b"), DefaultOptions())
	assert.Equal(t, "a\u2062b", string(mapped))
}

func TestMapHonoursSeparatorsFromRewrites(t *testing.T) {
	// Deviation rewriting runs before separator normalisation, so a
	// transitional pass sees exotic stops in their final positions.
	got, err := ToASCII("fuß。de", DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, "fuss.de", got)
}
