package ucd

import (
	"strings"
	"testing"

	"github.com/npillmayer/idna"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixture holds rows in the official IdnaMappingTable.txt format.
const fixture = `# IdnaMappingTable.txt extract
# Format: codepoints ; status ; mapping ; IDNA2008 status

0000..002C    ; disallowed_STD3_valid                  # <control-0000>..COMMA
002D..002E    ; valid                                  # HYPHEN-MINUS..FULL STOP
002F          ; disallowed_STD3_valid                  # SOLIDUS
0030..0039    ; valid                                  # DIGIT ZERO..DIGIT NINE
003A..0040    ; disallowed_STD3_valid                  # COLON..COMMERCIAL AT
0041          ; mapped                 ; 0061          # LATIN CAPITAL LETTER A
0042          ; mapped                 ; 0062          # LATIN CAPITAL LETTER B
0043          ; mapped                 ; 0063          # LATIN CAPITAL LETTER C
005B..0060    ; disallowed_STD3_valid                  # LEFT SQUARE BRACKET..GRAVE ACCENT
0061..007A    ; valid                                  # LATIN SMALL LETTER A..Z
007B..007F    ; disallowed_STD3_valid                  # LEFT CURLY BRACKET..DELETE
00AD          ; ignored                                # SOFT HYPHEN
00DF          ; deviation              ; 0073 0073     # LATIN SMALL LETTER SHARP S
00F1          ; valid                  ;      ; NV8    # LATIN SMALL LETTER N WITH TILDE
200C          ; deviation              ;               # ZERO WIDTH NON-JOINER
3002          ; mapped                 ; 002E          # IDEOGRAPHIC FULL STOP
`

func TestReaderStreamsRows(t *testing.T) {
	r := NewReader(strings.NewReader(fixture))
	lo, hi, status, rep, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, rune(0x0000), lo)
	assert.Equal(t, rune(0x002C), hi)
	assert.Equal(t, idna.DisallowedSTD3Valid, status)
	assert.Nil(t, rep)
}

func TestLoadMappingTableFixture(t *testing.T) {
	table, err := LoadMappingTable("fixture", strings.NewReader(fixture))
	require.NoError(t, err)

	assert.Equal(t, idna.Valid, table.Lookup('n').Status)
	assert.Equal(t, []rune("a"), table.Lookup('A').Replacement)
	assert.Equal(t, idna.Ignored, table.Lookup(0x00AD).Status)
	assert.Equal(t, []rune("ss"), table.Lookup(0x00DF).Replacement)
	// NV8 rows fold into valid.
	assert.Equal(t, idna.Valid, table.Lookup(0x00F1).Status)
	// Deviation with an empty mapping field.
	assert.Equal(t, idna.Deviation, table.Lookup(0x200C).Status)
	assert.Empty(t, table.Lookup(0x200C).Replacement)
	// Rows not in the fixture are disallowed.
	assert.Equal(t, idna.Disallowed, table.Lookup(0x4E2D).Status)
}

func TestLoadedTableDrivesConversion(t *testing.T) {
	table, err := LoadMappingTable("fixture", strings.NewReader(fixture))
	require.NoError(t, err)
	got, err := table.ToASCII("mañana.com", idna.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "xn--maana-pta.com", got)
}

func TestReaderRejectsUnknownStatus(t *testing.T) {
	_, _, _, _, err := NewReader(strings.NewReader("0041 ; shouty\n")).Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}

func TestReaderRejectsBadCodepoint(t *testing.T) {
	_, _, _, _, err := NewReader(strings.NewReader("GGGG ; valid\n")).Next()
	require.Error(t, err)
}

func TestReaderRejectsMissingReplacement(t *testing.T) {
	_, _, _, _, err := NewReader(strings.NewReader("0041 ; mapped\n")).Next()
	require.Error(t, err)
}
