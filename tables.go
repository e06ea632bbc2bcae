package idna

import "sync"

// The builtin table is a compiled subset of the Unicode IDNA mapping
// table (IdnaMappingTable.txt). It covers ASCII, Latin-1, Latin
// Extended-A, Greek, Cyrillic, Hebrew, Arabic, Devanagari, Kana, the
// unified CJK and Hangul blocks, the deviation and ignored sets, the
// label separators and the width mappings. Codepoints outside the
// subset classify as Disallowed, the same default the source table
// applies to unassigned codepoints. Consumers that need full coverage
// load the official data file through package ucd.

var builtinTable = sync.OnceValue(func() *Table {
	t, err := buildTable("builtin", builtinRows())
	idnaAssert(err == nil, "builtin mapping table must compile")
	return t
})

// Builtin returns the compiled default mapping table. The table is
// built once and shared; it is immutable and safe for concurrent use.
func Builtin() *Table {
	return builtinTable()
}

// Row constructors. Case runs use delta form (replacement = cp+delta);
// everything else uses explicit sequences.

func v(lo, hi rune) tableRow   { return tableRow{lo: lo, hi: hi, status: Valid} }
func dis(lo, hi rune) tableRow { return tableRow{lo: lo, hi: hi, status: Disallowed} }
func ign(lo, hi rune) tableRow { return tableRow{lo: lo, hi: hi, status: Ignored} }

func std3v(lo, hi rune) tableRow {
	return tableRow{lo: lo, hi: hi, status: DisallowedSTD3Valid}
}

func caseRange(lo, hi, delta rune) tableRow {
	return tableRow{lo: lo, hi: hi, status: Mapped, delta: delta}
}

func mapTo(cp rune, rep string) tableRow {
	return tableRow{lo: cp, hi: cp, status: Mapped, rep: []rune(rep)}
}

func std3Map(lo, hi, delta rune) tableRow {
	return tableRow{lo: lo, hi: hi, status: DisallowedSTD3Mapped, delta: delta}
}

func std3MapTo(cp rune, rep string) tableRow {
	return tableRow{lo: cp, hi: cp, status: DisallowedSTD3Mapped, rep: []rune(rep)}
}

func dev(cp rune, rep string) tableRow {
	return tableRow{lo: cp, hi: cp, status: Deviation, rep: []rune(rep)}
}

// casePairs appends alternating (uppercase mapped +1, lowercase valid)
// rows for blocks like Latin Extended-A, where the source data lists
// one row per codepoint. lo..hi is inclusive and starts on a cased
// uppercase codepoint.
func casePairs(rows []tableRow, lo, hi rune) []tableRow {
	for cp := lo; cp <= hi; cp += 2 {
		rows = append(rows, tableRow{lo: cp, hi: cp, status: Mapped, delta: 1})
		rows = append(rows, tableRow{lo: cp + 1, hi: cp + 1, status: Valid})
	}
	return rows
}

func builtinRows() []tableRow {
	rows := []tableRow{
		// ASCII. The LDH subset is valid, uppercase folds, the rest of
		// the block is valid only outside the STD3 rules.
		std3v(0x0000, 0x002C),
		v(0x002D, 0x002E),
		std3v(0x002F, 0x002F),
		v(0x0030, 0x0039),
		std3v(0x003A, 0x0040),
		caseRange(0x0041, 0x005A, 0x20),
		std3v(0x005B, 0x0060),
		v(0x0061, 0x007A),
		std3v(0x007B, 0x007F),

		// Latin-1 Supplement.
		dis(0x0080, 0x009F),
		std3MapTo(0x00A0, " "),
		v(0x00A1, 0x00A7),
		std3MapTo(0x00A8, " ̈"),
		v(0x00A9, 0x00A9),
		mapTo(0x00AA, "a"),
		v(0x00AB, 0x00AC),
		ign(0x00AD, 0x00AD),
		v(0x00AE, 0x00AE),
		std3MapTo(0x00AF, " ̄"),
		v(0x00B0, 0x00B1),
		mapTo(0x00B2, "2"),
		mapTo(0x00B3, "3"),
		std3MapTo(0x00B4, " ́"),
		mapTo(0x00B5, "μ"),
		v(0x00B6, 0x00B7),
		std3MapTo(0x00B8, " ̧"),
		mapTo(0x00B9, "1"),
		mapTo(0x00BA, "o"),
		v(0x00BB, 0x00BB),
		mapTo(0x00BC, "1⁄4"),
		mapTo(0x00BD, "1⁄2"),
		mapTo(0x00BE, "3⁄4"),
		v(0x00BF, 0x00BF),
		caseRange(0x00C0, 0x00D6, 0x20),
		v(0x00D7, 0x00D7),
		caseRange(0x00D8, 0x00DE, 0x20),
		dev(0x00DF, "ss"),
		v(0x00E0, 0x00FF),
	}

	// Latin Extended-A: alternating case pairs, with the dotted/dotless
	// i pair and the singletons carved out.
	rows = casePairs(rows, 0x0100, 0x012F)
	rows = append(rows,
		mapTo(0x0130, "i̇"),
		v(0x0131, 0x0131),
	)
	rows = casePairs(rows, 0x0132, 0x0137)
	rows = append(rows, v(0x0138, 0x0138))
	rows = casePairs(rows, 0x0139, 0x0148)
	rows = append(rows, mapTo(0x0149, "ʼn"))
	rows = casePairs(rows, 0x014A, 0x0177)
	rows = append(rows, mapTo(0x0178, "ÿ"))
	rows = casePairs(rows, 0x0179, 0x017E)
	rows = append(rows, mapTo(0x017F, "s"))

	rows = append(rows,
		// Combining diacritical marks.
		v(0x0300, 0x036F),

		// Greek and Coptic.
		mapTo(0x0386, "ά"),
		caseRange(0x0388, 0x038A, 0x25),
		mapTo(0x038C, "ό"),
		caseRange(0x038E, 0x038F, 0x3F),
		v(0x0390, 0x0390),
		caseRange(0x0391, 0x03A1, 0x20),
		caseRange(0x03A3, 0x03AB, 0x20),
		v(0x03AC, 0x03C1),
		dev(0x03C2, "σ"),
		v(0x03C3, 0x03CE),

		// Cyrillic.
		caseRange(0x0400, 0x040F, 0x50),
		caseRange(0x0410, 0x042F, 0x20),
		v(0x0430, 0x045F),
	)
	rows = casePairs(rows, 0x0460, 0x0481)
	rows = casePairs(rows, 0x048A, 0x04BF)

	rows = append(rows,
		// Hebrew.
		v(0x0591, 0x05BD),
		v(0x05D0, 0x05EA),

		// Arabic.
		v(0x0621, 0x063A),
		v(0x0641, 0x0655),
		v(0x0660, 0x0669),
		v(0x0670, 0x0670),
		v(0x0671, 0x06D3),
		v(0x06F0, 0x06F9),

		// Devanagari.
		v(0x0900, 0x097F),

		// General punctuation: spaces fold to the ASCII space, the
		// zero-width set is ignored or deviation, bidi marks stay out.
		tableRow{lo: 0x2000, hi: 0x200A, status: DisallowedSTD3Mapped, rep: []rune(" ")},
		ign(0x200B, 0x200B),
		dev(0x200C, ""),
		dev(0x200D, ""),
		dis(0x200E, 0x200F),
		v(0x2010, 0x2010),
		mapTo(0x2011, "‐"),
		ign(0x2060, 0x2060),
		dis(0x2061, 0x2064),

		// Ideographic punctuation and Kana.
		std3MapTo(0x3000, " "),
		mapTo(0x3002, "."),
		v(0x3041, 0x3096),
		v(0x3099, 0x309A),
		v(0x309D, 0x309E),
		v(0x30A1, 0x30FA),
		v(0x30FC, 0x30FE),

		// Unified CJK and Hangul.
		v(0x3400, 0x4DBF),
		v(0x4E00, 0x9FFF),
		v(0xAC00, 0xD7A3),

		// Latin ligatures.
		mapTo(0xFB00, "ff"),
		mapTo(0xFB01, "fi"),
		mapTo(0xFB02, "fl"),
		mapTo(0xFB03, "ffi"),
		mapTo(0xFB04, "ffl"),
		mapTo(0xFB05, "st"),
		mapTo(0xFB06, "st"),

		// Variation selectors and the byte order mark.
		ign(0xFE00, 0xFE0F),
		ign(0xFEFF, 0xFEFF),

		// Fullwidth and halfwidth forms fold onto their ASCII
		// counterparts; targets outside LDH keep their STD3 status.
		std3Map(0xFF01, 0xFF0C, -0xFEE0),
		caseRange(0xFF0D, 0xFF0D, -0xFEE0),
		mapTo(0xFF0E, "."),
		std3Map(0xFF0F, 0xFF0F, -0xFEE0),
		caseRange(0xFF10, 0xFF19, -0xFEE0),
		std3Map(0xFF1A, 0xFF20, -0xFEE0),
		caseRange(0xFF21, 0xFF3A, -0xFEC0),
		std3Map(0xFF3B, 0xFF40, -0xFEE0),
		caseRange(0xFF41, 0xFF5A, -0xFEE0),
		std3Map(0xFF5B, 0xFF5E, -0xFEE0),
		mapTo(0xFF61, "."),

		// CJK Extension B and the supplementary variation selectors.
		v(0x20000, 0x2A6DF),
		ign(0xE0100, 0xE01EF),
	)
	return rows
}
