package idna

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceEntryReader struct {
	entries []tableRow
	index   int
}

func (r *sliceEntryReader) Next() (rune, rune, Status, []rune, error) {
	if r.index >= len(r.entries) {
		return 0, 0, 0, nil, io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry.lo, entry.hi, entry.status, entry.rep, nil
}

func TestLoadMappingTable(t *testing.T) {
	table, err := LoadMappingTable("stream-entries", &sliceEntryReader{
		entries: []tableRow{
			{lo: 'a', hi: 'z', status: Valid},
			{lo: 'A', hi: 'A', status: Mapped, rep: []rune("a")},
			{lo: 'B', hi: 'B', status: Mapped, rep: []rune("b")},
			{lo: 0x00DF, hi: 0x00DF, status: Deviation, rep: []rune("ss")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, MappingEntry{Status: Valid}, table.Lookup('q'))
	assert.Equal(t, MappingEntry{Status: Mapped, Replacement: []rune("a")}, table.Lookup('A'))
	assert.Equal(t, MappingEntry{Status: Deviation, Replacement: []rune("ss")}, table.Lookup(0x00DF))
	assert.Equal(t, MappingEntry{Status: Disallowed}, table.Lookup('!'))
}

func TestLoadMappingTableCoalescesCaseRuns(t *testing.T) {
	// Single-codepoint case mappings arrive one row per codepoint in
	// the source data and must compile into one delta record.
	entries := make([]tableRow, 0, 26)
	for cp := rune('A'); cp <= 'Z'; cp++ {
		entries = append(entries, tableRow{lo: cp, hi: cp, status: Mapped, rep: []rune{cp + 0x20}})
	}
	table, err := LoadMappingTable("case-run", &sliceEntryReader{entries: entries})
	require.NoError(t, err)
	records, poolRunes, covered := table.Stats()
	assert.Equal(t, 1, records)
	assert.Equal(t, 0, poolRunes)
	assert.Equal(t, int64(26), covered)
	assert.Equal(t, []rune("z"), table.Lookup('Z').Replacement)
}

func TestLoadMappingTableCoalescesAdjacentRanges(t *testing.T) {
	table, err := LoadMappingTable("adjacent", &sliceEntryReader{
		entries: []tableRow{
			{lo: 'a', hi: 'm', status: Valid},
			{lo: 'n', hi: 'z', status: Valid},
		},
	})
	require.NoError(t, err)
	records, _, _ := table.Stats()
	assert.Equal(t, 1, records)
}

func TestLoadMappingTableRejectsOverlap(t *testing.T) {
	_, err := LoadMappingTable("overlap", &sliceEntryReader{
		entries: []tableRow{
			{lo: 'a', hi: 'z', status: Valid},
			{lo: 'm', hi: 'p', status: Disallowed},
		},
	})
	assert.Error(t, err)
}

func TestLoadMappingTableRejectsStrayReplacement(t *testing.T) {
	_, err := LoadMappingTable("stray", &sliceEntryReader{
		entries: []tableRow{
			{lo: 'a', hi: 'a', status: Valid, rep: []rune("b")},
		},
	})
	assert.Error(t, err)
}

func TestBuiltinLookup(t *testing.T) {
	table := Builtin()
	tests := []struct {
		cp   rune
		want MappingEntry
	}{
		{cp: 'a', want: MappingEntry{Status: Valid}},
		{cp: '-', want: MappingEntry{Status: Valid}},
		{cp: 'A', want: MappingEntry{Status: Mapped, Replacement: []rune("a")}},
		{cp: '_', want: MappingEntry{Status: DisallowedSTD3Valid}},
		{cp: 0x00DF, want: MappingEntry{Status: Deviation, Replacement: []rune("ss")}},
		{cp: 0x200C, want: MappingEntry{Status: Deviation, Replacement: []rune{}}},
		{cp: 0x00AD, want: MappingEntry{Status: Ignored}},
		{cp: 0x3002, want: MappingEntry{Status: Mapped, Replacement: []rune(".")}},
		{cp: 0xFF21, want: MappingEntry{Status: Mapped, Replacement: []rune("a")}},
		{cp: 0xFB01, want: MappingEntry{Status: Mapped, Replacement: []rune("fi")}},
		{cp: 0x4E2D, want: MappingEntry{Status: Valid}},
		{cp: 0x2062, want: MappingEntry{Status: Disallowed}},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, table.Lookup(tt.cp), "Lookup(%#U)", tt.cp)
	}
}

func TestLookupIsTotal(t *testing.T) {
	table := Builtin()
	for _, cp := range []rune{-1, 0x110000, 0x10FFFF, 0xE01F0} {
		assert.Equalf(t, Disallowed, table.Lookup(cp).Status, "Lookup(%#x)", cp)
	}
}

func TestBuiltinStats(t *testing.T) {
	records, _, covered := Builtin().Stats()
	assert.Greater(t, records, 100)
	assert.Greater(t, covered, int64(50000))
}
