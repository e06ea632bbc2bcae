package idna

import (
	"io"
	"sort"
	"unicode"

	"github.com/pkg/errors"
)

// Status classifies a codepoint according to the Unicode IDNA mapping
// table.
type Status uint8

const (
	// Valid codepoints pass through the mapping step unchanged.
	Valid Status = iota
	// Ignored codepoints are removed during mapping.
	Ignored
	// Mapped codepoints are replaced by their replacement sequence.
	Mapped
	// Deviation codepoints are rewritten only under transitional
	// processing; the replacement is the transitional equivalent.
	Deviation
	// Disallowed codepoints are reported, never rewritten.
	Disallowed
	// DisallowedSTD3Valid codepoints are valid except under the strict
	// STD3 ASCII rules.
	DisallowedSTD3Valid
	// DisallowedSTD3Mapped codepoints are mapped except under the
	// strict STD3 ASCII rules.
	DisallowedSTD3Mapped
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Ignored:
		return "ignored"
	case Mapped:
		return "mapped"
	case Deviation:
		return "deviation"
	case Disallowed:
		return "disallowed"
	case DisallowedSTD3Valid:
		return "disallowed_STD3_valid"
	case DisallowedSTD3Mapped:
		return "disallowed_STD3_mapped"
	}
	return "unknown"
}

// hasReplacement reports whether entries of this status carry a
// replacement sequence.
func (s Status) hasReplacement() bool {
	return s == Mapped || s == Deviation || s == DisallowedSTD3Mapped
}

// MappingEntry is the classification of one codepoint.
//
// Replacement is meaningful for the Mapped, Deviation and
// DisallowedSTD3Mapped statuses and may be empty (the two zero-width
// deviation codepoints map to the empty sequence).
type MappingEntry struct {
	Status      Status
	Replacement []rune
}

// EntryReader yields mapping table rows one-by-one, lowest codepoint
// first. Replacement must be nil for statuses that carry none.
// It should return io.EOF when the stream is exhausted.
type EntryReader interface {
	Next() (lo, hi rune, status Status, replacement []rune, err error)
}

// rangeRecord is one compiled run of codepoints sharing a status.
// Replacements come in two forms: delta != 0 encodes per-codepoint case
// runs (replacement is cp+delta), repLen > 0 references the shared rune
// pool (the same sequence for every codepoint in the run).
type rangeRecord struct {
	lo, hi rune
	status Status
	delta  rune
	repOff uint32
	repLen uint16
}

const numBlocks = (unicode.MaxRune >> 8) + 2

// Table is a frozen IDNA mapping table: sorted disjoint range records
// over [0, 0x10FFFF], a shared replacement pool, and a first-stage
// block index keyed by the high bits of the codepoint that narrows the
// binary search. Codepoints not covered by any record are Disallowed,
// matching the treatment of unassigned codepoints in the source data.
// A Table is immutable after load and safe for concurrent use.
type Table struct {
	Identifier string
	records    []rangeRecord
	pool       []rune
	blocks     [numBlocks]uint32
}

// Lookup classifies one codepoint. The table is total: every input,
// including out-of-range integers, yields an entry.
func (t *Table) Lookup(cp rune) MappingEntry {
	r := t.find(cp)
	if r == nil {
		return MappingEntry{Status: Disallowed}
	}
	entry := MappingEntry{Status: r.status}
	if r.status.hasReplacement() {
		entry.Replacement = t.replacement(r, cp)
	}
	return entry
}

// Stats reports size metrics for the compiled table.
func (t *Table) Stats() (records, poolRunes int, covered int64) {
	for _, r := range t.records {
		covered += int64(r.hi) - int64(r.lo) + 1
	}
	return len(t.records), len(t.pool), covered
}

func (t *Table) find(cp rune) *rangeRecord {
	if cp < 0 || cp > unicode.MaxRune {
		return nil
	}
	rs := t.records[t.blocks[cp>>8]:]
	i := sort.Search(len(rs), func(i int) bool { return rs[i].hi >= cp })
	if i == len(rs) || rs[i].lo > cp {
		return nil
	}
	return &rs[i]
}

func (t *Table) replacement(r *rangeRecord, cp rune) []rune {
	if r.delta != 0 {
		return []rune{cp + r.delta}
	}
	return t.pool[r.repOff : r.repOff+uint32(r.repLen)]
}

// tableRow is one uncompiled row, as fed by an EntryReader or by the
// builtin data. Either delta or rep may be set, not both.
type tableRow struct {
	lo, hi rune
	status Status
	delta  rune
	rep    []rune
}

// LoadMappingTable compiles a mapping table from a streaming,
// format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use
// adapters like package ucd to parse the official IdnaMappingTable.txt
// and feed this API.
func LoadMappingTable(name string, reader EntryReader) (*Table, error) {
	rows := make([]tableRow, 0, 4096)
	for {
		lo, hi, status, rep, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if lo > hi || lo < 0 || hi > unicode.MaxRune {
			return nil, errors.Errorf("invalid codepoint range %#U..%#U", lo, hi)
		}
		if rep != nil && !status.hasReplacement() {
			return nil, errors.Errorf("replacement given for status %s at %#U", status, lo)
		}
		rows = append(rows, tableRow{lo: lo, hi: hi, status: status, rep: rep})
	}
	table, err := buildTable(name, rows)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot compile mapping table %q", name)
	}
	records, poolRunes, covered := table.Stats()
	tracer().Infof("mapping table %q: records=%d pool=%d covered=%d",
		name, records, poolRunes, covered)
	return table, nil
}

// buildTable sorts, checks and coalesces rows into a frozen Table.
func buildTable(name string, rows []tableRow) (*Table, error) {
	// Normalize single-codepoint case mappings to delta form so that
	// runs like A..Z (listed one row per codepoint in the source data)
	// coalesce into a single record.
	for i := range rows {
		r := &rows[i]
		if r.delta == 0 && r.lo == r.hi && len(r.rep) == 1 && r.rep[0] != r.lo {
			r.delta = r.rep[0] - r.lo
			r.rep = nil
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].lo < rows[j].lo })
	table := &Table{Identifier: name}
	for _, row := range rows {
		if n := len(table.records); n > 0 {
			prev := &table.records[n-1]
			if row.lo <= prev.hi {
				return nil, errors.Errorf("overlapping ranges at %#U", row.lo)
			}
			if table.merge(prev, row) {
				continue
			}
		}
		rec := rangeRecord{lo: row.lo, hi: row.hi, status: row.status, delta: row.delta}
		if len(row.rep) > 0 {
			rec.repOff = uint32(len(table.pool))
			rec.repLen = uint16(len(row.rep))
			table.pool = append(table.pool, row.rep...)
		}
		table.records = append(table.records, rec)
	}
	table.freeze()
	return table, nil
}

// merge extends prev by row when the two are adjacent and express the
// same classification. Reports whether the row was absorbed.
func (t *Table) merge(prev *rangeRecord, row tableRow) bool {
	if row.lo != prev.hi+1 || row.status != prev.status || row.delta != prev.delta {
		return false
	}
	if int(prev.repLen) != len(row.rep) {
		return false
	}
	for i, cp := range row.rep {
		if t.pool[int(prev.repOff)+i] != cp {
			return false
		}
	}
	prev.hi = row.hi
	return true
}

// freeze builds the block index over the sorted records.
func (t *Table) freeze() {
	ri := 0
	for b := range t.blocks {
		start := rune(b) << 8
		for ri < len(t.records) && t.records[ri].hi < start {
			ri++
		}
		t.blocks[b] = uint32(ri)
	}
}
