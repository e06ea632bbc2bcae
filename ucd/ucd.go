// Package ucd parses the Unicode IDNA mapping table in its official
// file format (IdnaMappingTable.txt, published under
// https://www.unicode.org/Public/idna/) and feeds it to the streaming
// loader of package idna.
//
// Rows look like
//
//	0000..002C    ; disallowed_STD3_valid                  # <control>..COMMA
//	0041          ; mapped                 ; 0061          # LATIN CAPITAL LETTER A
//	00DF          ; deviation              ; 0073 0073     # LATIN SMALL LETTER SHARP S
//	200C          ; deviation              ;               # ZERO WIDTH NON-JOINER
//	3002          ; mapped                 ; 002E          # IDEOGRAPHIC FULL STOP
//
// with hex codepoints, an optional replacement field, and an optional
// IDNA2008 exception column (NV8/XV8) that this parser folds into the
// valid status.
package ucd

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/idna"
	"github.com/pkg/errors"
)

// Reader streams mapping table rows from an IdnaMappingTable.txt
// source. It implements idna.EntryReader.
type Reader struct {
	scanner *bufio.Scanner
	line    int
}

// LoadMappingTable parses official mapping table data and returns a
// ready-to-use table.
func LoadMappingTable(name string, reader io.Reader) (*idna.Table, error) {
	return idna.LoadMappingTable(name, NewReader(reader))
}

func NewReader(reader io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(reader)}
}

// Next returns the next table row. It returns io.EOF when exhausted.
func (r *Reader) Next() (lo, hi rune, status idna.Status, replacement []rune, err error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lo, hi, status, replacement, err = r.decodeRow(line)
		if err != nil {
			return 0, 0, 0, nil, errors.Wrapf(err, "line %d", r.line)
		}
		return lo, hi, status, replacement, nil
	}
	if err := r.scanner.Err(); err != nil {
		return 0, 0, 0, nil, err
	}
	return 0, 0, 0, nil, io.EOF
}

func (r *Reader) decodeRow(line string) (lo, hi rune, status idna.Status, replacement []rune, err error) {
	fields := strings.Split(line, ";")
	if len(fields) < 2 {
		return 0, 0, 0, nil, errors.Errorf("malformed row %q", line)
	}
	lo, hi, err = parseRange(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, 0, nil, err
	}
	status, err = parseStatus(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, 0, nil, err
	}
	if status == idna.Mapped || status == idna.Deviation || status == idna.DisallowedSTD3Mapped {
		if len(fields) < 3 {
			return 0, 0, 0, nil, errors.Errorf("status %s without replacement field", status)
		}
		replacement, err = parseCodepoints(strings.TrimSpace(fields[2]))
		if err != nil {
			return 0, 0, 0, nil, err
		}
	}
	return lo, hi, status, replacement, nil
}

func parseRange(field string) (lo, hi rune, err error) {
	first, rest, isRange := strings.Cut(field, "..")
	lo, err = parseCodepoint(first)
	if err != nil {
		return 0, 0, err
	}
	if !isRange {
		return lo, lo, nil
	}
	hi, err = parseCodepoint(rest)
	return lo, hi, err
}

func parseCodepoint(s string) (rune, error) {
	n, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, errors.Wrapf(err, "bad codepoint %q", s)
	}
	return rune(n), nil
}

func parseCodepoints(field string) ([]rune, error) {
	cps := make([]rune, 0, 2)
	for _, s := range strings.Fields(field) {
		cp, err := parseCodepoint(s)
		if err != nil {
			return nil, err
		}
		cps = append(cps, cp)
	}
	return cps, nil
}

func parseStatus(s string) (idna.Status, error) {
	switch s {
	case "valid":
		return idna.Valid, nil
	case "ignored":
		return idna.Ignored, nil
	case "mapped":
		return idna.Mapped, nil
	case "deviation":
		return idna.Deviation, nil
	case "disallowed":
		return idna.Disallowed, nil
	case "disallowed_STD3_valid":
		return idna.DisallowedSTD3Valid, nil
	case "disallowed_STD3_mapped":
		return idna.DisallowedSTD3Mapped, nil
	}
	return 0, errors.Errorf("unknown status %q", s)
}
