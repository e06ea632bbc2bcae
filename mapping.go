package idna

// Separator codepoints that normalise to the standard full stop.
const (
	ideographicFullStop = 0x3002
	fullwidthFullStop   = 0xFF0E
	halfwidthFullStop   = 0xFF61
	labelSeparator      = 0x002E
)

// Map applies the mapping step of Uniform IDNA Processing: deviation
// rewriting (transitional only), separator normalisation, removal of
// ignored codepoints, table mapping, and the STD3 relaxation. The
// passes run in exactly this order, so that exotic full stops inside
// rewritten sequences are honoured as separators.
//
// Mapping never fails and never short-circuits: disallowed codepoints
// stay in the output and are returned in the report (when requested by
// opts.ReportDisallowed) for the caller to surface. Under the STD3
// ASCII rules the report additionally covers the disallowed_STD3_*
// statuses.
func (t *Table) Map(cps []rune, opts Options) (mapped, disallowed []rune) {
	out := cps
	if opts.TransitionalProcessing {
		out = t.rewriteDeviations(out)
	}
	out = normalizeSeparators(out)
	out = t.dropIgnored(out)
	out = t.applyMappings(out)
	if opts.ReportDisallowed {
		disallowed = t.collectDisallowed(out, opts.UseSTD3ASCIIRules)
	}
	if !opts.UseSTD3ASCIIRules {
		out = t.relaxSTD3(out)
	}
	return out, disallowed
}

// splice runs one replacement pass: for every codepoint of the given
// status, the record's replacement sequence is spliced in. The output
// length may change.
func (t *Table) splice(cps []rune, status Status) []rune {
	out := make([]rune, 0, len(cps))
	for _, cp := range cps {
		if r := t.find(cp); r != nil && r.status == status {
			out = append(out, t.replacement(r, cp)...)
			continue
		}
		out = append(out, cp)
	}
	return out
}

func (t *Table) rewriteDeviations(cps []rune) []rune {
	return t.splice(cps, Deviation)
}

func (t *Table) applyMappings(cps []rune) []rune {
	return t.splice(cps, Mapped)
}

func (t *Table) relaxSTD3(cps []rune) []rune {
	return t.splice(cps, DisallowedSTD3Mapped)
}

func normalizeSeparators(cps []rune) []rune {
	out := make([]rune, len(cps))
	for i, cp := range cps {
		switch cp {
		case ideographicFullStop, fullwidthFullStop, halfwidthFullStop:
			out[i] = labelSeparator
		default:
			out[i] = cp
		}
	}
	return out
}

func (t *Table) dropIgnored(cps []rune) []rune {
	out := make([]rune, 0, len(cps))
	for _, cp := range cps {
		if r := t.find(cp); r != nil && r.status == Ignored {
			continue
		}
		out = append(out, cp)
	}
	return out
}

func (t *Table) collectDisallowed(cps []rune, useSTD3ASCIIRules bool) []rune {
	var report []rune
	for _, cp := range cps {
		r := t.find(cp)
		switch {
		case r == nil || r.status == Disallowed:
			report = append(report, cp)
		case useSTD3ASCIIRules && (r.status == DisallowedSTD3Valid || r.status == DisallowedSTD3Mapped):
			report = append(report, cp)
		}
	}
	return report
}
