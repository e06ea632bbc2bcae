package idna

import (
	"strings"

	"github.com/npillmayer/idna/punycode"
	"github.com/pkg/errors"
)

// Options configures a ToASCII or ToUnicode conversion. Use
// DefaultOptions as the starting point; the zero value of Delimiter is
// treated as the standard full stop.
type Options struct {
	// TransitionalProcessing rewrites deviation codepoints (ß, ς, and
	// the zero-width joiners) to their transitional equivalents before
	// further mapping, for compatibility with IDNA2003-era resolvers.
	TransitionalProcessing bool

	// CheckHyphens rejects labels with a hyphen in position 1, 3, 4 or
	// last.
	CheckHyphens bool

	// CheckBidi accepts the RFC 5893 flag; the rule itself is an
	// extension point and not enforced here.
	CheckBidi bool

	// CheckJoiners accepts the ContextJ flag; the rule itself is an
	// extension point and not enforced here.
	CheckJoiners bool

	// UseSTD3ASCIIRules treats the disallowed_STD3_* statuses as
	// disallowed. When false, disallowed_STD3_valid codepoints are
	// accepted and disallowed_STD3_mapped codepoints are mapped.
	UseSTD3ASCIIRules bool

	// ReportDisallowed surfaces disallowed codepoints on the debug
	// channel. Reporting never aborts a conversion by itself.
	ReportDisallowed bool

	// Delimiter is the label separator codepoint.
	Delimiter rune

	// Encode renders a codepoint sequence as bytes; nil means UTF-8.
	Encode punycode.Encoder

	// Decode parses bytes into a codepoint sequence; nil means UTF-8.
	Decode punycode.Decoder
}

// DefaultOptions returns the standard conversion configuration:
// transitional processing, hyphen checking and the STD3 ASCII rules
// on, UTF-8 at the byte boundary, '.' as separator.
func DefaultOptions() Options {
	return Options{
		TransitionalProcessing: true,
		CheckHyphens:           true,
		UseSTD3ASCIIRules:      true,
		Delimiter:              labelSeparator,
	}
}

func (o Options) sep() rune {
	if o.Delimiter == 0 {
		return labelSeparator
	}
	return o.Delimiter
}

func (o Options) enc(cps []rune) []byte {
	if o.Encode != nil {
		return o.Encode(cps)
	}
	return []byte(string(cps))
}

func (o Options) dec(b []byte) []rune {
	if o.Decode != nil {
		return o.Decode(b)
	}
	return []rune(string(b))
}

// ToASCII converts a domain name to its ASCII Compatible Encoding
// using the builtin mapping table.
func ToASCII(domain string, opts Options) (string, error) {
	return Builtin().ToASCII(domain, opts)
}

// ToUnicode converts an ACE domain name back to Unicode using the
// builtin mapping table.
func ToUnicode(domain string, opts Options) (string, error) {
	return Builtin().ToUnicode(domain, opts)
}

// ToASCII runs the full conversion pipeline: mapping, label splitting,
// validation, and per-label Punycode encoding. One failing label
// poisons the whole domain; the cause is traced and returned.
func (t *Table) ToASCII(domain string, opts Options) (string, error) {
	cps := opts.dec([]byte(domain))
	mapped, disallowed := t.Map(cps, opts)
	if len(disallowed) > 0 {
		tracer().Debugf("disallowed codepoints in %q: %U", domain, disallowed)
	}
	labels := SplitLabels(mapped, opts.sep())
	if err := validateLabels(labels, opts.CheckHyphens); err != nil {
		tracer().Errorf("domain %q fails validation: %v", domain, err)
		return "", err
	}
	for _, label := range labels {
		if opts.CheckBidi {
			if err := validateBidi(label); err != nil {
				return "", err
			}
		}
		if opts.CheckJoiners {
			if err := validateJoiners(label); err != nil {
				return "", err
			}
		}
	}
	sep := string(opts.enc([]rune{opts.sep()}))
	var b strings.Builder
	for i, label := range labels {
		ace, err := punycode.EncodeLabel(string(opts.enc(label)), opts.Decode)
		if err != nil {
			tracer().Errorf("cannot encode label %q: %v", string(label), err)
			return "", errors.Wrapf(err, "label %q", string(label))
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(ace)
	}
	return b.String(), nil
}

// ToUnicode converts an ACE domain name back to Unicode: split, then
// per-label Punycode decoding. No mapping and no validation take
// place; decoding is lossless over valid ACE input.
func (t *Table) ToUnicode(domain string, opts Options) (string, error) {
	cps := opts.dec([]byte(domain))
	labels := SplitLabels(cps, opts.sep())
	sep := string(opts.enc([]rune{opts.sep()}))
	var b strings.Builder
	for i, label := range labels {
		u, err := punycode.DecodeLabel(string(opts.enc(label)), opts.Encode)
		if err != nil {
			tracer().Errorf("cannot decode label %q: %v", string(label), err)
			return "", errors.Wrapf(err, "label %q", string(label))
		}
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(u)
	}
	return b.String(), nil
}
