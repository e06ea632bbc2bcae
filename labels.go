package idna

import "github.com/pkg/errors"

// SplitLabels partitions cps on the separator sep. Labels may be
// empty: a leading, trailing or doubled separator yields an empty
// label, and splitting the empty sequence yields one empty label.
func SplitLabels(cps []rune, sep rune) [][]rune {
	labels := make([][]rune, 0, 4)
	start := 0
	for i, cp := range cps {
		if cp == sep {
			labels = append(labels, cps[start:i:i])
			start = i + 1
		}
	}
	return append(labels, cps[start:])
}

const hyphen = 0x002D

// validateLabels checks every label of a mapped, split domain.
//
// The hyphen rule matches the behaviour this codec is wire-compatible
// with: a label is rejected when its first or last codepoint is a
// hyphen, or when either position 3 or position 4 (1-indexed) is a
// hyphen. The positional rule also rejects any label that already
// carries the "xn--" prefix on the ToASCII path; pre-encoded input is
// not accepted.
func validateLabels(labels [][]rune, checkHyphens bool) error {
	for _, label := range labels {
		if len(label) == 0 {
			return errors.New("empty label")
		}
		for _, cp := range label {
			// Labels are separator-free by construction.
			idnaAssert(cp != labelSeparator, "label separator inside label")
		}
		if !checkHyphens {
			continue
		}
		if label[0] == hyphen || label[len(label)-1] == hyphen {
			return errors.Errorf("label %q begins or ends with a hyphen", string(label))
		}
		if len(label) >= 3 && label[2] == hyphen {
			return errors.Errorf("label %q has a hyphen in position 3", string(label))
		}
		if len(label) >= 4 && label[3] == hyphen {
			return errors.Errorf("label %q has a hyphen in position 4", string(label))
		}
	}
	return nil
}

// validateBidi is a declared extension point for the bidirectional
// rule of RFC 5893 section 2. The rule is not enforced by this
// package; callers that need it layer the check on top.
func validateBidi(label []rune) error {
	return nil
}

// validateJoiners is a declared extension point for the ContextJ rules
// on zero-width joiners. Not enforced by this package.
func validateJoiners(label []rune) error {
	return nil
}
