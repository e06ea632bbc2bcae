/*
Package idna converts internationalized domain names to and from their
ASCII Compatible Encoding (ACE), in which every non-ASCII label is
replaced by a Punycode-encoded label carrying the "xn--" prefix.

The pipeline follows the Uniform IDNA Processing model: codepoints are
mapped against the Unicode IDNA mapping table (case folding, ignored
removal, deviation handling, separator normalisation), split into
labels, validated, and encoded label by label through package punycode.

The mapping table is pluggable. Builtin() returns a compiled subset of
the Unicode table covering the common scripts; the full official
IdnaMappingTable.txt can be ingested through package ucd and the
streaming EntryReader interface.

Further Reading

	https://www.unicode.org/reports/tr46/            (Uniform processing)
	https://www.rfc-editor.org/rfc/rfc3492           (Punycode)
	https://www.unicode.org/Public/idna/             (mapping table data)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package idna

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'idna'
func tracer() tracing.Trace {
	return tracing.Select("idna")
}

func idnaAssert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
