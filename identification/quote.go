package identification

import (
	"fmt"
	"strings"
)

// iriSegmentReserved holds the characters percent-encoded by QuoteIRISegment:
// the RFC 3987 reserved characters except '/', '?', '=', '&' and '#' (which
// are meaningful inside a namespace path, query or fragment), plus characters
// that may not appear in an IRI at all.
const iriSegmentReserved = ":[]@!$'()*+,; \"<>\\^`{|}"

// QuoteIRISegment makes segment safe for appending to a namespace IRI.
// Reserved characters are percent-encoded with uppercase hex digits and ASCII
// control characters are dropped. Non-ASCII characters are kept as they are.
func QuoteIRISegment(segment string) string {
	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		switch {
		case r < 0x20 || r == 0x7f:
		case strings.ContainsRune(iriSegmentReserved, r):
			fmt.Fprintf(&b, "%%%02X", r)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
