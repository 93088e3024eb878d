// Package canonical turns nested parameter trees into deterministic,
// percent-encoded query strings suitable both for signing and for
// direct transmission as a URL query or form body.
package canonical

import (
	"net/url"
	"slices"
	"strings"
)

// Encode serializes the tree into the canonical query string. The
// output is a pure function of the tree: mapping keys are sorted
// lexicographically, sequence order is preserved, and empty composites
// contribute nothing. Leaves are emitted as escape(path)=escape(value)
// with percent-encoding applied consistently (space as "+").
func Encode(root Node) string {
	return strings.Join(fragments("", root), "&")
}

func fragments(prefix string, n Node) []string {
	switch n.kind {
	case kindSequence:
		var frags []string
		for _, el := range n.seq {
			frags = append(frags, fragments(prefix+"[]", el)...)
		}
		return frags
	case kindMapping:
		keys := make([]string, 0, len(n.mapping))
		for k := range n.mapping {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		var frags []string
		for _, k := range keys {
			child := k
			if prefix != "" {
				child = prefix + "[" + k + "]"
			}
			frags = append(frags, fragments(child, n.mapping[k])...)
		}
		return frags
	default:
		return []string{url.QueryEscape(prefix) + "=" + url.QueryEscape(n.scalar)}
	}
}
