// Package normalize folds search keywords to a canonical form
// Pipeline order
// 1 drop invalid UTF-8 and control characters
// 2 Unicode NFKC, which also maps fullwidth forms to ASCII
// 3 remove format characters such as ZWJ, ZWNJ and BOM
// 4 collapse whitespace runs to one space and trim
//
// Case is kept: keywords are echoed back as table column names.
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
		)
	},
}

// Keyword returns the canonical form of one keyword
func Keyword(s string) string {
	if s == "" {
		return ""
	}
	s = strings.Map(dropControl, strings.ToValidUTF8(s, ""))

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = norm.NFKC.String(s)
	}
	return strings.Join(strings.Fields(ns), " ")
}

// Keywords normalizes kws in order, dropping empties and later duplicates
func Keywords(kws []string) []string {
	seen := make(map[string]struct{}, len(kws))
	out := make([]string, 0, len(kws))
	for _, kw := range kws {
		kw = Keyword(kw)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

// dropControl removes C0, DEL and C1 controls but turns tabs and newlines into spaces
func dropControl(r rune) rune {
	switch {
	case r == '\t' || r == '\n' || r == '\r':
		return ' '
	case r < 0x20 || r == 0x7F || (r >= 0x80 && r <= 0x9F):
		return -1
	}
	return r
}
