// Package ctype canonicalizes C type spellings into comparable keys.
//
// The upstream extraction tools already tokenize declarations, so this is
// not a C parser: it only re-tokenizes a type string so that
// "const double * restrict", "double*" and "double *" all compare equal.
package ctype

import (
	"strings"
	"unicode"

	"github.com/teranos/bindgen/errors"
)

// Qualifiers are dropped during normalization.
var Qualifiers = []string{"const", "restrict"}

// Normalize returns the canonical spelling of typ: tokens separated by one
// space, qualifiers removed, consecutive pointer markers merged ("int **").
//
// Normalize panics with an assertion failure if a qualifier survives, which
// can only happen when Qualifiers and the tokenizer disagree.
func Normalize(typ string) string {
	tokens := tokenize(typ)
	kept := tokens[:0]
	for _, tok := range tokens {
		if !IsQualifier(tok) {
			kept = append(kept, tok)
		}
	}

	out := join(kept)
	checkSurvivors(typ, out)
	return out
}

func checkSurvivors(typ, out string) {
	for _, tok := range strings.Fields(out) {
		if IsQualifier(tok) {
			panic(errors.AssertionFailedf("qualifier %q survived normalization of %q", tok, typ))
		}
	}
}

// IsQualifier reports whether tok is a dropped type qualifier.
func IsQualifier(tok string) bool {
	for _, q := range Qualifiers {
		if tok == q {
			return true
		}
	}
	return false
}

// IsPointer reports whether the normalized type is a pointer.
func IsPointer(normalized string) bool {
	return strings.HasSuffix(normalized, "*")
}

// ReplaceToken substitutes whole-token occurrences of from with to, so
// replacing "int" leaves "uint32_t" and "print" untouched. Qualifiers are
// kept; only the spacing is canonicalized.
func ReplaceToken(typ, from, to string) string {
	tokens := tokenize(typ)
	changed := false
	for i, tok := range tokens {
		if tok == from {
			tokens[i] = to
			changed = true
		}
	}
	if !changed {
		return typ
	}
	return join(tokens)
}

// join concatenates tokens with single spaces and merges "* *" into "**"
// until no further merge is possible.
func join(tokens []string) string {
	out := strings.Join(tokens, " ")
	for strings.Contains(out, "* *") {
		out = strings.ReplaceAll(out, "* *", "**")
	}
	return out
}

// tokenize splits on whitespace and makes every '*' its own token.
func tokenize(typ string) []string {
	var tokens []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range typ {
		switch {
		case r == '*':
			flush()
			tokens = append(tokens, "*")
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}
