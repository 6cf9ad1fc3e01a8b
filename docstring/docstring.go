// Package docstring renders declarations as numpydoc text.
//
// Output depends only on the Declaration's fields, in their fixed order, so
// identical declarations always render to identical bytes.
package docstring

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/teranos/bindgen/model"
)

// SignatureSeparator sits between the call signature line and the body in
// every autodoc string.
const SignatureSeparator = "\n--\n\n"

// FormatDescription normalizes free text into a sentence: whitespace runs
// collapse to one space, the first word starts upper-case and a period is
// appended when missing. Empty input stays empty.
func FormatDescription(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	words[0] = capitalize(words[0])
	out := strings.Join(words, " ")
	if !strings.HasSuffix(out, ".") {
		out += "."
	}
	return out
}

// capitalize upper-cases the first rune only; identifiers such as
// LinearEquation keep their inner capitals.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	return string(unicode.ToUpper(r)) + word[size:]
}

// CallSignature is the signature line shown above the docstring:
// name(a, b, opt=None, /). The positional-only marker is only added when the
// call takes arguments.
func CallSignature(d model.Declaration) string {
	names := make([]string, 0, len(d.Args)+len(d.OptionalArgs))
	for _, a := range d.Args {
		names = append(names, a.Name)
	}
	for _, a := range d.OptionalArgs {
		names = append(names, a.Name+"=None")
	}
	if len(names) == 0 {
		return d.Name + "()"
	}
	return d.Name + "(" + strings.Join(names, ", ") + ", /)"
}

// Render returns the numpydoc body of d.
func Render(d model.Declaration) string {
	var sb strings.Builder

	sb.WriteString(FormatDescription(d.Brief) + "\n")
	if d.Detailed != "" {
		sb.WriteString("\n" + d.Detailed + "\n")
	}

	if len(d.Args)+len(d.OptionalArgs) > 0 {
		heading(&sb, "Parameters")
	}
	for _, a := range d.Args {
		fmt.Fprintf(&sb, "%s : %s\n", a.Name, a.Type)
		fmt.Fprintf(&sb, "    %s\n", FormatDescription(a.Description))
	}
	for _, a := range d.OptionalArgs {
		fmt.Fprintf(&sb, "%s : %s, optional\n", a.Name, a.Type)
		fmt.Fprintf(&sb, "    %s\n", FormatDescription(a.Description))
	}

	if len(d.Returns) > 0 {
		heading(&sb, "Returns")
	}
	for _, r := range d.Returns {
		if r.Name != "" {
			fmt.Fprintf(&sb, "%s : %s\n", r.Name, r.Type)
		} else {
			sb.WriteString(r.Type + "\n")
		}
		fmt.Fprintf(&sb, "    %s\n", FormatDescription(r.Description))
	}

	if d.Notes != "" {
		sb.WriteString(d.Notes + "\n")
	}
	return sb.String()
}

func heading(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("-", len(title)) + "\n")
}

// Autodoc is the full autodoc string of d: signature line, separator, body.
func Autodoc(d model.Declaration) string {
	return CallSignature(d) + SignatureSeparator + Render(d)
}

// Method renders d as seen through an object method: the handle argument is
// dropped from both the signature and the parameter list, and the displayed
// name loses the given prefixes.
func Method(d model.Declaration, prefixes []string) string {
	return Autodoc(d.Method(prefixes))
}

// Merge returns the public declaration of set with one numbered note per
// source signature, each carrying that source's own rendering.
func Merge(set model.MergedSignatureSet) model.Declaration {
	out := set.Declaration

	var notes strings.Builder
	notes.WriteString(out.Notes)
	for i, sig := range set.Signatures {
		names := make([]string, 0, len(sig.Args))
		for _, a := range sig.Args {
			names = append(names, a.Name)
		}
		fmt.Fprintf(&notes, "**Signature %d: `%s(%s)`**\n", i+1, out.Name, strings.Join(names, ", "))
		notes.WriteString(Render(sig))
	}
	out.Notes = notes.String()
	return out
}
