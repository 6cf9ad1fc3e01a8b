package doxygen

import (
	"encoding/xml"
	"strings"
)

// Index is the compound index Doxygen writes as index.xml.
type Index struct {
	Compounds []Compound `xml:"compound"`
}

// Compound is one index entry.
type Compound struct {
	RefID   string   `xml:"refid,attr"`
	Kind    string   `xml:"kind,attr"`
	Name    string   `xml:"name"`
	Members []Member `xml:"member"`
}

// Member is a member reference inside a compound or a section.
type Member struct {
	RefID string `xml:"refid,attr"`
	Kind  string `xml:"kind,attr"`
	Name  string `xml:"name"`
}

// Document is one compound document (<refid>.xml).
type Document struct {
	Compounds []CompoundDef `xml:"compounddef"`
}

// CompoundDef is the definition of a file, group or other compound.
type CompoundDef struct {
	ID       string       `xml:"id,attr"`
	Kind     string       `xml:"kind,attr"`
	Name     string       `xml:"compoundname"`
	Sections []SectionDef `xml:"sectiondef"`
}

// SectionDef groups members of one kind. File documents list functions
// defined in a group as <member> references rather than <memberdef>.
type SectionDef struct {
	Kind       string      `xml:"kind,attr"`
	MemberDefs []MemberDef `xml:"memberdef"`
	Members    []Member    `xml:"member"`
}

// MemberDef is a documented member.
type MemberDef struct {
	ID       string      `xml:"id,attr"`
	Kind     string      `xml:"kind,attr"`
	Type     Markup      `xml:"type"`
	Name     string      `xml:"name"`
	Params   []Param     `xml:"param"`
	Brief    Description `xml:"briefdescription"`
	Detailed Description `xml:"detaileddescription"`
}

// Param is a declared parameter.
type Param struct {
	Type     Markup `xml:"type"`
	DeclName string `xml:"declname"`
}

// Description is a brief or detailed description block.
type Description struct {
	Paras []Markup `xml:"para"`
}

// First returns the first paragraph, or an empty one.
func (d Description) First() Markup {
	if len(d.Paras) == 0 {
		return Markup{}
	}
	return d.Paras[0]
}

// ParameterList is a parameterlist nested in a paragraph.
type ParameterList struct {
	Kind  string          `xml:"kind,attr"`
	Items []ParameterItem `xml:"parameteritem"`
}

// ParameterItem documents one or more parameter names.
type ParameterItem struct {
	Names       []ParameterName `xml:"parameternamelist>parametername"`
	Description Description     `xml:"parameterdescription"`
}

// ParameterName is a documented parameter name with its direction.
type ParameterName struct {
	Direction string `xml:"direction,attr"`
	Name      string `xml:",chardata"`
}

// SimpleSect is a titled section (return, note, see...) nested in a paragraph.
type SimpleSect struct {
	Kind  string   `xml:"kind,attr"`
	Paras []Markup `xml:"para"`
}

// ignoredTags render as nothing.
var ignoredTags = map[string]bool{
	"itemizedlist":  true,
	"linebreak":     true,
	"simplesect":    true,
	"parameterlist": true,
}

// Markup is an element with mixed content rendered to plain text. The
// parameter lists and simple sections it contains are kept structurally;
// they contribute nothing to Text.
type Markup struct {
	Text           string
	ParameterLists []ParameterList
	SimpleSects    []SimpleSect
	// Unhandled lists the tags rendered as ERROR, in document order.
	Unhandled []string
}

// UnmarshalXML renders the element's own text and its children's tails,
// joined by single spaces. Children render as follows: formula as a
// :math: role, ref as its text, the ignored tags as nothing, anything else
// as ERROR.
func (m *Markup) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var parts []string
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			parts = append(parts, string(t))
		case xml.EndElement:
			m.Text = collapse(strings.Join(parts, " "))
			return nil
		case xml.StartElement:
			part, err := m.child(d, t)
			if err != nil {
				return err
			}
			parts = append(parts, part)
		}
	}
}

func (m *Markup) child(d *xml.Decoder, start xml.StartElement) (string, error) {
	switch tag := start.Name.Local; {
	case tag == "formula":
		var s string
		if err := d.DecodeElement(&s, &start); err != nil {
			return "", err
		}
		return rstMath(s), nil
	case tag == "ref":
		var s string
		if err := d.DecodeElement(&s, &start); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	case tag == "parameterlist":
		var pl ParameterList
		if err := d.DecodeElement(&pl, &start); err != nil {
			return "", err
		}
		m.ParameterLists = append(m.ParameterLists, pl)
		return "", nil
	case tag == "simplesect":
		var ss SimpleSect
		if err := d.DecodeElement(&ss, &start); err != nil {
			return "", err
		}
		m.SimpleSects = append(m.SimpleSects, ss)
		return "", nil
	case ignoredTags[tag]:
		return "", d.Skip()
	default:
		m.Unhandled = append(m.Unhandled, tag)
		return "ERROR", d.Skip()
	}
}

// rstMath turns a Doxygen inline formula ($...$ or \[...\]) into a :math:
// role. Backslashes are doubled because the text ends up inside C string
// literals.
func rstMath(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case len(s) >= 2 && strings.HasPrefix(s, "$") && strings.HasSuffix(s, "$"):
		s = s[1 : len(s)-1]
	case strings.HasPrefix(s, `\[`) && strings.HasSuffix(s, `\]`) && len(s) >= 4:
		s = s[2 : len(s)-2]
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), `\`, `\\`)
	return ":math:`" + s + "`"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
