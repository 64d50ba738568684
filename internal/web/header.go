package web

import "strings"

// Header is the result of looking for a section header at the start of a
// code block body.
type Header struct {
	Present bool
	Name    string // raw, not normalized
	First   bool   // false for ⟨name⟩+≡ and for bodies without a header
	Rest    int    // offset of the body remainder in the parsed text
}

// Key returns the normalized section key.
func (h Header) Key() string {
	return Normalize(h.Name)
}

// ParseHeader recognizes an optional leading ⟨name⟩≡ or ⟨name⟩+≡ line. The
// header line and its newline are excluded from the remainder. A name that
// itself contains a delimiter is unbalanced and does not make a header.
func (p *Patterns) ParseHeader(body string) Header {
	m := p.header.FindStringSubmatchIndex(body)
	if m == nil {
		return Header{}
	}
	name := body[m[2]:m[3]]
	if strings.Contains(name, p.delims.Open) || strings.Contains(name, p.delims.Close) {
		return Header{}
	}
	rest := m[1]
	if rest < len(body) && body[rest] == '\n' {
		rest++
	}
	return Header{
		Present: true,
		Name:    name,
		First:   m[4] < 0,
		Rest:    rest,
	}
}
