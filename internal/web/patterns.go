package web

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Delimiters are the markers that frame section names in code blocks.
type Delimiters struct {
	Open     string `yaml:"open"`
	Close    string `yaml:"close"`
	Define   string `yaml:"define"`
	Continue string `yaml:"continue"`
}

// DefaultDelimiters returns the ⟨name⟩≡ / ⟨name⟩+≡ convention.
func DefaultDelimiters() Delimiters {
	return Delimiters{Open: "⟨", Close: "⟩", Define: "≡", Continue: "+"}
}

// Patterns holds the compiled header and reference expressions for one set
// of delimiters. A Patterns value is immutable and safe to share.
type Patterns struct {
	delims    Delimiters
	header    *regexp.Regexp
	reference *regexp.Regexp
}

// NewPatterns compiles the expressions for d.
func NewPatterns(d Delimiters) (*Patterns, error) {
	if d.Open == "" || d.Close == "" || d.Define == "" || d.Continue == "" {
		return nil, errors.New("delimiters must all be non-empty")
	}
	if d.Open == d.Close {
		return nil, fmt.Errorf("open and close delimiters must differ, both are %q", d.Open)
	}
	open, closing := regexp.QuoteMeta(d.Open), regexp.QuoteMeta(d.Close)

	header, err := regexp.Compile(`(?s)^\s*` + open + `(.*?)` + closing +
		`(` + regexp.QuoteMeta(d.Continue) + `)?` + regexp.QuoteMeta(d.Define) + `[ \t\r]*`)
	if err != nil {
		return nil, fmt.Errorf("invalid header pattern: %w", err)
	}
	reference, err := regexp.Compile(`(?s)` + open + `.*?` + closing)
	if err != nil {
		return nil, fmt.Errorf("invalid reference pattern: %w", err)
	}
	return &Patterns{delims: d, header: header, reference: reference}, nil
}

// MustDefaultPatterns compiles the default delimiters. It panics only if the
// built-in expressions are broken.
func MustDefaultPatterns() *Patterns {
	p, err := NewPatterns(DefaultDelimiters())
	if err != nil {
		panic(err)
	}
	return p
}

// Delimiters returns the delimiters p was compiled from.
func (p *Patterns) Delimiters() Delimiters {
	return p.delims
}

// ReferenceKey strips the delimiters from a raw reference such as "⟨a  b⟩"
// and returns its normalized key ("a b"). Text that is not framed by the
// delimiters is normalized as is.
func (p *Patterns) ReferenceKey(raw string) string {
	if strings.HasPrefix(raw, p.delims.Open) && strings.HasSuffix(raw, p.delims.Close) &&
		len(raw) >= len(p.delims.Open)+len(p.delims.Close) {
		raw = raw[len(p.delims.Open) : len(raw)-len(p.delims.Close)]
	}
	return Normalize(raw)
}

// Reference renders key back into reference form.
func (p *Patterns) Reference(key string) string {
	return p.delims.Open + key + p.delims.Close
}
