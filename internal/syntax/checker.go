// Package syntax checks woven output with tree-sitter grammars.
package syntax

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
)

var ErrUnsupportedLanguage = errors.New("unsupported language")

// ProblemKind classifies a syntax problem.
type ProblemKind string

const (
	KindError   ProblemKind = "error"
	KindMissing ProblemKind = "missing"
)

// Problem is one syntax error in checked text. Line and Column are 1-based.
type Problem struct {
	Line    int
	Column  int
	Kind    ProblemKind
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%d:%d: %s", p.Line, p.Column, p.Message)
}

var grammars = map[string]func() *sitter.Language{
	"go":         golang.GetLanguage,
	"golang":     golang.GetLanguage,
	"rust":       rust.GetLanguage,
	"rs":         rust.GetLanguage,
	"python":     python.GetLanguage,
	"py":         python.GetLanguage,
	"javascript": javascript.GetLanguage,
	"js":         javascript.GetLanguage,
}

// Supported reports whether language has a grammar.
func Supported(language string) bool {
	_, ok := grammars[strings.ToLower(language)]
	return ok
}

// Checker parses source text and reports ERROR and MISSING nodes.
type Checker struct{}

func NewChecker() *Checker {
	return &Checker{}
}

// Check parses text with the grammar for language.
func (c *Checker) Check(ctx context.Context, language string, text string) ([]Problem, error) {
	getLanguage, ok := grammars[strings.ToLower(language)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, language)
	}

	src := []byte(text)
	parser := sitter.NewParser()
	parser.SetLanguage(getLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", language, err)
	}

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}

	var problems []Problem
	collect(root, src, &problems)
	sort.SliceStable(problems, func(i, j int) bool {
		if problems[i].Line != problems[j].Line {
			return problems[i].Line < problems[j].Line
		}
		return problems[i].Column < problems[j].Column
	})
	return problems, nil
}

func collect(n *sitter.Node, src []byte, out *[]Problem) {
	pt := n.StartPoint()
	switch {
	case n.IsMissing():
		*out = append(*out, Problem{
			Line:    int(pt.Row) + 1,
			Column:  int(pt.Column) + 1,
			Kind:    KindMissing,
			Message: fmt.Sprintf("missing %s", n.Type()),
		})
		return
	case n.Type() == "ERROR":
		*out = append(*out, Problem{
			Line:    int(pt.Row) + 1,
			Column:  int(pt.Column) + 1,
			Kind:    KindError,
			Message: fmt.Sprintf("unexpected %q", snippet(n.Content(src))),
		})
		return
	}
	if !n.HasError() {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collect(n.Child(i), src, out)
	}
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 40 {
		s = s[:40] + "..."
	}
	return s
}
