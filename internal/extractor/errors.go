package extractor

import "fmt"

// MalformedBlockError reports a fenced code block that was opened but never
// closed. Offset is the byte offset of the block body.
type MalformedBlockError struct {
	Path   string
	Offset int
	Line   int
	Info   string
}

func (e *MalformedBlockError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Info != "" {
		return fmt.Sprintf("unterminated code block %q at %s:%d (offset %d)", e.Info, where, e.Line, e.Offset)
	}
	return fmt.Sprintf("unterminated code block at %s:%d (offset %d)", where, e.Line, e.Offset)
}

// QuotedBlockError reports a code block inside a block quote. Its body is
// not a contiguous run of code, so it cannot be woven.
type QuotedBlockError struct {
	Path string
	Line int
	Info string
}

func (e *QuotedBlockError) Error() string {
	return fmt.Sprintf("code block %q at %s:%d is inside a block quote", e.Info, e.Path, e.Line)
}
