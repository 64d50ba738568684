package syntax

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_Check(t *testing.T) {
	c := NewChecker()
	ctx := context.Background()

	tests := []struct {
		name     string
		language string
		text     string
		wantOK   bool
	}{
		{"Go valid", "go", "package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n", true},
		{"Go broken", "go", "package main\n\nfunc main() {\n\tx := \n", false},
		{"Rust valid", "rust", "fn main() {\n    println!(\"hi\");\n}\n", true},
		{"Rust broken", "rust", "fn main( {\n", false},
		{"Python valid", "Python", "def f():\n    return 1\n", true},
		{"JavaScript valid", "js", "function f() { return 1; }\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems, err := c.Check(ctx, tt.language, tt.text)
			require.NoError(t, err)
			if tt.wantOK {
				assert.Empty(t, problems)
				return
			}
			require.NotEmpty(t, problems)
			assert.GreaterOrEqual(t, problems[0].Line, 1)
			assert.GreaterOrEqual(t, problems[0].Column, 1)
		})
	}
}

func TestChecker_UnsupportedLanguage(t *testing.T) {
	_, err := NewChecker().Check(context.Background(), "cobol", "DISPLAY 'HI'.")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
	assert.False(t, Supported("cobol"))
	assert.True(t, Supported("Rust"))
}
