package web

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const draftSource = `
# heading
text is *text*

###### ⟨subhead⟩

## Head sub

And a paragraph
gggg

` + "```" + `
Cargo? What cargo?
` + "```" + `

` + "```rust" + `
fn a () { "bee" }

println!("{}", a());
` + "```" + `
`

func TestWeaver_RootWithoutHeader(t *testing.T) {
	w := buildWeb(t, "rust", draftSource)
	out, err := NewWeaver(w).Weave("")
	require.NoError(t, err)
	assert.Equal(t, "fn a () { \"bee\" }\n\nprintln!(\"{}\", a());\n", out)
	assert.NotContains(t, out, "Cargo")
}

func TestWeaver_Continuation(t *testing.T) {
	w := buildWeb(t, "go", fence("go", "⟨greet⟩≡\nhello\n")+fence("go", "⟨greet⟩+≡\nworld\n"))
	out, err := NewWeaver(w).Weave("greet")
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld\n", out)
}

func TestWeaver_InlinesWithMarker(t *testing.T) {
	w := buildWeb(t, "go", fence("go", "⟨helper⟩≡\nfn helper(){}\n")+fence("go", "⟨⟩≡\n⟨helper⟩\nmain();\n"))
	out, err := NewWeaver(w).Weave("")
	require.NoError(t, err)
	assert.Equal(t, "\n// ⟨helper⟩\nfn helper(){}\n\nmain();\n", out)
}

func TestWeaver_OrderIgnoresStartFlag(t *testing.T) {
	w := buildWeb(t, "go", fence("go", "⟨g⟩+≡\nA\n")+fence("go", "⟨g⟩≡\nB\n")+fence("go", "⟨g⟩+≡\nC\n"))
	out, err := NewWeaver(w).Weave("g")
	require.NoError(t, err)
	assert.Equal(t, "A\nB\nC\n", out)
}

func TestWeaver_UnresolvedReferenceIsOmitted(t *testing.T) {
	with := buildWeb(t, "go", fence("go", "before ⟨missing⟩ after\n"))
	without := buildWeb(t, "go", fence("go", "before  after\n"))

	var dropped []UnresolvedReference
	got, err := NewWeaver(with, WithUnresolvedHandler(func(u UnresolvedReference) {
		dropped = append(dropped, u)
	})).Weave("")
	require.NoError(t, err)
	want, err := NewWeaver(without).Weave("")
	require.NoError(t, err)

	assert.Equal(t, want, got)
	require.Len(t, dropped, 1)
	assert.Equal(t, "missing", dropped[0].Key)
	assert.Equal(t, "", dropped[0].From)
	assert.Equal(t, "doc0.md:2", dropped[0].Location.String())
}

func TestWeaver_StrictUnresolved(t *testing.T) {
	doc := fence("go", "⟨missing⟩\n⟨a⟩\n") + fence("go", "⟨a⟩≡\n⟨missing⟩\n")
	w := buildWeb(t, "go", doc)

	_, err := NewWeaver(w, WithStrict(true)).Weave("")
	require.Error(t, err)
	var ue *UnresolvedReferenceError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "missing", ue.Name)
	assert.Len(t, ue.Locations, 2)
	assert.Contains(t, ue.Error(), "doc0.md:2")
}

func TestWeaver_SectionNotFound(t *testing.T) {
	w := buildWeb(t, "go", fence("go", "⟨a⟩≡\nx\n"))
	_, err := NewWeaver(w).Weave("")
	require.ErrorIs(t, err, ErrSectionNotFound)
	assert.Contains(t, err.Error(), "(root)")

	_, err = NewWeaver(w).Weave("b")
	assert.ErrorIs(t, err, ErrSectionNotFound)
}

func TestWeaver_Cycles(t *testing.T) {
	t.Run("self reference", func(t *testing.T) {
		w := buildWeb(t, "go", fence("go", "⟨a⟩≡\nx ⟨a⟩\n"))
		_, err := NewWeaver(w).Weave("a")
		var ce *CyclicReferenceError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, []string{"a", "a"}, ce.Path)
	})

	t.Run("indirect", func(t *testing.T) {
		doc := fence("go", "⟨⟩≡\n⟨a⟩\n") + fence("go", "⟨a⟩≡\n⟨b⟩\n") + fence("go", "⟨b⟩≡\n⟨a⟩\n")
		w := buildWeb(t, "go", doc)
		_, err := NewWeaver(w).Weave("")
		var ce *CyclicReferenceError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, []string{"a", "b", "a"}, ce.Path)
		assert.Equal(t, "cyclic reference: a -> b -> a", ce.Error())
	})

	t.Run("diamond is not a cycle", func(t *testing.T) {
		doc := fence("go", "⟨⟩≡\n⟨a⟩⟨b⟩\n") + fence("go", "⟨a⟩≡\n⟨c⟩\n") + fence("go", "⟨b⟩≡\n⟨c⟩\n") + fence("go", "⟨c⟩≡\nC\n")
		w := buildWeb(t, "go", doc)
		out, err := NewWeaver(w, WithMarkers(false)).Weave("")
		require.NoError(t, err)
		assert.Equal(t, 2, strings.Count(out, "C\n"))
	})
}

func TestWeaver_RepeatedReferencesExpandEachTime(t *testing.T) {
	doc := fence("go", "⟨⟩≡\n⟨h⟩\n⟨h⟩\n") + fence("go", "⟨h⟩≡\nH\n")
	w := buildWeb(t, "go", doc)
	out, err := NewWeaver(w, WithCommentPrefix("#")).Weave("")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "H\n"))
	assert.Equal(t, 2, strings.Count(out, "# ⟨h⟩\n"))
}

func TestWeaver_NormalizedNames(t *testing.T) {
	doc := fence("go", "⟨⟩≡\n⟨read the\n   input⟩\n") + fence("go", "⟨read  the input⟩≡\nread()\n")
	w := buildWeb(t, "go", doc)
	out, err := NewWeaver(w, WithMarkers(false)).Weave("")
	require.NoError(t, err)
	assert.Equal(t, "read()\n\n", out)

	out, err = NewWeaver(w).Weave("  read the   input ")
	require.NoError(t, err)
	assert.Equal(t, "read()\n", out)
}

func TestWeaver_AcrossDocuments(t *testing.T) {
	w := buildWeb(t, "go", fence("go", "⟨⟩≡\n⟨lib⟩\n"), fence("go", "⟨lib⟩≡\nL\n"), fence("go", "⟨lib⟩+≡\nM\n"))
	out, err := NewWeaver(w, WithMarkers(false)).Weave("")
	require.NoError(t, err)
	assert.Equal(t, "L\nM\n\n", out)
	assert.Len(t, w.Documents(), 3)
}
