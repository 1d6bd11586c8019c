package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDate(t *testing.T) {
	assert.Equal(t, "2024-05-12 19:00", MatchDate("2024-05-12T19:00:00+00:00"))
	assert.Equal(t, "2024-05-12", MatchDate("2024-05-12T00:00:00+00:00"))
	assert.Equal(t, "soon", MatchDate("soon"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "São…", Truncate("São Paulo", 4))
	assert.Equal(t, "abc", Truncate("abc", 0))
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable([]string{"A", "B"}, [][]string{
		{StyleGreen.Render("long cell"), "x"},
		{"s", "y"},
	}))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Empty(t, RenderTable(nil, nil))
}

func TestInlineValue(t *testing.T) {
	assert.Equal(t, "3", inlineValue(float64(3)))
	assert.Equal(t, "1.5", inlineValue(1.5))
	assert.Equal(t, "a, b", inlineValue([]any{"a", "b"}))
	assert.Equal(t, "x=1, y=-", inlineValue(map[string]any{"y": nil, "x": float64(1)}))
}

func TestShellWelcome_ListsExamplesAndExitWords(t *testing.T) {
	out := stripANSI(FormatShellWelcome())
	for _, q := range ExampleQuestions {
		assert.Contains(t, out, q)
	}
	assert.Contains(t, out, "'sair'")
}
