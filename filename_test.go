package paperpress_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/paperpress/paperpress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{"plain title", "My Article", 60, "My_Article"},
		{"strips punctuation", "What?! A \"Quote\": Yes/No", 60, "What_A_Quote_YesNo"},
		{"collapses whitespace", "too   many\t\tspaces", 60, "too_many_spaces"},
		{"trims leading dots", "...hidden", 60, "hidden"},
		{"empty falls back to default", "!!!", 60, "article"},
		{"truncates preserving extension", "a-very-long-name-that-exceeds.pdf", 20, "a-very-long-name.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := paperpress.SanitizeFilename(tt.input, tt.max)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, len(got), tt.max)
		})
	}
}

func TestUniquePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	first := paperpress.UniquePath(dir, "story", ".pdf")
	assert.Equal(t, filepath.Join(dir, "story.pdf"), first)

	require.NoError(t, os.WriteFile(first, []byte("x"), 0o644))
	second := paperpress.UniquePath(dir, "story", ".pdf")
	assert.Equal(t, filepath.Join(dir, "story_1.pdf"), second)

	require.NoError(t, os.WriteFile(second, []byte("x"), 0o644))
	third := paperpress.UniquePath(dir, "story", ".pdf")
	assert.Equal(t, filepath.Join(dir, "story_2.pdf"), third)
}
