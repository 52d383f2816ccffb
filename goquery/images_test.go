package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Locator implements paperpress.ImageLocator at compile time.
var _ paperpress.ImageLocator = (*goquery.Locator)(nil)

func TestLocator_Locate(t *testing.T) {
	t.Parallel()

	const baseURL = "https://example.com/2024/story"

	page := `<html><body>
		<p>The opening paragraph sets the scene for readers.</p>
		<img src="/images/photo-one.jpg" alt="A crowded market">
		<p>The second paragraph continues the story with detail.</p>
		<figure>
			<img src="https://cdn.example.com/photo-two.png">
			<figcaption>A view of the harbor</figcaption>
		</figure>
		<img src="https://example.com/assets/icon-16x16.png">
		<img src="/images/photo-one.jpg?width=800">
		<img src="https://cdn.example.com/pixel.gif">
	</body></html>`

	l := goquery.NewLocator()
	got, err := l.Locate(page, baseURL)
	require.NoError(t, err)
	require.Len(t, got, 2)

	first := got[0]
	assert.Equal(t, "https://example.com/images/photo-one.jpg", first.URL)
	assert.Equal(t, "A crowded market", first.AltText)
	assert.Equal(t, 0, first.Sequence)
	assert.True(t, first.Valid)
	assert.Equal(t, "scene for readers.", first.ContextBefore)
	assert.Equal(t, "The second paragraph", first.ContextAfter)

	second := got[1]
	assert.Equal(t, "https://cdn.example.com/photo-two.png", second.URL)
	assert.Equal(t, "A view of the harbor", second.Caption)
	assert.Equal(t, 1, second.Sequence)
	assert.Equal(t, "story with detail.", second.ContextBefore)
	assert.Empty(t, second.ContextAfter)
}

func TestLocator_Locate_Filtering(t *testing.T) {
	t.Parallel()

	l := goquery.NewLocator()

	tests := []struct {
		name string
		img  string
	}{
		{"icon keyword", `<img src="https://example.com/icon-16x16.png">`},
		{"tiny dimension token", `<img src="https://example.com/spacer-32x32.jpg">`},
		{"logo keyword", `<img src="https://example.com/site-logo.png">`},
		{"ui keyword in alt text", `<img src="https://example.com/a.jpg" alt="site logo">`},
		{"no image extension", `<img src="https://example.com/t?id=7">`},
		{"missing src", `<img alt="nothing">`},
		{"javascript scheme", `<img src="javascript:void(0)">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := l.Locate("<html><body>"+tt.img+"</body></html>", "https://example.com/story")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestLocator_Locate_ProtocolRelative(t *testing.T) {
	t.Parallel()

	l := goquery.NewLocator()
	got, err := l.Locate(
		`<html><body><img src="//cdn.example.com/photo.jpg"></body></html>`,
		"https://example.com/story",
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "https://cdn.example.com/photo.jpg", got[0].URL)
}

func TestLocator_Locate_CapsCandidateCount(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, `<img src="https://example.com/photo-%d.jpg">`, i)
	}
	sb.WriteString("</body></html>")

	l := goquery.NewLocator()
	got, err := l.Locate(sb.String(), "https://example.com/story")
	require.NoError(t, err)
	assert.Len(t, got, goquery.MaxImages)
}
