package main_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperpress/paperpress"
	main "github.com/paperpress/paperpress/cmd/paperpress"
)

func writeURLFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("ConvertsAllURLs", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t, func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
			return "/tmp/article.pdf", nil
		})

		cmd := &main.BatchCmd{File: writeURLFile(t, `# two articles
https://example.com/one
https://example.com/two
`)}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "Converting 2 URLs")
		assert.Contains(t, output, "Done: 2 saved, 0 failed.")
	})

	t.Run("ContinuesOnErrorByDefault", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := testDeps(t, func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
			return "/tmp/article.pdf", nil
		})

		cmd := &main.BatchCmd{File: writeURLFile(t, `https://example.com/one
https://twitter.com/blocked
`)}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Done: 1 saved, 1 failed.")
		assert.Contains(t, stderr.String(), "failed")
	})

	t.Run("FailFastReturnsError", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t, func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
			return "/tmp/article.pdf", nil
		})

		cmd := &main.BatchCmd{File: writeURLFile(t, "https://twitter.com/blocked\n"), FailFast: true, Concurrency: 1}
		err := cmd.Run(deps)
		assert.Equal(t, paperpress.EINVALID, paperpress.ErrorCode(err))
	})

	t.Run("EmptyFile", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := testDeps(t, func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
			t.Fatal("nothing to convert")
			return "", nil
		})

		cmd := &main.BatchCmd{File: writeURLFile(t, "# only comments\n")}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, stdout.String(), "No URLs to convert.")
	})

	t.Run("MissingFile", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := testDeps(t, func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
			return "", nil
		})

		cmd := &main.BatchCmd{File: filepath.Join(t.TempDir(), "absent.txt")}
		err := cmd.Run(deps)
		assert.Equal(t, paperpress.ENOTFOUND, paperpress.ErrorCode(err))
	})
}
