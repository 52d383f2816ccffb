package paperpress

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// SanitizeFilename makes a string safe for filesystem use: keeps letters,
// digits, spaces, hyphens, underscores and dots, collapses whitespace to
// underscores, drops leading dots, and truncates to max runes while
// preserving the extension.
func SanitizeFilename(name string, max int) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		case r == '-' || r == '_' || r == '.':
			sb.WriteRune(r)
		}
	}

	safe := strings.Join(strings.Fields(sb.String()), "_")
	safe = strings.TrimLeft(safe, ".")
	if safe == "" {
		safe = "article"
	}

	if len(safe) > max {
		ext := filepath.Ext(safe)
		if ext != "" && len(ext) < max {
			safe = safe[:max-len(ext)] + ext
		} else {
			safe = safe[:max]
		}
	}
	return safe
}

// UniquePath returns a path in dir based on name+ext that does not collide
// with an existing file, appending _1, _2, ... as needed.
func UniquePath(dir, name, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	candidate := filepath.Join(dir, name+ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s_%d%s", name, i, ext))
	}
}
