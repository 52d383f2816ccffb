package paperpress

import (
	"net/url"
	"strings"
)

// blockedHosts lists hosts that never serve extractable articles:
// loopback addresses and social platforms whose pages are applications,
// not documents. A host matches when it equals an entry or is one of its
// subdomains.
var blockedHosts = []string{
	"localhost", "127.0.0.1", "0.0.0.0", "::1",
	"facebook.com", "instagram.com", "twitter.com", "x.com",
	"linkedin.com", "tiktok.com", "snapchat.com", "pinterest.com",
}

// nonArticleExtensions lists path suffixes that identify documents,
// archives, media and assets rather than article pages.
var nonArticleExtensions = []string{
	".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx",
	".zip", ".rar", ".tar", ".gz", ".exe", ".dmg", ".pkg",
	".jpg", ".jpeg", ".png", ".gif", ".bmp", ".svg", ".webp",
	".mp4", ".avi", ".mov", ".wmv", ".flv", ".webm",
	".mp3", ".wav", ".flac", ".aac", ".ogg",
	".css", ".js", ".json", ".xml", ".rss",
}

// NormalizeURL brings a URL to canonical form: adds an https scheme when
// missing (inheriting https for protocol-relative input), lower-cases the
// host, and strips the fragment. It returns an EINVALID error for input
// that cannot be parsed or has no host; it never panics on malformed input.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "URL is empty")
	}

	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		if strings.HasPrefix(raw, "//") {
			raw = "https:" + raw
		} else {
			raw = "https://" + raw
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid URL format: %v", err)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL missing host")
	}

	u.Host = strings.ToLower(u.Host)
	u.Scheme = strings.ToLower(u.Scheme)
	u.Fragment = ""

	return u.String(), nil
}

// ValidateURL normalizes a URL and checks it against the scheme whitelist,
// the host denylist and the non-article extension list. It returns the
// normalized URL and nil on success, or the best-effort normalized form
// and an EINVALID error describing the first violation. Liveness checking
// is a separate, optional step (see Prober).
func ValidateURL(raw string) (string, error) {
	normalized, err := NormalizeURL(raw)
	if err != nil {
		return raw, err
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return normalized, Errorf(EINVALID, "invalid URL format: %v", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return normalized, Errorf(EINVALID, "unsupported URL scheme: %s", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	for _, blocked := range blockedHosts {
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return normalized, ErrorfHint(EINVALID,
				"Social platforms and local addresses cannot be converted; use the original article URL.",
				"domain not supported for article extraction: %s", host)
		}
	}

	path := strings.ToLower(u.Path)
	for _, ext := range nonArticleExtensions {
		if strings.HasSuffix(path, ext) {
			return normalized, Errorf(EINVALID, "URL appears to be a %s file, not an article", ext)
		}
	}

	return normalized, nil
}
