// Package rod provides a browser-automation implementation of
// paperpress.Fetcher for pages that render their article content with
// JavaScript and serve an empty shell to plain HTTP clients.
package rod

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/paperpress/paperpress"
)

// DefaultMaxPages is the number of pages fetched before the browser is
// recycled. Chrome accumulates memory under load and the baseline never
// returns to initial levels even with proper page cleanup, so long batch
// runs periodically restart it.
const DefaultMaxPages = 75

// Ensure Fetcher implements paperpress.Fetcher at compile time.
var _ paperpress.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using headless Chrome. It is safe for
// concurrent use and recycles its browser after maxPages fetches.
type Fetcher struct {
	mu        sync.Mutex
	browser   *rod.Browser
	launcher  *launcher.Launcher
	pageCount int
	maxPages  int
	closed    bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxPages sets the number of fetches before the browser is recycled.
// Defaults to DefaultMaxPages.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.launchBrowser(); err != nil {
		return nil, err
	}
	return f, nil
}

// Fetch navigates to url and returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*paperpress.FetchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	browser, err := f.acquireBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "failed to open browser page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "navigation failed: %v", err)
	}
	if err := page.WaitLoad(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "page load failed: %v", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "failed to read page HTML: %v", err)
	}

	return &paperpress.FetchResult{
		HTML:        html,
		StatusCode:  200,
		ContentType: "text/html",
	}, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true
	return f.closeBrowser()
}

// acquireBrowser returns the current browser, recycling it once the fetch
// count reaches maxPages.
func (f *Fetcher) acquireBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, paperpress.Errorf(paperpress.EINTERNAL, "fetcher is closed")
	}

	if f.pageCount >= f.maxPages {
		f.recycleBrowser()
	}
	f.pageCount++
	return f.browser, nil
}

// launchBrowser starts a new browser instance with stability flags.
func (f *Fetcher) launchBrowser() error {
	lnchr := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := lnchr.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		lnchr.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = lnchr
	return nil
}

// closeBrowser shuts down the current browser and launcher.
// Must be called with mu held.
func (f *Fetcher) closeBrowser() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Kill()
		f.launcher = nil
	}
	return err
}

// recycleBrowser starts a fresh browser and closes the old one. If the new
// launch fails the old browser is kept.
// Must be called with mu held.
func (f *Fetcher) recycleBrowser() {
	oldBrowser := f.browser
	oldLauncher := f.launcher
	f.browser = nil
	f.launcher = nil

	if err := f.launchBrowser(); err != nil {
		f.browser = oldBrowser
		f.launcher = oldLauncher
		return
	}

	if oldBrowser != nil {
		_ = oldBrowser.Close()
	}
	if oldLauncher != nil {
		oldLauncher.Kill()
	}
	f.pageCount = 0
}
