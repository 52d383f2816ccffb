package pipeline

import (
	"bufio"
	"context"
	"io"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/paperpress/paperpress"
)

// DefaultBatchConcurrency bounds parallel conversions when the caller
// does not set one.
const DefaultBatchConcurrency = 2

// Batch converts a list of URLs, each through the same pipeline.
type Batch struct {
	Pipeline *Pipeline

	// Concurrency bounds parallel conversions. Zero or negative means
	// DefaultBatchConcurrency.
	Concurrency int

	// ContinueOnError keeps converting remaining URLs after a failure.
	// When false, the first failure cancels the batch.
	ContinueOnError bool

	// RateLimiter, if set, throttles conversions per domain.
	RateLimiter paperpress.DomainLimiter

	// RetryDelays is the backoff schedule applied to each URL's
	// conversion. Nil means no retries.
	RetryDelays []time.Duration
}

// BatchItem records the outcome of one URL in a batch.
type BatchItem struct {
	URL     string
	Output  string
	Elapsed time.Duration
	Err     error
}

// BatchResult aggregates batch outcomes in input order.
type BatchResult struct {
	Items []BatchItem
}

// Succeeded counts items that produced a PDF.
func (r *BatchResult) Succeeded() int {
	n := 0
	for _, item := range r.Items {
		if item.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts items that did not produce a PDF.
func (r *BatchResult) Failed() int {
	return len(r.Items) - r.Succeeded()
}

// ReadURLList parses a newline-delimited URL list. Blank lines and lines
// starting with # are skipped.
func ReadURLList(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return urls, nil
}

// Run converts every URL with the given options. Results come back in
// input order. When ContinueOnError is false, the returned error is the
// first conversion failure; otherwise Run only fails on cancellation.
func (b *Batch) Run(ctx context.Context, urls []string, opts paperpress.ConversionOptions) (*BatchResult, error) {
	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}

	result := &BatchResult{Items: make([]BatchItem, len(urls))}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rawURL := range urls {
		i, rawURL := i, rawURL
		g.Go(func() error {
			start := time.Now()
			output, err := b.convertOne(gctx, rawURL, opts)

			mu.Lock()
			result.Items[i] = BatchItem{
				URL:     rawURL,
				Output:  output,
				Elapsed: time.Since(start),
				Err:     err,
			}
			mu.Unlock()

			if err != nil && !b.ContinueOnError {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}
	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

func (b *Batch) convertOne(ctx context.Context, rawURL string, opts paperpress.ConversionOptions) (string, error) {
	if b.RateLimiter != nil {
		if domain := domainOf(rawURL); domain != "" {
			if err := b.RateLimiter.Wait(ctx, domain); err != nil {
				return "", err
			}
		}
	}

	var output string
	err := RetryWithDelays(ctx, func(ctx context.Context) error {
		var err error
		output, err = b.Pipeline.Convert(ctx, rawURL, opts)
		return err
	}, b.RetryDelays)
	return output, err
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
