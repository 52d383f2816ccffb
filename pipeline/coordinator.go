// Package pipeline orchestrates the conversion of a URL into a PDF:
// validation, coordinated extraction with fallback, cleaning, image
// handling, markup conversion, and rendering.
package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/paperpress/paperpress"
)

// Acceptance thresholds for the post-extraction quality gate. Tuning
// parameters, not structural invariants.
const (
	// GateMinTitleLen is the minimum trimmed title length.
	GateMinTitleLen = 3

	// GateMinContentLen is the minimum content length in bytes.
	GateMinContentLen = 100

	// GateMinWordCount is the minimum number of words.
	GateMinWordCount = 20

	// GateMinWordLengthSpread rejects degenerate content where every
	// token is near-identical length: among the first
	// gateSampleWords words, max(len) - min(len) must reach this value.
	GateMinWordLengthSpread = 2

	gateSampleWords = 50
)

// QualityFailureMessage is the error message attached to results demoted
// by the quality gate.
const QualityFailureMessage = "quality validation failed"

// Coordinator runs extraction strategies in order until one produces an
// article that passes the quality gate. Strategy errors are recorded as
// failed attempts and iteration continues; only context cancellation
// aborts the run.
type Coordinator struct {
	Strategies []paperpress.Extractor
}

// Extract tries each strategy against url in order. If preferred names a
// configured strategy, it is moved to the front for this call only. The
// first strategy to succeed and pass the quality gate wins. On exhaustion
// the last failure is returned with the full attempt history attached; an
// empty strategy list yields a synthetic failure.
func (c *Coordinator) Extract(ctx context.Context, url, preferred string) (*paperpress.ExtractionResult, error) {
	strategies := c.effectiveOrder(preferred)

	var history []paperpress.Attempt
	var lastFailure *paperpress.ExtractionResult

	for _, strategy := range strategies {
		start := time.Now()
		result, err := strategy.Extract(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			history = append(history, paperpress.Attempt{
				Extractor: strategy.Name(),
				Success:   false,
				Elapsed:   time.Since(start),
				Error:     err.Error(),
			})
			lastFailure = &paperpress.ExtractionResult{
				Success:       false,
				ErrorMessage:  err.Error(),
				ExtractorUsed: strategy.Name(),
				Elapsed:       time.Since(start),
			}
			continue
		}

		if result.Success && len(QualityIssues(result.Article)) > 0 {
			result.Success = false
			result.ErrorMessage = QualityFailureMessage
		}

		history = append(history, paperpress.Attempt{
			Extractor: strategy.Name(),
			Success:   result.Success,
			Elapsed:   result.Elapsed,
			Error:     result.ErrorMessage,
		})

		if result.Failed() {
			lastFailure = result
			continue
		}

		result.ExtractorUsed = strategy.Name()
		result.Attempts = history
		return result, nil
	}

	if lastFailure == nil {
		lastFailure = &paperpress.ExtractionResult{
			Success:      false,
			ErrorMessage: "no extraction strategies configured",
		}
	}
	lastFailure.Attempts = history
	return lastFailure, nil
}

// effectiveOrder returns the strategies with the preferred one, if
// configured, moved to the front. The Coordinator's own order is not
// mutated.
func (c *Coordinator) effectiveOrder(preferred string) []paperpress.Extractor {
	if preferred == "" {
		return c.Strategies
	}
	idx := -1
	for i, s := range c.Strategies {
		if s.Name() == preferred {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return c.Strategies
	}
	ordered := make([]paperpress.Extractor, 0, len(c.Strategies))
	ordered = append(ordered, c.Strategies[idx])
	ordered = append(ordered, c.Strategies[:idx]...)
	ordered = append(ordered, c.Strategies[idx+1:]...)
	return ordered
}

// QualityIssues checks an extracted article against the acceptance
// thresholds and returns every violation found. A nil article fails
// outright.
func QualityIssues(a *paperpress.Article) []string {
	if a == nil {
		return []string{"no article extracted"}
	}

	var issues []string

	if len(strings.TrimSpace(a.Title)) < GateMinTitleLen {
		issues = append(issues, "title missing or too short")
	}
	if len(a.Content) < GateMinContentLen {
		issues = append(issues, "content too short")
	}

	words := strings.Fields(a.Content)
	if len(words) < GateMinWordCount {
		issues = append(issues, "too few words")
	}

	if len(words) > 0 && wordLengthSpread(words) < GateMinWordLengthSpread {
		issues = append(issues, "degenerate word lengths")
	}

	return issues
}

// wordLengthSpread returns max(len) - min(len) over the first
// gateSampleWords words.
func wordLengthSpread(words []string) int {
	if len(words) > gateSampleWords {
		words = words[:gateSampleWords]
	}
	minLen, maxLen := len(words[0]), len(words[0])
	for _, w := range words[1:] {
		if len(w) < minLen {
			minLen = len(w)
		}
		if len(w) > maxLen {
			maxLen = len(w)
		}
	}
	return maxLen - minLen
}
