package clean

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/paperpress/paperpress"
)

// Advisory quality thresholds. These are tuning parameters, not structural
// invariants; callers decide what to do with the reported issues.
const (
	MinTitleLen       = 5
	MinContentLen     = 100
	MinWordCount      = 50
	MinSentences      = 3
	MinSentenceLen    = 10
	MaxRepetitionRate = 0.3

	phraseWindow = 3
)

var sentenceSplitter = regexp.MustCompile(`[.!?]+`)

// ValidateQuality inspects a cleaned article and reports quality issues.
// An empty slice means no concerns.
func ValidateQuality(a *paperpress.Article) []string {
	if a == nil {
		return []string{"article is nil"}
	}

	var issues []string

	if len(strings.TrimSpace(a.Title)) < MinTitleLen {
		issues = append(issues, "title is too short or missing")
	}

	content := strings.TrimSpace(a.Content)
	if len(content) < MinContentLen {
		issues = append(issues, fmt.Sprintf("content is too short (less than %d characters)", MinContentLen))
		return issues
	}

	if words := strings.Fields(content); len(words) < MinWordCount {
		issues = append(issues, fmt.Sprintf("content has too few words (less than %d)", MinWordCount))
	}

	var sentences int
	for _, s := range sentenceSplitter.Split(content, -1) {
		if len(strings.TrimSpace(s)) > MinSentenceLen {
			sentences++
		}
	}
	if sentences < MinSentences {
		issues = append(issues, "content lacks proper sentence structure")
	}

	if RepetitionRate(content) > MaxRepetitionRate {
		issues = append(issues, "content appears to have excessive repetition")
	}

	return issues
}

// RepetitionRate measures phrase-level repetition: the fraction of 3-word
// sliding-window phrases that are duplicates of an earlier phrase. Returns 0
// for text too short to judge.
func RepetitionRate(content string) float64 {
	words := strings.Fields(strings.ToLower(content))
	if len(words) < 20 {
		return 0
	}

	total := len(words) - phraseWindow + 1
	seen := make(map[string]struct{}, total)
	for i := 0; i < total; i++ {
		seen[strings.Join(words[i:i+phraseWindow], " ")] = struct{}{}
	}

	return 1 - float64(len(seen))/float64(total)
}
