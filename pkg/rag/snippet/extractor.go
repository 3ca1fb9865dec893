package snippet

import (
	"regexp"
	"strings"

	"grant-assist-be/pkg/rag/ranker"
)

const (
	// DefaultMaxLength bounds excerpts used as prompt context.
	DefaultMaxLength = 500
	// PromptMaxLength is the variant used when building prompts from a
	// ranked document.
	PromptMaxLength = 300
	// PreviewLength bounds the user-facing snippet in a source citation.
	PreviewLength = 150

	minParagraphLen      = 30
	fallbackParagraphLen = 50
	sentenceCutRatio     = 0.7

	wholeWordScore = 2
	substringScore = 1
)

// Extract returns the paragraph of content most relevant to the query,
// truncated to maxLength. Paragraphs shorter than 30 characters are ignored
// for scoring. When no paragraph scores, it falls back to the first paragraph
// longer than 50 characters, then the first paragraph, then a prefix of the
// raw content.
func Extract(content, query string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	paragraphs := splitParagraphs(content)
	tokens := ranker.Tokenize(query)

	best := ""
	bestScore := 0
	for _, p := range paragraphs {
		if len(p) < minParagraphLen {
			continue
		}
		score := scoreParagraph(p, tokens)
		if score > bestScore {
			best = p
			bestScore = score
		}
	}

	if bestScore == 0 {
		best = fallbackParagraph(paragraphs, content)
	}

	return Truncate(best, maxLength)
}

// Preview returns a plain prefix of the excerpt for user-facing citations.
// Unlike Truncate it is not sentence-aware.
func Preview(excerpt string, limit int) string {
	if limit <= 0 {
		limit = PreviewLength
	}
	runes := []rune(excerpt)
	if len(runes) <= limit {
		return excerpt
	}
	return string(runes[:limit]) + "..."
}

// Truncate bounds text to maxLength, preferring to cut after the last period
// when that keeps at least 70% of the budget. Otherwise it hard-truncates and
// appends an ellipsis.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}

	window := string(runes[:maxLength])
	if cut := strings.LastIndex(window, "."); cut >= 0 {
		if float64(cut+1) >= sentenceCutRatio*float64(maxLength) {
			return window[:cut+1]
		}
	}
	return window + "..."
}

func splitParagraphs(content string) []string {
	parts := strings.Split(content, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

func scoreParagraph(paragraph string, tokens []string) int {
	lower := strings.ToLower(paragraph)
	score := 0
	for _, token := range tokens {
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
		if err != nil {
			continue
		}
		if re.MatchString(paragraph) {
			score += wholeWordScore
		} else if strings.Contains(lower, token) {
			score += substringScore
		}
	}
	return score
}

func fallbackParagraph(paragraphs []string, content string) string {
	for _, p := range paragraphs {
		if len(p) > fallbackParagraphLen {
			return p
		}
	}
	if len(paragraphs) > 0 {
		return paragraphs[0]
	}
	return content
}
