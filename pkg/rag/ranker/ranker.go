package ranker

import (
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Scoring weights. Category and tag bonuses reward queries that name the
// document's derived metadata.
const (
	categoryBonus = 5
	tagBonus      = 3
	minTokenLen   = 4
)

// stopwords excluded from query tokenization.
var stopwords = map[string]bool{
	"what": true, "when": true, "where": true, "which": true, "with": true,
	"would": true, "could": true, "should": true, "have": true, "this": true,
	"that": true, "there": true, "their": true, "about": true,
}

var nonWord = regexp.MustCompile(`\W+`)

// Tokenize splits the query on non-word characters and keeps lowercased
// tokens longer than 3 characters that are not stopwords. The snippet
// extractor uses the same tokenizer.
func Tokenize(query string) []string {
	parts := nonWord.Split(strings.ToLower(query), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) < minTokenLen || stopwords[p] {
			continue
		}
		tokens = append(tokens, p)
	}
	return tokens
}

// Candidate is one document considered for retrieval.
type Candidate struct {
	ID       uuid.UUID
	FileName string
	Content  string
	Category string
	Tags     []string
}

// Result pairs a candidate with its lexical relevance score.
type Result struct {
	Candidate
	Score int
}

// Rank scores each candidate against the query and returns up to limit
// results in descending score order. Candidates with equal scores keep their
// input relative order; zero-score candidates are discarded.
func Rank(query string, candidates []Candidate, limit int) []Result {
	tokens := Tokenize(query)
	lowerQuery := strings.ToLower(query)

	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if c.Content == "" {
			continue
		}
		score := scoreCandidate(c, tokens, lowerQuery)
		if score > 0 {
			results = append(results, Result{Candidate: c, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

func scoreCandidate(c Candidate, tokens []string, lowerQuery string) int {
	score := 0

	for _, token := range tokens {
		score += countWholeWord(c.Content, token)
	}

	// A category label like "Budget & Financial" never appears verbatim in a
	// query, so the bonus fires when any significant word of it does.
	if categoryMatches(c.Category, lowerQuery) {
		score += categoryBonus
	}

	for _, tag := range c.Tags {
		if tag != "" && strings.Contains(lowerQuery, strings.ToLower(tag)) {
			score += tagBonus
		}
	}

	return score
}

func categoryMatches(category, lowerQuery string) bool {
	for _, word := range strings.Fields(strings.ToLower(category)) {
		if len(word) < minTokenLen {
			continue
		}
		if strings.Contains(lowerQuery, word) {
			return true
		}
	}
	return false
}

// countWholeWord counts case-insensitive whole-word occurrences of token.
func countWholeWord(content, token string) int {
	re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(token) + `\b`)
	if err != nil {
		return 0
	}
	return len(re.FindAllStringIndex(content, -1))
}
