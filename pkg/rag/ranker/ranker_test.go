package ranker

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{
			name:  "drops short words and stopwords",
			query: "What is the budget deadline for FACTOR?",
			want:  []string{"budget", "deadline", "factor"},
		},
		{
			name:  "lowercases",
			query: "TOURING Support",
			want:  []string{"touring", "support"},
		},
		{
			name:  "punctuation is a separator",
			query: "grants,funding;deadlines",
			want:  []string{"grants", "funding", "deadlines"},
		},
		{
			name:  "empty query",
			query: "",
			want:  []string{},
		},
		{
			name:  "all stopwords",
			query: "what about that",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.query))
		})
	}
}

func TestRankScoring(t *testing.T) {
	c := Candidate{
		ID:       uuid.New(),
		FileName: "factor-guide.txt",
		Content:  "The deadline is May 30. Submit before the deadline.",
		Category: "Budget & Financial",
		Tags:     []string{"factor", "budget"},
	}

	results := Rank("What is the budget deadline for FACTOR?", []Candidate{c}, 3)

	assert.Len(t, results, 1)
	// deadline appears twice as a whole word (2), the category word
	// "budget" is in the query (+5), and both tags are named (+3 each).
	assert.Equal(t, 13, results[0].Score)
	assert.Equal(t, c.ID, results[0].ID)
}

func TestRankDiscardsZeroScores(t *testing.T) {
	candidates := []Candidate{
		{ID: uuid.New(), Content: "touring showcase dates", Category: "Touring & Showcase Grants"},
		{ID: uuid.New(), Content: "completely unrelated notes", Category: "General Information"},
	}

	results := Rank("touring grants", candidates, 3)

	assert.Len(t, results, 1)
	assert.Equal(t, candidates[0].ID, results[0].ID)
}

func TestRankSkipsEmptyContent(t *testing.T) {
	candidates := []Candidate{
		{ID: uuid.New(), Content: "", Category: "Recording Grants", Tags: []string{"recording"}},
	}

	results := Rank("recording grants", candidates, 3)
	assert.Empty(t, results)
}

func TestRankLimit(t *testing.T) {
	var candidates []Candidate
	for i := 0; i < 5; i++ {
		candidates = append(candidates, Candidate{
			ID:      uuid.New(),
			Content: "funding deadline details",
		})
	}

	results := Rank("funding deadline", candidates, 3)
	assert.Len(t, results, 3)
}

func TestRankStableOnTies(t *testing.T) {
	first := Candidate{ID: uuid.New(), Content: "funding overview"}
	second := Candidate{ID: uuid.New(), Content: "funding overview"}

	results := Rank("funding", []Candidate{first, second}, 3)

	assert.Len(t, results, 2)
	assert.Equal(t, first.ID, results[0].ID)
	assert.Equal(t, second.ID, results[1].ID)
}

func TestRankOrdering(t *testing.T) {
	weak := Candidate{ID: uuid.New(), Content: "deadline"}
	strong := Candidate{ID: uuid.New(), Content: "deadline deadline deadline"}

	results := Rank("deadline", []Candidate{weak, strong}, 3)

	assert.Len(t, results, 2)
	assert.Equal(t, strong.ID, results[0].ID)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestRankWholeWordOnly(t *testing.T) {
	c := Candidate{ID: uuid.New(), Content: "granting body overview"}

	// "grants" is not a whole-word match for "granting".
	results := Rank("grants", []Candidate{c}, 3)
	assert.Empty(t, results)
}

func TestRankEmptyCandidates(t *testing.T) {
	assert.Empty(t, Rank("anything", nil, 3))
}
