package docproc

import "strings"

// MaxTags bounds the number of derived tags per document.
const MaxTags = 5

// TagVocabulary is the fixed list of domain terms checked against document
// text. Collection order follows this list.
var TagVocabulary = []string{
	"grant",
	"funding",
	"factor",
	"musicaction",
	"deadline",
	"eligibility",
	"application",
	"budget",
	"recording",
	"album",
	"studio",
	"touring",
	"showcase",
	"marketing",
	"promotion",
	"radio",
	"streaming",
	"royalties",
	"publishing",
	"distribution",
	"songwriting",
	"production",
	"mastering",
	"music video",
	"artist development",
	"juried",
	"demo",
	"label",
	"sponsorship",
	"canadian",
}

// ExtractTags returns up to MaxTags vocabulary terms literally present in the
// text (case-insensitive substring), deduplicated, in collection order.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	tags := make([]string, 0, MaxTags)

	for _, term := range TagVocabulary {
		if len(tags) >= MaxTags {
			break
		}
		if seen[term] {
			continue
		}
		if strings.Contains(lower, term) {
			tags = append(tags, term)
			seen[term] = true
		}
	}

	return tags
}
