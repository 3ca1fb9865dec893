package docproc

import "strings"

// DefaultChunkSize is the character budget per chunk.
const DefaultChunkSize = 500

// ParagraphSeparator joins paragraphs inside a chunk and, conceptually,
// chunks back into the original content.
const ParagraphSeparator = "\n\n"

// SplitParagraphs splits content on blank-line boundaries, trimming boundary
// whitespace per paragraph and dropping empty segments.
func SplitParagraphs(content string) []string {
	parts := strings.Split(content, ParagraphSeparator)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// SplitChunks groups consecutive paragraphs into maximal runs whose joined
// length stays within chunkSize. Splits happen at paragraph boundaries only,
// so a single oversized paragraph becomes its own chunk rather than being
// cut. Joining all chunks with ParagraphSeparator reproduces the content
// modulo boundary whitespace.
func SplitChunks(content string, chunkSize int) []string {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	paragraphs := SplitParagraphs(content)
	if len(paragraphs) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for _, p := range paragraphs {
		addition := len(p)
		if len(current) > 0 {
			addition += len(ParagraphSeparator)
		}

		if len(current) > 0 && currentLen+addition > chunkSize {
			chunks = append(chunks, strings.Join(current, ParagraphSeparator))
			current = current[:0]
			currentLen = 0
			addition = len(p)
		}

		current = append(current, p)
		currentLen += addition
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, ParagraphSeparator))
	}

	return chunks
}
