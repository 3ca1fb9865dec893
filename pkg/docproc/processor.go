package docproc

import (
	"strings"
)

// Supported upload MIME types. Anything else is rejected before download.
const (
	FileTypePDF     = "application/pdf"
	FileTypeDoc     = "application/msword"
	FileTypeDocx    = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	textTypePrefix  = "text/"
	WordsPerPage    = 500
)

// IsSupportedFileType reports whether the processor can handle the given type.
func IsSupportedFileType(fileType string) bool {
	switch fileType {
	case FileTypePDF, FileTypeDoc, FileTypeDocx:
		return true
	}
	return strings.HasPrefix(fileType, textTypePrefix)
}

// ExtractText decodes the raw bytes as UTF-8 text and normalizes line
// endings. No binary PDF/Word parsing is performed: the byte stream is
// treated as text. This is a deliberate simplification inherited from the
// original design.
func ExtractText(data []byte) string {
	return strings.ReplaceAll(string(data), "\r\n", "\n")
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// PageCount estimates pages for PDF inputs as ceil(wordCount / 500).
// It is a heuristic, not a real page count.
func PageCount(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	return (wordCount + WordsPerPage - 1) / WordsPerPage
}
