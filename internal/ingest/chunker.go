package ingest

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Chunk is one embeddable slice of a document
type Chunk struct {
	ID     string
	DocID  string
	Index  int
	Text   string
	Source string // originating document title, carried into retrieval
}

// Chunker splits document text into overlapping character windows, cutting
// at paragraph, then line, then word boundaries where possible.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker. Invalid values fall back to 1000/200.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 200
		if overlap >= size {
			overlap = size / 5
		}
	}
	return &Chunker{size: size, overlap: overlap}
}

// Chunk splits a document into chunks, each tagged with the document title
// as its source label.
func (c *Chunker) Chunk(doc Document) []Chunk {
	parts := c.Split(doc.Text)

	chunks := make([]Chunk, 0, len(parts))
	for i, text := range parts {
		chunks = append(chunks, Chunk{
			ID:     fmt.Sprintf("%s:%d", doc.ID, i),
			DocID:  doc.ID,
			Index:  i,
			Text:   text,
			Source: doc.Title,
		})
	}
	return chunks
}

// Split divides text into windows of at most size characters with the
// configured overlap between consecutive windows.
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if len(text) <= c.size {
		return []string{text}
	}

	var chunks []string
	start := 0

	for start < len(text) {
		end := start + c.size
		if end >= len(text) {
			if chunk := strings.TrimSpace(text[start:]); chunk != "" {
				chunks = append(chunks, chunk)
			}
			break
		}

		cut := c.cutPoint(text, start, end)
		if chunk := strings.TrimSpace(text[start:cut]); chunk != "" {
			chunks = append(chunks, chunk)
		}

		next := cut - c.overlap
		if next <= start {
			next = cut // guarantee forward progress
		}
		// never start mid-rune
		for next < len(text) && !utf8.RuneStart(text[next]) {
			next++
		}
		start = next
	}

	return chunks
}

// cutPoint finds a natural break near the end of the window: paragraph
// break, then newline, then space. Falls back to a hard cut at a rune
// boundary when the window has no separator in its second half.
func (c *Chunker) cutPoint(text string, start, end int) int {
	window := text[start:end]
	for _, sep := range []string{"\n\n", "\n", " "} {
		if i := strings.LastIndex(window, sep); i >= c.size/2 {
			return start + i + len(sep)
		}
	}
	for end > start && !utf8.RuneStart(text[end]) {
		end--
	}
	return end
}
