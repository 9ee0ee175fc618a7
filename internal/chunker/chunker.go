// Package chunker splits long text into bounded-size word chunks for
// separate embedding.
package chunker

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kioku/internal/models"
)

// ChunkCategory is assigned to notes created from chunks.
const ChunkCategory = "Chunked"

// ChunkTag marks notes created from chunks.
const ChunkTag = "chunk"

// Chunk splits text into chunks of exactly maxWords whitespace-delimited
// words, except possibly the last chunk which holds the remainder. Word
// order is preserved and no word is duplicated or dropped. Empty or
// whitespace-only input yields nil.
func Chunk(text string, maxWords int) ([]string, error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("%w: max_words must be > 0, got %d", models.ErrInvalidArgument, maxWords)
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil, nil
	}
	chunks := make([]string, 0, (len(words)+maxWords-1)/maxWords)
	for i := 0; i < len(words); i += maxWords {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks, nil
}

// ChunkNotes chunks text and wraps each chunk in a Note with the chunk
// category and tag, ready to append to a collection.
func ChunkNotes(text string, maxWords int) ([]models.Note, error) {
	chunks, err := Chunk(text, maxWords)
	if err != nil {
		return nil, err
	}
	notes := make([]models.Note, 0, len(chunks))
	for _, ch := range chunks {
		notes = append(notes, models.Note{
			Content:  ch,
			Category: ChunkCategory,
			Tags:     []string{ChunkTag},
		})
	}
	return notes, nil
}
