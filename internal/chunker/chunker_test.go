package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/hyperjump/kioku/internal/models"
)

func TestChunk_SizeBound(t *testing.T) {
	chunks, err := Chunk("one two three four five six seven", 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	for i, ch := range chunks[:len(chunks)-1] {
		if n := len(strings.Fields(ch)); n != 3 {
			t.Errorf("chunk %d has %d words, want 3", i, n)
		}
	}
	if n := len(strings.Fields(chunks[len(chunks)-1])); n < 1 || n > 3 {
		t.Errorf("last chunk has %d words, want 1..3", n)
	}
}

func TestChunk_RoundTrip(t *testing.T) {
	texts := []string{
		"a b c d e f g h i j k",
		"single",
		"  leading   and\ttrailing \n whitespace  ",
		"exactly four words here",
	}
	for _, text := range texts {
		for maxWords := 1; maxWords <= 6; maxWords++ {
			chunks, err := Chunk(text, maxWords)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, ch := range chunks {
				got = append(got, strings.Fields(ch)...)
			}
			want := strings.Fields(text)
			if len(got) != len(want) {
				t.Fatalf("max_words=%d: %d words out, %d in", maxWords, len(got), len(want))
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("max_words=%d word %d: %q != %q", maxWords, i, got[i], want[i])
				}
			}
		}
	}
}

func TestChunk_Empty(t *testing.T) {
	for _, text := range []string{"", "   \n\t  "} {
		chunks, err := Chunk(text, 5)
		if err != nil {
			t.Fatal(err)
		}
		if chunks != nil {
			t.Errorf("%q: expected nil, got %v", text, chunks)
		}
	}
}

func TestChunk_InvalidMaxWords(t *testing.T) {
	for _, maxWords := range []int{0, -1} {
		_, err := Chunk("some text", maxWords)
		if !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("max_words=%d: error = %v, want ErrInvalidArgument", maxWords, err)
		}
	}
}

func TestChunkNotes(t *testing.T) {
	notes, err := ChunkNotes("one two three four five", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, n := range notes {
		if n.Category != ChunkCategory {
			t.Errorf("note %d category = %q", i, n.Category)
		}
		if len(n.Tags) != 1 || n.Tags[0] != ChunkTag {
			t.Errorf("note %d tags = %v", i, n.Tags)
		}
	}
	if notes[2].Content != "five" {
		t.Errorf("last chunk = %q", notes[2].Content)
	}
}
