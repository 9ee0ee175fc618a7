package search

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hyperjump/kioku/internal/embedding"
	"github.com/hyperjump/kioku/internal/models"
)

// stubEmbedder returns hand-crafted unit vectors per text, so tests control
// similarity exactly.
type stubEmbedder struct {
	dims int
	vecs map[string][]float32
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, ok := s.vecs[text]
	if !ok {
		return nil, fmt.Errorf("stub has no vector for %q", text)
	}
	return v, nil
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := s.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (s *stubEmbedder) Dimensions() int { return s.dims }
func (s *stubEmbedder) Close() error    { return nil }

// scenarioEngine reproduces the cats/dogs/Python retrieval scenario with
// hand-crafted vectors: the Python note is near the query, the others far.
func scenarioEngine() (*Engine, []models.Note) {
	emb := &stubEmbedder{
		dims: 3,
		vecs: map[string][]float32{
			"I love cats":                      {0, 1, 0},
			"Dogs are great pets":              {0, 0.9806, 0.1961},
			"Python lists support slicing":     {1, 0, 0},
			"How do I slice a list in Python?": {0.9806, 0.1961, 0},
		},
	}
	notes := []models.Note{
		{Content: "I love cats", Category: "General", Tags: []string{}},
		{Content: "Dogs are great pets", Category: "General", Tags: []string{}},
		{Content: "Python lists support slicing", Category: "Programming", Tags: []string{"python", "lists"}},
	}
	return NewEngine(emb, embedding.NewMatrixCache()), notes
}

func TestEngine_ScenarioPythonNoteFirst(t *testing.T) {
	ctx := context.Background()
	engine, notes := scenarioEngine()

	results, err := engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 1,
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	top := results[0]
	if top.Index != 2 {
		t.Fatalf("top result index = %d, want 2", top.Index)
	}
	// The winner is materially ahead of the runners-up.
	all, err := engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 3,
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range all[1:] {
		if top.Similarity-r.Similarity <= 0.3 {
			t.Errorf("margin over note %d = %v, want > 0.3", r.Index, top.Similarity-r.Similarity)
		}
	}
}

func TestEngine_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	engine := NewEngine(embedding.NewMockEmbedder(4), embedding.NewMatrixCache())

	results, err := engine.SearchNotes(ctx, models.SearchParams{Query: "anything"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for empty collection", len(results))
	}
	results, err = engine.Search(ctx, models.SearchParams{Query: "anything"}, []models.Note{{Content: "x"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results for absent matrix", len(results))
	}
}

func TestEngine_RequiredTagsFilter(t *testing.T) {
	ctx := context.Background()
	engine, notes := scenarioEngine()

	results, err := engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 5, RequiredTags: []string{"PYTHON"},
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Index != 2 {
		t.Fatalf("required tags should leave only the Python note, got %v", results)
	}
	// A tag the note does not carry filters everything out.
	results, err = engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 5, RequiredTags: []string{"python", "golang"},
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("subset filter failed: %v", results)
	}
}

func TestEngine_CategoryFilterCaseSensitive(t *testing.T) {
	ctx := context.Background()
	engine, notes := scenarioEngine()

	results, err := engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 5, Category: "Programming",
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Note.Category != "Programming" {
		t.Fatalf("category filter: %v", results)
	}
	results, err = engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 5, Category: "programming",
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("category match must be case-sensitive, got %v", results)
	}
}

func TestEngine_TopKBound(t *testing.T) {
	ctx := context.Background()
	emb := &stubEmbedder{dims: 2, vecs: map[string][]float32{
		"a": {1, 0}, "b": {0, 1}, "q": {1, 0},
	}}
	engine := NewEngine(emb, embedding.NewMatrixCache())
	notes := []models.Note{
		{Content: "a", Category: "General", Tags: []string{}},
		{Content: "b", Category: "General", Tags: []string{}},
	}
	results, err := engine.SearchNotes(ctx, models.SearchParams{Query: "q", TopK: 5}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("top_k over collection size: got %d results, want 2", len(results))
	}
}

func TestEngine_RankingAndTieStability(t *testing.T) {
	ctx := context.Background()
	emb := &stubEmbedder{dims: 2, vecs: map[string][]float32{
		"far":   {0, 1},
		"tied":  {0.7071, 0.7071},
		"near":  {1, 0},
		"query": {1, 0},
	}}
	engine := NewEngine(emb, embedding.NewMatrixCache())
	// Two notes share the "tied" vector; the earlier index must rank first.
	notes := []models.Note{
		{Content: "far", Category: "General", Tags: []string{}},
		{Content: "tied", Category: "General", Tags: []string{}},
		{Content: "near", Category: "General", Tags: []string{}},
		{Content: "tied", Category: "General", Tags: []string{}},
	}
	results, err := engine.SearchNotes(ctx, models.SearchParams{Query: "query", TopK: 4}, notes)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not sorted descending at %d", i)
		}
		if results[i].Similarity == results[i-1].Similarity && results[i].Index < results[i-1].Index {
			t.Errorf("tie at %d broken against original order", i)
		}
	}
	if results[0].Index != 2 {
		t.Errorf("nearest note should rank first, got index %d", results[0].Index)
	}
	if results[1].Index != 1 || results[2].Index != 3 {
		t.Errorf("tied notes out of order: %d then %d", results[1].Index, results[2].Index)
	}
}

func TestEngine_MinSimilarityFilter(t *testing.T) {
	ctx := context.Background()
	engine, notes := scenarioEngine()

	results, err := engine.SearchNotes(ctx, models.SearchParams{
		Query: "How do I slice a list in Python?", TopK: 5, MinSimilarity: 0.5,
	}, notes)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.Similarity < 0.5 {
			t.Errorf("result %d violates min similarity: %v", r.Index, r.Similarity)
		}
	}
	if len(results) != 1 {
		t.Errorf("expected only the Python note above 0.5, got %d", len(results))
	}
}

func TestEngine_InvalidArguments(t *testing.T) {
	ctx := context.Background()
	engine, notes := scenarioEngine()

	cases := []models.SearchParams{
		{Query: "q", TopK: -2},
		{Query: "q", MinSimilarity: 2},
	}
	for i, params := range cases {
		if _, err := engine.SearchNotes(ctx, params, notes); !errors.Is(err, models.ErrInvalidArgument) {
			t.Errorf("case %d: expected ErrInvalidArgument", i)
		}
	}
}

func TestEngine_RowCountMismatch(t *testing.T) {
	ctx := context.Background()
	engine, notes := scenarioEngine()
	_, err := engine.Search(ctx, models.SearchParams{Query: "I love cats"}, notes, [][]float32{{1, 0, 0}})
	if !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestCategories(t *testing.T) {
	notes := []models.Note{
		{Category: "General"},
		{Category: "Programming"},
		{Category: "General"},
	}
	got := Categories(notes)
	if len(got) != 2 || got[0] != "General" || got[1] != "Programming" {
		t.Errorf("Categories = %v", got)
	}
}
