package models

// Result is a single ranked hit: the note, its original collection index,
// and its cosine similarity to the query.
type Result struct {
	Index      int     `json:"index"`
	Note       Note    `json:"note"`
	Similarity float64 `json:"similarity"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Results   []Result `json:"results"`
	Total     int      `json:"total"`
	Query     string   `json:"query"`
	QueryTime int64    `json:"query_time_ms"`
}
