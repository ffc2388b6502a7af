package domain

// RawDocument is a document as the search engine stores it.
type RawDocument struct {
	ID    string
	Index string
	Data  map[string]any
}

// Hit is one ranked match of a search response.
type Hit struct {
	Document  RawDocument
	Score     float64
	Highlight map[string][]string // field -> fragments, nil when not requested
}

// Response is a raw search response. Hits keep the engine's order.
type Response struct {
	Total int
	Hits  []Hit
}

// Result pairs a hydrated model with the hit it was built from.
type Result struct {
	Model any
	Hit   Hit
}

// SearchOptions are paging parameters passed verbatim to the engine.
type SearchOptions struct {
	From int
	Size int
}
