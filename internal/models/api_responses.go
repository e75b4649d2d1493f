// Package models defines the payload structs returned by the query surface.
package models

// WordItem is a single ranked word with its metric value.
type WordItem struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// WordFreqResponse is the payload of GET /api/wordfreq.
type WordFreqResponse struct {
	Category   string     `json:"category"`
	Metric     string     `json:"metric"`
	TotalWords int        `json:"total_words"`
	Items      []WordItem `json:"items"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status       string `json:"status"`
	CacheBackend string `json:"cache_backend"`
}
