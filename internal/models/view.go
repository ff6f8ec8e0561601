package models

import "time"

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// SortState is the per-dataset sort configuration. It is initialized with the
// dataset default and mutated only by explicit sort interactions.
type SortState struct {
	Key string `json:"key"`
	Dir string `json:"dir"`
}

// Filter is the per-dataset filter configuration. Tag is an exact match
// against the stored tag value; Search is a case-insensitive substring match
// across the dataset's searchable fields. Empty values match everything.
type Filter struct {
	Tag    string `json:"tag"`
	Search string `json:"search"`
}

// Empty reports whether the filter matches all rows.
func (f Filter) Empty() bool {
	return f.Tag == "" && f.Search == ""
}

// ViewResult is one materialized table page.
type ViewResult struct {
	Rows       []Row `json:"rows"`
	TotalCount int   `json:"total_count"`
	TotalPages int   `json:"total_pages"`
	Page       int   `json:"page"`
}

// Estimated wraps a value that may have been fabricated from a shorter window
// via a multiplier heuristic. Consumers must flag estimated figures instead of
// silently blending them with real ones.
type Estimated[T any] struct {
	Value     T    `json:"value"`
	Estimated bool `json:"estimated"`
}

// Real wraps an authoritative value.
func Real[T any](v T) Estimated[T] {
	return Estimated[T]{Value: v}
}

// Estimate wraps a fabricated value.
func Estimate[T any](v T) Estimated[T] {
	return Estimated[T]{Value: v, Estimated: true}
}

// APIResponse is the standard HTTP response envelope.
type APIResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// LoadStatus describes the most recent snapshot load.
type LoadStatus struct {
	LoadedAt   time.Time `json:"loaded_at"`
	FailedKeys []string  `json:"failed_keys,omitempty"`
	Loaded     int       `json:"loaded"`
}
