// ABOUTME: Asset is an indexed reference document in the library
// ABOUTME: Keyed by filename; indexed once, never refreshed
package models

import "time"

// AssetStatusVerified is the status given to freshly indexed assets
const AssetStatusVerified = "verified"

// Asset describes one document observed during a library sync
type Asset struct {
	Filename  string    `json:"filename"`
	SizeKB    float64   `json:"size_kb"`
	Pages     int       `json:"pages"`
	IndexedAt time.Time `json:"indexed_at"`
	Status    string    `json:"status"`
}

// AssetMeta is what a document extractor reports for a file
type AssetMeta struct {
	SizeKB float64
	Pages  int
}
