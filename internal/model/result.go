package model

import "time"

// Result is the outcome of extracting aspects from one text
type Result struct {
	Source      string    `json:"source" yaml:"source"`             // File path, URL or "-" for stdin
	ExtractedAt time.Time `json:"extracted_at" yaml:"extracted_at"` // When the extraction ran
	Tokens      int       `json:"tokens" yaml:"tokens"`             // Number of labeled tokens
	Normalized  bool      `json:"normalized" yaml:"normalized"`     // Whether mentions were normalized
	Aspects     *Aspects  `json:"aspects" yaml:"aspects"`           // Category → mentions
}
