package driven

import "context"

// Extractor converts a raw file of a particular format into plain text.
type Extractor interface {
	// Extensions returns the lower-case file extensions this extractor
	// handles, including the leading dot.
	Extensions() []string

	// Extract returns the plain text content of the raw file bytes.
	Extract(ctx context.Context, data []byte) (string, error)
}
