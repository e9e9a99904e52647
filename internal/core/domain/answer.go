package domain

// RetrievalResult is a chunk matched against a query.
type RetrievalResult struct {
	// Chunk is the matched chunk.
	Chunk Chunk `json:"chunk"`

	// Filename is the name of the document the chunk belongs to.
	Filename string `json:"filename"`

	// Similarity is the cosine similarity to the query, in [-1, 1].
	Similarity float64 `json:"similarity"`
}

// AnswerResult is the synthesised response to a question.
type AnswerResult struct {
	// Answer is the generated or extracted answer text.
	Answer string `json:"answer"`

	// Sources lists the distinct filenames of the retrieved chunks,
	// in result order.
	Sources []string `json:"sources"`

	// Confidence is the mean similarity of the retrieved chunks.
	// Zero when nothing was retrieved.
	Confidence float64 `json:"confidence"`

	// Context is the concatenated text of the retrieved chunks that
	// was offered to the generator.
	Context string `json:"context,omitempty"`
}
