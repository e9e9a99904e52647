package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/askdoc-labs/askdoc-cli/internal/core/domain"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driven"
	"github.com/askdoc-labs/askdoc-cli/internal/core/ports/driving"
	"github.com/askdoc-labs/askdoc-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AskService = (*AnswerService)(nil)

// InsufficientAnswer is returned when nothing relevant was retrieved.
// It is an answer, not an error.
const InsufficientAnswer = "I don't have enough information to answer that question. Please add relevant documents first."

const answerPromptFormat = `You are a helpful assistant that answers questions based on the provided context.
Use only the information from the context to answer questions.
If the context doesn't contain enough information to answer the question, say so clearly.
Be concise and accurate in your responses.

Context:
%s

Question: %s

Please provide a clear and accurate answer based on the context above.`

const (
	defaultGeneratorTimeout = 120 * time.Second
	defaultMaxTokens        = 500
	defaultTemperature      = 0.1

	extractiveSentences = 3
	degradedSentences   = 2
)

var sentenceEndRe = regexp.MustCompile(`[^.!?]+[.!?]+`)

// queryStopwords are ignored when matching query words against sentences in
// the extractive fallback.
var queryStopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "can": {}, "did": {}, "do": {},
	"does": {}, "for": {}, "how": {}, "in": {}, "is": {}, "it": {}, "of": {},
	"on": {}, "or": {}, "tell": {}, "that": {}, "the": {}, "this": {},
	"to": {}, "was": {}, "were": {}, "what": {}, "when": {}, "where": {},
	"which": {}, "who": {}, "why": {}, "will": {}, "with": {},
}

// AnswerConfig tunes the answer service.
type AnswerConfig struct {
	// GeneratorTimeout bounds a single generator call (default 120s).
	GeneratorTimeout time.Duration

	// MaxTokens limits generated answer length (default 500).
	MaxTokens int

	// Temperature for generation (default 0.1).
	Temperature float64
}

// AnswerService synthesises answers from retrieved chunks. When a generator
// is configured it gets the first attempt; extraction covers every failure
// mode so asking never errors out past retrieval.
type AnswerService struct {
	retrieval driving.RetrievalService
	generator driven.Generator // nil when no generator is available
	config    AnswerConfig
}

// NewAnswerService creates an answer service. Pass a nil generator to run
// extractive-only.
func NewAnswerService(retrieval driving.RetrievalService, generator driven.Generator, config AnswerConfig) *AnswerService {
	if config.GeneratorTimeout <= 0 {
		config.GeneratorTimeout = defaultGeneratorTimeout
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = defaultMaxTokens
	}
	if config.Temperature <= 0 {
		config.Temperature = defaultTemperature
	}
	return &AnswerService{
		retrieval: retrieval,
		generator: generator,
		config:    config,
	}
}

// Answer retrieves relevant chunks and synthesises an answer.
func (s *AnswerService) Answer(ctx context.Context, query string, maxResults int) (*domain.AnswerResult, error) {
	results, err := s.retrieval.Retrieve(ctx, query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("retrieving context: %w", err)
	}
	return s.Synthesise(ctx, query, results), nil
}

// Synthesise builds an answer from already retrieved chunks.
func (s *AnswerService) Synthesise(ctx context.Context, query string, results []domain.RetrievalResult) *domain.AnswerResult {
	if len(results) == 0 {
		return &domain.AnswerResult{
			Answer:     InsufficientAnswer,
			Sources:    []string{},
			Confidence: 0,
		}
	}

	contexts := make([]string, len(results))
	var totalSim float64
	var sources []string
	seen := make(map[string]struct{})
	for i, result := range results {
		contexts[i] = result.Chunk.Content
		totalSim += result.Similarity
		if _, ok := seen[result.Filename]; !ok && result.Filename != "" {
			seen[result.Filename] = struct{}{}
			sources = append(sources, result.Filename)
		}
	}
	contextText := strings.Join(contexts, "\n\n")

	answer := s.generate(ctx, query, contextText)
	if answer == "" {
		answer = extractAnswer(query, results[0].Chunk.Content)
	}

	return &domain.AnswerResult{
		Answer:     answer,
		Sources:    sources,
		Confidence: totalSim / float64(len(results)),
		Context:    contextText,
	}
}

// generate makes a single bounded attempt at the generator. Any failure is
// absorbed: an empty return tells the caller to fall back to extraction.
func (s *AnswerService) generate(ctx context.Context, query, contextText string) string {
	if s.generator == nil {
		return ""
	}

	genCtx, cancel := context.WithTimeout(ctx, s.config.GeneratorTimeout)
	defer cancel()

	prompt := fmt.Sprintf(answerPromptFormat, contextText, query)
	answer, err := s.generator.Generate(genCtx, prompt, driven.GenerateOptions{
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		logger.Warn("generator failed, using extractive fallback: %v", err)
		return ""
	}
	return strings.TrimSpace(answer)
}

// extractAnswer picks the sentences of the best chunk that share the most
// words with the query. Sorting is stable, so sentences with equal overlap
// keep their original order and the result is deterministic. When no
// sentence overlaps the query at all, the chunk's opening sentences are
// returned as the best available summary.
func extractAnswer(query, chunkText string) string {
	sentences := splitSentences(chunkText)
	if len(sentences) == 0 {
		return strings.TrimSpace(chunkText)
	}

	queryWords := significantWords(query)

	type scored struct {
		sentence string
		overlap  int
	}
	candidates := make([]scored, 0, len(sentences))
	for _, sentence := range sentences {
		overlap := 0
		for word := range wordSet(sentence) {
			if _, ok := queryWords[word]; ok {
				overlap++
			}
		}
		candidates = append(candidates, scored{sentence: sentence, overlap: overlap})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})

	var picked []string
	for _, c := range candidates {
		if c.overlap == 0 || len(picked) == extractiveSentences {
			break
		}
		picked = append(picked, c.sentence)
	}
	if len(picked) == 0 {
		n := degradedSentences
		if n > len(sentences) {
			n = len(sentences)
		}
		picked = sentences[:n]
	}
	return strings.Join(picked, " ")
}

// splitSentences breaks text into trimmed sentences. Text without any
// sentence punctuation comes back as a single sentence, and an unterminated
// fragment after the last terminator is kept as a final sentence.
func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	matches := sentenceEndRe.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return []string{text}
	}

	sentences := make([]string, 0, len(matches)+1)
	for _, m := range matches {
		if s := strings.TrimSpace(text[m[0]:m[1]]); s != "" {
			sentences = append(sentences, s)
		}
	}
	if tail := strings.TrimSpace(text[matches[len(matches)-1][1]:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// significantWords returns the lower-cased words of the query with stopwords
// removed.
func significantWords(query string) map[string]struct{} {
	words := wordSet(query)
	for stop := range queryStopwords {
		delete(words, stop)
	}
	return words
}

func wordSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()[]")
		if word != "" {
			set[word] = struct{}{}
		}
	}
	return set
}
